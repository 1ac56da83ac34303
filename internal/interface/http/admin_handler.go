package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/marketplace-api/internal/application"
	"github.com/oksasatya/marketplace-api/pkg/response"
)

type AdminHandler struct {
	Svc    *application.AdminService
	Logger *logrus.Logger
}

func NewAdminHandler(svc *application.AdminService, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{Svc: svc, Logger: logger}
}

type adminToggleRequest struct {
	IsAdmin *bool `json:"isAdmin" binding:"required"`
}

type createAdminRequest struct {
	Name     string `json:"name" binding:"required,notblank"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required,notblank"`
	Password string `json:"password" binding:"required,pwd"`
}

func (h *AdminHandler) Stats(c *gin.Context) {
	st, err := h.Svc.Stats(c.Request.Context(), IdentityFrom(c))
	if err != nil {
		WriteError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, st, "stats", nil)
}

// Users GET /api/v1/admin/users?role=&search=&page=&limit=
func (h *AdminHandler) Users(c *gin.Context) {
	items, err := h.Svc.ListUsers(c.Request.Context(), IdentityFrom(c), application.UserQuery{
		Role:   c.Query("role"),
		Search: c.Query("search"),
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
	})
	if err != nil {
		WriteError(c, h.Logger, err)
		return
	}
	out := make([]UserDTO, 0, len(items))
	for _, s := range items {
		out = append(out, toUserDTO(s))
	}
	response.Success(c, http.StatusOK, out, "users", nil)
}

func (h *AdminHandler) DeleteUserListings(c *gin.Context) {
	if err := h.Svc.DeleteUserListings(c.Request.Context(), IdentityFrom(c), c.Param("id")); err != nil {
		WriteError(c, h.Logger, err)
		return
	}
	response.NoContent(c)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.Svc.DeleteUser(c.Request.Context(), IdentityFrom(c), c.Param("id")); err != nil {
		WriteError(c, h.Logger, err)
		return
	}
	response.NoContent(c)
}

func (h *AdminHandler) SetAdmin(c *gin.Context) {
	var req adminToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if err := h.Svc.SetAdmin(c.Request.Context(), IdentityFrom(c), c.Param("id"), *req.IsAdmin); err != nil {
		WriteError(c, h.Logger, err)
		return
	}
	response.NoContent(c)
}

func (h *AdminHandler) CreateAdmin(c *gin.Context) {
	var req createAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	u, err := h.Svc.CreateAdmin(c.Request.Context(), IdentityFrom(c), application.CreateAdminInput{
		Name: req.Name, Email: req.Email, Phone: req.Phone, Password: req.Password,
	})
	if err != nil {
		WriteError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, toUserDTO(summaryOf(u)), "admin created", nil)
}

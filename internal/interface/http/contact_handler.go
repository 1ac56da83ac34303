package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/marketplace-api/internal/application"
	"github.com/oksasatya/marketplace-api/pkg/response"
)

type ContactHandler struct {
	Svc    *application.ContactService
	Logger *logrus.Logger
}

func NewContactHandler(svc *application.ContactService, logger *logrus.Logger) *ContactHandler {
	return &ContactHandler{Svc: svc, Logger: logger}
}

type contactRequest struct {
	Name    string  `json:"name" binding:"required,notblank"`
	Email   string  `json:"email" binding:"required,email"`
	Phone   string  `json:"phone" binding:"required,notblank"`
	Company *string `json:"company"`
	Message string  `json:"message" binding:"required,notblank"`
}

type respondRequest struct {
	RespondedBy string `json:"respondedBy" binding:"required,notblank"`
}

// Create POST /api/v1/contact
func (h *ContactHandler) Create(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	_, err := h.Svc.Create(c.Request.Context(), application.ContactInput{
		Name: req.Name, Email: req.Email, Phone: req.Phone, Company: req.Company, Message: req.Message,
	})
	if err != nil {
		WriteError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"ok": true}, "message received", nil)
}

// List GET /api/v1/admin/contacts?status=new|responded|all
func (h *ContactHandler) List(c *gin.Context) {
	items, err := h.Svc.List(c.Request.Context(), IdentityFrom(c), c.Query("status"))
	if err != nil {
		WriteError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toContactDTOs(items), "contacts", nil)
}

// Respond PATCH /api/v1/admin/contacts/:id/respond
func (h *ContactHandler) Respond(c *gin.Context) {
	var req respondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if err := h.Svc.Respond(c.Request.Context(), IdentityFrom(c), c.Param("id"), req.RespondedBy); err != nil {
		WriteError(c, h.Logger, err)
		return
	}
	response.NoContent(c)
}

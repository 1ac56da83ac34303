package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/marketplace-api/internal/application"
	"github.com/oksasatya/marketplace-api/pkg/response"
)

type ProfileHandler struct {
	Svc    *application.ProfileService
	Logger *logrus.Logger
}

func NewProfileHandler(svc *application.ProfileService, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{Svc: svc, Logger: logger}
}

type updateMeRequest struct {
	Name            *string `json:"name"`
	Email           *string `json:"email" binding:"omitempty,email"`
	Phone           *string `json:"phone"`
	CurrentPassword *string `json:"currentPassword"`
	NewPassword     *string `json:"newPassword" binding:"omitempty,pwd"`
}

func (h *ProfileHandler) GetMe(c *gin.Context) {
	u, err := h.Svc.Me(IdentityFrom(c))
	if err != nil {
		WriteError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toMeDTO(u), "profile", nil)
}

func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	var req updateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	u, err := h.Svc.UpdateMe(c.Request.Context(), IdentityFrom(c), application.UpdateProfileInput{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		WriteError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, toMeDTO(u), "profile updated", nil)
}

func (h *ProfileHandler) DeleteMe(c *gin.Context) {
	if err := h.Svc.DeleteMe(c.Request.Context(), IdentityFrom(c)); err != nil {
		WriteError(c, h.Logger, err)
		return
	}
	response.NoContent(c)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/marketplace-api/internal/application"
	"github.com/oksasatya/marketplace-api/pkg/response"
)

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Name        string  `json:"name" binding:"required,notblank"`
	Email       string  `json:"email" binding:"required,email"`
	Phone       string  `json:"phone" binding:"required,notblank"`
	Password    string  `json:"password" binding:"required,pwd"`
	IsSeller    *bool   `json:"isSeller"`
	FromVietnam *bool   `json:"fromVietnam"`
	Country     *string `json:"country"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func tokenResponse(s *application.Session) TokenResponse {
	return TokenResponse{Token: s.Token, IsSeller: s.User.IsSeller, IsAdmin: s.User.IsAdmin, Name: s.User.Name}
}

// Register POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	in := application.RegisterInput{Name: req.Name, Email: req.Email, Phone: req.Phone, Password: req.Password}
	if req.IsSeller != nil {
		in.IsSeller = *req.IsSeller
	}
	if req.FromVietnam != nil {
		in.FromVietnam = *req.FromVietnam
	}
	if req.Country != nil {
		in.Country = *req.Country
	}
	s, err := h.Svc.Register(c.Request.Context(), in)
	if err != nil {
		WriteError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, tokenResponse(s), "registered", gin.H{"expires_at": s.ExpiresAt})
}

// Login POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	s, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if application.KindOf(err) == application.KindUnauthenticated && h.Logger != nil {
			h.Logger.WithField("request_id", c.GetString("request_id")).Info("login failed")
		}
		WriteError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, tokenResponse(s), "login successful", gin.H{"expires_at": s.ExpiresAt})
}

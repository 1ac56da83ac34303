package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/marketplace-api/internal/container"
	handlers "github.com/oksasatya/marketplace-api/internal/interface/http"
	"github.com/oksasatya/marketplace-api/internal/interface/middleware"
)

// InquiryModule
// Optional auth: POST /inquiries
// Protected: GET /inquiries/me, GET /listings/:id/inquiries, GET /seller/inquiries, PATCH /seller/inquiries/:id
// Admin: GET /inquiries
type InquiryModule struct {
	Handler *handlers.InquiryHandler
	Access  Access
}

func NewInquiryModule(h *handlers.InquiryHandler, access Access) *InquiryModule {
	return &InquiryModule{Handler: h, Access: access}
}

func (m *InquiryModule) Register(rg *gin.RouterGroup) {
	createLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIPAndPath(), nil)
	rg.POST("/inquiries", m.Access.Optional, createLimiter, m.Handler.Create)

	auth := rg.Group("/")
	auth.Use(m.Access.Required, userLimiter())
	{
		auth.GET("/inquiries", m.Access.Admin, m.Handler.ListAll)
		auth.GET("/inquiries/me", m.Handler.Mine)
		auth.GET("/listings/:id/inquiries", m.Handler.ListByListing)
		auth.GET("/seller/inquiries", m.Handler.SellerInbox)
		auth.PATCH("/seller/inquiries/:id", m.Handler.UpdateStatus)
	}
}

package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/marketplace-api/internal/container"
	handlers "github.com/oksasatya/marketplace-api/internal/interface/http"
	"github.com/oksasatya/marketplace-api/internal/interface/middleware"
)

// ContactModule
// Public: POST /contact
// Admin: GET /admin/contacts, PATCH /admin/contacts/:id/respond
type ContactModule struct {
	Handler *handlers.ContactHandler
	Access  Access
}

func NewContactModule(h *handlers.ContactHandler, access Access) *ContactModule {
	return &ContactModule{Handler: h, Access: access}
}

func (m *ContactModule) Register(rg *gin.RouterGroup) {
	limiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	rg.POST("/contact", limiter, m.Handler.Create)

	admin := rg.Group("/admin/contacts")
	admin.Use(m.Access.Required, m.Access.Admin)
	{
		admin.GET("", m.Handler.List)
		admin.PATCH("/:id/respond", m.Handler.Respond)
	}
}

package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/marketplace-api/internal/container"
	handlers "github.com/oksasatya/marketplace-api/internal/interface/http"
	"github.com/oksasatya/marketplace-api/internal/interface/middleware"
)

type ProfileModule struct {
	Handler *handlers.ProfileHandler
	Access  Access
}

func NewProfileModule(h *handlers.ProfileHandler, access Access) *ProfileModule {
	return &ProfileModule{Handler: h, Access: access}
}

func (m *ProfileModule) Register(rg *gin.RouterGroup) {
	me := rg.Group("/me")
	me.Use(m.Access.Required, userLimiter())
	{
		me.GET("", m.Handler.GetMe)
		me.PATCH("", m.Handler.UpdateMe)
		me.DELETE("", m.Handler.DeleteMe)
	}
}

// userLimiter is the soft per-user limit applied to authenticated routes.
func userLimiter() gin.HandlerFunc {
	return middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil)
}

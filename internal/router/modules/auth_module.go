package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/marketplace-api/internal/container"
	handlers "github.com/oksasatya/marketplace-api/internal/interface/http"
	"github.com/oksasatya/marketplace-api/internal/interface/middleware"
)

// AuthModule serves the public credential endpoints:
// POST /auth/register, POST /auth/login
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// 10 req/min per IP across register and login
	limiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP("auth"), nil)

	rg.POST("/auth/register", limiter, m.Handler.Register)
	rg.POST("/auth/login", limiter, m.Handler.Login)
}

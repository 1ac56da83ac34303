package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/marketplace-api/internal/interface/http"
)

type NewsModule struct {
	Handler *handlers.NewsHandler
	Access  Access
}

func NewNewsModule(h *handlers.NewsHandler, access Access) *NewsModule {
	return &NewsModule{Handler: h, Access: access}
}

func (m *NewsModule) Register(rg *gin.RouterGroup) {
	rg.GET("/news", m.Handler.ListPublished)
	rg.GET("/news/:id", m.Handler.GetPublished)

	admin := rg.Group("/admin/news")
	admin.Use(m.Access.Required, m.Access.Admin)
	{
		admin.GET("", m.Handler.ListAll)
		admin.POST("", m.Handler.Create)
		admin.PATCH("/:id", m.Handler.Update)
		admin.DELETE("/:id", m.Handler.Delete)
	}
}

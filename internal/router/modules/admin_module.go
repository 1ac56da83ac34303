package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/marketplace-api/internal/interface/http"
)

// AdminModule serves the admin console under /admin. The group gate is
// repeated inside AdminService.
type AdminModule struct {
	Handler *handlers.AdminHandler
	Access  Access
}

func NewAdminModule(h *handlers.AdminHandler, access Access) *AdminModule {
	return &AdminModule{Handler: h, Access: access}
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(m.Access.Required, m.Access.Admin)
	{
		admin.GET("/stats", m.Handler.Stats)
		admin.GET("/users", m.Handler.Users)
		admin.POST("/users/admin", m.Handler.CreateAdmin)
		admin.DELETE("/users/:id", m.Handler.DeleteUser)
		admin.DELETE("/users/:id/listings", m.Handler.DeleteUserListings)
		admin.PATCH("/users/:id/admin", m.Handler.SetAdmin)
	}
}

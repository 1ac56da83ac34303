package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/marketplace-api/internal/interface/http"
)

// ListingModule
// Public: GET /listings, GET /listings/:id
// Protected: POST /listings, PATCH|DELETE /listings/:id, GET /my/listings
type ListingModule struct {
	Handler *handlers.ListingHandler
	Access  Access
}

func NewListingModule(h *handlers.ListingHandler, access Access) *ListingModule {
	return &ListingModule{Handler: h, Access: access}
}

func (m *ListingModule) Register(rg *gin.RouterGroup) {
	rg.GET("/listings", m.Handler.List)
	rg.GET("/listings/:id", m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(m.Access.Required, userLimiter())
	{
		auth.POST("/listings", m.Handler.Create)
		auth.PATCH("/listings/:id", m.Handler.Update)
		auth.DELETE("/listings/:id", m.Handler.Delete)
		auth.GET("/my/listings", m.Handler.Mine)
	}
}

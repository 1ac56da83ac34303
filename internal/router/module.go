package router

import "github.com/gin-gonic/gin"

// Module registers one resource's routes on the /api/v1 group. Auth modes and
// rate limits are attached per route or per sub-group by the module itself.
type Module interface {
	Register(rg *gin.RouterGroup)
}

package modules

import "github.com/gin-gonic/gin"

// Access carries the per-endpoint auth middlewares built once by the router.
type Access struct {
	Optional gin.HandlerFunc
	Required gin.HandlerFunc
	Admin    gin.HandlerFunc
}

package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/marketplace-api/internal/domain/entity"
)

const (
	ctxIdentityKey = "identity"
	ctxUserIDKey   = "userID"
)

// SetIdentity stores the resolved caller on the request context.
func SetIdentity(c *gin.Context, id entity.Identity) {
	c.Set(ctxIdentityKey, id)
	if id.IsAuthenticated() {
		c.Set(ctxUserIDKey, id.UserID())
	}
}

// IdentityFrom returns the resolved caller, Anonymous when none was resolved.
func IdentityFrom(c *gin.Context) entity.Identity {
	if v, ok := c.Get(ctxIdentityKey); ok {
		if id, ok := v.(entity.Identity); ok {
			return id
		}
	}
	return entity.Anonymous
}

// queryInt reads an integer query parameter; missing or malformed values read as 0.
func queryInt(c *gin.Context, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return n
}

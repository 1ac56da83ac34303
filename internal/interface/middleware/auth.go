package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/marketplace-api/internal/application"
	handlers "github.com/oksasatya/marketplace-api/internal/interface/http"
)

// BearerToken extracts the token from "Authorization: Bearer <token>".
func BearerToken(c *gin.Context) string {
	h := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(h) < 7 || !strings.EqualFold(h[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}

// Auth resolves the caller in the given mode and stores the identity (and userID) in the Gin context.
// Required mode aborts with 401 when resolution fails; Optional never aborts.
func Auth(resolver *application.IdentityResolver, mode application.AuthMode, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := resolver.Resolve(c.Request.Context(), BearerToken(c), mode)
		if err != nil {
			handlers.WriteError(c, logger, err)
			return
		}
		handlers.SetIdentity(c, id)
		c.Next()
	}
}

// RequireAdmin rejects callers that are not admins with 403.
func RequireAdmin(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := application.RequireAdmin(handlers.IdentityFrom(c)); err != nil {
			handlers.WriteError(c, logger, err)
			return
		}
		c.Next()
	}
}

package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

const realIPKey = "real_ip"

// RealIP stores the client IP in the Gin context under "real_ip".
// With trustForwarded set (deployments behind Cloudflare or a reverse proxy)
// CF-Connecting-IP wins, then the left-most X-Forwarded-For entry.
// Otherwise forwarding headers are ignored and the socket peer address is
// used, so callers cannot pick their own rate-limit bucket.
func RealIP(trustForwarded bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if trustForwarded {
			if ip := forwardedIP(c); ip != "" {
				c.Set(realIPKey, ip)
				c.Next()
				return
			}
		}
		c.Set(realIPKey, c.RemoteIP())
		c.Next()
	}
}

func forwardedIP(c *gin.Context) string {
	if cf := strings.TrimSpace(c.GetHeader("CF-Connecting-IP")); cf != "" {
		if ip := net.ParseIP(cf); ip != nil {
			return ip.String()
		}
	}
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
			return ip.String()
		}
	}
	return ""
}

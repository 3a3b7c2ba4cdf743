package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// SecurityHeaders sets defense-in-depth security headers on every response.
// Admin review pages additionally get no-store so a shared commissioner
// machine never serves a stale trade queue from cache.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		if strings.HasPrefix(c.Request.URL.Path, "/admin/") {
			c.Header("Cache-Control", "no-store")
		}
		c.Next()
	}
}

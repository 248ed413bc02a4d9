package middleware

import "github.com/gin-gonic/gin"

// NoStoreMiddleware keeps per-user responses out of shared caches.
func NoStoreMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "private, no-store")
		c.Next()
	}
}

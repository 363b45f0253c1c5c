package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORS lets the POS frontend (vite dev server during development, the shop's
// own origin in production behind the reverse proxy) call the API. The
// X-Request-ID pair keeps request correlation visible to the browser.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
		c.Header("Access-Control-Expose-Headers", "X-Request-ID")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Cors allows any origin, browser frontends call the api directly.
func Cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			origin = "*"
		}
		header := c.Writer.Header()
		header.Set("Access-Control-Allow-Origin", origin)
		header.Set("Access-Control-Allow-Credentials", "true")
		header.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		header.Set("Access-Control-Allow-Headers", "*")
		header.Add("Vary", "Origin")

		if c.Request.Method == http.MethodOptions {
			if request_headers := c.GetHeader("Access-Control-Request-Headers"); request_headers != "" {
				header.Set("Access-Control-Allow-Headers", request_headers)
			}
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

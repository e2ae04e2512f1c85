package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/slidelens/slidelens/internal/types"
)

// Auth checks X-Api-Key against key, an empty key disables the check.
func Auth(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" {
			c.Next()
			return
		}
		if subtle.ConstantTimeCompare([]byte(key), []byte(c.GetHeader("X-Api-Key"))) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, types.ErrorResponse(-401, "invalid api key"))
			return
		}
		c.Next()
	}
}

package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIKeyAuth guards machine-caller routes (deposit and mint webhooks) with a
// shared secret presented in the x-api-key header. When no key is configured
// the routes stay locked rather than open.
func APIKeyAuth(expectedKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		if expectedKey == "" {
			logger.Warn("Webhook called but no API key is configured")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "API key authentication not configured"})
			return
		}

		presented := c.GetHeader("x-api-key")
		if subtle.ConstantTimeCompare([]byte(presented), []byte(expectedKey)) != 1 {
			logger.Warn("Invalid or missing API key on webhook route")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
			return
		}

		c.Next()
	}
}

package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	apperrors "finmentor/internal/errors"
)

// PipelineAuthMiddleware guards the ingestion pipeline routes with a shared
// X-API-Key. With no key configured the routes are disabled.
func PipelineAuthMiddleware(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey == "" {
			abortWithError(c, apperrors.ErrPipelineDisabled)
			return
		}
		key := c.GetHeader("X-API-Key")
		if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
			abortWithError(c, apperrors.ErrInvalidAPIKey)
			return
		}
		c.Next()
	}
}

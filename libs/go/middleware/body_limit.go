package middleware

import (
	"fmt"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
)

// DefaultMaxBodySize covers a full set of inline XBRL accounts.
const DefaultMaxBodySize int64 = 10 << 20

// BodyLimitMiddleware rejects requests whose declared length exceeds
// maxBytes and caps the reader for those that lie about it
func BodyLimitMiddleware(maxBytes int64) gin.HandlerFunc {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodySize
	}
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
				"error": fmt.Sprintf("Request body too large. Maximum size: %d bytes", maxBytes),
			})
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}

// RequireContentType rejects requests whose media type is not one of allowed
func RequireContentType(allowed ...string) gin.HandlerFunc {
	set := make(map[string]bool, len(allowed))
	for _, a := range allowed {
		set[a] = true
	}
	return func(c *gin.Context) {
		mediaType, _, err := mime.ParseMediaType(c.GetHeader("Content-Type"))
		if err != nil || !set[mediaType] {
			c.AbortWithStatusJSON(http.StatusUnsupportedMediaType, gin.H{
				"error":   "Unsupported content type",
				"allowed": allowed,
			})
			return
		}
		c.Next()
	}
}

package middleware

import (
	"fmt"
	"net/http"

	"lost-and-found/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DefaultMaxRequestSize sits above the 5 MiB image cap so multipart overhead
// does not trip it first.
const DefaultMaxRequestSize = 6 << 20

// RequestSizeLimitMiddleware answers 413 for a declared length over maxSize
// and caps the body reader for chunked uploads.
func RequestSizeLimitMiddleware(maxSize int64) gin.HandlerFunc {
	if maxSize <= 0 {
		maxSize = DefaultMaxRequestSize
	}
	message := "Request body exceeds the " + formatSize(maxSize) + " limit"

	return func(c *gin.Context) {
		if c.Request.ContentLength > maxSize {
			RequestLogger(c).Warn("Request body too large",
				zap.Int64("content_length", c.Request.ContentLength),
				zap.Int64("limit", maxSize),
				zap.String("path", c.Request.URL.Path),
			)
			utils.ErrorResponse(c, http.StatusRequestEntityTooLarge, message)
			c.Abort()
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
		c.Next()
	}
}

func formatSize(n int64) string {
	switch {
	case n >= 1<<20 && n%(1<<20) == 0:
		return fmt.Sprintf("%d MiB", n>>20)
	case n >= 1<<10 && n%(1<<10) == 0:
		return fmt.Sprintf("%d KiB", n>>10)
	default:
		return fmt.Sprintf("%d bytes", n)
	}
}

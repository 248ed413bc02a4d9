package middleware

import (
	"net/http"

	"inotebook/utils"

	"github.com/gin-gonic/gin"
)

// RequestSizeLimiter rejects declared oversize bodies up front and caps the
// reader for chunked ones. Handlers map the reader's error to the same 413.
func RequestSizeLimiter(maxSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxSize {
			utils.RequestTooLarge(c)
			return
		}

		var w http.ResponseWriter = c.Writer
		c.Request.Body = http.MaxBytesReader(w, c.Request.Body, maxSize)

		c.Next()
	}
}

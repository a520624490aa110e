package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "periodic-tables/backend/pkg/errors"
	"periodic-tables/backend/pkg/response"
)

// BodyLimit caps request bodies at maxBytes. A declared length over the cap is refused up front;
// otherwise the JSON decoder hits the MaxBytesReader limit and the handler reports 413.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			response.Error(c, http.StatusRequestEntityTooLarge, apperrors.CodePayloadTooLarge, "request body is too large")
			c.Abort()
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()
	}
}

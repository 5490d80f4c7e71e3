package middleware

import (
	"log"
	"net/http"

	"blogapi/apperrors"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last error attached with c.Error once the chain is
// done, unless a handler already wrote a response.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err

		if v, ok := apperrors.AsValidation(err); ok {
			c.JSON(http.StatusBadRequest, v.Fields)
			return
		}

		if apiErr, ok := apperrors.AsAPIError(err); ok {
			c.JSON(apiErr.Status, gin.H{"detail": apiErr.Detail, "code": apiErr.Code})
			return
		}

		log.Printf("Unhandled error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "A server error occurred."})
	}
}

// NotFound is the handler for unknown routes.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		_ = c.Error(apperrors.ErrNotFound)
	}
}

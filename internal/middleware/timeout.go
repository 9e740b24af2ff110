package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Timeout attaches a deadline to the request context so upstream places calls
// and storage operations give up when the client would no longer wait.
// The chain runs synchronously; a handler blocked on something that ignores
// the context is not interrupted.
//
// If the deadline passed and nothing was written, the client gets a 503 in
// the places API error shape.
func Timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d <= 0 {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if ctx.Err() != nil && !c.Writer.Written() {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"status":        "SERVER_ERROR",
				"error_message": "Request timed out.",
			})
		}
	}
}

package middleware

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/gin-gonic/gin"
)

// Recovery turns a panic into an internal error for ErrorHandler, so a crash
// inside a handler answers with the same JSON body as any other failure.
// It must be registered after ErrorHandler.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	logger = logger.With("component", "recovery")
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		logger.ErrorContext(c.Request.Context(), "panic recovered", "panic", recovered)
		_ = c.Error(fmt.Errorf("panic: %v", recovered))
		c.Abort()
	})
}

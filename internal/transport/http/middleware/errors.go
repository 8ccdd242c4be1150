package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/jobs-api/internal/domain"
	"github.com/gin-gonic/gin"
)

const (
	msgInternal           = "Something went wrong, try again later"
	msgUnauthenticated    = "Authentication invalid"
	msgInvalidCredentials = "Invalid credentials"
	msgJobNotFound        = "Job not found"
	msgUserNotFound       = "User not found"
	msgRouteNotFound      = "Route does not exist"
	msgEmailTaken         = "Email already in use"
	msgRateLimited        = "Too many requests, please try again later"
)

// ErrorHandler is the single place where a failed request gets its status
// code. Handlers and middleware push errors with c.Error and abort; the last
// error pushed decides the response. Unrecognized errors are logged and
// answered with a generic 500.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	logger = logger.With("component", "error_handler")
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status, msg := translate(err)
		if status == http.StatusInternalServerError {
			logger.ErrorContext(c.Request.Context(), "request failed",
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"error", err,
			)
		}

		c.JSON(status, gin.H{"message": msg})
	}
}

func translate(err error) (int, string) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		return http.StatusBadRequest, vErr.Message
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, msgInvalidCredentials
	case errors.Is(err, domain.ErrTokenInvalid), errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, msgUnauthenticated
	case errors.Is(err, domain.ErrJobNotFound):
		return http.StatusNotFound, msgJobNotFound
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, msgUserNotFound
	case errors.Is(err, domain.ErrRouteNotFound):
		return http.StatusNotFound, msgRouteNotFound
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusConflict, msgEmailTaken
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests, msgRateLimited
	default:
		return http.StatusInternalServerError, msgInternal
	}
}

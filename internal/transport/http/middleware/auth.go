package middleware

import (
	"strings"

	"github.com/ErlanBelekov/jobs-api/internal/domain"
	"github.com/ErlanBelekov/jobs-api/internal/reqctx"
	"github.com/ErlanBelekov/jobs-api/internal/token"
	"github.com/gin-gonic/gin"
)

const (
	ContextUserID   = "userID"
	ContextUserName = "userName"

	bearerPrefix = "Bearer "
)

type tokenVerifier interface {
	Verify(raw string) (*token.Claims, error)
}

// Auth validates a Bearer JWT and sets "userID" and "userName" in the gin
// context. The user id is also stored on the request context for logging.
func Auth(tokens tokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			_ = c.Error(domain.ErrUnauthenticated)
			c.Abort()
			return
		}

		raw := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
		if raw == "" {
			_ = c.Error(domain.ErrUnauthenticated)
			c.Abort()
			return
		}

		claims, err := tokens.Verify(raw)
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID())
		c.Set(ContextUserName, claims.Name)
		c.Request = c.Request.WithContext(reqctx.WithUserID(c.Request.Context(), claims.UserID()))
		c.Next()
	}
}

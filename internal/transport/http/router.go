package httptransport

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ErlanBelekov/jobs-api/internal/token"
	"github.com/ErlanBelekov/jobs-api/internal/transport/http/handler"
	"github.com/ErlanBelekov/jobs-api/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

type Options struct {
	CORSOrigins     []string
	TrustedProxies  []string
	RateLimitMax    int
	RateLimitWindow time.Duration
}

type tokenVerifier interface {
	Verify(raw string) (*token.Claims, error)
}

// NewRouter assembles the middleware chain and routes. ErrorHandler wraps
// everything below it, so any middleware or handler that pushes an error
// gets the JSON {"message"} body.
func NewRouter(logger *slog.Logger, authHandler *handler.AuthHandler, jobHandler *handler.JobHandler, tokens tokenVerifier, opts Options) (*gin.Engine, error) {
	r := gin.New()

	// Empty disables X-Forwarded-For handling; ClientIP then is RemoteAddr.
	if err := r.SetTrustedProxies(opts.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}

	corsMW, err := middleware.CORS(opts.CORSOrigins)
	if err != nil {
		return nil, err
	}

	r.Use(middleware.RequestID())
	r.Use(sloggin.NewWithConfig(logger, sloggin.Config{
		DefaultLevel:     slog.LevelInfo,
		ClientErrorLevel: slog.LevelWarn,
		ServerErrorLevel: slog.LevelError,
	}))
	r.Use(middleware.Metrics())
	r.Use(middleware.ErrorHandler(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Security())
	r.Use(corsMW)
	r.Use(middleware.RateLimit(opts.RateLimitMax, opts.RateLimitWindow))
	r.Use(middleware.Sanitize())

	r.NoRoute(handler.NotFound)
	r.GET("/", handler.Home)

	api := r.Group("/api/v1")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	jobs := api.Group("/jobs", middleware.Auth(tokens))
	jobs.GET("", jobHandler.List)
	jobs.POST("", jobHandler.Create)
	jobs.GET("/:id", jobHandler.GetByID)
	jobs.PATCH("/:id", jobHandler.Update)
	jobs.DELETE("/:id", jobHandler.Delete)

	return r, nil
}

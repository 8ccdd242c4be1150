package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ErlanBelekov/jobs-api/config"
	"github.com/ErlanBelekov/jobs-api/internal/email"
	"github.com/ErlanBelekov/jobs-api/internal/health"
	"github.com/ErlanBelekov/jobs-api/internal/infrastructure"
	ctxlog "github.com/ErlanBelekov/jobs-api/internal/log"
	"github.com/ErlanBelekov/jobs-api/internal/metrics"
	"github.com/ErlanBelekov/jobs-api/internal/password"
	"github.com/ErlanBelekov/jobs-api/internal/token"
	httptransport "github.com/ErlanBelekov/jobs-api/internal/transport/http"
	"github.com/ErlanBelekov/jobs-api/internal/transport/http/handler"
	"github.com/ErlanBelekov/jobs-api/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/crypto/bcrypt"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	store, err := infrastructure.Open(ctx, cfg.DatabaseURL, cfg.DBMaxConns, logger)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}

	tokens := token.NewService([]byte(cfg.JWTSecret), cfg.JWTLifetime)
	sender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)

	// Auth
	authUsecase := usecase.NewAuthUsecase(store.Users, password.NewHasher(bcrypt.DefaultCost), tokens, sender, logger)
	authHandler := handler.NewAuthHandler(authUsecase, logger)

	// Jobs
	jobUsecase := usecase.NewJobUsecase(store.Jobs)
	jobHandler := handler.NewJobHandler(jobUsecase, logger)

	router, err := httptransport.NewRouter(logger, authHandler, jobHandler, tokens, httptransport.Options{
		CORSOrigins:     cfg.CORSAllowedOrigins,
		TrustedProxies:  cfg.TrustedProxies,
		RateLimitMax:    cfg.RateLimitMax,
		RateLimitWindow: cfg.RateLimitWindow,
	})
	if err != nil {
		stop()
		_ = store.Close(context.Background())
		log.Fatalf("router: %v", err)
	}

	metrics.Register()
	checker := health.NewChecker(store, store.Backend, logger, prometheus.DefaultRegisterer)

	srv := http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	go func() {
		logger.Info("server started", "port", cfg.Port, "backend", store.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
	if err := store.Close(shutdownCtx); err != nil {
		logger.Error("store close", "error", err)
	}
	logger.Info("shutdown complete")
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}

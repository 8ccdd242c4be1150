package health

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const readinessTimeout = 2 * time.Second

// Pinger is satisfied by every store backend: pgxpool, mongo and memory.
type Pinger interface {
	Ping(ctx context.Context) error
}

// CheckResult represents the health of a single dependency.
type CheckResult struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// HealthResult is the top-level health response.
type HealthResult struct {
	Status string                 `json:"status"`
	Checks map[string]CheckResult `json:"checks,omitempty"`
}

// Checker reports whether the store behind the API is reachable.
type Checker struct {
	store   Pinger
	backend string
	logger  *slog.Logger
	gauge   *prometheus.GaugeVec
}

// NewChecker registers a per-dependency gauge on reg. backend names the store
// in both the JSON response and the gauge label.
func NewChecker(store Pinger, backend string, logger *slog.Logger, reg prometheus.Registerer) *Checker {
	gauge := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "jobs_api",
		Name:      "health_check_up",
		Help:      "Whether a dependency is reachable. 1 = up, 0 = down.",
	}, []string{"dependency"})
	reg.MustRegister(gauge)

	return &Checker{
		store:   store,
		backend: backend,
		logger:  logger.With("component", "health"),
		gauge:   gauge,
	}
}

func (c *Checker) Liveness(_ context.Context) HealthResult {
	return HealthResult{Status: "up"}
}

func (c *Checker) Readiness(ctx context.Context) HealthResult {
	checkCtx, cancel := context.WithTimeout(ctx, readinessTimeout)
	defer cancel()

	result := HealthResult{
		Status: "up",
		Checks: make(map[string]CheckResult, 1),
	}

	if err := c.store.Ping(checkCtx); err != nil {
		c.logger.WarnContext(ctx, "store health check failed", "backend", c.backend, "error", err)
		result.Status = "down"
		result.Checks[c.backend] = CheckResult{Status: "down", Error: err.Error()}
		c.gauge.WithLabelValues(c.backend).Set(0)
		return result
	}

	result.Checks[c.backend] = CheckResult{Status: "up"}
	c.gauge.WithLabelValues(c.backend).Set(1)
	return result
}

package health_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/ErlanBelekov/jobs-api/internal/health"
	"github.com/prometheus/client_golang/prometheus"
)

type mockPinger struct {
	err   error
	calls int
}

func (m *mockPinger) Ping(_ context.Context) error {
	m.calls++
	return m.err
}

func newTestChecker(p health.Pinger, backend string) (*health.Checker, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	logger := slog.New(slog.DiscardHandler)
	return health.NewChecker(p, backend, logger, reg), reg
}

func TestLiveness_AlwaysUp(t *testing.T) {
	p := &mockPinger{err: errors.New("db down")}
	c, _ := newTestChecker(p, "postgres")

	result := c.Liveness(context.Background())
	if result.Status != "up" {
		t.Fatalf("expected status up, got %s", result.Status)
	}
	if result.Checks != nil {
		t.Fatalf("expected no checks, got %v", result.Checks)
	}
	if p.calls != 0 {
		t.Fatalf("liveness must not touch the store, got %d pings", p.calls)
	}
}

func TestReadiness_StoreUp(t *testing.T) {
	c, reg := newTestChecker(&mockPinger{}, "mongodb")

	result := c.Readiness(context.Background())
	if result.Status != "up" {
		t.Fatalf("expected status up, got %s", result.Status)
	}
	check, ok := result.Checks["mongodb"]
	if !ok {
		t.Fatal("missing mongodb check")
	}
	if check.Status != "up" {
		t.Fatalf("expected mongodb up, got %s", check.Status)
	}

	if gauge := testGauge(t, reg, "jobs_api_health_check_up", "mongodb"); gauge != 1 {
		t.Fatalf("expected gauge 1, got %f", gauge)
	}
}

func TestReadiness_StoreDown(t *testing.T) {
	c, reg := newTestChecker(&mockPinger{err: errors.New("connection refused")}, "postgres")

	result := c.Readiness(context.Background())
	if result.Status != "down" {
		t.Fatalf("expected status down, got %s", result.Status)
	}
	pg := result.Checks["postgres"]
	if pg.Status != "down" {
		t.Fatalf("expected postgres down, got %s", pg.Status)
	}
	if pg.Error != "connection refused" {
		t.Fatalf("expected error message, got %q", pg.Error)
	}

	if gauge := testGauge(t, reg, "jobs_api_health_check_up", "postgres"); gauge != 0 {
		t.Fatalf("expected gauge 0, got %f", gauge)
	}
}

func TestReadiness_Recovers(t *testing.T) {
	p := &mockPinger{err: errors.New("timeout")}
	c, reg := newTestChecker(p, "postgres")

	c.Readiness(context.Background())
	p.err = nil
	result := c.Readiness(context.Background())

	if result.Status != "up" {
		t.Fatalf("expected status up after recovery, got %s", result.Status)
	}
	if gauge := testGauge(t, reg, "jobs_api_health_check_up", "postgres"); gauge != 1 {
		t.Fatalf("expected gauge 1, got %f", gauge)
	}
}

func testGauge(t *testing.T, reg *prometheus.Registry, name, depLabel string) float64 {
	t.Helper()
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "dependency" && lp.GetValue() == depLabel {
					return m.GetGauge().GetValue()
				}
			}
		}
	}
	t.Fatalf("metric %s{dependency=%q} not found", name, depLabel)
	return 0
}

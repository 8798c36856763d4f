package core

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"postalcore/pkg/territory"
)

type captureMetricsRecorder struct {
	observed []string
}

func (c *captureMetricsRecorder) Observe(_ context.Context, op string, success bool, _ time.Duration) {
	status := "error"
	if success {
		status = "success"
	}
	c.observed = append(c.observed, op+":"+status)
}

func (c *captureMetricsRecorder) has(entry string) bool {
	for _, got := range c.observed {
		if got == entry {
			return true
		}
	}
	return false
}

func TestServiceInstrumentation(t *testing.T) {
	metrics := &captureMetricsRecorder{}
	var buf bytes.Buffer
	tracer := NewJSONTracer(&buf)
	svc := newTestService(t, WithMetricsRecorder(metrics), WithTracer(tracer))
	ctx := context.Background()

	if _, err := svc.ResolveTerritory(ctx, "France", territory.KindCountry); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if _, err := svc.ResolveTerritory(ctx, "Atlantis", territory.KindCountry); err == nil {
		t.Fatalf("expected resolution failure")
	}

	if !metrics.has("resolve_territory:success") {
		t.Fatalf("missing success observation: %v", metrics.observed)
	}
	if !metrics.has("resolve_territory:error") {
		t.Fatalf("missing error observation: %v", metrics.observed)
	}

	entries := tracer.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(entries))
	}
	if entries[1].Status != "error" || entries[1].Error == "" {
		t.Fatalf("expected failed span with error message, got %+v", entries[1])
	}
	if !strings.Contains(buf.String(), "resolve_territory") {
		t.Fatalf("expected serialized span output")
	}
}

func TestExpvarMetricsRecorder(t *testing.T) {
	rec := NewExpvarMetricsRecorder("")
	if rec.Name() == "" {
		t.Fatalf("expected generated export name")
	}
	rec.Observe(context.Background(), "validate_fields", true, 20*time.Millisecond)
	rec.Observe(context.Background(), "validate_fields", false, 5*time.Millisecond)
	rec.Observe(context.Background(), "", true, time.Millisecond) // ignored

	snap := rec.Snapshot()
	if snap.Results["validate_fields"]["success"] != 1 || snap.Results["validate_fields"]["error"] != 1 {
		t.Fatalf("unexpected result counters: %+v", snap.Results)
	}
	if snap.DurationsMS["validate_fields"] <= 0 {
		t.Fatalf("expected accumulated duration, got %+v", snap.DurationsMS)
	}
}

func TestPrometheusMetricsRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := NewPrometheusMetricsRecorder(reg)
	if err != nil {
		t.Fatalf("NewPrometheusMetricsRecorder: %v", err)
	}
	rec.Observe(context.Background(), "render_fields", true, 3*time.Millisecond)
	rec.Observe(context.Background(), "render_fields", false, time.Millisecond)

	if got := testutil.ToFloat64(rec.results.WithLabelValues("render_fields", "success")); got != 1 {
		t.Fatalf("expected 1 success, got %v", got)
	}
	if got := testutil.ToFloat64(rec.results.WithLabelValues("render_fields", "error")); got != 1 {
		t.Fatalf("expected 1 error, got %v", got)
	}

	// Registering twice against the same registry must surface a conflict.
	if _, err := NewPrometheusMetricsRecorder(reg); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
}

package observability

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Outcome classifies a resolution for metrics.
type Outcome string

const (
	// OutcomeNotFound means no registration existed for the key.
	OutcomeNotFound Outcome = "not_found"

	// OutcomeCacheHit means a cached instance was returned without invoking
	// the factory.
	OutcomeCacheHit Outcome = "cache_hit"

	// OutcomeCreated means the factory was invoked and succeeded.
	OutcomeCreated Outcome = "created"

	// OutcomeFailed means the factory returned an error or panicked.
	OutcomeFailed Outcome = "failed"
)

// MetricsRecorder records registry metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordRegistration records a registration of the given key type.
	RecordRegistration(ctx context.Context, keyType string, lifecycle string, overwrite bool)

	// RecordResolution records a resolution with its outcome and duration.
	RecordResolution(ctx context.Context, keyType string, outcome Outcome, duration time.Duration)

	// RecordRemoval records removed registrations. reason is "unregister",
	// "release" or "clear".
	RecordRemoval(ctx context.Context, reason string, count int)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	registrations     metric.Int64Counter
	resolutions       metric.Int64Counter
	resolutionLatency metric.Float64Histogram
	removals          metric.Int64Counter
}

// NewMetricsRecorder returns a MetricsRecorder that uses the global OTel
// meter provider. If metrics initialization fails, returns a no-op recorder.
//
// Configure the provider before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := NewMetricsRecorderWithMeter(otel.Meter("locator"))
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// NewMetricsRecorderWithMeter creates a MetricsRecorder on the given meter.
func NewMetricsRecorderWithMeter(meter metric.Meter) (MetricsRecorder, error) {
	registrations, err := meter.Int64Counter("locator.registrations",
		metric.WithDescription("Number of registrations"),
	)
	if err != nil {
		return nil, err
	}

	resolutions, err := meter.Int64Counter("locator.resolutions",
		metric.WithDescription("Number of resolutions by outcome"),
	)
	if err != nil {
		return nil, err
	}

	resolutionLatency, err := meter.Float64Histogram("locator.resolution.latency_ms",
		metric.WithDescription("Resolution latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	removals, err := meter.Int64Counter("locator.removals",
		metric.WithDescription("Number of registrations removed"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		registrations:     registrations,
		resolutions:       resolutions,
		resolutionLatency: resolutionLatency,
		removals:          removals,
	}, nil
}

// RecordRegistration records a registration.
func (m *otelMetrics) RecordRegistration(ctx context.Context, keyType string, lifecycle string, overwrite bool) {
	m.registrations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("type", keyType),
		attribute.String("lifecycle", lifecycle),
		attribute.Bool("overwrite", overwrite),
	))
}

// RecordResolution records a resolution.
func (m *otelMetrics) RecordResolution(ctx context.Context, keyType string, outcome Outcome, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.String("type", keyType),
		attribute.String("outcome", string(outcome)),
	}
	m.resolutions.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.resolutionLatency.Record(ctx, float64(duration.Microseconds())/1000, metric.WithAttributes(attrs...))
}

// RecordRemoval records removed registrations.
func (m *otelMetrics) RecordRemoval(ctx context.Context, reason string, count int) {
	if count <= 0 {
		return
	}
	m.removals.Add(ctx, int64(count), metric.WithAttributes(
		attribute.String("reason", reason),
	))
}

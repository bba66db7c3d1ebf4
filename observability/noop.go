package observability

import (
	"context"
	"time"
)

// NoopMetrics is a MetricsRecorder that does nothing.
type NoopMetrics struct{}

// Compile-time interface check.
var _ MetricsRecorder = NoopMetrics{}

// RecordRegistration does nothing.
func (NoopMetrics) RecordRegistration(_ context.Context, _ string, _ string, _ bool) {}

// RecordResolution does nothing.
func (NoopMetrics) RecordResolution(_ context.Context, _ string, _ Outcome, _ time.Duration) {}

// RecordRemoval does nothing.
func (NoopMetrics) RecordRemoval(_ context.Context, _ string, _ int) {}

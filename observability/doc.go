// Package observability provides logging and metrics hooks for the locator
// registry.
//
// Features:
//   - Structured logging via slog
//   - Metrics via OpenTelemetry
//
// Both are opt-in. A registry without a logger discards its logs, and a
// registry without a recorder uses NoopMetrics.
package observability

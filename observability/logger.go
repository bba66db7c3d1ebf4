package observability

import (
	"log/slog"
)

// DiscardLogger returns a logger that drops every record.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// EnrichLogger adds registry context to a logger.
//
// Example:
//
//	enriched := EnrichLogger(logger, "2f1c...")
//	enriched.Info("registry ready") // includes registry_id
func EnrichLogger(logger *slog.Logger, registryID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(slog.String("registry_id", registryID))
}

// LogRegistered logs a registration. overwrite reports that an existing
// registration under the same key was replaced.
func LogRegistered(logger *slog.Logger, key string, lifecycle string, overwrite bool) {
	if logger == nil {
		return
	}
	logger.Debug("registered",
		slog.String("key", key),
		slog.String("lifecycle", lifecycle),
		slog.Bool("overwrite", overwrite),
	)
}

// LogUnregistered logs the removal of registrations.
func LogUnregistered(logger *slog.Logger, removed int, requested int) {
	if logger == nil {
		return
	}
	logger.Debug("unregistered",
		slog.Int("removed", removed),
		slog.Int("requested", requested),
	)
}

// LogReleased logs the removal of a one-time registration after resolution.
func LogReleased(logger *slog.Logger, key string) {
	if logger == nil {
		return
	}
	logger.Debug("one-time registration released",
		slog.String("key", key),
	)
}

// LogCleared logs a registry reset.
func LogCleared(logger *slog.Logger, removed int) {
	if logger == nil {
		return
	}
	logger.Debug("registry cleared",
		slog.Int("removed", removed),
	)
}

// LogFactoryFailed logs a factory error or panic.
func LogFactoryFailed(logger *slog.Logger, key string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("factory failed",
		slog.String("key", key),
		slog.String("error", err.Error()),
	)
}

// LogDisposalFailed logs a cached instance that failed to close.
func LogDisposalFailed(logger *slog.Logger, key string, err error) {
	if logger == nil {
		return
	}
	logger.Error("failed to close cached instance",
		slog.String("key", key),
		slog.String("error", err.Error()),
	)
}

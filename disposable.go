package locator

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/junioryono/locator/observability"
)

// Disposable is implemented by cached instances that hold resources.
// Close disposes them when the registry is closed.
//
// Example:
//
//	type DatabaseConnection struct {
//	    conn *sql.DB
//	}
//
//	func (dc *DatabaseConnection) Close() error {
//	    return dc.conn.Close()
//	}
type Disposable interface {
	Close() error
}

// DisposableWithContext allows disposal with context for graceful shutdown.
// Implementations should respect context cancellation.
type DisposableWithContext interface {
	Close(ctx context.Context) error
}

// Close removes every registration and disposes the cached instances that
// implement Disposable or DisposableWithContext, most recently created first.
// Instances of registrations removed earlier by Unregister, Clear or
// overwrite are not disposed. The registry stays usable afterwards.
func (r *Registry) Close() error {
	return r.Shutdown(context.Background())
}

// Shutdown is Close with a context passed to DisposableWithContext instances.
func (r *Registry) Shutdown(ctx context.Context) error {
	old := r.swap()
	observability.LogCleared(r.logger, len(old))
	r.metrics.RecordRemoval(ctx, "clear", len(old))

	entries := make([]*entry, 0, len(old))
	for _, e := range old {
		if _, populated := e.cached(); populated {
			entries = append(entries, e)
		}
	}

	// Dispose in reverse order (LIFO)
	slices.SortFunc(entries, func(a, b *entry) int {
		return cmp.Compare(b.seq.Load(), a.seq.Load())
	})

	var errs []error
	for _, e := range entries {
		instance, _ := e.cached()
		if err := dispose(ctx, instance); err != nil {
			observability.LogDisposalFailed(r.logger, e.key.String(), err)
			errs = append(errs, fmt.Errorf("%s: %w", e.key, err))
		}
	}

	if len(errs) > 0 {
		return DisposalError{Errors: errs}
	}

	return nil
}

func dispose(ctx context.Context, instance any) error {
	switch d := instance.(type) {
	case DisposableWithContext:
		return d.Close(ctx)
	case Disposable:
		return d.Close()
	default:
		return nil
	}
}

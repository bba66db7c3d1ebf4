package locator

import "sync/atomic"

var (
	// defaultRegistry holds the process-wide Registry.
	defaultRegistry atomic.Pointer[Registry]
)

// SetDefaultRegistry sets the process-wide Registry returned by
// DefaultRegistry. This is similar to slog.SetDefault.
//
// Pass nil to drop the current default; the next call to DefaultRegistry then
// creates a fresh, empty Registry.
func SetDefaultRegistry(r *Registry) {
	defaultRegistry.Store(r)
}

// DefaultRegistry returns the process-wide Registry, creating an empty one on
// first use. Libraries should accept a *Registry instead of reaching for
// DefaultRegistry; it exists for application wiring where passing a registry
// around is awkward.
func DefaultRegistry() *Registry {
	if r := defaultRegistry.Load(); r != nil {
		return r
	}

	r := New()
	if defaultRegistry.CompareAndSwap(nil, r) {
		return r
	}
	return defaultRegistry.Load()
}

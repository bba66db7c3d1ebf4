package locator

import (
	"maps"
	"runtime/debug"
	"sync"
	"sync/atomic"
)

// Factory produces a value for a registration. param is whatever the caller
// passed to Resolve; a factory that expects a particular shape should check it.
type Factory func(param any) (any, error)

// Metadata is arbitrary data attached to a registration. The map is copied on
// registration and on every read, so its top-level entries never change.
// The copy is shallow: values should be immutable (strings, numbers), since
// nested maps or slices stay shared between the stored metadata and copies.
type Metadata map[any]any

func (m Metadata) clone() Metadata {
	if m == nil {
		return nil
	}
	return maps.Clone(m)
}

// entry binds a factory to its lifecycle, metadata and cached instance.
// The table owns entries; resolvers hold a pointer only for one call.
type entry struct {
	key       Key
	factory   Factory
	lifecycle Lifecycle
	metadata  Metadata

	// mu guards the check-then-populate of the cached instance, so a cached
	// factory runs at most once per entry.
	mu        sync.Mutex
	instance  any
	populated bool

	// seq orders cache population across the registry; Close disposes
	// instances in reverse order.
	seq atomic.Uint64

	// claimed is set while a OneTime entry is being consumed.
	claimed atomic.Bool
}

func newEntry(key Key, factory Factory, lifecycle Lifecycle, metadata Metadata) *entry {
	return &entry{
		key:       key,
		factory:   factory,
		lifecycle: lifecycle,
		metadata:  metadata.clone(),
	}
}

// resolve applies the caching policy. preferCached overrides the entry's own
// lifecycle when non-nil. cacheHit reports that the factory was not invoked.
// A non-caching resolution never takes mu. When the cache is populated, the
// next value of seq is stamped on the entry under mu; seq may be nil.
//
// A factory that resolves its own entry with caching in effect deadlocks.
func (e *entry) resolve(param any, preferCached *bool, seq *atomic.Uint64) (value any, cacheHit bool, err error) {
	caching := e.lifecycle == Cached
	if preferCached != nil {
		caching = *preferCached
	}

	if !caching {
		value, err = e.invoke(param)
		return value, false, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.populated {
		return e.instance, true, nil
	}

	value, err = e.invoke(param)
	if err != nil {
		return nil, false, err
	}

	e.instance = value
	e.populated = true
	if seq != nil {
		e.seq.Store(seq.Add(1))
	}
	return value, false, nil
}

// claim reserves a OneTime entry for a single resolution.
func (e *entry) claim() bool {
	return e.claimed.CompareAndSwap(false, true)
}

// unclaim makes a OneTime entry available again after a failed resolution.
func (e *entry) unclaim() {
	e.claimed.Store(false)
}

// cached returns the memoized instance, if any.
func (e *entry) cached() (any, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.instance, e.populated
}

// invoke calls the factory, converting errors and panics into typed errors.
func (e *entry) invoke(param any) (value any, err error) {
	if e.factory == nil {
		return nil, nil
	}

	defer func() {
		if r := recover(); r != nil {
			value = nil
			err = FactoryPanicError{Key: e.key, Panic: r, Stack: debug.Stack()}
		}
	}()

	value, err = e.factory(param)
	if err != nil {
		return nil, FactoryError{Key: e.key, Cause: err}
	}

	return value, nil
}

package locator

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/junioryono/locator/observability"
)

// Registry maps keys to factories and resolves them on demand.
//
// A single reader/writer lock guards the table: Register, Unregister and
// Clear take it exclusively, while Resolve, Filter, Exists and Metadata share
// it. Factories always run after the lock has been released, so a factory
// may itself resolve other registrations.
//
// Registry is safe for concurrent use. The zero value is not usable; create
// registries with New.
//
// Example:
//
//	r := locator.New()
//	key := r.Register(locator.NewKey("Int", "double", nil), func(p any) (any, error) {
//	    return p.(int) * 2, nil
//	}, locator.Transient, nil)
//
//	v, ok, err := r.Resolve(key, 3) // 6, true, nil
type Registry struct {
	id string

	mu      sync.RWMutex
	entries map[Key]*entry

	// seq numbers cache populations for disposal ordering.
	seq atomic.Uint64

	logger  *slog.Logger
	metrics observability.MetricsRecorder
	release ReleasePolicy

	onRegistered func(key Key, lifecycle Lifecycle)
	onResolved   func(key Key, instance any, duration time.Duration)
	onError      func(key Key, err error)

	stats statistics
}

// Statistics is a snapshot of registry counters.
type Statistics struct {
	Registrations int64 // successful Register calls, overwrites included
	Resolutions   int64 // resolutions of existing registrations
	Misses        int64 // resolutions of keys with no registration
	CacheHits     int64 // resolutions answered from a cached instance
	FactoryCalls  int64 // factory invocations
	Failures      int64 // factory errors and panics
	Releases      int64 // OneTime registrations removed after resolution
}

type statistics struct {
	registrations atomic.Int64
	resolutions   atomic.Int64
	misses        atomic.Int64
	cacheHits     atomic.Int64
	factoryCalls  atomic.Int64
	failures      atomic.Int64
	releases      atomic.Int64
}

// New creates an empty Registry.
func New(opts ...Option) *Registry {
	o := &registryOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	if o.id == "" {
		o.id = uuid.NewString()
	}

	if o.logger == nil {
		o.logger = observability.DiscardLogger()
	}

	if o.metrics == nil {
		o.metrics = observability.NoopMetrics{}
	}

	return &Registry{
		id:           o.id,
		entries:      make(map[Key]*entry),
		logger:       observability.EnrichLogger(o.logger, o.id),
		metrics:      o.metrics,
		release:      o.release,
		onRegistered: o.onRegistered,
		onResolved:   o.onResolved,
		onError:      o.onError,
	}
}

// ID returns the unique identifier for the registry.
func (r *Registry) ID() string {
	return r.id
}

// Register stores factory under key, replacing any existing registration
// together with its cached instance and metadata. Registration never fails;
// the returned key is the handle to resolve with.
//
// A nil factory produces nil. An invalid lifecycle is treated as Transient.
func (r *Registry) Register(key Key, factory Factory, lifecycle Lifecycle, metadata Metadata) Key {
	if !lifecycle.IsValid() {
		r.logger.Warn("invalid lifecycle, using Transient",
			slog.String("key", key.String()),
			slog.Int("lifecycle", int(lifecycle)),
		)
		lifecycle = Transient
	}

	e := newEntry(key, factory, lifecycle, metadata)

	r.mu.Lock()
	_, overwrite := r.entries[key]
	r.entries[key] = e
	r.mu.Unlock()

	r.stats.registrations.Add(1)
	observability.LogRegistered(r.logger, key.String(), lifecycle.String(), overwrite)
	r.metrics.RecordRegistration(context.Background(), key.Type(), lifecycle.String(), overwrite)

	if r.onRegistered != nil {
		r.onRegistered(key, lifecycle)
	}

	return key
}

// Resolve produces the value registered under key, passing param to the
// factory.
//
// ok is false when no registration exists; that is a normal outcome and err
// is nil. Otherwise the registration's lifecycle applies: Cached returns the
// first successfully produced value forever, Transient invokes the factory
// every time and OneTime invokes it and then removes the registration.
// PreferCached overrides the caching decision for this call.
//
// err is a FactoryError or FactoryPanicError when the factory failed.
func (r *Registry) Resolve(key Key, param any, opts ...ResolveOption) (value any, ok bool, err error) {
	o := newResolveOptions(opts)
	start := time.Now()

	e, ok := r.lookup(key)
	if !ok {
		r.miss(key, start)
		return nil, false, nil
	}

	return r.resolveEntry(e, param, o.preferCached, start)
}

// ResolveMany resolves every registered key in keys. Keys without a
// registration are skipped, duplicates are resolved once, and the order of
// the returned values is unspecified. Failures are joined into err; the
// values that did resolve are still returned.
func (r *Registry) ResolveMany(keys []Key, param any, opts ...ResolveOption) ([]any, error) {
	resolved, err := r.resolveEach(keys, param, opts)
	values := make([]any, 0, len(resolved))
	for _, v := range resolved {
		values = append(values, v)
	}
	return values, err
}

// ResolveMap is ResolveMany keyed by registration.
func (r *Registry) ResolveMap(keys []Key, param any, opts ...ResolveOption) (map[Key]any, error) {
	return r.resolveEach(keys, param, opts)
}

func (r *Registry) resolveEach(keys []Key, param any, opts []ResolveOption) (map[Key]any, error) {
	o := newResolveOptions(opts)
	start := time.Now()

	entries := r.snapshot(keys)
	if misses := len(uniqueKeys(keys)) - len(entries); misses > 0 {
		r.stats.misses.Add(int64(misses))
	}

	values := make(map[Key]any, len(entries))
	var errs []error
	for _, e := range entries {
		v, ok, err := r.resolveEntry(e, param, o.preferCached, start)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if ok {
			values[e.key] = v
		}
	}

	return values, errors.Join(errs...)
}

// Unregister removes the registrations for keys. Absent keys are ignored.
func (r *Registry) Unregister(keys ...Key) {
	if len(keys) == 0 {
		return
	}

	r.mu.Lock()
	removed := 0
	for _, key := range keys {
		if _, ok := r.entries[key]; ok {
			delete(r.entries, key)
			removed++
		}
	}
	r.mu.Unlock()

	observability.LogUnregistered(r.logger, removed, len(keys))
	r.metrics.RecordRemoval(context.Background(), "unregister", removed)
}

// Clear removes every registration. Cached instances are dropped without
// being closed; use Close to dispose them.
func (r *Registry) Clear() {
	removed := len(r.swap())

	observability.LogCleared(r.logger, removed)
	r.metrics.RecordRemoval(context.Background(), "clear", removed)
}

// Contains reports whether key is registered.
func (r *Registry) Contains(key Key) bool {
	_, ok := r.lookup(key)
	return ok
}

// Keys returns all registered keys in unspecified order.
func (r *Registry) Keys() []Key {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]Key, 0, len(r.entries))
	for key := range r.entries {
		keys = append(keys, key)
	}
	return keys
}

// Len returns the number of registrations.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Stats returns a snapshot of the registry counters.
func (r *Registry) Stats() Statistics {
	return Statistics{
		Registrations: r.stats.registrations.Load(),
		Resolutions:   r.stats.resolutions.Load(),
		Misses:        r.stats.misses.Load(),
		CacheHits:     r.stats.cacheHits.Load(),
		FactoryCalls:  r.stats.factoryCalls.Load(),
		Failures:      r.stats.failures.Load(),
		Releases:      r.stats.releases.Load(),
	}
}

// lookup returns the entry for key under the read lock.
func (r *Registry) lookup(key Key) (*entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[key]
	return e, ok
}

// snapshot returns the entries registered under any of keys.
func (r *Registry) snapshot(keys []Key) []*entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[Key]struct{}, len(keys))
	entries := make([]*entry, 0, len(keys))
	for _, key := range keys {
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		if e, ok := r.entries[key]; ok {
			entries = append(entries, e)
		}
	}
	return entries
}

// swap replaces the table with an empty one and returns the old table.
func (r *Registry) swap() map[Key]*entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	old := r.entries
	r.entries = make(map[Key]*entry)
	return old
}

// resolveEntry runs the entry's resolution policy outside the table lock.
// A OneTime entry that another goroutine is already consuming reports ok=false.
func (r *Registry) resolveEntry(e *entry, param any, preferCached *bool, start time.Time) (any, bool, error) {
	oneTime := e.lifecycle == OneTime
	if oneTime && !e.claim() {
		r.miss(e.key, start)
		return nil, false, nil
	}

	value, cacheHit, err := e.resolve(param, preferCached, &r.seq)

	r.stats.resolutions.Add(1)
	if cacheHit {
		r.stats.cacheHits.Add(1)
	} else {
		r.stats.factoryCalls.Add(1)
	}

	if oneTime {
		if err == nil || r.release == ReleaseOnAttempt {
			r.releaseEntry(e)
		} else {
			e.unclaim()
		}
	}

	if err != nil {
		r.stats.failures.Add(1)
		observability.LogFactoryFailed(r.logger, e.key.String(), err)
		r.metrics.RecordResolution(context.Background(), e.key.Type(), observability.OutcomeFailed, time.Since(start))
		if r.onError != nil {
			r.onError(e.key, err)
		}
		return nil, true, err
	}

	outcome := observability.OutcomeCreated
	if cacheHit {
		outcome = observability.OutcomeCacheHit
	}

	duration := time.Since(start)
	r.metrics.RecordResolution(context.Background(), e.key.Type(), outcome, duration)
	if r.onResolved != nil {
		r.onResolved(e.key, value, duration)
	}

	return value, true, nil
}

// releaseEntry removes a consumed OneTime entry, unless a newer registration
// has replaced it in the meantime.
func (r *Registry) releaseEntry(e *entry) {
	r.mu.Lock()
	current, ok := r.entries[e.key]
	released := ok && current == e
	if released {
		delete(r.entries, e.key)
	}
	r.mu.Unlock()

	if released {
		r.stats.releases.Add(1)
		observability.LogReleased(r.logger, e.key.String())
		r.metrics.RecordRemoval(context.Background(), "release", 1)
	}
}

func (r *Registry) miss(key Key, start time.Time) {
	r.stats.misses.Add(1)
	r.metrics.RecordResolution(context.Background(), key.Type(), observability.OutcomeNotFound, time.Since(start))
}

func uniqueKeys(keys []Key) map[Key]struct{} {
	set := make(map[Key]struct{}, len(keys))
	for _, key := range keys {
		set[key] = struct{}{}
	}
	return set
}

package locator

import (
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"github.com/junioryono/locator/observability"
)

// Option configures a Registry created by New.
type Option func(*registryOptions)

type registryOptions struct {
	id      string
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	release ReleasePolicy

	// OnRegistered is called after a registration is stored.
	onRegistered func(key Key, lifecycle Lifecycle)

	// OnResolved is called after a successful resolution.
	onResolved func(key Key, instance any, duration time.Duration)

	// OnError is called after a failed resolution.
	onError func(key Key, err error)
}

// WithID sets the registry ID. By default a random UUID is used.
func WithID(id string) Option {
	return func(o *registryOptions) {
		o.id = id
	}
}

// WithLogger sets the logger used for registry events. A nil logger discards.
func WithLogger(logger *slog.Logger) Option {
	return func(o *registryOptions) {
		o.logger = logger
	}
}

// WithMetrics sets the metrics recorder. A nil recorder disables metrics.
func WithMetrics(metrics observability.MetricsRecorder) Option {
	return func(o *registryOptions) {
		o.metrics = metrics
	}
}

// WithReleasePolicy sets when OneTime registrations are removed.
// The default is ReleaseOnSuccess.
func WithReleasePolicy(policy ReleasePolicy) Option {
	return func(o *registryOptions) {
		o.release = policy
	}
}

// OnRegistered sets a callback invoked after every registration.
func OnRegistered(fn func(key Key, lifecycle Lifecycle)) Option {
	return func(o *registryOptions) {
		o.onRegistered = fn
	}
}

// OnResolved sets a callback invoked after every successful resolution.
func OnResolved(fn func(key Key, instance any, duration time.Duration)) Option {
	return func(o *registryOptions) {
		o.onResolved = fn
	}
}

// OnError sets a callback invoked after every failed resolution.
func OnError(fn func(key Key, err error)) Option {
	return func(o *registryOptions) {
		o.onError = fn
	}
}

// ========================================
// Per-call options
// ========================================

// RegisterOption configures the typed registration helpers.
type RegisterOption interface {
	applyRegisterOption(*registerOptions)
}

// ResolveOption configures a resolution.
type ResolveOption interface {
	applyResolveOption(*resolveOptions)
}

// FilterOption constrains Filter and Exists. Omitted components match anything.
type FilterOption interface {
	applyFilterOption(*filterOptions)
}

// KeyOption selects a key component. It is accepted wherever keys are built
// or matched.
type KeyOption interface {
	RegisterOption
	ResolveOption
	FilterOption
}

type registerOptions struct {
	name      any
	container any
	lifecycle Lifecycle
	metadata  Metadata
}

type resolveOptions struct {
	name         any
	container    any
	param        any
	preferCached *bool
}

type filterOptions struct {
	typ          string
	hasType      bool
	name         any
	hasName      bool
	container    any
	hasContainer bool
	where        func(Metadata) bool
}

func newRegisterOptions(lifecycle Lifecycle, opts []RegisterOption) *registerOptions {
	o := &registerOptions{lifecycle: lifecycle}
	for _, opt := range opts {
		if opt != nil {
			opt.applyRegisterOption(o)
		}
	}
	return o
}

func newResolveOptions(opts []ResolveOption) *resolveOptions {
	o := &resolveOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt.applyResolveOption(o)
		}
	}
	return o
}

func newFilterOptions(opts []FilterOption) *filterOptions {
	o := &filterOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt.applyFilterOption(o)
		}
	}
	return o
}

type nameOption struct{ name any }

func (n nameOption) String() string {
	return fmt.Sprintf("Name(%v)", n.name)
}

func (n nameOption) applyRegisterOption(o *registerOptions) { o.name = n.name }
func (n nameOption) applyResolveOption(o *resolveOptions)   { o.name = n.name }
func (n nameOption) applyFilterOption(o *filterOptions) {
	o.name = normalizeComponent("", "name", n.name)
	o.hasName = true
}

// Name selects the name component of a key. A nil name means Default.
func Name(name any) KeyOption {
	return nameOption{name: name}
}

type containerOption struct{ container any }

func (c containerOption) String() string {
	return fmt.Sprintf("InContainer(%v)", c.container)
}

func (c containerOption) applyRegisterOption(o *registerOptions) { o.container = c.container }
func (c containerOption) applyResolveOption(o *resolveOptions)   { o.container = c.container }
func (c containerOption) applyFilterOption(o *filterOptions) {
	o.container = normalizeComponent("", "container", c.container)
	o.hasContainer = true
}

// InContainer selects the container component of a key. A nil container
// means Default.
func InContainer(container any) KeyOption {
	return containerOption{container: container}
}

type registerOptionFunc func(*registerOptions)

func (f registerOptionFunc) applyRegisterOption(o *registerOptions) { f(o) }

// WithLifecycle overrides the lifecycle a typed registration helper uses.
func WithLifecycle(lifecycle Lifecycle) RegisterOption {
	return registerOptionFunc(func(o *registerOptions) {
		o.lifecycle = lifecycle
	})
}

// WithMetadata attaches metadata to a registration.
func WithMetadata(metadata Metadata) RegisterOption {
	return registerOptionFunc(func(o *registerOptions) {
		o.metadata = metadata
	})
}

type resolveOptionFunc func(*resolveOptions)

func (f resolveOptionFunc) applyResolveOption(o *resolveOptions) { f(o) }

// PreferCached overrides the registration's own caching decision for one
// resolution.
func PreferCached(cached bool) ResolveOption {
	return resolveOptionFunc(func(o *resolveOptions) {
		o.preferCached = &cached
	})
}

// WithParameter sets the parameter passed to the factory by the typed
// resolution helpers. Registry.Resolve takes the parameter explicitly.
func WithParameter(param any) ResolveOption {
	return resolveOptionFunc(func(o *resolveOptions) {
		o.param = param
	})
}

type filterOptionFunc func(*filterOptions)

func (f filterOptionFunc) applyFilterOption(o *filterOptions) { f(o) }

// OfType matches keys with the given type identifier.
func OfType(typ string) FilterOption {
	return filterOptionFunc(func(o *filterOptions) {
		o.typ = typ
		o.hasType = true
	})
}

// WhereMetadata matches registrations whose metadata satisfies pred.
// pred runs while the registry is read-locked and must not call back into it.
func WhereMetadata(pred func(Metadata) bool) FilterOption {
	return filterOptionFunc(func(o *filterOptions) {
		o.where = pred
	})
}

// MetadataEquals returns a predicate for WhereMetadata that matches metadata
// holding value under key.
func MetadataEquals(key, value any) func(Metadata) bool {
	return func(m Metadata) bool {
		v, ok := m[key]
		return ok && reflect.DeepEqual(v, value)
	}
}

// Package digbridge exposes registry entries to a go.uber.org/dig container,
// so constructors wired by dig can depend on values held by a locator
// Registry.
//
// Example:
//
//	r := locator.New()
//	locator.RegisterInstance(r, cfg)
//
//	c := dig.New()
//	if err := digbridge.Provide[*Config](c, r, nil); err != nil {
//	    return err
//	}
//	err := c.Invoke(func(cfg *Config) { ... })
package digbridge

import (
	"fmt"

	"go.uber.org/dig"

	"github.com/junioryono/locator"
)

// Provide makes the registration of T under name (in the Default container)
// available from c. A registration that is missing when dig invokes the
// constructor fails with a locator.ResolutionError wrapping ErrNotFound.
func Provide[T any](c *dig.Container, r *locator.Registry, name any, opts ...dig.ProvideOption) error {
	return ProvideKey[T](c, r, locator.KeyFor[T](name, nil), nil, opts...)
}

// ProvideKey makes the registration under key available from c as a T,
// resolving it with param each time dig needs the value. dig itself caches
// the value per container, so a Transient registration is still resolved
// only once per container.
//
// A key whose name is not Default is provided under dig.Name(fmt.Sprint(name)).
func ProvideKey[T any](c *dig.Container, r *locator.Registry, key locator.Key, param any, opts ...dig.ProvideOption) error {
	if key.Name() != locator.Default {
		opts = append([]dig.ProvideOption{dig.Name(fmt.Sprint(key.Name()))}, opts...)
	}

	return c.Provide(func() (T, error) {
		var zero T

		value, ok, err := locator.ResolveKey[T](r, key, locator.WithParameter(param))
		if err != nil {
			return zero, locator.ResolutionError{Key: key, Cause: err}
		}
		if !ok {
			return zero, locator.ResolutionError{Key: key, Cause: locator.ErrNotFound}
		}
		return value, nil
	}, opts...)
}

// ProvideAll provides every registration of T in container to c, each under
// its own name. The registration named Default is provided without a name.
func ProvideAll[T any](c *dig.Container, r *locator.Registry, container any) error {
	keys := r.Filter(locator.OfType(locator.TypeID[T]()), locator.InContainer(container))

	for _, key := range keys {
		if err := ProvideKey[T](c, r, key, nil); err != nil {
			return fmt.Errorf("provide %s: %w", key, err)
		}
	}

	return nil
}

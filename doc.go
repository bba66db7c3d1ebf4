// Package locator provides a concurrent dependency registry for Go
// applications: a service locator usable without a DI framework.
//
// # Overview
//
// Callers register a factory under a Key made of a type identifier, a name
// and a container, and later resolve that key to obtain a value. The library
// provides:
//   - Three lifecycles: Transient, Cached and OneTime
//   - Named registrations and independent containers (namespaces)
//   - Metadata attached to registrations, with filtering
//   - Typed generic helpers on top of the type-erased core
//   - Modules for organizing registrations
//   - Thread-safe operations
//
// # Basic Usage
//
// Create a registry, register factories, and resolve them:
//
//	r := locator.New()
//	defer r.Close()
//
//	locator.RegisterFactory(r, func(n int) (int, error) {
//	    return n * 2, nil
//	}, locator.Name("double"))
//
//	v, ok, err := locator.Resolve[int](r, locator.Name("double"), locator.WithParameter(3))
//	// v == 6, ok == true, err == nil
//
// # Keys
//
// A Key is a comparable value. The type identifier is an opaque string;
// TypeID derives one from a Go type for the typed helpers. The name and
// container default to the Default sentinel:
//
//	key := locator.NewKey("*database/sql.DB", "primary", nil)
//	key == locator.NewKey("*database/sql.DB", "primary", locator.Default) // true
//
// # Lifecycles
//
//   - Transient: the factory runs on every resolution
//   - Cached: the factory runs once; the first value is returned forever,
//     whatever parameter later resolutions pass
//   - OneTime: the registration is consumed by its first resolution
//
// A resolution may override the caching decision with PreferCached. Cached
// factories run at most once per registration even under concurrent
// resolution.
//
// # Missing registrations
//
// Resolving an unregistered key is not an error: Resolve returns ok == false.
// Errors are reserved for failing factories (FactoryError, FactoryPanicError)
// and for values of the wrong type (TypeMismatchError).
//
// # Containers and filtering
//
//	locator.RegisterInstance(r, testDB, locator.InContainer("test"))
//	locator.RegisterInstance(r, prodDB, locator.InContainer("prod"))
//
//	keys := r.Filter(locator.InContainer("test")) // one key
//	db, _, _ := locator.Resolve[*sql.DB](r, locator.InContainer("prod"))
//
// # Default registry
//
// DefaultRegistry returns a process-wide registry for application wiring;
// SetDefaultRegistry replaces it. Libraries should take a *Registry instead.
//
// # Thread Safety
//
// All operations are safe for concurrent use. A single reader/writer lock
// guards the registration table; factories run outside of it.
package locator

package locator

import (
	"errors"
	"reflect"
)

// TypeID returns the type identifier the typed helpers use for T: the
// package path and name for named types ("net/http.Client",
// "*database/sql.DB"), and the Go syntax otherwise ("[]string").
func TypeID[T any]() string {
	return typeID(reflect.TypeFor[T]())
}

func typeID(t reflect.Type) string {
	if t.Kind() == reflect.Pointer {
		return "*" + typeID(t.Elem())
	}

	if t.Name() != "" && t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}

	return t.String()
}

// KeyFor returns the key for T under name and container. nil means Default.
func KeyFor[T any](name, container any) Key {
	return NewKey(TypeID[T](), name, container)
}

// RegisterFactory registers a factory that takes a parameter of type P and
// produces a T. Resolving with a parameter that is not a P fails with a
// TypeMismatchError; a nil parameter is passed as the zero P.
//
// The lifecycle defaults to Transient.
//
// Example:
//
//	locator.RegisterFactory(r, func(n int) (int, error) {
//	    return n * 2, nil
//	}, locator.Name("double"))
func RegisterFactory[P, T any](r *Registry, factory func(P) (T, error), opts ...RegisterOption) Key {
	o := newRegisterOptions(Transient, opts)
	key := KeyFor[T](o.name, o.container)

	return r.Register(key, func(param any) (any, error) {
		p, ok := param.(P)
		if !ok && param != nil {
			return nil, TypeMismatchError{
				Key:      key,
				Expected: reflect.TypeFor[P](),
				Actual:   reflect.TypeOf(param),
				Context:  "parameter",
			}
		}
		return factory(p)
	}, o.lifecycle, o.metadata)
}

// RegisterFunc registers a factory that ignores the resolution parameter.
// The lifecycle defaults to Transient.
func RegisterFunc[T any](r *Registry, factory func() (T, error), opts ...RegisterOption) Key {
	o := newRegisterOptions(Transient, opts)

	return r.Register(KeyFor[T](o.name, o.container), func(any) (any, error) {
		return factory()
	}, o.lifecycle, o.metadata)
}

// RegisterInstance registers a ready-made value. The lifecycle defaults to
// Cached, so every resolution returns instance.
func RegisterInstance[T any](r *Registry, instance T, opts ...RegisterOption) Key {
	o := newRegisterOptions(Cached, opts)

	return r.Register(KeyFor[T](o.name, o.container), func(any) (any, error) {
		return instance, nil
	}, o.lifecycle, o.metadata)
}

// Resolve resolves the registration for T selected by Name and InContainer.
// ok is false when nothing is registered. A produced value that is not a T
// fails with a TypeMismatchError.
//
// Example:
//
//	double, ok, err := locator.Resolve[int](r, locator.Name("double"), locator.WithParameter(3))
func Resolve[T any](r *Registry, opts ...ResolveOption) (T, bool, error) {
	o := newResolveOptions(opts)
	return ResolveKey[T](r, KeyFor[T](o.name, o.container), opts...)
}

// ResolveKey resolves key and asserts the result to T. Name and InContainer
// options are ignored; key selects the registration.
func ResolveKey[T any](r *Registry, key Key, opts ...ResolveOption) (T, bool, error) {
	var zero T

	o := newResolveOptions(opts)
	value, ok, err := r.Resolve(key, o.param, opts...)
	if err != nil || !ok {
		return zero, ok, err
	}

	return assertType[T](key, value)
}

// MustResolve is like Resolve but panics with a ResolutionError when the
// registration is missing or fails.
func MustResolve[T any](r *Registry, opts ...ResolveOption) T {
	o := newResolveOptions(opts)
	key := KeyFor[T](o.name, o.container)

	value, ok, err := ResolveKey[T](r, key, opts...)
	if err != nil {
		panic(ResolutionError{Key: key, Cause: err})
	}
	if !ok {
		panic(ResolutionError{Key: key, Cause: ErrNotFound})
	}
	return value
}

// ResolveAll resolves every registration of T matching opts, across all
// names and, unless InContainer is given, all containers. Order is
// unspecified.
func ResolveAll[T any](r *Registry, param any, opts ...FilterOption) ([]T, error) {
	keys := r.Filter(append([]FilterOption{OfType(TypeID[T]())}, opts...)...)

	resolved, err := r.ResolveMap(keys, param)

	values := make([]T, 0, len(resolved))
	var mismatches []error
	for key, v := range resolved {
		t, _, terr := assertType[T](key, v)
		if terr != nil {
			mismatches = append(mismatches, terr)
			continue
		}
		values = append(values, t)
	}

	return values, errors.Join(append([]error{err}, mismatches...)...)
}

func assertType[T any](key Key, value any) (T, bool, error) {
	var zero T

	if value == nil {
		if !nilable(reflect.TypeFor[T]()) {
			return zero, true, TypeMismatchError{
				Key:      key,
				Expected: reflect.TypeFor[T](),
				Context:  "result",
			}
		}
		return zero, true, nil
	}

	t, ok := value.(T)
	if !ok {
		return zero, true, TypeMismatchError{
			Key:      key,
			Expected: reflect.TypeFor[T](),
			Actual:   reflect.TypeOf(value),
			Context:  "result",
		}
	}
	return t, true, nil
}

// nilable reports whether nil is a valid value of t.
func nilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return true
	default:
		return false
	}
}

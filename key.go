package locator

import (
	"fmt"
	"hash/maphash"
	"reflect"
)

// Sentinel is the type of the well-known Default value.
type Sentinel string

// Default is the name and container a Key carries when the caller supplies none.
// It is a distinct type, so Default never equals the plain string "default".
const Default Sentinel = "default"

// Key identifies a registration by contract type, name and container.
//
// Keys are comparable values: two keys are equal iff all three components are
// equal, which makes them usable as map keys and with ==. A Key is immutable
// once constructed; WithName and InContainer return modified copies.
//
// The zero Key has an empty type and nil name and container. Use NewKey to
// get the Default sentinel filled in.
type Key struct {
	typ       string
	name      any
	container any
}

// NewKey creates a Key. A nil name or container is replaced by Default.
//
// name and container must be comparable values; NewKey panics with a KeyError
// otherwise, because such a key could never be looked up.
//
// Example:
//
//	key := locator.NewKey("*sql.DB", "primary", nil)
//	fmt.Println(key) // *sql.DB[name=primary, container=default]
func NewKey(typ string, name, container any) Key {
	return Key{
		typ:       typ,
		name:      normalizeComponent(typ, "name", name),
		container: normalizeComponent(typ, "container", container),
	}
}

// Type returns the contract type identifier.
func (k Key) Type() string {
	return k.typ
}

// Name returns the name component.
func (k Key) Name() any {
	return k.name
}

// Container returns the container component.
func (k Key) Container() any {
	return k.container
}

// WithName returns a copy of k with the name replaced.
func (k Key) WithName(name any) Key {
	k.name = normalizeComponent(k.typ, "name", name)
	return k
}

// InContainer returns a copy of k with the container replaced.
func (k Key) InContainer(container any) Key {
	k.container = normalizeComponent(k.typ, "container", container)
	return k
}

// Hash returns a hash of k that is consistent with ==: equal keys produce
// equal hashes for the same seed.
func (k Key) Hash(seed maphash.Seed) uint64 {
	return maphash.Comparable(seed, k)
}

// String implements fmt.Stringer.
func (k Key) String() string {
	return fmt.Sprintf("%s[name=%v, container=%v]", k.typ, k.name, k.container)
}

func normalizeComponent(typ, component string, v any) any {
	if v == nil {
		return Default
	}

	if !reflect.ValueOf(v).Comparable() {
		panic(KeyError{Type: typ, Component: component, Value: v})
	}

	return v
}

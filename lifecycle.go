package locator

import (
	"encoding/json"
	"fmt"
)

// Lifecycle specifies how the result of a registration's factory is reused.
type Lifecycle int

const (
	// Transient invokes the factory on every resolution and never caches.
	Transient Lifecycle = iota

	// Cached invokes the factory on the first resolution and returns that
	// result for every later resolution, whatever parameter is passed.
	Cached

	// OneTime behaves like Transient, but the registration is removed from the
	// registry once it has been resolved.
	//
	// While one resolution is consuming the registration, concurrent
	// resolutions of the same key report it as absent. Under
	// ReleaseOnSuccess a failed factory leaves the registration in place, so
	// a caller told it was absent may later find it registered again.
	OneTime
)

// String returns the string representation of the Lifecycle.
func (l Lifecycle) String() string {
	switch l {
	case Transient:
		return "Transient"
	case Cached:
		return "Cached"
	case OneTime:
		return "OneTime"
	default:
		return fmt.Sprintf("Unknown(%d)", int(l))
	}
}

// IsValid checks if the lifecycle is valid.
func (l Lifecycle) IsValid() bool {
	return l >= Transient && l <= OneTime
}

// MarshalText implements encoding.TextMarshaler.
func (l Lifecycle) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Lifecycle) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Transient", "transient":
		*l = Transient
	case "Cached", "cached":
		*l = Cached
	case "OneTime", "onetime", "one_time":
		*l = OneTime
	default:
		return LifecycleError{Value: string(text)}
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (l Lifecycle) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *Lifecycle) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	return l.UnmarshalText([]byte(s))
}

// ReleasePolicy decides when a OneTime registration is removed.
type ReleasePolicy int

const (
	// ReleaseOnSuccess removes a OneTime registration only after a resolution
	// that returned without error. A failed resolution leaves it registered.
	ReleaseOnSuccess ReleasePolicy = iota

	// ReleaseOnAttempt removes a OneTime registration after the first
	// resolution attempt, whether or not the factory failed.
	ReleaseOnAttempt
)

// String returns the string representation of the ReleasePolicy.
func (p ReleasePolicy) String() string {
	switch p {
	case ReleaseOnSuccess:
		return "on_success"
	case ReleaseOnAttempt:
		return "on_attempt"
	default:
		return fmt.Sprintf("unknown(%d)", int(p))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p ReleasePolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *ReleasePolicy) UnmarshalText(text []byte) error {
	switch string(text) {
	case "on_success", "":
		*p = ReleaseOnSuccess
	case "on_attempt":
		*p = ReleaseOnAttempt
	default:
		return ReleasePolicyError{Value: string(text)}
	}
	return nil
}

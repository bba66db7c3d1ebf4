package locator

// Filter returns the keys of every registration matching opts, in
// unspecified order. A key matches when each given component (OfType, Name,
// InContainer) equals the key's component and the WhereMetadata predicate,
// if any, accepts the registration's metadata. Filter() returns all keys.
//
// Example:
//
//	testKeys := r.Filter(locator.InContainer("test"))
//	loggers := r.Filter(locator.OfType("*slog.Logger"), locator.WhereMetadata(
//	    locator.MetadataEquals("level", "debug"),
//	))
func (r *Registry) Filter(opts ...FilterOption) []Key {
	q := newFilterOptions(opts)

	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]Key, 0)
	for key, e := range r.entries {
		if q.matches(key, e) {
			keys = append(keys, key)
		}
	}
	return keys
}

// Exists reports whether any registration matches opts. It is equivalent to
// len(r.Filter(opts...)) > 0 but stops at the first match.
func (r *Registry) Exists(opts ...FilterOption) bool {
	q := newFilterOptions(opts)

	r.mu.RLock()
	defer r.mu.RUnlock()

	for key, e := range r.entries {
		if q.matches(key, e) {
			return true
		}
	}
	return false
}

// matches reports whether the key and its entry satisfy every given constraint.
func (q *filterOptions) matches(key Key, e *entry) bool {
	if q.hasType && key.typ != q.typ {
		return false
	}

	if q.hasName && key.name != q.name {
		return false
	}

	if q.hasContainer && key.container != q.container {
		return false
	}

	if q.where != nil {
		// The predicate gets a copy so it cannot alter stored metadata.
		return q.where(e.metadata.clone())
	}

	return true
}

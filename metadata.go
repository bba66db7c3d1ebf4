package locator

// Metadata returns a shallow copy of the metadata attached to key's
// registration. ok is false when key is not registered; a registration
// without metadata returns a nil map and ok true.
func (r *Registry) Metadata(key Key) (Metadata, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[key]
	if !ok {
		return nil, false
	}
	return e.metadata.clone(), true
}

// MetadataMany returns the metadata of every registered key in keys.
// Unregistered keys are absent from the result.
func (r *Registry) MetadataMany(keys []Key) map[Key]Metadata {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[Key]Metadata, len(keys))
	for _, key := range keys {
		if e, ok := r.entries[key]; ok {
			result[key] = e.metadata.clone()
		}
	}
	return result
}

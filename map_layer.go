package contexts

import "github.com/goliatone/go-contexts/internal/deepclone"

// MapLayer is the default Layer implementation backed by a Go map. Values are
// stored behind pointers so GetRef can hand out stable in-place mutation
// handles.
type MapLayer[K comparable, V any] struct {
	entries map[K]*V
}

// NewMapLayer constructs an empty layer.
func NewMapLayer[K comparable, V any]() *MapLayer[K, V] {
	return &MapLayer[K, V]{entries: make(map[K]*V)}
}

// MapLayerOf constructs a layer seeded with the entries of src. The source
// map is copied; later mutations of src do not affect the layer.
func MapLayerOf[K comparable, V any](src map[K]V) *MapLayer[K, V] {
	layer := &MapLayer[K, V]{entries: make(map[K]*V, len(src))}
	for key, value := range src {
		value := value
		layer.entries[key] = &value
	}
	return layer
}

// MapLayerOfEntries constructs a layer from explicit entries. Duplicate keys
// keep the last value supplied.
func MapLayerOfEntries[K comparable, V any](entries ...Entry[K, V]) *MapLayer[K, V] {
	layer := &MapLayer[K, V]{entries: make(map[K]*V, len(entries))}
	for _, entry := range entries {
		value := entry.Value
		layer.entries[entry.Key] = &value
	}
	return layer
}

// Get returns the value stored for key.
func (l *MapLayer[K, V]) Get(key K) (V, bool) {
	if ref, ok := l.entries[key]; ok {
		return *ref, true
	}
	var zero V
	return zero, false
}

// GetRef returns an in-place mutation handle for key.
func (l *MapLayer[K, V]) GetRef(key K) (*V, bool) {
	ref, ok := l.entries[key]
	return ref, ok
}

// Insert stores value under key, returning the prior value when one was
// replaced.
func (l *MapLayer[K, V]) Insert(key K, value V) (V, bool) {
	if l.entries == nil {
		l.entries = make(map[K]*V)
	}
	var prior V
	ref, replaced := l.entries[key]
	if replaced {
		prior = *ref
	}
	l.entries[key] = &value
	return prior, replaced
}

// Remove deletes key from the layer, returning the removed value if present.
func (l *MapLayer[K, V]) Remove(key K) (V, bool) {
	if ref, ok := l.entries[key]; ok {
		delete(l.entries, key)
		return *ref, true
	}
	var zero V
	return zero, false
}

// ContainsKey reports whether key is present.
func (l *MapLayer[K, V]) ContainsKey(key K) bool {
	_, ok := l.entries[key]
	return ok
}

// Len returns the number of entries stored.
func (l *MapLayer[K, V]) Len() int {
	return len(l.entries)
}

// Entries returns a snapshot of the stored entries in no particular order.
func (l *MapLayer[K, V]) Entries() []Entry[K, V] {
	out := make([]Entry[K, V], 0, len(l.entries))
	for key, ref := range l.entries {
		out = append(out, Entry[K, V]{Key: key, Value: *ref})
	}
	return out
}

// Clone returns an independent deep copy. Values are duplicated recursively
// so reference-typed V never aliases between the copy and the original.
func (l *MapLayer[K, V]) Clone() Layer[K, V] {
	clone := &MapLayer[K, V]{entries: make(map[K]*V, len(l.entries))}
	for key, ref := range l.entries {
		value := deepclone.Clone(*ref)
		clone.entries[key] = &value
	}
	return clone
}

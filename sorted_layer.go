package contexts

import (
	"cmp"
	"slices"

	"github.com/goliatone/go-contexts/internal/deepclone"
)

// SortedLayer is a Layer whose Entries enumerate in ascending key order. It
// stands in for ordered-tree maps when callers need deterministic iteration,
// most notably as the result type of CollapseOrdered. Ordering is materialised
// on enumeration; point operations stay O(1).
type SortedLayer[K cmp.Ordered, V any] struct {
	entries map[K]*V
}

// NewSortedLayer constructs an empty key-ordered layer.
func NewSortedLayer[K cmp.Ordered, V any]() *SortedLayer[K, V] {
	return &SortedLayer[K, V]{entries: make(map[K]*V)}
}

// SortedLayerOf constructs a key-ordered layer seeded with the entries of src.
func SortedLayerOf[K cmp.Ordered, V any](src map[K]V) *SortedLayer[K, V] {
	layer := &SortedLayer[K, V]{entries: make(map[K]*V, len(src))}
	for key, value := range src {
		value := value
		layer.entries[key] = &value
	}
	return layer
}

// Get returns the value stored for key.
func (l *SortedLayer[K, V]) Get(key K) (V, bool) {
	if ref, ok := l.entries[key]; ok {
		return *ref, true
	}
	var zero V
	return zero, false
}

// GetRef returns an in-place mutation handle for key.
func (l *SortedLayer[K, V]) GetRef(key K) (*V, bool) {
	ref, ok := l.entries[key]
	return ref, ok
}

// Insert stores value under key, returning the prior value when one was
// replaced.
func (l *SortedLayer[K, V]) Insert(key K, value V) (V, bool) {
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
func (l *SortedLayer[K, V]) Remove(key K) (V, bool) {
	if ref, ok := l.entries[key]; ok {
		delete(l.entries, key)
		return *ref, true
	}
	var zero V
	return zero, false
}

// ContainsKey reports whether key is present.
func (l *SortedLayer[K, V]) ContainsKey(key K) bool {
	_, ok := l.entries[key]
	return ok
}

// Len returns the number of entries stored.
func (l *SortedLayer[K, V]) Len() int {
	return len(l.entries)
}

// Entries returns the stored entries sorted by key.
func (l *SortedLayer[K, V]) Entries() []Entry[K, V] {
	out := make([]Entry[K, V], 0, len(l.entries))
	for key, ref := range l.entries {
		out = append(out, Entry[K, V]{Key: key, Value: *ref})
	}
	slices.SortFunc(out, func(a, b Entry[K, V]) int {
		return cmp.Compare(a.Key, b.Key)
	})
	return out
}

// Keys returns the stored keys in ascending order.
func (l *SortedLayer[K, V]) Keys() []K {
	out := make([]K, 0, len(l.entries))
	for key := range l.entries {
		out = append(out, key)
	}
	slices.Sort(out)
	return out
}

// Clone returns an independent deep copy.
func (l *SortedLayer[K, V]) Clone() Layer[K, V] {
	clone := &SortedLayer[K, V]{entries: make(map[K]*V, len(l.entries))}
	for key, ref := range l.entries {
		value := deepclone.Clone(*ref)
		clone.entries[key] = &value
	}
	return clone
}

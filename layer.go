package contexts

// Entry pairs a key with its value. Construction helpers and enumeration
// methods exchange entries instead of exposing layer internals.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// Layer is the capability contract a map must satisfy to participate in a
// Manager. The manager never assumes anything about how a layer stores its
// entries beyond point lookups, point mutation, cardinality, and the ability
// to produce an independent deep copy.
//
// GetRef returns a handle into the stored value so callers can mutate it in
// place; the handle stays valid until the key is inserted over or removed.
type Layer[K comparable, V any] interface {
	Get(key K) (V, bool)
	GetRef(key K) (*V, bool)
	Insert(key K, value V) (V, bool)
	Remove(key K) (V, bool)
	ContainsKey(key K) bool
	Len() int
	Entries() []Entry[K, V]
	Clone() Layer[K, V]
}

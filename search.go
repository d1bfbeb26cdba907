package contexts

import "fmt"

// Scoped search walks the layer sequence from a start index toward the
// least-local end, returning the first match. Less local layers never shadow
// more local ones. An out-of-range start index is an absent result, the same
// recoverable outcome as a missing key.

// Get searches every layer starting at the local context.
func (m *Manager[K, V]) Get(key K) (V, bool) {
	return m.GetFrom(0, key)
}

// GetFrom searches layers [index, Len) in increasing-index order.
func (m *Manager[K, V]) GetFrom(index int, key K) (V, bool) {
	if index < 0 {
		index = 0
	}
	for i := index; i < len(m.layers); i++ {
		if value, ok := m.layers[i].Get(key); ok {
			return value, true
		}
	}
	var zero V
	return zero, false
}

// GetLocal searches only the local layer.
func (m *Manager[K, V]) GetLocal(key K) (V, bool) {
	if len(m.layers) == 0 {
		var zero V
		return zero, false
	}
	return m.layers[0].Get(key)
}

// GetAll returns every value associated with key, ordered from most local to
// least local. Shadowed values are included.
func (m *Manager[K, V]) GetAll(key K) []V {
	var out []V
	for _, layer := range m.layers {
		if value, ok := layer.Get(key); ok {
			out = append(out, value)
		}
	}
	return out
}

// GetRef returns an in-place mutation handle from the first layer containing
// key. Mutating through it changes that layer's stored value; it does not
// move the value to the local context.
func (m *Manager[K, V]) GetRef(key K) (*V, bool) {
	return m.GetRefFrom(0, key)
}

// GetRefFrom is GetRef starting the scan at index.
func (m *Manager[K, V]) GetRefFrom(index int, key K) (*V, bool) {
	if index < 0 {
		index = 0
	}
	for i := index; i < len(m.layers); i++ {
		if ref, ok := m.layers[i].GetRef(key); ok {
			return ref, true
		}
	}
	return nil, false
}

// GetLocalRef returns an in-place mutation handle from the local layer only.
func (m *Manager[K, V]) GetLocalRef(key K) (*V, bool) {
	if len(m.layers) == 0 {
		return nil, false
	}
	return m.layers[0].GetRef(key)
}

// ContainsKey reports whether any layer contains key.
func (m *Manager[K, V]) ContainsKey(key K) bool {
	return m.ContainsKeyFrom(0, key)
}

// ContainsKeyFrom reports whether any layer in [index, Len) contains key.
func (m *Manager[K, V]) ContainsKeyFrom(index int, key K) bool {
	if index < 0 {
		index = 0
	}
	for i := index; i < len(m.layers); i++ {
		if m.layers[i].ContainsKey(key) {
			return true
		}
	}
	return false
}

// ContainsLocalKey reports whether the local layer contains key.
func (m *Manager[K, V]) ContainsLocalKey(key K) bool {
	return len(m.layers) > 0 && m.layers[0].ContainsKey(key)
}

// MustGet returns the value an unscoped Get resolves for key. Unlike the
// query family, the key is required to resolve: calling MustGet for a key no
// layer contains is a contract violation and panics.
func (m *Manager[K, V]) MustGet(key K) V {
	value, ok := m.Get(key)
	if !ok {
		panic(fmt.Sprintf("contexts: no layer contains key %v", key))
	}
	return value
}

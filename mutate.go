package contexts

// Insert writes value into the local layer, returning the prior local value
// when one was replaced. On a manager with zero layers the insert is inert:
// no layer is created and no value is stored.
func (m *Manager[K, V]) Insert(key K, value V) (V, bool) {
	if len(m.layers) == 0 {
		var zero V
		return zero, false
	}
	prior, replaced := m.layers[0].Insert(key, value)
	m.emitInserted(key, prior, value, replaced)
	return prior, replaced
}

// Remove deletes key from the local layer only, returning the removed value
// if it was locally present. Values at deeper layers are untouched and become
// visible again through Get.
func (m *Manager[K, V]) Remove(key K) (V, bool) {
	if len(m.layers) == 0 {
		var zero V
		return zero, false
	}
	removed, ok := m.layers[0].Remove(key)
	if ok {
		m.emitRemoved(key, removed, 1)
	}
	return removed, ok
}

// RemoveAll deletes key from every layer, returning the value an unscoped Get
// would have resolved beforehand. Use GetAll first when the shadowed values
// matter.
func (m *Manager[K, V]) RemoveAll(key K) (V, bool) {
	visible, found := m.Get(key)
	cleared := 0
	for _, layer := range m.layers {
		if _, ok := layer.Remove(key); ok {
			cleared++
		}
	}
	if found {
		m.emitRemoved(key, visible, cleared)
	}
	return visible, found
}

// Extend inserts every entry of src into the local layer. Inert when the
// manager has zero layers.
func (m *Manager[K, V]) Extend(src map[K]V) {
	if len(m.layers) == 0 {
		return
	}
	for key, value := range src {
		m.Insert(key, value)
	}
}

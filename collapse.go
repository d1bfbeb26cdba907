package contexts

import "cmp"

// Collapse folds all layers into a single flat map, iterating from the least
// local layer to the most local so that more local values overwrite less
// local ones for shared keys. The result is a snapshot with no further
// relationship to the manager, and the only way to enumerate the manager's
// effective key-value pairs.
func (m *Manager[K, V]) Collapse() map[K]V {
	out := make(map[K]V)
	m.CollapseInto(out)
	return out
}

// CollapseInto folds all layers into dst. Existing entries of dst are kept
// unless a layer provides the same key.
func (m *Manager[K, V]) CollapseInto(dst map[K]V) {
	if dst == nil {
		return
	}
	for i := len(m.layers) - 1; i >= 0; i-- {
		for _, entry := range m.layers[i].Entries() {
			dst[entry.Key] = entry.Value
		}
	}
	m.emitCollapsed(len(dst))
}

// CollapseOrdered folds all layers of m into a key-ordered layer, most local
// values winning. Standalone function because ordered enumeration constrains
// the key type beyond what Manager requires.
func CollapseOrdered[K cmp.Ordered, V any](m *Manager[K, V]) *SortedLayer[K, V] {
	out := NewSortedLayer[K, V]()
	CollapseOrderedInto(m, out)
	return out
}

// CollapseOrderedInto folds all layers of m into dst, most local values
// winning over both less local ones and entries already present in dst.
func CollapseOrderedInto[K cmp.Ordered, V any](m *Manager[K, V], dst *SortedLayer[K, V]) {
	if dst == nil {
		return
	}
	for i := m.Len() - 1; i >= 0; i-- {
		for _, entry := range m.layers[i].Entries() {
			dst.Insert(entry.Key, entry.Value)
		}
	}
	m.emitCollapsed(dst.Len())
}

package contexts

import "encoding/json"

// Descriptor summarises the shape of a manager: how many layers it holds,
// their sizes local-first, and the size of the key union across all layers.
type Descriptor struct {
	ManagerID string `json:"manager_id,omitempty"`
	Layers    int    `json:"layers"`
	Sizes     []int  `json:"sizes"`
	Keys      int    `json:"keys"`
}

// ToJSON serialises the descriptor.
func (d Descriptor) ToJSON() ([]byte, error) {
	type alias Descriptor
	return json.Marshal(alias(d))
}

// Describe returns a snapshot descriptor of the manager.
func (m *Manager[K, V]) Describe() Descriptor {
	descriptor := Descriptor{
		ManagerID: m.cfg.id,
		Layers:    len(m.layers),
		Sizes:     make([]int, 0, len(m.layers)),
	}
	union := make(map[K]struct{})
	for _, layer := range m.layers {
		descriptor.Sizes = append(descriptor.Sizes, layer.Len())
		for _, entry := range layer.Entries() {
			union[entry.Key] = struct{}{}
		}
	}
	descriptor.Keys = len(union)
	return descriptor
}

package contexts

import (
	"github.com/goliatone/go-contexts/internal/hydrate"
)

// FromJSON constructs a manager whose layer sequence is decoded from a JSON
// document: either a top-level array of objects, local-first, or an object
// with a single "layers" key holding that array.
func FromJSON(data []byte, opts ...ManagerOption) (*Manager[string, any], error) {
	layers, err := hydrate.NewDecoder().DecodeJSON(hydrate.Context{}, data)
	if err != nil {
		return nil, err
	}
	return fromDecoded(layers, opts), nil
}

// FromYAML constructs a manager whose layer sequence is decoded from a YAML
// document with the same accepted shapes as FromJSON.
func FromYAML(data []byte, opts ...ManagerOption) (*Manager[string, any], error) {
	layers, err := hydrate.NewDecoder().DecodeYAML(hydrate.Context{}, data)
	if err != nil {
		return nil, err
	}
	return fromDecoded(layers, opts), nil
}

func fromDecoded(decoded []map[string]any, opts []ManagerOption) *Manager[string, any] {
	layers := make([]Layer[string, any], 0, len(decoded))
	for _, src := range decoded {
		layers = append(layers, MapLayerOf(src))
	}
	return &Manager[string, any]{
		layers: layers,
		cfg:    applyManagerOptions(opts),
	}
}

package contexts

import (
	"encoding/json"
	"fmt"
)

// Trace captures provenance information for a single key lookup across the
// layer sequence that produced the effective value.
type Trace struct {
	Key    string       `json:"key"`
	Layers []Provenance `json:"layers"`
}

// Provenance details how one layer contributed to a traced lookup.
type Provenance struct {
	Depth int  `json:"depth"`
	Size  int  `json:"size"`
	Value any  `json:"value,omitempty"`
	Found bool `json:"found"`
}

// ToJSON serialises the trace into JSON for logging or transport helpers.
func (t Trace) ToJSON() ([]byte, error) {
	type alias Trace
	return json.Marshal(alias(t))
}

// TraceFromJSON deserialises a JSON payload that was previously generated via
// ToJSON.
func TraceFromJSON(payload []byte) (Trace, error) {
	type alias Trace
	var trace alias
	if err := json.Unmarshal(payload, &trace); err != nil {
		return Trace{}, err
	}
	return Trace(trace), nil
}

// GetWithTrace resolves key like Get while recording, for every layer, whether
// it held the key and with which value. The returned value and bool follow the
// usual scoped-search contract; the trace always covers the full sequence even
// past the first match so shadowed values stay visible to diagnostics.
func (m *Manager[K, V]) GetWithTrace(key K) (V, bool, Trace) {
	trace := Trace{
		Key:    fmt.Sprint(key),
		Layers: make([]Provenance, 0, len(m.layers)),
	}
	var resolved V
	found := false
	for depth, layer := range m.layers {
		entry := Provenance{Depth: depth, Size: layer.Len()}
		if value, ok := layer.Get(key); ok {
			entry.Found = true
			entry.Value = value
			if !found {
				resolved = value
				found = true
			}
		}
		trace.Layers = append(trace.Layers, entry)
	}
	return resolved, found, trace
}

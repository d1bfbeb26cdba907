package contexts

// View is a read-only, one-shot snapshot of a manager's effective bindings
// prepared for expression queries. It is built by collapsing the layer
// sequence once; later manager mutations never flow into an existing view.
//
// Views require string keys because expression engines bind variables by
// name. Values are exposed as-is under their keys, alongside the depth map
// recording which layer supplied each value.
type View[V any] struct {
	bindings map[string]any
	depths   map[string]int
	cfg      viewConfig
}

// NewView collapses m into a queryable snapshot. Options configure the
// expression engine, program cache, custom functions, and logging.
func NewView[V any](m *Manager[string, V], opts ...Option) *View[V] {
	view := &View[V]{
		bindings: make(map[string]any),
		depths:   make(map[string]int),
		cfg:      applyOptions(opts),
	}
	for depth, layer := range m.layers {
		for _, entry := range layer.Entries() {
			if _, seen := view.depths[entry.Key]; seen {
				continue
			}
			view.bindings[entry.Key] = entry.Value
			view.depths[entry.Key] = depth
		}
	}
	return view
}

// Len returns the number of effective bindings.
func (v *View[V]) Len() int {
	return len(v.bindings)
}

// Bindings returns a copy of the effective bindings.
func (v *View[V]) Bindings() map[string]any {
	out := make(map[string]any, len(v.bindings))
	for key, value := range v.bindings {
		out[key] = value
	}
	return out
}

// DepthOf returns the layer index that supplied the effective value for key.
func (v *View[V]) DepthOf(key string) (int, bool) {
	depth, ok := v.depths[key]
	return depth, ok
}

func (v *View[V]) evaluatorLogger() EvaluatorLogger {
	if v.cfg.logger != nil {
		return v.cfg.logger
	}
	return noopEvaluatorLogger{}
}

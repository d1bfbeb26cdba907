package contexts

import (
	"slices"

	"github.com/google/uuid"

	"github.com/goliatone/go-contexts/pkg/activity"
)

// Manager owns an ordered sequence of layers and treats them as a single
// logical map. The layer at index 0 is the local context: it receives every
// insert and remove, and searches scan from it toward the least-local end.
// Layers are never shared between managers; cloning and forking always deep
// copy, so two managers never alias the same storage.
//
// A Manager is not safe for concurrent use. Callers sharing one across
// goroutines must supply their own synchronization.
type Manager[K comparable, V any] struct {
	layers []Layer[K, V]
	cfg    managerConfig
}

type managerConfig struct {
	id    string
	hooks activity.Hooks
}

// ManagerOption configures optional manager behaviour at construction.
type ManagerOption func(*managerConfig)

// WithActivityHooks attaches activity hooks notified on structural and
// mutating operations. Nil entries are dropped.
func WithActivityHooks(hooks activity.Hooks) ManagerOption {
	normalized := hooks.Compact()
	return func(cfg *managerConfig) {
		cfg.hooks = normalized
	}
}

// WithManagerID overrides the generated manager identity used in emitted
// activity events.
func WithManagerID(id string) ManagerOption {
	return func(cfg *managerConfig) {
		cfg.id = id
	}
}

func applyManagerOptions(opts []ManagerOption) managerConfig {
	cfg := managerConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.hooks.Enabled() && cfg.id == "" {
		cfg.id = uuid.NewString()
	}
	return cfg
}

// New constructs a manager with zero layers. Inserts and removes stay inert
// until a first layer is pushed.
func New[K comparable, V any](opts ...ManagerOption) *Manager[K, V] {
	return &Manager[K, V]{cfg: applyManagerOptions(opts)}
}

// WithCapacity constructs a manager with zero layers and room reserved for
// capacity layers. The reservation is a hint only.
func WithCapacity[K comparable, V any](capacity int, opts ...ManagerOption) *Manager[K, V] {
	return &Manager[K, V]{
		layers: make([]Layer[K, V], 0, capacity),
		cfg:    applyManagerOptions(opts),
	}
}

// WithEmpty constructs a manager holding exactly one empty local layer.
func WithEmpty[K comparable, V any](opts ...ManagerOption) *Manager[K, V] {
	return &Manager[K, V]{
		layers: []Layer[K, V]{NewMapLayer[K, V]()},
		cfg:    applyManagerOptions(opts),
	}
}

// From constructs a manager whose layer sequence is exactly the supplied
// layers, local-first. The manager takes ownership of the layers; callers
// must not retain references to them.
func From[K comparable, V any](layers []Layer[K, V], opts ...ManagerOption) *Manager[K, V] {
	owned := make([]Layer[K, V], 0, len(layers))
	for _, layer := range layers {
		if layer == nil {
			continue
		}
		owned = append(owned, layer)
	}
	return &Manager[K, V]{layers: owned, cfg: applyManagerOptions(opts)}
}

// FromMap constructs a single-layer manager seeded with the entries of src.
func FromMap[K comparable, V any](src map[K]V, opts ...ManagerOption) *Manager[K, V] {
	return &Manager[K, V]{
		layers: []Layer[K, V]{MapLayerOf(src)},
		cfg:    applyManagerOptions(opts),
	}
}

// FromEntries constructs a single-layer manager from explicit entries.
func FromEntries[K comparable, V any](entries []Entry[K, V], opts ...ManagerOption) *Manager[K, V] {
	return &Manager[K, V]{
		layers: []Layer[K, V]{MapLayerOfEntries(entries...)},
		cfg:    applyManagerOptions(opts),
	}
}

// ID returns the manager identity used in activity events. Empty unless
// hooks are configured or WithManagerID was supplied.
func (m *Manager[K, V]) ID() string {
	return m.cfg.id
}

// Len returns the number of layers.
func (m *Manager[K, V]) Len() int {
	return len(m.layers)
}

// IsEmpty reports whether the manager has zero layers.
func (m *Manager[K, V]) IsEmpty() bool {
	return len(m.layers) == 0
}

// Push prepends layer, making it the new local context. The previous local
// layer shifts to index 1.
func (m *Manager[K, V]) Push(layer Layer[K, V]) {
	if layer == nil {
		return
	}
	m.layers = slices.Insert(m.layers, 0, layer)
	m.emitPushed(layer.Len())
}

// PushEmpty prepends a freshly empty local layer.
func (m *Manager[K, V]) PushEmpty() {
	m.layers = slices.Insert(m.layers, 0, Layer[K, V](NewMapLayer[K, V]()))
	m.emitPushed(0)
}

// PushLocal prepends a copy of the current local layer. On a manager with no
// layers it behaves like PushEmpty.
func (m *Manager[K, V]) PushLocal() {
	if len(m.layers) == 0 {
		m.PushEmpty()
		return
	}
	local := m.layers[0].Clone()
	m.layers = slices.Insert(m.layers, 0, local)
	m.emitPushed(local.Len())
}

// PushWithLocal prepends layer followed by a copy of it, so the copy becomes
// the local context and layer sits at index 1. Useful for seeding a scope
// whose pristine baseline must survive local mutation.
func (m *Manager[K, V]) PushWithLocal(layer Layer[K, V]) {
	if layer == nil {
		return
	}
	m.Push(layer)
	m.PushLocal()
}

// Pop removes and returns the local layer. Returns false when the manager
// has no layers. Popping only shifts indices; remaining layers keep their
// contents.
func (m *Manager[K, V]) Pop() (Layer[K, V], bool) {
	if len(m.layers) == 0 {
		return nil, false
	}
	local := m.layers[0]
	m.layers = slices.Delete(m.layers, 0, 1)
	m.emitPopped(local.Len())
	return local, true
}

// Fork returns a new manager holding a deep copy of the entire layer
// sequence. Returns false when there is nothing to fork.
func (m *Manager[K, V]) Fork() (*Manager[K, V], bool) {
	return m.ForkFrom(0)
}

// ForkFrom returns a new manager holding a deep copy of the layer suffix
// starting at index, re-indexed so that layer becomes the new local context.
// Returns false when index is outside [0, Len).
func (m *Manager[K, V]) ForkFrom(index int) (*Manager[K, V], bool) {
	if index < 0 || index >= len(m.layers) {
		return nil, false
	}
	layers := make([]Layer[K, V], 0, len(m.layers)-index)
	for _, layer := range m.layers[index:] {
		layers = append(layers, layer.Clone())
	}
	fork := &Manager[K, V]{layers: layers, cfg: m.cfg}
	if fork.cfg.hooks.Enabled() {
		fork.cfg.id = uuid.NewString()
	}
	m.emitForked(fork.cfg.id, index, len(layers))
	return fork, true
}

// Clone returns a deep copy of the manager. The clone owns independent
// copies of every layer; when hooks are configured it emits events under its
// own fresh identity, never the origin's.
func (m *Manager[K, V]) Clone() *Manager[K, V] {
	layers := make([]Layer[K, V], 0, len(m.layers))
	for _, layer := range m.layers {
		layers = append(layers, layer.Clone())
	}
	clone := &Manager[K, V]{layers: layers, cfg: m.cfg}
	if clone.cfg.hooks.Enabled() {
		clone.cfg.id = uuid.NewString()
	}
	return clone
}

// Equal reports whether a and b hold the same number of layers with equal
// contents at every depth.
func Equal[K, V comparable](a, b *Manager[K, V]) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := range a.layers {
		left, right := a.layers[i], b.layers[i]
		if left.Len() != right.Len() {
			return false
		}
		for _, entry := range left.Entries() {
			value, ok := right.Get(entry.Key)
			if !ok || value != entry.Value {
				return false
			}
		}
	}
	return true
}

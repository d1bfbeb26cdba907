package contexts

import (
	"context"
	"fmt"

	"github.com/goliatone/go-contexts/pkg/activity"
)

// ActivityHooks returns a copy of the activity hooks configured on the
// manager. The returned slice can be safely mutated by the caller.
func (m *Manager[K, V]) ActivityHooks() activity.Hooks {
	return m.cfg.hooks.Compact()
}

// Emission is best-effort: hook failures never affect the operation that
// triggered them.

func (m *Manager[K, V]) emitPushed(entries int) {
	if !m.cfg.hooks.Enabled() {
		return
	}
	_ = m.cfg.hooks.Notify(context.Background(), activity.BuildContextPushedEvent(activity.ManagerEventInput{
		ManagerID: m.cfg.id,
		Layers:    len(m.layers),
		Entries:   entries,
	}))
}

func (m *Manager[K, V]) emitPopped(entries int) {
	if !m.cfg.hooks.Enabled() {
		return
	}
	_ = m.cfg.hooks.Notify(context.Background(), activity.BuildContextPoppedEvent(activity.ManagerEventInput{
		ManagerID: m.cfg.id,
		Layers:    len(m.layers),
		Entries:   entries,
	}))
}

func (m *Manager[K, V]) emitForked(forkID string, depth, layers int) {
	if !m.cfg.hooks.Enabled() {
		return
	}
	_ = m.cfg.hooks.Notify(context.Background(), activity.BuildContextForkedEvent(activity.ManagerEventInput{
		ManagerID: forkID,
		ParentID:  m.cfg.id,
		Depth:     depth,
		Layers:    layers,
	}))
}

func (m *Manager[K, V]) emitInserted(key K, prior, value V, replaced bool) {
	if !m.cfg.hooks.Enabled() {
		return
	}
	input := activity.ManagerEventInput{
		ManagerID: m.cfg.id,
		Key:       fmt.Sprint(key),
		NewValue:  value,
		Layers:    len(m.layers),
	}
	if replaced {
		input.OldValue = prior
	}
	_ = m.cfg.hooks.Notify(context.Background(), activity.BuildContextInsertedEvent(input))
}

func (m *Manager[K, V]) emitRemoved(key K, value V, cleared int) {
	if !m.cfg.hooks.Enabled() {
		return
	}
	_ = m.cfg.hooks.Notify(context.Background(), activity.BuildContextRemovedEvent(activity.ManagerEventInput{
		ManagerID: m.cfg.id,
		Key:       fmt.Sprint(key),
		OldValue:  value,
		Layers:    len(m.layers),
		Metadata:  map[string]any{"cleared": cleared},
	}))
}

func (m *Manager[K, V]) emitCollapsed(entries int) {
	if !m.cfg.hooks.Enabled() {
		return
	}
	_ = m.cfg.hooks.Notify(context.Background(), activity.BuildContextCollapsedEvent(activity.ManagerEventInput{
		ManagerID: m.cfg.id,
		Layers:    len(m.layers),
		Entries:   entries,
	}))
}

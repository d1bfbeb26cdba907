package activity

import (
	"context"
	"strings"
)

// Config controls activity emission defaults supplied by the host
// application.
type Config struct {
	Enabled bool
	Channel string
}

// Emitter fans out events to hooks while applying defaults.
type Emitter struct {
	hooks   Hooks
	enabled bool
	channel string
}

// NewEmitter constructs an emitter from hooks and configuration.
func NewEmitter(hooks Hooks, cfg Config) *Emitter {
	channel := strings.TrimSpace(cfg.Channel)
	if channel == "" {
		channel = "contexts"
	}
	normalized := hooks.Compact()
	return &Emitter{
		hooks:   normalized,
		enabled: cfg.Enabled && len(normalized) > 0,
		channel: channel,
	}
}

// Enabled reports whether emissions should be attempted.
func (e *Emitter) Enabled() bool {
	return e != nil && e.enabled && len(e.hooks) > 0
}

// Emit forwards the event to all hooks, applying the default channel when
// missing.
func (e *Emitter) Emit(ctx context.Context, event Event) error {
	if !e.Enabled() {
		return nil
	}
	if strings.TrimSpace(event.Channel) == "" && e.channel != "" {
		event.Channel = e.channel
	}
	return e.hooks.Notify(ctx, event)
}

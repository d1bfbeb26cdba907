package activity

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNormalizeEventTrimsClonesAndDefaults(t *testing.T) {
	meta := map[string]any{"k": "v"}
	evt := Event{
		Verb:       " context.pushed ",
		ActorID:    " actor ",
		UserID:     " user ",
		TenantID:   " tenant ",
		ObjectType: " context.layer ",
		ObjectID:   " 42 ",
		Channel:    " contexts ",
		Metadata:   meta,
	}

	got := NormalizeEvent(evt)

	if got.Verb != "context.pushed" || got.ObjectType != "context.layer" || got.ObjectID != "42" {
		t.Fatalf("unexpected normalized fields: %+v", got)
	}
	if got.ActorID != "actor" || got.UserID != "user" || got.TenantID != "tenant" || got.Channel != "contexts" {
		t.Fatalf("unexpected trimming: %+v", got)
	}
	if got.OccurredAt.IsZero() {
		t.Fatalf("expected OccurredAt to be set")
	}
	got.Metadata["k"] = "changed"
	if evt.Metadata["k"] != "v" {
		t.Fatalf("expected original metadata untouched: %+v", evt.Metadata)
	}
}

func TestHooksNotifyShortCircuitsMissingRequired(t *testing.T) {
	hooks := Hooks{&CaptureHook{}}
	err := hooks.Notify(context.Background(), Event{})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	capture := hooks[0].(*CaptureHook)
	if len(capture.Events) != 0 {
		t.Fatalf("expected no events captured, got %d", len(capture.Events))
	}
}

func TestHooksNotifyFanOutAndJoinErrors(t *testing.T) {
	errFirst := errors.New("boom1")
	errSecond := errors.New("boom2")
	capture := &CaptureHook{}
	var ctxSeen bool
	hooks := Hooks{
		HookFunc(func(ctx context.Context, event Event) error {
			if ctx != nil {
				ctxSeen = true
			}
			return nil
		}),
		capture,
		HookFunc(func(_ context.Context, _ Event) error { return errFirst }),
		nil,
		HookFunc(func(_ context.Context, _ Event) error { return errSecond }),
	}

	err := hooks.Notify(nil, Event{Verb: "context.pushed", ObjectType: "context.layer", ObjectID: "1"})
	if err == nil || !errors.Is(err, errFirst) || !errors.Is(err, errSecond) {
		t.Fatalf("expected joined error, got %v", err)
	}
	if !ctxSeen {
		t.Fatalf("expected context fallback to be non-nil")
	}
	if len(capture.Events) != 1 {
		t.Fatalf("expected event to be captured once, got %d", len(capture.Events))
	}
}

func TestHooksCompactDropsNilEntries(t *testing.T) {
	if got := (Hooks{nil, nil}).Compact(); got != nil {
		t.Fatalf("expected nil for all-nil hooks, got %v", got)
	}
	capture := &CaptureHook{}
	compacted := Hooks{nil, capture}.Compact()
	if len(compacted) != 1 {
		t.Fatalf("expected one hook, got %d", len(compacted))
	}
	if !compacted.Enabled() {
		t.Fatalf("compacted hooks should report enabled")
	}
}

func TestEmitterDisabledAndEnabled(t *testing.T) {
	capture := &CaptureHook{}

	disabled := NewEmitter(Hooks{capture}, Config{Enabled: false})
	if disabled.Enabled() {
		t.Fatalf("expected emitter to be disabled")
	}
	if err := disabled.Emit(context.Background(), Event{Verb: "context.pushed", ObjectType: "context.layer", ObjectID: "1"}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(capture.Events) != 0 {
		t.Fatalf("expected no events captured when disabled")
	}

	enabled := NewEmitter(Hooks{capture}, Config{Enabled: true, Channel: ""})
	if !enabled.Enabled() {
		t.Fatalf("expected emitter to be enabled")
	}
	if err := enabled.Emit(context.Background(), Event{Verb: "context.pushed", ObjectType: "context.layer", ObjectID: "1"}); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if len(capture.Events) != 1 {
		t.Fatalf("expected one event captured, got %d", len(capture.Events))
	}
	if capture.Events[0].Channel != "contexts" {
		t.Fatalf("expected default channel applied, got %q", capture.Events[0].Channel)
	}
}

func TestEmitterPreservesExplicitChannel(t *testing.T) {
	capture := &CaptureHook{}
	emitter := NewEmitter(Hooks{capture}, Config{Enabled: true, Channel: "default"})

	err := emitter.Emit(context.Background(), Event{
		Verb:       "context.popped",
		ObjectType: "context.layer",
		ObjectID:   "1",
		Channel:    "custom",
		OccurredAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	if capture.Events[0].Channel != "custom" {
		t.Fatalf("expected explicit channel preserved, got %q", capture.Events[0].Channel)
	}
	if capture.Events[0].OccurredAt != (time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected occurred_at preserved, got %v", capture.Events[0].OccurredAt)
	}
}

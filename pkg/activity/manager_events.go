package activity

import "time"

// Lifecycle verbs emitted by managers.
const (
	VerbPushed    = "context.pushed"
	VerbPopped    = "context.popped"
	VerbForked    = "context.forked"
	VerbInserted  = "context.inserted"
	VerbRemoved   = "context.removed"
	VerbCollapsed = "context.collapsed"
)

// ManagerEventInput describes the common fields for manager lifecycle events.
type ManagerEventInput struct {
	ManagerID  string
	ParentID   string
	ActorID    string
	UserID     string
	TenantID   string
	Channel    string
	Key        string
	OldValue   any
	NewValue   any
	Depth      int
	Layers     int
	Entries    int
	Metadata   map[string]any
	OccurredAt time.Time
}

// BuildContextPushedEvent constructs an event describing a new local layer.
func BuildContextPushedEvent(input ManagerEventInput) Event {
	return buildManagerEvent(VerbPushed, "context.layer", input)
}

// BuildContextPoppedEvent constructs an event describing a removed local
// layer.
func BuildContextPoppedEvent(input ManagerEventInput) Event {
	return buildManagerEvent(VerbPopped, "context.layer", input)
}

// BuildContextForkedEvent constructs an event describing a manager fork.
func BuildContextForkedEvent(input ManagerEventInput) Event {
	return buildManagerEvent(VerbForked, "context", input)
}

// BuildContextInsertedEvent constructs an event describing a local insert.
func BuildContextInsertedEvent(input ManagerEventInput) Event {
	return buildManagerEvent(VerbInserted, "context.entry", input)
}

// BuildContextRemovedEvent constructs an event describing a removal from one
// or more layers.
func BuildContextRemovedEvent(input ManagerEventInput) Event {
	return buildManagerEvent(VerbRemoved, "context.entry", input)
}

// BuildContextCollapsedEvent constructs an event describing a collapse into a
// flat map.
func BuildContextCollapsedEvent(input ManagerEventInput) Event {
	return buildManagerEvent(VerbCollapsed, "context", input)
}

func buildManagerEvent(verb, objectType string, input ManagerEventInput) Event {
	metadata := cloneMap(input.Metadata)
	if input.ParentID != "" {
		metadata = ensureMetadata(metadata)
		metadata["parent_id"] = input.ParentID
	}
	if input.Key != "" {
		metadata = ensureMetadata(metadata)
		metadata["key"] = input.Key
	}
	if input.OldValue != nil {
		metadata = ensureMetadata(metadata)
		metadata["old_value"] = input.OldValue
	}
	if input.NewValue != nil {
		metadata = ensureMetadata(metadata)
		metadata["new_value"] = input.NewValue
	}
	metadata = ensureMetadata(metadata)
	metadata["depth"] = input.Depth
	metadata["layers"] = input.Layers
	metadata["entries"] = input.Entries

	return Event{
		Verb:       verb,
		ActorID:    input.ActorID,
		UserID:     input.UserID,
		TenantID:   input.TenantID,
		ObjectType: objectType,
		ObjectID:   input.ManagerID,
		Channel:    input.Channel,
		Metadata:   metadata,
		OccurredAt: input.OccurredAt,
	}
}

func ensureMetadata(metadata map[string]any) map[string]any {
	if metadata == nil {
		return map[string]any{}
	}
	return metadata
}

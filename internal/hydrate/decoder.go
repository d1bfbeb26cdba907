package hydrate

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Context identifies the document being hydrated.
type Context struct {
	Source string // "json" or "yaml"
	Name   string // optional caller-supplied label
}

// PreHook lets callers mutate or normalise the decoded layers before they are
// handed back, e.g. to drop keys or coerce value types.
type PreHook func(Context, []map[string]any) ([]map[string]any, error)

// PostHook lets callers validate the decoded layers.
type PostHook func(Context, []map[string]any) error

// DecoderOption configures a Decoder instance.
type DecoderOption func(*Decoder)

// Decoder converts JSON or YAML documents into layer sequences, local-first.
// Accepted shapes are a top-level sequence of mappings or a document with a
// single "layers" key holding that sequence.
type Decoder struct {
	preHooks  []PreHook
	postHooks []PostHook
}

// WithPreHook applies hook after decoding, before hand-off.
func WithPreHook(hook PreHook) DecoderOption {
	return func(d *Decoder) {
		if hook != nil {
			d.preHooks = append(d.preHooks, hook)
		}
	}
}

// WithPostHook applies hook after all pre hooks ran.
func WithPostHook(hook PostHook) DecoderOption {
	return func(d *Decoder) {
		if hook != nil {
			d.postHooks = append(d.postHooks, hook)
		}
	}
}

// NewDecoder constructs a decoder.
func NewDecoder(opts ...DecoderOption) *Decoder {
	d := &Decoder{}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

type document struct {
	Layers []map[string]any `json:"layers" yaml:"layers"`
}

// DecodeJSON decodes a JSON document into a layer sequence.
func (d *Decoder) DecodeJSON(ctx Context, data []byte) ([]map[string]any, error) {
	ctx.Source = "json"
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("hydrate: empty json document")
	}

	var layers []map[string]any
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &layers); err != nil {
			return nil, fmt.Errorf("hydrate: decode json layers: %w", err)
		}
	} else {
		var doc document
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("hydrate: decode json document: %w", err)
		}
		if doc.Layers == nil {
			return nil, fmt.Errorf("hydrate: json document has no layers sequence")
		}
		layers = doc.Layers
	}
	return d.finish(ctx, layers)
}

// DecodeYAML decodes a YAML document into a layer sequence.
func (d *Decoder) DecodeYAML(ctx Context, data []byte) ([]map[string]any, error) {
	ctx.Source = "yaml"
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("hydrate: empty yaml document")
	}

	var layers []map[string]any
	if err := yaml.Unmarshal(data, &layers); err != nil {
		var doc document
		if docErr := yaml.Unmarshal(data, &doc); docErr != nil {
			return nil, fmt.Errorf("hydrate: decode yaml document: %w", err)
		}
		if doc.Layers == nil {
			return nil, fmt.Errorf("hydrate: yaml document has no layers sequence")
		}
		layers = doc.Layers
	}
	return d.finish(ctx, layers)
}

func (d *Decoder) finish(ctx Context, layers []map[string]any) ([]map[string]any, error) {
	var err error
	for _, hook := range d.preHooks {
		layers, err = hook(ctx, layers)
		if err != nil {
			return nil, fmt.Errorf("hydrate: pre hook: %w", err)
		}
	}
	for _, hook := range d.postHooks {
		if err := hook(ctx, layers); err != nil {
			return nil, fmt.Errorf("hydrate: post hook: %w", err)
		}
	}
	return layers, nil
}

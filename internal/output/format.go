// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/modeldiff/modeldiff/internal/differ"
	"github.com/modeldiff/modeldiff/internal/value"
)

// Recognized format kinds.
const (
	FormatJSON   = "json"
	FormatDiffai = "diffai"
	FormatYAML   = "yaml"
)

// entryJSON is the wire shape of one entry in json output. This shape is the
// compatibility contract: oldValue/newValue appear exactly when the diff type
// carries them.
type entryJSON struct {
	DiffType string       `json:"diffType"`
	Path     string       `json:"path"`
	OldValue *value.Value `json:"oldValue,omitempty"`
	NewValue *value.Value `json:"newValue,omitempty"`
}

// Format renders the entry list in the requested kind. Unknown kinds fail
// with a ConfigError naming the format.
func Format(entries []differ.Entry, kind string) (string, error) {
	switch kind {
	case FormatJSON:
		return formatJSON(entries)
	case FormatDiffai:
		return formatDiffai(entries), nil
	case FormatYAML:
		return formatYAML(entries)
	default:
		return "", &differ.ConfigError{
			Reason: fmt.Sprintf("unsupported output format %q", kind),
		}
	}
}

func formatJSON(entries []differ.Entry) (string, error) {
	out := make([]entryJSON, len(entries))
	for i, e := range entries {
		out[i] = entryJSON{
			DiffType: string(e.Type),
			Path:     e.Path.String(),
			OldValue: e.Old,
			NewValue: e.New,
		}
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("failed to marshal entries: %w", err)
	}
	return string(b), nil
}

// formatDiffai renders one line per entry:
//
//	Modified layers[0].weight: 0.1 -> 0.2
//	Added meta.epoch: 10
//	Removed legacy: {"flag":true}
func formatDiffai(entries []differ.Entry) string {
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(string(e.Type))
		sb.WriteByte(' ')
		sb.WriteString(e.Path.String())
		sb.WriteString(": ")
		switch e.Type {
		case differ.Added:
			sb.WriteString(e.New.String())
		case differ.Removed:
			sb.WriteString(e.Old.String())
		default:
			sb.WriteString(e.Old.String())
			sb.WriteString(" -> ")
			sb.WriteString(e.New.String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func formatYAML(entries []differ.Entry) (string, error) {
	out := make([]yaml.MapSlice, len(entries))
	for i, e := range entries {
		item := yaml.MapSlice{
			{Key: "diffType", Value: string(e.Type)},
			{Key: "path", Value: e.Path.String()},
		}
		if e.Old != nil {
			item = append(item, yaml.MapItem{Key: "oldValue", Value: toYAML(e.Old)})
		}
		if e.New != nil {
			item = append(item, yaml.MapItem{Key: "newValue", Value: toYAML(e.New)})
		}
		out[i] = item
	}
	b, err := yaml.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("failed to marshal entries: %w", err)
	}
	return string(b), nil
}

// toYAML converts a value for yaml.Marshal. Mappings become MapSlice so key
// order survives; encoding through a plain map would scramble it.
func toYAML(v *value.Value) any {
	switch v.Kind() {
	case value.KindSequence:
		out := make([]any, v.Len())
		for i := 0; i < v.Len(); i++ {
			out[i] = toYAML(v.Index(i))
		}
		return out
	case value.KindMapping:
		out := make(yaml.MapSlice, 0, v.Len())
		for _, k := range v.Keys() {
			child, _ := v.Get(k)
			out = append(out, yaml.MapItem{Key: k, Value: toYAML(child)})
		}
		return out
	default:
		return value.ToNative(v)
	}
}

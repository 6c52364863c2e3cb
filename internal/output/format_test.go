// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"encoding/json"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modeldiff/modeldiff/internal/differ"
	"github.com/modeldiff/modeldiff/internal/value"
)

func sampleEntries() []differ.Entry {
	weights := value.NewMapping()
	weights.Set("w", value.Sequence(value.Number(0.25), value.Number(0.5)))

	return []differ.Entry{
		{
			Type: differ.Modified,
			Path: value.Path{}.ChildKey("layers").ChildIndex(0).ChildKey("weight"),
			Old:  value.Number(0.1),
			New:  value.Number(0.2),
		},
		{
			Type: differ.Added,
			Path: value.Path{}.ChildKey("meta").ChildKey("epoch"),
			New:  value.Number(10),
		},
		{
			Type: differ.Removed,
			Path: value.Path{}.ChildKey("legacy"),
			Old:  weights,
		},
		{
			Type: differ.TypeChanged,
			Path: value.Path{}.ChildKey("mode"),
			Old:  value.String("fast"),
			New:  value.Bool(true),
		},
	}
}

func TestFormatJSON(t *testing.T) {
	out, err := Format(sampleEntries(), FormatJSON)
	require.NoError(t, err)

	// The wire shape is a contract: fields appear exactly when the diff
	// type carries them.
	var decoded []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 4)

	assert.JSONEq(t, `"Modified"`, string(decoded[0]["diffType"]))
	assert.JSONEq(t, `"layers[0].weight"`, string(decoded[0]["path"]))
	assert.JSONEq(t, `0.1`, string(decoded[0]["oldValue"]))
	assert.JSONEq(t, `0.2`, string(decoded[0]["newValue"]))

	_, hasOld := decoded[1]["oldValue"]
	assert.False(t, hasOld, "Added entries carry no oldValue")
	_, hasNew := decoded[2]["newValue"]
	assert.False(t, hasNew, "Removed entries carry no newValue")

	// Mapping key order survives the round trip.
	assert.JSONEq(t, `{"w":[0.25,0.5]}`, string(decoded[2]["oldValue"]))
}

func TestFormatJSONEmpty(t *testing.T) {
	out, err := Format(nil, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "[]", out)
}

func TestFormatDiffai(t *testing.T) {
	out, err := Format(sampleEntries(), FormatDiffai)
	require.NoError(t, err)
	assert.Equal(t,
		"Modified layers[0].weight: 0.1 -> 0.2\n"+
			"Added meta.epoch: 10\n"+
			"Removed legacy: {\"w\":[0.25,0.5]}\n"+
			"TypeChanged mode: \"fast\" -> true\n",
		out)
}

func TestFormatYAML(t *testing.T) {
	out, err := Format(sampleEntries()[:2], FormatYAML)
	require.NoError(t, err)
	assert.Equal(t,
		"- diffType: Modified\n"+
			"  path: layers[0].weight\n"+
			"  oldValue: 0.1\n"+
			"  newValue: 0.2\n"+
			"- diffType: Added\n"+
			"  path: meta.epoch\n"+
			"  newValue: 10\n",
		out)
}

func TestFormatUnknownKind(t *testing.T) {
	_, err := Format(sampleEntries(), "xml")
	var cfgErr *differ.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, err.Error(), "xml")
}

func TestFormatSnapshots(t *testing.T) {
	for _, kind := range []string{FormatJSON, FormatDiffai, FormatYAML} {
		out, err := Format(sampleEntries(), kind)
		require.NoError(t, err)
		snaps.MatchSnapshot(t, out)
	}
}

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePathRoundTrip(t *testing.T) {
	for _, rendered := range []string{
		"",
		"lr",
		"layers[0].weight[2]",
		"grid[1][0]",
		"[0].name",
		"a.b.c",
	} {
		p, err := ParsePath(rendered)
		require.NoError(t, err, rendered)
		assert.Equal(t, rendered, p.String(), rendered)
	}
}

func TestParsePathInvalid(t *testing.T) {
	for _, rendered := range []string{
		"a..b",
		"a[x]",
		"[0]x",
		"a.",
		".a",
	} {
		_, err := ParsePath(rendered)
		assert.Error(t, err, rendered)
	}
}

func TestLookup(t *testing.T) {
	weight := Sequence(Number(0.1), Number(0.2))
	layer := NewMapping()
	layer.Set("weight", weight)
	root := NewMapping()
	root.Set("layers", Sequence(layer))
	root.Set("name", String("net"))

	p, err := ParsePath("layers[0].weight[1]")
	require.NoError(t, err)
	got, ok := Lookup(root, p)
	require.True(t, ok)
	assert.Equal(t, 0.2, got.NumberVal())

	// The root path returns the tree itself.
	got, ok = Lookup(root, Path{})
	require.True(t, ok)
	assert.Equal(t, root, got)
}

func TestLookupMisses(t *testing.T) {
	root := NewMapping()
	root.Set("xs", Sequence(Number(1)))

	for _, rendered := range []string{
		"nope",
		"xs[5]",
		"xs.key",
		"xs[0].deeper",
	} {
		p, err := ParsePath(rendered)
		require.NoError(t, err, rendered)
		_, ok := Lookup(root, p)
		assert.False(t, ok, rendered)
	}
}

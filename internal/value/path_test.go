// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathString(t *testing.T) {
	tests := []struct {
		name string
		path Path
		want string
	}{
		{"root", Path{}, ""},
		{"single key", Path{}.ChildKey("model"), "model"},
		{"nested keys", Path{}.ChildKey("model").ChildKey("layers"), "model.layers"},
		{
			"keys and indices",
			Path{}.ChildKey("layers").ChildIndex(0).ChildKey("weight").ChildIndex(2),
			"layers[0].weight[2]",
		},
		{"leading index", Path{}.ChildIndex(3).ChildKey("bias"), "[3].bias"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.path.String())
		})
	}
}

func TestPathChildDoesNotAliasParent(t *testing.T) {
	parent := Path{}.ChildKey("a")
	one := parent.ChildKey("b")
	two := parent.ChildIndex(0)

	assert.Equal(t, "a.b", one.String())
	assert.Equal(t, "a[0]", two.String())
	assert.Equal(t, "a", parent.String())
}

func TestMatchesFilter(t *testing.T) {
	tests := []struct {
		rendered string
		filter   string
		want     bool
	}{
		{"layers[0].weight", "", true},
		{"layers", "layers", true},
		{"layers[0]", "layers", true},
		{"layers.size", "layers", true},
		{"layersextra", "layers", false},
		{"lay", "layers", false},
		{"weights[10]", "weights[1]", false},
		{"weights[1].bias", "weights[1]", true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MatchesFilter(tt.rendered, tt.filter),
			"rendered=%q filter=%q", tt.rendered, tt.filter)
	}
}

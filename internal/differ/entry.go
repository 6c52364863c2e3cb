// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"github.com/modeldiff/modeldiff/internal/value"
)

// DiffType classifies a single reported change.
type DiffType string

const (
	Added       DiffType = "Added"
	Removed     DiffType = "Removed"
	Modified    DiffType = "Modified"
	TypeChanged DiffType = "TypeChanged"
)

// Entry is one reported change at a path.
//
// Old is set for Removed, Modified and TypeChanged; New is set for Added,
// Modified and TypeChanged. Removed and Added carry the entire removed or
// added subtree, not just a leaf.
type Entry struct {
	Type DiffType
	Path value.Path
	Old  *value.Value
	New  *value.Value
}

// Swapped returns the entry as it would appear if the two compared trees had
// been given in the opposite order: Added and Removed flip, Modified and
// TypeChanged swap their old and new values.
func (e Entry) Swapped() Entry {
	out := Entry{Path: e.Path, Old: e.New, New: e.Old}
	switch e.Type {
	case Added:
		out.Type = Removed
	case Removed:
		out.Type = Added
	default:
		out.Type = e.Type
	}
	return out
}

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package value

import (
	"strconv"
	"strings"
)

// Segment is one step of a Path: either a mapping key or a sequence index.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

// KeySegment builds a mapping-key segment.
func KeySegment(key string) Segment { return Segment{Key: key} }

// IndexSegment builds a sequence-index segment.
func IndexSegment(i int) Segment { return Segment{Index: i, IsIndex: true} }

// Path addresses one node in a tree, e.g. layers[0].weight[2]. The zero
// value addresses the root.
type Path []Segment

// ChildKey returns a new path extended with a mapping key. The receiver's
// backing array is never shared with the result, so sibling extensions of
// the same parent path can't clobber each other.
func (p Path) ChildKey(key string) Path {
	return p.child(KeySegment(key))
}

// ChildIndex returns a new path extended with a sequence index.
func (p Path) ChildIndex(i int) Path {
	return p.child(IndexSegment(i))
}

func (p Path) child(seg Segment) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = seg
	return out
}

// String renders the canonical dotted form: keys joined with "." and indices
// in brackets. The root path renders as "".
func (p Path) String() string {
	var sb strings.Builder
	for i, seg := range p {
		if seg.IsIndex {
			sb.WriteByte('[')
			sb.WriteString(strconv.Itoa(seg.Index))
			sb.WriteByte(']')
			continue
		}
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(seg.Key)
	}
	return sb.String()
}

// MatchesFilter reports whether the rendered path falls under the given
// prefix filter. A match is exact equality or a prefix at a segment boundary
// (filter + "." or filter + "["). The empty filter matches everything.
func MatchesFilter(rendered, filter string) bool {
	if filter == "" {
		return true
	}
	if rendered == filter {
		return true
	}
	return strings.HasPrefix(rendered, filter+".") ||
		strings.HasPrefix(rendered, filter+"[")
}

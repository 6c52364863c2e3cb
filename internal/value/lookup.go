// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package value

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// segmentRe matches one dotted path part: a key followed by zero or more
// bracketed indices, e.g. "weight", "weight[2]" or "grid[1][0]".
var segmentRe = regexp.MustCompile(`^([^.\[\]]+)((\[\d+\])*)$`)

var indexRe = regexp.MustCompile(`\[(\d+)\]`)

var indicesOnlyRe = regexp.MustCompile(`^(\[\d+\])+$`)

// ParsePath parses the canonical dotted rendering back into a Path. The
// empty string is the root path.
func ParsePath(rendered string) (Path, error) {
	if rendered == "" {
		return Path{}, nil
	}

	var p Path
	for partNo, part := range strings.Split(rendered, ".") {
		var indices string
		switch matches := segmentRe.FindStringSubmatch(part); {
		case matches != nil:
			p = p.ChildKey(matches[1])
			indices = matches[2]
		case partNo == 0 && indicesOnlyRe.MatchString(part):
			// A sequence-valued root renders with no leading key, e.g.
			// "[0].name".
			indices = part
		default:
			return nil, fmt.Errorf("invalid path segment %q", part)
		}

		for _, idx := range indexRe.FindAllStringSubmatch(indices, -1) {
			i, err := strconv.Atoi(idx[1])
			if err != nil {
				return nil, fmt.Errorf("invalid index in path segment %q", part)
			}
			p = p.ChildIndex(i)
		}
	}
	return p, nil
}

// Lookup walks the tree along the path. The second return is false when any
// step is missing or addresses the wrong kind of node.
func Lookup(root *Value, p Path) (*Value, bool) {
	current := root
	for _, seg := range p {
		if current == nil {
			return nil, false
		}
		if seg.IsIndex {
			if current.Kind() != KindSequence || seg.Index < 0 || seg.Index >= current.Len() {
				return nil, false
			}
			current = current.Index(seg.Index)
			continue
		}
		if current.Kind() != KindMapping {
			return nil, false
		}
		child, ok := current.Get(seg.Key)
		if !ok {
			return nil, false
		}
		current = child
	}
	return current, true
}

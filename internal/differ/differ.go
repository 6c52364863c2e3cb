// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"math"
	"regexp"

	"github.com/apex/log"

	"github.com/modeldiff/modeldiff/internal/value"
)

// frame is one unit of pending work on the explicit traversal stack. Either
// emit is set (a ready entry to append) or old/new is a pair left to compare.
type frame struct {
	old  *value.Value
	new  *value.Value
	at   *pathNode
	emit *Entry
}

// pathNode links a frame's position back through its ancestors. Sibling
// frames share the prefix nodes, so extending by one segment is O(1); the
// full Path is materialized only when an entry is emitted, which keeps deep
// walks linear in tree size. nil is the root.
type pathNode struct {
	parent *pathNode
	seg    value.Segment
	depth  int
}

func (n *pathNode) child(seg value.Segment) *pathNode {
	depth := 1
	if n != nil {
		depth = n.depth + 1
	}
	return &pathNode{parent: n, seg: seg, depth: depth}
}

func (n *pathNode) path() value.Path {
	if n == nil {
		return nil
	}
	out := make(value.Path, n.depth)
	for q := n; q != nil; q = q.parent {
		out[q.depth-1] = q.seg
	}
	return out
}

// Compare walks the two trees in lock-step and returns the ordered change
// list. It is total: any pair of well-formed trees produces a result.
//
// The traversal is depth-first pre-order over the old tree's key/index order,
// with keys present only in the new tree reported after, per level, in the
// new tree's order. The walk uses an explicit stack rather than recursion
// because input depth is data-controlled and a flattened tensor can nest
// arbitrarily deep.
func Compare(old, new *value.Value, opts Options) []Entry {
	var entries []Entry
	ignore := opts.ignoreKeys()

	stack := []frame{{old: old, new: new}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.emit != nil {
			entries = append(entries, *f.emit)
			continue
		}

		// Same node on both sides can't produce entries.
		if f.old == f.new {
			continue
		}

		if f.old.Kind() != f.new.Kind() {
			entries = append(entries, Entry{
				Type: TypeChanged, Path: f.at.path(), Old: f.old, New: f.new,
			})
			continue
		}

		switch f.old.Kind() {
		case value.KindNull:
			// Always equal.
		case value.KindBool:
			if f.old.BoolVal() != f.new.BoolVal() {
				entries = append(entries, Entry{
					Type: Modified, Path: f.at.path(), Old: f.old, New: f.new,
				})
			}
		case value.KindString:
			if f.old.StringVal() != f.new.StringVal() {
				entries = append(entries, Entry{
					Type: Modified, Path: f.at.path(), Old: f.old, New: f.new,
				})
			}
		case value.KindNumber:
			// Written as a negated <= so a NaN on either side compares
			// unequal instead of slipping through.
			if !(math.Abs(f.old.NumberVal()-f.new.NumberVal()) <= opts.Epsilon) {
				entries = append(entries, Entry{
					Type: Modified, Path: f.at.path(), Old: f.old, New: f.new,
				})
			}
		case value.KindSequence:
			push(&stack, sequenceChildren(f))
		case value.KindMapping:
			push(&stack, mappingChildren(f, ignore))
		}
	}

	if opts.PathFilter != "" {
		entries = filterEntries(entries, opts.PathFilter)
	}

	log.Debugf("compare produced %d entries", len(entries))

	return entries
}

// sequenceChildren pairs elements positionally. Trailing elements on one
// side become whole-subtree Removed or Added entries. There is no
// re-alignment or move detection; positional semantics are the contract.
func sequenceChildren(f frame) []frame {
	oldLen, newLen := f.old.Len(), f.new.Len()
	common := min(oldLen, newLen)

	children := make([]frame, 0, max(oldLen, newLen))
	for i := 0; i < common; i++ {
		children = append(children, frame{
			old: f.old.Index(i),
			new: f.new.Index(i),
			at:  f.at.child(value.IndexSegment(i)),
		})
	}
	for i := common; i < oldLen; i++ {
		children = append(children, frame{emit: &Entry{
			Type: Removed, Path: f.at.child(value.IndexSegment(i)).path(), Old: f.old.Index(i),
		}})
	}
	for i := common; i < newLen; i++ {
		children = append(children, frame{emit: &Entry{
			Type: Added, Path: f.at.child(value.IndexSegment(i)).path(), New: f.new.Index(i),
		}})
	}
	return children
}

// mappingChildren walks the old mapping's keys in order, reporting removals
// and recursing into shared keys, then reports keys only present in the new
// mapping in the new mapping's order. Keys matching the ignore pattern are
// dropped from the walk on both sides.
func mappingChildren(f frame, ignore *regexp.Regexp) []frame {
	children := make([]frame, 0, f.old.Len()+f.new.Len())

	for _, k := range f.old.Keys() {
		if ignore != nil && ignore.MatchString(k) {
			continue
		}
		oldVal, _ := f.old.Get(k)
		if newVal, ok := f.new.Get(k); ok {
			children = append(children, frame{
				old: oldVal,
				new: newVal,
				at:  f.at.child(value.KeySegment(k)),
			})
		} else {
			children = append(children, frame{emit: &Entry{
				Type: Removed, Path: f.at.child(value.KeySegment(k)).path(), Old: oldVal,
			}})
		}
	}
	for _, k := range f.new.Keys() {
		if ignore != nil && ignore.MatchString(k) {
			continue
		}
		if _, ok := f.old.Get(k); !ok {
			newVal, _ := f.new.Get(k)
			children = append(children, frame{emit: &Entry{
				Type: Added, Path: f.at.child(value.KeySegment(k)).path(), New: newVal,
			}})
		}
	}
	return children
}

// push appends children in reverse so they pop in document order.
func push(stack *[]frame, children []frame) {
	for i := len(children) - 1; i >= 0; i-- {
		*stack = append(*stack, children[i])
	}
}

// filterEntries is the path-filter post-pass. Matching the rendered path
// after the full walk keeps the base semantics simple; the result is always
// a subset of the unfiltered entries.
func filterEntries(entries []Entry, filter string) []Entry {
	kept := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if value.MatchesFilter(e.Path.String(), filter) {
			kept = append(kept, e)
		}
	}
	return kept
}

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package value

// Kind identifies which member of the Value union a node holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindSequence
	KindMapping
)

// String returns the kind name as it appears in output and error messages.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// Value is one node of the canonical tree. Values are immutable once built;
// the diff engine and formatters only ever read them. Mappings preserve key
// insertion order, which is how loaders carry document order through to the
// diff output.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	seq  []*Value
	keys []string
	m    map[string]*Value
}

var nullValue = &Value{kind: KindNull}

// Null returns the null value. All nulls share one node.
func Null() *Value { return nullValue }

// Bool returns a boolean value.
func Bool(b bool) *Value { return &Value{kind: KindBool, b: b} }

// Number returns a numeric value. All host numerics are normalized to
// float64 before they get here so numeric equality is well-defined.
func Number(n float64) *Value { return &Value{kind: KindNumber, n: n} }

// String returns a text value.
func String(s string) *Value { return &Value{kind: KindString, s: s} }

// Sequence returns an ordered sequence of the given items.
func Sequence(items ...*Value) *Value {
	return &Value{kind: KindSequence, seq: items}
}

// NewMapping returns an empty mapping. Populate it with Set before handing it
// to the engine; a mapping is only mutated while it is being built.
func NewMapping() *Value {
	return &Value{kind: KindMapping, m: make(map[string]*Value)}
}

// Set inserts or replaces a key. First insertion fixes the key's position in
// the mapping's order.
func (v *Value) Set(key string, val *Value) *Value {
	if v.kind != KindMapping {
		return v
	}
	if _, ok := v.m[key]; !ok {
		v.keys = append(v.keys, key)
	}
	v.m[key] = val
	return v
}

// Kind reports which union member this node holds.
func (v *Value) Kind() Kind { return v.kind }

// BoolVal returns the boolean payload. Only meaningful for KindBool.
func (v *Value) BoolVal() bool { return v.b }

// NumberVal returns the numeric payload. Only meaningful for KindNumber.
func (v *Value) NumberVal() float64 { return v.n }

// StringVal returns the text payload. Only meaningful for KindString.
func (v *Value) StringVal() string { return v.s }

// Len returns the element count for sequences and the key count for mappings.
func (v *Value) Len() int {
	switch v.kind {
	case KindSequence:
		return len(v.seq)
	case KindMapping:
		return len(v.keys)
	default:
		return 0
	}
}

// Index returns the i-th element of a sequence.
func (v *Value) Index(i int) *Value { return v.seq[i] }

// Keys returns the mapping's keys in insertion order. Callers must not
// mutate the returned slice.
func (v *Value) Keys() []string { return v.keys }

// Get looks up a mapping key.
func (v *Value) Get(key string) (*Value, bool) {
	val, ok := v.m[key]
	return val, ok
}

// Equal reports deep structural equality of two trees. Numbers compare
// exactly; use the diff engine for tolerance-based comparison.
func Equal(a, b *Value) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindNumber:
		return a.n == b.n
	case KindString:
		return a.s == b.s
	case KindSequence:
		if len(a.seq) != len(b.seq) {
			return false
		}
		for i := range a.seq {
			if !Equal(a.seq[i], b.seq[i]) {
				return false
			}
		}
		return true
	case KindMapping:
		if len(a.keys) != len(b.keys) {
			return false
		}
		for i, k := range a.keys {
			if b.keys[i] != k {
				return false
			}
			if !Equal(a.m[k], b.m[k]) {
				return false
			}
		}
		return true
	}
	return false
}

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package value

import (
	"fmt"
	"reflect"
	"sort"
)

// ConversionError reports a host structure that cannot be represented as a
// Value. The only such structure is one containing a reference cycle.
type ConversionError struct {
	Reason string
}

func (e *ConversionError) Error() string {
	return "cannot convert to value: " + e.Reason
}

// FromNative converts a native Go structure into a canonical Value.
// Classification follows the usual decode shapes: nil becomes null, any
// numeric type is normalized to float64, []any becomes a sequence and
// map[string]any becomes a mapping. Go map iteration order is undefined, so
// plain-map keys are sorted for determinism; loaders that know the document
// order build mappings directly instead of going through here.
//
// A structure containing a node that is its own ancestor fails with a
// ConversionError rather than looping forever.
func FromNative(data any) (*Value, error) {
	return fromNative(data, make(map[uintptr]bool))
}

func fromNative(data any, ancestors map[uintptr]bool) (*Value, error) {
	if data == nil {
		return Null(), nil
	}

	switch d := data.(type) {
	case *Value:
		return d, nil
	case bool:
		return Bool(d), nil
	case string:
		return String(d), nil
	case float64:
		return Number(d), nil
	case float32:
		return Number(float64(d)), nil
	case int:
		return Number(float64(d)), nil
	case int8:
		return Number(float64(d)), nil
	case int16:
		return Number(float64(d)), nil
	case int32:
		return Number(float64(d)), nil
	case int64:
		return Number(float64(d)), nil
	case uint:
		return Number(float64(d)), nil
	case uint8:
		return Number(float64(d)), nil
	case uint16:
		return Number(float64(d)), nil
	case uint32:
		return Number(float64(d)), nil
	case uint64:
		return Number(float64(d)), nil
	case []any:
		ptr := reflect.ValueOf(d).Pointer()
		if ancestors[ptr] {
			return nil, &ConversionError{Reason: "cyclic reference"}
		}
		ancestors[ptr] = true
		items := make([]*Value, len(d))
		for i, item := range d {
			v, err := fromNative(item, ancestors)
			if err != nil {
				return nil, err
			}
			items[i] = v
		}
		delete(ancestors, ptr)
		return Sequence(items...), nil
	case map[string]any:
		ptr := reflect.ValueOf(d).Pointer()
		if ancestors[ptr] {
			return nil, &ConversionError{Reason: "cyclic reference"}
		}
		ancestors[ptr] = true
		keys := make([]string, 0, len(d))
		for k := range d {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := NewMapping()
		for _, k := range keys {
			v, err := fromNative(d[k], ancestors)
			if err != nil {
				return nil, err
			}
			m.Set(k, v)
		}
		delete(ancestors, ptr)
		return m, nil
	default:
		return nil, &ConversionError{
			Reason: fmt.Sprintf("unsupported type %T", data),
		}
	}
}

// ToNative converts a Value back to the native Go shape the JSON and YAML
// marshalers understand. Mappings come back as map[string]any, so document
// order is carried by the Value, not the result.
func ToNative(v *Value) any {
	if v == nil {
		return nil
	}
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.b
	case KindNumber:
		return v.n
	case KindString:
		return v.s
	case KindSequence:
		out := make([]any, len(v.seq))
		for i, item := range v.seq {
			out[i] = ToNative(item)
		}
		return out
	case KindMapping:
		out := make(map[string]any, len(v.keys))
		for _, k := range v.keys {
			out[k] = ToNative(v.m[k])
		}
		return out
	}
	return nil
}

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package loader

import (
	"errors"
	"os"

	"github.com/tidwall/gjson"

	"github.com/modeldiff/modeldiff/internal/value"
)

// loadJSON parses a JSON document. gjson iterates object members in document
// order, which is what lets mapping insertion order survive into the diff.
func loadJSON(path string) (*value.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON document")
	}
	return valueFromJSON(gjson.ParseBytes(data)), nil
}

func valueFromJSON(r gjson.Result) *value.Value {
	switch {
	case r.Type == gjson.Null:
		return value.Null()
	case r.Type == gjson.False:
		return value.Bool(false)
	case r.Type == gjson.True:
		return value.Bool(true)
	case r.Type == gjson.Number:
		return value.Number(r.Num)
	case r.Type == gjson.String:
		return value.String(r.Str)
	case r.IsArray():
		arr := r.Array()
		items := make([]*value.Value, len(arr))
		for i, item := range arr {
			items[i] = valueFromJSON(item)
		}
		return value.Sequence(items...)
	case r.IsObject():
		m := value.NewMapping()
		r.ForEach(func(key, val gjson.Result) bool {
			m.Set(key.String(), valueFromJSON(val))
			return true
		})
		return m
	default:
		return value.Null()
	}
}

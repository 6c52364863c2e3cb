// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package modeldiff computes semantic diffs between structured model and
// configuration artifacts: JSON, YAML, MessagePack, NumPy and safetensors
// files, or whole directories of them.
//
// Documents are normalized into a canonical value tree, compared pairwise
// with optional numeric tolerance, and reported as a flat, deterministic
// list of change entries.
package modeldiff

import (
	"github.com/modeldiff/modeldiff/internal/compare"
	"github.com/modeldiff/modeldiff/internal/differ"
	"github.com/modeldiff/modeldiff/internal/loader"
	"github.com/modeldiff/modeldiff/internal/output"
	"github.com/modeldiff/modeldiff/internal/value"
)

// Value is one node of a canonical document tree.
type Value = value.Value

// Path locates a node within a document tree.
type Path = value.Path

// Entry is one reported difference.
type Entry = differ.Entry

// DiffType classifies an Entry.
type DiffType = differ.DiffType

// Options parameterizes a comparison.
type Options = differ.Options

// The diff entry classifications.
const (
	Added       = differ.Added
	Removed     = differ.Removed
	Modified    = differ.Modified
	TypeChanged = differ.TypeChanged
)

// Error types surfaced by this package.
type (
	ConfigError     = differ.ConfigError
	ConversionError = value.ConversionError
	LoadError       = loader.LoadError
)

// Value constructors.
var (
	Null       = value.Null
	Bool       = value.Bool
	Number     = value.Number
	String     = value.String
	Sequence   = value.Sequence
	NewMapping = value.NewMapping
)

// ParsePath parses a rendered path like "layers[0].weight" back into a Path.
func ParsePath(rendered string) (Path, error) {
	return value.ParsePath(rendered)
}

// Lookup walks a value tree along a path.
func Lookup(root *Value, p Path) (*Value, bool) {
	return value.Lookup(root, p)
}

// FromNative converts plain Go data into a canonical value tree.
func FromNative(v any) (*Value, error) {
	return value.FromNative(v)
}

// ToNative converts a canonical value tree back into plain Go data.
func ToNative(v *Value) any {
	return value.ToNative(v)
}

// Diff compares two value trees and returns the ordered change list. A nil
// side is treated as the null value; identical trees produce no entries.
func Diff(old, new *Value, opts Options) ([]Entry, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if old == nil {
		old = value.Null()
	}
	if new == nil {
		new = value.Null()
	}
	return differ.Compare(old, new, opts), nil
}

// DiffPaths compares two files or two directories on disk.
func DiffPaths(oldPath, newPath string, opts Options) ([]Entry, error) {
	return compare.DiffPaths(oldPath, newPath, opts)
}

// Load parses one file into a canonical value tree, picking the parser by
// file extension.
func Load(path string) (*Value, error) {
	return loader.Load(path)
}

// Format renders entries in one of the "json", "diffai" or "yaml" formats.
func Format(entries []Entry, kind string) (string, error) {
	return output.Format(entries, kind)
}

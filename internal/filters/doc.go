// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters selects subsets of diff entries with boolean expressions.
//
// An expression is compiled once and evaluated against every entry. Each
// entry is exposed to the expression as:
//
//   - diffType : "Added", "Removed", "Modified" or "TypeChanged"
//   - path     : the rendered path, e.g. "layers[0].weight"
//   - old      : the old value as plain Go data, or nil
//   - new      : the new value as plain Go data, or nil
//
// Examples:
//
//   - `diffType == "Modified"`
//   - `path startsWith "layers" && abs(old - new) > 0.5`
//   - `diffType in ["Added", "Removed"]`
package filters

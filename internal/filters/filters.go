// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/modeldiff/modeldiff/internal/differ"
	"github.com/modeldiff/modeldiff/internal/value"
)

// entryEnv is the expression environment for one entry. Values are plain Go
// data so expressions can use arithmetic and comparisons directly.
type entryEnv struct {
	DiffType string `expr:"diffType"`
	Path     string `expr:"path"`
	Old      any    `expr:"old"`
	New      any    `expr:"new"`
}

// Predicate is a compiled entry filter expression.
type Predicate struct {
	program *vm.Program
}

// Compile parses and type-checks a filter expression. A malformed expression
// is a configuration problem, not a diff failure.
func Compile(spec string) (*Predicate, error) {
	program, err := expr.Compile(spec, expr.Env(entryEnv{}), expr.AsBool())
	if err != nil {
		return nil, &differ.ConfigError{
			Reason: fmt.Sprintf("invalid filter expression %q: %v", spec, err),
		}
	}
	return &Predicate{program: program}, nil
}

// Match evaluates the predicate against one entry.
func (p *Predicate) Match(e differ.Entry) (bool, error) {
	env := entryEnv{
		DiffType: string(e.Type),
		Path:     e.Path.String(),
	}
	if e.Old != nil {
		env.Old = value.ToNative(e.Old)
	}
	if e.New != nil {
		env.New = value.ToNative(e.New)
	}

	out, err := expr.Run(p.program, env)
	if err != nil {
		return false, fmt.Errorf("filter expression failed on %s: %w", env.Path, err)
	}
	return out.(bool), nil
}

// Apply keeps the entries the predicate matches, preserving order.
func (p *Predicate) Apply(entries []differ.Entry) ([]differ.Entry, error) {
	var kept []differ.Entry
	for _, e := range entries {
		ok, err := p.Match(e)
		if err != nil {
			return nil, err
		}
		if ok {
			kept = append(kept, e)
		}
	}
	return kept, nil
}

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"fmt"
	"regexp"
)

// Options parameterizes a comparison. The zero value means exact numeric
// equality, no ignored keys and no path filtering. Options are read-only
// for the whole walk.
type Options struct {
	// Epsilon is the tolerance below which two numbers are considered
	// equal. Must be >= 0; 0 means exact equality.
	Epsilon float64

	// IgnoreKeysRegex excludes mapping keys matching this pattern from the
	// walk entirely, on both sides: no entries are reported at or under
	// them. Empty ignores nothing.
	IgnoreKeysRegex string

	// PathFilter keeps only entries whose path equals the filter or falls
	// under it at a segment boundary. Empty keeps everything.
	PathFilter string
}

// ConfigError reports an invalid option or an unrecognized output format.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "invalid configuration: " + e.Reason
}

// Validate rejects option values the engine has no defined semantics for.
func (o Options) Validate() error {
	if o.Epsilon < 0 {
		return &ConfigError{
			Reason: fmt.Sprintf("epsilon must be >= 0, got %g", o.Epsilon),
		}
	}
	if o.IgnoreKeysRegex != "" {
		if _, err := regexp.Compile(o.IgnoreKeysRegex); err != nil {
			return &ConfigError{
				Reason: fmt.Sprintf("invalid ignore-keys regex %q: %v",
					o.IgnoreKeysRegex, err),
			}
		}
	}
	return nil
}

// ignoreKeys compiles the ignore pattern for the walk. Compare expects
// validated options; a pattern Validate would reject ignores nothing.
func (o Options) ignoreKeys() *regexp.Regexp {
	if o.IgnoreKeysRegex == "" {
		return nil
	}
	re, err := regexp.Compile(o.IgnoreKeysRegex)
	if err != nil {
		return nil
	}
	return re
}

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package loader

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/apex/log"

	"github.com/modeldiff/modeldiff/internal/value"
)

// LoadError reports a file that could not be read or parsed, or whose format
// is not supported.
type LoadError struct {
	Path  string
	Cause error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.Path, e.Cause)
}

func (e *LoadError) Unwrap() error { return e.Cause }

type loadFunc func(path string) (*value.Value, error)

// registry maps lowercase file extensions to their loaders.
var registry = map[string]loadFunc{
	".json":        loadJSON,
	".yaml":        loadYAML,
	".yml":         loadYAML,
	".msgpack":     loadMsgpack,
	".mpk":         loadMsgpack,
	".npy":         loadNPY,
	".npz":         loadNPZ,
	".safetensors": loadSafetensors,
}

// Supported reports whether files with the given extension can be loaded.
func Supported(ext string) bool {
	_, ok := registry[strings.ToLower(ext)]
	return ok
}

// Load reads the file at path and converts it to a canonical value tree.
// All failures come back as a LoadError carrying the path and cause.
func Load(path string) (*value.Value, error) {
	ext := strings.ToLower(filepath.Ext(path))
	fn, ok := registry[ext]
	if !ok {
		return nil, &LoadError{
			Path:  path,
			Cause: fmt.Errorf("unsupported file format %q", ext),
		}
	}

	log.Debugf("loading %s as %s", path, ext)

	v, err := fn(path)
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			return nil, err
		}
		return nil, &LoadError{Path: path, Cause: err}
	}
	return v, nil
}

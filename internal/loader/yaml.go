// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package loader

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/modeldiff/modeldiff/internal/value"
)

// loadYAML parses a YAML document by walking the yaml.Node tree directly.
// Decoding through map[string]any would lose mapping key order.
func loadYAML(path string) (*value.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("invalid YAML document: %w", err)
	}

	// An empty file yields a zero node.
	if root.Kind == 0 {
		return value.Null(), nil
	}
	return valueFromYAML(&root)
}

func valueFromYAML(n *yaml.Node) (*value.Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return value.Null(), nil
		}
		return valueFromYAML(n.Content[0])
	case yaml.AliasNode:
		// yaml.v3 rejects cyclic aliases at parse time, so following the
		// anchor terminates.
		return valueFromYAML(n.Alias)
	case yaml.SequenceNode:
		items := make([]*value.Value, len(n.Content))
		for i, c := range n.Content {
			v, err := valueFromYAML(c)
			if err != nil {
				return nil, err
			}
			items[i] = v
		}
		return value.Sequence(items...), nil
	case yaml.MappingNode:
		m := value.NewMapping()
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := valueFromYAML(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m.Set(n.Content[i].Value, v)
		}
		return m, nil
	case yaml.ScalarNode:
		return scalarFromYAML(n)
	default:
		return nil, fmt.Errorf("unexpected YAML node kind %d at line %d", n.Kind, n.Line)
	}
}

func scalarFromYAML(n *yaml.Node) (*value.Value, error) {
	switch n.Tag {
	case "!!null":
		return value.Null(), nil
	case "!!bool":
		b, err := strconv.ParseBool(strings.ToLower(n.Value))
		if err != nil {
			return nil, fmt.Errorf("invalid bool %q at line %d", n.Value, n.Line)
		}
		return value.Bool(b), nil
	case "!!int":
		i, err := strconv.ParseInt(n.Value, 0, 64)
		if err != nil {
			// Large unsigned values overflow int64 but still fit float64.
			u, uerr := strconv.ParseUint(n.Value, 0, 64)
			if uerr != nil {
				return nil, fmt.Errorf("invalid int %q at line %d", n.Value, n.Line)
			}
			return value.Number(float64(u)), nil
		}
		return value.Number(float64(i)), nil
	case "!!float":
		switch strings.ToLower(n.Value) {
		case ".inf", "+.inf":
			return value.Number(math.Inf(1)), nil
		case "-.inf":
			return value.Number(math.Inf(-1)), nil
		case ".nan":
			return value.Number(math.NaN()), nil
		}
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid float %q at line %d", n.Value, n.Line)
		}
		return value.Number(f), nil
	default:
		// Timestamps, binary and anything else scalar stay textual.
		return value.String(n.Value), nil
	}
}

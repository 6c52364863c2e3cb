// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
)

// configNamespace is the keyspace consulted in the config file before the
// bare flag name, so "diff.epsilon" wins over "epsilon".
const configNamespace = "diff"

// NewDiffFlags builds the full flag set for the diff command. cfgFile is the
// resolved YAML config file path, empty when no config file exists.
func NewDiffFlags(cfgFile string) []cli.Flag {
	return []cli.Flag{
		NewEpsilonFlag(cfgFile),
		NameSpacedValueChainFlagFromConfigFile(cfgFile, &cli.StringFlag{
			Name:  "ignore-keys-regex",
			Usage: "exclude mapping keys matching this regular expression",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("MODELDIFF_IGNORE_KEYS_REGEX"),
			),
		}),
		NameSpacedValueChainFlagFromConfigFile(cfgFile, &cli.StringFlag{
			Name:    "path-filter",
			Aliases: []string{"p"},
			Usage:   "keep only entries at or under this path",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("MODELDIFF_PATH_FILTER"),
			),
		}),
		&cli.StringFlag{
			Name:    "where",
			Aliases: []string{"w"},
			Usage:   "keep only entries matching this boolean expression",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("MODELDIFF_WHERE"),
			),
		},
		NameSpacedValueChainFlagFromConfigFile(cfgFile, &cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Value:   "diffai",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("MODELDIFF_OUTPUT"),
			),
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		}),
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Value:   false,
		},
		&cli.BoolFlag{
			Name:    "interactive",
			Aliases: []string{"i"},
			Usage:   "browse the result in a pager",
			Value:   false,
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "log input sizes and entry counts",
			Value: false,
		},
	}
}

// NewEpsilonFlag constructs the numeric tolerance flag. The value chain is
// flag, then environment, then the namespaced and global config file keys.
func NewEpsilonFlag(cfgFile string) *cli.FloatFlag {
	flag := &cli.FloatFlag{
		Name:    "epsilon",
		Aliases: []string{"e"},
		Usage:   "treat numbers closer than this as equal",
		Value:   0,
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("MODELDIFF_EPSILON"),
		),
	}

	if cfgFile != "" {
		flag.Sources.Chain = append(flag.Sources.Chain,
			yaml.YAML(configNamespace+"."+flag.Name, altsrc.StringSourcer(cfgFile)),
			yaml.YAML(flag.Name, altsrc.StringSourcer(cfgFile)),
		)
	}

	return flag
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config
// file sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(path string, flag *cli.StringFlag) *cli.StringFlag {
	if path == "" {
		return flag
	}

	src := yaml.YAML(configNamespace+"."+flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	src = yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}

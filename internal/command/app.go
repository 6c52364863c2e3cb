// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/modeldiff/modeldiff/internal/config"
)

func InitApp(ctx context.Context, args []string) (*cli.Command, error) {

	// The config file is optional; flags fall back to their defaults when
	// it's absent.
	cfg, _ := config.Load() //nolint
	config.Config.Namespace = configNamespace

	app := &cli.Command{
		Name:      "modeldiff",
		Usage:     "semantic diff for model and config artifacts",
		ArgsUsage: "<old> <new>",
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "modeldiff version info",
				HideDefault: true,
			},
		}, NewDiffFlags(cfg.Source)...),
		Action: diffCommandAction,
	}

	// Make sure flags are sorted for the --help text.
	sort.Slice(app.Flags, func(i, j int) bool {
		return app.Flags[i].Names()[0] < app.Flags[j].Names()[0]
	})

	return app, nil
}

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"
	"golang.org/x/term"

	"github.com/modeldiff/modeldiff/internal/compare"
	"github.com/modeldiff/modeldiff/internal/differ"
	"github.com/modeldiff/modeldiff/internal/filters"
	"github.com/modeldiff/modeldiff/internal/loader"
	"github.com/modeldiff/modeldiff/internal/log"
	"github.com/modeldiff/modeldiff/internal/output"
	"github.com/modeldiff/modeldiff/internal/remote"
	"github.com/modeldiff/modeldiff/internal/value"
)

// diffCommandAction compares the two positional inputs and emits the result
// per the output flags.
func diffCommandAction(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) != 2 {
		return fmt.Errorf("expected exactly two inputs, got %d", len(args))
	}
	oldPath, err := resolveInput(ctx, args[0])
	if err != nil {
		return err
	}
	newPath, err := resolveInput(ctx, args[1])
	if err != nil {
		return err
	}

	if cmd.Bool("verbose") {
		logInput("old", oldPath)
		logInput("new", newPath)
	}

	// The ascii format diffs whole documents its own way and knows nothing
	// about entries, so it short-circuits the engine.
	if cmd.String("output") == "ascii" {
		return asciiDiff(oldPath, newPath, cmd.Bool("color"))
	}

	opts := differ.Options{
		Epsilon:         cmd.Float("epsilon"),
		IgnoreKeysRegex: cmd.String("ignore-keys-regex"),
		PathFilter:      cmd.String("path-filter"),
	}

	entries, err := compare.DiffPaths(oldPath, newPath, opts)
	if err != nil {
		return err
	}

	if where := cmd.String("where"); where != "" {
		pred, err := filters.Compile(where)
		if err != nil {
			return err
		}
		if entries, err = pred.Apply(entries); err != nil {
			return err
		}
	}

	if cmd.Bool("verbose") {
		log.Infof("%s entries", humanize.Comma(int64(len(entries))))
	}

	if cmd.Bool("interactive") {
		return browseEntries(entries)
	}

	if cmd.Bool("color") && cmd.String("output") == output.FormatDiffai &&
		term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprint(os.Stdout, output.RenderColored(entries))
		return nil
	}

	out, err := output.Format(entries, cmd.String("output"))
	if err != nil {
		return err
	}
	if out != "" && !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	fmt.Fprint(os.Stdout, out)

	return nil
}

// asciiDiff renders a side-by-side style document diff of two single files.
// Both inputs are normalized through the loaders first, so two formats can
// be diffed against each other.
func asciiDiff(oldPath, newPath string, color bool) error {
	oldJSON, err := loadAsJSON(oldPath)
	if err != nil {
		return err
	}
	newJSON, err := loadAsJSON(newPath)
	if err != nil {
		return err
	}

	delta, err := gojsondiff.New().Compare(oldJSON, newJSON)
	if err != nil {
		return fmt.Errorf("failed to compare documents: %w", err)
	}

	if !delta.Modified() {
		fmt.Fprintln(os.Stdout, "The inputs are identical.")
		return nil
	}

	var jdoc map[string]interface{}
	if err := json.Unmarshal(oldJSON, &jdoc); err != nil {
		return fmt.Errorf("ascii output requires mapping-shaped inputs: %w", err)
	}

	config := formatter.AsciiFormatterConfig{
		ShowArrayIndex: false,
		Coloring:       color,
	}

	formatter := formatter.NewAsciiFormatter(jdoc, config)
	diffString, err := formatter.Format(delta)
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, diffString)
	return nil
}

// resolveInput turns s3:// URIs into local files; local paths pass through.
func resolveInput(ctx context.Context, path string) (string, error) {
	if remote.IsRemote(path) {
		return remote.Fetch(ctx, path)
	}
	return path, nil
}

// loadAsJSON loads one input through the format loaders and re-encodes it
// as JSON for the document differ.
func loadAsJSON(path string) ([]byte, error) {
	v, err := loader.Load(path)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(value.ToNative(v))
	if err != nil {
		return nil, fmt.Errorf("failed to re-encode %s: %w", path, err)
	}
	return b, nil
}

// logInput reports the size of one input at info level.
func logInput(label string, path string) {
	info, err := os.Stat(path)
	if err != nil {
		return
	}
	if info.IsDir() {
		log.Infof("%s: %s (directory)", label, path)
		return
	}
	log.Infof("%s: %s (%s)", label, path, humanize.Bytes(uint64(info.Size())))
}

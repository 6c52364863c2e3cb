// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package compare

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modeldiff/modeldiff/internal/differ"
	"github.com/modeldiff/modeldiff/internal/loader"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func pathStrings(entries []differ.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = string(e.Type) + " " + e.Path.String()
	}
	return out
}

func TestDiffPathsFiles(t *testing.T) {
	oldDir := writeTree(t, map[string]string{"a.json": `{"lr":0.1,"epochs":10}`})
	newDir := writeTree(t, map[string]string{"a.json": `{"lr":0.2,"epochs":10}`})

	entries, err := DiffPaths(
		filepath.Join(oldDir, "a.json"), filepath.Join(newDir, "a.json"), differ.Options{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, differ.Modified, entries[0].Type)
	assert.Equal(t, "lr", entries[0].Path.String())
}

func TestDiffPathsInvalidOptions(t *testing.T) {
	_, err := DiffPaths("x", "y", differ.Options{Epsilon: -1})
	var cfgErr *differ.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestDiffPathsMissing(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.json": `{}`})

	_, err := DiffPaths(filepath.Join(dir, "nope.json"), filepath.Join(dir, "a.json"), differ.Options{})
	var loadErr *loader.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, loadErr.Path, "nope.json")
}

func TestDiffPathsFileVsDir(t *testing.T) {
	dir := writeTree(t, map[string]string{"a.json": `{}`})

	_, err := DiffPaths(filepath.Join(dir, "a.json"), dir, differ.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot compare a file with a directory")
}

func TestDiffPathsDirectories(t *testing.T) {
	oldDir := writeTree(t, map[string]string{
		"config.json":     `{"lr":0.1}`,
		"gone.yaml":       `status: old`,
		"sub/extra.json":  `{"same":true}`,
		"notes/README.md": "ignored",
	})
	newDir := writeTree(t, map[string]string{
		"config.json":    `{"lr":0.5}`,
		"added.yaml":     `status: new`,
		"sub/extra.json": `{"same":true}`,
	})

	entries, err := DiffPaths(oldDir, newDir, differ.Options{})
	require.NoError(t, err)

	// One entry per changed file, in relative path order; the unchanged
	// pair and the unsupported README contribute nothing.
	assert.Equal(t, []string{
		"Added added.yaml",
		"Modified config.json.lr",
		"Removed gone.yaml",
	}, pathStrings(entries))

	status, ok := entries[0].New.Get("status")
	require.True(t, ok)
	assert.Equal(t, "new", status.StringVal())
	assert.Nil(t, entries[0].Old)
}

func TestDiffPathsDirectoriesFilter(t *testing.T) {
	oldDir := writeTree(t, map[string]string{
		"a.json": `{"x":1}`,
		"b.json": `{"x":1}`,
	})
	newDir := writeTree(t, map[string]string{
		"a.json": `{"x":2}`,
		"b.json": `{"x":2}`,
	})

	entries, err := DiffPaths(oldDir, newDir, differ.Options{PathFilter: "b.json"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Modified b.json.x"}, pathStrings(entries))
}

func TestDiffPathsDirectoriesIgnoreKeys(t *testing.T) {
	oldDir := writeTree(t, map[string]string{
		"run.json": `{"timestamp":"10:00","lr":0.1}`,
	})
	newDir := writeTree(t, map[string]string{
		"run.json": `{"timestamp":"11:00","lr":0.2}`,
	})

	entries, err := DiffPaths(oldDir, newDir, differ.Options{IgnoreKeysRegex: "^timestamp$"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Modified run.json.lr"}, pathStrings(entries))
}

func TestDiffPathsInvalidIgnoreKeysRegex(t *testing.T) {
	_, err := DiffPaths("x", "y", differ.Options{IgnoreKeysRegex: "(["})
	var cfgErr *differ.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestDiffPathsDirectoriesEpsilon(t *testing.T) {
	oldDir := writeTree(t, map[string]string{"w.json": `{"loss":0.5001}`})
	newDir := writeTree(t, map[string]string{"w.json": `{"loss":0.5002}`})

	entries, err := DiffPaths(oldDir, newDir, differ.Options{Epsilon: 0.001})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDiffPathsDirectoriesBadFile(t *testing.T) {
	oldDir := writeTree(t, map[string]string{"a.json": `{broken`})
	newDir := writeTree(t, map[string]string{"a.json": `{}`})

	_, err := DiffPaths(oldDir, newDir, differ.Options{})
	var loadErr *loader.LoadError
	assert.ErrorAs(t, err, &loadErr)
}

// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package cacheutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirFromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MODELDIFF_CACHE_DIR", dir)

	got, ok := Dir()
	require.True(t, ok)
	assert.Equal(t, dir, got)
}

func TestEnabled(t *testing.T) {
	t.Setenv("MODELDIFF_CACHE", "")
	assert.True(t, Enabled())

	t.Setenv("MODELDIFF_CACHE", "0")
	assert.False(t, Enabled())

	t.Setenv("MODELDIFF_CACHE", "false")
	assert.False(t, Enabled())

	t.Setenv("MODELDIFF_CACHE", "1")
	assert.True(t, Enabled())
}

func TestWriteReadRoundTrip(t *testing.T) {
	t.Setenv("MODELDIFF_CACHE_DIR", t.TempDir())
	t.Setenv("MODELDIFF_CACHE", "1")

	// Binary payload with leading/trailing whitespace bytes must survive
	// untouched.
	data := []byte("\x00\x01 payload \n")
	require.NoError(t, Write([]string{"s3", "bucket"}, "s3://bucket/model.npz", data))

	entry, ok := Read([]string{"s3", "bucket"}, "s3://bucket/model.npz")
	require.True(t, ok)
	assert.Equal(t, data, entry.Data)
	assert.Equal(t, "s3://bucket/model.npz", entry.Key)
	assert.NotEqual(t, entry.Key, entry.EncodedKey)
}

func TestReadMiss(t *testing.T) {
	t.Setenv("MODELDIFF_CACHE_DIR", t.TempDir())

	_, ok := Read([]string{"s3"}, "s3://bucket/absent")
	assert.False(t, ok)
}

func TestReadDisabled(t *testing.T) {
	t.Setenv("MODELDIFF_CACHE_DIR", t.TempDir())
	t.Setenv("MODELDIFF_CACHE", "1")
	require.NoError(t, Write(nil, "k", []byte("v")))

	t.Setenv("MODELDIFF_CACHE", "0")
	_, ok := Read(nil, "k")
	assert.False(t, ok)
}

func TestEnsureBaseDir(t *testing.T) {
	base := filepath.Join(t.TempDir(), "cache")
	t.Setenv("MODELDIFF_CACHE_DIR", base)
	t.Setenv("MODELDIFF_CACHE", "1")

	got, ok, err := EnsureBaseDir()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, base, got)
	assert.DirExists(t, base)
}

func TestPurge(t *testing.T) {
	base := t.TempDir()
	t.Setenv("MODELDIFF_CACHE_DIR", base)

	stale := filepath.Join(base, "stale")
	fresh := filepath.Join(base, "fresh")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o600))
	require.NoError(t, os.WriteFile(fresh, []byte("new"), 0o600))
	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(stale, old, old))

	require.NoError(t, Purge(24))
	assert.NoFileExists(t, stale)
	assert.FileExists(t, fresh)

	// Zero hours disables purging entirely.
	require.NoError(t, os.Chtimes(fresh, old, old))
	require.NoError(t, Purge(0))
	assert.FileExists(t, fresh)
}

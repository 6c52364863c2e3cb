// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package remote

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modeldiff/modeldiff/internal/cacheutil"
)

func TestIsRemote(t *testing.T) {
	assert.True(t, IsRemote("s3://bucket/model.npz"))
	assert.False(t, IsRemote("/tmp/model.npz"))
	assert.False(t, IsRemote("model.npz"))
}

func TestParseURI(t *testing.T) {
	bucket, key, err := parseURI("s3://models/checkpoints/run7.safetensors")
	require.NoError(t, err)
	assert.Equal(t, "models", bucket)
	assert.Equal(t, "checkpoints/run7.safetensors", key)

	_, _, err = parseURI("s3://bucketonly")
	assert.Error(t, err)

	_, _, err = parseURI("http://x/y")
	assert.Error(t, err)
}

func TestFetchFromCache(t *testing.T) {
	t.Setenv("MODELDIFF_CACHE_DIR", t.TempDir())
	t.Setenv("MODELDIFF_CACHE", "1")

	uri := "s3://models/cfg.json"
	require.NoError(t,
		cacheutil.Write([]string{"s3", "models"}, uri, []byte(`{"a":1}`)))

	// A cache hit must not touch the network at all.
	path, err := Fetch(context.Background(), uri)
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(path) })

	assert.Equal(t, ".json", filepath.Ext(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(data))
}

func TestMaterializeKeepsExtension(t *testing.T) {
	path, err := materialize([]byte("x"), "dir/weights.npy")
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(path) })
	assert.Equal(t, ".npy", filepath.Ext(path))
}

// Copyright (c) 2026 The ttp Authors.
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

// useCacheDir points the cache at a fresh temp dir with caching enabled.
func useCacheDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("TTP_CACHE_DIR", dir)
	t.Setenv("TTP_CACHE", "1")
	return dir
}

func TestDir_WithTTP_CACHE_DIR(t *testing.T) {
	customDir := t.TempDir()
	t.Setenv("TTP_CACHE_DIR", customDir)

	result, ok := Dir()
	assert.True(t, ok)
	assert.Equal(t, customDir, result)
}

func TestDir_FallsBackToUserCacheDir(t *testing.T) {
	t.Setenv("TTP_CACHE_DIR", "")

	result, ok := Dir()
	if ok {
		assert.True(t, filepath.IsAbs(result))
		assert.Equal(t, "ttp", filepath.Base(result))
	}
}

func TestEnabled(t *testing.T) {
	tests := []struct {
		value    string
		expected bool
	}{
		{"", true},
		{"1", true},
		{"yes", true},
		{"0", false},
		{"false", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("TTP_CACHE", tt.value)
			assert.Equal(t, tt.expected, Enabled())
		})
	}
}

func TestWriteThenRead(t *testing.T) {
	dir := useCacheDir(t)
	data := []byte("{\n  \"field\": []\n}\n")
	sub := []string{"s3", "bucket"}

	require.NoError(t, Write(sub, "templates/a.json#v1", data))

	path, exists := EntryPath(sub, "templates/a.json#v1")
	assert.True(t, exists)
	assert.Equal(t, filepath.Join(dir, "s3", "bucket", encodeKey("templates/a.json#v1")), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	entry, ok := Read(sub, "templates/a.json#v1")
	require.True(t, ok)
	assert.Equal(t, data, entry.Data)
	assert.Equal(t, "templates/a.json#v1", entry.Key)
	assert.Equal(t, encodeKey("templates/a.json#v1"), entry.EncodedKey)
}

func TestRead_Miss(t *testing.T) {
	useCacheDir(t)

	entry, ok := Read([]string{"s3"}, "missing")
	assert.False(t, ok)
	assert.Nil(t, entry)
}

func TestDisabledCache(t *testing.T) {
	dir := useCacheDir(t)
	t.Setenv("TTP_CACHE", "0")

	require.NoError(t, Write([]string{"s3"}, "key", []byte("data")))
	assert.NoDirExists(t, filepath.Join(dir, "s3"))

	_, ok := Read([]string{"s3"}, "key")
	assert.False(t, ok)
}

func TestPurge(t *testing.T) {
	dir := useCacheDir(t)

	require.NoError(t, Write(nil, "old", []byte("old")))
	require.NoError(t, Write(nil, "new", []byte("new")))

	oldPath := filepath.Join(dir, encodeKey("old"))
	stale := time.Now().Add(-3 * time.Hour)
	require.NoError(t, os.Chtimes(oldPath, stale, stale))

	require.NoError(t, Purge(2))
	assert.NoFileExists(t, oldPath)
	assert.FileExists(t, filepath.Join(dir, encodeKey("new")))
}

func TestPurge_Disabled(t *testing.T) {
	dir := useCacheDir(t)
	require.NoError(t, Write(nil, "keep", []byte("x")))

	require.NoError(t, Purge(0))
	assert.FileExists(t, filepath.Join(dir, encodeKey("keep")))
}

func TestEncodeKey(t *testing.T) {
	assert.Len(t, encodeKey("anything"), 64)
	assert.Equal(t, encodeKey("a"), encodeKey("a"))
	assert.NotEqual(t, encodeKey("a"), encodeKey("b"))
}

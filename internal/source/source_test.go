// Copyright (c) 2026 The ttp Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package source

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingGetter struct {
	calls   int
	version string
	body    string
}

func (g *countingGetter) GetObject(_ context.Context, in *s3v2.GetObjectInput, _ ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error) {
	g.calls++
	g.version = awsv2.ToString(in.VersionId)
	return &s3v2.GetObjectOutput{Body: io.NopCloser(strings.NewReader(g.body))}, nil
}

func TestParseS3URI(t *testing.T) {
	tests := []struct {
		spec     string
		expected S3Location
	}{
		{"s3://bucket/generic.json", S3Location{Bucket: "bucket", Key: "generic.json"}},
		{"s3://bucket/a/b/c.json", S3Location{Bucket: "bucket", Key: "a/b/c.json"}},
		{"s3://bucket/a.json#3HL4kqtJ", S3Location{Bucket: "bucket", Key: "a.json", Version: "3HL4kqtJ"}},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := ParseS3URI(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.spec, got.String())
		})
	}
}

func TestParseS3URI_Invalid(t *testing.T) {
	for _, spec := range []string{"s3://", "s3://bucket", "s3://bucket/", "s3:///key", "file.json"} {
		t.Run(spec, func(t *testing.T) {
			_, err := ParseS3URI(spec)
			assert.ErrorIs(t, err, ErrInvalidURI)
		})
	}
}

func TestIsStdin(t *testing.T) {
	assert.True(t, IsStdin("-"))
	assert.True(t, IsStdin("/dev/stdin"))
	assert.False(t, IsStdin("--"))
	assert.False(t, IsStdin("stdin.json"))
}

func TestRead_StdinPath(t *testing.T) {
	data, err := Read(context.Background(), StdinPath, strings.NewReader(`{"field":[]}`))
	require.NoError(t, err)
	assert.Equal(t, `{"field":[]}`, string(data))
}

func TestRead_Stdin(t *testing.T) {
	data, err := Read(context.Background(), Stdin, strings.NewReader(`{"field":[]}`))
	require.NoError(t, err)
	assert.Equal(t, `{"field":[]}`, string(data))
}

func TestRead_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "t.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"field":[]}`), 0o600))

	data, err := Read(context.Background(), path, nil)
	require.NoError(t, err)
	assert.Equal(t, `{"field":[]}`, string(data))
}

func TestRead_FileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Read(context.Background(), filepath.Join(dir, "missing.json"), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Read(context.Background(), dir, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")
}

func TestRead_S3CachesPinnedVersions(t *testing.T) {
	t.Setenv("TTP_CACHE_DIR", t.TempDir())
	t.Setenv("TTP_CACHE", "")
	g := &countingGetter{body: `{"field":[]}`}

	for range 2 {
		data, err := Read(context.Background(), "s3://bucket/t.json#v1", nil, WithObjectGetter(g))
		require.NoError(t, err)
		assert.Equal(t, `{"field":[]}`, string(data))
	}
	assert.Equal(t, 1, g.calls)
	assert.Equal(t, "v1", g.version)
}

func TestRead_S3LatestIsNotCached(t *testing.T) {
	t.Setenv("TTP_CACHE_DIR", t.TempDir())
	g := &countingGetter{body: "{}"}

	for range 2 {
		_, err := Read(context.Background(), "s3://bucket/t.json", nil, WithObjectGetter(g))
		require.NoError(t, err)
	}
	assert.Equal(t, 2, g.calls)
	assert.Empty(t, g.version)
}

func TestRead_S3InvalidURI(t *testing.T) {
	_, err := Read(context.Background(), "s3://bucket", nil)
	assert.ErrorIs(t, err, ErrInvalidURI)
}

// Copyright (c) 2026 The ttp Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package aws

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGetter struct {
	input *s3v2.GetObjectInput
	body  string
	err   error
}

func (f *fakeGetter) GetObject(_ context.Context, params *s3v2.GetObjectInput, _ ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &s3v2.GetObjectOutput{Body: io.NopCloser(strings.NewReader(f.body))}, nil
}

// TestOptions verifies that option functions populate the options struct.
func TestOptions(t *testing.T) {
	var opts options
	WithProfile("test-profile")(&opts)
	WithRegion("ap-southeast-1")(&opts)
	WithRetryer(func() awsv2.Retryer { return retry.NewStandard() })(&opts)

	assert.Equal(t, "test-profile", opts.profile)
	assert.Equal(t, "ap-southeast-1", opts.region)
	require.NotNil(t, opts.retryer)
	assert.NotNil(t, opts.retryer())
}

// TestLoadAWSConfig_WithRegion verifies that the region override is applied
// and that later options win.
func TestLoadAWSConfig_WithRegion(t *testing.T) {
	cfg, err := LoadAWSConfig(context.Background(), WithRegion("us-east-1"), WithRegion("eu-west-1"))
	require.NoError(t, err)
	assert.Equal(t, "eu-west-1", cfg.Region)

	client := NewS3(cfg)
	assert.IsType(t, &s3v2.Client{}, client)
}

func TestWithEndpoint(t *testing.T) {
	var o s3v2.Options
	WithEndpoint("")(&o)
	assert.Nil(t, o.BaseEndpoint)
	assert.False(t, o.UsePathStyle)

	WithEndpoint("http://localhost:9000")(&o)
	require.NotNil(t, o.BaseEndpoint)
	assert.Equal(t, "http://localhost:9000", *o.BaseEndpoint)
	assert.True(t, o.UsePathStyle)
}

func TestGetObject(t *testing.T) {
	api := &fakeGetter{body: `{"field":[]}`}

	data, err := GetObject(context.Background(), api, "bucket", "tpl/generic.json", "v42")
	require.NoError(t, err)
	assert.Equal(t, `{"field":[]}`, string(data))
	assert.Equal(t, "bucket", awsv2.ToString(api.input.Bucket))
	assert.Equal(t, "tpl/generic.json", awsv2.ToString(api.input.Key))
	assert.Equal(t, "v42", awsv2.ToString(api.input.VersionId))
}

func TestGetObject_LatestVersion(t *testing.T) {
	api := &fakeGetter{body: "{}"}

	_, err := GetObject(context.Background(), api, "bucket", "key", "")
	require.NoError(t, err)
	assert.Nil(t, api.input.VersionId)
}

func TestGetObject_Error(t *testing.T) {
	boom := errors.New("access denied")
	api := &fakeGetter{err: boom}

	_, err := GetObject(context.Background(), api, "bucket", "key", "")
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "s3://bucket/key")
}

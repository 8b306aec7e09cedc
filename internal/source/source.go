// Copyright (c) 2026 The ttp Authors.
// SPDX-License-Identifier: Apache-2.0

// Package source resolves a template argument into its bytes. An argument is
// "-" for stdin, an s3://bucket/key[#versionId] URI, or a local path.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	awsx "github.com/tropy/ttp/internal/aws"
	"github.com/tropy/ttp/internal/cacheutil"
	"github.com/tropy/ttp/internal/log"
)

// Stdin and StdinPath are the arguments selecting standard input.
const (
	Stdin     = "-"
	StdinPath = "/dev/stdin"
)

// IsStdin reports whether spec selects standard input.
func IsStdin(spec string) bool {
	return spec == Stdin || spec == StdinPath
}

const s3Scheme = "s3://"

// ErrInvalidURI reports a malformed s3:// argument.
var ErrInvalidURI = errors.New("invalid s3 uri")

// S3Location addresses one object, optionally pinned to a version.
type S3Location struct {
	Bucket  string
	Key     string
	Version string
}

// String renders the location back into URI form.
func (l S3Location) String() string {
	s := s3Scheme + l.Bucket + "/" + l.Key
	if l.Version != "" {
		s += "#" + l.Version
	}
	return s
}

// IsS3 reports whether spec uses the s3:// scheme.
func IsS3(spec string) bool {
	return strings.HasPrefix(spec, s3Scheme)
}

// ParseS3URI splits s3://bucket/key#versionId.
func ParseS3URI(spec string) (S3Location, error) {
	rest, ok := strings.CutPrefix(spec, s3Scheme)
	if !ok {
		return S3Location{}, fmt.Errorf("%w: %q lacks the s3:// scheme", ErrInvalidURI, spec)
	}

	var loc S3Location
	rest, loc.Version, _ = strings.Cut(rest, "#")
	loc.Bucket, loc.Key, _ = strings.Cut(rest, "/")
	if loc.Bucket == "" || loc.Key == "" {
		return S3Location{}, fmt.Errorf("%w: %q needs a bucket and a key", ErrInvalidURI, spec)
	}
	return loc, nil
}

type options struct {
	region   string
	profile  string
	endpoint string
	getter   awsx.ObjectGetter
}

// Option customizes how s3:// arguments are fetched.
type Option func(*options)

// WithRegion overrides the AWS region.
func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// WithProfile selects a shared config profile.
func WithProfile(profile string) Option {
	return func(o *options) { o.profile = profile }
}

// WithEndpoint targets an S3-compatible endpoint.
func WithEndpoint(url string) Option {
	return func(o *options) { o.endpoint = url }
}

// WithObjectGetter replaces the S3 client.
func WithObjectGetter(g awsx.ObjectGetter) Option {
	return func(o *options) { o.getter = g }
}

// Read returns the bytes named by spec.
func Read(ctx context.Context, spec string, stdin io.Reader, opts ...Option) ([]byte, error) {
	switch {
	case IsStdin(spec):
		if stdin == nil {
			stdin = os.Stdin
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil

	case IsS3(spec):
		loc, err := ParseS3URI(spec)
		if err != nil {
			return nil, err
		}
		var o options
		for _, opt := range opts {
			opt(&o)
		}
		return readS3(ctx, loc, &o)

	default:
		return readFile(spec)
	}
}

func readFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("failed to read template: %s is a directory", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}
	log.Debugf("read %d bytes from %s", len(data), path)
	return data, nil
}

// readS3 fetches loc. Only version-pinned objects are cached since an
// unpinned key may change.
func readS3(ctx context.Context, loc S3Location, o *options) ([]byte, error) {
	subdirs := []string{"s3", loc.Bucket}
	cacheKey := loc.Key + "#" + loc.Version

	if loc.Version != "" {
		if entry, ok := cacheutil.Read(subdirs, cacheKey); ok {
			return entry.Data, nil
		}
	}

	getter := o.getter
	if getter == nil {
		var cfgOpts []awsx.Option
		if o.region != "" {
			cfgOpts = append(cfgOpts, awsx.WithRegion(o.region))
		}
		if o.profile != "" {
			cfgOpts = append(cfgOpts, awsx.WithProfile(o.profile))
		}
		cfg, err := awsx.LoadAWSConfig(ctx, cfgOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		getter = awsx.NewS3(cfg, awsx.WithEndpoint(o.endpoint))
	}

	data, err := awsx.GetObject(ctx, getter, loc.Bucket, loc.Key, loc.Version)
	if err != nil {
		return nil, err
	}

	if loc.Version != "" {
		if err := cacheutil.Write(subdirs, cacheKey, data); err != nil {
			log.WithError(err).Warnf("failed to cache %s", loc)
		}
	}
	return data, nil
}

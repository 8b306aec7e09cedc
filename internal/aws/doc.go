// Copyright (c) 2026 The ttp Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package aws wraps the AWS SDK v2 pieces used to read templates stored in
// S3 buckets.
package aws

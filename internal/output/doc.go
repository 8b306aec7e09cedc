// Copyright (c) 2026 The ttp Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output renders a template diff report as text tables, JSON or
// YAML.
package output

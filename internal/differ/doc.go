// Copyright (c) 2026 The ttp Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package differ offers two alternative views of a template change: a raw
// JSON delta of the whole documents and an interactive browser over a
// computed report.
package differ

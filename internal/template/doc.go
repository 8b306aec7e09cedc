// Copyright (c) 2026 The ttp Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package template models Tropy-style templates and computes the structural
// difference between two versions of one.
//
// A template is a JSON object whose "field" array lists field definitions.
// Each field is an ordered set of attributes and is identified across
// versions by its "property" attribute. Compute joins the two field lists on
// that identifier and reports:
//
//   - fields removed and added,
//   - attributes removed, added and changed on fields present in both,
//   - the positional shift of every field of the newer version.
//
// The shift is to_index - from_index. It is a cheap positional heuristic, not
// a minimal permutation distance: inserting one field shifts every later
// field by one.
package template

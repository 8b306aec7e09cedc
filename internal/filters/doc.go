// Copyright (c) 2026 The ttp Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters narrows a template diff report with --filter expressions.
//
// Filters are key-operator-target expressions joined by a configurable
// delimiter (default: comma, override with TTP_FILTER_DELIM). Keys:
//
//   - property  : the field's property id
//   - attribute : an attribute name (alias attr); applies to removed, added
//     and changed data
//   - shift     : the field's numeric position shift
//
// Operators (each may be negated with a leading !):
//
//   - = : exact match
//   - ~ : case-insensitive match
//   - ^ : prefix match
//   - < : less than
//   - > : greater than
//   - @ : contains substring
//   - / : regex match
//
// Examples:
//
//   - "property^http://purl.org/dc/" : Dublin Core fields only
//   - "attr!=hint"                    : ignore hint changes in the output
//   - "shift!=0"                      : fields that moved
//
// Unknown keys are reported and skipped. All remaining filters must match.
package filters

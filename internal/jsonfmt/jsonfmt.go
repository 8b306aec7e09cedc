// Copyright (c) 2026 The ttp Authors.
// SPDX-License-Identifier: Apache-2.0

// Package jsonfmt re-serializes JSON documents without decoding them, so key
// order and the exact text of numbers and strings survive.
package jsonfmt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// ErrInvalidJSON is returned for input that is not a single JSON value.
var ErrInvalidJSON = errors.New("invalid JSON")

// DefaultIndent is the indentation width used by Pretty.
const DefaultIndent = 4

// Options tune PrettyOptions.
type Options struct {
	// Indent is the number of spaces per nesting level. Values below 1 use
	// DefaultIndent.
	Indent int
	// SortKeys orders object keys lexically instead of keeping document
	// order.
	SortKeys bool
}

// Pretty indents doc with DefaultIndent spaces per level, one member or
// element per line, keeping key order. The result ends with a newline.
func Pretty(doc []byte) ([]byte, error) {
	return PrettyOptions(doc, Options{})
}

// PrettyOptions is Pretty with explicit options.
func PrettyOptions(doc []byte, opts Options) ([]byte, error) {
	if err := validate(doc); err != nil {
		return nil, err
	}

	indent := opts.Indent
	if indent < 1 {
		indent = DefaultIndent
	}

	// Width 0 keeps short arrays from collapsing onto one line.
	return pretty.PrettyOptions(doc, &pretty.Options{
		Width:    0,
		Prefix:   "",
		Indent:   strings.Repeat(" ", indent),
		SortKeys: opts.SortKeys,
	}), nil
}

// Compact removes every insignificant whitespace byte from doc, keeping key
// order. No newline is appended.
func Compact(doc []byte) ([]byte, error) {
	if err := validate(doc); err != nil {
		return nil, err
	}
	return pretty.Ugly(doc), nil
}

// Valid reports whether doc is a single well-formed JSON value.
func Valid(doc []byte) bool {
	return gjson.ValidBytes(doc)
}

func validate(doc []byte) error {
	if !gjson.ValidBytes(doc) {
		return fmt.Errorf("%w: %d bytes could not be parsed", ErrInvalidJSON, len(doc))
	}
	return nil
}

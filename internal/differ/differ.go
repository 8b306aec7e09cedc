// Copyright (c) 2026 The ttp Authors.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/tropy/ttp/internal/jsonfmt"
	"github.com/tropy/ttp/internal/log"
	"github.com/tropy/ttp/internal/template"
)

// IdenticalMessage is printed by Raw when nothing differs.
const IdenticalMessage = "The templates are identical."

// RawOptions controls Raw.
type RawOptions struct {
	// Ignore names keys dropped before comparing, both at the top level and
	// inside every field. The property key of a field is always kept.
	Ignore []string
	// Color enables ANSI coloring of the delta.
	Color bool
}

// Raw writes a line-oriented JSON delta of two whole template documents and
// reports whether they differ.
func Raw(w io.Writer, from, to []byte, opts RawOptions) (bool, error) {
	log.Debugf("raw diff: len(from)=%d len(to)=%d", len(from), len(to))

	left, err := decodeObject(from, opts.Ignore)
	if err != nil {
		return false, fmt.Errorf("failed to decode from template: %w", err)
	}
	right, err := decodeObject(to, opts.Ignore)
	if err != nil {
		return false, fmt.Errorf("failed to decode to template: %w", err)
	}

	delta := gojsondiff.New().CompareObjects(left, right)
	if !delta.Modified() {
		fmt.Fprintln(w, IdenticalMessage)
		return false, nil
	}

	config := formatter.AsciiFormatterConfig{
		ShowArrayIndex: false,
		Coloring:       opts.Color,
	}

	diffString, err := formatter.NewAsciiFormatter(left, config).Format(delta)
	if err != nil {
		return true, err
	}

	fmt.Fprint(w, diffString)
	return true, nil
}

// decodeObject parses a document and strips ignored keys.
func decodeObject(data []byte, ignore []string) (map[string]interface{}, error) {
	if !jsonfmt.Valid(data) {
		return nil, jsonfmt.ErrInvalidJSON
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("top-level value is not an object")
	}

	for _, key := range ignore {
		if key == "" || key == template.PropertyKey {
			continue
		}
		delete(doc, key)
		if fields, ok := doc[template.FieldListKey].([]interface{}); ok {
			for _, f := range fields {
				if obj, ok := f.(map[string]interface{}); ok {
					delete(obj, key)
				}
			}
		}
	}
	return doc, nil
}

// Copyright (c) 2026 The ttp Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"github.com/tidwall/gjson"

	"github.com/tropy/ttp/internal/log"
)

// FieldListKey is the top-level attribute holding a template's fields.
const FieldListKey = "field"

// ParseDocument parses a template document and returns its fields in
// document order. It fails with a *FormatError when data is not JSON, the
// root is not an object, the field list is missing or not an array, or an
// element of it is not an object. Property ids are checked by Compute.
func ParseDocument(data []byte) ([]Field, error) {
	if !gjson.ValidBytes(data) {
		return nil, formatErr(-1, "malformed JSON")
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, formatErr(-1, "top-level value is not an object")
	}

	list, ok := member(root, FieldListKey)
	if !ok {
		return nil, formatErr(-1, "missing %q list", FieldListKey)
	}
	if !list.IsArray() {
		return nil, formatErr(-1, "%q is not an array", FieldListKey)
	}

	elems := list.Array()
	fields := make([]Field, 0, len(elems))
	for i, elem := range elems {
		f, err := decodeField(i, elem)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}

	log.Debugf("parsed template: fields=%d", len(fields))
	return fields, nil
}

// member returns the last value stored under key in obj. gjson paths would
// treat dots and wildcards in key specially and return the first duplicate.
func member(obj gjson.Result, key string) (gjson.Result, bool) {
	var (
		found gjson.Result
		ok    bool
	)
	obj.ForEach(func(k, v gjson.Result) bool {
		if k.String() == key {
			found, ok = v, true
		}
		return true
	})
	return found, ok
}

// DiffDocuments parses two template documents and diffs their fields.
func DiffDocuments(from, to []byte, opts ...Option) (*Report, error) {
	fromFields, err := ParseDocument(from)
	if err != nil {
		return nil, withSide(err, "from")
	}
	toFields, err := ParseDocument(to)
	if err != nil {
		return nil, withSide(err, "to")
	}
	return Compute(fromFields, toFields, opts...)
}

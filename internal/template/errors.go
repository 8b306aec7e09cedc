// Copyright (c) 2026 The ttp Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"errors"
	"fmt"
)

// ErrFormat matches every *FormatError via errors.Is.
var ErrFormat = errors.New("template format error")

// FormatError reports a template document or field list that does not have
// the expected shape. Side names the document ("from", "to") when known and
// Index is the offending field position, or -1.
type FormatError struct {
	Side   string
	Index  int
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	msg := "invalid template"
	if e.Side != "" {
		msg += " (" + e.Side + ")"
	}
	if e.Index >= 0 {
		msg += fmt.Sprintf(": field %d", e.Index)
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is makes errors.Is(err, ErrFormat) true for any FormatError.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

func formatErr(index int, format string, args ...any) *FormatError {
	return &FormatError{Index: index, Reason: fmt.Sprintf(format, args...)}
}

// withSide stamps the document side onto a FormatError and passes other
// errors through untouched.
func withSide(err error, side string) error {
	var fe *FormatError
	if errors.As(err, &fe) && fe.Side == "" {
		fe.Side = side
	}
	return err
}

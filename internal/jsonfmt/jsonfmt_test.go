// Copyright (c) 2026 The ttp Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package jsonfmt

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var roundTripDocs = []string{
	`{}`,
	`[]`,
	`"plain"`,
	`12.50`,
	`null`,
	`{"z": 1, "a": [1, 2.0, {"k": "v, w: x"}], "e": {}, "s": "tab\tand \"quote\""}`,
	`{"field":[{"property":"http://purl.org/dc/elements/1.1/title","label":"Title"}]}`,
}

func TestPretty(t *testing.T) {
	got, err := Pretty([]byte(`{"b":1,"a":[true,null],"c":{}}`))
	require.NoError(t, err)

	want := "{\n" +
		"    \"b\": 1,\n" +
		"    \"a\": [\n" +
		"        true,\n" +
		"        null\n" +
		"    ],\n" +
		"    \"c\": {}\n" +
		"}\n"
	assert.Equal(t, want, string(got))
}

func TestPrettyOptions(t *testing.T) {
	got, err := PrettyOptions([]byte(`{"b":1,"a":2}`), Options{Indent: 2, SortKeys: true})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 2,\n  \"b\": 1\n}\n", string(got))
}

func TestPretty_KeepsNumberText(t *testing.T) {
	got, err := Pretty([]byte(`{"n":1.50,"big":12345678901234567890}`))
	require.NoError(t, err)
	assert.Contains(t, string(got), `"n": 1.50`)
	assert.Contains(t, string(got), `"big": 12345678901234567890`)
}

func TestCompact(t *testing.T) {
	got, err := Compact([]byte("{\n  \"b\" : 1,\n  \"a\" : [ \"x y\" , 2 ]\n}\n"))
	require.NoError(t, err)
	assert.Equal(t, `{"b":1,"a":["x y",2]}`, string(got))
}

func TestInvalid(t *testing.T) {
	for _, doc := range []string{``, `{`, `{"a":}`, `[1,]`, `{"a":1} {"b":2}`} {
		t.Run(doc, func(t *testing.T) {
			_, err := Pretty([]byte(doc))
			assert.ErrorIs(t, err, ErrInvalidJSON)
			_, err = Compact([]byte(doc))
			assert.ErrorIs(t, err, ErrInvalidJSON)
			assert.False(t, Valid([]byte(doc)))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	for _, doc := range roundTripDocs {
		t.Run(doc, func(t *testing.T) {
			p, err := Pretty([]byte(doc))
			require.NoError(t, err)
			c, err := Compact(p)
			require.NoError(t, err)

			var want, got interface{}
			require.NoError(t, json.Unmarshal([]byte(doc), &want))
			require.NoError(t, json.Unmarshal(c, &got))
			assert.Equal(t, want, got)

			direct, err := Compact([]byte(doc))
			require.NoError(t, err)
			assert.Equal(t, string(direct), string(c))
		})
	}
}

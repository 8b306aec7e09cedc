// Copyright (c) 2026 The ttp Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/tropy/ttp/internal/template"
)

const (
	fromDoc = `{"field": [
		{"property": "a", "label": "A", "hint": "h"},
		{"property": "b", "label": "B"},
		{"property": "c", "label": "C"}
	]}`
	toDoc = `{"field": [
		{"property": "b", "label": "B", "isRequired": true},
		{"property": "a", "label": "A2"},
		{"property": "d", "label": "D", "options": {"multi": false}}
	]}`
)

func testReport(t *testing.T, from, to string) *template.Report {
	t.Helper()
	r, err := template.DiffDocuments([]byte(from), []byte(to))
	require.NoError(t, err)
	return r
}

func render(t *testing.T, r *template.Report, opts Options) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, r, opts))
	return buf.String()
}

func TestRender_TextEmptySections(t *testing.T) {
	r := testReport(t, fromDoc, fromDoc)

	expected := strings.Join([]string{
		"Removed fields", "-", "",
		"Added fields", "-", "",
		"Removed data", "-", "",
		"Added data", "-", "",
		"Changed data", "-", "",
		"Order changes", "-", "",
	}, "\n")
	assert.Equal(t, expected, render(t, r, Options{}))
}

func TestRender_Text(t *testing.T) {
	out := render(t, testReport(t, fromDoc, toDoc), Options{Format: FormatText, Padding: 2})

	labels := []string{LabelRemovedFields, LabelAddedFields, LabelRemovedData, LabelAddedData, LabelChangedData, LabelOrderChanges}
	last := -1
	for _, label := range labels {
		idx := strings.Index(out, label)
		require.GreaterOrEqual(t, idx, 0, label)
		assert.Greater(t, idx, last, "%s out of order", label)
		last = idx
	}

	assert.Contains(t, out, `{"property":"c","label":"C"}`)
	assert.Contains(t, out, `{"property":"d","label":"D","options":{"multi":false}}`)
	assert.Contains(t, out, `"h"`)
	assert.Contains(t, out, "isRequired")
	assert.Contains(t, out, `"A2"`)
	assert.NotContains(t, out, "shift")

	orderPart := out[strings.Index(out, LabelOrderChanges):]
	assert.Contains(t, orderPart, "2nd")
	assert.Contains(t, orderPart, "1st")
	assert.Contains(t, orderPart, "-1")
	assert.Contains(t, orderPart, "+1")
	assert.Contains(t, orderPart, "3rd")
}

func TestRender_TextFieldOnOneLine(t *testing.T) {
	from := `{"field": [
		{
			"property": "x",
			"options": {
				"values": [1, 2],
				"multi": true
			}
		}
	]}`
	out := render(t, testReport(t, from, `{"field": []}`), Options{})

	assert.Contains(t, out, `{"property":"x","options":{"values":[1,2],"multi":true}}`)
	assert.NotContains(t, out, "\t")
}

func TestRender_TextTitles(t *testing.T) {
	out := render(t, testReport(t, fromDoc, toDoc), Options{Titles: true})
	assert.Contains(t, out, "shift")
	assert.Contains(t, out, "attribute")
}

func TestRender_TextUnchanged(t *testing.T) {
	r := testReport(t, fromDoc, fromDoc)

	out := render(t, r, Options{Unchanged: true})
	orderPart := out[strings.Index(out, LabelOrderChanges):]
	assert.Contains(t, orderPart, "1st")
	assert.Contains(t, orderPart, "3rd")
	assert.Equal(t, 3, strings.Count(orderPart, " 0"))
}

func TestRender_JSON(t *testing.T) {
	out := render(t, testReport(t, fromDoc, toDoc), Options{Format: FormatJSON})
	require.True(t, gjson.Valid(out))
	assert.True(t, strings.HasPrefix(out, "{\n  \"removed_fields\""))

	doc := gjson.Parse(out)
	var keys []string
	doc.ForEach(func(k, _ gjson.Result) bool {
		keys = append(keys, k.String())
		return true
	})
	assert.Equal(t, []string{KeyRemovedFields, KeyAddedFields, KeyRemovedData, KeyAddedData, KeyChangedData, KeyOrderChanges}, keys)

	assert.Equal(t, "C", doc.Get("removed_fields.c.label").String())
	assert.False(t, doc.Get("added_fields.d.options.multi").Bool())
	assert.Equal(t, "h", doc.Get("removed_data.a.hint").String())
	assert.True(t, doc.Get("added_data.b.isRequired").Bool())
	label := doc.Get("changed_data.a.label").Array()
	require.Len(t, label, 2)
	assert.Equal(t, "A", label[0].String())
	assert.Equal(t, "A2", label[1].String())

	order := doc.Get("order_changes").Array()
	require.Len(t, order, 3)
	assert.Equal(t, "b", order[0].Get("0").String())
	assert.Equal(t, int64(-1), order[0].Get("1").Int())
	assert.Equal(t, int64(1), order[1].Get("1").Int())
	assert.Equal(t, gjson.Null, order[2].Get("1").Type)
}

func TestRender_JSONEmpty(t *testing.T) {
	out := render(t, testReport(t, `{"field":[]}`, `{"field":[]}`), Options{Format: FormatJSON})
	doc := gjson.Parse(out)
	assert.Equal(t, "{}", doc.Get(KeyRemovedFields).Raw)
	assert.Equal(t, "[]", doc.Get(KeyOrderChanges).Raw)
}

func TestRender_YAML(t *testing.T) {
	out := render(t, testReport(t, fromDoc, toDoc), Options{Format: FormatYAML})

	assert.Less(t, strings.Index(out, KeyRemovedFields+":"), strings.Index(out, KeyAddedFields+":"))
	assert.Less(t, strings.Index(out, KeyChangedData+":"), strings.Index(out, KeyOrderChanges+":"))
	assert.Contains(t, out, "- [b, -1]")
	assert.Contains(t, out, "- [d, null]")

	var doc map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))

	removed := doc[KeyRemovedData].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{"hint": "h"}, removed["a"])
	changed := doc[KeyChangedData].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{"label": []interface{}{"A", "A2"}}, changed["a"])
	added := doc[KeyAddedFields].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{"property": "d", "label": "D", "options": map[string]interface{}{"multi": false}}, added["d"])
}

func TestRender_YAMLQuotesAmbiguousStrings(t *testing.T) {
	r := testReport(t,
		`{"field": [{"property": "a", "label": "true"}]}`,
		`{"field": [{"property": "a", "label": "1"}]}`)
	out := render(t, r, Options{Format: FormatYAML})

	var doc map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	changed := doc[KeyChangedData].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{"label": []interface{}{"true", "1"}}, changed["a"])
}

func TestRender_Summary(t *testing.T) {
	r := testReport(t, fromDoc, toDoc)

	text := render(t, r, Options{SummaryOnly: true})
	assert.Contains(t, text, LabelChangedData)
	assert.NotContains(t, text, "A2")

	js := render(t, r, Options{Format: FormatJSON, SummaryOnly: true})
	assert.Equal(t, int64(1), gjson.Get(js, "removed_fields").Int())
	assert.Equal(t, int64(2), gjson.Get(js, "moved").Int())

	ym := render(t, r, Options{Format: FormatYAML, SummaryOnly: true})
	var s template.Summary
	require.NoError(t, yaml.Unmarshal([]byte(ym), &s))
	assert.Equal(t, r.Summary(), s)
}

func TestRender_UnknownFormat(t *testing.T) {
	err := Render(&bytes.Buffer{}, testReport(t, fromDoc, toDoc), Options{Format: "xml"})
	assert.EqualError(t, err, "unsupported output format: xml")
}

func TestGetColors(t *testing.T) {
	header, even, odd := getColors("colors")

	assert.NotNil(t, header)
	assert.NotNil(t, even)
	assert.NotNil(t, odd)
}

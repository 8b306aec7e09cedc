// Copyright (c) 2026 The ttp Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/tidwall/gjson"
)

// PropertyKey is the attribute joining a field across template versions.
const PropertyKey = "property"

// Attr is one named attribute of a field. Raw holds the JSON text of the
// value exactly as it appeared in the source document; the decoded form is
// used for comparison.
type Attr struct {
	Name  string
	Raw   string
	value any
}

// NewAttr builds an attribute from raw JSON text.
func NewAttr(name, raw string) (Attr, error) {
	raw = strings.TrimSpace(raw)
	if !gjson.Valid(raw) {
		return Attr{}, fmt.Errorf("attribute %q: invalid JSON value %q", name, raw)
	}
	return Attr{Name: name, Raw: raw, value: gjson.Parse(raw).Value()}, nil
}

// MustAttr is NewAttr that panics on invalid JSON. It is meant for literals.
func MustAttr(name, raw string) Attr {
	a, err := NewAttr(name, raw)
	if err != nil {
		panic(err)
	}
	return a
}

// Value returns the decoded value: nil, bool, float64, string,
// []interface{} or map[string]interface{}.
func (a Attr) Value() any {
	return a.value
}

// Equal reports whether two attributes carry structurally equal values.
// Names are not compared. Numbers compare exactly by their decimal value, so
// 1 and 1.0 are equal while integers beyond float64 precision stay distinct;
// object key order is irrelevant.
func (a Attr) Equal(b Attr) bool {
	return cmp.Equal(exactValue(gjson.Parse(a.Raw)), exactValue(gjson.Parse(b.Raw)), ratComparer)
}

var ratComparer = cmp.Comparer(func(x, y *big.Rat) bool {
	return x.Cmp(y) == 0
})

// exactValue decodes r like gjson.Result.Value but keeps numbers as
// *big.Rat parsed from their source text.
func exactValue(r gjson.Result) any {
	switch {
	case r.IsObject():
		m := make(map[string]any)
		r.ForEach(func(key, value gjson.Result) bool {
			m[key.String()] = exactValue(value)
			return true
		})
		return m
	case r.IsArray():
		s := make([]any, 0)
		r.ForEach(func(_, value gjson.Result) bool {
			s = append(s, exactValue(value))
			return true
		})
		return s
	case r.Type == gjson.Number:
		if n, ok := new(big.Rat).SetString(r.Raw); ok {
			return n
		}
		return r.Float()
	default:
		return r.Value()
	}
}

// Field is an ordered attribute record.
type Field struct {
	attrs []Attr
}

// NewField builds a field from attrs. A repeated name keeps its first
// position and takes the last value, like a JSON object decoder would.
func NewField(attrs ...Attr) Field {
	var f Field
	for _, a := range attrs {
		f.set(a)
	}
	return f
}

func (f *Field) set(a Attr) {
	for i := range f.attrs {
		if f.attrs[i].Name == a.Name {
			f.attrs[i] = a
			return
		}
	}
	f.attrs = append(f.attrs, a)
}

// Property returns the field's join key. ok is false when the attribute is
// missing or is not a JSON string.
func (f Field) Property() (property string, ok bool) {
	a, found := f.Get(PropertyKey)
	if !found {
		return "", false
	}
	property, ok = a.value.(string)
	return
}

// Get returns the named attribute.
func (f Field) Get(name string) (Attr, bool) {
	for _, a := range f.attrs {
		if a.Name == name {
			return a, true
		}
	}
	return Attr{}, false
}

// Has reports whether the named attribute is present.
func (f Field) Has(name string) bool {
	_, ok := f.Get(name)
	return ok
}

// Attrs returns a copy of the attributes in document order.
func (f Field) Attrs() []Attr {
	return append([]Attr(nil), f.attrs...)
}

// Names returns the attribute names in document order.
func (f Field) Names() []string {
	names := make([]string, len(f.attrs))
	for i, a := range f.attrs {
		names[i] = a.Name
	}
	return names
}

// Len returns the number of attributes.
func (f Field) Len() int {
	return len(f.attrs)
}

// JSON renders the field as a compact JSON object in attribute order.
func (f Field) JSON() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, a := range f.attrs {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(QuoteKey(a.Name))
		sb.WriteByte(':')
		sb.WriteString(a.Raw)
	}
	sb.WriteByte('}')
	return sb.String()
}

// decodeField converts one element of the field list.
func decodeField(index int, r gjson.Result) (Field, error) {
	if !r.IsObject() {
		return Field{}, formatErr(index, "expected an object, got %s", r.Type)
	}

	var f Field
	r.ForEach(func(key, value gjson.Result) bool {
		f.set(Attr{Name: key.String(), Raw: value.Raw, value: value.Value()})
		return true
	})
	return f, nil
}

// QuoteKey renders s as a JSON string literal without HTML escaping.
func QuoteKey(s string) string {
	var sb strings.Builder
	enc := json.NewEncoder(&sb)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		// Strings always encode.
		return `""`
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

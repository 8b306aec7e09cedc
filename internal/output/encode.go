// Copyright (c) 2026 The ttp Authors.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/tropy/ttp/internal/jsonfmt"
	"github.com/tropy/ttp/internal/template"
)

// Report keys shared by the json and yaml renderings.
const (
	KeyRemovedFields = "removed_fields"
	KeyAddedFields   = "added_fields"
	KeyRemovedData   = "removed_data"
	KeyAddedData     = "added_data"
	KeyChangedData   = "changed_data"
	KeyOrderChanges  = "order_changes"
)

const jsonIndent = 2

// writeJSON emits the report as one object. Attribute values keep their
// source text and every map keeps report order, so the document is assembled
// by hand and indented afterwards.
func writeJSON(w io.Writer, r *template.Report) error {
	var buf bytes.Buffer
	obj := newJSONObject(&buf)

	obj.key(KeyRemovedFields)
	fields := newJSONObject(&buf)
	for _, f := range r.RemovedFields() {
		p, _ := f.Property()
		fields.member(p, f.JSON())
	}
	fields.close()

	obj.key(KeyAddedFields)
	fields = newJSONObject(&buf)
	for _, f := range r.AddedFields() {
		p, _ := f.Property()
		fields.member(p, f.JSON())
	}
	fields.close()

	obj.key(KeyRemovedData)
	writeJSONAttrs(&buf, r.RemovedData())
	obj.key(KeyAddedData)
	writeJSONAttrs(&buf, r.AddedData())

	obj.key(KeyChangedData)
	groups := newJSONObject(&buf)
	for _, g := range r.ChangedData() {
		groups.key(g.Property)
		changes := newJSONObject(&buf)
		for _, c := range g.Changes {
			changes.member(c.Name, "["+c.Old.Raw+","+c.New.Raw+"]")
		}
		changes.close()
	}
	groups.close()

	obj.key(KeyOrderChanges)
	buf.WriteByte('[')
	for i, oc := range r.OrderChanges() {
		if i > 0 {
			buf.WriteByte(',')
		}
		shift := "null"
		if s, ok := oc.Shift(); ok {
			shift = strconv.Itoa(s)
		}
		buf.WriteString("[" + template.QuoteKey(oc.Property) + "," + shift + "]")
	}
	buf.WriteByte(']')
	obj.close()

	out, err := jsonfmt.PrettyOptions(buf.Bytes(), jsonfmt.Options{Indent: jsonIndent})
	if err != nil {
		return fmt.Errorf("failed to render json: %w", err)
	}
	_, err = w.Write(out)
	return err
}

func writeJSONAttrs(buf *bytes.Buffer, groups []template.PropertyAttrs) {
	obj := newJSONObject(buf)
	for _, g := range groups {
		obj.key(g.Property)
		attrs := newJSONObject(buf)
		for _, a := range g.Attrs {
			attrs.member(a.Name, a.Raw)
		}
		attrs.close()
	}
	obj.close()
}

// jsonObject writes members of one object into a buffer.
type jsonObject struct {
	buf   *bytes.Buffer
	count int
}

func newJSONObject(buf *bytes.Buffer) *jsonObject {
	buf.WriteByte('{')
	return &jsonObject{buf: buf}
}

func (o *jsonObject) key(k string) {
	if o.count > 0 {
		o.buf.WriteByte(',')
	}
	o.count++
	o.buf.WriteString(template.QuoteKey(k))
	o.buf.WriteByte(':')
}

func (o *jsonObject) member(k, raw string) {
	o.key(k)
	o.buf.WriteString(raw)
}

func (o *jsonObject) close() {
	o.buf.WriteByte('}')
}

func writeSummaryJSON(w io.Writer, s template.Summary) error {
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to render json: %w", err)
	}
	out, err := jsonfmt.PrettyOptions(b, jsonfmt.Options{Indent: jsonIndent})
	if err != nil {
		return fmt.Errorf("failed to render json: %w", err)
	}
	_, err = w.Write(out)
	return err
}

// writeYAML emits the json shape as block YAML with report order kept.
func writeYAML(w io.Writer, r *template.Report) error {
	doc := mappingNode()

	fields := mappingNode()
	for _, f := range r.RemovedFields() {
		p, _ := f.Property()
		addPair(fields, p, rawNode(f.JSON()))
	}
	addPair(doc, KeyRemovedFields, fields)

	fields = mappingNode()
	for _, f := range r.AddedFields() {
		p, _ := f.Property()
		addPair(fields, p, rawNode(f.JSON()))
	}
	addPair(doc, KeyAddedFields, fields)

	addPair(doc, KeyRemovedData, yamlAttrs(r.RemovedData()))
	addPair(doc, KeyAddedData, yamlAttrs(r.AddedData()))

	changed := mappingNode()
	for _, g := range r.ChangedData() {
		changes := mappingNode()
		for _, c := range g.Changes {
			pair := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
			pair.Content = append(pair.Content, rawNode(c.Old.Raw), rawNode(c.New.Raw))
			addPair(changes, c.Name, pair)
		}
		addPair(changed, g.Property, changes)
	}
	addPair(doc, KeyChangedData, changed)

	order := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, oc := range r.OrderChanges() {
		shift := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
		if s, ok := oc.Shift(); ok {
			shift = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(s)}
		}
		entry := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: yaml.FlowStyle}
		entry.Content = append(entry.Content, stringNode(oc.Property), shift)
		order.Content = append(order.Content, entry)
	}
	addPair(doc, KeyOrderChanges, order)

	return encodeYAML(w, doc)
}

func yamlAttrs(groups []template.PropertyAttrs) *yaml.Node {
	out := mappingNode()
	for _, g := range groups {
		attrs := mappingNode()
		for _, a := range g.Attrs {
			addPair(attrs, a.Name, rawNode(a.Raw))
		}
		addPair(out, g.Property, attrs)
	}
	return out
}

func writeSummaryYAML(w io.Writer, s template.Summary) error {
	var doc yaml.Node
	if err := doc.Encode(s); err != nil {
		return fmt.Errorf("failed to render yaml: %w", err)
	}
	return encodeYAML(w, &doc)
}

func encodeYAML(w io.Writer, node *yaml.Node) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(jsonIndent)
	if err := enc.Encode(node); err != nil {
		return fmt.Errorf("failed to render yaml: %w", err)
	}
	return enc.Close()
}

func mappingNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func stringNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func addPair(m *yaml.Node, key string, value *yaml.Node) {
	m.Content = append(m.Content, stringNode(key), value)
}

// rawNode converts JSON text into a block-style node. JSON is YAML, so the
// YAML parser reads it directly; only the flow styles are dropped.
func rawNode(raw string) *yaml.Node {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(raw), &doc); err != nil || len(doc.Content) == 0 {
		return stringNode(raw)
	}
	node := doc.Content[0]
	clearStyle(node)
	return node
}

func clearStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		clearStyle(c)
	}
}

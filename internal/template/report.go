// Copyright (c) 2026 The ttp Authors.
// SPDX-License-Identifier: Apache-2.0

package template

// PropertyAttrs groups attributes that appeared or disappeared on one field.
type PropertyAttrs struct {
	Property string
	Attrs    []Attr
}

// AttrChange is one attribute whose value differs between versions.
type AttrChange struct {
	Name string
	Old  Attr
	New  Attr
}

// PropertyChanges groups the changed attributes of one field.
type PropertyChanges struct {
	Property string
	Changes  []AttrChange
}

// OrderChange records where a field of the newer version sits relative to
// the older one. FromIndex is -1 for a field that did not exist before.
type OrderChange struct {
	Property  string
	FromIndex int
	ToIndex   int
}

// Shift returns ToIndex - FromIndex. ok is false for a new field. Shifts are
// not minimal: moving one field changes the shift of every field it jumped
// over.
func (o OrderChange) Shift() (shift int, ok bool) {
	if o.FromIndex < 0 {
		return 0, false
	}
	return o.ToIndex - o.FromIndex, true
}

// Summary counts the entries of each report part. Data counts are attribute
// counts; Moved counts fields with a known non-zero shift.
type Summary struct {
	RemovedFields int `json:"removed_fields" yaml:"removed_fields"`
	AddedFields   int `json:"added_fields" yaml:"added_fields"`
	RemovedData   int `json:"removed_data" yaml:"removed_data"`
	AddedData     int `json:"added_data" yaml:"added_data"`
	ChangedData   int `json:"changed_data" yaml:"changed_data"`
	Moved         int `json:"moved" yaml:"moved"`
}

// Report is the structural difference between two template versions. It is
// built once by Compute and never modified; accessors hand out copies.
//
// Removed fields, removed data and changed data follow the order of the
// older version. Added fields, added data and order changes follow the order
// of the newer version.
type Report struct {
	removedFields []Field
	addedFields   []Field
	removedData   []PropertyAttrs
	addedData     []PropertyAttrs
	changedData   []PropertyChanges
	orderChanges  []OrderChange
}

// RemovedFields returns fields present only in the older version.
func (r *Report) RemovedFields() []Field {
	return cloneFields(r.removedFields)
}

// AddedFields returns fields present only in the newer version.
func (r *Report) AddedFields() []Field {
	return cloneFields(r.addedFields)
}

// RemovedData returns attributes dropped from fields present in both.
func (r *Report) RemovedData() []PropertyAttrs {
	return clonePropertyAttrs(r.removedData)
}

// AddedData returns attributes introduced on fields present in both.
func (r *Report) AddedData() []PropertyAttrs {
	return clonePropertyAttrs(r.addedData)
}

// ChangedData returns attributes whose values differ.
func (r *Report) ChangedData() []PropertyChanges {
	out := make([]PropertyChanges, len(r.changedData))
	for i, pc := range r.changedData {
		out[i] = PropertyChanges{
			Property: pc.Property,
			Changes:  append([]AttrChange(nil), pc.Changes...),
		}
	}
	return out
}

// OrderChanges returns one entry per field of the newer version.
func (r *Report) OrderChanges() []OrderChange {
	return append([]OrderChange(nil), r.orderChanges...)
}

// RemovedField looks up a removed field by property id.
func (r *Report) RemovedField(property string) (Field, bool) {
	return findField(r.removedFields, property)
}

// AddedField looks up an added field by property id.
func (r *Report) AddedField(property string) (Field, bool) {
	return findField(r.addedFields, property)
}

// RemovedDataFor returns the attributes removed from property.
func (r *Report) RemovedDataFor(property string) ([]Attr, bool) {
	return findAttrs(r.removedData, property)
}

// AddedDataFor returns the attributes added to property.
func (r *Report) AddedDataFor(property string) ([]Attr, bool) {
	return findAttrs(r.addedData, property)
}

// ChangedDataFor returns the changed attributes of property.
func (r *Report) ChangedDataFor(property string) ([]AttrChange, bool) {
	for _, pc := range r.changedData {
		if pc.Property == property {
			return append([]AttrChange(nil), pc.Changes...), true
		}
	}
	return nil, false
}

// OrderChangeFor returns the order entry of property.
func (r *Report) OrderChangeFor(property string) (OrderChange, bool) {
	for _, oc := range r.orderChanges {
		if oc.Property == property {
			return oc, true
		}
	}
	return OrderChange{}, false
}

// Empty reports whether both versions hold the same fields with the same
// attributes in the same positions.
func (r *Report) Empty() bool {
	s := r.Summary()
	return s == Summary{}
}

// Summary counts the entries of each part.
func (r *Report) Summary() Summary {
	s := Summary{
		RemovedFields: len(r.removedFields),
		AddedFields:   len(r.addedFields),
	}
	for _, pa := range r.removedData {
		s.RemovedData += len(pa.Attrs)
	}
	for _, pa := range r.addedData {
		s.AddedData += len(pa.Attrs)
	}
	for _, pc := range r.changedData {
		s.ChangedData += len(pc.Changes)
	}
	for _, oc := range r.orderChanges {
		if shift, ok := oc.Shift(); ok && shift != 0 {
			s.Moved++
		}
	}
	return s
}

// Select returns a new report holding only the entries whose property id
// passes keepProperty and, for attribute-level entries, whose attribute name
// passes keepAttr. A nil predicate keeps everything. Order entries keep their
// original indices.
func (r *Report) Select(keepProperty, keepAttr func(string) bool) *Report {
	if keepProperty == nil {
		keepProperty = func(string) bool { return true }
	}
	if keepAttr == nil {
		keepAttr = func(string) bool { return true }
	}

	out := &Report{}
	for _, f := range r.removedFields {
		if p, _ := f.Property(); keepProperty(p) {
			out.removedFields = append(out.removedFields, f)
		}
	}
	for _, f := range r.addedFields {
		if p, _ := f.Property(); keepProperty(p) {
			out.addedFields = append(out.addedFields, f)
		}
	}
	out.removedData = selectAttrs(r.removedData, keepProperty, keepAttr)
	out.addedData = selectAttrs(r.addedData, keepProperty, keepAttr)
	for _, pc := range r.changedData {
		if !keepProperty(pc.Property) {
			continue
		}
		var kept []AttrChange
		for _, c := range pc.Changes {
			if keepAttr(c.Name) {
				kept = append(kept, c)
			}
		}
		if len(kept) > 0 {
			out.changedData = append(out.changedData, PropertyChanges{Property: pc.Property, Changes: kept})
		}
	}
	for _, oc := range r.orderChanges {
		if keepProperty(oc.Property) {
			out.orderChanges = append(out.orderChanges, oc)
		}
	}
	return out
}

func selectAttrs(in []PropertyAttrs, keepProperty, keepAttr func(string) bool) []PropertyAttrs {
	var out []PropertyAttrs
	for _, pa := range in {
		if !keepProperty(pa.Property) {
			continue
		}
		var kept []Attr
		for _, a := range pa.Attrs {
			if keepAttr(a.Name) {
				kept = append(kept, a)
			}
		}
		if len(kept) > 0 {
			out = append(out, PropertyAttrs{Property: pa.Property, Attrs: kept})
		}
	}
	return out
}

func findField(fields []Field, property string) (Field, bool) {
	for _, f := range fields {
		if p, _ := f.Property(); p == property {
			return f, true
		}
	}
	return Field{}, false
}

func findAttrs(in []PropertyAttrs, property string) ([]Attr, bool) {
	for _, pa := range in {
		if pa.Property == property {
			return append([]Attr(nil), pa.Attrs...), true
		}
	}
	return nil, false
}

func cloneFields(in []Field) []Field {
	out := make([]Field, len(in))
	for i, f := range in {
		out[i] = Field{attrs: f.Attrs()}
	}
	return out
}

func clonePropertyAttrs(in []PropertyAttrs) []PropertyAttrs {
	out := make([]PropertyAttrs, len(in))
	for i, pa := range in {
		out[i] = PropertyAttrs{Property: pa.Property, Attrs: append([]Attr(nil), pa.Attrs...)}
	}
	return out
}

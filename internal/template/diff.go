// Copyright (c) 2026 The ttp Authors.
// SPDX-License-Identifier: Apache-2.0

package template

import (
	"github.com/tropy/ttp/internal/log"
)

type options struct {
	ignore map[string]struct{}
}

// Option customizes Compute.
type Option func(*options)

// IgnoreAttributes excludes the named attributes from comparison on both
// sides. The join key cannot be ignored.
func IgnoreAttributes(names ...string) Option {
	return func(o *options) {
		for _, n := range names {
			if n == "" || n == PropertyKey {
				continue
			}
			if o.ignore == nil {
				o.ignore = make(map[string]struct{})
			}
			o.ignore[n] = struct{}{}
		}
	}
}

func (o *options) ignored(name string) bool {
	_, ok := o.ignore[name]
	return ok
}

// Compute diffs two field lists joined on their property ids. It fails with
// a *FormatError, and returns no report, when a field lacks a string
// property.
func Compute(from, to []Field, opts ...Option) (*Report, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	fromSnap, err := newSnapshot(from)
	if err != nil {
		return nil, withSide(err, "from")
	}
	toSnap, err := newSnapshot(to)
	if err != nil {
		return nil, withSide(err, "to")
	}

	r := &Report{}
	diffFrom(r, fromSnap, toSnap, &o)
	diffTo(r, fromSnap, toSnap, &o)
	diffOrder(r, fromSnap, toSnap)

	log.Debugf("computed diff: %+v", r.Summary())
	return r, nil
}

// diffFrom records removed fields plus removed and changed attributes.
func diffFrom(r *Report, from, to *snapshot, o *options) {
	for _, p := range from.order {
		fromField, _ := from.lookup(p)
		toField, ok := to.lookup(p)
		if !ok {
			r.removedFields = append(r.removedFields, fromField)
			continue
		}

		var removed []Attr
		var changed []AttrChange
		for _, a := range fromField.attrs {
			if o.ignored(a.Name) {
				continue
			}
			b, ok := toField.Get(a.Name)
			switch {
			case !ok:
				removed = append(removed, a)
			case !a.Equal(b):
				changed = append(changed, AttrChange{Name: a.Name, Old: a, New: b})
			}
		}

		if len(removed) > 0 {
			r.removedData = append(r.removedData, PropertyAttrs{Property: p, Attrs: removed})
		}
		if len(changed) > 0 {
			r.changedData = append(r.changedData, PropertyChanges{Property: p, Changes: changed})
		}
	}
}

// diffTo records added fields and added attributes. Changed values were
// already found by diffFrom.
func diffTo(r *Report, from, to *snapshot, o *options) {
	for _, p := range to.order {
		toField, _ := to.lookup(p)
		fromField, ok := from.lookup(p)
		if !ok {
			r.addedFields = append(r.addedFields, toField)
			continue
		}

		var added []Attr
		for _, a := range toField.attrs {
			if !o.ignored(a.Name) && !fromField.Has(a.Name) {
				added = append(added, a)
			}
		}
		if len(added) > 0 {
			r.addedData = append(r.addedData, PropertyAttrs{Property: p, Attrs: added})
		}
	}
}

// diffOrder records the positional shift of every field of the newer
// version.
func diffOrder(r *Report, from, to *snapshot) {
	r.orderChanges = make([]OrderChange, 0, len(to.order))
	for toIndex, p := range to.order {
		fromIndex, ok := from.index[p]
		if !ok {
			fromIndex = -1
		}
		r.orderChanges = append(r.orderChanges, OrderChange{
			Property:  p,
			FromIndex: fromIndex,
			ToIndex:   toIndex,
		})
	}
}

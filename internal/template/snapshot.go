// Copyright (c) 2026 The ttp Authors.
// SPDX-License-Identifier: Apache-2.0

package template

// snapshot is one template version keyed by property id. order lists each
// id once at the position of its first occurrence; fields holds the record
// of its last occurrence.
type snapshot struct {
	order  []string
	index  map[string]int
	fields map[string]Field
}

func newSnapshot(fields []Field) (*snapshot, error) {
	s := &snapshot{
		index:  make(map[string]int, len(fields)),
		fields: make(map[string]Field, len(fields)),
	}

	for i, f := range fields {
		p, ok := f.Property()
		if !ok {
			if f.Has(PropertyKey) {
				return nil, formatErr(i, "%q is not a string", PropertyKey)
			}
			return nil, formatErr(i, "missing %q", PropertyKey)
		}

		if _, seen := s.index[p]; !seen {
			s.index[p] = len(s.order)
			s.order = append(s.order, p)
		}
		s.fields[p] = f
	}

	return s, nil
}

func (s *snapshot) lookup(property string) (Field, bool) {
	f, ok := s.fields[property]
	return f, ok
}

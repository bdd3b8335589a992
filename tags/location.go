// Package tags defines the domain records the store treats as structured
// values rather than opaque bytes: Location, the set-valued tables'
// TargetRef, and the optional Symbols/Tokens tables' CursorInfo and Token
// records. Everything here is modeled field-for-field on
// original_source/src/CursorInfo.h's wire operator<</operator>>.
package tags

import (
	"sort"

	"github.com/ngkaho1234/rtags/codec"
)

// Location is a (fileId, line, column) triple, the value type in every
// set-valued table.
type Location struct {
	FileId uint32
	Line   uint32
	Column uint32
}

// Less gives Location a total order: by FileId, then Line, then Column.
func (l Location) Less(o Location) bool {
	if l.FileId != o.FileId {
		return l.FileId < o.FileId
	}
	if l.Line != o.Line {
		return l.Line < o.Line
	}
	return l.Column < o.Column
}

// Encode writes the Location as three fixed 4-byte big-endian integers.
func (l Location) Encode(w *codec.Writer) error {
	if err := w.WriteUint32(l.FileId); err != nil {
		return err
	}
	if err := w.WriteUint32(l.Line); err != nil {
		return err
	}
	return w.WriteUint32(l.Column)
}

// DecodeLocation reads a Location written by Encode.
func DecodeLocation(r *codec.Reader) (Location, error) {
	var l Location
	var err error
	if l.FileId, err = r.ReadUint32(); err != nil {
		return Location{}, err
	}
	if l.Line, err = r.ReadUint32(); err != nil {
		return Location{}, err
	}
	if l.Column, err = r.ReadUint32(); err != nil {
		return Location{}, err
	}
	return l, nil
}

// LocationSet is the value of SymbolNames and Usrs: a set of locations
// where one name/USR is found.
type LocationSet []Location

// Sorted returns a copy of the set in ascending Location order, so the
// on-wire element order is reproducible regardless of how the caller built
// the set (spec.md §4.2's "implementers should sort element order
// explicitly").
func (s LocationSet) Sorted() LocationSet {
	out := append(LocationSet(nil), s...)
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Encode writes the set as an 8-byte count followed by each sorted
// Location.
func (s LocationSet) Encode(w *codec.Writer) error {
	sorted := s.Sorted()
	if err := w.WriteCount(len(sorted)); err != nil {
		return err
	}
	for _, loc := range sorted {
		if err := loc.Encode(w); err != nil {
			return err
		}
	}
	return nil
}

// DecodeLocationSet reads a LocationSet written by Encode.
func DecodeLocationSet(r *codec.Reader) (LocationSet, error) {
	n, err := r.ReadCount()
	if err != nil {
		return nil, err
	}
	out := make(LocationSet, 0, n)
	for i := 0; i < n; i++ {
		loc, err := DecodeLocation(r)
		if err != nil {
			return nil, err
		}
		out = append(out, loc)
	}
	return out, nil
}

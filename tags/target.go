package tags

import (
	"sort"

	"github.com/ngkaho1234/rtags/codec"
)

// definitionBit is packed into bit 12 (0x1000) of a TargetRef's on-wire Kind
// field, the same convention CursorInfo::createTargetsValue uses to fold
// (CXCursorKind, isDefinition) into one uint16.
const definitionBit = 0x1000

// TargetRef is one entry in a Targets-table value: a location that
// references the target, tagged with a small (kind, isDefinition) code.
type TargetRef struct {
	Loc          Location
	Kind         uint16
	IsDefinition bool
}

// Rank is a pass-through comparator over the packed (kind, isDefinition)
// code, kept only so cmd/tagstore-status can print the same per-entry
// tuple StatusJob.cpp does. It is not a "best target" ranking engine —
// that remains out of scope (SPEC_FULL.md §11).
func (t TargetRef) Rank() int {
	return int(t.packedKind())
}

func (t TargetRef) packedKind() uint16 {
	k := t.Kind
	if t.IsDefinition {
		k |= definitionBit
	}
	return k
}

func unpackKind(packed uint16) (kind uint16, isDefinition bool) {
	return packed &^ definitionBit, packed&definitionBit != 0
}

// Less orders TargetRef entries by Location, then by packed kind — the
// engine's duplicate-sort comparator for same-key entries within one
// value (spec.md §4.5 "tie-breaks").
func (t TargetRef) Less(o TargetRef) bool {
	if t.Loc != o.Loc {
		return t.Loc.Less(o.Loc)
	}
	return t.packedKind() < o.packedKind()
}

// Encode writes the Location followed by the packed (kind, isDefinition)
// code as a fixed 2-byte big-endian integer.
func (t TargetRef) Encode(w *codec.Writer) error {
	if err := t.Loc.Encode(w); err != nil {
		return err
	}
	return t.encodePacked(w)
}

func (t TargetRef) encodePacked(w *codec.Writer) error {
	packed := t.packedKind()
	if err := w.WriteByte(byte(packed >> 8)); err != nil {
		return err
	}
	return w.WriteByte(byte(packed))
}

// DecodeTargetRef reads a TargetRef written by Encode.
func DecodeTargetRef(r *codec.Reader) (TargetRef, error) {
	loc, err := DecodeLocation(r)
	if err != nil {
		return TargetRef{}, err
	}
	hi, err := r.ReadByte()
	if err != nil {
		return TargetRef{}, err
	}
	lo, err := r.ReadByte()
	if err != nil {
		return TargetRef{}, err
	}
	packed := uint16(hi)<<8 | uint16(lo)
	kind, isDef := unpackKind(packed)
	return TargetRef{Loc: loc, Kind: kind, IsDefinition: isDef}, nil
}

// TargetRefSet is the value of the Targets table.
type TargetRefSet []TargetRef

// Sorted returns a copy of the set in ascending TargetRef order.
func (s TargetRefSet) Sorted() TargetRefSet {
	out := append(TargetRefSet(nil), s...)
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Encode writes the set as an 8-byte count followed by each sorted entry.
func (s TargetRefSet) Encode(w *codec.Writer) error {
	sorted := s.Sorted()
	if err := w.WriteCount(len(sorted)); err != nil {
		return err
	}
	for _, ref := range sorted {
		if err := ref.Loc.Encode(w); err != nil {
			return err
		}
		if err := ref.encodePacked(w); err != nil {
			return err
		}
	}
	return nil
}

// DecodeTargetRefSet reads a TargetRefSet written by Encode.
func DecodeTargetRefSet(r *codec.Reader) (TargetRefSet, error) {
	n, err := r.ReadCount()
	if err != nil {
		return nil, err
	}
	out := make(TargetRefSet, 0, n)
	for i := 0; i < n; i++ {
		ref, err := DecodeTargetRef(r)
		if err != nil {
			return nil, err
		}
		out = append(out, ref)
	}
	return out, nil
}

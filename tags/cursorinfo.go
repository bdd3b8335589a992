package tags

import "github.com/ngkaho1234/rtags/codec"

// CursorInfo is the rich record stored as the value of the Symbols table,
// modeled field-for-field on original_source/src/CursorInfo.h's wire
// operator<</operator>>. The C++ type unions `definition`/`enumValue`
// behind the same storage; Go has no anonymous unions, so both fields are
// always present on the wire here. EnumValue is only meaningful when Kind
// denotes an enum constant (CXCursor_EnumConstantDecl in the original);
// Definition is meaningful otherwise. This is a deliberate, documented
// divergence from the C++ layout, not an ambiguity left unresolved.
type CursorInfo struct {
	SymbolLength uint16
	SymbolName   string
	Kind         int32
	Type         int32
	Definition   bool
	EnumValue    int64
	StartLine    int32
	StartColumn  int32
	EndLine      int32
	EndColumn    int32
}

// Encode writes the record in original-source field order.
func (c CursorInfo) Encode(w *codec.Writer) error {
	var buf [2]byte
	buf[0] = byte(c.SymbolLength >> 8)
	buf[1] = byte(c.SymbolLength)
	if err := w.WriteByte(buf[0]); err != nil {
		return err
	}
	if err := w.WriteByte(buf[1]); err != nil {
		return err
	}
	if err := w.WriteString(c.SymbolName); err != nil {
		return err
	}
	if err := w.WriteInt32(c.Kind); err != nil {
		return err
	}
	if err := w.WriteInt32(c.Type); err != nil {
		return err
	}
	if err := w.WriteBool(c.Definition); err != nil {
		return err
	}
	if err := w.WriteInt64(c.EnumValue); err != nil {
		return err
	}
	if err := w.WriteInt32(c.StartLine); err != nil {
		return err
	}
	if err := w.WriteInt32(c.StartColumn); err != nil {
		return err
	}
	if err := w.WriteInt32(c.EndLine); err != nil {
		return err
	}
	return w.WriteInt32(c.EndColumn)
}

// DecodeCursorInfo reads a CursorInfo record written by Encode.
func DecodeCursorInfo(r *codec.Reader) (CursorInfo, error) {
	var c CursorInfo
	hi, err := r.ReadByte()
	if err != nil {
		return CursorInfo{}, err
	}
	lo, err := r.ReadByte()
	if err != nil {
		return CursorInfo{}, err
	}
	c.SymbolLength = uint16(hi)<<8 | uint16(lo)

	if c.SymbolName, err = r.ReadString(); err != nil {
		return CursorInfo{}, err
	}
	if c.Kind, err = r.ReadInt32(); err != nil {
		return CursorInfo{}, err
	}
	if c.Type, err = r.ReadInt32(); err != nil {
		return CursorInfo{}, err
	}
	if c.Definition, err = r.ReadBool(); err != nil {
		return CursorInfo{}, err
	}
	if c.EnumValue, err = r.ReadInt64(); err != nil {
		return CursorInfo{}, err
	}
	if c.StartLine, err = r.ReadInt32(); err != nil {
		return CursorInfo{}, err
	}
	if c.StartColumn, err = r.ReadInt32(); err != nil {
		return CursorInfo{}, err
	}
	if c.EndLine, err = r.ReadInt32(); err != nil {
		return CursorInfo{}, err
	}
	if c.EndColumn, err = r.ReadInt32(); err != nil {
		return CursorInfo{}, err
	}
	return c, nil
}

// IsEmpty mirrors CursorInfo::isEmpty: a record with no symbol is empty.
func (c CursorInfo) IsEmpty() bool {
	return c.SymbolLength == 0
}

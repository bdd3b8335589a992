package tags

import (
	"github.com/cespare/xxhash"
	"github.com/ngkaho1234/rtags/codec"
)

// Token is the value of the optional Tokens table: one lexer token and
// the location it was found at.
type Token struct {
	Spelling string
	Kind     byte
	Loc      Location
}

// Encode writes Spelling, Kind, then Loc.
func (t Token) Encode(w *codec.Writer) error {
	if err := w.WriteString(t.Spelling); err != nil {
		return err
	}
	if err := w.WriteByte(t.Kind); err != nil {
		return err
	}
	return t.Loc.Encode(w)
}

// DecodeToken reads a Token written by Encode.
func DecodeToken(r *codec.Reader) (Token, error) {
	var t Token
	var err error
	if t.Spelling, err = r.ReadString(); err != nil {
		return Token{}, err
	}
	if t.Kind, err = r.ReadByte(); err != nil {
		return Token{}, err
	}
	if t.Loc, err = DecodeLocation(r); err != nil {
		return Token{}, err
	}
	return t, nil
}

// TokenID derives the 32-bit id a Token is keyed by in the Tokens table:
// the low 32 bits of an xxhash.Sum64 over the token's spelling, the same
// hash function and folding idiom the teacher's IndexManager.GetByHash
// uses to turn an arbitrary field value into a fixed-width lookup key.
func TokenID(spelling string) uint32 {
	return uint32(xxhash.Sum64String(spelling))
}

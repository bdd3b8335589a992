// Package codec implements the length-prefixed encoding of primitive
// values, strings, and containers into and out of byte buffers, per the
// wire rules fixed in SPEC_FULL.md §7.2: fixed-width integers big-endian,
// an 8-byte size ahead of every variable-length payload, and explicitly
// presorted set/slice element order.
package codec

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Writer wraps any io.Writer sink and tracks the number of bytes written
// through it so far, mirroring the original source's Serializer wrapping
// anything that accepts write(bytes, len) and reports its offset.
type Writer struct {
	w      io.Writer
	offset int
}

// NewWriter wraps w. The sink is exclusively owned by the returned Writer;
// it must not be written to concurrently from elsewhere.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Offset returns the number of bytes written through this Writer so far.
func (w *Writer) Offset() int {
	return w.offset
}

func (w *Writer) write(p []byte) error {
	n, err := w.w.Write(p)
	w.offset += n
	if err != nil {
		return err
	}
	if n != len(p) {
		return io.ErrShortWrite
	}
	return nil
}

// WriteUint32 writes a fixed 4-byte big-endian integer.
func (w *Writer) WriteUint32(v uint32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	return w.write(buf[:])
}

// WriteUint64 writes a fixed 8-byte big-endian integer.
func (w *Writer) WriteUint64(v uint64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	return w.write(buf[:])
}

// WriteInt32 writes a fixed 4-byte big-endian signed integer.
func (w *Writer) WriteInt32(v int32) error {
	return w.WriteUint32(uint32(v))
}

// WriteInt64 writes a fixed 8-byte big-endian signed integer.
func (w *Writer) WriteInt64(v int64) error {
	return w.WriteUint64(uint64(v))
}

// WriteByte writes a single byte. Implements io.ByteWriter.
func (w *Writer) WriteByte(v byte) error {
	return w.write([]byte{v})
}

// WriteBool writes a single byte, 1 for true, 0 for false.
func (w *Writer) WriteBool(v bool) error {
	if v {
		return w.WriteByte(1)
	}
	return w.WriteByte(0)
}

// WriteSize writes the platform-independent 8-byte size header that
// precedes every variable-length payload on the wire.
func (w *Writer) WriteSize(n int) error {
	return w.WriteUint64(uint64(n))
}

// WriteBytes writes n = len(p) as an 8-byte size header followed by the raw
// bytes of p.
func (w *Writer) WriteBytes(p []byte) error {
	if err := w.WriteSize(len(p)); err != nil {
		return err
	}
	if len(p) == 0 {
		return nil
	}
	return w.write(p)
}

// WriteString writes a byte string the same way WriteBytes does.
func (w *Writer) WriteString(s string) error {
	return w.WriteBytes([]byte(s))
}

// WriteCount writes the 8-byte element count that precedes a set or map.
// Callers must sort the elements before calling WriteCount and writing
// them, since the wire element order is exactly the call order here, not
// the iteration order of whatever in-memory container produced it.
func (w *Writer) WriteCount(n int) error {
	return w.WriteUint64(uint64(n))
}

// Reader wraps a borrowed byte view with a read cursor. It never copies or
// retains the view beyond the calls made on it.
type Reader struct {
	buf []byte
	pos int
}

// NewReader wraps buf. The returned Reader borrows buf; callers must not
// mutate buf while the Reader is in use.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Offset returns the read cursor's current position.
func (r *Reader) Offset() int {
	return r.pos
}

// Remaining returns the number of unread bytes left in the view.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.pos
}

var ErrShortBuffer = fmt.Errorf("codec: buffer too short")

func (r *Reader) read(n int) ([]byte, error) {
	if r.Remaining() < n {
		return nil, ErrShortBuffer
	}
	p := r.buf[r.pos : r.pos+n]
	r.pos += n
	return p, nil
}

// ReadUint32 reads a fixed 4-byte big-endian integer.
func (r *Reader) ReadUint32() (uint32, error) {
	p, err := r.read(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(p), nil
}

// ReadUint64 reads a fixed 8-byte big-endian integer.
func (r *Reader) ReadUint64() (uint64, error) {
	p, err := r.read(8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(p), nil
}

// ReadInt32 reads a fixed 4-byte big-endian signed integer.
func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

// ReadInt64 reads a fixed 8-byte big-endian signed integer.
func (r *Reader) ReadInt64() (int64, error) {
	v, err := r.ReadUint64()
	return int64(v), err
}

// ReadByte reads a single byte. Implements io.ByteReader.
func (r *Reader) ReadByte() (byte, error) {
	p, err := r.read(1)
	if err != nil {
		return 0, err
	}
	return p[0], nil
}

// ReadBool reads a single byte written by WriteBool.
func (r *Reader) ReadBool() (bool, error) {
	b, err := r.ReadByte()
	if err != nil {
		return false, err
	}
	return b != 0, nil
}

// ReadSize reads the 8-byte size header written by WriteSize/WriteBytes.
func (r *Reader) ReadSize() (int, error) {
	v, err := r.ReadUint64()
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

// ReadBytes reads a size-prefixed byte string written by WriteBytes. The
// returned slice is a sub-slice of the Reader's borrowed view, not a copy;
// callers that need to retain it must copy it themselves.
func (r *Reader) ReadBytes() ([]byte, error) {
	n, err := r.ReadSize()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	return r.read(n)
}

// ReadString reads a size-prefixed byte string written by WriteString and
// copies it into a new Go string.
func (r *Reader) ReadString() (string, error) {
	p, err := r.ReadBytes()
	if err != nil {
		return "", err
	}
	return string(p), nil
}

// ReadCount reads the 8-byte element count written by WriteCount.
func (r *Reader) ReadCount() (int, error) {
	v, err := r.ReadUint64()
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

// Package blob provides Blob, a growable owning byte-string used as the
// physical representation of keys and values handed to the KV engine, and as
// the backing store for codec output.
package blob

// Blob is an owning container of bytes. It has no transcoding or alignment
// requirements and places no restriction on embedded NULs.
type Blob struct {
	buf []byte
}

// New wraps the given bytes as a Blob. The Blob takes ownership; the caller
// must not mutate data afterwards.
func New(data []byte) *Blob {
	return &Blob{buf: data}
}

// Data returns the backing bytes. The returned slice is borrowed and must
// not be retained past the next mutating call on the Blob.
func (b *Blob) Data() []byte {
	return b.buf
}

// Size returns the number of bytes currently held.
func (b *Blob) Size() int {
	return len(b.buf)
}

// Clear empties the Blob without releasing its backing array.
func (b *Blob) Clear() {
	b.buf = b.buf[:0]
}

// Resize grows or shrinks the Blob to exactly n bytes. Newly exposed bytes
// on growth are zeroed.
func (b *Blob) Resize(n int) {
	if n <= cap(b.buf) {
		old := len(b.buf)
		b.buf = b.buf[:n]
		for i := old; i < n; i++ {
			b.buf[i] = 0
		}
		return
	}
	grown := make([]byte, n)
	copy(grown, b.buf)
	b.buf = grown
}

// Append copies p onto the end of the Blob.
func (b *Blob) Append(p []byte) {
	b.buf = append(b.buf, p...)
}

// Byte returns the byte at index i.
func (b *Blob) Byte(i int) byte {
	return b.buf[i]
}

// SetByte overwrites the byte at index i.
func (b *Blob) SetByte(i int, v byte) {
	b.buf[i] = v
}

// Compare performs a byte-wise comparison, returning <0, 0, >0 the same way
// bytes.Compare does.
func (b *Blob) Compare(other *Blob) int {
	a, c := b.buf, other.buf
	n := len(a)
	if len(c) < n {
		n = len(c)
	}
	for i := 0; i < n; i++ {
		if a[i] != c[i] {
			if a[i] < c[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(c):
		return -1
	case len(a) > len(c):
		return 1
	default:
		return 0
	}
}

// StartsWith reports whether the Blob's bytes begin with prefix's bytes.
func (b *Blob) StartsWith(prefix *Blob) bool {
	if len(b.buf) < len(prefix.buf) {
		return false
	}
	for i, p := range prefix.buf {
		if b.buf[i] != p {
			return false
		}
	}
	return true
}

// Write implements io.Writer so a Blob can serve as a codec.Writer sink,
// the same role BlobBuffer plays for Serializer in the original source.
func (b *Blob) Write(p []byte) (int, error) {
	b.Append(p)
	return len(p), nil
}

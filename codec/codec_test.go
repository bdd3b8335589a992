package codec

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTripPrimitives(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.WriteUint32(0xdeadbeef))
	require.NoError(t, w.WriteUint64(0x0102030405060708))
	require.NoError(t, w.WriteInt32(-12345))
	require.NoError(t, w.WriteInt64(-9876543210))
	require.NoError(t, w.WriteByte('Q'))
	require.NoError(t, w.WriteBool(true))
	require.NoError(t, w.WriteBool(false))
	require.NoError(t, w.WriteString("foobar"))
	require.NoError(t, w.WriteBytes(nil))

	assert.Equal(t, buf.Len(), w.Offset())

	r := NewReader(buf.Bytes())

	u32, err := r.ReadUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0xdeadbeef), u32)

	u64, err := r.ReadUint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(0x0102030405060708), u64)

	i32, err := r.ReadInt32()
	require.NoError(t, err)
	assert.Equal(t, int32(-12345), i32)

	i64, err := r.ReadInt64()
	require.NoError(t, err)
	assert.Equal(t, int64(-9876543210), i64)

	b, err := r.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte('Q'), b)

	flag, err := r.ReadBool()
	require.NoError(t, err)
	assert.True(t, flag)

	flag, err = r.ReadBool()
	require.NoError(t, err)
	assert.False(t, flag)

	s, err := r.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "foobar", s)

	empty, err := r.ReadBytes()
	require.NoError(t, err)
	assert.Nil(t, empty)

	assert.Zero(t, r.Remaining())
}

func TestWriteUint32IsBigEndianOnWire(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteUint32(1))
	assert.Equal(t, []byte{0, 0, 0, 1}, buf.Bytes())
}

func TestReadPastEndReturnsShortBuffer(t *testing.T) {
	r := NewReader([]byte{1, 2})
	_, err := r.ReadUint32()
	assert.ErrorIs(t, err, ErrShortBuffer)
}

func TestCountPrefixedSetRoundTrips(t *testing.T) {
	elems := []string{"alpha", "beta", "gamma"}
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteCount(len(elems)))
	for _, e := range elems {
		require.NoError(t, w.WriteString(e))
	}

	r := NewReader(buf.Bytes())
	n, err := r.ReadCount()
	require.NoError(t, err)
	require.Equal(t, len(elems), n)
	got := make([]string, 0, n)
	for i := 0; i < n; i++ {
		s, err := r.ReadString()
		require.NoError(t, err)
		got = append(got, s)
	}
	assert.Equal(t, elems, got)
}

func TestBytesAreBorrowedNotCopied(t *testing.T) {
	data := append([]byte(nil), "hello"...)
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteBytes(data))

	wire := buf.Bytes()
	r := NewReader(wire)
	got, err := r.ReadBytes()
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))
	// the payload starts right after the 8-byte size header in wire itself
	assert.Same(t, &wire[8], &got[0])
}

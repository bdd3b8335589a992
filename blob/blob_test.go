package blob

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlobAppendAndData(t *testing.T) {
	b := New(nil)
	b.Append([]byte("foo"))
	b.Append([]byte("bar"))
	assert.Equal(t, "foobar", string(b.Data()))
	assert.Equal(t, 6, b.Size())
}

func TestBlobResizeGrowsZeroed(t *testing.T) {
	b := New([]byte{1, 2, 3})
	b.Resize(5)
	assert.Equal(t, []byte{1, 2, 3, 0, 0}, b.Data())
}

func TestBlobResizeShrinks(t *testing.T) {
	b := New([]byte{1, 2, 3, 4})
	b.Resize(2)
	assert.Equal(t, []byte{1, 2}, b.Data())
}

func TestBlobClear(t *testing.T) {
	b := New([]byte("hello"))
	b.Clear()
	assert.Equal(t, 0, b.Size())
}

func TestBlobByteIndexing(t *testing.T) {
	b := New([]byte("abc"))
	assert.Equal(t, byte('b'), b.Byte(1))
	b.SetByte(1, 'z')
	assert.Equal(t, "azc", string(b.Data()))
}

func TestBlobCompare(t *testing.T) {
	assert.Equal(t, 0, New([]byte("abc")).Compare(New([]byte("abc"))))
	assert.Negative(t, New([]byte("abc")).Compare(New([]byte("abd"))))
	assert.Positive(t, New([]byte("abd")).Compare(New([]byte("abc"))))
	assert.Negative(t, New([]byte("ab")).Compare(New([]byte("abc"))))
}

func TestBlobStartsWith(t *testing.T) {
	assert.True(t, New([]byte("foobar")).StartsWith(New([]byte("foo"))))
	assert.True(t, New([]byte("foobar")).StartsWith(New(nil)))
	assert.False(t, New([]byte("foo")).StartsWith(New([]byte("foobar"))))
	assert.False(t, New([]byte("bar")).StartsWith(New([]byte("foo"))))
}

func TestBlobWriteSatisfiesIOWriter(t *testing.T) {
	b := New(nil)
	n, err := b.Write([]byte("xyz"))
	assert.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "xyz", string(b.Data()))
}

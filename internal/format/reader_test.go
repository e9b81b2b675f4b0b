package format_test

import (
	"io"
	"testing"

	"github.com/ostafen/sniff/internal/format"
	"github.com/stretchr/testify/require"
)

func TestReader_Bounds(t *testing.T) {
	testData := []byte("0123456789ABCDEF")

	r := format.NewReader(testData)
	require.Equal(t, len(testData), r.Len())

	b, ok := r.Peek(4)
	require.True(t, ok)
	require.Equal(t, []byte("0123"), b)
	require.Equal(t, 0, r.Offset())

	b, ok = r.Next(4)
	require.True(t, ok)
	require.Equal(t, []byte("0123"), b)
	require.Equal(t, 4, r.Offset())

	_, ok = r.Next(13)
	require.False(t, ok)
	require.Equal(t, 4, r.Offset())

	require.False(t, r.Discard(-1))
	require.False(t, r.Discard(13))
	require.True(t, r.Discard(12))
	require.Zero(t, r.Len())

	_, err := r.ReadByte()
	require.ErrorIs(t, err, io.EOF)

	require.False(t, r.Seek(len(testData)+1))
	require.True(t, r.Seek(10))

	c, err := r.ReadByte()
	require.NoError(t, err)
	require.Equal(t, byte('A'), c)
}

func TestReader_Read(t *testing.T) {
	r := format.NewReader([]byte("abc"))

	p := make([]byte, 2)
	n, err := r.Read(p)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	n, err = r.Read(p)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, byte('c'), p[0])

	_, err = r.Read(p)
	require.ErrorIs(t, err, io.EOF)
}

func TestReader_Integers(t *testing.T) {
	r := format.NewReader([]byte{
		0x01, 0x02,
		0x01, 0x02, 0x03, 0x04,
		0x01, 0x02, 0x03, 0x04,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00,
		0xFF,
	})

	v16, ok := r.Uint16LE()
	require.True(t, ok)
	require.Equal(t, uint16(0x0201), v16)

	v32, ok := r.Uint32LE()
	require.True(t, ok)
	require.Equal(t, uint32(0x04030201), v32)

	v32, ok = r.Uint32BE()
	require.True(t, ok)
	require.Equal(t, uint32(0x01020304), v32)

	v64, ok := r.Uint64BE()
	require.True(t, ok)
	require.Equal(t, uint64(0x100), v64)

	_, ok = r.Uint16LE()
	require.False(t, ok)
	require.Equal(t, 1, r.Len())
}

func TestAt(t *testing.T) {
	buf := []byte("0123456789")

	require.Equal(t, []byte("234"), format.At(buf, 2, 3))
	require.Equal(t, []byte{}, format.At(buf, 10, 0))
	require.Nil(t, format.At(buf, 8, 3))
	require.Nil(t, format.At(buf, -1, 3))
	require.Nil(t, format.At(buf, 11, 0))
}

func TestSeekAt(t *testing.T) {
	data := []byte("xxxxPK\x03\x04yyyy")
	sig := []byte("PK\x03\x04")

	r := format.NewReader(data)
	require.False(t, format.SeekAt(r, sig, 4))
	require.Equal(t, 0, r.Offset())

	require.True(t, format.SeekAt(r, sig, 5))
	require.Equal(t, 4, r.Offset())

	// the cursor already sits on the signature
	require.True(t, format.SeekAt(r, sig, 1))
	require.Equal(t, 4, r.Offset())

	require.True(t, r.Discard(1))
	require.False(t, format.SeekAt(r, sig, r.Len()))
	require.Equal(t, 5, r.Offset())
}

func TestIndexWithin(t *testing.T) {
	buf := []byte("abcabcabc")

	require.Equal(t, 3, format.IndexWithin(buf, []byte("abc"), 1, 100))
	require.Equal(t, -1, format.IndexWithin(buf, []byte("abc"), 7, 100))
	require.Equal(t, -1, format.IndexWithin(buf, []byte("abc"), 4, 5))
	require.Equal(t, -1, format.IndexWithin(buf, []byte("abc"), -1, 5))
	require.Equal(t, -1, format.IndexWithin(buf, []byte("abc"), 20, 30))
}

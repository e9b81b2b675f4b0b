package format_test

import (
	"testing"

	"github.com/ostafen/sniff/internal/format"
	"github.com/stretchr/testify/require"
)

func TestDetectCharset(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want format.Charset
	}{
		{"empty", nil, format.CharsetBinary},
		{"ascii", []byte("hello, world"), format.CharsetUTF8},
		{"utf8", []byte("perché così"), format.CharsetUTF8},
		{"utf8 bom", []byte("\xEF\xBB\xBFhello"), format.CharsetUTF8BOM},
		{"utf16be bom", []byte("\xFE\xFF\x00h\x00i"), format.CharsetUTF16BE},
		{"utf16le bom", []byte("\xFF\xFEh\x00i\x00"), format.CharsetUTF16LE},
		{"bom wins over nul bytes", []byte("\xFF\xFE\x00\x00"), format.CharsetUTF16LE},
		{"nul byte", []byte("abc\x00def"), format.CharsetBinary},
		{"vertical tab", []byte("abc\x0Bdef"), format.CharsetBinary},
		{"escape is text", []byte("\x1b[1mbold\x1b[0m"), format.CharsetUTF8},
		{"invalid utf8", []byte("abc\xFF\xFEdef"), format.CharsetBinary},
		{"cut rune", []byte("caff\xC3"), format.CharsetUTF8},
		{"cut rune in the middle", []byte("caff\xC3 latte"), format.CharsetBinary},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, format.DetectCharset(tc.data))
		})
	}
}

func TestCharset_String(t *testing.T) {
	require.Equal(t, "binary", format.CharsetBinary.String())
	require.Equal(t, "utf-8", format.CharsetUTF8.String())
	require.Equal(t, "utf-16le", format.CharsetUTF16LE.String())
}

func TestHasBinaryBytes(t *testing.T) {
	require.False(t, format.HasBinaryBytes([]byte("a\tb\nc\fd\re\x1bf")))

	for _, b := range []byte{0x00, 0x08, 0x0B, 0x0E, 0x1A, 0x1C, 0x1F} {
		require.True(t, format.HasBinaryBytes([]byte{'a', b}), "byte %#x", b)
	}
}

func TestDecodeUTF16(t *testing.T) {
	out, ok := format.DecodeUTF16([]byte("\xFE\xFF\x00<\x00h\x00t\x00m\x00l\x00>"), true)
	require.True(t, ok)
	require.Equal(t, "<html>", string(out))

	out, ok = format.DecodeUTF16([]byte("\xFF\xFE<\x00a\x00>"), false)
	require.True(t, ok)
	require.Equal(t, "<a", string(out))

	// dangling high surrogate at the end of the buffer
	out, ok = format.DecodeUTF16([]byte("\xFF\xFEa\x00\x3D\xD8"), false)
	require.True(t, ok)
	require.Equal(t, "a", string(out))

	// lone low surrogate in the middle
	_, ok = format.DecodeUTF16([]byte("\xFF\xFE\x00\xDCa\x00"), false)
	require.False(t, ok)

	_, ok = format.DecodeUTF16([]byte("\xFF\xFE"), false)
	require.False(t, ok)
}

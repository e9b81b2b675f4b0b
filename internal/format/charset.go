package format

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// Charset is the outcome of the text/binary classification of a buffer.
type Charset int

const (
	CharsetBinary Charset = iota
	CharsetUTF8BOM
	CharsetUTF16BE
	CharsetUTF16LE
	CharsetUTF8
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}
)

func (c Charset) String() string {
	switch c {
	case CharsetUTF8BOM:
		return "utf-8-bom"
	case CharsetUTF16BE:
		return "utf-16be"
	case CharsetUTF16LE:
		return "utf-16le"
	case CharsetUTF8:
		return "utf-8"
	}
	return "binary"
}

// DetectCharset classifies buf as text or binary. A byte order mark wins over
// any content heuristic.
func DetectCharset(buf []byte) Charset {
	switch {
	case bytes.HasPrefix(buf, bomUTF8):
		return CharsetUTF8BOM
	case bytes.HasPrefix(buf, bomUTF16BE):
		return CharsetUTF16BE
	case bytes.HasPrefix(buf, bomUTF16LE):
		return CharsetUTF16LE
	case IsUTF8Text(buf):
		return CharsetUTF8
	}
	return CharsetBinary
}

// HasBinaryBytes reports whether buf contains a control byte that never
// appears in text. Tab, line feed, form feed, carriage return and escape
// are allowed.
func HasBinaryBytes(buf []byte) bool {
	for _, b := range buf {
		if isBinaryByte(b) {
			return true
		}
	}
	return false
}

func isBinaryByte(b byte) bool {
	return b <= 0x08 || b == 0x0B || (b >= 0x0E && b <= 0x1A) || (b >= 0x1C && b <= 0x1F)
}

// IsUTF8Text reports whether buf is non empty text encoded as UTF-8.
// A multi-byte sequence cut by the end of buf is accepted, since buf is
// usually the head of a longer stream.
func IsUTF8Text(buf []byte) bool {
	if len(buf) == 0 || HasBinaryBytes(buf) {
		return false
	}
	if utf8.Valid(buf) {
		return true
	}

	for i := 1; i < utf8.UTFMax && i <= len(buf); i++ {
		tail := buf[len(buf)-i:]
		if utf8.RuneStart(tail[0]) {
			return !utf8.FullRune(tail) && utf8.Valid(buf[:len(buf)-i])
		}
	}
	return false
}

// DecodeUTF16 converts a UTF-16 buffer into UTF-8. A leading byte order mark
// matching the requested endianness is dropped, as is a dangling odd byte.
func DecodeUTF16(buf []byte, bigEndian bool) ([]byte, bool) {
	endianness := unicode.LittleEndian
	bom := bomUTF16LE
	if bigEndian {
		endianness = unicode.BigEndian
		bom = bomUTF16BE
	}

	buf = bytes.TrimPrefix(buf, bom)
	buf = buf[:len(buf)&^1]
	if n := len(buf); n >= 2 {
		last := uint16(buf[n-2])<<8 | uint16(buf[n-1])
		if !bigEndian {
			last = uint16(buf[n-1])<<8 | uint16(buf[n-2])
		}
		if last >= 0xD800 && last <= 0xDBFF {
			buf = buf[:n-2]
		}
	}
	if len(buf) == 0 {
		return nil, false
	}

	out, err := unicode.UTF16(endianness, unicode.IgnoreBOM).NewDecoder().Bytes(buf)
	if err != nil || bytes.ContainsRune(out, utf8.RuneError) {
		return nil, false
	}
	return out, true
}

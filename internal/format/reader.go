package format

import (
	"encoding/binary"
	"io"
)

// Reader is a cursor over a bounded buffer. Every read that would cross
// the end of the buffer fails without moving the cursor.
type Reader struct {
	buf []byte

	off int
}

func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Len returns the number of unread bytes.
func (r *Reader) Len() int {
	return len(r.buf) - r.off
}

func (r *Reader) Offset() int {
	return r.off
}

// Seek moves the cursor to the absolute offset off.
func (r *Reader) Seek(off int) bool {
	if off < 0 || off > len(r.buf) {
		return false
	}
	r.off = off
	return true
}

func (r *Reader) Discard(n int) bool {
	if n < 0 || n > r.Len() {
		return false
	}
	r.off += n
	return true
}

func (r *Reader) Peek(n int) ([]byte, bool) {
	if n < 0 || n > r.Len() {
		return nil, false
	}
	return r.buf[r.off : r.off+n], true
}

func (r *Reader) Next(n int) ([]byte, bool) {
	b, ok := r.Peek(n)
	if ok {
		r.off += n
	}
	return b, ok
}

func (r *Reader) Read(p []byte) (int, error) {
	if r.Len() == 0 && len(p) > 0 {
		return 0, io.EOF
	}
	n := copy(p, r.buf[r.off:])
	r.off += n
	return n, nil
}

func (r *Reader) ReadByte() (byte, error) {
	if r.Len() == 0 {
		return 0, io.EOF
	}
	b := r.buf[r.off]
	r.off++
	return b, nil
}

func (r *Reader) Uint16LE() (uint16, bool) {
	b, ok := r.Next(2)
	if !ok {
		return 0, false
	}
	return binary.LittleEndian.Uint16(b), true
}

func (r *Reader) Uint32LE() (uint32, bool) {
	b, ok := r.Next(4)
	if !ok {
		return 0, false
	}
	return binary.LittleEndian.Uint32(b), true
}

func (r *Reader) Uint32BE() (uint32, bool) {
	b, ok := r.Next(4)
	if !ok {
		return 0, false
	}
	return binary.BigEndian.Uint32(b), true
}

func (r *Reader) Uint64BE() (uint64, bool) {
	b, ok := r.Next(8)
	if !ok {
		return 0, false
	}
	return binary.BigEndian.Uint64(b), true
}

// At returns buf[off:off+n], or nil when the range is not fully inside buf.
func At(buf []byte, off, n int) []byte {
	if off < 0 || n < 0 || off > len(buf) || n > len(buf)-off {
		return nil
	}
	return buf[off : off+n]
}

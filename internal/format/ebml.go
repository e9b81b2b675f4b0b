// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package format

import (
	"bytes"
)

// EBMLKind identifies the DocType of an EBML stream.
type EBMLKind int

const (
	EBMLGeneric EBMLKind = iota
	EBMLWebM
	EBMLMatroska
)

const (
	ebmlDocTypeID = 0x4282

	maxVintLen = 8
)

var ebmlMagic = []byte{0x1A, 0x45, 0xDF, 0xA3}

// IsEBML reports whether buf starts with the EBML header element id.
func IsEBML(buf []byte) bool {
	return bytes.HasPrefix(buf, ebmlMagic)
}

// AnalyzeEBML walks the EBML header of buf looking for the DocType element.
func AnalyzeEBML(buf []byte) EBMLKind {
	switch string(DocType(buf)) {
	case "webm":
		return EBMLWebM
	case "matroska":
		return EBMLMatroska
	}
	return EBMLGeneric
}

// DocType returns the DocType string declared in the EBML header, or nil
// when the header is malformed or the element lies past the end of buf.
func DocType(buf []byte) []byte {
	if !IsEBML(buf) {
		return nil
	}

	r := NewReader(buf)
	r.Discard(len(ebmlMagic))

	size, known, ok := readVint(r, false)
	if !ok {
		return nil
	}

	end := len(buf)
	if known && size < uint64(r.Len()) {
		end = r.Offset() + int(size)
	}

	for r.Offset() < end {
		id, _, ok := readVint(r, true)
		if !ok {
			return nil
		}
		size, known, ok := readVint(r, false)
		if !ok || !known || size > uint64(r.Len()) {
			return nil
		}

		payload, _ := r.Next(int(size))
		if id == ebmlDocTypeID {
			return bytes.TrimRight(payload, "\x00")
		}
	}
	return nil
}

// readVint decodes a variable size integer. Element ids keep their length
// marker while sizes drop it. A size whose value bits are all set is
// unknown.
func readVint(r *Reader, keepMarker bool) (v uint64, known bool, ok bool) {
	first, err := r.ReadByte()
	if err != nil {
		return 0, false, false
	}

	n := 1
	for mask := byte(0x80); n <= maxVintLen && first&mask == 0; mask >>= 1 {
		n++
	}
	if n > maxVintLen {
		return 0, false, false
	}

	rest, ok := r.Next(n - 1)
	if !ok {
		return 0, false, false
	}

	marker := uint64(1) << (7 * n)
	v = uint64(first)
	for _, b := range rest {
		v = v<<8 | uint64(b)
	}

	if keepMarker {
		return v, true, true
	}

	v &^= marker
	return v, v != marker-1, true
}

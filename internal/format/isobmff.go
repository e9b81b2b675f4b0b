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
	"encoding/binary"
)

// ISOBMFFKind identifies the brand family of an ISO base media file.
type ISOBMFFKind int

const (
	ISOBMFFGeneric ISOBMFFKind = iota
	ISOBMFFAVIF
	ISOBMFF3GPP
	ISOBMFF3GPP2
	ISOBMFFAudioMP4
	ISOBMFFM4A
	ISOBMFFM4V
	ISOBMFFHEICSequence
	ISOBMFFHEIC
	ISOBMFFHEIFSequence
	ISOBMFFHEIF
	ISOBMFFMJ2
	ISOBMFFDVB
)

const (
	boxHeaderSize      = 8
	largeBoxHeaderSize = 16
	ftypMinSize        = 12
)

var boxTypeFtyp = []byte("ftyp")

// brandTable lists the known brands in priority order.
var brandTable = []struct {
	brands []string
	kind   ISOBMFFKind
}{
	{[]string{"avif", "avis"}, ISOBMFFAVIF},
	{[]string{"3gp4", "3gp5", "3gp6", "3gp7", "3gp8", "3gp9", "3gpa", "3gpp"}, ISOBMFF3GPP},
	{[]string{"3g24", "3g25", "3g26", "3g27", "3g28", "3g29", "3g2a", "3g2b", "3g2c"}, ISOBMFF3GPP2},
	{[]string{"M4A "}, ISOBMFFAudioMP4},
	{[]string{"M4B ", "M4P "}, ISOBMFFM4A},
	{[]string{"M4V ", "M4VH", "M4VP"}, ISOBMFFM4V},
	{[]string{"hevc", "hevx"}, ISOBMFFHEICSequence},
	{[]string{"heic", "heix", "heim", "heis"}, ISOBMFFHEIC},
	{[]string{"msf1"}, ISOBMFFHEIFSequence},
	{[]string{"mif1"}, ISOBMFFHEIF},
	{[]string{"mj2s", "mjp2"}, ISOBMFFMJ2},
	{[]string{"dvb1"}, ISOBMFFDVB},
}

// sequenceOf maps still image kinds to their sequence counterpart.
var sequenceOf = map[ISOBMFFKind]ISOBMFFKind{
	ISOBMFFHEIC: ISOBMFFHEICSequence,
	ISOBMFFHEIF: ISOBMFFHEIFSequence,
}

// codecsOf lists, in priority order, the codec specific kinds a structural
// HEIF brand gives way to when one of them is among the compatible brands.
var codecsOf = map[ISOBMFFKind][]ISOBMFFKind{
	ISOBMFFHEIF:         {ISOBMFFAVIF, ISOBMFFHEIC},
	ISOBMFFHEIFSequence: {ISOBMFFAVIF, ISOBMFFHEICSequence},
}

// IsISOBMFF reports whether buf starts with a plausible ftyp box.
func IsISOBMFF(buf []byte) bool {
	if len(buf) < ftypMinSize {
		return false
	}
	size := binary.BigEndian.Uint32(buf)
	if size < ftypMinSize || size%4 != 0 || uint64(size) > uint64(len(buf)) {
		return false
	}
	return bytes.Equal(buf[4:8], boxTypeFtyp)
}

// HasMajorBrand reports whether buf starts with an ftyp box whose major brand is brand.
func HasMajorBrand(buf []byte, brand string) bool {
	return len(buf) >= ftypMinSize && bytes.Equal(buf[4:8], boxTypeFtyp) && string(buf[8:12]) == brand
}

// Brands walks the top level boxes of buf up to the ftyp box and returns its
// major brand followed by the compatible brands.
func Brands(buf []byte) []string {
	r := NewReader(buf)
	for i := 0; i < len(buf)/boxHeaderSize; i++ {
		start := r.Offset()

		size32, ok := r.Uint32BE()
		if !ok {
			return nil
		}
		typ, ok := r.Next(4)
		if !ok {
			return nil
		}

		size, hdrSize := uint64(size32), uint64(boxHeaderSize)
		if size32 == 1 {
			if size, ok = r.Uint64BE(); !ok {
				return nil
			}
			hdrSize = largeBoxHeaderSize
		}
		if size == 0 || size < hdrSize || size > uint64(len(buf)-start) {
			return nil
		}

		payload, _ := r.Next(int(size - hdrSize))
		if bytes.Equal(typ, boxTypeFtyp) {
			return ftypBrands(payload)
		}
	}
	return nil
}

func ftypBrands(payload []byte) []string {
	if len(payload) < 4 {
		return nil
	}

	brands := []string{string(payload[:4])}
	// skip the minor version
	for off := 8; off+4 <= len(payload); off += 4 {
		brands = append(brands, string(payload[off:off+4]))
	}
	return brands
}

// AnalyzeISOBMFF maps the ftyp brands of buf to a known family.
func AnalyzeISOBMFF(buf []byte) ISOBMFFKind {
	brands := Brands(buf)
	if len(brands) == 0 {
		return ISOBMFFGeneric
	}

	kind := brandKind(brands[0])
	if kind == ISOBMFFGeneric {
		kind = bestBrandKind(brands[1:])
	}
	kind = withSequence(kind, brands)

	for _, codec := range codecsOf[kind] {
		if hasBrandKind(brands[1:], codec) {
			return withSequence(codec, brands)
		}
	}
	return kind
}

// withSequence returns the sequence counterpart of kind when a sequence
// brand appears anywhere in brands.
func withSequence(kind ISOBMFFKind, brands []string) ISOBMFFKind {
	if seq, ok := sequenceOf[kind]; ok && hasBrandKind(brands, seq) {
		return seq
	}
	return kind
}

func hasBrandKind(brands []string, kind ISOBMFFKind) bool {
	for _, b := range brands {
		if brandKind(b) == kind {
			return true
		}
	}
	return false
}

func brandKind(brand string) ISOBMFFKind {
	for _, entry := range brandTable {
		for _, b := range entry.brands {
			if b == brand {
				return entry.kind
			}
		}
	}
	return ISOBMFFGeneric
}

func bestBrandKind(brands []string) ISOBMFFKind {
	for _, entry := range brandTable {
		if hasBrandKind(brands, entry.kind) {
			return entry.kind
		}
	}
	return ISOBMFFGeneric
}

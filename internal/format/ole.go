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

// OLEKind identifies the application that produced an OLE compound file.
type OLEKind int

const (
	OLEGeneric OLEKind = iota
	OLEMSI
	OLEAAF
	OLEMSG
	OLEXLS
	OLEPUB
	OLEPPT
	OLEDOC
	OLEOneNote
	OLEFASOO
	OLEPGPNetShare
)

const (
	oleHeaderSize         = 512
	oleSectorSize         = 512
	oleLargeSectorSize    = 4096 // sector size of version 4 files
	oleMajorVersionOffset = 26
	oleDirEntrySize       = 128
	oleDirNameSize        = 64
	oleCLSIDOffset        = 80
	oleDIFATOffset        = 76
	oleDIFATEntries       = 109
	oleFirstDirSecOffset  = 48

	// Sector ids at or above this value are special markers (free, end of chain ...).
	oleMaxRegularSector = 0xFFFFFFFA
)

var oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

var oleCLSIDs = []struct {
	clsid []byte
	kind  OLEKind
}{
	{[]byte{0x84, 0x10, 0x0C, 0x00, 0x00, 0x00, 0x00, 0x00, 0xC0, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x46}, OLEMSI},
	{[]byte{0xAA, 0xF0, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xC0, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x46}, OLEAAF},
	{[]byte{0x0B, 0x0D, 0x02, 0x00, 0x00, 0x00, 0x00, 0x00, 0xC0, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x46}, OLEMSG},
	// Excel 5 and 7 only differ in the first bytes.
	{[]byte{0x10, 0x08, 0x02, 0x00, 0x00, 0x00, 0x00, 0x00}, OLEXLS},
	{[]byte{0x20, 0x08, 0x02, 0x00, 0x00, 0x00, 0x00, 0x00}, OLEXLS},
	{[]byte{0x01, 0x12, 0x02, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xC0, 0x00, 0x00, 0x00, 0x00, 0x00, 0x46}, OLEPUB},
	{[]byte{0x10, 0x8D, 0x81, 0x64, 0x9B, 0x4F, 0xCF, 0x11, 0x86, 0xEA, 0x00, 0xAA, 0x00, 0xB9, 0x29, 0xE8}, OLEPPT},
	{[]byte{0x70, 0xAE, 0x7B, 0xEA, 0x3B, 0xFB, 0xCD, 0x11, 0xA9, 0x03, 0x00, 0xAA, 0x00, 0x51, 0x0E, 0xA3}, OLEPPT},
	{[]byte{0x06, 0x09, 0x02, 0x00, 0x00, 0x00, 0x00, 0x00, 0xC0, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x46}, OLEDOC},
	{[]byte{0x00, 0x09, 0x02, 0x00, 0x00, 0x00, 0x00, 0x00, 0xC0, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x46}, OLEDOC},
	{[]byte{0x07, 0x09, 0x02, 0x00, 0x00, 0x00, 0x00, 0x00, 0xC0, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x46}, OLEDOC},
	{[]byte{0x43, 0xAD, 0x43, 0x36, 0x5E, 0x47, 0x96, 0x48, 0x8B, 0x42, 0x04, 0x40, 0xE7, 0x87, 0xC9, 0x30}, OLEOneNote},
}

var oleStreamNames = []struct {
	name string
	kind OLEKind
}{
	{"WordDocument", OLEDOC},
	{"Workbook", OLEXLS},
	{"Book", OLEXLS},
	{"PowerPoint Document", OLEPPT},
	{"__properties_version1.0", OLEMSG},
}

var (
	xlsSubHeaders = [][]byte{
		{0x09, 0x08, 0x10, 0x00, 0x00, 0x06, 0x05, 0x00},
		{0xFD, 0xFF, 0xFF, 0xFF, 0x10},
		{0xFD, 0xFF, 0xFF, 0xFF, 0x1F},
		{0xFD, 0xFF, 0xFF, 0xFF, 0x22},
		{0xFD, 0xFF, 0xFF, 0xFF, 0x23},
		{0xFD, 0xFF, 0xFF, 0xFF, 0x28},
		{0xFD, 0xFF, 0xFF, 0xFF, 0x29},
	}
	pptSubHeaders = [][]byte{
		{0xA0, 0x46, 0x1D, 0xF0},
		{0x00, 0x6E, 0x1E, 0xF0},
		{0x0F, 0x00, 0xE8, 0x03},
	}

	utf16Workbook     = utf16LE("Workbook")
	utf16PowerPoint   = utf16LE("PowerPoint Document")
	fasooMarker       = []byte("FASOO   ")
	pgpNetShareMarker = []byte("-----BEGIN PGP")
)

// IsOLE reports whether buf starts with the compound file header signature.
func IsOLE(buf []byte) bool {
	return bytes.HasPrefix(buf, oleMagic)
}

// AnalyzeOLE inspects the directory of an OLE compound file and infers which
// application produced it. The root storage CLSID is checked first, then
// the names of the directory entries and finally the well known headers of
// the first stream sector.
func AnalyzeOLE(buf []byte) OLEKind {
	if !IsOLE(buf) {
		return OLEGeneric
	}

	hdr := parseOLEHeader(buf)
	if kind := hdr.matchCLSID(buf); kind != OLEGeneric {
		return kind
	}

	names := hdr.directoryNames(buf)
	for _, stream := range oleStreamNames {
		for _, name := range names {
			if name == stream.name {
				return stream.kind
			}
		}
	}

	if stream := At(buf, oleHeaderSize, len(buf)-oleHeaderSize); stream != nil {
		for _, sub := range xlsSubHeaders {
			if bytes.HasPrefix(stream, sub) {
				return OLEXLS
			}
		}
		for _, sub := range pptSubHeaders {
			if bytes.HasPrefix(stream, sub) {
				return OLEPPT
			}
		}
		if len(stream) >= 8 && bytes.HasPrefix(stream, []byte{0xFD, 0xFF, 0xFF, 0xFF}) && stream[6] == 0 && stream[7] == 0 {
			return OLEPPT
		}
	}

	switch {
	case IndexWithin(buf, utf16Workbook, oleHeaderSize, oleLargeSectorSize) >= 0:
		return OLEXLS
	case IndexWithin(buf, utf16PowerPoint, oleHeaderSize, oleLargeSectorSize) >= 0:
		return OLEPPT
	case bytes.HasPrefix(At(buf, oleHeaderSize, len(fasooMarker)), fasooMarker):
		return OLEFASOO
	case bytes.HasPrefix(At(buf, oleHeaderSize, len(pgpNetShareMarker)), pgpNetShareMarker):
		return OLEPGPNetShare
	}
	return OLEGeneric
}

type oleHeader struct {
	sectorSize  int
	firstDirSec uint32
}

func parseOLEHeader(buf []byte) oleHeader {
	hdr := oleHeader{sectorSize: oleSectorSize}

	r := NewReader(buf)
	if r.Seek(oleMajorVersionOffset) {
		if v, ok := r.Uint16LE(); ok && v == 0x0004 {
			hdr.sectorSize = oleLargeSectorSize
		}
	}
	if r.Seek(oleFirstDirSecOffset) {
		hdr.firstDirSec, _ = r.Uint32LE()
	}
	return hdr
}

// uint32At decodes the little endian value at off, if buf holds all of it.
func uint32At(buf []byte, off int) (uint32, bool) {
	r := NewReader(buf)
	if !r.Seek(off) {
		return 0, false
	}
	return r.Uint32LE()
}

// sectorOffset returns the file offset of sector id, or -1 when the sector
// cannot be inside buf.
func (hdr oleHeader) sectorOffset(buf []byte, id uint32) int {
	if id >= oleMaxRegularSector || uint64(id) >= uint64(len(buf)/hdr.sectorSize) {
		return -1
	}
	return hdr.sectorSize * (int(id) + 1)
}

func (hdr oleHeader) matchCLSID(buf []byte) OLEKind {
	off := hdr.sectorOffset(buf, hdr.firstDirSec)
	if off < 0 {
		return OLEGeneric
	}

	clsid := At(buf, off+oleCLSIDOffset, 16)
	if clsid == nil {
		return OLEGeneric
	}
	for _, c := range oleCLSIDs {
		if bytes.HasPrefix(clsid, c.clsid) {
			return c.kind
		}
	}
	return OLEGeneric
}

// nextSector looks up the FAT entry of sector id. Only FAT sectors listed
// in the header DIFAT are reachable.
func (hdr oleHeader) nextSector(buf []byte, id uint32) (uint32, bool) {
	perSector := uint32(hdr.sectorSize / 4)
	idx := id / perSector
	if idx >= oleDIFATEntries {
		return 0, false
	}

	fatSec, ok := uint32At(buf, oleDIFATOffset+int(idx)*4)
	if !ok {
		return 0, false
	}
	off := hdr.sectorOffset(buf, fatSec)
	if off < 0 {
		return 0, false
	}
	return uint32At(buf, off+int(id%perSector)*4)
}

// directoryNames follows the directory chain and returns the names of the
// entries found in buf. The number of steps is bounded by the number of
// sectors in buf, so a cyclic chain terminates.
func (hdr oleHeader) directoryNames(buf []byte) []string {
	var names []string

	maxSteps := len(buf)/hdr.sectorSize + 1
	sec := hdr.firstDirSec
	for step := 0; step < maxSteps; step++ {
		off := hdr.sectorOffset(buf, sec)
		if off < 0 {
			break
		}

		for e := 0; e < hdr.sectorSize/oleDirEntrySize; e++ {
			entry := At(buf, off+e*oleDirEntrySize, oleDirEntrySize)
			if entry == nil {
				return names
			}
			if name, ok := oleEntryName(entry); ok {
				names = append(names, name)
			}
		}

		next, ok := hdr.nextSector(buf, sec)
		if !ok {
			break
		}
		sec = next
	}
	return names
}

func oleEntryName(entry []byte) (string, bool) {
	r := NewReader(entry)
	if !r.Seek(oleDirNameSize) {
		return "", false
	}
	size, ok := r.Uint16LE()
	if !ok {
		return "", false
	}

	n := int(size)
	if n < 2 || n > oleDirNameSize || n%2 != 0 {
		return "", false
	}

	name, ok := DecodeUTF16(entry[:n-2], false)
	if !ok {
		return "", false
	}
	return string(name), true
}

func utf16LE(s string) []byte {
	out := make([]byte, 0, len(s)*2)
	for i := 0; i < len(s); i++ {
		out = append(out, s[i], 0)
	}
	return out
}

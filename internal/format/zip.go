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

// ZipKind identifies the specific format stored inside a ZIP container.
type ZipKind int

const (
	ZipGeneric ZipKind = iota
	ZipDOCX
	ZipXLSX
	ZipPPTX
	ZipVSDX
	ZipEPUB
	ZipODT
	ZipODS
	ZipODP
	ZipODG
	ZipODF
	ZipODC
	ZipSXC
	ZipAPK
	ZipJAR
	ZipKMZ
)

const (
	// ZipFileEntryHeader is the signature for a local file header.
	ZipFileEntryHeader uint32 = 0x04034B50
	// ZipEndCentralDirHeader is the signature for the end of central directory record.
	ZipEndCentralDirHeader uint32 = 0x06054B50
	// ZipDataDescriptorHeader is the signature for a data descriptor, used when the CRC-32
	// and sizes are not known at the time the local file header is written.
	ZipDataDescriptorHeader uint32 = 0x08074B50

	// ZipFileEntrySize is the size of the fixed part of a local file header,
	// signature included.
	ZipFileEntrySize = 30

	// Maximum number of local file headers inspected per buffer.
	MaxZipEntries = 100

	zipFlagDataDescriptor = 0x0008
	jarMagic              = 0xCAFE
)

var (
	zipLocalHeaderSig = binary.LittleEndian.AppendUint32(nil, ZipFileEntryHeader)
	zipEndDirSig      = binary.LittleEndian.AppendUint32(nil, ZipEndCentralDirHeader)
	zipDescriptorSig  = binary.LittleEndian.AppendUint32(nil, ZipDataDescriptorHeader)
)

// ZipFileEntry represents the structure of a local file header in a ZIP file,
// signature excluded.
type ZipFileEntry struct {
	Version          uint16 // Version needed to extract
	Flags            uint16 // General purpose bit flag
	Compression      uint16 // Compression method
	LastModTime      uint16 // File last modification time
	LastModDate      uint16 // File last modification date
	CRC32            uint32 // CRC-32 of uncompressed data
	CompressedSize   uint32 // Compressed size
	UncompressedSize uint32 // Uncompressed size
	FilenameLength   uint16 // Length of filename
	ExtraLength      uint16 // Length of extra field
}

type zipEntry struct {
	name  []byte
	extra []byte
	data  []byte // stored bytes available in the buffer, nil if compressed
}

// IsZIP reports whether buf starts with one of the ZIP record signatures.
func IsZIP(buf []byte) bool {
	return bytes.HasPrefix(buf, zipLocalHeaderSig) ||
		bytes.HasPrefix(buf, zipEndDirSig) ||
		bytes.HasPrefix(buf, zipDescriptorSig)
}

// AnalyzeZIP walks the local file headers present in buf and infers which
// ZIP based format the archive is. It never reads past the end of buf and
// returns ZipGeneric when nothing more specific is recognized.
func AnalyzeZIP(buf []byte) ZipKind {
	var dec zipDecoder

	r := NewReader(buf)
	for i := 0; i < maxZipEntries(buf); i++ {
		entry, ok := nextZipEntry(r)
		if !ok {
			break
		}
		dec.processEntry(i, entry)
	}
	return dec.inferKind()
}

// ZipMimetype returns the content of a stored "mimetype" file when it is the
// first entry of the archive, as OpenDocument and EPUB require.
func ZipMimetype(buf []byte) []byte {
	entry, ok := nextZipEntry(NewReader(buf))
	if !ok || string(entry.name) != "mimetype" {
		return nil
	}
	return entry.data
}

func maxZipEntries(buf []byte) int {
	return min(MaxZipEntries, len(buf)/ZipFileEntrySize)
}

// nextZipEntry positions r after the next local file header and returns the
// entry it describes. Entries using a data descriptor have no declared size,
// so the following header is located by signature.
func nextZipEntry(r *Reader) (zipEntry, bool) {
	if !SeekAt(r, zipLocalHeaderSig, r.Len()) || !r.Discard(len(zipLocalHeaderSig)) {
		return zipEntry{}, false
	}

	var hdr ZipFileEntry
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return zipEntry{}, false
	}

	name, ok := r.Next(int(hdr.FilenameLength))
	if !ok {
		return zipEntry{}, false
	}
	entry := zipEntry{name: name}

	extra, ok := r.Next(int(hdr.ExtraLength))
	if !ok {
		r.Seek(len(r.buf))
		return entry, true
	}
	entry.extra = extra

	size := uint64(hdr.CompressedSize)
	if hdr.Compression == 0 {
		avail, _ := r.Peek(int(min(size, uint64(r.Len()))))
		entry.data = avail
	}

	if hdr.Flags&zipFlagDataDescriptor != 0 && size == 0 {
		if hdr.Compression == 0 {
			entry.data = storedUntilDescriptor(r.buf[r.off:])
		}
		return entry, true
	}
	if size > uint64(r.Len()) {
		r.Seek(len(r.buf))
		return entry, true
	}
	r.Discard(int(size))
	return entry, true
}

// storedUntilDescriptor returns the bytes of a stored entry whose size is only
// known from the data descriptor that follows it.
func storedUntilDescriptor(rest []byte) []byte {
	for _, sig := range [][]byte{zipDescriptorSig, zipLocalHeaderSig} {
		if i := bytes.Index(rest, sig); i >= 0 {
			rest = rest[:i]
		}
	}
	return rest
}

type zipDecoder struct {
	firstName   []byte
	firstExtra  []byte
	mimetype    []byte
	ooxmlLayout bool

	wordSeen  bool
	xlSeen    bool
	pptSeen   bool
	visioSeen bool

	androidSeen bool
	kmlSeen     bool
}

var ooxmlFirstEntries = [][]byte{
	[]byte("[Content_Types].xml"),
	[]byte("_rels/.rels"),
	[]byte("docProps"),
	[]byte("customXml"),
	[]byte("[trash]"),
}

var apkEntries = []string{
	"AndroidManifest.xml",
	"META-INF/com/android/build/gradle/app-metadata.properties",
	"classes.dex",
	"resources.arsc",
}

func (dec *zipDecoder) processEntry(i int, e zipEntry) {
	name := string(e.name)

	if i == 0 {
		dec.firstName = e.name
		dec.firstExtra = e.extra
		if name == "mimetype" {
			dec.mimetype = e.data
		}
		dec.ooxmlLayout = isOOXMLFirstEntry(e.name)
	}

	switch {
	case hasPrefix(name, "word/"):
		dec.wordSeen = true
	case hasPrefix(name, "xl/"):
		dec.xlSeen = true
	case hasPrefix(name, "ppt/"):
		dec.pptSeen = true
	case hasPrefix(name, "visio/"):
		dec.visioSeen = true
	case hasPrefix(name, "res/drawable"):
		dec.androidSeen = true
	case name == "doc.kml":
		dec.kmlSeen = true
	}

	for _, apk := range apkEntries {
		if name == apk {
			dec.androidSeen = true
		}
	}

	if i == 0 && !dec.ooxmlLayout {
		dec.ooxmlLayout = dec.wordSeen || dec.xlSeen || dec.pptSeen || dec.visioSeen
	}
}

func isOOXMLFirstEntry(name []byte) bool {
	for _, first := range ooxmlFirstEntries {
		if bytes.HasPrefix(name, first) {
			return true
		}
	}
	return false
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}

var odfMimetypes = []struct {
	mime string
	kind ZipKind
}{
	{"application/vnd.oasis.opendocument.text", ZipODT},
	{"application/vnd.oasis.opendocument.spreadsheet", ZipODS},
	{"application/vnd.oasis.opendocument.presentation", ZipODP},
	{"application/vnd.oasis.opendocument.graphics", ZipODG},
	{"application/vnd.oasis.opendocument.formula", ZipODF},
	{"application/vnd.oasis.opendocument.chart", ZipODC},
	{"application/vnd.sun.xml.calc", ZipSXC},
}

func (dec *zipDecoder) inferKind() ZipKind {
	if dec.ooxmlLayout {
		switch {
		case dec.wordSeen:
			return ZipDOCX
		case dec.xlSeen:
			return ZipXLSX
		case dec.pptSeen:
			return ZipPPTX
		case dec.visioSeen:
			return ZipVSDX
		}
	}

	if bytes.HasPrefix(dec.mimetype, []byte("application/epub+zip")) {
		return ZipEPUB
	}
	for _, odf := range odfMimetypes {
		if bytes.HasPrefix(dec.mimetype, []byte(odf.mime)) {
			return odf.kind
		}
	}

	if dec.androidSeen {
		return ZipAPK
	}
	if dec.isJAR() {
		return ZipJAR
	}
	if dec.kmlSeen {
		return ZipKMZ
	}
	return ZipGeneric
}

func (dec *zipDecoder) isJAR() bool {
	if len(dec.firstExtra) >= 2 && binary.LittleEndian.Uint16(dec.firstExtra) == jarMagic {
		return true
	}
	return bytes.HasPrefix(dec.firstName, []byte("META-INF/"))
}

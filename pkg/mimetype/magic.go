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
package mimetype

import (
	"bytes"
	"encoding/binary"

	"github.com/ostafen/sniff/internal/format"
)

// prefix matches buffers starting with any of sigs.
func prefix(sigs ...string) func([]byte) bool {
	return offset(0, sigs...)
}

// offset matches buffers holding any of sigs at off.
func offset(off int, sigs ...string) func([]byte) bool {
	raw := make([][]byte, len(sigs))
	for i, sig := range sigs {
		raw[i] = []byte(sig)
	}

	return func(buf []byte) bool {
		if len(buf) < off {
			return false
		}
		for _, sig := range raw {
			if bytes.HasPrefix(buf[off:], sig) {
				return true
			}
		}
		return false
	}
}

// all matches buffers accepted by every test.
func all(tests ...func([]byte) bool) func([]byte) bool {
	return func(buf []byte) bool {
		for _, test := range tests {
			if !test(buf) {
				return false
			}
		}
		return true
	}
}

// riff matches a RIFF container of the given form type.
func riff(form string) func([]byte) bool {
	return all(prefix("RIFF"), offset(8, form))
}

func minLen(n int) func([]byte) bool {
	return func(buf []byte) bool {
		return len(buf) >= n
	}
}

var (
	sevenZ     = prefix("7z\xBC\xAF\x27\x1C")
	pdf        = prefix("%PDF-", "\n%PDF-", "\xEF\xBB\xBF%PDF-")
	fdf        = prefix("%FDF-")
	postscript = prefix("%!PS-Adobe-")
	psd        = prefix("8BPS")
	p7s        = prefix("-----BEGIN PKCS7-----")
	xpm        = prefix("/* XPM */")

	ogg      = prefix("OggS")
	oggAudio = all(minLen(37), offset(28, "\x7FFLAC", "\x01vorbis", "OpusHead", "Speex   "))
	oggVideo = all(minLen(37), offset(28, "\x80theora", "fishead\x00", "\x01video\x00\x00\x00"))

	png  = prefix("\x89PNG\r\n\x1A\n")
	apng = all(minLen(41), offset(37, "acTL"))
	jpg  = prefix("\xFF\xD8\xFF")
	jxl  = prefix("\xFF\x0A", "\x00\x00\x00\x0CJXL \x0D\x0A\x87\x0A")
	jxs  = prefix("\x00\x00\x00\x0CJXS \x0D\x0A\x87\x0A")
	jxr  = prefix("II\xBC\x01")
	gif  = prefix("GIF87a", "GIF89a")
	webp = riff("WEBP")
	tiff = prefix("II*\x00", "MM\x00*")
	bmp  = prefix("BM")
	ico  = prefix("\x00\x00\x01\x00")
	icns = prefix("icns")
	bpg  = prefix("BPG\xFB")
	xcf  = prefix("gimp xcf")
	pat  = all(minLen(25), offset(20, "GPAT"))
	gbr  = all(minLen(25), offset(20, "GIMP"))
	hdr  = prefix("#?RADIANCE\n")
	djvu = all(minLen(16), prefix("AT&TFORM"), offset(12, "DJVU", "DJVM", "DJVI", "THUM"))
	dxf  = prefix("  0\nSECTION\n", "  0\r\nSECTION\r\n", "0\nSECTION\n", "0\r\nSECTION\r\n")
	fits = prefix("SIMPLE  =                    T")

	exe  = prefix("MZ")
	elf  = prefix("\x7FELF")
	wasm = prefix("\x00asm")
	ar   = prefix("!<arch>")
	deb  = all(minLen(21), offset(8, "debian-binary"))
	xar  = prefix("xar!")
	bz2  = prefix("BZh")
	gzip = prefix("\x1F\x8B")
	xz   = prefix("\xFD7zXZ\x00")
	lzip = prefix("LZIP")
	cab  = prefix("MSCF")
	isc  = prefix("ISc(")

	chm     = prefix("ITSF\x03\x00\x00\x00")
	rpm     = prefix("\xED\xAB\xEE\xDB")
	rar     = prefix("Rar!\x1A\x07\x00", "Rar!\x1A\x07\x01\x00")
	torrent = prefix("d8:announce", "d7:comment", "d4:info")
	tzif    = prefix("TZif")
	warc    = prefix("WARC/1.0", "WARC/1.1")

	flac     = prefix("fLaC")
	midi     = prefix("MThd")
	ape      = prefix("MAC \x96\x0F\x00\x00\x34\x00\x00\x00\x18\x00\x00\x00\x90\xE3")
	musepack = prefix("MPCK")
	amr      = prefix("#!AMR")
	wav      = riff("WAVE")
	aiff     = all(prefix("FORM"), offset(8, "AIFF"))
	au       = prefix(".snd")
	aac      = prefix("\xFF\xF1", "\xFF\xF9")
	voc      = prefix("Creative Voice File")
	m3u      = prefix("#EXTM3U")
	qcp      = riff("QLCM")

	avi  = all(minLen(17), prefix("RIFF"), offset(8, "AVI LIST"))
	flv  = prefix("FLV")
	asf  = prefix("\x30\x26\xB2\x75\x8E\x66\xCF\x11\xA6\xD9\x00\xAA\x00\x62\xCE\x6C")
	rmvb = prefix(".RMF")
	qt   = func(buf []byte) bool { return format.HasMajorBrand(buf, "qt  ") }
	mqv  = func(buf []byte) bool { return format.HasMajorBrand(buf, "mqt ") }

	swf   = prefix("FWS", "CWS", "ZWS")
	woff  = prefix("wOFF")
	woff2 = prefix("wOF2")
	otf   = prefix("OTTO")
	ttc   = prefix("ttcf")

	shx     = prefix("\x00\x00\x27\x0A")
	dcm     = all(minLen(132), offset(128, "DICM"))
	mobi    = all(minLen(68), offset(60, "BOOKMOBI"))
	lit     = prefix("ITOLITLS")
	cbor    = prefix("\xD9\xD9\xF7")
	sqlite  = prefix("SQLite format 3\x00")
	nes     = prefix("NES\x1A")
	lnk     = prefix("L\x00\x00\x00\x01\x14\x02\x00")
	hdf     = prefix("\x89HDF\r\n\x1A\n", "\x0E\x03\x13\x01")
	mdb     = all(minLen(32), offset(4, "Standard Jet DB"))
	accdb   = all(minLen(32), offset(4, "Standard ACE DB"))
	glb     = prefix("glTF\x02\x00\x00\x00", "glTF\x01\x00\x00\x00")
	parquet = prefix("PAR1")

	ttfMagic   = prefix("\x00\x01\x00\x00", "true", "typ1")
	cpioASCII  = prefix("070701", "070702", "070707")
	mp3ID3     = prefix("ID3")
	wpdMagic   = prefix("\xFFWPC")
	crxMagic   = prefix("Cr24")
	classMagic = prefix("\xCA\xFE\xBA\xBE")
)

func installShieldCab(buf []byte) bool {
	return len(buf) > 7 && isc(buf) && buf[6] == 0 && (buf[7] == 1 || buf[7] == 2 || buf[7] == 4)
}

func isQuickTime(buf []byte) bool {
	return qt(buf) || mqv(buf)
}

// netpbm matches the portable anymap family. The magic number must be
// followed by whitespace.
func netpbm(magics ...string) func([]byte) bool {
	return func(buf []byte) bool {
		if len(buf) < 3 || !isWS(buf[2]) {
			return false
		}
		for _, m := range magics {
			if string(buf[:2]) == m {
				return true
			}
		}
		return false
	}
}

func jpeg2k(brand string) func([]byte) bool {
	return all(minLen(24), offset(4, "jP  ", "jP2 "), offset(20, brand))
}

func elfType(t byte) func([]byte) bool {
	return func(buf []byte) bool {
		return len(buf) > 17 && buf[16] == t && buf[17] == 0
	}
}

// lotus123 matches the beginning of file record of a 1-2-3 worksheet.
func lotus123(buf []byte) bool {
	if len(buf) <= 20 {
		return false
	}

	switch binary.BigEndian.Uint32(buf) {
	case 0x00000200:
		return buf[6] != 0 && buf[7] == 0
	case 0x00001A00:
		return buf[20] > 0 && buf[20] < 32
	}
	return false
}

func mp3(buf []byte) bool {
	if len(buf) < 3 {
		return false
	}
	if mp3ID3(buf) {
		return true
	}

	switch binary.BigEndian.Uint16(buf) & 0xFFFE {
	case 0xFFFA, 0xFFF2, 0xFFE2:
		return true
	}
	return false
}

func mpeg(buf []byte) bool {
	return len(buf) > 3 && bytes.HasPrefix(buf, []byte{0x00, 0x00, 0x01}) && buf[3] >= 0xB0 && buf[3] <= 0xBF
}

// class matches a Java class file. Fat Mach-O binaries share the magic
// number and are told apart by the small architecture count that follows it.
func class(buf []byte) bool {
	return len(buf) >= 8 && classMagic(buf) &&
		binary.BigEndian.Uint32(buf[4:]) > 30
}

func macho(buf []byte) bool {
	if len(buf) < 8 {
		return false
	}

	switch binary.LittleEndian.Uint32(buf) {
	case 0xFEEDFACE, 0xFEEDFACF, 0xCFFAEDFE, 0xCEFAEDFE:
		return true
	case 0xBEBAFECA:
		n := binary.BigEndian.Uint32(buf[4:])
		return n > 0 && n <= 30
	}
	return false
}

func crx(buf []byte) bool {
	if len(buf) < 16 || !crxMagic(buf) {
		return false
	}

	pubKeyLen := uint64(binary.LittleEndian.Uint32(buf[8:]))
	sigLen := uint64(binary.LittleEndian.Uint32(buf[12:]))
	zipOffset := 16 + pubKeyLen + sigLen
	if zipOffset >= uint64(len(buf)) {
		return false
	}
	return format.IsZIP(buf[zipOffset:])
}

// ttf matches a TrueType font. The table count is checked since "true" is
// also a common way for text to start.
func ttf(buf []byte) bool {
	if len(buf) < 12 || !ttfMagic(buf) {
		return false
	}
	numTables := binary.BigEndian.Uint16(buf[4:])
	return numTables > 0 && numTables < 256
}

func eot(buf []byte) bool {
	if len(buf) < 36 || !bytes.Equal(buf[34:36], []byte("LP")) {
		return false
	}
	version := buf[8:12]
	return bytes.Equal(version, []byte{0x00, 0x00, 0x01, 0x00}) ||
		bytes.Equal(version, []byte{0x01, 0x00, 0x02, 0x00}) ||
		bytes.Equal(version, []byte{0x02, 0x00, 0x02, 0x00})
}

func shp(buf []byte) bool {
	return len(buf) >= 100 && binary.BigEndian.Uint32(buf) == 9994
}

// dbf matches a dBase table. The header right after the type byte is
// binary, which rules out text starting with one of the type bytes.
func dbf(buf []byte) bool {
	if len(buf) < 32 {
		return false
	}

	switch buf[0] {
	case 0x02, 0x03, 0x04, 0x05, 0x30, 0x31, 0x32, 0x83, 0x8B, 0x8E, 0xF5:
	default:
		return false
	}

	for _, b := range buf[1:16] {
		if b >= 0x20 && b <= 0x7E {
			return false
		}
	}
	return true
}

var dwgVersions = []string{
	"1.40", "1.50", "2.10", "1002", "1003", "1004", "1006", "1009",
	"1012", "1014", "1015", "1018", "1021", "1024", "1032",
}

func dwg(buf []byte) bool {
	if len(buf) < 6 || buf[0] != 'A' || buf[1] != 'C' {
		return false
	}
	for _, v := range dwgVersions {
		if string(buf[2:6]) == v {
			return true
		}
	}
	return false
}

func wpd(buf []byte) bool {
	return len(buf) >= 10 && wpdMagic(buf) && buf[8] == 1 && buf[9] == 10
}

func marc(buf []byte) bool {
	return len(buf) >= 24 && buf[10] == '2' && buf[11] == '2' && bytes.Equal(buf[20:24], []byte("4500"))
}

func zstd(buf []byte) bool {
	if len(buf) < 4 {
		return false
	}
	sig := binary.LittleEndian.Uint32(buf)
	return (sig >= 0xFD2FB522 && sig <= 0xFD2FB528) || (sig >= 0x184D2A50 && sig <= 0x184D2A5F)
}

func cpio(buf []byte) bool {
	if len(buf) < 6 {
		return false
	}
	if magic := binary.LittleEndian.Uint16(buf); magic == 0o70707 || magic == 0xC7C7 {
		return true
	}
	return cpioASCII(buf)
}

package mimetype_test

import (
	"archive/tar"
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/ostafen/sniff/internal/format"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"
)

var (
	excelCLSID = []byte{0x10, 0x08, 0x02, 0x00, 0x00, 0x00, 0x00, 0x00, 0xC0, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x46}
	wordCLSID  = []byte{0x06, 0x09, 0x02, 0x00, 0x00, 0x00, 0x00, 0x00, 0xC0, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x46}
)

// pad extends s with zeroes up to n bytes.
func pad(s string, n int) []byte {
	buf := make([]byte, max(n, len(s)))
	copy(buf, s)
	return buf
}

type zipFile struct {
	name string
	data string
}

// buildZip writes stored local file headers with no central directory.
func buildZip(files ...zipFile) []byte {
	var buf bytes.Buffer
	for _, f := range files {
		hdr := format.ZipFileEntry{
			Version:          20,
			CompressedSize:   uint32(len(f.data)),
			UncompressedSize: uint32(len(f.data)),
			FilenameLength:   uint16(len(f.name)),
		}
		_ = binary.Write(&buf, binary.LittleEndian, format.ZipFileEntryHeader)
		_ = binary.Write(&buf, binary.LittleEndian, hdr)
		buf.WriteString(f.name)
		buf.WriteString(f.data)
	}
	return buf.Bytes()
}

// buildOLE lays out a compound file with 512 byte sectors, the directory in
// sector 0 and the FAT in sector 1.
func buildOLE(clsid []byte, names ...string) []byte {
	const sectorSize = 512

	buf := make([]byte, sectorSize*3)
	copy(buf, []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1})
	buf[26] = 0x03
	binary.LittleEndian.PutUint32(buf[48:], 0)
	binary.LittleEndian.PutUint32(buf[76:], 1)

	fat := buf[2*sectorSize:]
	binary.LittleEndian.PutUint32(fat[0:], 0xFFFFFFFE)
	binary.LittleEndian.PutUint32(fat[4:], 0xFFFFFFFD)

	dir := buf[sectorSize:]
	putDirEntry(dir, "Root Entry", clsid)
	for i, name := range names {
		putDirEntry(dir[(i+1)*128:], name, nil)
	}
	return buf
}

func putDirEntry(entry []byte, name string, clsid []byte) {
	for i, c := range name {
		binary.LittleEndian.PutUint16(entry[i*2:], uint16(c))
	}
	binary.LittleEndian.PutUint16(entry[64:], uint16(len(name)*2+2))
	entry[66] = 2
	copy(entry[80:], clsid)
}

func ftypBox(major string, compatible ...string) []byte {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.BigEndian, uint32(16+4*len(compatible)))
	buf.WriteString("ftyp")
	buf.WriteString(major)
	_ = binary.Write(&buf, binary.BigEndian, uint32(0))
	for _, b := range compatible {
		buf.WriteString(b)
	}
	return buf.Bytes()
}

func ebmlHeader(docType string) []byte {
	body := []byte{0x42, 0x86, 0x81, 0x01}
	body = append(body, 0x42, 0x82, 0x80|byte(len(docType)))
	body = append(body, docType...)

	buf := []byte{0x1A, 0x45, 0xDF, 0xA3, 0x80 | byte(len(body))}
	return append(buf, body...)
}

func tarArchive(t *testing.T, name string) []byte {
	var buf bytes.Buffer

	w := tar.NewWriter(&buf)
	require.NoError(t, w.WriteHeader(&tar.Header{
		Name:     name,
		Mode:     0o644,
		Size:     5,
		Typeflag: tar.TypeReg,
		Format:   tar.FormatUSTAR,
	}))
	_, err := w.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return buf.Bytes()
}

// utf16Text encodes s as UTF-16 with a byte order mark.
func utf16Text(t *testing.T, s string, bigEndian bool) []byte {
	endianness := unicode.LittleEndian
	if bigEndian {
		endianness = unicode.BigEndian
	}

	out, err := unicode.UTF16(endianness, unicode.UseBOM).NewEncoder().Bytes([]byte(s))
	require.NoError(t, err)
	return out
}

type sample struct {
	name string
	data []byte
	root string // MIME of the root format
	mime string // MIME of the detected format
}

// binarySamples returns one sample per root format, none of them text.
func binarySamples(t *testing.T) []sample {
	return []sample{
		{"png", pad("\x89PNG\r\n\x1A\n\x00\x00\x00\x0DIHDR", 64), "image/png", "image/png"},
		{"jpeg", pad("\xFF\xD8\xFF\xE0\x00\x10JFIF\x00", 64), "image/jpeg", "image/jpeg"},
		{"gif", pad("GIF89a\x01\x00\x01\x00", 64), "image/gif", "image/gif"},
		{"webp", pad("RIFF\x00\x00\x00\x00WEBPVP8 ", 64), "image/webp", "image/webp"},
		{"bmp", pad("BM", 64), "image/bmp", "image/bmp"},
		{"tiff", pad("II*\x00\x08\x00\x00\x00", 64), "image/tiff", "image/tiff"},
		{"ico", pad("\x00\x00\x01\x00\x01\x00\x10\x10", 64), "image/x-icon", "image/x-icon"},
		{"psd", pad("8BPS\x00\x01", 64), "image/vnd.adobe.photoshop", "image/vnd.adobe.photoshop"},
		{"pdf", pad("%PDF-1.7\n\x00", 64), "application/pdf", "application/pdf"},
		{"gzip", pad("\x1F\x8B\x08\x00", 64), "application/gzip", "application/gzip"},
		{"bzip2", pad("BZh91AY&SY", 64), "application/x-bzip2", "application/x-bzip2"},
		{"xz", pad("\xFD7zXZ\x00\x00", 64), "application/x-xz", "application/x-xz"},
		{"7z", pad("7z\xBC\xAF\x27\x1C\x00\x04", 64), "application/x-7z-compressed", "application/x-7z-compressed"},
		{"rar", pad("Rar!\x1A\x07\x01\x00", 64), "application/x-rar-compressed", "application/x-rar-compressed"},
		{"zstd", pad("\x28\xB5\x2F\xFD\x04\x00", 64), "application/zstd", "application/zstd"},
		{"cab", pad("MSCF\x00\x00\x00\x00", 64), "application/vnd.ms-cab-compressed", "application/vnd.ms-cab-compressed"},
		{"zip", buildZip(zipFile{name: "hello.txt", data: "hello"}), "application/zip", "application/zip"},
		{"ole", buildOLE(nil), "application/x-ole-storage", "application/x-ole-storage"},
		{"tar", tarArchive(t, "hello.txt"), "application/x-tar", "application/x-tar"},
		{"elf", pad("\x7FELF\x02\x01\x01\x00\x00\x00\x00\x00\x00\x00\x00\x00\x02\x00", 64), "application/x-elf", "application/x-executable"},
		{"exe", pad("MZ\x90\x00\x03\x00\x00\x00", 64), "application/vnd.microsoft.portable-executable", "application/vnd.microsoft.portable-executable"},
		{"class", pad("\xCA\xFE\xBA\xBE\x00\x00\x00\x34", 64), "application/x-java-applet; charset=binary", "application/x-java-applet; charset=binary"},
		{"macho", pad("\xCF\xFA\xED\xFE\x07\x00\x00\x01", 64), "application/x-mach-binary", "application/x-mach-binary"},
		{"wasm", pad("\x00asm\x01\x00\x00\x00", 64), "application/wasm", "application/wasm"},
		{"sqlite", pad("SQLite format 3\x00", 64), "application/vnd.sqlite3", "application/vnd.sqlite3"},
		{"mdb", pad("\x00\x01\x00\x00Standard Jet DB\x00", 64), "application/x-msaccess", "application/x-msaccess"},
		{"ttf", pad("\x00\x01\x00\x00\x00\x0A\x00\x80", 64), "font/ttf", "font/ttf"},
		{"otf", pad("OTTO\x00\x0A", 64), "font/otf", "font/otf"},
		{"woff", pad("wOFF\x00\x01\x00\x00", 64), "font/woff", "font/woff"},
		{"flac", pad("fLaC\x00\x00\x00\x22", 64), "audio/flac", "audio/flac"},
		{"ogg", pad("OggS\x00\x02\x00\x00", 64), "application/ogg", "application/ogg"},
		{"mp3", pad("ID3\x04\x00\x00\x00\x00\x00\x00", 64), "audio/mpeg", "audio/mpeg"},
		{"wav", pad("RIFF\x24\x00\x00\x00WAVEfmt ", 64), "audio/wav", "audio/wav"},
		{"midi", pad("MThd\x00\x00\x00\x06", 64), "audio/midi", "audio/midi"},
		{"avi", pad("RIFF\x00\x00\x00\x00AVI LIST", 64), "video/x-msvideo", "video/x-msvideo"},
		{"flv", pad("FLV\x01\x05", 64), "video/x-flv", "video/x-flv"},
		{"mp4", ftypBox("isom", "isom", "mp41"), "video/mp4", "video/mp4"},
		{"quicktime", ftypBox("qt  ", "qt  "), "video/quicktime", "video/quicktime"},
		{"webm", ebmlHeader("webm"), "application/x-ebml", "video/webm"},
		{"lnk", pad("L\x00\x00\x00\x01\x14\x02\x00", 64), "application/x-ms-shortcut", "application/x-ms-shortcut"},
		{"tzif", pad("TZif2\x00", 64), "application/tzif", "application/tzif"},
		{"parquet", pad("PAR1\x15\x04", 64), "application/vnd.apache.parquet", "application/vnd.apache.parquet"},
		{"glb", pad("glTF\x02\x00\x00\x00", 64), "model/gltf-binary", "model/gltf-binary"},
		{"dicom", pad(string(make([]byte, 128))+"DICM", 140), "application/dicom", "application/dicom"},
		{"mobi", pad(string(make([]byte, 60))+"BOOKMOBI", 80), "application/x-mobipocket-ebook", "application/x-mobipocket-ebook"},
		{"djvu", pad("AT&TFORM\x00\x00\x00\x00DJVM", 64), "image/vnd.djvu", "image/vnd.djvu"},
	}
}

package format_test

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/ostafen/sniff/internal/format"
	"github.com/stretchr/testify/require"
)

type zipFile struct {
	name  string
	data  string
	extra []byte
}

// buildZip writes stored local file headers with known sizes and no central
// directory, as found at the head of most archives.
func buildZip(files ...zipFile) []byte {
	var buf bytes.Buffer
	for _, f := range files {
		hdr := format.ZipFileEntry{
			Version:          20,
			CompressedSize:   uint32(len(f.data)),
			UncompressedSize: uint32(len(f.data)),
			FilenameLength:   uint16(len(f.name)),
			ExtraLength:      uint16(len(f.extra)),
		}
		_ = binary.Write(&buf, binary.LittleEndian, format.ZipFileEntryHeader)
		_ = binary.Write(&buf, binary.LittleEndian, hdr)
		buf.WriteString(f.name)
		buf.Write(f.extra)
		buf.WriteString(f.data)
	}
	return buf.Bytes()
}

func TestIsZIP(t *testing.T) {
	require.True(t, format.IsZIP([]byte("PK\x03\x04")))
	require.True(t, format.IsZIP([]byte("PK\x05\x06")))
	require.True(t, format.IsZIP([]byte("PK\x07\x08")))
	require.False(t, format.IsZIP([]byte("PK\x01\x02")))
	require.False(t, format.IsZIP([]byte("PK")))

	for _, sig := range []uint32{format.ZipFileEntryHeader, format.ZipEndCentralDirHeader, format.ZipDataDescriptorHeader} {
		record := make([]byte, 22)
		binary.LittleEndian.PutUint32(record, sig)
		require.True(t, format.IsZIP(record), "%08x", sig)
	}
}

func TestAnalyzeZIP(t *testing.T) {
	cases := []struct {
		name  string
		files []zipFile
		want  format.ZipKind
	}{
		{
			name:  "docx",
			files: []zipFile{{name: "[Content_Types].xml", data: "<Types/>"}, {name: "_rels/.rels"}, {name: "word/document.xml"}},
			want:  format.ZipDOCX,
		},
		{
			name:  "docx with office entry first",
			files: []zipFile{{name: "word/document.xml", data: "<w:document/>"}},
			want:  format.ZipDOCX,
		},
		{
			name:  "xlsx",
			files: []zipFile{{name: "[Content_Types].xml"}, {name: "xl/workbook.xml"}},
			want:  format.ZipXLSX,
		},
		{
			name:  "pptx",
			files: []zipFile{{name: "_rels/.rels"}, {name: "ppt/presentation.xml"}},
			want:  format.ZipPPTX,
		},
		{
			name:  "vsdx",
			files: []zipFile{{name: "docProps/app.xml"}, {name: "visio/document.xml"}},
			want:  format.ZipVSDX,
		},
		{
			name:  "office folder without office layout",
			files: []zipFile{{name: "readme.txt"}, {name: "word/document.xml"}},
			want:  format.ZipGeneric,
		},
		{
			name:  "epub",
			files: []zipFile{{name: "mimetype", data: "application/epub+zip"}, {name: "META-INF/container.xml"}},
			want:  format.ZipEPUB,
		},
		{
			name:  "odt",
			files: []zipFile{{name: "mimetype", data: "application/vnd.oasis.opendocument.text"}, {name: "content.xml"}},
			want:  format.ZipODT,
		},
		{
			name:  "ott is an odt",
			files: []zipFile{{name: "mimetype", data: "application/vnd.oasis.opendocument.text-template"}},
			want:  format.ZipODT,
		},
		{
			name:  "ods",
			files: []zipFile{{name: "mimetype", data: "application/vnd.oasis.opendocument.spreadsheet"}},
			want:  format.ZipODS,
		},
		{
			name:  "odp",
			files: []zipFile{{name: "mimetype", data: "application/vnd.oasis.opendocument.presentation"}},
			want:  format.ZipODP,
		},
		{
			name:  "odg",
			files: []zipFile{{name: "mimetype", data: "application/vnd.oasis.opendocument.graphics"}},
			want:  format.ZipODG,
		},
		{
			name:  "odf",
			files: []zipFile{{name: "mimetype", data: "application/vnd.oasis.opendocument.formula"}},
			want:  format.ZipODF,
		},
		{
			name:  "odc",
			files: []zipFile{{name: "mimetype", data: "application/vnd.oasis.opendocument.chart"}},
			want:  format.ZipODC,
		},
		{
			name:  "sxc",
			files: []zipFile{{name: "mimetype", data: "application/vnd.sun.xml.calc"}},
			want:  format.ZipSXC,
		},
		{
			name:  "apk",
			files: []zipFile{{name: "AndroidManifest.xml"}, {name: "classes.dex"}},
			want:  format.ZipAPK,
		},
		{
			name:  "signed apk",
			files: []zipFile{{name: "META-INF/MANIFEST.MF"}, {name: "res/drawable/icon.png"}},
			want:  format.ZipAPK,
		},
		{
			name:  "jar",
			files: []zipFile{{name: "META-INF/MANIFEST.MF", data: "Manifest-Version: 1.0\n"}, {name: "Main.class"}},
			want:  format.ZipJAR,
		},
		{
			name:  "executable jar",
			files: []zipFile{{name: "Main.class", extra: []byte{0xFE, 0xCA, 0x00, 0x00}}},
			want:  format.ZipJAR,
		},
		{
			name:  "kmz",
			files: []zipFile{{name: "doc.kml", data: "<kml/>"}},
			want:  format.ZipKMZ,
		},
		{
			name:  "plain zip",
			files: []zipFile{{name: "hello.txt", data: "hello"}, {name: "world.txt", data: "world"}},
			want:  format.ZipGeneric,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, format.AnalyzeZIP(buildZip(tc.files...)))
		})
	}
}

func TestAnalyzeZIP_DataDescriptor(t *testing.T) {
	var buf bytes.Buffer

	w := zip.NewWriter(&buf)
	f, err := w.CreateHeader(&zip.FileHeader{Name: "mimetype", Method: zip.Store})
	require.NoError(t, err)
	_, err = f.Write([]byte("application/epub+zip"))
	require.NoError(t, err)

	f, err = w.Create("OEBPS/content.opf")
	require.NoError(t, err)
	_, err = f.Write([]byte("<package/>"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	require.Equal(t, format.ZipEPUB, format.AnalyzeZIP(buf.Bytes()))
	require.Equal(t, []byte("application/epub+zip"), format.ZipMimetype(buf.Bytes()))
}

func TestAnalyzeZIP_Deflated(t *testing.T) {
	var buf bytes.Buffer

	w := zip.NewWriter(&buf)
	for _, name := range []string{"[Content_Types].xml", "_rels/.rels", "xl/workbook.xml"} {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte("<?xml version=\"1.0\"?>"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	require.Equal(t, format.ZipXLSX, format.AnalyzeZIP(buf.Bytes()))
}

func TestZipMimetype(t *testing.T) {
	data := buildZip(zipFile{name: "mimetype", data: "application/vnd.oasis.opendocument.graphics-template"})
	require.Equal(t, []byte("application/vnd.oasis.opendocument.graphics-template"), format.ZipMimetype(data))

	data = buildZip(zipFile{name: "content.xml", data: "application/vnd.oasis.opendocument.text"})
	require.Nil(t, format.ZipMimetype(data))
}

func TestAnalyzeZIP_Truncated(t *testing.T) {
	data := buildZip(
		zipFile{name: "[Content_Types].xml", data: "<Types/>"},
		zipFile{name: "_rels/.rels", data: "<Relationships/>"},
		zipFile{name: "word/document.xml", data: "<w:document/>"},
	)

	for i := 0; i <= len(data); i++ {
		kind := format.AnalyzeZIP(data[:i])
		require.Contains(t, []format.ZipKind{format.ZipGeneric, format.ZipDOCX}, kind)
	}
	require.Equal(t, format.ZipDOCX, format.AnalyzeZIP(data))
}

func TestAnalyzeZIP_BogusSizes(t *testing.T) {
	data := buildZip(zipFile{name: "a.txt", data: "x"}, zipFile{name: "word/document.xml"})
	// compressed size and name length of the first entry point past the buffer
	binary.LittleEndian.PutUint32(data[18:], 0xFFFFFFFF)
	require.Equal(t, format.ZipGeneric, format.AnalyzeZIP(data))

	binary.LittleEndian.PutUint16(data[26:], 0xFFFF)
	require.Equal(t, format.ZipGeneric, format.AnalyzeZIP(data))
}

package mimetype_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/ostafen/sniff/pkg/mimetype"
	"github.com/stretchr/testify/require"
)

func TestRoot(t *testing.T) {
	root := mimetype.Root()

	require.True(t, root.IsRoot())
	require.Equal(t, "application/octet-stream", root.String())
	require.Nil(t, root.Parent())
	require.NotEmpty(t, root.Children())
	require.Equal(t, mimetype.Unknown, root.Kind())
}

func TestAll(t *testing.T) {
	all := mimetype.All()
	require.Greater(t, len(all), 150)
	require.Same(t, mimetype.Root(), all[0])

	for _, m := range all {
		require.NotEmpty(t, m.MIME())
		require.NotEmpty(t, m.Name(), m.MIME())
		if ext := m.Extension(); ext != "" {
			require.True(t, strings.HasPrefix(ext, "."), m.MIME())
		}
		for _, c := range m.Children() {
			if !m.IsRoot() {
				require.Same(t, m, c.Parent())
			}
		}
	}
}

func TestLookup(t *testing.T) {
	doc := mimetype.Lookup("application/msword")
	require.NotNil(t, doc)
	require.Equal(t, ".doc", doc.Extension())
	require.Equal(t, "application/x-ole-storage", doc.Parent().MIME())
	require.Equal(t, mimetype.Document, doc.Kind())

	html := mimetype.Lookup("TEXT/HTML")
	require.NotNil(t, html)
	require.Equal(t, "text/html; charset=utf-8", html.MIME())

	require.Equal(t, ".m4a", mimetype.Lookup("audio/x-m4a").Extension())
	require.Equal(t, ".mov", mimetype.Lookup("video/quicktime").Extension())
	require.Equal(t, "application/zip", mimetype.Lookup("application/x-zip-compressed").MIME())
	require.Equal(t, "UTF-8 text", mimetype.Lookup("text/plain; charset=utf-8").Name())
	require.Nil(t, mimetype.Lookup("application/x-does-not-exist"))
}

func TestLookupExtension(t *testing.T) {
	var mimes []string
	for _, m := range mimetype.LookupExtension("docx") {
		mimes = append(mimes, m.MIME())
	}
	require.Contains(t, mimes, "application/zip")
	require.Contains(t, mimes, "application/vnd.openxmlformats-officedocument.wordprocessingml.document")

	jpeg := mimetype.LookupExtension(".JPEG")
	require.Len(t, jpeg, 1)
	require.Equal(t, "image/jpeg", jpeg[0].MIME())

	require.Empty(t, mimetype.LookupExtension(".nope"))
}

func TestMIME_Is(t *testing.T) {
	gz := mimetype.Lookup("application/gzip")

	require.True(t, gz.Is("application/gzip"))
	require.True(t, gz.Is("application/x-gzip"))
	require.True(t, gz.Is(" Application/GZIP ; foo=bar"))
	require.False(t, gz.Is("application/zip"))

	require.True(t, gz.HasExtension("tgz"))
	require.True(t, gz.HasExtension(".GZ"))
	require.False(t, gz.HasExtension(""))
}

func TestEqualsAny(t *testing.T) {
	require.True(t, mimetype.EqualsAny("text/html; charset=utf-8", "application/json", "TEXT/HTML"))
	require.False(t, mimetype.EqualsAny("text/html", "text/plain"))
	require.False(t, mimetype.EqualsAny("text/html"))
}

func TestIsSupported(t *testing.T) {
	require.True(t, mimetype.IsSupported("application/vnd.ms-excel"))
	require.True(t, mimetype.IsSupported("application/json; charset=utf-16"))
	require.False(t, mimetype.IsSupported("application/x-unsupported"))

	require.True(t, mimetype.IsSupportedExtension("xlsx"))
	require.True(t, mimetype.IsSupportedExtension(".mkv"))
	require.False(t, mimetype.IsSupportedExtension(".unsupported"))
}

func TestMatch(t *testing.T) {
	png := pad("\x89PNG\r\n\x1A\n\x00\x00\x00\x0DIHDR", 64)
	xls := buildOLE(excelCLSID)

	require.True(t, mimetype.Match(xls, "application/vnd.ms-excel"))
	require.True(t, mimetype.Match(xls, "application/x-ole-storage"))
	require.False(t, mimetype.Match(xls, "application/msword"))
	require.False(t, mimetype.Match(png, "application/msword"))
	require.True(t, mimetype.Match(png, "image/png"))
	require.False(t, mimetype.Match(png, "application/x-unsupported"))

	require.True(t, mimetype.MatchExtension(png, "png"))
	require.True(t, mimetype.MatchExtension(xls, ".xls"))
	require.False(t, mimetype.MatchExtension(png, ".jpg"))

	docx := buildZip(zipFile{name: "word/document.xml"})
	require.True(t, mimetype.Match(docx, "application/vnd.openxmlformats-officedocument.wordprocessingml.document"))
	require.False(t, mimetype.Match(docx, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"))
}

func TestRegister(t *testing.T) {
	const mime = "application/x-sniff-test"
	test := func(buf []byte) bool {
		return bytes.HasPrefix(buf, []byte("SNIFF"))
	}

	require.False(t, mimetype.IsSupported(mime))
	mimetype.Register(mime, ".snf", test)
	mimetype.RegisterExtension("snf2", test)

	require.True(t, mimetype.IsSupported(mime))
	require.True(t, mimetype.IsSupportedExtension("snf"))
	require.True(t, mimetype.IsSupportedExtension(".snf2"))

	buf := []byte("SNIFF\x00\x01")
	require.True(t, mimetype.Match(buf, mime))
	require.True(t, mimetype.MatchExtension(buf, "snf"))
	require.True(t, mimetype.MatchExtension(buf, "snf2"))
	require.False(t, mimetype.Match([]byte("other"), mime))

	// the detection tree is left untouched
	require.True(t, mimetype.Detect(buf, mimetype.ReadLimit).IsRoot())
	require.Nil(t, mimetype.Lookup(mime))
}

func TestDetectReader(t *testing.T) {
	m, err := mimetype.DetectReader(bytes.NewReader([]byte("%PDF-1.4\n%...")), -1)
	require.NoError(t, err)
	require.Equal(t, "application/pdf", m.MIME())

	m, err = mimetype.DetectReader(bytes.NewReader(nil), mimetype.ReadLimit)
	require.NoError(t, err)
	require.True(t, m.IsRoot())

	_, err = mimetype.DetectReader(iotest.ErrReader(errors.New("boom")), mimetype.ReadLimit)
	require.Error(t, err)

	// only the first bytes are considered
	buf := append(bytes.Repeat([]byte("x"), 16), 0x00)
	m, err = mimetype.DetectReader(bytes.NewReader(buf), 16)
	require.NoError(t, err)
	require.Equal(t, "text/plain; charset=utf-8", m.MIME())
}

func TestDetectFile(t *testing.T) {
	dir := t.TempDir()

	write := func(name string, data []byte) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, data, 0o644))
		return path
	}

	large := write("large.pdf", append([]byte("%PDF-1.7\n"), bytes.Repeat([]byte{0x00}, 4*mimetype.ReadLimit)...))
	m, err := mimetype.DetectFile(large, mimetype.ReadLimit)
	require.NoError(t, err)
	require.Equal(t, "application/pdf", m.MIME())

	small := write("small.txt", []byte("hello"))
	m, err = mimetype.DetectFile(small, mimetype.ReadLimit)
	require.NoError(t, err)
	require.Equal(t, "text/plain; charset=utf-8", m.MIME())

	empty := write("empty", nil)
	m, err = mimetype.DetectFile(empty, mimetype.ReadLimit)
	require.NoError(t, err)
	require.True(t, m.IsRoot())

	_, err = mimetype.DetectFile(filepath.Join(dir, "missing"), mimetype.ReadLimit)
	require.ErrorIs(t, err, os.ErrNotExist)

	ok, err := mimetype.MatchFile(large, "application/pdf")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = mimetype.MatchFileExtension(small, "pdf")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMatchReader(t *testing.T) {
	ok, err := mimetype.MatchReader(bytes.NewReader(buildOLE(wordCLSID)), "application/msword")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = mimetype.MatchReaderExtension(bytes.NewReader(buildOLE(wordCLSID)), "doc")
	require.NoError(t, err)
	require.True(t, ok)
}

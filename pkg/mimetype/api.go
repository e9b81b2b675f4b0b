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
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ostafen/sniff/internal/mmap"
)

// ReadLimit is the default number of bytes inspected from the head of the
// input.
const ReadLimit = 3072

// Detect returns the most specific format matching the first maxLen bytes
// of buf. A negative maxLen inspects the whole buffer.
// The result is never nil: unknown content is application/octet-stream.
func Detect(buf []byte, maxLen int) *MIME {
	if maxLen >= 0 && len(buf) > maxLen {
		buf = buf[:maxLen]
	}
	t := getTree()
	return t.descend(rootIndex, newScope(buf))
}

// DetectBytes is Detect with the default read limit.
func DetectBytes(buf []byte) *MIME {
	return Detect(buf, ReadLimit)
}

// DetectReader reads at most maxLen bytes from r and detects their format.
// A negative maxLen uses ReadLimit. Reaching the end of r early is not an error.
func DetectReader(r io.Reader, maxLen int) (*MIME, error) {
	buf, err := readHead(r, maxLen)
	if err != nil {
		return nil, err
	}
	return Detect(buf, len(buf)), nil
}

// DetectFile detects the format of the file at path. The head of regular
// files larger than maxLen is memory mapped instead of being copied.
func DetectFile(path string, maxLen int) (*MIME, error) {
	var m *MIME
	err := withFileHead(path, maxLen, func(buf []byte) {
		m = Detect(buf, len(buf))
	})
	return m, err
}

func withFileHead(path string, maxLen int, fn func(buf []byte)) error {
	if maxLen < 0 {
		maxLen = ReadLimit
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %q: %w", path, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %q: %w", path, err)
	}

	// Files the kernel refuses to map are read instead.
	if fi.Mode().IsRegular() && maxLen > 0 && fi.Size() > int64(maxLen) {
		if region, err := mmap.MapHead(f, maxLen); err == nil {
			defer region.Close()

			fn(region.Data)
			return nil
		}
	}

	buf, err := readHead(f, maxLen)
	if err != nil {
		return fmt.Errorf("failed to read %q: %w", path, err)
	}
	fn(buf)
	return nil
}

func readHead(r io.Reader, maxLen int) ([]byte, error) {
	if maxLen < 0 {
		maxLen = ReadLimit
	}

	buf := make([]byte, maxLen)
	n, err := io.ReadFull(r, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, err
	}
	return buf[:n], nil
}

// Root returns the application/octet-stream format every detection starts from.
func Root() *MIME {
	return getTree().root()
}

// All returns every known format, depth first, starting from Root.
func All() []*MIME {
	return Root().Flatten()
}

// Lookup returns the format identified by mime. An exact match of the
// canonical type, parameters included, is preferred; otherwise parameters
// are ignored and aliases are considered. It returns nil for unknown types.
func Lookup(mime string) *MIME {
	return getTree().lookup(mime)
}

// LookupExtension returns the formats using ext as extension or extension
// alias, in tree order.
func LookupExtension(ext string) []*MIME {
	return getTree().lookupExtension(ext)
}

// EqualsAny reports whether mime is equal to any of types, ignoring
// parameters and case.
func EqualsAny(mime string, types ...string) bool {
	mime = baseMIME(mime)
	for _, t := range types {
		if mime == baseMIME(t) {
			return true
		}
	}
	return false
}

// IsSupported reports whether mime names a known or registered format.
func IsSupported(mime string) bool {
	return len(getTree().lookupAll(mime)) > 0 || len(custom.mimeTests(mime)) > 0
}

// IsSupportedExtension reports whether ext belongs to a known or registered
// format.
func IsSupportedExtension(ext string) bool {
	return len(getTree().lookupExtension(ext)) > 0 || len(custom.extTests(ext)) > 0
}

// Match reports whether the head of buf is a valid instance of mime. Every
// format registered under mime is tried, ancestors included, so that a Word
// document is never matched by a buffer which is not an OLE file.
func Match(buf []byte, mime string) bool {
	buf = buf[:min(len(buf), ReadLimit)]
	return matchAny(buf, getTree().lookupAll(mime), custom.mimeTests(mime))
}

// MatchExtension is like Match, for the formats using ext.
func MatchExtension(buf []byte, ext string) bool {
	buf = buf[:min(len(buf), ReadLimit)]
	return matchAny(buf, getTree().lookupExtension(ext), custom.extTests(ext))
}

func matchAny(buf []byte, formats []*MIME, tests []func([]byte) bool) bool {
	if len(formats) > 0 {
		s := newScope(buf)
		for _, m := range formats {
			if m.tree.matchChain(m.index, s) {
				return true
			}
		}
	}
	for _, test := range tests {
		if test(buf) {
			return true
		}
	}
	return false
}

// MatchReader reads the head of r and matches it against mime.
func MatchReader(r io.Reader, mime string) (bool, error) {
	buf, err := readHead(r, ReadLimit)
	if err != nil {
		return false, err
	}
	return Match(buf, mime), nil
}

// MatchReaderExtension reads the head of r and matches it against ext.
func MatchReaderExtension(r io.Reader, ext string) (bool, error) {
	buf, err := readHead(r, ReadLimit)
	if err != nil {
		return false, err
	}
	return MatchExtension(buf, ext), nil
}

// MatchFile matches the head of the file at path against mime.
func MatchFile(path, mime string) (bool, error) {
	var ok bool
	err := withFileHead(path, ReadLimit, func(buf []byte) {
		ok = Match(buf, mime)
	})
	return ok, err
}

// MatchFileExtension matches the head of the file at path against ext.
func MatchFileExtension(path, ext string) (bool, error) {
	var ok bool
	err := withFileHead(path, ReadLimit, func(buf []byte) {
		ok = MatchExtension(buf, ext)
	})
	return ok, err
}

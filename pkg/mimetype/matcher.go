package mimetype

import (
	"github.com/ostafen/sniff/internal/format"
)

// matcherKind selects how the test of a node is evaluated.
type matcherKind uint8

const (
	// byteTest runs a plain predicate over the buffer.
	byteTest matcherKind = iota
	// charsetTest compares the text/binary classification of the buffer.
	charsetTest
	// utf16Test runs a predicate over the UTF-8 rendition of a UTF-16 buffer.
	utf16Test
	zipTest
	oleTest
	isobmffTest
	ebmlTest
	tarTest
)

// containerTag marks the node owning a container: its test checks the outer
// magic instead of the analyzer outcome.
const containerTag = -1

type matcher struct {
	kind matcherKind
	test func([]byte) bool
	tag  int
}

func bytesMatcher(test func([]byte) bool) matcher {
	return matcher{kind: byteTest, test: test}
}

func charsetMatcher(c format.Charset) matcher {
	return matcher{kind: charsetTest, tag: int(c)}
}

func utf16Matcher(c format.Charset, test func([]byte) bool) matcher {
	return matcher{kind: utf16Test, tag: int(c), test: test}
}

func zipMatcher(k format.ZipKind) matcher {
	return matcher{kind: zipTest, tag: int(k)}
}

func oleMatcher(k format.OLEKind) matcher {
	return matcher{kind: oleTest, tag: int(k)}
}

func isobmffMatcher(k format.ISOBMFFKind) matcher {
	return matcher{kind: isobmffTest, tag: int(k)}
}

func ebmlMatcher(k format.EBMLKind) matcher {
	return matcher{kind: ebmlTest, tag: int(k)}
}

func tarMatcher() matcher {
	return matcher{kind: tarTest, tag: containerTag}
}

// scope holds the state of a single detection. Container analyzers and the
// charset classifier run at most once per scope, no matter how many nodes
// look at their outcome.
type scope struct {
	buf []byte

	zipDone bool
	zip     format.ZipKind

	oleDone bool
	ole     format.OLEKind

	isobmffDone bool
	isobmff     format.ISOBMFFKind

	ebmlDone bool
	ebml     format.EBMLKind

	charsetDone bool
	charset     format.Charset

	utf16Done bool
	utf16Text []byte
}

func newScope(buf []byte) *scope {
	return &scope{buf: buf}
}

func (s *scope) eval(m matcher) bool {
	switch m.kind {
	case byteTest:
		return m.test(s.buf)
	case charsetTest:
		return s.charsetOf() == format.Charset(m.tag)
	case utf16Test:
		if s.charsetOf() != format.Charset(m.tag) {
			return false
		}
		text := s.utf16()
		return text != nil && m.test(text)
	case zipTest:
		if m.tag == containerTag {
			return format.IsZIP(s.buf)
		}
		return s.zipKind() == format.ZipKind(m.tag)
	case oleTest:
		if m.tag == containerTag {
			return format.IsOLE(s.buf)
		}
		return s.oleKind() == format.OLEKind(m.tag)
	case isobmffTest:
		if m.tag == containerTag {
			return format.IsISOBMFF(s.buf) && !isQuickTime(s.buf)
		}
		return s.isobmffKind() == format.ISOBMFFKind(m.tag)
	case ebmlTest:
		if m.tag == containerTag {
			return format.IsEBML(s.buf)
		}
		return s.ebmlKind() == format.EBMLKind(m.tag)
	case tarTest:
		return format.IsTAR(s.buf)
	}
	return false
}

func (s *scope) zipKind() format.ZipKind {
	if !s.zipDone {
		s.zip, s.zipDone = format.AnalyzeZIP(s.buf), true
	}
	return s.zip
}

func (s *scope) oleKind() format.OLEKind {
	if !s.oleDone {
		s.ole, s.oleDone = format.AnalyzeOLE(s.buf), true
	}
	return s.ole
}

func (s *scope) isobmffKind() format.ISOBMFFKind {
	if !s.isobmffDone {
		s.isobmff, s.isobmffDone = format.AnalyzeISOBMFF(s.buf), true
	}
	return s.isobmff
}

func (s *scope) ebmlKind() format.EBMLKind {
	if !s.ebmlDone {
		s.ebml, s.ebmlDone = format.AnalyzeEBML(s.buf), true
	}
	return s.ebml
}

func (s *scope) charsetOf() format.Charset {
	if !s.charsetDone {
		s.charset, s.charsetDone = format.DetectCharset(s.buf), true
	}
	return s.charset
}

// utf16 decodes the buffer according to its byte order mark. It returns nil
// when the buffer is not valid UTF-16.
func (s *scope) utf16() []byte {
	if !s.utf16Done {
		s.utf16Done = true

		bigEndian := s.charsetOf() == format.CharsetUTF16BE
		if text, ok := format.DecodeUTF16(s.buf, bigEndian); ok {
			s.utf16Text = text
		}
	}
	return s.utf16Text
}

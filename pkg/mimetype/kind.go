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
	"strings"
)

// Kind is a set of coarse categories a file type belongs to.
type Kind uint32

const (
	Archive Kind = 1 << iota
	Video
	Audio
	Image
	Document
	Text
	Font
	Executable
	Application
	Model
	Database
	Spreadsheet
	Presentation

	Unknown Kind = 0
)

var kindNames = []struct {
	kind Kind
	name string
}{
	{Archive, "ARCHIVE"},
	{Video, "VIDEO"},
	{Audio, "AUDIO"},
	{Image, "IMAGE"},
	{Document, "DOCUMENT"},
	{Text, "TEXT"},
	{Font, "FONT"},
	{Executable, "EXECUTABLE"},
	{Application, "APPLICATION"},
	{Model, "MODEL"},
	{Database, "DATABASE"},
	{Spreadsheet, "SPREADSHEET"},
	{Presentation, "PRESENTATION"},
}

// ParseKind converts a single category name, as rendered by String, back
// into a Kind. Matching is case insensitive.
func ParseKind(s string) (Kind, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, kn := range kindNames {
		if kn.name == s {
			return kn.kind, true
		}
	}
	return Unknown, s == "UNKNOWN"
}

// Union returns the categories of both k and other.
func (k Kind) Union(other Kind) Kind {
	return k | other
}

// Contains reports whether every category of other is also in k.
func (k Kind) Contains(other Kind) bool {
	return k&other == other
}

func (k Kind) IsArchive() bool      { return k&Archive != 0 }
func (k Kind) IsVideo() bool        { return k&Video != 0 }
func (k Kind) IsAudio() bool        { return k&Audio != 0 }
func (k Kind) IsImage() bool        { return k&Image != 0 }
func (k Kind) IsDocument() bool     { return k&Document != 0 }
func (k Kind) IsText() bool         { return k&Text != 0 }
func (k Kind) IsFont() bool         { return k&Font != 0 }
func (k Kind) IsExecutable() bool   { return k&Executable != 0 }
func (k Kind) IsApplication() bool  { return k&Application != 0 }
func (k Kind) IsModel() bool        { return k&Model != 0 }
func (k Kind) IsDatabase() bool     { return k&Database != 0 }
func (k Kind) IsSpreadsheet() bool  { return k&Spreadsheet != 0 }
func (k Kind) IsPresentation() bool { return k&Presentation != 0 }

// Names returns the name of every category in k, in declaration order.
func (k Kind) Names() []string {
	var names []string
	for _, kn := range kindNames {
		if k&kn.kind != 0 {
			names = append(names, kn.name)
		}
	}
	return names
}

// String joins the category names with " | ". An empty set renders as UNKNOWN.
func (k Kind) String() string {
	names := k.Names()
	if len(names) == 0 {
		return "UNKNOWN"
	}
	return strings.Join(names, " | ")
}

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

// Package mimetype detects the format of a buffer by looking at its content.
//
// Formats are organized in a tree: a node is only tested after its parent
// matched, so the result of a detection is the deepest node reachable from
// the implicit application/octet-stream root.
package mimetype

import (
	"strings"
)

const noParent = -1

// MIME is a node of the detection tree. Values are created once, when the
// tree is built, and are never modified afterwards.
type MIME struct {
	mime       string
	name       string
	extension  string
	aliases    []string
	extAliases []string
	kind       Kind
	match      matcher

	tree     *tree
	index    int
	parent   int
	children []int
}

// String returns the canonical MIME type.
func (m *MIME) String() string {
	return m.mime
}

// MIME returns the canonical MIME type, parameters included.
func (m *MIME) MIME() string {
	return m.mime
}

// Name returns a human readable description of the format.
func (m *MIME) Name() string {
	return m.name
}

// Extension returns the usual file extension, leading dot included.
// Some formats have no extension.
func (m *MIME) Extension() string {
	return m.extension
}

func (m *MIME) Aliases() []string {
	return append([]string(nil), m.aliases...)
}

func (m *MIME) ExtensionAliases() []string {
	return append([]string(nil), m.extAliases...)
}

// Parent returns the more generic format m specializes, or nil when m is a
// root format.
func (m *MIME) Parent() *MIME {
	if m.parent == noParent || m.parent == rootIndex {
		return nil
	}
	return &m.tree.nodes[m.parent]
}

// Kind returns the categories of m together with those of its ancestors.
func (m *MIME) Kind() Kind {
	k := m.kind
	for p := m.Parent(); p != nil; p = p.Parent() {
		k |= p.kind
	}
	return k
}

// Is reports whether m is identified by mime, either through its canonical
// type or one of its aliases. Parameters such as charset are ignored.
func (m *MIME) Is(mime string) bool {
	expected := baseMIME(mime)
	if expected == baseMIME(m.mime) {
		return true
	}
	for _, alias := range m.aliases {
		if expected == baseMIME(alias) {
			return true
		}
	}
	return false
}

// HasExtension reports whether ext is the extension of m or one of its
// extension aliases.
func (m *MIME) HasExtension(ext string) bool {
	ext = normalizeExtension(ext)
	if ext == "" {
		return false
	}
	if strings.EqualFold(ext, m.extension) {
		return true
	}
	for _, alias := range m.extAliases {
		if strings.EqualFold(ext, alias) {
			return true
		}
	}
	return false
}

// Children returns the formats m can be specialized into, in priority order.
func (m *MIME) Children() []*MIME {
	children := make([]*MIME, 0, len(m.children))
	for _, idx := range m.children {
		children = append(children, &m.tree.nodes[idx])
	}
	return children
}

// Flatten returns m followed by all its descendants, depth first.
func (m *MIME) Flatten() []*MIME {
	out := []*MIME{m}
	for _, c := range m.Children() {
		out = append(out, c.Flatten()...)
	}
	return out
}

// Chain returns m followed by its ancestors, up to the root format.
func (m *MIME) Chain() []*MIME {
	var chain []*MIME
	for cur := m; cur != nil; cur = cur.Parent() {
		chain = append(chain, cur)
	}
	return chain
}

// IsRoot reports whether m is the implicit application/octet-stream root.
func (m *MIME) IsRoot() bool {
	return m.index == rootIndex
}

// Match reports whether buf is consistent with m, that is every format on
// the chain of m accepts it.
func (m *MIME) Match(buf []byte) bool {
	return m.tree.matchChain(m.index, newScope(buf))
}

// Detect specializes m as far as buf allows. The result is m itself when
// none of its children accepts buf; m is not tested.
func (m *MIME) Detect(buf []byte) *MIME {
	return m.tree.descend(m.index, newScope(buf))
}

func baseMIME(mime string) string {
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	return strings.ToLower(strings.TrimSpace(mime))
}

func normalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

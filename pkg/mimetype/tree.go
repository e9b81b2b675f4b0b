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

// rootIndex is the position of the application/octet-stream node, which is
// always the first node added to the arena.
const rootIndex = 0

// node is the declaration of a format, before it is flattened into the tree.
type node struct {
	mime       string
	name       string
	ext        string
	aliases    []string
	extAliases []string
	kind       Kind
	match      matcher
	children   []*node
}

func newMIME(mime, name, ext string, test func([]byte) bool, children ...*node) *node {
	return newContainer(mime, name, ext, bytesMatcher(test), children...)
}

func newContainer(mime, name, ext string, m matcher, children ...*node) *node {
	return &node{
		mime:     mime,
		name:     name,
		ext:      ext,
		match:    m,
		children: children,
	}
}

func (n *node) alias(aliases ...string) *node {
	n.aliases = append(n.aliases, aliases...)
	return n
}

func (n *node) extAlias(exts ...string) *node {
	n.extAliases = append(n.extAliases, exts...)
	return n
}

func (n *node) withKind(k Kind) *node {
	n.kind = k
	return n
}

// tree is the arena holding every format. Nodes refer to each other by
// index, and a MIME never outlives the tree it belongs to.
type tree struct {
	nodes []MIME

	byExact map[string]int
	byMIME  map[string][]int
	byExt   map[string][]int
}

func newTree(root *node) *tree {
	t := &tree{
		byExact: make(map[string]int),
		byMIME:  make(map[string][]int),
		byExt:   make(map[string][]int),
	}
	t.add(root, noParent)

	for i := range t.nodes {
		t.nodes[i].tree = t
	}
	return t
}

// add appends n and its descendants in preorder and returns the index of n.
func (t *tree) add(n *node, parent int) int {
	idx := len(t.nodes)
	t.nodes = append(t.nodes, MIME{
		mime:       n.mime,
		name:       n.name,
		extension:  n.ext,
		aliases:    n.aliases,
		extAliases: n.extAliases,
		kind:       n.kind,
		match:      n.match,
		index:      idx,
		parent:     parent,
	})

	exact := strings.ToLower(n.mime)
	if _, ok := t.byExact[exact]; !ok {
		t.byExact[exact] = idx
	}
	t.indexMIME(n.mime, idx)
	for _, alias := range n.aliases {
		t.indexMIME(alias, idx)
	}

	t.indexExt(n.ext, idx)
	for _, ext := range n.extAliases {
		t.indexExt(ext, idx)
	}

	children := make([]int, 0, len(n.children))
	for _, c := range n.children {
		children = append(children, t.add(c, idx))
	}
	t.nodes[idx].children = children

	return idx
}

func (t *tree) indexMIME(mime string, idx int) {
	key := baseMIME(mime)
	if key == "" {
		return
	}
	if ids := t.byMIME[key]; len(ids) == 0 || ids[len(ids)-1] != idx {
		t.byMIME[key] = append(ids, idx)
	}
}

func (t *tree) indexExt(ext string, idx int) {
	key := normalizeExtension(ext)
	if key == "" {
		return
	}
	if ids := t.byExt[key]; len(ids) == 0 || ids[len(ids)-1] != idx {
		t.byExt[key] = append(ids, idx)
	}
}

func (t *tree) root() *MIME {
	return &t.nodes[rootIndex]
}

// lookup returns the first node declared with exactly mime, falling back to
// the first node whose type or alias matches it once parameters are dropped.
func (t *tree) lookup(mime string) *MIME {
	if idx, ok := t.byExact[strings.ToLower(strings.TrimSpace(mime))]; ok {
		return &t.nodes[idx]
	}
	if ids := t.byMIME[baseMIME(mime)]; len(ids) > 0 {
		return &t.nodes[ids[0]]
	}
	return nil
}

func (t *tree) lookupAll(mime string) []*MIME {
	return t.resolve(t.byMIME[baseMIME(mime)])
}

func (t *tree) lookupExtension(ext string) []*MIME {
	return t.resolve(t.byExt[normalizeExtension(ext)])
}

func (t *tree) resolve(ids []int) []*MIME {
	if len(ids) == 0 {
		return nil
	}
	out := make([]*MIME, len(ids))
	for i, idx := range ids {
		out[i] = &t.nodes[idx]
	}
	return out
}

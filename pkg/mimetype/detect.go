package mimetype

// descend walks down from the node at idx, moving to the first child that
// accepts the buffer until none does. The node at idx itself is not tested.
func (t *tree) descend(idx int, s *scope) *MIME {
	for {
		next := noParent
		for _, child := range t.nodes[idx].children {
			if s.eval(t.nodes[child].match) {
				next = child
				break
			}
		}
		if next == noParent {
			return &t.nodes[idx]
		}
		idx = next
	}
}

// matchChain reports whether every node from the top level ancestor of idx
// down to idx accepts the buffer.
func (t *tree) matchChain(idx int, s *scope) bool {
	if idx == rootIndex {
		return true
	}

	var chain []int
	for cur := idx; cur != rootIndex && cur != noParent; cur = t.nodes[cur].parent {
		chain = append(chain, cur)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		if !s.eval(t.nodes[chain[i]].match) {
			return false
		}
	}
	return true
}

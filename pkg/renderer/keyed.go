package renderer

import (
	"github.com/vango-dev/rendr/pkg/vdom"
)

// patchKeyedChildren reconciles two child lists by key.
//
//  1. Patch the common prefix and the common suffix pairwise.
//  2. If only new nodes remain, mount them; if only old nodes remain,
//     unmount them.
//  3. Otherwise match the remaining old nodes to new positions by key,
//     unmounting those with no match, and record for each new position the
//     old index it came from (-1 for new nodes).
//  4. Walk the new range backwards, mounting new nodes and moving matched
//     nodes that are not on the longest increasing subsequence of old
//     indices. Nodes on that subsequence keep their relative order and are
//     never touched.
//
// Children without keys all share the nil key and are therefore matched
// positionally.
func (r *Renderer) patchKeyedChildren(c1, c2 []*vdom.VNode, container, parentAnchor Node) {
	j := 0
	oldEnd := len(c1) - 1
	newEnd := len(c2) - 1

	// anchorAfter returns the host node new nodes at position i go before.
	anchorAfter := func(i int) Node {
		for k := i + 1; k < len(c2); k++ {
			if n := r.firstHostNode(c2[k]); n != nil {
				return n
			}
		}
		return parentAnchor
	}

	// inPlace returns the host node currently following old child i. Old
	// children up to oldEnd are untouched; past it the suffix already lives
	// in c2. An empty fragment patched in place grows before this node.
	inPlace := func(i int) Node {
		for k := i + 1; k <= oldEnd; k++ {
			if n := r.firstHostNode(c1[k]); n != nil {
				return n
			}
		}
		return anchorAfter(newEnd)
	}

	for j <= oldEnd && j <= newEnd && sameKey(c1[j], c2[j]) {
		r.patch(c1[j], c2[j], container, inPlace(j))
		j++
	}
	for j <= oldEnd && j <= newEnd && sameKey(c1[oldEnd], c2[newEnd]) {
		r.patch(c1[oldEnd], c2[newEnd], container, inPlace(oldEnd))
		oldEnd--
		newEnd--
	}

	switch {
	case j > oldEnd:
		for i := j; i <= newEnd; i++ {
			r.patch(nil, c2[i], container, anchorAfter(newEnd))
		}

	case j > newEnd:
		for i := j; i <= oldEnd; i++ {
			r.unmount(c1[i], true)
		}

	default:
		newStart := j
		count := newEnd - newStart + 1
		source := make([]int, count)
		for i := range source {
			source[i] = -1
		}

		keyIndex := make(map[any]int, count)
		for i := newStart; i <= newEnd; i++ {
			keyIndex[c2[i].Key] = i
		}

		moved := false
		pos := 0
		patched := 0
		for i := j; i <= oldEnd; i++ {
			old := c1[i]
			if patched >= count {
				r.unmount(old, true)
				continue
			}
			k, ok := keyIndex[old.Key]
			if !ok || source[k-newStart] != -1 {
				r.unmount(old, true)
				continue
			}
			r.patch(old, c2[k], container, inPlace(i))
			patched++
			source[k-newStart] = i
			if k < pos {
				moved = true
			} else {
				pos = k
			}
		}

		var seq []int
		if moved {
			seq = LIS(source)
		}
		s := len(seq) - 1
		for i := count - 1; i >= 0; i-- {
			at := newStart + i
			node := c2[at]
			anchor := anchorAfter(at)
			switch {
			case source[i] == -1:
				r.patch(nil, node, container, anchor)
			case moved:
				if s < 0 || i != seq[s] {
					r.move(node, container, anchor)
				} else {
					s--
				}
			}
		}
	}
}

func sameKey(a, b *vdom.VNode) bool {
	return a.Key == b.Key
}

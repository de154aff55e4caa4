// Package compact is a pointer-based compacted binary trie used as a
// reference implementation of trie.Trie.
package compact

import (
	"StaticZFast/bits"
	"StaticZFast/errutil"
)

type node struct {
	// label holds the bits consumed by this node before it branches. The
	// branching bit itself is implied by the child taken.
	label       bits.BitString
	left, right *node
	key         bits.BitString
	leaf        bool
}

type Trie struct {
	root *node
	size int
}

// New sorts a copy of keys and builds the trie. It panics if the set is not
// prefix-free.
func New(keys []bits.BitString) *Trie {
	sorted := append([]bits.BitString(nil), keys...)
	bits.Sort(sorted)
	return &Trie{root: build(sorted, 0), size: len(sorted)}
}

func build(v []bits.BitString, ind uint32) *node {
	switch len(v) {
	case 0:
		return nil
	case 1:
		return &node{label: v[0].Substring(ind, v[0].Size()), key: v[0], leaf: true}
	}
	errutil.BugOn(ind >= v[0].Size(), "input is not prefix-free: %s, %s", v[0], v[1])

	mid := 0
	for mid < len(v) && !v[mid].At(ind) {
		mid++
	}
	if mid != 0 && mid != len(v) {
		return &node{
			left:  build(v[:mid], ind+1),
			right: build(v[mid:], ind+1),
		}
	}
	res := build(v, ind+1)
	res.label = res.label.PushFront(v[0].At(ind))
	return res
}

func (n *node) leftmost() bits.BitString {
	for !n.leaf {
		n = n.left
	}
	return n.key
}

func (n *node) rightmost() bits.BitString {
	for !n.leaf {
		n = n.right
	}
	return n.key
}

// match compares x from depth d against the label. It returns the depth after
// the label and the sign of x against the label when they diverge: 0 if x
// covers the whole label, -1 if x is smaller or ends inside it, 1 if larger.
func (n *node) match(x bits.BitString, d uint32) (uint32, int) {
	for i := uint32(0); i < n.label.Size(); i++ {
		if d+i == x.Size() {
			return d + i, -1
		}
		if xb, lb := x.At(d+i), n.label.At(i); xb != lb {
			if lb {
				return d + i, -1
			}
			return d + i, 1
		}
	}
	return d + n.label.Size(), 0
}

// succ returns the least key >= x in the subtree reached at depth d.
func (n *node) succ(x bits.BitString, d uint32) (bits.BitString, bool) {
	d, sign := n.match(x, d)
	switch {
	case sign < 0:
		return n.leftmost(), true
	case sign > 0:
		return bits.BitString{}, false
	}
	if n.leaf {
		if d == x.Size() {
			return n.key, true
		}
		return bits.BitString{}, false
	}
	if d == x.Size() {
		return n.leftmost(), true
	}
	if x.At(d) {
		return n.right.succ(x, d+1)
	}
	if s, ok := n.left.succ(x, d+1); ok {
		return s, true
	}
	return n.right.leftmost(), true
}

// pred returns the greatest key < x in the subtree reached at depth d.
func (n *node) pred(x bits.BitString, d uint32) (bits.BitString, bool) {
	d, sign := n.match(x, d)
	switch {
	case sign < 0:
		return bits.BitString{}, false
	case sign > 0:
		return n.rightmost(), true
	}
	if n.leaf {
		if d == x.Size() {
			return bits.BitString{}, false
		}
		return n.key, true
	}
	if d == x.Size() {
		return bits.BitString{}, false
	}
	if !x.At(d) {
		return n.left.pred(x, d+1)
	}
	if p, ok := n.right.pred(x, d+1); ok {
		return p, true
	}
	return n.left.rightmost(), true
}

func (t *Trie) PredQuery(x bits.BitString) (bits.BitString, bool) {
	if t.root == nil {
		return bits.BitString{}, false
	}
	return t.root.pred(x, 0)
}

func (t *Trie) SuccQuery(x bits.BitString) (bits.BitString, bool) {
	if t.root == nil {
		return bits.BitString{}, false
	}
	return t.root.succ(x, 0)
}

func (t *Trie) ExPrefQuery(x bits.BitString) bool {
	s, ok := t.SuccQuery(x)
	return ok && s.HasPrefix(x)
}

// ExRangeQuery holds iff the predecessor of y is greater than x.
func (t *Trie) ExRangeQuery(x, y bits.BitString) bool {
	if x.Compare(y) >= 0 {
		return false
	}
	p, ok := t.PredQuery(y)
	return ok && p.Compare(x) > 0
}

func (t *Trie) Len() int {
	return t.size
}

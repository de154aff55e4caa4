package zft

import (
	"StaticZFast/bits"
	"fmt"
)

// none marks a missing arena reference.
const none int32 = -1

type nodeKind uint8

const (
	leafNode nodeKind = iota
	internalNode
)

func (k nodeKind) String() string {
	if k == leafNode {
		return "leaf"
	}
	return "internal"
}

// node lives in the trie arena; every reference is an arena index.
//
// The node covers depths [lind, rind]: lind is where its incoming edge starts,
// rind is the length of its extent. Internal nodes branch on bit rind.
type node struct {
	kind nodeKind
	lind uint32
	rind uint32

	// internal nodes
	left, right         int32
	jumpLeft, jumpRight int32
	toLeaf              int32

	// leaves
	key        int32
	prev, next int32
	toInternal int32
}

func newLeaf(key int32, lind, rind uint32) node {
	return node{
		kind: leafNode, lind: lind, rind: rind,
		left: none, right: none, jumpLeft: none, jumpRight: none, toLeaf: none,
		key: key, prev: none, next: none, toInternal: none,
	}
}

func newInternal(lind, rind uint32) node {
	return node{
		kind: internalNode, lind: lind, rind: rind,
		left: none, right: none, jumpLeft: none, jumpRight: none, toLeaf: none,
		key: none, prev: none, next: none, toInternal: none,
	}
}

func (n *node) isLeaf() bool {
	return n.kind == leafNode
}

// handleLength is the fattest number in [lind, rind].
func (n *node) handleLength() uint32 {
	return uint32(bits.Fattest(uint64(n.rind), uint64(n.lind)))
}

func (n *node) child(bit bool) int32 {
	if bit {
		return n.right
	}
	return n.left
}

func (n *node) contains(depth uint64) bool {
	return uint64(n.lind) <= depth && depth <= uint64(n.rind)
}

func (n *node) String() string {
	if n.isLeaf() {
		return fmt.Sprintf("leaf{key: %d, lind: %d, rind: %d, prev: %d, next: %d}", n.key, n.lind, n.rind, n.prev, n.next)
	}
	return fmt.Sprintf("internal{lind: %d, rind: %d, left: %d, right: %d, jumpLeft: %d, jumpRight: %d, toLeaf: %d}",
		n.lind, n.rind, n.left, n.right, n.jumpLeft, n.jumpRight, n.toLeaf)
}

// stringOf returns the leaf string that materializes the extent of i.
func (t *ZFastTrie) stringOf(i int32) bits.BitString {
	n := &t.nodes[i]
	if n.isLeaf() {
		return t.keys[n.key]
	}
	return t.keys[t.nodes[n.toLeaf].key]
}

func (t *ZFastTrie) extent(i int32) bits.BitString {
	return t.stringOf(i).Prefix(int(t.nodes[i].rind))
}

func (t *ZFastTrie) handle(i int32) bits.BitString {
	return t.stringOf(i).Prefix(int(t.nodes[i].handleLength()))
}

// extentLCP is the length of the common prefix of x and the extent of i.
func (t *ZFastTrie) extentLCP(i int32, x bits.BitString) uint32 {
	return min(t.stringOf(i).GetLCPLength(x), t.nodes[i].rind)
}

// compareExtent orders x against the extent of i without materializing it.
func (t *ZFastTrie) compareExtent(x bits.BitString, i int32) int {
	rind := t.nodes[i].rind
	lcp := t.extentLCP(i, x)
	if lcp == min(x.Size(), rind) {
		switch {
		case x.Size() < rind:
			return -1
		case x.Size() > rind:
			return 1
		}
		return 0
	}
	if x.At(lcp) {
		return 1
	}
	return -1
}

// extentIsProperPrefix reports whether the extent of i is a proper prefix of x.
func (t *ZFastTrie) extentIsProperPrefix(i int32, x bits.BitString) bool {
	rind := t.nodes[i].rind
	return rind < x.Size() && t.extentLCP(i, x) == rind
}

// handleIsPrefix reports whether the handle of i is a prefix of x.
func (t *ZFastTrie) handleIsPrefix(i int32, x bits.BitString) bool {
	h := t.nodes[i].handleLength()
	return h <= x.Size() && t.stringOf(i).GetLCPLength(x) >= h
}

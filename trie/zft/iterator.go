package zft

import "StaticZFast/bits"

type NodeInfo struct {
	Extent bits.BitString
	IsLeaf bool
	Depth  int
}

// Iterator visits nodes in order: left subtree, node, right subtree.
type Iterator struct {
	trie     *ZFastTrie
	stack    []int32
	depths   []int
	started  bool
	finished bool
}

func NewIterator(t *ZFastTrie) *Iterator {
	return &Iterator{trie: t}
}

func (it *Iterator) pushLeft(i int32, depth int) {
	for i != none {
		it.stack = append(it.stack, i)
		it.depths = append(it.depths, depth)
		i = it.trie.nodes[i].left
		depth++
	}
}

func (it *Iterator) pop() {
	it.stack = it.stack[:len(it.stack)-1]
	it.depths = it.depths[:len(it.depths)-1]
}

func (it *Iterator) Next() bool {
	if it.finished {
		return false
	}
	if !it.started {
		it.started = true
		it.pushLeft(it.trie.root, 0)
	} else {
		top := it.stack[len(it.stack)-1]
		depth := it.depths[len(it.depths)-1]
		it.pop()
		it.pushLeft(it.trie.nodes[top].right, depth+1)
	}
	if len(it.stack) == 0 {
		it.finished = true
		return false
	}
	return true
}

func (it *Iterator) Node() *NodeInfo {
	if len(it.stack) == 0 {
		return nil
	}
	top := it.stack[len(it.stack)-1]
	return it.trie.nodeInfo(top, it.depths[len(it.depths)-1])
}

// SortedIterator traverses the trie in lexicographical order of extents
// (pre-order). The arena is laid out in the same order.
type SortedIterator struct {
	trie *ZFastTrie
	next int32
	curr int32
}

func NewSortedIterator(t *ZFastTrie) *SortedIterator {
	return &SortedIterator{trie: t, curr: none}
}

func (it *SortedIterator) Next() bool {
	if int(it.next) >= len(it.trie.nodes) {
		it.curr = none
		return false
	}
	it.curr = it.next
	it.next++
	return true
}

func (it *SortedIterator) Node() *NodeInfo {
	if it.curr == none {
		return nil
	}
	depth := 0
	for p := it.trie.parent(it.curr); p != none; p = it.trie.parent(p) {
		depth++
	}
	return it.trie.nodeInfo(it.curr, depth)
}

func (t *ZFastTrie) nodeInfo(i int32, depth int) *NodeInfo {
	return &NodeInfo{
		Extent: t.extent(i),
		IsLeaf: t.nodes[i].isLeaf(),
		Depth:  depth,
	}
}

// parent finds the parent of i by descending from the root along its extent.
func (t *ZFastTrie) parent(i int32) int32 {
	if i == t.root {
		return none
	}
	s := t.stringOf(i)
	lind := t.nodes[i].lind
	cur := t.root
	for {
		n := &t.nodes[cur]
		next := n.child(s.At(n.rind))
		if t.nodes[next].lind == lind {
			return cur
		}
		cur = next
	}
}

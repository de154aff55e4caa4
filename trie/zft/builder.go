package zft

import (
	"StaticZFast/bits"
	"StaticZFast/errutil"
	"math"
	mbits "math/bits"
	"sort"
)

// Build constructs a z-fast trie over keys, which may come in any order. It
// panics if the keys are not distinct or not prefix-free; errors only come
// from the handle index running out of attempts.
func Build(keys []bits.BitString, opts ...Option) (*ZFastTrie, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	errutil.BugOn(o.MaxAttempts <= 0, "max attempts must be positive, got %d", o.MaxAttempts)

	sorted := append([]bits.BitString(nil), keys...)
	bits.Sort(sorted)
	idx, ok := bits.IsPrefixFree(sorted)
	errutil.BugOn(!ok, "input is not prefix-free: %s, %s", elem(sorted, idx-1), elem(sorted, idx))

	t := &ZFastTrie{
		keys:      sorted,
		root:      none,
		indexKind: o.Index,
		nodes:     make([]node, 0, max(2*len(sorted)-1, 0)),
	}
	if len(sorted) > 0 {
		b := &treeBuilder{t: t, lastLeaf: none}
		t.root = b.build(0, int32(len(sorted)), 0)
		t.precalcJumps()
	}

	handles, ids := t.collectHandles()
	index, err := buildIndex(handles, ids, o)
	if err != nil {
		return nil, err
	}
	t.index = index
	o.logf("built %s trie: %d keys, %d nodes, %d handles, index attempts %d",
		o.Index, len(sorted), len(t.nodes), len(handles), index.attempts())
	return t, nil
}

// NewPlain builds a trie whose handle index is a hash map.
func NewPlain(keys []bits.BitString, opts ...Option) (*ZFastTrie, error) {
	return Build(keys, append([]Option{WithIndex(PlainIndex)}, opts...)...)
}

// NewSuccinct builds a trie whose handle index is a minimal perfect hash
// dictionary.
func NewSuccinct(keys []bits.BitString, opts ...Option) (*ZFastTrie, error) {
	return Build(keys, append([]Option{WithIndex(SuccinctIndex)}, opts...)...)
}

// BuildFromIterator drains iter, which must yield sorted prefix-free keys.
func BuildFromIterator(iter bits.BitStringIterator, opts ...Option) (*ZFastTrie, error) {
	keys, err := bits.Collect(bits.NewCheckedSortedIterator(iter))
	if err != nil {
		return nil, err
	}
	return Build(keys, opts...)
}

func elem(keys []bits.BitString, i int) bits.BitString {
	if i < 0 || i >= len(keys) {
		return bits.BitString{}
	}
	return keys[i]
}

type treeBuilder struct {
	t        *ZFastTrie
	lastLeaf int32
}

func (b *treeBuilder) add(n node) int32 {
	b.t.nodes = append(b.t.nodes, n)
	return int32(len(b.t.nodes) - 1)
}

// build creates the subtree over keys [l, r) whose incoming edge starts at
// depth ind. Chains of single children are skipped by branching directly at
// the common prefix of the first and last key. Leaves are created left to
// right and threaded on the way.
func (b *treeBuilder) build(l, r int32, ind uint32) int32 {
	keys := b.t.keys
	if r-l == 1 {
		leaf := b.add(newLeaf(l, ind, keys[l].Size()))
		if b.lastLeaf != none {
			b.t.nodes[b.lastLeaf].next = leaf
			b.t.nodes[leaf].prev = b.lastLeaf
		}
		b.lastLeaf = leaf
		return leaf
	}

	split := keys[l].GetLCPLength(keys[r-1])
	errutil.BugOn(split >= keys[l].Size(), "input is not prefix-free: %s, %s", keys[l], keys[r-1])

	mid := l + int32(sort.Search(int(r-l), func(i int) bool {
		return keys[l+int32(i)].At(split)
	}))
	errutil.BugOn(mid == l || mid == r, "no branching at depth %d in [%d, %d)", split, l, r)

	self := b.add(newInternal(ind, split))
	left := b.build(l, mid, split+1)
	toLeaf := b.lastLeaf
	right := b.build(mid, r, split+1)

	n := &b.t.nodes[self]
	n.left, n.right, n.toLeaf = left, right, toLeaf
	b.t.nodes[toLeaf].toInternal = self
	return self
}

// jumpTarget is the depth a jump pointer of n aims for: the next fattest
// number after the handle length, or infinity for the root's range.
func jumpTarget(n *node) uint64 {
	k := uint64(n.handleLength())
	if k == 0 {
		return math.MaxUint64
	}
	return k + uint64(1)<<mbits.TrailingZeros64(k)
}

// kth walks from start along one side until it reaches a node whose range
// holds target, or a leaf.
func (t *ZFastTrie) kth(start int32, target uint64, right bool) int32 {
	cur := start
	for {
		n := &t.nodes[cur]
		if n.contains(target) || n.isLeaf() {
			return cur
		}
		cur = n.child(right)
	}
}

func (t *ZFastTrie) precalcJumps() {
	for i := range t.nodes {
		n := &t.nodes[i]
		if n.isLeaf() {
			continue
		}
		target := jumpTarget(n)
		n.jumpLeft = t.kth(n.left, target, false)
		n.jumpRight = t.kth(n.right, target, true)
	}
}

// collectHandles lists the handle of every internal node with its index.
func (t *ZFastTrie) collectHandles() ([]bits.BitString, []int32) {
	var handles []bits.BitString
	var ids []int32
	for i := range t.nodes {
		if t.nodes[i].isLeaf() {
			continue
		}
		handles = append(handles, t.handle(int32(i)))
		ids = append(ids, int32(i))
	}
	return handles, ids
}

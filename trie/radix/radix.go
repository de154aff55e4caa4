// Package radix implements trie.Trie on top of an immutable radix tree, one
// byte per bit so that byte order matches bit order.
package radix

import (
	"StaticZFast/bits"
	"StaticZFast/errutil"
	"bytes"

	iradix "github.com/hashicorp/go-immutable-radix"
)

type Trie struct {
	tree *iradix.Tree
}

func radixKey(x bits.BitString) []byte {
	k := make([]byte, x.Size())
	for i := range k {
		k[i] = '0'
		if x.At(uint32(i)) {
			k[i] = '1'
		}
	}
	return k
}

// New inserts every key in a single transaction. It panics if the set is not
// prefix-free.
func New(keys []bits.BitString) *Trie {
	sorted := append([]bits.BitString(nil), keys...)
	bits.Sort(sorted)
	idx, ok := bits.IsPrefixFree(sorted)
	errutil.BugOn(!ok, "input is not prefix-free at index %d", idx)

	txn := iradix.New().Txn()
	for _, k := range sorted {
		txn.Insert(radixKey(k), k)
	}
	return &Trie{tree: txn.Commit()}
}

func (t *Trie) PredQuery(x bits.BitString) (bits.BitString, bool) {
	key := radixKey(x)
	it := t.tree.Root().ReverseIterator()
	it.SeekReverseLowerBound(key)
	for {
		k, v, ok := it.Previous()
		if !ok {
			return bits.BitString{}, false
		}
		if !bytes.Equal(k, key) {
			return v.(bits.BitString), true
		}
	}
}

func (t *Trie) SuccQuery(x bits.BitString) (bits.BitString, bool) {
	it := t.tree.Root().Iterator()
	it.SeekLowerBound(radixKey(x))
	_, v, ok := it.Next()
	if !ok {
		return bits.BitString{}, false
	}
	return v.(bits.BitString), true
}

func (t *Trie) ExPrefQuery(x bits.BitString) bool {
	it := t.tree.Root().Iterator()
	it.SeekPrefix(radixKey(x))
	_, _, ok := it.Next()
	return ok
}

func (t *Trie) ExRangeQuery(x, y bits.BitString) bool {
	if x.Compare(y) >= 0 {
		return false
	}
	lo := radixKey(x)
	it := t.tree.Root().Iterator()
	it.SeekLowerBound(lo)
	for {
		k, v, ok := it.Next()
		if !ok {
			return false
		}
		if bytes.Equal(k, lo) {
			continue
		}
		return v.(bits.BitString).Compare(y) < 0
	}
}

func (t *Trie) Len() int {
	return t.tree.Len()
}

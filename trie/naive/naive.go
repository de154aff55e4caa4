// Package naive is the sorted-slice reference implementation of trie.Trie.
package naive

import (
	"StaticZFast/bits"
	"StaticZFast/errutil"
	"sort"
)

type Trie struct {
	keys []bits.BitString
}

// New sorts a copy of keys. It panics if the set is not prefix-free.
func New(keys []bits.BitString) *Trie {
	sorted := append([]bits.BitString(nil), keys...)
	bits.Sort(sorted)
	idx, ok := bits.IsPrefixFree(sorted)
	errutil.BugOn(!ok, "input is not prefix-free at %d: %s, %s", idx, elem(sorted, idx-1), elem(sorted, idx))
	return &Trie{keys: sorted}
}

func elem(keys []bits.BitString, i int) bits.BitString {
	if i < 0 || i >= len(keys) {
		return bits.BitString{}
	}
	return keys[i]
}

// lowerBound is the first index whose key is >= x.
func (t *Trie) lowerBound(x bits.BitString) int {
	return sort.Search(len(t.keys), func(i int) bool {
		return t.keys[i].Compare(x) >= 0
	})
}

// upperBound is the first index whose key is > x.
func (t *Trie) upperBound(x bits.BitString) int {
	return sort.Search(len(t.keys), func(i int) bool {
		return t.keys[i].Compare(x) > 0
	})
}

func (t *Trie) PredQuery(x bits.BitString) (bits.BitString, bool) {
	if i := t.lowerBound(x); i > 0 {
		return t.keys[i-1], true
	}
	return bits.BitString{}, false
}

func (t *Trie) SuccQuery(x bits.BitString) (bits.BitString, bool) {
	if i := t.lowerBound(x); i < len(t.keys) {
		return t.keys[i], true
	}
	return bits.BitString{}, false
}

func (t *Trie) ExPrefQuery(x bits.BitString) bool {
	s, ok := t.SuccQuery(x)
	return ok && s.HasPrefix(x)
}

func (t *Trie) ExRangeQuery(x, y bits.BitString) bool {
	if x.Compare(y) >= 0 {
		return false
	}
	i := t.upperBound(x)
	return i < len(t.keys) && t.keys[i].Compare(y) < 0
}

func (t *Trie) Len() int {
	return len(t.keys)
}

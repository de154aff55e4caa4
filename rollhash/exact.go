package rollhash

import (
	"StaticZFast/bits"
	"StaticZFast/errutil"
)

// Exact is the identity prefix hash: the digest of a prefix is the prefix
// itself. Two digests are equal iff the prefixes are, so it is the reference
// that Hash digests are checked against. Prefix digests cost O(k).
type Exact struct{}

func (Exact) Hash(s bits.BitString) bits.BitString {
	return s
}

func (Exact) SlowPrefixHash(s bits.BitString, k uint32) bits.BitString {
	errutil.BugOn(k > s.Size(), "prefix length %d exceeds string length %d", k, s.Size())
	return s.Prefix(int(k))
}

// ComputeState has nothing to precompute.
func (Exact) ComputeState(bits.BitString) struct{} {
	return struct{}{}
}

func (e Exact) FastPrefixHash(s bits.BitString, _ struct{}, k uint32) bits.BitString {
	return e.SlowPrefixHash(s, k)
}

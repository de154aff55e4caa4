package rank

import (
	"StaticZFast/errutil"
	mbits "math/bits"
)

// BitVector is a fixed-length bit array.
type BitVector struct {
	words []uint64
	n     int
}

func NewBitVector(n int) *BitVector {
	return &BitVector{words: make([]uint64, (n+63)/64), n: n}
}

func (bv *BitVector) Len() int {
	return bv.n
}

func (bv *BitVector) Set(i int, v bool) {
	errutil.BugOn(i < 0 || i >= bv.n, "bit index %d out of range [0, %d)", i, bv.n)
	if v {
		bv.words[i/64] |= uint64(1) << (i % 64)
	} else {
		bv.words[i/64] &^= uint64(1) << (i % 64)
	}
}

func (bv *BitVector) Get(i int) bool {
	errutil.BugOn(i < 0 || i >= bv.n, "bit index %d out of range [0, %d)", i, bv.n)
	return bv.words[i/64]&(uint64(1)<<(i%64)) != 0
}

func (bv *BitVector) word(i int) uint64 {
	if i < 0 || i >= len(bv.words) {
		return 0
	}
	return bv.words[i]
}

// Load returns bits [l, r) as an integer, bit l lowest. Positions past the
// end read as zero, r-l must not exceed 64.
func (bv *BitVector) Load(l, r int) uint64 {
	errutil.BugOn(l < 0 || r < l || r-l > 64, "bad load range [%d, %d)", l, r)
	if l == r {
		return 0
	}
	shift := uint(l % 64)
	val := bv.word(l/64) >> shift
	if shift != 0 {
		val |= bv.word(l/64+1) << (64 - shift)
	}
	return val & widthMask(r-l)
}

// Ones counts set bits.
func (bv *BitVector) Ones() int {
	total := 0
	for _, w := range bv.words {
		total += mbits.OnesCount64(w)
	}
	return total
}

func (bv *BitVector) ByteSize() int {
	return len(bv.words)*8 + 16
}

// Or returns a new vector holding a|b, as long as the longer input.
func Or(a, b *BitVector) *BitVector {
	n := a.n
	if b.n > n {
		n = b.n
	}
	res := NewBitVector(n)
	for i := range res.words {
		res.words[i] = a.word(i) | b.word(i)
	}
	return res
}

func widthMask(width int) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}
	return uint64(1)<<width - 1
}

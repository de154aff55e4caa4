package rank

import mbits "math/bits"

// Naive keeps no auxiliary data and scans the vectors on every query.
type Naive struct{}

func (*Naive) Build(a, b *BitVector) {}

func (*Naive) Rank(i int, a, b *BitVector) int {
	res := 0
	full := i / 64
	for w := 0; w < full; w++ {
		res += mbits.OnesCount64(a.word(w) | b.word(w))
	}
	if rem := i % 64; rem != 0 {
		res += mbits.OnesCount64((a.word(full) | b.word(full)) & widthMask(rem))
	}
	return res
}

func (*Naive) ByteSize() int {
	return 0
}

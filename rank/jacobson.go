package rank

import "math"

// Jacobson is the classic two-level rank index: absolute ranks every
// superblock, ranks relative to the superblock every block, and a table of
// in-block ranks for every possible block pattern.
type Jacobson struct {
	n          int
	blockDim   int
	superDim   int
	superRanks packedInts
	blockRanks packedInts
	patterns   packedInts
}

func log2Ceil(x float64) int {
	return int(math.Ceil(math.Log2(x)))
}

func (j *Jacobson) Build(a, b *BitVector) {
	seq := Or(a, b)
	j.n = seq.Len() + 1
	n := float64(j.n)

	j.blockDim = int(math.Ceil(0.5 * math.Log2(n)))
	if j.blockDim < 1 {
		j.blockDim = 1
	}
	j.superDim = int(math.Ceil(math.Log2(n) * math.Log2(n)))
	if j.superDim < j.blockDim {
		j.superDim = j.blockDim
	}
	for j.superDim%j.blockDim != 0 {
		j.superDim++
	}

	blockNum := (j.n + j.blockDim - 1) / j.blockDim
	superNum := (j.n + j.superDim - 1) / j.superDim

	superVals := make([]uint64, superNum)
	blockVals := make([]uint64, blockNum)
	cur := uint64(0)
	for pos := 0; pos < j.n; pos++ {
		if pos%j.superDim == 0 {
			superVals[pos/j.superDim] = cur
		}
		if pos%j.blockDim == 0 {
			blockVals[pos/j.blockDim] = cur - superVals[pos/j.superDim]
		}
		if pos < seq.Len() && seq.Get(pos) {
			cur++
		}
	}

	j.superRanks = packBits(superVals, max(widthFor(uint64(j.n-1)), log2Ceil(n)))
	j.blockRanks = packBits(blockVals, max(widthFor(uint64(j.superDim)), log2Ceil(float64(j.superDim))))

	patternNum := 1 << j.blockDim
	patternVals := make([]uint64, 0, patternNum*j.blockDim)
	for p := 0; p < patternNum; p++ {
		patternVals = appendRankList(patternVals, uint64(p), j.blockDim)
	}
	j.patterns = packBits(patternVals, max(widthFor(uint64(j.blockDim)), log2Ceil(float64(j.blockDim))))
}

// appendRankList appends, for every offset of a size-bit pattern, the number
// of set bits before it.
func appendRankList(dst []uint64, pattern uint64, size int) []uint64 {
	cur := uint64(0)
	for k := 0; k < size; k++ {
		dst = append(dst, cur)
		cur += pattern & 1
		pattern >>= 1
	}
	return dst
}

func (j *Jacobson) Rank(i int, a, b *BitVector) int {
	l := i - i%j.blockDim
	pattern := a.Load(l, l+j.blockDim) | b.Load(l, l+j.blockDim)
	return int(j.superRanks.unpackBit(i/j.superDim) +
		j.blockRanks.unpackBit(i/j.blockDim) +
		j.patterns.unpackBit(int(pattern)*j.blockDim+i%j.blockDim))
}

func (j *Jacobson) ByteSize() int {
	return j.superRanks.ByteSize() + j.blockRanks.ByteSize() + j.patterns.ByteSize() + 24
}

// Dims reports the block and superblock sizes chosen by Build.
func (j *Jacobson) Dims() (block, super int) {
	return j.blockDim, j.superDim
}

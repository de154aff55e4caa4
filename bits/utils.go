package bits

import "math/bits"

// MostSignificantBit returns the index of the most significant bit, -1 for zero.
func MostSignificantBit(x uint64) int {
	if x == 0 {
		return -1
	}
	return 63 - bits.LeadingZeros64(x)
}

// TwoFattest returns the fattest number in (a, b]: the one with the most
// trailing zeros. Returns 0 for an empty range.
func TwoFattest(a uint64, b uint64) uint64 {
	if a >= b {
		return 0
	}
	msb := MostSignificantBit(a ^ b)
	return ((^uint64(0)) << uint(msb)) & b
}

// Fattest returns the fattest number in [lind, rind]. A range starting at 0
// always yields 0, which is how the root gets an empty handle.
func Fattest(rind, lind uint64) uint64 {
	if lind == 0 || lind > rind {
		return 0
	}
	return TwoFattest(lind-1, rind)
}

// SearchMask is the first mask of a fat binary search over [0, b]: all bits
// at or above the smallest power of two greater than b.
func SearchMask(b uint64) uint64 {
	return ^(nextPow2(b+1) - 1)
}

func nextPow2(x uint64) uint64 {
	if x <= 1 {
		return 1
	}
	return uint64(1) << bits.Len64(x-1)
}

func trailingZeros(n uint64) uint64 {
	if n == 0 {
		return 64
	}
	return uint64(bits.TrailingZeros64(n))
}

// findFattestMath is the brute-force reference for Fattest.
func findFattestMath(lind uint64, rind uint64) uint64 {
	best := lind
	for i := lind; i <= rind; i++ {
		if trailingZeros(i) > trailingZeros(best) {
			best = i
		}
	}
	return best
}

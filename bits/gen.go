package bits

import (
	"math/rand"
)

const benchmarkCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

// GenerateBitString returns a random string of exactly bitLen bits.
func GenerateBitString(bitLen int, r *rand.Rand) BitString {
	if bitLen <= 0 {
		return BitString{}
	}
	if bitLen <= 64 {
		return NewFromUint64(r.Uint64(), uint32(bitLen))
	}
	byteLen := (bitLen + 7) / 8
	b := make([]byte, byteLen)
	for j := range b {
		b[j] = byte(r.Intn(256))
	}
	return NewFromDataAndSize(b, uint32(bitLen))
}

// GenerateTextBitString draws bytes from a small alphanumeric charset, so the
// strings share long runs of bits the way real text keys do.
func GenerateTextBitString(byteLen int, r *rand.Rand) BitString {
	b := make([]byte, byteLen)
	for j := range b {
		b[j] = benchmarkCharset[r.Intn(len(benchmarkCharset))]
	}
	return NewFromText(string(b))
}

// GenerateRandomBitStrings returns up to n sorted distinct strings of bitLen
// bits. Equal-length distinct strings are always prefix-free.
func GenerateRandomBitStrings(n, bitLen int, r *rand.Rand) []BitString {
	if bitLen <= 0 {
		bitLen = 1
	}
	keys := make([]BitString, n)
	for i := 0; i < n; i++ {
		keys[i] = GenerateBitString(bitLen, r)
	}
	Sort(keys)
	return Dedup(keys)
}

// GeneratePrefixFree returns a sorted prefix-free set built from n random
// strings with lengths in [minLen, maxLen]; strings that extend an earlier
// one are dropped.
func GeneratePrefixFree(n, minLen, maxLen int, r *rand.Rand) []BitString {
	if minLen <= 0 {
		minLen = 1
	}
	if maxLen < minLen {
		maxLen = minLen
	}
	keys := make([]BitString, n)
	for i := range keys {
		keys[i] = GenerateBitString(minLen+r.Intn(maxLen-minLen+1), r)
	}
	Sort(keys)

	res := keys[:0]
	for _, k := range keys {
		if len(res) > 0 && k.HasPrefix(res[len(res)-1]) {
			continue
		}
		res = append(res, k)
	}
	return res
}

package bits

import (
	"StaticZFast/errutil"
	"encoding/binary"
	"math/bits"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// BitString is an immutable sequence of bits packed into 64-bit words.
// Bit i lives in word i/64 at position i%64. Bits past Size() are always zero.
type BitString struct {
	data     []uint64
	sizeBits uint32
}

func wordsFor(sizeBits uint32) uint32 {
	return (sizeBits + 63) / 64
}

func NewBitString(sizeBits uint32) BitString {
	return BitString{
		data:     make([]uint64, wordsFor(sizeBits)),
		sizeBits: sizeBits,
	}
}

// NewFromBinary parses a string of '0' and '1' characters.
func NewFromBinary(text string) BitString {
	for _, r := range text {
		errutil.BugOn(r != '0' && r != '1', "invalid string format, %q", text)
	}

	size := len(text)
	if size == 0 {
		return BitString{}
	}

	bs := NewBitString(uint32(size))
	for i := 0; i < size; i++ {
		if text[i] == '1' {
			bs.data[i/64] |= uint64(1) << (i % 64)
		}
	}
	return bs
}

// NewFromText uses 8 bits per byte, least significant bit first.
func NewFromText(text string) BitString {
	return NewFromDataAndSize([]byte(text), uint32(len(text))*8)
}

// NewFromUint64 takes the low length bits of value, least significant first.
func NewFromUint64(value uint64, length uint32) BitString {
	errutil.BugOn(length > 64, "length must be between 0 and 64, got %d", length)
	if length == 0 {
		return BitString{}
	}
	mask := ^uint64(0)
	if length < 64 {
		mask = (uint64(1) << length) - 1
	}
	return BitString{
		data:     []uint64{value & mask},
		sizeBits: length,
	}
}

func NewFromDataAndSize(data []byte, size uint32) BitString {
	if size == 0 {
		return BitString{}
	}

	numBytes := (size + 7) / 8
	errutil.BugOn(uint32(len(data)) < numBytes, "data length is insufficient for the specified size")

	bs := NewBitString(size)
	for i := uint32(0); i < numBytes; i++ {
		bs.data[i/8] |= uint64(data[i]) << ((i % 8) * 8)
	}
	bs.maskTail()
	return bs
}

func (bs *BitString) maskTail() {
	if bs.sizeBits%64 != 0 {
		last := len(bs.data) - 1
		bs.data[last] &= (uint64(1) << (bs.sizeBits % 64)) - 1
	}
}

func (bs BitString) Size() uint32 {
	return bs.sizeBits
}

func (bs BitString) IsEmpty() bool {
	return bs.sizeBits == 0
}

func (bs BitString) At(index uint32) bool {
	errutil.BugOn(index >= bs.sizeBits, "index out of bounds index: %d >= len: %d", index, bs.sizeBits)
	return (bs.data[index/64] & (uint64(1) << (index % 64))) != 0
}

// Word returns the i-th 64-bit word, zero past the end.
func (bs BitString) Word(i uint32) uint64 {
	if i >= uint32(len(bs.data)) {
		return 0
	}
	return bs.data[i]
}

// Chunk32 returns the i-th 32-bit chunk (bits [32i, 32i+32)).
func (bs BitString) Chunk32(i uint32) uint32 {
	return uint32(bs.Word(i/2) >> ((i % 2) * 32))
}

func (bs BitString) Equal(other BitString) bool {
	if bs.sizeBits != other.sizeBits {
		return false
	}
	for i := range bs.data {
		if bs.data[i] != other.data[i] {
			return false
		}
	}
	return true
}

// GetLCPLength returns the length of the longest common prefix.
func (bs BitString) GetLCPLength(other BitString) uint32 {
	minLengthBits := bs.sizeBits
	if other.sizeBits < minLengthBits {
		minLengthBits = other.sizeBits
	}

	minWords := wordsFor(minLengthBits)
	for i := uint32(0); i < minWords; i++ {
		if xor := bs.data[i] ^ other.data[i]; xor != 0 {
			lcp := i*64 + uint32(bits.TrailingZeros64(xor))
			if lcp < minLengthBits {
				return lcp
			}
			return minLengthBits
		}
	}
	return minLengthBits
}

// LCP returns the longest common prefix itself.
func (bs BitString) LCP(other BitString) BitString {
	return bs.Prefix(int(bs.GetLCPLength(other)))
}

func (bs BitString) HasPrefix(prefixToCheck BitString) bool {
	if prefixToCheck.sizeBits > bs.sizeBits {
		return false
	}
	return bs.GetLCPLength(prefixToCheck) == prefixToCheck.sizeBits
}

func (bs BitString) Prefix(size int) BitString {
	errutil.BugOn(size < 0 || uint32(size) > bs.sizeBits, "prefix size %d out of range [0, %d]", size, bs.sizeBits)
	if size == 0 {
		return BitString{}
	}
	if uint32(size) == bs.sizeBits {
		return bs
	}

	res := BitString{
		data:     make([]uint64, wordsFor(uint32(size))),
		sizeBits: uint32(size),
	}
	copy(res.data, bs.data)
	res.maskTail()
	return res
}

// Substring returns bits [from, to).
func (bs BitString) Substring(from, to uint32) BitString {
	errutil.BugOn(from > to || to > bs.sizeBits, "substring [%d, %d) out of range, len %d", from, to, bs.sizeBits)
	if from == 0 {
		return bs.Prefix(int(to))
	}
	res := NewBitString(to - from)
	shift := from % 64
	base := from / 64
	for j := range res.data {
		w := bs.Word(base + uint32(j))
		if shift != 0 {
			w = w>>shift | bs.Word(base+uint32(j)+1)<<(64-shift)
		}
		res.data[j] = w
	}
	if len(res.data) > 0 {
		res.maskTail()
	}
	return res
}

// PushFront returns a new string with bit prepended at position 0.
func (bs BitString) PushFront(bit bool) BitString {
	res := NewBitString(bs.sizeBits + 1)
	var carry uint64
	if bit {
		carry = 1
	}
	for i := range res.data {
		w := bs.Word(uint32(i))
		res.data[i] = w<<1 | carry
		carry = w >> 63
	}
	res.maskTail()
	return res
}

func (bs BitString) AppendBit(bit bool) BitString {
	res := NewBitString(bs.sizeBits + 1)
	copy(res.data, bs.data)
	if bit {
		res.data[bs.sizeBits/64] |= uint64(1) << (bs.sizeBits % 64)
	}
	return res
}

// Compare orders lexicographically; a proper prefix is smaller.
func (bs BitString) Compare(other BitString) int {
	minSize := bs.sizeBits
	if other.sizeBits < minSize {
		minSize = other.sizeBits
	}

	minWords := wordsFor(minSize)
	for i := uint32(0); i < minWords; i++ {
		aWord, bWord := bs.data[i], other.data[i]
		if aWord == bWord {
			continue
		}
		firstDiffBit := i*64 + uint32(bits.TrailingZeros64(aWord^bWord))
		if firstDiffBit >= minSize {
			break
		}
		if aWord&(uint64(1)<<(firstDiffBit%64)) != 0 {
			return 1
		}
		return -1
	}

	switch {
	case bs.sizeBits < other.sizeBits:
		return -1
	case bs.sizeBits > other.sizeBits:
		return 1
	}
	return 0
}

func (bs BitString) Data() []byte {
	numBytes := (bs.sizeBits + 7) / 8
	result := make([]byte, numBytes)
	for i := uint32(0); i < numBytes; i++ {
		result[i] = byte(bs.data[i/8] >> ((i % 8) * 8))
	}
	return result
}

// Key is a comparable encoding usable as a Go map key.
func (bs BitString) Key() string {
	buf := make([]byte, 0, 4+len(bs.data)*8)
	buf = binary.LittleEndian.AppendUint32(buf, bs.sizeBits)
	return string(append(buf, bs.Data()...))
}

func (bs BitString) String() string {
	if bs.sizeBits == 0 {
		return "<empty>"
	}
	var sb strings.Builder
	sb.Grow(int(bs.sizeBits))
	for i := uint32(0); i < bs.sizeBits; i++ {
		if bs.At(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// Hash covers the length too, so "0" and "00" hash differently.
func (bs BitString) Hash() uint64 {
	return xxhash.Sum64String(bs.Key())
}

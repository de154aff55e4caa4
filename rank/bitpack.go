package rank

import mbits "math/bits"

// packedInts stores unsigned values using a fixed number of bits each.
type packedInts struct {
	words []uint64
	width int
	n     int
}

// widthFor is the number of bits needed to store maxValue, at least 1.
func widthFor(maxValue uint64) int {
	if maxValue == 0 {
		return 1
	}
	return mbits.Len64(maxValue)
}

func packBits(values []uint64, width int) packedInts {
	p := packedInts{
		words: make([]uint64, (len(values)*width+63)/64),
		width: width,
		n:     len(values),
	}
	mask := widthMask(width)
	for i, val := range values {
		bitPos := i * width
		wordIdx := bitPos / 64
		bitOffset := uint(bitPos % 64)
		val &= mask

		p.words[wordIdx] |= val << bitOffset
		if avail := 64 - int(bitOffset); avail < width {
			p.words[wordIdx+1] |= val >> uint(avail)
		}
	}
	return p
}

func (p packedInts) unpackBit(index int) uint64 {
	bitPos := index * p.width
	wordIdx := bitPos / 64
	bitOffset := uint(bitPos % 64)

	val := p.words[wordIdx] >> bitOffset
	if avail := 64 - int(bitOffset); avail < p.width {
		val |= p.words[wordIdx+1] << uint(avail)
	}
	return val & widthMask(p.width)
}

func (p packedInts) Len() int {
	return p.n
}

func (p packedInts) ByteSize() int {
	return len(p.words)*8 + 24
}

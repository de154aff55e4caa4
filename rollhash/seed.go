package rollhash

import (
	"encoding/binary"

	"github.com/zeebo/xxh3"
)

// DeriveSeed mixes parts into base, giving independent seeds for retries.
func DeriveSeed(base uint64, parts ...uint64) uint64 {
	buf := make([]byte, 8*len(parts))
	for i, p := range parts {
		binary.LittleEndian.PutUint64(buf[8*i:], p)
	}
	return xxh3.HashSeed(buf, base)
}

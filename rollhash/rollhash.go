// Package rollhash implements a polynomial rolling hash over bit strings whose
// prefix digests can be computed in O(1) after a linear precomputation.
package rollhash

import (
	"StaticZFast/bits"
	"StaticZFast/errutil"
	"fmt"
	"math/rand"
	mbits "math/bits"
)

// MersennePrime61 is the modulus of the production hash.
const MersennePrime61 = uint64(1)<<61 - 1

const chunkBits = 32

// Hash is a polynomial hash with a fixed modulus and base.
//
// The digest of the k-bit prefix of s is
//
//	(k+1)*base + sum_j (c_j+1)*base^(j+2) + sum_i (b_i+1)*base^(...)
//
// where c_j are the whole 32-bit chunks of the prefix and b_i the remaining
// k mod 32 bits, folded one at a time after the chunks. The length term keeps
// prefixes of different lengths on different polynomials.
//
// A parametric hash evaluates the same polynomial modulo 2^61-1 and reduces
// the result into [0, rng) as a last step.
type Hash struct {
	modulus uint64
	base    uint64
	rng     uint64
}

// State holds the running digest and power of base at every chunk boundary
// of one string.
type State struct {
	res []uint64
	pot []uint64
}

// New returns a hash modulo 2^61-1 with an odd base drawn from seed.
func New(seed uint64) Hash {
	r := rand.New(rand.NewSource(int64(seed)))
	for {
		base := r.Uint64()%MersennePrime61 | 1
		if base > 2 && base < MersennePrime61 {
			return Hash{modulus: MersennePrime61, base: base}
		}
	}
}

// NewParametric returns a hash whose digests are in [0, m), with a base drawn
// from seed and coprime to m. The polynomial itself is evaluated modulo
// 2^61-1, so hashes with different seeds stay independent even when m is a
// small composite table size.
func NewParametric(m uint64, seed uint64) Hash {
	errutil.BugOn(m == 0, "range must be positive")
	r := rand.New(rand.NewSource(int64(seed)))
	for {
		base := 2 + r.Uint64()%(MersennePrime61-2)
		if gcd(base, m) == 1 {
			return Hash{modulus: MersennePrime61, base: base, rng: m}
		}
	}
}

func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// Modulus is the exclusive upper bound of the digests.
func (h Hash) Modulus() uint64 {
	if h.rng != 0 {
		return h.rng
	}
	return h.modulus
}

func (h Hash) Base() uint64 {
	return h.base
}

func (h Hash) String() string {
	if h.rng != 0 {
		return fmt.Sprintf("rollhash{mod=%d, base=%d, range=%d}", h.modulus, h.base, h.rng)
	}
	return fmt.Sprintf("rollhash{mod=%d, base=%d}", h.modulus, h.base)
}

func (h Hash) mul(a, b uint64) uint64 {
	hi, lo := mbits.Mul64(a, b)
	return mbits.Rem64(hi, lo, h.modulus)
}

func (h Hash) add(a, b uint64) uint64 {
	sum, carry := mbits.Add64(a, b, 0)
	if carry != 0 || sum >= h.modulus {
		return mbits.Rem64(carry, sum, h.modulus)
	}
	return sum
}

func (h Hash) start() (res, pot uint64) {
	return 0, h.mul(h.base, h.base)
}

// fold adds the remaining bits [from, k) one by one and applies the length term.
func (h Hash) fold(s bits.BitString, res, pot uint64, from, k uint32) uint64 {
	for i := from; i < k; i++ {
		coef := uint64(1)
		if s.At(i) {
			coef = 2
		}
		res = h.add(res, h.mul(coef%h.modulus, pot))
		pot = h.mul(pot, h.base)
	}
	res = h.add(res, h.mul(uint64(k+1)%h.modulus, h.base))
	if h.rng != 0 {
		res %= h.rng
	}
	return res
}

func (h Hash) chunk(s bits.BitString, j uint32, res, pot uint64) (uint64, uint64) {
	coef := (uint64(s.Chunk32(j)) + 1) % h.modulus
	return h.add(res, h.mul(coef, pot)), h.mul(pot, h.base)
}

// Hash digests the whole string.
func (h Hash) Hash(s bits.BitString) uint64 {
	return h.SlowPrefixHash(s, s.Size())
}

// SlowPrefixHash digests the first k bits from scratch in O(k).
func (h Hash) SlowPrefixHash(s bits.BitString, k uint32) uint64 {
	errutil.BugOn(k > s.Size(), "prefix length %d exceeds string length %d", k, s.Size())
	res, pot := h.start()
	chunks := k / chunkBits
	for j := uint32(0); j < chunks; j++ {
		res, pot = h.chunk(s, j, res, pot)
	}
	return h.fold(s, res, pot, chunks*chunkBits, k)
}

// ComputeState precomputes the chunk boundaries of s for FastPrefixHash.
func (h Hash) ComputeState(s bits.BitString) State {
	chunks := s.Size() / chunkBits
	st := State{
		res: make([]uint64, 0, chunks+1),
		pot: make([]uint64, 0, chunks+1),
	}
	res, pot := h.start()
	st.res = append(st.res, res)
	st.pot = append(st.pot, pot)
	for j := uint32(0); j < chunks; j++ {
		res, pot = h.chunk(s, j, res, pot)
		st.res = append(st.res, res)
		st.pot = append(st.pot, pot)
	}
	return st
}

// FastPrefixHash equals SlowPrefixHash(s, k) given state = ComputeState(s),
// folding at most 31 bits past the nearest chunk boundary.
func (h Hash) FastPrefixHash(s bits.BitString, state State, k uint32) uint64 {
	errutil.BugOn(k > s.Size(), "prefix length %d exceeds string length %d", k, s.Size())
	c := k / chunkBits
	errutil.BugOn(int(c) >= len(state.res), "state does not cover prefix length %d", k)
	return h.fold(s, state.res[c], state.pot[c], c*chunkBits, k)
}

// Len is the number of chunk boundaries recorded.
func (st State) Len() int {
	return len(st.res)
}

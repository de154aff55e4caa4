// Package rank answers rank queries over the bitwise OR of two parallel bit
// vectors, which is how the perfect hash dictionary stores 2-bit weights.
package rank

import "fmt"

// Structure precomputes rank support for a|b. Rank(i, a, b) returns the number
// of set bits of a|b in [0, i) for 0 <= i <= len. The vectors passed to Rank
// must be the ones passed to Build.
type Structure interface {
	Build(a, b *BitVector)
	Rank(i int, a, b *BitVector) int
	ByteSize() int
}

type Kind int

const (
	JacobsonKind Kind = iota
	NaiveKind
	RSDicKind
)

func (k Kind) String() string {
	switch k {
	case JacobsonKind:
		return "jacobson"
	case NaiveKind:
		return "naive"
	case RSDicKind:
		return "rsdic"
	}
	return fmt.Sprintf("rank.Kind(%d)", int(k))
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	for _, k := range []Kind{JacobsonKind, NaiveKind, RSDicKind} {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown rank structure %q", s)
}

// New returns an empty structure of the given kind.
func New(kind Kind) Structure {
	switch kind {
	case NaiveKind:
		return &Naive{}
	case RSDicKind:
		return &RSDic{}
	default:
		return &Jacobson{}
	}
}

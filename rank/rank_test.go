package rank

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func randomVector(r *rand.Rand, n int, density float64) *BitVector {
	bv := NewBitVector(n)
	for i := 0; i < n; i++ {
		bv.Set(i, r.Float64() < density)
	}
	return bv
}

func bruteRank(i int, a, b *BitVector) int {
	res := 0
	for k := 0; k < i; k++ {
		if a.Get(k) || b.Get(k) {
			res++
		}
	}
	return res
}

func TestRankMatchesBruteForce(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewSource(3))
	sizes := []int{0, 1, 2, 3, 7, 63, 64, 65, 100, 127, 128, 129, 1000, 4097}
	for _, kind := range []Kind{JacobsonKind, NaiveKind, RSDicKind} {
		for _, n := range sizes {
			for _, density := range []float64{0, 0.1, 0.5, 1} {
				a := randomVector(r, n, density/2)
				b := randomVector(r, n, density/2)
				s := New(kind)
				s.Build(a, b)
				want := 0
				for i := 0; i <= n; i++ {
					require.Equal(t, want, s.Rank(i, a, b), "%s n=%d i=%d", kind, n, i)
					if i < n && (a.Get(i) || b.Get(i)) {
						want++
					}
				}
			}
		}
	}
}

func TestJacobsonDims(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewSource(4))
	for _, n := range []int{0, 15, 255, 1 << 12, 100000} {
		a, b := randomVector(r, n, 0.3), randomVector(r, n, 0.3)
		j := &Jacobson{}
		j.Build(a, b)
		block, super := j.Dims()
		require.GreaterOrEqual(t, block, 1)
		require.Zero(t, super%block)
		require.Equal(t, bruteRank(n, a, b), j.Rank(n, a, b))
		require.Greater(t, j.ByteSize(), 0)
	}
}

func TestBitVectorLoad(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewSource(5))
	bv := randomVector(r, 300, 0.5)
	for iter := 0; iter < 2000; iter++ {
		l := r.Intn(320)
		w := r.Intn(65)
		got := bv.Load(l, l+w)
		for k := 0; k < w; k++ {
			want := l+k < bv.Len() && bv.Get(l+k)
			require.Equal(t, want, got&(1<<k) != 0, "l=%d w=%d k=%d", l, w, k)
		}
	}
	require.Panics(t, func() { bv.Load(0, 65) })
	require.Panics(t, func() { bv.Get(300) })
}

func TestPackBits(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewSource(6))
	for _, width := range []int{1, 3, 7, 13, 31, 63, 64} {
		values := make([]uint64, 200)
		for i := range values {
			values[i] = r.Uint64() & widthMask(width)
		}
		p := packBits(values, width)
		require.Equal(t, len(values), p.Len())
		for i, v := range values {
			require.Equal(t, v, p.unpackBit(i), "width=%d i=%d", width, i)
		}
	}
	require.Equal(t, 1, widthFor(0))
	require.Equal(t, 1, widthFor(1))
	require.Equal(t, 3, widthFor(4))
}

func TestParseKind(t *testing.T) {
	t.Parallel()
	for _, k := range []Kind{JacobsonKind, NaiveKind, RSDicKind} {
		got, err := ParseKind(k.String())
		require.NoError(t, err)
		require.Equal(t, k, got)
	}
	_, err := ParseKind("elias-fano")
	require.Error(t, err)
}

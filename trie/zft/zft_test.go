package zft

import (
	"StaticZFast/bits"
	"StaticZFast/rank"
	"StaticZFast/trie"
	"StaticZFast/trie/naive"
	"bytes"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var allIndexKinds = []IndexKind{PlainIndex, SuccinctIndex, BoomIndex, ExactIndex}

func b(s string) bits.BitString {
	return bits.NewFromBinary(s)
}

func mustBuild(t *testing.T, keys []bits.BitString, opts ...Option) *ZFastTrie {
	t.Helper()
	zt, err := Build(keys, opts...)
	require.NoError(t, err)
	return zt
}

func requirePred(t *testing.T, zt *ZFastTrie, x, want string) {
	t.Helper()
	got, ok := zt.PredQuery(b(x))
	if want == "" {
		require.False(t, ok, "pred(%s) = %s", x, got)
		return
	}
	require.True(t, ok, "pred(%s)", x)
	require.Equal(t, want, got.String(), "pred(%s)", x)
}

func requireSucc(t *testing.T, zt *ZFastTrie, x, want string) {
	t.Helper()
	got, ok := zt.SuccQuery(b(x))
	if want == "" {
		require.False(t, ok, "succ(%s) = %s", x, got)
		return
	}
	require.True(t, ok, "succ(%s)", x)
	require.Equal(t, want, got.String(), "succ(%s)", x)
}

func TestThreeKeys(t *testing.T) {
	t.Parallel()
	for _, kind := range allIndexKinds {
		kind := kind
		t.Run(kind.String(), func(t *testing.T) {
			t.Parallel()
			zt := mustBuild(t, []bits.BitString{b("10"), b("00"), b("01")}, WithIndex(kind))
			require.Equal(t, 3, zt.Len())
			require.Len(t, zt.nodes, 5)

			requirePred(t, zt, "01", "00")
			requirePred(t, zt, "00", "")
			requirePred(t, zt, "1", "01")
			requirePred(t, zt, "011", "01")
			requirePred(t, zt, "11", "10")

			requireSucc(t, zt, "01", "01")
			requireSucc(t, zt, "", "00")
			requireSucc(t, zt, "1", "10")
			requireSucc(t, zt, "011", "10")
			requireSucc(t, zt, "11", "")

			require.True(t, zt.ExPrefQuery(b("")))
			require.True(t, zt.ExPrefQuery(b("0")))
			require.True(t, zt.ExPrefQuery(b("10")))
			require.False(t, zt.ExPrefQuery(b("11")))
			require.False(t, zt.ExPrefQuery(b("100")))

			require.True(t, zt.ExRangeQuery(b("00"), b("10")))
			require.False(t, zt.ExRangeQuery(b("00"), b("01")))
			require.True(t, zt.ExRangeQuery(b("0"), b("1")))
			require.True(t, zt.ExRangeQuery(b("01"), b("11")))
			require.True(t, zt.ExRangeQuery(b("1"), b("11")))
			require.False(t, zt.ExRangeQuery(b("10"), b("10")))
			require.False(t, zt.ExRangeQuery(b("11"), b("00")))
			require.False(t, zt.ExRangeQuery(b("10"), b("11")))
		})
	}
}

func TestEmptyAndSingle(t *testing.T) {
	t.Parallel()
	for _, kind := range allIndexKinds {
		empty := mustBuild(t, nil, WithIndex(kind))
		require.Equal(t, 0, empty.Len())
		_, ok := empty.PredQuery(b("0"))
		require.False(t, ok)
		_, ok = empty.SuccQuery(b(""))
		require.False(t, ok)
		require.False(t, empty.ExPrefQuery(b("")))
		require.False(t, empty.ExRangeQuery(b(""), b("1")))
		require.Contains(t, empty.String(), "Root: nil")

		single := mustBuild(t, []bits.BitString{b("0110")}, WithIndex(kind))
		requireSucc(t, single, "", "0110")
		requireSucc(t, single, "011", "0110")
		requireSucc(t, single, "0111", "")
		requirePred(t, single, "0110", "")
		requirePred(t, single, "1", "0110")
		require.True(t, single.ExPrefQuery(b("01")))
		require.False(t, single.ExPrefQuery(b("00")))
		require.True(t, single.ExRangeQuery(b("0"), b("1")))
		require.False(t, single.ExRangeQuery(b("0110"), b("1")))
	}
}

func TestCrossCheckFixedLength(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewSource(1))
	for iter := 0; iter < 20; iter++ {
		keys := bits.GenerateRandomBitStrings(1+r.Intn(60), 1+r.Intn(40), r)
		queries := trie.QueryStrings(keys, 120)
		want := naive.New(keys)
		for _, kind := range allIndexKinds {
			zt := mustBuild(t, keys, WithIndex(kind), WithSeed(uint64(iter)))
			require.NoError(t, trie.CrossCheck(want, zt, queries), "kind %s, keys %v", kind, keys)
		}
	}
}

func TestCrossCheckPrefixFree(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewSource(2))
	for iter := 0; iter < 20; iter++ {
		keys := bits.GeneratePrefixFree(1+r.Intn(80), 1, 1+r.Intn(150), r)
		queries := trie.QueryStrings(keys, 120)
		want := naive.New(keys)
		for _, kind := range allIndexKinds {
			zt := mustBuild(t, keys, WithIndex(kind), WithSeed(uint64(iter)), WithRank(rank.Kind(iter%3)))
			require.NoError(t, trie.CrossCheck(want, zt, queries), "kind %s, keys %v", kind, keys)
		}
	}
}

// randomQueries mixes boundary queries with random strings that are mostly
// outside the key set.
func randomQueries(keys []bits.BitString, n int, r *rand.Rand) []bits.BitString {
	queries := trie.QueryStrings(keys, n)
	for i := 0; i < n; i++ {
		queries = append(queries, bits.GenerateBitString(r.Intn(200), r))
	}
	return queries
}

func TestSuccinctIndexRandomQueries(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewSource(7))
	for iter := 0; iter < 40; iter++ {
		keys := bits.GeneratePrefixFree(2+r.Intn(150), 1, 1+r.Intn(120), r)
		want := naive.New(keys)
		queries := randomQueries(keys, 150, r)
		for _, kind := range []rank.Kind{rank.JacobsonKind, rank.NaiveKind, rank.RSDicKind} {
			zt := mustBuild(t, keys, WithIndex(SuccinctIndex), WithSeed(uint64(iter)), WithRank(kind))
			require.NoError(t, trie.CrossCheck(want, zt, queries), "rank %s, keys %v", kind, keys)
		}
	}
}

func TestExactIndexNeedsNoFallback(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewSource(8))
	for iter := 0; iter < 20; iter++ {
		keys := bits.GeneratePrefixFree(1+r.Intn(200), 1, 1+r.Intn(100), r)
		zt := mustBuild(t, keys, WithIndex(ExactIndex))
		require.NoError(t, trie.CrossCheck(naive.New(keys), zt, randomQueries(keys, 100, r)))
		require.Positive(t, zt.Stats().ExitQueries)
		require.Zero(t, zt.Stats().ParexFallbacks)
	}
}

// Every prefix of a query that equals a handle must resolve to that handle's
// node under every index; other prefixes are unconstrained.
func TestIndexesNeverMissHandles(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewSource(9))
	for iter := 0; iter < 10; iter++ {
		keys := bits.GeneratePrefixFree(1+r.Intn(300), 1, 1+r.Intn(80), r)
		exact := mustBuild(t, keys, WithIndex(ExactIndex))
		for _, kind := range []IndexKind{PlainIndex, SuccinctIndex, BoomIndex} {
			zt := mustBuild(t, keys, WithIndex(kind), WithSeed(uint64(iter)))
			for _, x := range randomQueries(keys, 50, r) {
				want, got := exact.index.newProber(x), zt.index.newProber(x)
				for f := uint32(0); f <= x.Size(); f++ {
					if n := want.probe(f); n != none {
						require.Equal(t, n, got.probe(f), "%s: x=%s f=%d", kind, x, f)
					}
				}
			}
		}
	}
}

func TestRejectsInvalidInput(t *testing.T) {
	t.Parallel()
	require.Panics(t, func() { _, _ = Build([]bits.BitString{b("01"), b("011")}) })
	require.Panics(t, func() { _, _ = Build([]bits.BitString{b("01"), b("10"), b("01")}) })
	require.Panics(t, func() { _, _ = Build([]bits.BitString{b("")}, WithMaxAttempts(0)) })
}

func TestBuildFromIterator(t *testing.T) {
	t.Parallel()
	keys := []bits.BitString{b("000"), b("001"), b("01"), b("1")}
	zt, err := BuildFromIterator(bits.NewSliceBitStringIterator(keys))
	require.NoError(t, err)
	require.Equal(t, keys, zt.Keys())

	require.Panics(t, func() {
		_, _ = BuildFromIterator(bits.NewSliceBitStringIterator([]bits.BitString{b("1"), b("0")}))
	})
}

// exitByDescent walks from the root one edge at a time.
func exitByDescent(zt *ZFastTrie, x bits.BitString) int32 {
	cur := zt.root
	for zt.extentIsProperPrefix(cur, x) && !zt.nodes[cur].isLeaf() {
		cur = zt.nodes[cur].child(x.At(zt.nodes[cur].rind))
	}
	return cur
}

func TestLocateExitMatchesDescent(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewSource(3))
	for iter := 0; iter < 10; iter++ {
		keys := bits.GeneratePrefixFree(200, 1, 100, r)
		for _, kind := range allIndexKinds {
			zt := mustBuild(t, keys, WithIndex(kind))
			for _, x := range trie.QueryStrings(keys, 2000) {
				want := exitByDescent(zt, x)
				require.Equal(t, want, zt.locateExit(x), "x=%s", x)
				require.True(t, zt.isExit(want, x))
			}
		}
	}
}

func TestParexIsParentOfExit(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewSource(4))
	keys := bits.GeneratePrefixFree(300, 5, 60, r)
	zt := mustBuild(t, keys, WithIndex(SuccinctIndex))
	for _, x := range trie.QueryStrings(keys, 3000) {
		exit := exitByDescent(zt, x)
		parex := zt.locateParex(x, zt.index.newProber(x))
		if exit == zt.root {
			require.Equal(t, none, parex, "x=%s", x)
			continue
		}
		require.NotEqual(t, none, parex, "x=%s", x)
		require.Equal(t, zt.nodes[exit].lind, zt.nodes[parex].rind+1, "x=%s", x)
		require.Equal(t, exit, zt.locateExitFromNode(x, parex))
	}
}

// noisyIndex answers every probe that misses with some other node of the
// right handle length, so the search has to survive false positives.
type noisyIndex struct {
	handleIndex
	byLength map[uint32][]int32
}

type noisyProber struct {
	inner    prober
	byLength map[uint32][]int32
	salt     uint32
}

func (idx *noisyIndex) newProber(x bits.BitString) prober {
	return &noisyProber{inner: idx.handleIndex.newProber(x), byLength: idx.byLength, salt: x.Size()}
}

func (p *noisyProber) probe(f uint32) int32 {
	if n := p.inner.probe(f); n != none {
		return n
	}
	cands := p.byLength[f]
	if len(cands) == 0 {
		return none
	}
	return cands[(f*2654435761+p.salt)%uint32(len(cands))]
}

func TestFalsePositiveProbes(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewSource(5))
	for iter := 0; iter < 10; iter++ {
		keys := bits.GeneratePrefixFree(100, 1, 64, r)
		zt := mustBuild(t, keys)
		byLength := map[uint32][]int32{}
		for i := range zt.nodes {
			if !zt.nodes[i].isLeaf() {
				f := zt.nodes[i].handleLength()
				byLength[f] = append(byLength[f], int32(i))
			}
		}
		zt.index = &noisyIndex{handleIndex: zt.index, byLength: byLength}
		require.NoError(t, trie.CrossCheck(naive.New(keys), zt, trie.QueryStrings(keys, 150)))
	}
}

func TestJumpPointers(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewSource(6))
	keys := bits.GeneratePrefixFree(500, 1, 200, r)
	zt := mustBuild(t, keys)
	for i := range zt.nodes {
		n := &zt.nodes[i]
		if n.isLeaf() {
			continue
		}
		target := jumpTarget(n)
		for _, side := range []struct {
			jump  int32
			start int32
			right bool
		}{{n.jumpLeft, n.left, false}, {n.jumpRight, n.right, true}} {
			cur := side.start
			for cur != side.jump {
				require.False(t, zt.nodes[cur].isLeaf(), "jump of %d is off the %t path", i, side.right)
				require.False(t, zt.nodes[cur].contains(target))
				cur = zt.nodes[cur].child(side.right)
			}
			j := &zt.nodes[side.jump]
			require.True(t, j.isLeaf() || j.contains(target))
		}
		require.Equal(t, zt.leftmost(n.left), zt.leftmost(int32(i)))
		require.Equal(t, zt.rightmost(n.right), zt.rightmost(int32(i)))
	}
}

func TestLeafThreadAndIterators(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewSource(7))
	keys := bits.GeneratePrefixFree(100, 1, 30, r)
	zt := mustBuild(t, keys)

	var threaded []bits.BitString
	for leaf := zt.leftmost(zt.root); leaf != none; leaf = zt.nodes[leaf].next {
		threaded = append(threaded, zt.keys[zt.nodes[leaf].key])
	}
	require.Equal(t, keys, threaded)

	var inOrder []bits.BitString
	count := 0
	it := NewIterator(zt)
	for it.Next() {
		count++
		if info := it.Node(); info.IsLeaf {
			inOrder = append(inOrder, info.Extent)
		}
	}
	require.False(t, it.Next())
	require.Equal(t, len(zt.nodes), count)
	require.Equal(t, keys, inOrder)

	var prev *NodeInfo
	sit := NewSortedIterator(zt)
	for sit.Next() {
		info := sit.Node()
		if prev != nil {
			require.Negative(t, prev.Extent.Compare(info.Extent))
			if info.Depth > prev.Depth {
				require.Equal(t, prev.Depth+1, info.Depth)
				require.True(t, info.Extent.HasPrefix(prev.Extent))
			}
		} else {
			require.Zero(t, info.Depth)
		}
		prev = info
	}
	require.Nil(t, sit.Node())
}

func TestStatsAndReports(t *testing.T) {
	t.Parallel()
	keys := []bits.BitString{b("00"), b("01"), b("10")}
	for _, kind := range allIndexKinds {
		zt := mustBuild(t, keys, WithIndex(kind))
		zt.SuccQuery(b("011"))
		zt.ExRangeQuery(b("00"), b("11"))
		st := zt.Stats()
		require.Positive(t, st.ExitQueries)
		require.Positive(t, st.Probes)
		zt.ResetStats()
		require.Equal(t, Stats{}, zt.Stats())

		report := zt.MemDetailed()
		require.Equal(t, "zft_"+kind.String(), report.Name)
		require.Equal(t, report.TotalBytes, zt.ByteSize())
		_, ok := report.Find(kind.String() + "_index")
		require.True(t, ok)

		s := zt.String()
		require.True(t, strings.HasPrefix(s, "ZFastTrie:\n"))
		require.Contains(t, s, `extent: "01"`)
		require.Contains(t, s, fmt.Sprintf("index: %s", kind))
	}
}

func TestLoggerAndParse(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	_, err := Build([]bits.BitString{b("0"), b("1")}, WithLogger(log.New(&buf, "", 0)))
	require.NoError(t, err)
	require.Contains(t, buf.String(), "zft: built plain trie: 2 keys, 3 nodes, 1 handles")

	for _, kind := range allIndexKinds {
		got, err := ParseIndexKind(kind.String())
		require.NoError(t, err)
		require.Equal(t, kind, got)
	}
	_, err = ParseIndexKind("btree")
	require.Error(t, err)
}

package zft

import (
	"StaticZFast/bits"
	"StaticZFast/mphdict"
	"StaticZFast/rollhash"
	"StaticZFast/utils"
	"errors"
	"fmt"
	"math"
	"unsafe"

	"github.com/dgryski/go-boomphf"
)

// ErrIndexConstruction is returned when the handle index could not be built
// within the allowed number of attempts.
var ErrIndexConstruction = errors.New("zft: handle index construction failed")

// handleIndex maps prefixes of a query to candidate internal nodes. A probe
// may return a wrong node; it never misses a real handle.
type handleIndex interface {
	newProber(x bits.BitString) prober
	attempts() int
	memReport() utils.MemReport
}

type prober interface {
	// probe returns the node whose handle may equal the first f bits, or none.
	probe(f uint32) int32
}

func buildIndex(handles []bits.BitString, ids []int32, o Options) (handleIndex, error) {
	switch o.Index {
	case SuccinctIndex:
		return buildSuccinctIndex(handles, ids, o)
	case BoomIndex:
		return buildBoomIndex(handles, ids, o)
	case ExactIndex:
		return buildExactIndex(handles, ids), nil
	default:
		return buildPlainIndex(handles, ids, o)
	}
}

// digestAll hashes every handle and reports whether the digests are distinct.
func digestAll(h rollhash.Hash, handles []bits.BitString) ([]uint64, bool) {
	digests := make([]uint64, len(handles))
	seen := make(map[uint64]struct{}, len(handles))
	for i, hd := range handles {
		d := h.Hash(hd)
		if _, dup := seen[d]; dup {
			return nil, false
		}
		seen[d] = struct{}{}
		digests[i] = d
	}
	return digests, true
}

// distinctDigests reseeds the rolling hash until no two handles collide.
func distinctDigests(handles []bits.BitString, o Options) (rollhash.Hash, []uint64, int, error) {
	for attempt := 0; attempt < o.MaxAttempts; attempt++ {
		h := rollhash.New(rollhash.DeriveSeed(o.Seed, uint64(attempt)))
		if digests, ok := digestAll(h, handles); ok {
			return h, digests, attempt + 1, nil
		}
		o.logf("attempt %d: handle digests collide", attempt+1)
	}
	return rollhash.Hash{}, nil, o.MaxAttempts, fmt.Errorf("%w: %d handles, %d attempts", ErrIndexConstruction, len(handles), o.MaxAttempts)
}

type plainIndex struct {
	hash  rollhash.Hash
	nodes map[uint64]int32
	tries int
}

func buildPlainIndex(handles []bits.BitString, ids []int32, o Options) (*plainIndex, error) {
	h, digests, tries, err := distinctDigests(handles, o)
	if err != nil {
		return nil, err
	}
	idx := &plainIndex{hash: h, nodes: make(map[uint64]int32, len(handles)), tries: tries}
	for i, d := range digests {
		idx.nodes[d] = ids[i]
	}
	return idx, nil
}

type plainProber struct {
	idx *plainIndex
	x   bits.BitString
	st  rollhash.State
}

func (idx *plainIndex) newProber(x bits.BitString) prober {
	return &plainProber{idx: idx, x: x, st: idx.hash.ComputeState(x)}
}

func (p *plainProber) probe(f uint32) int32 {
	if n, ok := p.idx.nodes[p.idx.hash.FastPrefixHash(p.x, p.st, f)]; ok {
		return n
	}
	return none
}

func (idx *plainIndex) attempts() int {
	return idx.tries
}

func (idx *plainIndex) memReport() utils.MemReport {
	// Go maps keep roughly one bucket slot per entry plus tophash overhead.
	entry := int(unsafe.Sizeof(uint64(0)) + unsafe.Sizeof(int32(0)) + 1)
	return utils.NewMemReport("plain_index",
		utils.Leaf("header", int(unsafe.Sizeof(*idx))),
		utils.Leaf("map", len(idx.nodes)*entry),
	)
}

type succinctIndex struct {
	dict *mphdict.Dict[int32]
}

func buildSuccinctIndex(handles []bits.BitString, ids []int32, o Options) (*succinctIndex, error) {
	dict, err := mphdict.Build(handles, ids,
		mphdict.WithSeed(o.Seed),
		mphdict.WithMaxAttempts(o.MaxAttempts),
		mphdict.WithRank(o.Rank),
		mphdict.WithLogger(o.Logger),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIndexConstruction, err)
	}
	return &succinctIndex{dict: dict}, nil
}

type succinctProber struct {
	dict *mphdict.Dict[int32]
	x    bits.BitString
	st   mphdict.State
}

func (idx *succinctIndex) newProber(x bits.BitString) prober {
	return &succinctProber{dict: idx.dict, x: x, st: idx.dict.ComputeState(x)}
}

func (p *succinctProber) probe(f uint32) int32 {
	if p.dict.Len() == 0 {
		return none
	}
	return p.dict.FastPrefixGet(p.x, p.st, f)
}

func (idx *succinctIndex) attempts() int {
	return idx.dict.Attempts()
}

func (idx *succinctIndex) memReport() utils.MemReport {
	return utils.NewMemReport("succinct_index", idx.dict.MemDetailed())
}

type boomIndex struct {
	hash    rollhash.Hash
	mph     *boomphf.H
	gamma   float64
	digests []uint64
	nodes   []int32
	tries   int
}

func buildBoomIndex(handles []bits.BitString, ids []int32, o Options) (*boomIndex, error) {
	h, digests, tries, err := distinctDigests(handles, o)
	if err != nil {
		return nil, err
	}
	idx := &boomIndex{
		hash:    h,
		gamma:   o.BoomGamma,
		digests: make([]uint64, len(handles)),
		nodes:   make([]int32, len(handles)),
		tries:   tries,
	}
	if len(handles) == 0 {
		return idx, nil
	}
	idx.mph = boomphf.New(o.BoomGamma, digests)
	for i, d := range digests {
		slot := idx.mph.Query(d) - 1
		idx.digests[slot] = d
		idx.nodes[slot] = ids[i]
	}
	return idx, nil
}

type boomProber struct {
	idx *boomIndex
	x   bits.BitString
	st  rollhash.State
}

func (idx *boomIndex) newProber(x bits.BitString) prober {
	return &boomProber{idx: idx, x: x, st: idx.hash.ComputeState(x)}
}

func (p *boomProber) probe(f uint32) int32 {
	if p.idx.mph == nil {
		return none
	}
	d := p.idx.hash.FastPrefixHash(p.x, p.st, f)
	q := p.idx.mph.Query(d)
	if q == 0 || p.idx.digests[q-1] != d {
		return none
	}
	return p.idx.nodes[q-1]
}

func (idx *boomIndex) attempts() int {
	return idx.tries
}

func (idx *boomIndex) memReport() utils.MemReport {
	// BBHash needs about gamma*e^(1/gamma) bits per key across its levels.
	n := float64(len(idx.nodes))
	mphBytes := int(math.Ceil(n * idx.gamma * math.Exp(1/idx.gamma) / 8))
	return utils.NewMemReport("boom_index",
		utils.Leaf("header", int(unsafe.Sizeof(*idx))),
		utils.Leaf("bbhash_estimate", mphBytes),
		utils.Leaf("digests", len(idx.digests)*8),
		utils.Leaf("nodes", len(idx.nodes)*4),
	)
}

type exactIndex struct {
	hash  rollhash.Exact
	nodes map[string]int32
	bytes int
}

func buildExactIndex(handles []bits.BitString, ids []int32) *exactIndex {
	idx := &exactIndex{nodes: make(map[string]int32, len(handles))}
	for i, hd := range handles {
		key := idx.hash.Hash(hd).Key()
		idx.nodes[key] = ids[i]
		idx.bytes += len(key)
	}
	return idx
}

type exactProber struct {
	idx *exactIndex
	x   bits.BitString
}

func (idx *exactIndex) newProber(x bits.BitString) prober {
	return &exactProber{idx: idx, x: x}
}

func (p *exactProber) probe(f uint32) int32 {
	if n, ok := p.idx.nodes[p.idx.hash.SlowPrefixHash(p.x, f).Key()]; ok {
		return n
	}
	return none
}

func (idx *exactIndex) attempts() int {
	return 1
}

func (idx *exactIndex) memReport() utils.MemReport {
	entry := int(unsafe.Sizeof("") + unsafe.Sizeof(int32(0)) + 1)
	return utils.NewMemReport("exact_index",
		utils.Leaf("header", int(unsafe.Sizeof(*idx))),
		utils.Leaf("map", len(idx.nodes)*entry),
		utils.Leaf("handles", idx.bytes),
	)
}

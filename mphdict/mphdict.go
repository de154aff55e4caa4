// Package mphdict is a static dictionary addressed through a minimal perfect
// hash built by peeling a random 3-uniform hypergraph.
package mphdict

import (
	"StaticZFast/bits"
	"StaticZFast/errutil"
	"StaticZFast/rank"
	"StaticZFast/rollhash"
	"StaticZFast/utils"
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"unsafe"
)

var debug = os.Getenv("DEBUG") == "1"

// ErrConstructionFailed is returned when no peelable hypergraph was found
// within the allowed number of attempts.
var ErrConstructionFailed = errors.New("mphdict: construction failed")

// Dict maps each of its build keys to the value supplied with it. Lookups of
// keys outside the build set return the value of some colliding slot.
type Dict[V any] struct {
	n        int
	h        [3]rollhash.Hash
	w0, w1   *rank.BitVector
	ranks    rank.Structure
	table    []V
	attempts int
}

// State caches the prefix hash state of one key under all three hashes.
type State [3]rollhash.State

type peeled struct {
	edge  int32
	pivot uint8
}

// TableSize returns the number of hypergraph vertices used for k keys.
func TableSize(k int) int {
	return max(int(math.Ceil(Gamma*float64(k))), MinTableSize)
}

// Build constructs the dictionary. keys and values must have equal length.
// Duplicate keys never produce a peelable hypergraph and end in
// ErrConstructionFailed.
func Build[V any](keys []bits.BitString, values []V, opts ...Option) (*Dict[V], error) {
	errutil.BugOn(len(keys) != len(values), "keys and values differ in length: %d != %d", len(keys), len(values))

	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	errutil.BugOn(o.MaxAttempts <= 0, "max attempts must be positive, got %d", o.MaxAttempts)

	d := &Dict[V]{n: TableSize(len(keys))}
	edges := make([][3]uint32, len(keys))

	for attempt := 0; attempt < o.MaxAttempts; attempt++ {
		d.attempts = attempt + 1
		for j := range d.h {
			d.h[j] = rollhash.NewParametric(uint64(d.n), rollhash.DeriveSeed(o.Seed, uint64(attempt), uint64(j)))
		}

		if !d.computeEdges(keys, edges) {
			o.logf("attempt %d: degenerate edge", attempt+1)
			continue
		}
		order, ok := peel(d.n, edges)
		if !ok {
			o.logf("attempt %d: hypergraph has a 2-core", attempt+1)
			continue
		}

		d.assign(edges, order)
		d.ranks = rank.New(o.Rank)
		d.ranks.Build(d.w0, d.w1)
		errutil.BugOnNotEq(d.ranks.Rank(d.n, d.w0, d.w1), len(keys))

		d.table = make([]V, len(keys))
		for i := range keys {
			d.table[d.slotOf(edges[i])] = values[i]
		}
		o.logf("built %d keys, table size %d, after %d attempts", len(keys), d.n, d.attempts)
		return d, nil
	}
	return nil, fmt.Errorf("%w: %d keys, %d attempts", ErrConstructionFailed, len(keys), o.MaxAttempts)
}

func (o Options) logf(format string, args ...any) {
	switch {
	case o.Logger != nil:
		o.Logger.Printf("mphdict: "+format, args...)
	case debug:
		log.Printf("mphdict: "+format, args...)
	}
}

func (d *Dict[V]) computeEdges(keys []bits.BitString, edges [][3]uint32) bool {
	for i, key := range keys {
		e := [3]uint32{
			uint32(d.h[0].Hash(key)),
			uint32(d.h[1].Hash(key)),
			uint32(d.h[2].Hash(key)),
		}
		if e[0] == e[1] || e[0] == e[2] || e[1] == e[2] {
			return false
		}
		edges[i] = e
	}
	return true
}

// peel removes vertices of degree one until none remain. It returns the
// removal order and whether every edge was removed.
func peel(n int, edges [][3]uint32) ([]peeled, bool) {
	degree := make([]int32, n)
	xorEdges := make([]int32, n)
	for i, e := range edges {
		for _, v := range e {
			degree[v]++
			xorEdges[v] ^= int32(i)
		}
	}

	queue := make([]uint32, 0, n)
	for v := 0; v < n; v++ {
		if degree[v] == 1 {
			queue = append(queue, uint32(v))
		}
	}

	order := make([]peeled, 0, len(edges))
	for head := 0; head < len(queue); head++ {
		v := queue[head]
		if degree[v] != 1 {
			continue
		}
		edge := xorEdges[v]
		e := edges[edge]
		pivot := uint8(0)
		for j, u := range e {
			if u == v {
				pivot = uint8(j)
			}
			degree[u]--
			xorEdges[u] ^= edge
			if degree[u] == 1 {
				queue = append(queue, u)
			}
		}
		order = append(order, peeled{edge: edge, pivot: pivot})
	}
	return order, len(order) == len(edges)
}

// assign replays the peeling order backwards so that the weights of every
// edge sum to its pivot index mod 3.
func (d *Dict[V]) assign(edges [][3]uint32, order []peeled) {
	d.w0 = rank.NewBitVector(d.n)
	d.w1 = rank.NewBitVector(d.n)
	for i := len(order) - 1; i >= 0; i-- {
		p := order[i]
		e := edges[p.edge]
		sum := 0
		for j, v := range e {
			if uint8(j) != p.pivot {
				sum += d.weight(int(v))
			}
		}
		d.setWeight(int(e[p.pivot]), ((int(p.pivot)-sum)%3+3)%3)
	}
}

// weight decodes the 2-bit value stored at v; unset vertices weigh 0.
func (d *Dict[V]) weight(v int) int {
	x := 0
	if d.w0.Get(v) {
		x++
	}
	if d.w1.Get(v) {
		x += 2
	}
	if x == 0 {
		return 0
	}
	return x - 1
}

func (d *Dict[V]) setWeight(v int, w int) {
	errutil.BugOn(w < 0 || w > 2, "weight %d out of range", w)
	d.w0.Set(v, (w+1)%2 == 1)
	d.w1.Set(v, w+1 >= 2)
}

// slotOf ranks the vertex chosen by the edge weights. A key outside the build
// set may land on an unassigned vertex past the last assigned one, whose rank
// equals Len(); such keys share the last slot.
func (d *Dict[V]) slotOf(e [3]uint32) int {
	sum := (d.weight(int(e[0])) + d.weight(int(e[1])) + d.weight(int(e[2]))) % 3
	r := d.ranks.Rank(int(e[sum]), d.w0, d.w1)
	if r >= len(d.table) {
		return len(d.table) - 1
	}
	return r
}

func (d *Dict[V]) edge(key bits.BitString) [3]uint32 {
	return [3]uint32{
		uint32(d.h[0].Hash(key)),
		uint32(d.h[1].Hash(key)),
		uint32(d.h[2].Hash(key)),
	}
}

// Slot returns the index in [0, Len()) assigned to key, or -1 if the
// dictionary is empty.
func (d *Dict[V]) Slot(key bits.BitString) int {
	if len(d.table) == 0 {
		return -1
	}
	return d.slotOf(d.edge(key))
}

// Get returns the value stored for key. An empty dictionary returns the zero
// value.
func (d *Dict[V]) Get(key bits.BitString) V {
	var zero V
	if len(d.table) == 0 {
		return zero
	}
	return d.table[d.slotOf(d.edge(key))]
}

func (d *Dict[V]) ComputeState(key bits.BitString) State {
	return State{
		d.h[0].ComputeState(key),
		d.h[1].ComputeState(key),
		d.h[2].ComputeState(key),
	}
}

// FastPrefixGet is Get applied to the first k bits of key, reusing state.
func (d *Dict[V]) FastPrefixGet(key bits.BitString, state State, k uint32) V {
	var zero V
	if len(d.table) == 0 {
		return zero
	}
	e := [3]uint32{
		uint32(d.h[0].FastPrefixHash(key, state[0], k)),
		uint32(d.h[1].FastPrefixHash(key, state[1], k)),
		uint32(d.h[2].FastPrefixHash(key, state[2], k)),
	}
	return d.table[d.slotOf(e)]
}

func (d *Dict[V]) Len() int {
	return len(d.table)
}

func (d *Dict[V]) TableSize() int {
	return d.n
}

// Attempts is the number of hypergraphs tried before one peeled.
func (d *Dict[V]) Attempts() int {
	return d.attempts
}

func (d *Dict[V]) ByteSize() int {
	return d.MemDetailed().TotalBytes
}

func (d *Dict[V]) MemDetailed() utils.MemReport {
	var zero V
	rankSize := 0
	if d.ranks != nil {
		rankSize = d.ranks.ByteSize()
	}
	weightSize := 0
	if d.w0 != nil {
		weightSize = d.w0.ByteSize() + d.w1.ByteSize()
	}
	return utils.NewMemReport("mphdict",
		utils.Leaf("header", int(unsafe.Sizeof(*d))),
		utils.Leaf("weights", weightSize),
		utils.Leaf("rank", rankSize),
		utils.Leaf("values", len(d.table)*int(unsafe.Sizeof(zero))),
	)
}

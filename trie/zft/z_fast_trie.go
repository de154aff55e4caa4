// Package zft implements a static z-fast trie: a compacted binary trie whose
// internal nodes are indexed by handle, so that exit nodes are found by a fat
// binary search over prefix lengths in O(log |x|) probes.
package zft

import (
	"StaticZFast/bits"
	"StaticZFast/errutil"
	"StaticZFast/utils"
	"fmt"
	"log"
	"os"
	"strings"
	"sync/atomic"
	"unsafe"
)

var debug = os.Getenv("DEBUG") == "1"

type statistics struct {
	ExitQueries    atomic.Int64
	Probes         atomic.Int64
	ParexFallbacks atomic.Int64
	JumpSteps      atomic.Int64
}

// Stats is a snapshot of the query counters.
type Stats struct {
	ExitQueries    int64
	Probes         int64
	ParexFallbacks int64
	JumpSteps      int64
}

// ZFastTrie is immutable once built; queries are safe for concurrent use.
type ZFastTrie struct {
	keys      []bits.BitString
	nodes     []node
	root      int32
	index     handleIndex
	indexKind IndexKind

	stat statistics
}

func (t *ZFastTrie) Len() int {
	return len(t.keys)
}

// Keys returns the stored strings in sorted order.
func (t *ZFastTrie) Keys() []bits.BitString {
	return append([]bits.BitString(nil), t.keys...)
}

func (t *ZFastTrie) IndexKind() IndexKind {
	return t.indexKind
}

func (t *ZFastTrie) Stats() Stats {
	return Stats{
		ExitQueries:    t.stat.ExitQueries.Load(),
		Probes:         t.stat.Probes.Load(),
		ParexFallbacks: t.stat.ParexFallbacks.Load(),
		JumpSteps:      t.stat.JumpSteps.Load(),
	}
}

func (t *ZFastTrie) ResetStats() {
	t.stat.ExitQueries.Store(0)
	t.stat.Probes.Store(0)
	t.stat.ParexFallbacks.Store(0)
	t.stat.JumpSteps.Store(0)
}

// fatBinarySearch finds the deepest node whose handle matches a prefix of x,
// walking prefix lengths in decreasing fatness. With strict set, a candidate
// must also have an extent that is a proper prefix of x; the result is then
// exactly the parent of the exit node.
func (t *ZFastTrie) fatBinarySearch(x bits.BitString, p prober, strict bool) int32 {
	res := none
	a, b := uint64(0), uint64(x.Size())
	m := bits.SearchMask(b)

	for a <= b {
		if a == 0 || m&(a-1) != m&b {
			f := uint64(0)
			if a != 0 {
				f = m & b
			}
			t.stat.Probes.Add(1)
			beta := p.probe(uint32(f))
			if beta != none && uint64(t.nodes[beta].handleLength()) == f &&
				(!strict || t.extentIsProperPrefix(beta, x)) {
				a = uint64(t.nodes[beta].rind) + 1
				res = beta
			} else {
				if f == 0 {
					break
				}
				b = f - 1
			}
		}
		m |= m >> 1
	}
	return res
}

func (t *ZFastTrie) locateExitOrParexProb(x bits.BitString, p prober) int32 {
	return t.fatBinarySearch(x, p, false)
}

func (t *ZFastTrie) locateParex(x bits.BitString, p prober) int32 {
	return t.fatBinarySearch(x, p, true)
}

// locateExitOrParex trusts the probabilistic search unless the handle it
// found is not a prefix of x.
func (t *ZFastTrie) locateExitOrParex(x bits.BitString, p prober) int32 {
	res := t.locateExitOrParexProb(x, p)
	if res != none && !t.handleIsPrefix(res, x) {
		res = t.locateParex(x, p)
	}
	return res
}

// locateExitFromNode descends one edge from sigma when x continues past its
// extent. A missing sigma means the root.
func (t *ZFastTrie) locateExitFromNode(x bits.BitString, sigma int32) int32 {
	if sigma == none {
		return t.root
	}
	n := &t.nodes[sigma]
	if !n.isLeaf() && t.extentIsProperPrefix(sigma, x) {
		return n.child(x.At(n.rind))
	}
	return sigma
}

// isExit holds iff x follows the path to eta and leaves the trie there.
func (t *ZFastTrie) isExit(eta int32, x bits.BitString) bool {
	n := &t.nodes[eta]
	if t.stringOf(eta).GetLCPLength(x) < n.lind {
		return false
	}
	return n.isLeaf() || !t.extentIsProperPrefix(eta, x)
}

// locateExit returns the exit node of x, or none for an empty trie. Hash
// collisions can only cost a second, exact, search.
func (t *ZFastTrie) locateExit(x bits.BitString) int32 {
	if t.root == none {
		return none
	}
	t.stat.ExitQueries.Add(1)
	p := t.index.newProber(x)
	eta := t.locateExitFromNode(x, t.locateExitOrParex(x, p))
	if !t.isExit(eta, x) {
		t.stat.ParexFallbacks.Add(1)
		if debug {
			log.Printf("zft: exit verification failed for %s, retrying exactly", x)
		}
		eta = t.locateExitFromNode(x, t.locateParex(x, p))
		errutil.BugOn(!t.isExit(eta, x), "exact search returned a wrong exit node %s for %s", t.nodes[eta].String(), x)
	}
	return eta
}

func (t *ZFastTrie) leftmost(i int32) int32 {
	for !t.nodes[i].isLeaf() {
		t.stat.JumpSteps.Add(1)
		i = t.nodes[i].jumpLeft
	}
	return i
}

func (t *ZFastTrie) rightmost(i int32) int32 {
	for !t.nodes[i].isLeaf() {
		t.stat.JumpSteps.Add(1)
		i = t.nodes[i].jumpRight
	}
	return i
}

func (t *ZFastTrie) leafString(i int32) (bits.BitString, bool) {
	if i == none {
		return bits.BitString{}, false
	}
	return t.keys[t.nodes[i].key], true
}

// neighbours returns the leaves holding the predecessor and successor of x.
func (t *ZFastTrie) neighbours(x bits.BitString) (pred, succ int32) {
	eta := t.locateExit(x)
	if eta == none {
		return none, none
	}
	if t.compareExtent(x, eta) <= 0 {
		leaf := t.leftmost(eta)
		return t.nodes[leaf].prev, leaf
	}
	leaf := t.rightmost(eta)
	return leaf, t.nodes[leaf].next
}

// PredQuery returns the greatest stored string smaller than x.
func (t *ZFastTrie) PredQuery(x bits.BitString) (bits.BitString, bool) {
	pred, _ := t.neighbours(x)
	return t.leafString(pred)
}

// SuccQuery returns the least stored string greater than or equal to x.
func (t *ZFastTrie) SuccQuery(x bits.BitString) (bits.BitString, bool) {
	_, succ := t.neighbours(x)
	return t.leafString(succ)
}

// ExPrefQuery reports whether x is a prefix of some stored string.
func (t *ZFastTrie) ExPrefQuery(x bits.BitString) bool {
	eta := t.locateExit(x)
	if eta == none {
		return false
	}
	return t.nodes[eta].rind >= x.Size() && t.extentLCP(eta, x) == x.Size()
}

// walkLeft follows left jump pointers from i until reaching a leaf or a node
// whose extent is at least length bits long. The leftmost leaf below the
// result is the leftmost leaf below i.
func (t *ZFastTrie) walkLeft(i int32, length uint32) int32 {
	for !t.nodes[i].isLeaf() && t.nodes[i].rind < length {
		t.stat.JumpSteps.Add(1)
		i = t.nodes[i].jumpLeft
	}
	return i
}

func (t *ZFastTrie) walkRight(i int32, length uint32) int32 {
	for !t.nodes[i].isLeaf() && t.nodes[i].rind < length {
		t.stat.JumpSteps.Add(1)
		i = t.nodes[i].jumpRight
	}
	return i
}

// ExRangeQuery reports whether some stored string s satisfies x < s < y.
func (t *ZFastTrie) ExRangeQuery(x, y bits.BitString) bool {
	if x.Compare(y) >= 0 || t.root == none {
		return false
	}

	alpha := t.locateExit(x)
	an := &t.nodes[alpha]
	if an.isLeaf() && an.rind == x.Size() && t.extentLCP(alpha, x) == x.Size() {
		// x is stored: the answer is its successor in the leaf list.
		next, ok := t.leafString(an.next)
		return ok && next.Compare(y) < 0
	}

	// Every leaf below alpha is greater than x.
	if t.compareExtent(x, alpha) <= 0 {
		alpha = t.walkLeft(alpha, y.Size())
		return t.compareExtent(y, alpha) > 0
	}

	// Every leaf below beta is smaller than y.
	beta := t.locateExit(y)
	if t.compareExtent(y, beta) > 0 {
		beta = t.walkRight(beta, x.Size())
		return t.compareExtent(x, beta) < 0
	}

	// x and y branch apart at their longest common prefix, which is the
	// extent of an internal node.
	z := x.LCP(y)
	eta := t.locateExit(z)
	en := &t.nodes[eta]
	errutil.BugOn(en.isLeaf() || en.rind != z.Size(), "lcp %s does not end at an internal node", z)

	alpha = t.walkRight(en.left, x.Size())
	if t.compareExtent(x, alpha) < 0 {
		return true
	}
	beta = t.walkLeft(en.right, y.Size())
	return t.compareExtent(y, beta) > 0
}

// ByteSize estimates the memory held by the trie.
func (t *ZFastTrie) ByteSize() int {
	return t.MemDetailed().TotalBytes
}

func (t *ZFastTrie) MemDetailed() utils.MemReport {
	keyBytes := 0
	for _, k := range t.keys {
		keyBytes += int(unsafe.Sizeof(k)) + int(k.Size()+63)/64*8
	}
	children := []utils.MemReport{
		utils.Leaf("header", int(unsafe.Sizeof(*t))),
		utils.Leaf("nodes", len(t.nodes)*int(unsafe.Sizeof(node{}))),
		utils.Leaf("keys", keyBytes),
	}
	if t.index != nil {
		children = append(children, t.index.memReport())
	}
	return utils.NewMemReport("zft_"+t.indexKind.String(), children...)
}

func (t *ZFastTrie) String() string {
	var sb strings.Builder
	sb.WriteString("ZFastTrie:\n")
	sb.WriteString(fmt.Sprintf("| keys: %d\n", len(t.keys)))
	sb.WriteString(fmt.Sprintf("| nodes: %d\n", len(t.nodes)))
	sb.WriteString(fmt.Sprintf("| index: %s\n", t.indexKind))
	sb.WriteString("| Root:")
	if t.root == none {
		sb.WriteString(" nil\n")
	} else {
		sb.WriteString(t.stringNode(t.root, "| | "))
	}
	return sb.String()
}

func (t *ZFastTrie) stringNode(i int32, prefix string) string {
	if i == none {
		return " nil\n"
	}
	n := &t.nodes[i]
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%sid: %d (%s)\n", prefix, i, n.kind))
	sb.WriteString(fmt.Sprintf("%sextent: %q\n", prefix, t.extent(i).String()))
	sb.WriteString(fmt.Sprintf("%shandle: %q\n", prefix, t.handle(i).String()))
	sb.WriteString(fmt.Sprintf("%srange: [%d, %d]\n", prefix, n.lind, n.rind))
	if n.isLeaf() {
		return sb.String()
	}
	sb.WriteString(fmt.Sprintf("%sjumps: %d / %d\n", prefix, n.jumpLeft, n.jumpRight))
	sb.WriteString(fmt.Sprintf("%sleftChild:", prefix))
	sb.WriteString(t.stringNode(n.left, prefix+"| "))
	sb.WriteString(fmt.Sprintf("%srightChild:", prefix))
	sb.WriteString(t.stringNode(n.right, prefix+"| "))
	return sb.String()
}

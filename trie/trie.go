// Package trie defines the query contract shared by every static structure
// over a prefix-free set of bit strings.
package trie

import (
	"StaticZFast/bits"
	"fmt"
)

// Trie answers order queries over a static set S of bit strings.
type Trie interface {
	// PredQuery returns the greatest member of S strictly smaller than x.
	PredQuery(x bits.BitString) (bits.BitString, bool)
	// SuccQuery returns the least member of S greater than or equal to x.
	SuccQuery(x bits.BitString) (bits.BitString, bool)
	// ExPrefQuery reports whether x is a prefix of some member of S.
	ExPrefQuery(x bits.BitString) bool
	// ExRangeQuery reports whether some member of S lies strictly between x and y.
	ExRangeQuery(x, y bits.BitString) bool
}

// Builder constructs a Trie from a prefix-free set of strings in any order.
type Builder func(keys []bits.BitString) (Trie, error)

func optString(s bits.BitString, ok bool) string {
	if !ok {
		return "none"
	}
	return s.String()
}

func sameAnswer(a bits.BitString, aok bool, b bits.BitString, bok bool) bool {
	return aok == bok && (!aok || a.Equal(b))
}

// CrossCheck runs every query against want and got and returns the first
// disagreement. Range queries are asked for every ordered pair of queries.
func CrossCheck(want, got Trie, queries []bits.BitString) error {
	for _, x := range queries {
		wp, wok := want.PredQuery(x)
		gp, gok := got.PredQuery(x)
		if !sameAnswer(wp, wok, gp, gok) {
			return fmt.Errorf("pred(%s): want %s, got %s", x, optString(wp, wok), optString(gp, gok))
		}

		ws, wok := want.SuccQuery(x)
		gs, gok := got.SuccQuery(x)
		if !sameAnswer(ws, wok, gs, gok) {
			return fmt.Errorf("succ(%s): want %s, got %s", x, optString(ws, wok), optString(gs, gok))
		}

		if w, g := want.ExPrefQuery(x), got.ExPrefQuery(x); w != g {
			return fmt.Errorf("pref(%s): want %t, got %t", x, w, g)
		}
	}

	for _, x := range queries {
		for _, y := range queries {
			if w, g := want.ExRangeQuery(x, y), got.ExRangeQuery(x, y); w != g {
				return fmt.Errorf("range(%s, %s): want %t, got %t", x, y, w, g)
			}
		}
	}
	return nil
}

// QueryStrings returns the keys plus strings around them that exercise the
// interesting branches: every prefix, every one-bit flip and one-bit extension.
func QueryStrings(keys []bits.BitString, limit int) []bits.BitString {
	seen := map[string]bool{}
	var res []bits.BitString
	add := func(s bits.BitString) {
		if limit > 0 && len(res) >= limit {
			return
		}
		if k := s.Key(); !seen[k] {
			seen[k] = true
			res = append(res, s)
		}
	}
	add(bits.BitString{})
	for _, k := range keys {
		add(k)
		add(k.AppendBit(false))
		add(k.AppendBit(true))
		for i := 0; i < int(k.Size()); i++ {
			p := k.Prefix(i)
			add(p)
			add(p.AppendBit(!k.At(uint32(i))))
		}
	}
	return res
}

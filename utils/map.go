package utils

import (
	"strings"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

func Map[T, U any](ts []T, f func(T) U) []U {
	us := make([]U, len(ts))
	for i, v := range ts {
		us[i] = f(v)
	}
	return us
}

// SplitList splits a comma separated flag value into trimmed, non-empty items.
func SplitList(s string) []string {
	var res []string
	for _, item := range Map(strings.Split(s, ","), strings.TrimSpace) {
		if item != "" {
			res = append(res, item)
		}
	}
	return res
}

// MapSorted applies f to the entries of m in increasing key order.
func MapSorted[K constraints.Ordered, V, W any](m map[K]V, f func(K, V) W) []W {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return Map(keys, func(k K) W { return f(k, m[k]) })
}

package bits

import "golang.org/x/exp/slices"

func less(a, b BitString) bool {
	return a.Compare(b) < 0
}

// Sort orders keys lexicographically in place.
func Sort(keys []BitString) {
	slices.SortFunc(keys, less)
}

func IsSorted(keys []BitString) bool {
	return slices.IsSortedFunc(keys, less)
}

// Dedup removes adjacent duplicates from a sorted slice, in place.
func Dedup(keys []BitString) []BitString {
	return slices.CompactFunc(keys, func(a, b BitString) bool {
		return a.Equal(b)
	})
}

// IsPrefixFree reports whether a sorted slice is strictly increasing and no
// element is a prefix of another. It returns the first offending index.
func IsPrefixFree(keys []BitString) (int, bool) {
	for i := 1; i < len(keys); i++ {
		if keys[i-1].Compare(keys[i]) >= 0 || keys[i].HasPrefix(keys[i-1]) {
			return i, false
		}
	}
	return -1, true
}

package bits

import "StaticZFast/errutil"

// BitStringIterator iterates over a sequence of BitStrings.
type BitStringIterator interface {
	// Next advances the iterator. Returns false once the sequence is exhausted.
	Next() bool

	// Value returns the current BitString. Only valid after Next() returned true.
	Value() BitString

	Error() error
}

// SliceBitStringIterator adapts a slice of BitStrings to BitStringIterator.
type SliceBitStringIterator struct {
	keys []BitString
	idx  int
}

func NewSliceBitStringIterator(keys []BitString) *SliceBitStringIterator {
	return &SliceBitStringIterator{keys: keys, idx: -1}
}

func (it *SliceBitStringIterator) Next() bool {
	it.idx++
	return it.idx < len(it.keys)
}

func (it *SliceBitStringIterator) Value() BitString {
	return it.keys[it.idx]
}

func (it *SliceBitStringIterator) Error() error {
	return nil
}

// CheckedSortedIterator wraps a BitStringIterator and panics if the yielded
// strings are not strictly increasing and prefix-free.
type CheckedSortedIterator struct {
	iter    BitStringIterator
	prev    BitString
	hasPrev bool
}

func NewCheckedSortedIterator(iter BitStringIterator) *CheckedSortedIterator {
	return &CheckedSortedIterator{iter: iter}
}

func (it *CheckedSortedIterator) Next() bool {
	if !it.iter.Next() {
		return false
	}
	val := it.iter.Value()
	if it.hasPrev {
		errutil.BugOn(it.prev.Compare(val) >= 0, "keys should be sorted and distinct: %s >= %s", it.prev, val)
		errutil.BugOn(val.HasPrefix(it.prev), "keys should be prefix-free: %s is a prefix of %s", it.prev, val)
	}
	it.prev = val
	it.hasPrev = true
	return true
}

func (it *CheckedSortedIterator) Value() BitString {
	return it.iter.Value()
}

func (it *CheckedSortedIterator) Error() error {
	return it.iter.Error()
}

// Collect drains an iterator into a slice.
func Collect(it BitStringIterator) ([]BitString, error) {
	var res []BitString
	for it.Next() {
		res = append(res, it.Value())
	}
	return res, it.Error()
}

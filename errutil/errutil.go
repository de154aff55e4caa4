package errutil

import (
	"fmt"
)

func First(errs ...error) error {
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

// Bug reports a broken contract. Static structures are never left half-built,
// so it always panics.
func Bug(format string, msg ...any) {
	panic(fmt.Sprintf(format, msg...))
}

func BugOn(cond bool, format string, msg ...any) {
	if cond {
		Bug(format, msg...)
	}
}

func BugOnNotEq(a, b any) {
	if a == b {
		return
	}
	Bug("BUG: a != b, %v != %v", a, b)
}

package errutil

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFirst(t *testing.T) {
	t.Parallel()
	e1 := errors.New("one")
	e2 := errors.New("two")
	require.NoError(t, First())
	require.NoError(t, First(nil, nil))
	require.Equal(t, e1, First(nil, e1, e2))
}

func TestBugOn(t *testing.T) {
	t.Parallel()
	require.NotPanics(t, func() { BugOn(false, "never") })
	require.PanicsWithValue(t, "bad 7", func() { BugOn(true, "bad %d", 7) })
	require.Panics(t, func() { BugOnNotEq(1, 2) })
	require.NotPanics(t, func() { BugOnNotEq(3, 3) })
}

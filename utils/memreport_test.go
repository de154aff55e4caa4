package utils

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemReport(t *testing.T) {
	t.Parallel()
	r := NewMemReport("trie",
		Leaf("nodes", 2048),
		NewMemReport("index", Leaf("table", 1000), Leaf("rank", 24)),
	)
	require.Equal(t, 2048+1024, r.TotalBytes)

	idx, ok := r.Find("index")
	require.True(t, ok)
	require.Equal(t, 1024, idx.TotalBytes)
	_, ok = r.Find("missing")
	require.False(t, ok)

	var buf bytes.Buffer
	r.Print(&buf)
	require.Equal(t, r.String(), buf.String())
	require.Contains(t, buf.String(), "- trie: 3.0 KiB (3,072 bytes)")
	require.Contains(t, buf.String(), "    - rank: 24 B (24 bytes)")

	var decoded MemReport
	require.NoError(t, json.Unmarshal([]byte(r.JSON()), &decoded))
	require.Equal(t, r, decoded)
}

func TestMap(t *testing.T) {
	t.Parallel()
	require.Equal(t, []int{2, 4, 6}, Map([]int{1, 2, 3}, func(x int) int { return 2 * x }))
	require.Equal(t, []string{"a1", "b2", "c3"}, MapSorted(map[string]int{"c": 3, "a": 1, "b": 2}, func(k string, v int) string {
		return k + string(rune('0'+v))
	}))
	require.Empty(t, MapSorted(map[int]int{}, func(k, v int) int { return k + v }))
	require.Equal(t, []string{"plain", "boom", "exact"}, SplitList(" plain,boom,, exact "))
	require.Empty(t, SplitList(""))
}

func TestAppendStats(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "stats.csv")
	require.NoError(t, AppendStats(path, "plain", 1, 2, 3))
	require.NoError(t, AppendStats(path, "boom"))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "plain,1,2,3\nboom\n", string(data))

	require.Error(t, AppendStats(filepath.Join(path, "nested"), "x"))
}

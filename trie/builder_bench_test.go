package trie_test

import (
	"StaticZFast/bits"
	"StaticZFast/trie"
	"StaticZFast/trie/naive"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"testing"
)

var (
	benchKeyCounts  = []int{1 << 10, 1 << 13, 1 << 15}
	benchBitLengths = []int{64, 128, 256}
	benchKeys       map[int]map[int][]bits.BitString // [bitLength][keyCount]
	benchOnce       sync.Once
)

func initBenchKeys() {
	benchOnce.Do(func() {
		benchKeys = make(map[int]map[int][]bits.BitString)
		r := rand.New(rand.NewSource(42)) // Fixed seed for reproducibility
		for _, bitLen := range benchBitLengths {
			benchKeys[bitLen] = make(map[int][]bits.BitString)
			for _, count := range benchKeyCounts {
				benchKeys[bitLen][count] = buildUniqueKeys(count, bitLen, r)
			}
		}
	})
}

func buildUniqueKeys(size int, bitLength int, r *rand.Rand) []bits.BitString {
	keys := make([]bits.BitString, 0, size)
	unique := make(map[string]bool, size)
	for len(keys) < size {
		k := bits.GenerateTextBitString((bitLength+7)/8, r)
		if !unique[k.Key()] {
			unique[k.Key()] = true
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Compare(keys[j]) < 0 })
	return keys
}

func benchmarkBuild(b *testing.B, build trie.Builder) {
	initBenchKeys()

	for _, bitLen := range benchBitLengths {
		for _, count := range benchKeyCounts {
			b.Run(fmt.Sprintf("KeySize=%d/Keys=%d", bitLen, count), func(b *testing.B) {
				keys := benchKeys[bitLen][count]

				b.ReportAllocs()
				b.ResetTimer()

				for i := 0; i < b.N; i++ {
					tr, err := build(keys)
					if err != nil {
						b.Fatalf("build failed: %v", err)
					}
					if tr == nil {
						b.Fatal("build returned nil")
					}
				}
			})
		}
	}
}

func benchmarkQuery(b *testing.B, build trie.Builder) {
	initBenchKeys()

	for _, bitLen := range benchBitLengths {
		count := benchKeyCounts[len(benchKeyCounts)-1]
		b.Run(fmt.Sprintf("KeySize=%d/Keys=%d", bitLen, count), func(b *testing.B) {
			keys := benchKeys[bitLen][count]
			tr, err := build(keys)
			if err != nil {
				b.Fatalf("build failed: %v", err)
			}
			r := rand.New(rand.NewSource(7))
			queries := make([]bits.BitString, 1024)
			for i := range queries {
				queries[i] = bits.GenerateTextBitString((bitLen+7)/8, r)
			}

			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				q := queries[i%len(queries)]
				tr.SuccQuery(q)
				tr.ExRangeQuery(q, queries[(i+1)%len(queries)])
			}
		})
	}
}

func BenchmarkBuild(b *testing.B) {
	for name, build := range builders {
		b.Run(name, func(b *testing.B) { benchmarkBuild(b, build) })
	}
	b.Run("naive", func(b *testing.B) {
		benchmarkBuild(b, func(keys []bits.BitString) (trie.Trie, error) { return naive.New(keys), nil })
	})
}

func BenchmarkQuery(b *testing.B) {
	for name, build := range builders {
		b.Run(name, func(b *testing.B) { benchmarkQuery(b, build) })
	}
}

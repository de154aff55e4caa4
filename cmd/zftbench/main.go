// Zftbench builds z-fast tries over random bit string sets, checks them
// against the sorted-slice oracle and reports memory, query speed and search
// counters.
//
// Usage:
//
//	go run ./cmd/zftbench -keys 100000 -maxlen 512 -index plain,succinct,boom
//
// Flags:
//
//	-keys      Number of keys to generate (default: 10,000)
//	-minlen    Minimum key length in bits (default: 1)
//	-maxlen    Maximum key length in bits (default: 256)
//	-fixed     All keys have -maxlen bits (default: false)
//	-text      Keys are -maxlen/8 alphanumeric bytes (default: false)
//	-index     Comma separated handle indexes: plain, succinct, boom, exact
//	           (default: plain,succinct,boom)
//	-rank      Rank structure of the succinct index (default: jacobson)
//	-seed      Seed for key generation and hashing (default: 42)
//	-queries   Number of random queries (default: 10,000)
//	-workers   Parallel query workers (default: 4)
//	-check     Cross-check every query against the oracle (default: true)
//	-json      Print memory reports as JSON (default: false)
//	-stats     Append a CSV line per index to this file (default: none)
package main

import (
	"StaticZFast/bits"
	"StaticZFast/errutil"
	"StaticZFast/rank"
	"StaticZFast/trie"
	"StaticZFast/trie/naive"
	"StaticZFast/trie/zft"
	"StaticZFast/utils"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"
)

type config struct {
	keys     int
	minLen   int
	maxLen   int
	fixed    bool
	text     bool
	indexes  []zft.IndexKind
	rank     rank.Kind
	seed     int64
	queries  int
	workers  int
	check    bool
	json     bool
	statsOut string
}

func parseFlags() (config, error) {
	var c config
	flag.IntVar(&c.keys, "keys", 10_000, "number of keys")
	flag.IntVar(&c.minLen, "minlen", 1, "minimum key length in bits")
	flag.IntVar(&c.maxLen, "maxlen", 256, "maximum key length in bits")
	flag.BoolVar(&c.fixed, "fixed", false, "generate keys of exactly -maxlen bits")
	flag.BoolVar(&c.text, "text", false, "generate alphanumeric text keys of -maxlen/8 bytes")
	indexFlag := flag.String("index", "plain,succinct,boom", "comma separated handle indexes")
	rankFlag := flag.String("rank", "jacobson", "rank structure: jacobson, naive or rsdic")
	flag.Int64Var(&c.seed, "seed", 42, "seed for key generation and hashing")
	flag.IntVar(&c.queries, "queries", 10_000, "number of random queries")
	flag.IntVar(&c.workers, "workers", 4, "parallel query workers")
	flag.BoolVar(&c.check, "check", true, "cross-check every query against the oracle")
	flag.BoolVar(&c.json, "json", false, "print memory reports as JSON")
	flag.StringVar(&c.statsOut, "stats", "", "append a CSV line per index to this file")
	flag.Parse()

	for _, name := range utils.SplitList(*indexFlag) {
		kind, err := zft.ParseIndexKind(name)
		if err != nil {
			return c, err
		}
		c.indexes = append(c.indexes, kind)
	}
	kind, err := rank.ParseKind(*rankFlag)
	if err != nil {
		return c, err
	}
	c.rank = kind
	if c.keys < 0 || c.queries < 0 || c.workers <= 0 {
		return c, fmt.Errorf("keys and queries must be non-negative and workers positive")
	}
	if c.minLen < 1 || c.maxLen < c.minLen {
		return c, fmt.Errorf("need 1 <= minlen <= maxlen, got %d and %d", c.minLen, c.maxLen)
	}
	return c, nil
}

func generateKeys(c config, r *rand.Rand) []bits.BitString {
	switch {
	case c.text:
		keys := make([]bits.BitString, c.keys)
		for i := range keys {
			keys[i] = bits.GenerateTextBitString(max(c.maxLen/8, 1), r)
		}
		bits.Sort(keys)
		return bits.Dedup(keys)
	case c.fixed:
		return bits.GenerateRandomBitStrings(c.keys, c.maxLen, r)
	}
	return bits.GeneratePrefixFree(c.keys, c.minLen, c.maxLen, r)
}

// generateQueries mixes stored keys, their prefixes and random strings.
func generateQueries(c config, keys []bits.BitString, r *rand.Rand) []bits.BitString {
	queries := make([]bits.BitString, c.queries)
	for i := range queries {
		switch {
		case len(keys) > 0 && i%3 == 0:
			queries[i] = keys[r.Intn(len(keys))]
		case len(keys) > 0 && i%3 == 1:
			k := keys[r.Intn(len(keys))]
			queries[i] = k.Prefix(r.Intn(int(k.Size()) + 1))
		default:
			queries[i] = bits.GenerateBitString(c.minLen+r.Intn(c.maxLen-c.minLen+1), r)
		}
	}
	return queries
}

func fingerprint(keys []bits.BitString) uint64 {
	var fp uint64
	for _, k := range keys {
		fp = fp*31 + k.Hash()
	}
	return fp
}

// runQueries splits the queries between workers; the trie is read-only.
func runQueries(t *zft.ZFastTrie, queries []bits.BitString, workers int) (time.Duration, error) {
	start := time.Now()
	var g errgroup.Group
	chunk := (len(queries) + workers - 1) / workers
	for w := 0; w < workers && w*chunk < len(queries); w++ {
		part := queries[w*chunk : min((w+1)*chunk, len(queries))]
		g.Go(func() error {
			for i, q := range part {
				t.PredQuery(q)
				t.SuccQuery(q)
				t.ExPrefQuery(q)
				t.ExRangeQuery(q, part[(i+1)%len(part)])
			}
			return nil
		})
	}
	err := g.Wait()
	return time.Since(start), err
}

func crossCheck(kind zft.IndexKind, want trie.Trie, got trie.Trie, queries []bits.BitString) error {
	bar := progressbar.Default(int64(len(queries)), "cross-check "+kind.String())
	for i, q := range queries {
		pair := []bits.BitString{q, queries[(i+1)%len(queries)]}
		if err := trie.CrossCheck(want, got, pair); err != nil {
			return errutil.First(fmt.Errorf("%s index: %w", kind, err), bar.Finish())
		}
		if err := bar.Add(1); err != nil {
			return err
		}
	}
	return bar.Finish()
}

func run(c config) error {
	r := rand.New(rand.NewSource(c.seed))
	keys := generateKeys(c, r)
	queries := generateQueries(c, keys, r)
	fmt.Printf("keys: %s (fingerprint %016x), queries: %s\n",
		humanize.Comma(int64(len(keys))), fingerprint(keys), humanize.Comma(int64(len(queries))))

	oracle := naive.New(keys)
	timings := map[string]time.Duration{}
	for _, kind := range c.indexes {
		start := time.Now()
		t, err := zft.Build(keys,
			zft.WithIndex(kind),
			zft.WithRank(c.rank),
			zft.WithSeed(uint64(c.seed)),
		)
		if err != nil {
			return err
		}
		buildTime := time.Since(start)
		timings[kind.String()+" build"] = buildTime

		report := t.MemDetailed()
		if c.json {
			fmt.Println(report.JSON())
		} else {
			report.Print(os.Stdout)
		}
		if len(keys) > 0 {
			fmt.Printf("%s: %.2f bits per key\n", kind, float64(report.TotalBytes*8)/float64(len(keys)))
		}

		if c.check && len(queries) > 0 {
			if err := crossCheck(kind, oracle, t, queries); err != nil {
				return err
			}
		}

		t.ResetStats()
		queryTime, err := runQueries(t, queries, c.workers)
		if err != nil {
			return err
		}
		timings[kind.String()+" queries"] = queryTime

		st := t.Stats()
		fmt.Printf("%s: exits %s, probes %s, exact retries %s, jump steps %s\n", kind,
			humanize.Comma(st.ExitQueries), humanize.Comma(st.Probes),
			humanize.Comma(st.ParexFallbacks), humanize.Comma(st.JumpSteps))

		if c.statsOut != "" {
			err := utils.AppendStats(c.statsOut, kind.String(),
				int64(len(keys)), int64(report.TotalBytes), buildTime.Nanoseconds(), queryTime.Nanoseconds(),
				st.ExitQueries, st.Probes, st.ParexFallbacks, st.JumpSteps)
			if err != nil {
				return err
			}
		}
	}

	lines := utils.MapSorted(timings, func(name string, d time.Duration) string {
		return fmt.Sprintf("%-20s %s", name, d.Round(time.Microsecond))
	})
	fmt.Println(strings.Join(lines, "\n"))
	return nil
}

func main() {
	c, err := parseFlags()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}
	if err := run(c); err != nil {
		fmt.Fprintf(os.Stderr, "zftbench: %v\n", err)
		os.Exit(1)
	}
}

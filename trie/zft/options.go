package zft

import (
	"StaticZFast/rank"
	"fmt"
	"log"
)

// IndexKind selects how handles are mapped to nodes.
type IndexKind int

const (
	// PlainIndex is a Go map keyed by 61-bit rolling digests of the handles.
	PlainIndex IndexKind = iota
	// SuccinctIndex stores node indices in a minimal perfect hash dictionary.
	SuccinctIndex
	// BoomIndex uses a BBHash over the handle digests plus a digest check.
	BoomIndex
	// ExactIndex keys a map by the handles themselves. It never returns a
	// wrong node but costs O(f) per lookup; it is the reference the hashed
	// indexes are measured against.
	ExactIndex
)

func (k IndexKind) String() string {
	switch k {
	case PlainIndex:
		return "plain"
	case SuccinctIndex:
		return "succinct"
	case BoomIndex:
		return "boom"
	case ExactIndex:
		return "exact"
	}
	return fmt.Sprintf("zft.IndexKind(%d)", int(k))
}

func ParseIndexKind(s string) (IndexKind, error) {
	for _, k := range []IndexKind{PlainIndex, SuccinctIndex, BoomIndex, ExactIndex} {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown handle index %q", s)
}

const (
	DefaultMaxAttempts = 1000
	DefaultBoomGamma   = 2.0
)

type Options struct {
	Index       IndexKind
	Seed        uint64
	MaxAttempts int
	// Rank is the rank structure of the succinct index.
	Rank      rank.Kind
	BoomGamma float64
	Logger    *log.Logger
}

type Option func(*Options)

func DefaultOptions() Options {
	return Options{
		Index:       PlainIndex,
		MaxAttempts: DefaultMaxAttempts,
		Rank:        rank.JacobsonKind,
		BoomGamma:   DefaultBoomGamma,
	}
}

func WithIndex(kind IndexKind) Option {
	return func(o *Options) { o.Index = kind }
}

func WithSeed(seed uint64) Option {
	return func(o *Options) { o.Seed = seed }
}

func WithMaxAttempts(n int) Option {
	return func(o *Options) { o.MaxAttempts = n }
}

func WithRank(kind rank.Kind) Option {
	return func(o *Options) { o.Rank = kind }
}

func WithBoomGamma(gamma float64) Option {
	return func(o *Options) { o.BoomGamma = gamma }
}

func WithLogger(l *log.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

func (o Options) logf(format string, args ...any) {
	switch {
	case o.Logger != nil:
		o.Logger.Printf("zft: "+format, args...)
	case debug:
		log.Printf("zft: "+format, args...)
	}
}

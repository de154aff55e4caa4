package mphdict

import (
	"StaticZFast/rank"
	"log"
)

const (
	// Gamma is the ratio of table vertices to keys.
	Gamma = 1.23

	// MinTableSize keeps tiny key sets peelable.
	MinTableSize = 101

	DefaultMaxAttempts = 1000
)

type Options struct {
	Seed        uint64
	MaxAttempts int
	Rank        rank.Kind
	Logger      *log.Logger
}

type Option func(*Options)

func DefaultOptions() Options {
	return Options{
		Seed:        0,
		MaxAttempts: DefaultMaxAttempts,
		Rank:        rank.JacobsonKind,
	}
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

// WithLogger reports retries; nil keeps the builder quiet unless DEBUG=1.
func WithLogger(l *log.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

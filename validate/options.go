package validate

import (
	"runtime"

	"github.com/tsawler/oxa/tables"
)

// DefaultMaxDepth is the nesting limit used when none is configured.
const DefaultMaxDepth = 100

type options struct {
	maxDepth        int // 0 disables the depth guard
	workers         int
	tables          tables.Config
	skipIdentifiers bool
	skipTables      bool
	skipMetadata    bool
}

// Option configures a validation run
type Option func(*options)

// WithMaxDepth sets the maximum node nesting depth (default: 100). Top-level
// title and children nodes are at depth 1. Zero or less disables the check.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		o.maxDepth = max(depth, 0)
	}
}

// WithWorkers bounds the number of checks Parallel runs at once (default:
// GOMAXPROCS).
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithTableConfig sets the table geometry configuration.
func WithTableConfig(cfg tables.Config) Option {
	return func(o *options) {
		o.tables = cfg
	}
}

// SkipIdentifiers disables the identifier uniqueness check.
func SkipIdentifiers() Option {
	return func(o *options) { o.skipIdentifiers = true }
}

// SkipTables disables table geometry checks.
func SkipTables() Option {
	return func(o *options) { o.skipTables = true }
}

// SkipMetadata disables the metadata graph checks.
func SkipMetadata() Option {
	return func(o *options) { o.skipMetadata = true }
}

func newOptions(opts []Option) *options {
	o := &options{
		maxDepth: DefaultMaxDepth,
		workers:  runtime.GOMAXPROCS(0),
		tables:   tables.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

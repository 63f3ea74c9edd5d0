package oxa

import (
	"log/slog"

	"github.com/tsawler/oxa/tables"
	"github.com/tsawler/oxa/validate"
)

// CheckOptions holds configuration for loading and validation.
type CheckOptions struct {
	// Depth guard, 0 disables it
	maxDepth int

	// Parallelism; 1 runs checks sequentially
	workers int

	// Check selection
	skipIdentifiers bool
	skipTables      bool
	skipMetadata    bool

	tableConfig tables.Config

	// Input size limit for Open
	maxSize int64

	logger *slog.Logger
}

// defaultOptions returns the default options.
func defaultOptions() CheckOptions {
	return CheckOptions{
		maxDepth:        validate.DefaultMaxDepth,
		workers:         1,
		skipIdentifiers: false,
		skipTables:      false,
		skipMetadata:    false,
		tableConfig:     tables.DefaultConfig(),
		maxSize:         64 << 20,
		logger:          nil, // nil means slog.Default()
	}
}

// clone creates a copy of CheckOptions. The logger is shared.
func (o CheckOptions) clone() CheckOptions {
	return o
}

func (o CheckOptions) log() *slog.Logger {
	if o.logger != nil {
		return o.logger
	}
	return slog.Default()
}

// validateOptions translates the options for the validate package.
func (o CheckOptions) validateOptions() []validate.Option {
	opts := []validate.Option{
		validate.WithMaxDepth(o.maxDepth),
		validate.WithWorkers(o.workers),
		validate.WithTableConfig(o.tableConfig),
	}
	if o.skipIdentifiers {
		opts = append(opts, validate.SkipIdentifiers())
	}
	if o.skipTables {
		opts = append(opts, validate.SkipTables())
	}
	if o.skipMetadata {
		opts = append(opts, validate.SkipMetadata())
	}
	return opts
}

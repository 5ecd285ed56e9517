// Package tabir provides the public API for optimizing Turkish dream
// interpretation exports into SFT training datasets.
package tabir

import (
	"runtime"

	"github.com/tabir/tabir/pkg/cleaner"
	"github.com/tabir/tabir/pkg/dream"
)

// Config holds all Optimizer configuration.
type Config struct {
	// Processing settings
	MinContentLength int
	Cleaner          cleaner.Cleaner

	// Concurrency settings
	Parallel  bool
	Workers   int
	ChunkSize int
}

// maxAutoWorkers caps automatic worker selection.
const maxAutoWorkers = 8

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MinContentLength: dream.DefaultMinContentLength,
	}
}

// defaultWorkers returns min(NumCPU, maxAutoWorkers).
func defaultWorkers() int {
	workers := runtime.NumCPU()
	if workers > maxAutoWorkers {
		workers = maxAutoWorkers
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}

// Option configures an Optimizer.
type Option func(*Config)

// WithMinContentLength sets the minimum cleaned-content length in runes
// a record must reach to be kept.
func WithMinContentLength(n int) Option {
	return func(c *Config) {
		c.MinContentLength = n
	}
}

// WithWorkers sets the number of concurrent chunk workers.
// Zero or negative selects min(NumCPU, 8).
func WithWorkers(n int) Option {
	return func(c *Config) {
		c.Workers = n
	}
}

// WithChunkSize overrides automatic chunk sizing.
func WithChunkSize(n int) Option {
	return func(c *Config) {
		c.ChunkSize = n
	}
}

// WithParallel enables chunked concurrent processing.
func WithParallel(enabled bool) Option {
	return func(c *Config) {
		c.Parallel = enabled
	}
}

// WithCleaner injects a custom HTML cleaner. The default is the
// htmltext cleaner.
func WithCleaner(cl cleaner.Cleaner) Option {
	return func(c *Config) {
		c.Cleaner = cl
	}
}

package tabir

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/tabir/tabir/internal/logger"
	"github.com/tabir/tabir/pkg/dream"
	"github.com/tabir/tabir/pkg/sft"
)

// Version returns the module version of the tabir library.
// This returns the actual version consumers pulled via go get (e.g., "v1.0.0").
// Returns "(devel)" when built from source without version info.
func Version() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		return info.Main.Version
	}
	return "(unknown)"
}

// Result holds everything one optimization run produced.
type Result struct {
	Records        []*dream.CleanedRecord
	ChatExamples   []any
	PromptExamples []any

	OriginalCount  int
	ProcessedCount int
	FilteredCount  int

	// FailedChunks lists chunk ids whose task panicked; their records
	// are absent from Records.
	FailedChunks []int

	Duration time.Duration
}

// Optimizer is the main entry point for dataset optimization.
type Optimizer struct {
	processor *dream.Processor
	chat      *sft.ChatFormatter
	prompt    *sft.PromptFormatter
	config    Config
}

// New creates a new Optimizer.
func New(opts ...Option) *Optimizer {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers()
	}

	return &Optimizer{
		processor: dream.NewProcessor(cfg.Cleaner, cfg.MinContentLength),
		chat:      sft.NewChatFormatter(),
		prompt:    sft.NewPromptFormatter(),
		config:    cfg,
	}
}

// Workers returns the effective worker count.
func (o *Optimizer) Workers() int {
	return o.config.Workers
}

// MinContentLength returns the effective validation threshold.
func (o *Optimizer) MinContentLength() int {
	return o.processor.MinContentLength()
}

// Run cleans, validates and formats records into both training layouts.
// The concurrent path is taken when the Optimizer was built WithParallel;
// callers decide when a dataset is large enough to warrant it.
func (o *Optimizer) Run(ctx context.Context, records []dream.RawRecord) (*Result, error) {
	start := time.Now()

	var (
		result *Result
		err    error
	)
	if o.config.Parallel {
		result, err = o.runParallel(ctx, records)
	} else {
		result, err = o.runSequential(ctx, records)
	}
	if err != nil {
		return nil, err
	}

	result.OriginalCount = len(records)
	result.Duration = time.Since(start)

	logger.Info("optimization complete",
		"original", result.OriginalCount,
		"processed", result.ProcessedCount,
		"filtered", result.FilteredCount,
		"chat_examples", len(result.ChatExamples),
		"prompt_examples", len(result.PromptExamples),
		"duration", result.Duration)

	return result, nil
}

func (o *Optimizer) runSequential(ctx context.Context, records []dream.RawRecord) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cleaned := o.processor.ProcessBatch(records)
	stats := o.processor.Stats()

	return &Result{
		Records:        cleaned,
		ChatExamples:   sft.FormatBatch(o.chat, cleaned),
		PromptExamples: sft.FormatBatch(o.prompt, cleaned),
		ProcessedCount: int(stats.Processed),
		FilteredCount:  int(stats.Filtered),
	}, nil
}

package tabir

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"

	"github.com/tabir/tabir/internal/logger"
	"github.com/tabir/tabir/pkg/dream"
	"github.com/tabir/tabir/pkg/sft"
)

// progressInterval controls how often the shared progress counter is logged.
const progressInterval = 50

// chunkResult carries one chunk's output back to the merge step.
type chunkResult struct {
	id             int
	records        []*dream.CleanedRecord
	chatExamples   []any
	promptExamples []any
	processed      int
	filtered       int
	err            error
}

// runParallel processes records in contiguous chunks with at most
// cfg.Workers tasks in flight. Chunks land in an indexed slot slice and
// merge in index order, so output order matches input order for any
// worker and chunk configuration.
func (o *Optimizer) runParallel(ctx context.Context, records []dream.RawRecord) (*Result, error) {
	chunkSize := chunkSizeFor(len(records), o.config.Workers, o.config.ChunkSize)
	chunks := splitChunks(records, chunkSize)

	logger.Info("processing records in parallel",
		"records", len(records),
		"chunks", len(chunks),
		"chunk_size", chunkSize,
		"workers", o.config.Workers)

	o.processor.ResetStats()

	results := make([]chunkResult, len(chunks))
	sem := semaphore.NewWeighted(int64(o.config.Workers))
	var progress atomic.Int64
	var wg sync.WaitGroup

	for i := range chunks {
		wg.Add(1)
		go func(id int, chunk []dream.RawRecord) {
			defer wg.Done()
			results[id] = o.processChunk(ctx, sem, id, chunk, &progress, len(records))
		}(i, chunks[i])
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Result{
		Records:        make([]*dream.CleanedRecord, 0, len(records)),
		ChatExamples:   make([]any, 0, len(records)),
		PromptExamples: make([]any, 0, len(records)),
	}
	for i := range results {
		cr := &results[i]
		if cr.err != nil {
			logger.Error("chunk failed", "chunk", cr.id, "size", len(chunks[cr.id]), "error", cr.err)
			result.FailedChunks = append(result.FailedChunks, cr.id)
			continue
		}
		result.Records = append(result.Records, cr.records...)
		result.ChatExamples = append(result.ChatExamples, cr.chatExamples...)
		result.PromptExamples = append(result.PromptExamples, cr.promptExamples...)
		result.ProcessedCount += cr.processed
		result.FilteredCount += cr.filtered
	}

	return result, nil
}

// processChunk runs the sequential pipeline over one chunk. A panic in
// the pipeline is recovered into the chunk's error slot so one bad
// chunk cannot take down the run.
func (o *Optimizer) processChunk(
	ctx context.Context,
	sem *semaphore.Weighted,
	id int,
	chunk []dream.RawRecord,
	progress *atomic.Int64,
	total int,
) (cr chunkResult) {
	cr.id = id
	defer func() {
		if r := recover(); r != nil {
			cr = chunkResult{id: id, err: fmt.Errorf("panic: %v", r)}
		}
	}()

	if err := sem.Acquire(ctx, 1); err != nil {
		cr.err = err
		return cr
	}
	defer sem.Release(1)

	cleaned := make([]*dream.CleanedRecord, 0, len(chunk))
	for _, record := range chunk {
		rec, ok := o.processor.ProcessRecord(record)
		if done := progress.Add(1); done%progressInterval == 0 {
			logger.Info("processing record", "current", done, "total", total)
		}
		if !ok {
			cr.filtered++
			continue
		}
		cleaned = append(cleaned, rec)
		cr.processed++
	}

	cr.records = cleaned
	cr.chatExamples = sft.FormatBatch(o.chat, cleaned)
	cr.promptExamples = sft.FormatBatch(o.prompt, cleaned)
	return cr
}

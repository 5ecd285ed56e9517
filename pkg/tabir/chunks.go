package tabir

import (
	"runtime"
	"time"

	"github.com/tabir/tabir/internal/logger"
	"github.com/tabir/tabir/pkg/dream"
)

// benchmarkSampleSize is the number of records a throughput probe runs.
const benchmarkSampleSize = 10

// chunkSizeFor picks a chunk size for n records across w workers. An
// explicit override wins; otherwise the size is banded by record count
// with a floor per band.
func chunkSizeFor(n, workers, override int) int {
	if override > 0 {
		return override
	}
	if workers < 1 {
		workers = 1
	}
	switch {
	case n <= 100:
		return max(1, n/workers)
	case n <= 500:
		return max(10, n/(2*workers))
	case n <= 2000:
		return max(25, n/(3*workers))
	default:
		return max(50, n/(4*workers))
	}
}

// splitChunks cuts records into contiguous chunks of at most size
// records each.
func splitChunks(records []dream.RawRecord, size int) [][]dream.RawRecord {
	if size < 1 {
		size = 1
	}
	chunks := make([][]dream.RawRecord, 0, (len(records)+size-1)/size)
	for start := 0; start < len(records); start += size {
		end := min(start+size, len(records))
		chunks = append(chunks, records[start:end])
	}
	return chunks
}

// EstimateWorkers suggests a worker count for recordCount records
// averaging avgKB kilobytes each.
func EstimateWorkers(recordCount int, avgKB float64) int {
	cpu := runtime.NumCPU()
	dataMB := float64(recordCount) * avgKB / 1024

	switch {
	case dataMB < 50:
		return min(cpu, 4)
	case dataMB < 200:
		return min(cpu, 6)
	default:
		return min(cpu, maxAutoWorkers)
	}
}

// BenchmarkResult reports sequential throughput over a small sample.
type BenchmarkResult struct {
	SampleSize    int
	RecordsPerSec float64
	PerRecord     time.Duration
}

// Benchmark measures sequential throughput over the first ten records.
// Datasets smaller than the sample report zero throughput.
func (o *Optimizer) Benchmark(records []dream.RawRecord) BenchmarkResult {
	if len(records) < benchmarkSampleSize {
		return BenchmarkResult{SampleSize: len(records)}
	}

	// A fresh processor keeps the probe out of the run counters.
	processor := dream.NewProcessor(o.config.Cleaner, o.config.MinContentLength)
	sample := records[:benchmarkSampleSize]

	start := time.Now()
	for _, record := range sample {
		processor.ProcessRecord(record)
	}
	elapsed := time.Since(start)

	result := BenchmarkResult{SampleSize: benchmarkSampleSize}
	if elapsed > 0 {
		result.RecordsPerSec = float64(benchmarkSampleSize) / elapsed.Seconds()
		result.PerRecord = elapsed / benchmarkSampleSize
	}

	logger.Debug("benchmark complete",
		"sample", result.SampleSize,
		"records_per_sec", result.RecordsPerSec,
		"per_record", result.PerRecord)

	return result
}

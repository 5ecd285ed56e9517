package dream

import (
	"strings"
	"sync/atomic"
	"unicode/utf8"

	"github.com/tabir/tabir/internal/logger"
	"github.com/tabir/tabir/pkg/cleaner"
	"github.com/tabir/tabir/pkg/cleaner/htmltext"
)

// DefaultMinContentLength is the minimum cleaned-content length (in
// runes) a record must reach to be kept.
const DefaultMinContentLength = 100

// progressInterval controls how often batch progress is logged.
const progressInterval = 50

// Processor turns raw portal records into validated CleanedRecords.
// Counters use atomics so a single Processor can be shared by the
// concurrent batch path.
type Processor struct {
	cleaner          cleaner.Cleaner
	minContentLength int

	processed atomic.Int64
	filtered  atomic.Int64
}

// ProcessorStats summarizes what a Processor has done since its last reset.
type ProcessorStats struct {
	Processed int64 `json:"processed_count"`
	Filtered  int64 `json:"filtered_count"`
	Total     int64 `json:"total_processed"`
}

// NewProcessor creates a Processor using the given cleaner. A nil cleaner
// defaults to the htmltext cleaner; a non-positive minContentLength
// defaults to DefaultMinContentLength.
func NewProcessor(c cleaner.Cleaner, minContentLength int) *Processor {
	if c == nil {
		c = htmltext.New(nil)
	}
	if minContentLength <= 0 {
		minContentLength = DefaultMinContentLength
	}
	return &Processor{
		cleaner:          c,
		minContentLength: minContentLength,
	}
}

// MinContentLength returns the configured validation threshold.
func (p *Processor) MinContentLength() int {
	return p.minContentLength
}

// ProcessRecord cleans and validates a single record. The second return
// value is false when the record was filtered out or failed to clean.
func (p *Processor) ProcessRecord(record RawRecord) (*CleanedRecord, bool) {
	title := record.Title()
	htmlContent := record.Text()

	cleanedContent, err := p.cleaner.Clean(htmlContent)
	if err != nil {
		logger.Warn("record cleaning failed",
			"id", record.ID(),
			"title", truncate(title, 50),
			"error", err)
		p.filtered.Add(1)
		return nil, false
	}

	seo := ExtractSEO(record.Properties())

	processed := &CleanedRecord{
		OriginalID:     record.ID(),
		Title:          strings.TrimSpace(title),
		Description:    strings.TrimSpace(record.Description()),
		CleanedContent: cleanedContent,
		DreamSymbol:    ExtractSymbol(title),
		Tags:           FilterTags(record.Tags()),
		SEOTitle:       seo.Title,
		SEODescription: seo.Description,
		OriginalLength: utf8.RuneCountInString(htmlContent),
		CleanedLength:  utf8.RuneCountInString(cleanedContent),
		PublishDate:    record.PublishDate(),
		URL:            record.URL(),
	}

	if !IsAcceptable(processed, p.minContentLength) {
		logger.Debug("record filtered out", "title", truncate(title, 50))
		p.filtered.Add(1)
		return nil, false
	}

	p.processed.Add(1)
	return processed, true
}

// ProcessBatch processes records sequentially, preserving input order.
// Stats are reset at the start of each batch.
func (p *Processor) ProcessBatch(records []RawRecord) []*CleanedRecord {
	logger.Info("processing records", "count", len(records))
	p.ResetStats()

	processed := make([]*CleanedRecord, 0, len(records))
	for i, record := range records {
		if i%progressInterval == 0 {
			logger.Info("processing record", "current", i+1, "total", len(records))
		}
		if rec, ok := p.ProcessRecord(record); ok {
			processed = append(processed, rec)
		}
	}

	stats := p.Stats()
	logger.Info("processing complete",
		"processed", stats.Processed,
		"filtered", stats.Filtered)

	return processed
}

// Stats returns the counters accumulated since the last reset.
func (p *Processor) Stats() ProcessorStats {
	processed := p.processed.Load()
	filtered := p.filtered.Load()
	return ProcessorStats{
		Processed: processed,
		Filtered:  filtered,
		Total:     processed + filtered,
	}
}

// ResetStats zeroes the processed/filtered counters.
func (p *Processor) ResetStats() {
	p.processed.Store(0)
	p.filtered.Store(0)
}

// truncate shortens s to at most n runes for log output.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

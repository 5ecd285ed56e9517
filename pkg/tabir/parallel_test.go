package tabir

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/tabir/tabir/pkg/dream"
)

func recordIDs(records []*dream.CleanedRecord) []string {
	ids := make([]string, 0, len(records))
	for _, record := range records {
		ids = append(ids, record.OriginalID)
	}
	return ids
}

func TestOptimizer_Run_ParallelMatchesSequential(t *testing.T) {
	symbols := []string{"Su", "Yılan", "Altın", "Kalem", "Deniz"}
	records := make([]dream.RawRecord, 120)
	for i := range records {
		// Every third record is too short to survive validation.
		records[i] = makeRawRecord(i, symbols[i%len(symbols)], i%3 != 2)
	}

	sequential, err := New().Run(context.Background(), records)
	if err != nil {
		t.Fatalf("sequential Run() error = %v", err)
	}
	parallel, err := New(WithParallel(true), WithWorkers(4)).Run(context.Background(), records)
	if err != nil {
		t.Fatalf("parallel Run() error = %v", err)
	}

	if sequential.ProcessedCount != 80 || sequential.FilteredCount != 40 {
		t.Fatalf("sequential counts = %d/%d, want 80/40",
			sequential.ProcessedCount, sequential.FilteredCount)
	}
	if parallel.ProcessedCount != sequential.ProcessedCount {
		t.Errorf("ProcessedCount = %d, want %d", parallel.ProcessedCount, sequential.ProcessedCount)
	}
	if parallel.FilteredCount != sequential.FilteredCount {
		t.Errorf("FilteredCount = %d, want %d", parallel.FilteredCount, sequential.FilteredCount)
	}
	if len(parallel.FailedChunks) != 0 {
		t.Errorf("FailedChunks = %v, want none", parallel.FailedChunks)
	}

	if !reflect.DeepEqual(recordIDs(parallel.Records), recordIDs(sequential.Records)) {
		t.Errorf("parallel record order diverges from sequential order")
	}
	if !reflect.DeepEqual(parallel.ChatExamples, sequential.ChatExamples) {
		t.Errorf("parallel chat examples diverge from sequential output")
	}
	if !reflect.DeepEqual(parallel.PromptExamples, sequential.PromptExamples) {
		t.Errorf("parallel prompt examples diverge from sequential output")
	}
}

// panicCleaner passes content through but panics on a marker string.
type panicCleaner struct{}

func (panicCleaner) Clean(html string) (string, error) {
	if strings.Contains(html, "BOOM") {
		panic("corrupt record")
	}
	return html, nil
}

func (panicCleaner) Name() string { return "panic" }

func TestOptimizer_Run_PanickedChunkExcluded(t *testing.T) {
	// Passthrough cleaner, so Text must already be acceptable content.
	text := "Rüyada kitap görmek ilim ve bilgiye işaret eder. Bu rüya tabir " +
		"geleneğinde hayırlı sayılır ve kısmetin açılacağına delalet eder. " +
		"Yakında sevindirici gelişmeler yaşanacağına yorumlanır."

	records := make([]dream.RawRecord, 30)
	for i := range records {
		body := text
		if i == 15 {
			body = text + " BOOM"
		}
		records[i] = dream.RawRecord{
			"_id":   map[string]any{"$oid": fmt.Sprintf("id-%04d", i)},
			"Title": "Rüyada Kitap Görmek",
			"Text":  body,
		}
	}

	o := New(
		WithParallel(true),
		WithWorkers(2),
		WithChunkSize(10),
		WithCleaner(panicCleaner{}),
	)
	result, err := o.Run(context.Background(), records)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !reflect.DeepEqual(result.FailedChunks, []int{1}) {
		t.Fatalf("FailedChunks = %v, want [1]", result.FailedChunks)
	}
	if result.ProcessedCount != 20 || result.FilteredCount != 0 {
		t.Errorf("counts = %d/%d, want 20/0", result.ProcessedCount, result.FilteredCount)
	}

	wantIDs := make([]string, 0, 20)
	for i := 0; i < 10; i++ {
		wantIDs = append(wantIDs, fmt.Sprintf("id-%04d", i))
	}
	for i := 20; i < 30; i++ {
		wantIDs = append(wantIDs, fmt.Sprintf("id-%04d", i))
	}
	if !reflect.DeepEqual(recordIDs(result.Records), wantIDs) {
		t.Errorf("Records = %v, want surviving chunks in input order %v",
			recordIDs(result.Records), wantIDs)
	}
}

package dream

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tabir/tabir/internal/logger"
)

// LoadRecords reads a portal JSON export from path. The file must hold a
// non-empty JSON array; the first few elements are checked to be objects
// so an obviously wrong file fails before any processing starts.
// Elements that later turn out to be malformed are filtered per record,
// not treated as load errors.
func LoadRecords(path string) ([]RawRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading input file: %w", err)
	}

	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parsing input file %s: %w", path, err)
	}

	list, ok := parsed.([]any)
	if !ok {
		return nil, fmt.Errorf("input file %s: top-level JSON value must be an array", path)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("input file %s: record array is empty", path)
	}

	sampleSize := min(5, len(list))
	for i := 0; i < sampleSize; i++ {
		if _, ok := list[i].(map[string]any); !ok {
			return nil, fmt.Errorf("input file %s: element %d is not an object", path, i)
		}
	}

	records := make([]RawRecord, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			records = append(records, RawRecord(m))
		} else {
			// Malformed elements past the sampled prefix become empty
			// records and get filtered during processing.
			records = append(records, RawRecord{})
		}
	}

	logger.Info("loaded input records", "path", path, "count", len(records))
	return records, nil
}

// LoadCleanedRecords reads a processed dataset (the processed_data.json
// written by optimize) back into memory for analysis.
func LoadCleanedRecords(path string) ([]*CleanedRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading processed file: %w", err)
	}

	var records []*CleanedRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing processed file %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("processed file %s: no records", path)
	}
	for i, r := range records {
		if r == nil {
			return nil, fmt.Errorf("processed file %s: element %d is null", path, i)
		}
	}

	logger.Info("loaded processed records", "path", path, "count", len(records))
	return records, nil
}

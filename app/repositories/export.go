package repositories

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dummyapi/app/metrics"

	"github.com/pkg/errors"
)

const exportTimestampLayout = "20060102-150405"

// StoredResult is a RequestResult with the error flattened to a string.
type StoredResult struct {
	RequestID    int           `json:"request_id"`
	Response     string        `json:"response"`
	StatusCode   int           `json:"status_code"`
	ResponseTime time.Duration `json:"response_time"`
	Error        string        `json:"error,omitempty"`
}

// ConvertResults prepares request results for serialization.
func ConvertResults(results []metrics.RequestResult) []StoredResult {
	stored := make([]StoredResult, len(results))
	for i, result := range results {
		stored[i] = StoredResult{
			RequestID:    result.RequestID,
			Response:     result.Response,
			StatusCode:   result.StatusCode,
			ResponseTime: result.ResponseTime,
		}
		if result.Error != nil {
			stored[i].Error = result.Error.Error()
		}
	}
	return stored
}

// ExportResults writes every request result to results-<timestamp>.json in dir.
func ExportResults(dir string, results []metrics.RequestResult, startedAt time.Time) (string, error) {
	return writeJSON(dir, "results", startedAt, ConvertResults(results))
}

// ExportMetrics writes the aggregate metrics to aggregated-<timestamp>.json in dir.
func ExportMetrics(dir string, m metrics.AggregateMetrics, startedAt time.Time) (string, error) {
	return writeJSON(dir, "aggregated", startedAt, m)
}

func writeJSON(dir, prefix string, startedAt time.Time, v interface{}) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrapf(err, "create output directory %s", dir)
	}

	path := filepath.Join(dir, fmt.Sprintf("%s-%s.json", prefix, startedAt.Format(exportTimestampLayout)))
	file, err := os.Create(path)
	if err != nil {
		return "", errors.Wrapf(err, "create %s", path)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return "", errors.Wrapf(err, "write %s", path)
	}
	return path, nil
}

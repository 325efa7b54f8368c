package report

import (
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"dummyapi/app/metrics"
	"dummyapi/app/models"

	"github.com/pkg/errors"
)

// FileTimestampLayout is the DDMMYY-HHMMSS prefix of report file names.
const FileTimestampLayout = "020106-150405"

//go:embed report_template.html
var templateFS embed.FS

var reportTemplate = template.Must(template.ParseFS(templateFS, "report_template.html"))

// Data is everything the report template renders
type Data struct {
	Config    models.BenchConfig
	StartTime string
	Metrics   metrics.AggregateMetrics
	Results   []metrics.RequestResult
}

// FileName returns the report file name for a run started at startedAt.
func FileName(startedAt time.Time) string {
	return fmt.Sprintf("%s_benchmark_report.html", startedAt.Format(FileTimestampLayout))
}

// Generate renders an HTML report of a benchmark run into dir and returns
// the path of the written file.
func Generate(dir string, config models.BenchConfig, m metrics.AggregateMetrics, results []metrics.RequestResult, startedAt time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrapf(err, "create output directory %s", dir)
	}

	data := Data{
		Config:    config,
		StartTime: startedAt.Format(time.RFC1123),
		Metrics:   m,
		Results:   results,
	}

	path := filepath.Join(dir, FileName(startedAt))
	file, err := os.Create(path)
	if err != nil {
		return "", errors.Wrapf(err, "create report %s", path)
	}
	defer file.Close()

	if err := reportTemplate.Execute(file, data); err != nil {
		return "", errors.Wrapf(err, "render report %s", path)
	}
	return path, nil
}

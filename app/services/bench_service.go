package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"dummyapi/app/bench"
	"dummyapi/app/metrics"
	"dummyapi/app/models"
	htmlreport "dummyapi/app/report"
	"dummyapi/app/repositories"
)

// BenchService runs benchmarks and records their outcome
type BenchService struct {
	runRepo repositories.RunRepository
	client  bench.Doer
}

// BenchReport is the outcome of one Execute call
type BenchReport struct {
	Run     *models.Run
	Results []metrics.RequestResult
	Files   []string
}

// NewBenchService creates a new BenchService. runRepo may be nil, in which
// case runs are not stored. A nil client is replaced by one sized for each run.
func NewBenchService(runRepo repositories.RunRepository, client bench.Doer) *BenchService {
	return &BenchService{
		runRepo: runRepo,
		client:  client,
	}
}

// Execute validates config, runs the benchmark, stores the run and, when
// outputDir is set, exports the raw results and metrics as JSON files next to
// an HTML report.
func (s *BenchService) Execute(ctx context.Context, config models.BenchConfig, outputDir string) (*BenchReport, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid benchmark config: %w", err)
	}

	client := s.client
	if client == nil {
		client = bench.NewHTTPClient(config.Concurrency, config.RequestTimeout())
	}

	startedAt := time.Now()
	results, err := bench.Run(ctx, &config, client)
	if err != nil {
		return nil, err
	}

	report := &BenchReport{
		Run: &models.Run{
			StartedAt: startedAt,
			Elapsed:   time.Since(startedAt),
			Config:    config,
			Metrics:   metrics.Calculate(results),
		},
		Results: results,
	}

	if s.runRepo != nil {
		if err := s.runRepo.Create(report.Run); err != nil {
			return nil, fmt.Errorf("failed to store run: %w", err)
		}
		log.Printf("Stored benchmark run %d", report.Run.ID)
	}

	if outputDir != "" {
		path, err := repositories.ExportResults(outputDir, results, startedAt)
		if err != nil {
			return nil, err
		}
		report.Files = append(report.Files, path)

		path, err = repositories.ExportMetrics(outputDir, report.Run.Metrics, startedAt)
		if err != nil {
			return nil, err
		}
		report.Files = append(report.Files, path)

		path, err = htmlreport.Generate(outputDir, config, report.Run.Metrics, results, startedAt)
		if err != nil {
			return nil, err
		}
		report.Files = append(report.Files, path)
	}

	return report, nil
}

// History returns stored runs in ascending ID order
func (s *BenchService) History(limit, offset int) ([]*models.Run, error) {
	if s.runRepo == nil {
		return nil, nil
	}
	if limit < 1 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.runRepo.List(limit, offset)
}

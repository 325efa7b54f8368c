package bench

import (
	"context"
	"log"
	"sync"
	"time"

	"dummyapi/app/metrics"
	"dummyapi/app/models"
)

// Run benchmarks the configured endpoint. At most config.Concurrency requests
// are in flight at once, and no new request is started once config.Duration
// seconds have passed. Cancelling ctx also aborts requests in flight.
func Run(ctx context.Context, config *models.BenchConfig, client Doer) ([]metrics.RequestResult, error) {
	body, err := LoadBody(config)
	if err != nil {
		return nil, err
	}

	log.Printf("Benchmarking %s with %s method, %d requests, %d concurrent requests, for %d seconds",
		config.URL, config.Method, config.Requests, config.Concurrency, config.Duration)

	dispatchCtx, cancel := context.WithTimeout(ctx, time.Duration(config.Duration)*time.Second)
	defer cancel()

	results := make(chan metrics.RequestResult, min(config.Requests, config.Concurrency))
	semaphore := make(chan struct{}, config.Concurrency)
	timeout := config.RequestTimeout()

	var collected []metrics.RequestResult
	collectorDone := make(chan struct{})
	go func() {
		defer close(collectorDone)
		for result := range results {
			collected = append(collected, result)
		}
	}()

	var wg sync.WaitGroup
dispatch:
	for i := 0; i < config.Requests; i++ {
		select {
		case semaphore <- struct{}{}:
		case <-dispatchCtx.Done():
			break dispatch
		}
		// Both cases may be ready at once; the deadline wins.
		if dispatchCtx.Err() != nil {
			<-semaphore
			break dispatch
		}

		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			defer func() { <-semaphore }()

			reqCtx, reqCancel := context.WithTimeout(ctx, timeout)
			defer reqCancel()

			start := time.Now()
			response, status, err := doRequest(reqCtx, client, config.Method, config.URL, body)
			results <- metrics.RequestResult{
				RequestID:    id,
				Response:     response,
				StatusCode:   status,
				ResponseTime: time.Since(start),
				Error:        err,
			}
		}(i)
	}

	wg.Wait()
	close(results)
	<-collectorDone

	return collected, nil
}

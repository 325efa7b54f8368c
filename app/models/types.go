package models

import (
	"time"

	"dummyapi/app/metrics"
)

// Post is the placeholder resource served by the dummy API.
type Post struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// BenchConfig describes one benchmark run against an HTTP endpoint.
type BenchConfig struct {
	URL         string        `json:"url" validate:"required,url"`
	Method      string        `json:"method" validate:"required,oneof=GET POST PUT DELETE"`
	Requests    int           `json:"requests" validate:"gt=0"`
	Concurrency int           `json:"concurrency" validate:"gt=0,max=100000"`
	Duration    int           `json:"duration" validate:"gt=0"`
	Body        string        `json:"body,omitempty"`
	Timeout     time.Duration `json:"timeout"`
}

// Run is a finished benchmark as kept in the run store.
type Run struct {
	ID        int                      `json:"id"`
	StartedAt time.Time                `json:"started_at"`
	Elapsed   time.Duration            `json:"elapsed"`
	Config    BenchConfig              `json:"config"`
	Metrics   metrics.AggregateMetrics `json:"metrics"`
}

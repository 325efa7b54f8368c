package metrics

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

// RequestResult stores the outcome of a single benchmark request
type RequestResult struct {
	RequestID    int
	Response     string
	StatusCode   int
	ResponseTime time.Duration
	Error        error
}

// Failed reports whether the request errored or returned a non-2xx status.
func (r RequestResult) Failed() bool {
	return r.Error != nil || r.StatusCode < 200 || r.StatusCode >= 300
}

// AggregateMetrics summarizes a whole benchmark run.
// Response times only cover successful requests.
type AggregateMetrics struct {
	TotalRequests     int           `json:"total_requests"`
	FailedRequests    int           `json:"failed_requests"`
	SuccessRequests   int           `json:"success_requests"`
	SuccessRate       float64       `json:"success_rate"`
	AverageResponse   time.Duration `json:"average_response"`
	MinResponse       time.Duration `json:"min_response"`
	MaxResponse       time.Duration `json:"max_response"`
	TotalResponseTime time.Duration `json:"total_response_time"`
}

// Calculate aggregates the results of a run
func Calculate(results []RequestResult) AggregateMetrics {
	m := AggregateMetrics{MinResponse: time.Duration(math.MaxInt64)}

	for _, result := range results {
		m.TotalRequests++

		if result.Failed() {
			m.FailedRequests++
			continue
		}

		m.SuccessRequests++
		m.TotalResponseTime += result.ResponseTime
		if result.ResponseTime < m.MinResponse {
			m.MinResponse = result.ResponseTime
		}
		if result.ResponseTime > m.MaxResponse {
			m.MaxResponse = result.ResponseTime
		}
	}

	if m.SuccessRequests > 0 {
		m.AverageResponse = m.TotalResponseTime / time.Duration(m.SuccessRequests)
	} else {
		m.MinResponse = 0
	}

	if m.TotalRequests > 0 {
		m.SuccessRate = float64(m.SuccessRequests) / float64(m.TotalRequests) * 100
	}

	return m
}

// Print renders the metrics as a two column table.
func Print(w io.Writer, m AggregateMetrics) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Metric", "Value"})
	table.SetAutoWrapText(false)

	table.Append([]string{"Total Requests", fmt.Sprintf("%d", m.TotalRequests)})
	table.Append([]string{"Successful Requests", fmt.Sprintf("%d", m.SuccessRequests)})
	table.Append([]string{"Failed Requests", fmt.Sprintf("%d", m.FailedRequests)})
	table.Append([]string{"Success Rate", rateColor(m.SuccessRate).Sprintf("%.2f%%", m.SuccessRate)})
	table.Append([]string{"Average Response Time", m.AverageResponse.String()})
	table.Append([]string{"Minimum Response Time", m.MinResponse.String()})
	table.Append([]string{"Maximum Response Time", m.MaxResponse.String()})

	table.Render()
}

func rateColor(rate float64) *color.Color {
	switch {
	case rate >= 99:
		return color.New(color.FgGreen)
	case rate >= 90:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

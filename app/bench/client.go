package bench

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"dummyapi/app/models"
)

// Doer sends HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewHTTPClient returns a client tuned for many concurrent requests to one host.
func NewHTTPClient(concurrency int, timeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConns = concurrency
	transport.MaxIdleConnsPerHost = concurrency
	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}

// LoadBody resolves the configured request body.
// A body prefixed with @ is read from the named file.
func LoadBody(config *models.BenchConfig) ([]byte, error) {
	if config.Body == "" {
		return nil, nil
	}
	if path, ok := config.BodyFile(); ok {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error opening file: %w", err)
		}
		return data, nil
	}
	return []byte(config.Body), nil
}

// doRequest sends one request and returns the response body and status code.
func doRequest(ctx context.Context, client Doer, method, url string, body []byte) (string, int, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return "", 0, fmt.Errorf("error creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", resp.StatusCode, fmt.Errorf("error reading response body: %w", err)
	}

	return string(respBody), resp.StatusCode, nil
}

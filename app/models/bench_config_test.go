package models

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBenchConfigValidation(t *testing.T) {
	bodyFile := filepath.Join(t.TempDir(), "body.json")
	require.NoError(t, os.WriteFile(bodyFile, []byte(`{"title":"x"}`), 0644))

	valid := func() BenchConfig {
		return BenchConfig{
			URL:         "http://localhost:5000/posts",
			Method:      "GET",
			Requests:    100,
			Concurrency: 10,
			Duration:    1,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *BenchConfig)
		wantErr string
	}{
		{
			name:   "valid configuration",
			mutate: func(c *BenchConfig) {},
		},
		{
			name:    "missing URL",
			mutate:  func(c *BenchConfig) { c.URL = "" },
			wantErr: "URL",
		},
		{
			name:    "malformed URL",
			mutate:  func(c *BenchConfig) { c.URL = "not a url" },
			wantErr: "URL",
		},
		{
			name:    "invalid HTTP method",
			mutate:  func(c *BenchConfig) { c.Method = "PATCH" },
			wantErr: "Method",
		},
		{
			name:    "zero concurrency",
			mutate:  func(c *BenchConfig) { c.Concurrency = 0 },
			wantErr: "Concurrency",
		},
		{
			name:    "concurrency above the limit",
			mutate:  func(c *BenchConfig) { c.Concurrency = 1 << 40 },
			wantErr: "Concurrency",
		},
		{
			name:   "huge request count",
			mutate: func(c *BenchConfig) { c.Requests = 1 << 50 },
		},
		{
			name:    "zero requests",
			mutate:  func(c *BenchConfig) { c.Requests = 0 },
			wantErr: "Requests",
		},
		{
			name:    "missing body for POST",
			mutate:  func(c *BenchConfig) { c.Method = "POST" },
			wantErr: "a request body is required for the POST method",
		},
		{
			name:    "missing body for PUT",
			mutate:  func(c *BenchConfig) { c.Method = "PUT" },
			wantErr: "a request body is required for the PUT method",
		},
		{
			name: "raw body for POST",
			mutate: func(c *BenchConfig) {
				c.Method = "POST"
				c.Body = `{"title":"x"}`
			},
		},
		{
			name: "file body for PUT",
			mutate: func(c *BenchConfig) {
				c.Method = "PUT"
				c.Body = "@" + bodyFile
			},
		},
		{
			name: "missing body file",
			mutate: func(c *BenchConfig) {
				c.Method = "POST"
				c.Body = "@" + filepath.Join(t.TempDir(), "nope.json")
			},
			wantErr: "does not exist",
		},
		{
			name:    "negative timeout",
			mutate:  func(c *BenchConfig) { c.Timeout = -time.Second },
			wantErr: "timeout cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := valid()
			tt.mutate(&config)
			err := config.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRequestTimeout(t *testing.T) {
	config := BenchConfig{}
	assert.Equal(t, DefaultRequestTimeout, config.RequestTimeout())

	config.Timeout = 2 * time.Second
	assert.Equal(t, 2*time.Second, config.RequestTimeout())
}

func TestBodyFile(t *testing.T) {
	config := BenchConfig{Body: "@payload.json"}
	path, ok := config.BodyFile()
	assert.True(t, ok)
	assert.Equal(t, "payload.json", path)

	config.Body = `{"title":"x"}`
	_, ok = config.BodyFile()
	assert.False(t, ok)
}

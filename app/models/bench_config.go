package models

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DefaultRequestTimeout bounds a single benchmark request when no timeout is configured.
const DefaultRequestTimeout = 30 * time.Second

var validate = validator.New()

// Validate checks the config before a benchmark is started
func (c *BenchConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}

	if c.Timeout < 0 {
		return errors.New("timeout cannot be negative")
	}

	if c.Method == http.MethodPost || c.Method == http.MethodPut {
		if c.Body == "" {
			return fmt.Errorf("a request body is required for the %s method", c.Method)
		}
	}

	if path, ok := c.BodyFile(); ok {
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("the file specified for the request body does not exist: %s", path)
		}
	}

	return nil
}

// BodyFile reports the file path of an @-prefixed body.
func (c *BenchConfig) BodyFile() (string, bool) {
	if !strings.HasPrefix(c.Body, "@") {
		return "", false
	}
	return strings.TrimPrefix(c.Body, "@"), true
}

// RequestTimeout returns the configured timeout or the default one.
func (c *BenchConfig) RequestTimeout() time.Duration {
	if c.Timeout == 0 {
		return DefaultRequestTimeout
	}
	return c.Timeout
}

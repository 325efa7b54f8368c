package logging

import (
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dummyapi.log")

	closer := Setup(path)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	log.Printf("GET /posts 200")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "GET /posts 200")
}

func TestSetupStderr(t *testing.T) {
	closer := Setup("")
	assert.NoError(t, closer.Close())
	assert.Equal(t, os.Stderr, log.Writer())
}

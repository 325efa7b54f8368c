package main

import (
	"bytes"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"dummyapi/app/routes"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	output, err := executeCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, output, "dummyapi version "+CliVersion)
}

func TestHelpListsCommands(t *testing.T) {
	output, err := executeCommand(t, "--help")
	require.NoError(t, err)

	for _, name := range []string{"serve", "bench", "history", "version", "--addr", "--log-file"} {
		assert.Contains(t, output, name)
	}
}

func TestUnknownCommand(t *testing.T) {
	_, err := executeCommand(t, "unknown")
	assert.Error(t, err)
}

func TestBenchValidation(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "missing URL",
			args:    []string{"bench"},
			wantErr: "URL",
		},
		{
			name:    "invalid HTTP method",
			args:    []string{"bench", "-u", "http://127.0.0.1:5000/posts", "-m", "PATCH"},
			wantErr: "Method",
		},
		{
			name:    "missing body for POST",
			args:    []string{"bench", "-u", "http://127.0.0.1:5000/posts", "-m", "POST"},
			wantErr: "a request body is required for the POST method",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestBenchAndHistory(t *testing.T) {
	color.NoColor = true

	srv := httptest.NewServer(routes.SetupRoutes())
	defer srv.Close()

	dir := t.TempDir()
	dbPath := filepath.Join(dir, "runs")
	outputDir := filepath.Join(dir, "output")

	output, err := executeCommand(t, "bench",
		"-u", srv.URL+"/posts",
		"-m", "POST",
		"-b", `{"title":"x"}`,
		"-r", "20",
		"-c", "4",
		"-d", "10",
		"--db", dbPath,
		"--output", outputDir,
	)
	require.NoError(t, err)
	assert.Contains(t, output, "100.00%")
	assert.Contains(t, output, "Stored as run 1")

	files, err := os.ReadDir(outputDir)
	require.NoError(t, err)
	assert.Len(t, files, 3)

	output, err = executeCommand(t, "history", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, output, "POST")
	assert.Contains(t, output, srv.URL+"/posts")
}

func TestHistoryEmpty(t *testing.T) {
	output, err := executeCommand(t, "history", "--db", filepath.Join(t.TempDir(), "runs"))
	require.NoError(t, err)
	assert.Contains(t, output, "No benchmark runs stored")
}

func TestStoreCommands(t *testing.T) {
	color.NoColor = true

	srv := httptest.NewServer(routes.SetupRoutes())
	defer srv.Close()

	dir := t.TempDir()
	dbPath := filepath.Join(dir, "runs")
	restoredPath := filepath.Join(dir, "restored")
	backupFile := filepath.Join(dir, "runs.bak")

	_, err := executeCommand(t, "bench", "-u", srv.URL+"/posts/42", "-m", "DELETE",
		"-r", "5", "-c", "1", "--db", dbPath, "--output", "")
	require.NoError(t, err)

	output, err := executeCommand(t, "store", "backup", backupFile, "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, output, "backed up successfully")

	output, err = executeCommand(t, "store", "restore", backupFile, "--db", restoredPath)
	require.NoError(t, err)
	assert.Contains(t, output, "restored successfully")

	output, err = executeCommand(t, "history", "--db", restoredPath)
	require.NoError(t, err)
	assert.Contains(t, output, srv.URL+"/posts/42")

	output, err = executeCommand(t, "store", "clean", "--yes", "--db", restoredPath)
	require.NoError(t, err)
	assert.Contains(t, output, "cleaned successfully")

	output, err = executeCommand(t, "history", "--db", restoredPath)
	require.NoError(t, err)
	assert.Contains(t, output, "No benchmark runs stored")
}

func TestStoreCleanCancelled(t *testing.T) {
	var buf bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&buf)
	cmd.SetIn(bytes.NewBufferString("n\n"))
	cmd.SetArgs([]string{"store", "clean", "--db", filepath.Join(t.TempDir(), "runs")})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "Operation cancelled")
}

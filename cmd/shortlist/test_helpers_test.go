package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// newTestCmd returns a command whose stdout and stderr are captured.
func newTestCmd() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	return cmd, &stdout, &stderr
}

// writeFile writes content to name inside a fresh temp dir and returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// isolateEnv clears the environment the commands read so a local .env does
// not leak into tests.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"GEMINI_API_KEY", "REDIS_ADDR", "KAFKA_BROKERS", "DATABASE_URL", "LOG_LEVEL", "LOG_JSON"} {
		t.Setenv(key, "")
	}
	configPath = ""
	verbose = false
	logJSON = false
}

const (
	testPosting = `Senior Backend Engineer

We build data pipelines in Python and Kubernetes.
Requirements:
- 5+ years of experience with distributed systems
- Bachelor's degree in Computer Science
`
	testResume = `Jane Doe
Backend engineer with 6 years of experience building Python services on Kubernetes.
B.Sc. Computer Science, 2015
Skills: Python, Kubernetes, PostgreSQL, Docker
`
)

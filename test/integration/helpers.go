//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	Token      string
	Campaign   string
	API        string
	KankaPath  string
	Verbose    bool
	ConfigPath string
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig(t *testing.T) *TestConfig {
	t.Helper()

	return &TestConfig{
		Token:      os.Getenv("KANKA_TOKEN"),
		Campaign:   os.Getenv("KANKA_CAMPAIGN"),
		API:        os.Getenv("KANKA_API"),
		KankaPath:  getKankaPath(),
		Verbose:    os.Getenv("KANKA_VERBOSE") == "true",
		ConfigPath: filepath.Join(t.TempDir(), "config.yml"),
	}
}

// getKankaPath determines the path to the kanka binary
func getKankaPath() string {
	if path := os.Getenv("KANKA_BINARY_PATH"); path != "" {
		return path
	}

	for _, candidate := range []string{"../../kanka", "./kanka", "../kanka"} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "kanka"
}

// SkipIfMissingConfig skips the test unless a token and a campaign are set.
// Every test writes to that campaign, so use a scratch campaign.
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.Token == "" || config.Campaign == "" {
		t.Skip("KANKA_TOKEN or KANKA_CAMPAIGN not set, skipping integration test")
	}

	if _, err := exec.LookPath(config.KankaPath); err != nil {
		t.Skipf("kanka binary not found at %s, skipping integration test", config.KankaPath)
	}
}

// CommandRunner runs the kanka binary against an isolated config file
type CommandRunner struct {
	config *TestConfig
	t      *testing.T
}

// NewCommandRunner creates a new command runner
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	return &CommandRunner{
		config: config,
		t:      t,
	}
}

// Run executes a kanka command and returns output
func (runner *CommandRunner) Run(args ...string) (string, string, error) {
	return runner.RunWithInput("", args...)
}

// RunWithInput executes a kanka command with stdin input
func (runner *CommandRunner) RunWithInput(input string, args ...string) (string, string, error) {
	args = append([]string{"--config", runner.config.ConfigPath}, args...)

	// #nosec G204 -- the binary path comes from the test environment
	cmd := exec.Command(runner.config.KankaPath, args...)

	var stdoutBuf, stderrBuf bytes.Buffer

	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf
	cmd.Stdin = strings.NewReader(input)
	cmd.Env = append(os.Environ(),
		"KANKA_TOKEN="+runner.config.Token,
		"KANKA_CAMPAIGN="+runner.config.Campaign,
	)

	if runner.config.API != "" {
		cmd.Env = append(cmd.Env, "KANKA_API="+runner.config.API)
	}

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.KankaPath, strings.Join(args, " "))
	}

	err := cmd.Run()
	stdout := stdoutBuf.String()
	stderr := stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// RunJSON executes a kanka command with JSON output and decodes the result
func (runner *CommandRunner) RunJSON(args ...string) map[string]any {
	runner.t.Helper()

	stdout, stderr, err := runner.Run(append(args, "--output", "json")...)
	require.NoError(runner.t, err, "kanka %s failed: %s", strings.Join(args, " "), stderr)

	var decoded map[string]any
	require.NoError(runner.t, json.Unmarshal([]byte(stdout), &decoded), "output is not a JSON object: %s", stdout)

	return decoded
}

// CleanupEntity attempts to delete a test record
func (runner *CommandRunner) CleanupEntity(command string, id int) {
	stdout, stderr, err := runner.Run(command, "delete", fmt.Sprint(id), "--force")
	if err != nil && runner.config.Verbose {
		runner.t.Logf("Cleanup warning for %s %d: %s\nStderr: %s", command, id, stdout, stderr)
	}
}

// GenerateTestName creates a unique test resource name
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().Unix())
}

// IntField reads a JSON number as an int
func IntField(t *testing.T, record map[string]any, key string) int {
	t.Helper()

	value, ok := record[key].(float64)
	require.True(t, ok, "field %s is not a number: %v", key, record[key])

	return int(value)
}

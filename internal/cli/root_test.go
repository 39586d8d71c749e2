package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/trackers/pkg/types"
)

type result struct {
	code   int
	stdout string
	stderr string
}

// runCLI executes the command tree with a private config dir appended to
// args and input fed to stdin.
func runCLI(t *testing.T, configDir, input string, args ...string) result {
	t.Helper()
	var out, errOut bytes.Buffer
	args = append([]string{"--config-dir", configDir}, args...)
	code := run(context.Background(), args, strings.NewReader(input), &out, &errOut)
	return result{code: code, stdout: out.String(), stderr: errOut.String()}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// unsetEnv clears key for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestVersion(t *testing.T) {
	r := runCLI(t, t.TempDir(), "", "version")
	assert.Equal(t, exitSuccess, r.code)
	assert.Contains(t, r.stdout, "trackers v0.1.0")
	assert.Contains(t, r.stdout, "module: github.com/mesh-intelligence/trackers")
}

func TestUnknownCommandIsUserError(t *testing.T) {
	r := runCLI(t, t.TempDir(), "", "bogus")
	assert.Equal(t, exitUserError, r.code)
	assert.Contains(t, r.stderr, "unknown command")
}

func TestTrackersRunOnBothBackends(t *testing.T) {
	tests := []struct {
		command string
		input   string
		want    string
	}{
		{"tasks", "1\nBuy milk\n3\n4\n", "1. Buy milk [Pending]"},
		{"inventory", "1\nWidget\n9.99\n10\n3\n6\n", "Name: Widget, Price: $9.99, Stock: 10"},
		{"library", "Alice\n2\nC# Fundamentals\n6\n8\n", "- C# Fundamentals"},
		{"grades", "1\nAnn\n1\n2\n1\nMath\n90\n3\n4\n", "Average Score: 90.00"},
	}
	for _, backend := range []string{types.BackendMemory, types.BackendSQLite} {
		for _, tt := range tests {
			t.Run(backend+"/"+tt.command, func(t *testing.T) {
				r := runCLI(t, t.TempDir(), tt.input, "--backend", backend, tt.command)
				require.Equal(t, exitSuccess, r.code, r.stderr)
				assert.Contains(t, r.stdout, tt.want)
			})
		}
	}
}

func TestTrackerEndsAtEOF(t *testing.T) {
	r := runCLI(t, t.TempDir(), "1\n", "tasks")
	assert.Equal(t, exitSuccess, r.code)
	assert.Contains(t, r.stdout, "Enter your task: ")
}

func TestInvalidConfigIsUserError(t *testing.T) {
	tests := []struct {
		name string
		args []string
		file string
		want string
	}{
		{name: "unknown backend flag", args: []string{"--backend", "postgres"}, want: "unknown backend"},
		{name: "unknown log level flag", args: []string{"--log-level", "loud"}, want: "unknown log level"},
		{name: "zero borrow limit", file: "borrow_limit: 0\n", want: "borrow limit must be positive"},
		{name: "malformed yaml", file: "backend: [\n", want: "read config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.file != "" {
				writeFile(t, filepath.Join(dir, "config.yaml"), tt.file)
			}
			r := runCLI(t, dir, "", append(tt.args, "tasks")...)
			assert.Equal(t, exitUserError, r.code)
			assert.Contains(t, r.stderr, tt.want)
		})
	}
}

func TestConfigFileSetsBorrowLimitAndSeed(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.yaml"), "borrow_limit: 1\nlibrary_seed:\n  - Go in Action\n  - Learning Go\n")

	r := runCLI(t, dir, "Alice\n2\nGo in Action\n2\n4\n8\n", "library")
	require.Equal(t, exitSuccess, r.code, r.stderr)
	assert.Contains(t, r.stdout, "You have reached the borrowing limit of 1 books.")
	assert.Contains(t, r.stdout, "- Learning Go (available)")
	assert.NotContains(t, r.stdout, "C# Fundamentals")
}

func TestDebugLogsGoToStderr(t *testing.T) {
	r := runCLI(t, t.TempDir(), "1\nBuy milk\n4\n", "--log-level", "debug", "tasks")
	require.Equal(t, exitSuccess, r.code, r.stderr)
	assert.Contains(t, r.stderr, `"message":"task added"`)
	assert.Contains(t, r.stderr, `"service":"tasks"`)
	assert.Contains(t, r.stderr, `"session":`)
	assert.NotContains(t, r.stdout, "task added")
}

func TestInitWritesDefaultsOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")

	r := runCLI(t, dir, "", "init")
	require.Equal(t, exitSuccess, r.code, r.stderr)
	assert.Contains(t, r.stdout, "Wrote ")

	data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	var cfg types.Config
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	assert.Equal(t, types.DefaultConfig(), cfg)

	writeFile(t, filepath.Join(dir, "config.yaml"), "backend: sqlite\n")
	r = runCLI(t, dir, "", "init")
	require.Equal(t, exitSuccess, r.code, r.stderr)
	assert.Contains(t, r.stdout, "Config already exists")

	data, err = os.ReadFile(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "backend: sqlite\n", string(data))
}

func TestConfigCommandLayersSources(t *testing.T) {
	unsetEnv(t, "TRACKERS_BACKEND")
	unsetEnv(t, "TRACKERS_LOG_LEVEL")
	unsetEnv(t, "TRACKERS_BORROW_LIMIT")

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.yaml"), "backend: sqlite\nborrow_limit: 5\nlog_level: info\n")
	writeFile(t, filepath.Join(dir, ".env"), "TRACKERS_BORROW_LIMIT=7\n")
	t.Cleanup(func() { _ = os.Unsetenv("TRACKERS_BORROW_LIMIT") })

	r := runCLI(t, dir, "", "--log-level", "debug", "config")
	require.Equal(t, exitSuccess, r.code, r.stderr)

	var cfg types.Config
	require.NoError(t, yaml.Unmarshal([]byte(r.stdout), &cfg))
	assert.Equal(t, types.BackendSQLite, cfg.Backend, "config file")
	assert.Equal(t, 7, cfg.BorrowLimit, ".env overrides config file")
	assert.Equal(t, "debug", cfg.LogLevel, "flag overrides config file")
	assert.Equal(t, types.DefaultLibrarySeed, cfg.LibrarySeed, "default")
}

func TestConfigDirFromEnv(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.yaml"), "backend: sqlite\n")
	t.Setenv("TRACKERS_CONFIG_DIR", dir)

	var out, errOut bytes.Buffer
	code := run(context.Background(), []string{"config"}, strings.NewReader(""), &out, &errOut)
	require.Equal(t, exitSuccess, code, errOut.String())
	assert.Contains(t, out.String(), "# config dir: "+dir)
	assert.Contains(t, out.String(), "backend: sqlite")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitSysError, exitCode(sysError(os.ErrClosed)))
	assert.Equal(t, exitUserError, exitCode(userError(os.ErrClosed)))
	assert.Equal(t, exitUserError, exitCode(os.ErrClosed))
}

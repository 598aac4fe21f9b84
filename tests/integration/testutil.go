// Package integration runs the hbnb binary end to end.
package integration

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

var (
	// hbnbBin is the path to the built hbnb binary.
	hbnbBin string
	// buildErr captures any build error.
	buildErr error
)

// BuildError wraps a build error with output.
type BuildError struct {
	Err    error
	Output string
}

func (e *BuildError) Error() string {
	return e.Err.Error() + ": " + e.Output
}

// FindProjectRoot finds the project root by walking up and looking for go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		goModPath := filepath.Join(dir, "go.mod")
		if _, err := os.Stat(goModPath); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// SetHbnbBin sets the path to the hbnb binary (called from TestMain).
func SetHbnbBin(path string) {
	hbnbBin = path
}

// SetBuildErr sets the build error (called from TestMain).
func SetBuildErr(err error) {
	buildErr = err
}

// cleanEnv returns os.Environ() with all HBNB_* and XDG_* variables removed,
// providing a clean baseline for subprocess isolation.
func cleanEnv() []string {
	var env []string
	for _, e := range os.Environ() {
		if strings.HasPrefix(e, "HBNB_") || strings.HasPrefix(e, "XDG_") {
			continue
		}
		env = append(env, e)
	}
	return env
}

// TestEnv provides an isolated test environment with its own config and data directory.
type TestEnv struct {
	t       *testing.T
	TempDir string
	Config  string
	DataDir string
	// Env holds extra KEY=VALUE variables for every command.
	Env []string
}

// NewTestEnv creates a new isolated test environment using file storage.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	if buildErr != nil {
		t.Fatalf("failed to build hbnb: %v", buildErr)
	}
	if hbnbBin == "" {
		t.Fatal("hbnb binary not built (hbnbBin is empty)")
	}

	tempDir := t.TempDir()
	dataDir := filepath.Join(tempDir, "data")
	configDir := filepath.Join(tempDir, "config")

	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	configContent := "storage: file\nlog_level: WARNING\ndata_dir: " + dataDir + "\n"
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	return &TestEnv{
		t:       t,
		TempDir: tempDir,
		Config:  configDir,
		DataDir: dataDir,
	}
}

// NewSQLiteTestEnv creates a test environment using the relational backend
// on SQLite.
func NewSQLiteTestEnv(t *testing.T) *TestEnv {
	t.Helper()
	e := NewTestEnv(t)
	e.Env = []string{"HBNB_TYPE_STORAGE=db", "HBNB_DB_DRIVER=sqlite"}
	return e
}

// CmdResult holds the result of an hbnb command execution.
type CmdResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// command prepares an hbnb invocation against this environment.
func (e *TestEnv) command(args ...string) *exec.Cmd {
	allArgs := append([]string{"--config-dir", e.Config, "--data-dir", e.DataDir}, args...)
	cmd := exec.Command(hbnbBin, allArgs...)
	cmd.Env = append(cleanEnv(), e.Env...)
	return cmd
}

// RunHbnb executes the hbnb CLI with the given arguments.
func (e *TestEnv) RunHbnb(args ...string) CmdResult {
	e.t.Helper()

	cmd := e.command(args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			e.t.Fatalf("failed to run hbnb: %v", err)
		}
	}

	return CmdResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}
}

// MustRunHbnb executes the hbnb CLI and fails the test if it returns non-zero.
func (e *TestEnv) MustRunHbnb(args ...string) CmdResult {
	e.t.Helper()
	result := e.RunHbnb(args...)
	if result.ExitCode != 0 {
		e.t.Fatalf("hbnb %v failed with exit code %d:\nstdout: %s\nstderr: %s",
			args, result.ExitCode, result.Stdout, result.Stderr)
	}
	return result
}

// ParseJSON parses JSON output into the target type.
func ParseJSON[T any](t *testing.T, jsonStr string) T {
	t.Helper()
	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		t.Fatalf("failed to parse JSON %q: %v", jsonStr, err)
	}
	return result
}

// ReadJSONFile reads and parses a JSON file.
func ReadJSONFile[T any](t *testing.T, path string) T {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read file %s: %v", path, err)
	}
	return ParseJSON[T](t, string(data))
}

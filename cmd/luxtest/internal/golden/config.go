// Package golden records and verifies .lux scripts against expected screen output.
package golden

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
)

// Default configuration values
const (
	DefaultTestDir     = "test/golden"
	DefaultLuxosCmd    = "luxos"
	DefaultTestTimeout = 30
	ScriptExt          = ".lux"
	ExpectedExt        = ".expected"
)

// Config holds the global configuration for luxtest.
type Config struct {
	TestDir     string
	LuxosCmd    string
	Verbose     bool
	TestTimeout int
}

// NewConfig creates a configuration with default values.
func NewConfig() *Config {
	return &Config{
		TestDir:     DefaultTestDir,
		LuxosCmd:    DefaultLuxosCmd,
		TestTimeout: DefaultTestTimeout,
	}
}

// Executor runs a script and returns everything it printed.
type Executor func(ctx context.Context, scriptPath string) (string, error)

// CommandExecutor runs scripts through the luxos binary in test mode.
func CommandExecutor(cfg *Config) Executor {
	return func(ctx context.Context, scriptPath string) (string, error) {
		bin, err := resolveCommand(cfg.LuxosCmd)
		if err != nil {
			return "", err
		}
		timeout := time.Duration(cfg.TestTimeout) * time.Second
		runCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		// --log-level error keeps INFO lines out of the recorded screen
		cmd := exec.CommandContext(runCtx, bin, "--test-mode", "--log-level", "error", "batch", scriptPath)
		cmd.Env = os.Environ()
		output, err := cmd.CombinedOutput()
		return string(output), err
	}
}

func resolveCommand(name string) (string, error) {
	if name != DefaultLuxosCmd {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
		return "", fmt.Errorf("luxos command not found: %s", name)
	}

	candidates := []string{"./bin/luxos", "bin/luxos"}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	if path, err := exec.LookPath(name); err == nil {
		return path, nil
	}
	return "", fmt.Errorf("luxos command not found. Tried: %v", append(candidates, name))
}

// ScriptPath returns the path of a test's script.
func ScriptPath(testDir, testName string) string {
	return filepath.Join(testDir, testName+ScriptExt)
}

// ExpectedPath returns the path of a test's golden file.
func ExpectedPath(testDir, testName string) string {
	return filepath.Join(testDir, testName+ExpectedExt)
}

// FindAllTests lists the test names in dir, sorted.
func FindAllTests(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*"+ScriptExt))
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(matches))
	for _, match := range matches {
		names = append(names, strings.TrimSuffix(filepath.Base(match), ScriptExt))
	}
	sort.Strings(names)
	return names, nil
}

// CleanOutput strips escape sequences and trailing newlines. Trailing
// spaces inside lines are kept.
func CleanOutput(output string) string {
	cleaned := ansi.Strip(output)
	cleaned = strings.ReplaceAll(cleaned, "\r\n", "\n")
	return strings.TrimRight(cleaned, "\n")
}

func readExpected(testDir, testName string) (string, error) {
	path := ExpectedPath(testDir, testName)
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read expected file %s: %w", path, err)
	}
	return strings.TrimRight(string(content), "\n"), nil
}

func runScript(ctx context.Context, exec Executor, cfg *Config, testName string, log func(string, ...any)) (string, error) {
	scriptPath := ScriptPath(cfg.TestDir, testName)
	if _, err := os.Stat(scriptPath); os.IsNotExist(err) {
		return "", fmt.Errorf("test script not found: %s", scriptPath)
	}
	output, err := exec(ctx, scriptPath)
	if err != nil {
		if cfg.Verbose {
			log("Command failed with error: %v\nOutput: %s\n", err, output)
		}
		return "", fmt.Errorf("failed to run %s: %w", scriptPath, err)
	}
	return CleanOutput(output), nil
}

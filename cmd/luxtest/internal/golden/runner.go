package golden

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Runner runs golden file tests.
type Runner struct {
	config *Config
	exec   Executor
	out    io.Writer
}

// NewRunner creates a runner that executes scripts with exec and reports to out.
func NewRunner(config *Config, exec Executor, out io.Writer) *Runner {
	if out == nil {
		out = os.Stdout
	}
	return &Runner{config: config, exec: exec, out: out}
}

func (r *Runner) logf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

// RunTest runs one test case and compares it with its golden file.
func (r *Runner) RunTest(ctx context.Context, testName string) error {
	if r.config.Verbose {
		r.logf("Running test: %s\n", testName)
	}

	actual, err := runScript(ctx, r.exec, r.config, testName, r.logf)
	if err != nil {
		return err
	}
	expected, err := readExpected(r.config.TestDir, testName)
	if err != nil {
		return err
	}
	if expected != actual {
		return fmt.Errorf("test failed: output doesn't match expected")
	}

	if r.config.Verbose {
		r.logf("Test passed: %s\n", testName)
	}
	return nil
}

// RunAllTests runs every test in the test directory.
func (r *Runner) RunAllTests(ctx context.Context) error {
	tests, err := FindAllTests(r.config.TestDir)
	if err != nil {
		return fmt.Errorf("failed to find tests: %w", err)
	}

	var failed []string
	passed := 0
	for _, test := range tests {
		if err := r.RunTest(ctx, test); err != nil {
			failed = append(failed, test)
			r.logf("FAIL %s: %v\n", test, err)
		} else {
			passed++
			r.logf("PASS %s\n", test)
		}
	}

	r.logf("\nResults: %d passed, %d failed\n", passed, len(failed))
	if len(failed) > 0 {
		return fmt.Errorf("tests failed: %v", failed)
	}
	return nil
}

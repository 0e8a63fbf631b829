package golden

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Recorder writes golden files from the current script output.
type Recorder struct {
	config *Config
	exec   Executor
	out    io.Writer
}

// NewRecorder creates a recorder.
func NewRecorder(config *Config, exec Executor, out io.Writer) *Recorder {
	if out == nil {
		out = os.Stdout
	}
	return &Recorder{config: config, exec: exec, out: out}
}

func (r *Recorder) logf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

// RecordTest runs a .lux script and saves its output as the expected result.
func (r *Recorder) RecordTest(ctx context.Context, testName string) error {
	if r.config.Verbose {
		r.logf("Recording test: %s\n", testName)
	}

	output, err := runScript(ctx, r.exec, r.config, testName, r.logf)
	if err != nil {
		return err
	}
	if err := os.WriteFile(ExpectedPath(r.config.TestDir, testName), []byte(output), 0o644); err != nil {
		return fmt.Errorf("failed to write expected file: %w", err)
	}

	if r.config.Verbose {
		r.logf("Recorded expected output for test: %s\n", testName)
	}
	return nil
}

// AcceptTest overwrites the golden file with the current output.
func (r *Recorder) AcceptTest(ctx context.Context, testName string) error {
	return r.RecordTest(ctx, testName)
}

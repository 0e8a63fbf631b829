package golden

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Differ shows how a script's output departs from its golden file.
type Differ struct {
	config *Config
	exec   Executor
	out    io.Writer
}

// NewDiffer creates a differ.
func NewDiffer(config *Config, exec Executor, out io.Writer) *Differ {
	if out == nil {
		out = os.Stdout
	}
	return &Differ{config: config, exec: exec, out: out}
}

func (d *Differ) logf(format string, args ...any) {
	_, _ = fmt.Fprintf(d.out, format, args...)
}

// ShowDiff runs a test and prints a line diff against the golden file.
func (d *Differ) ShowDiff(ctx context.Context, testName string) error {
	actual, err := runScript(ctx, d.exec, d.config, testName, d.logf)
	if err != nil {
		return err
	}
	expected, err := readExpected(d.config.TestDir, testName)
	if err != nil {
		return err
	}
	d.ShowDetailedDiff(expected, actual, testName)
	return nil
}

// ShowDetailedDiff prints both outputs and the lines that differ.
func (d *Differ) ShowDetailedDiff(expected, actual, testName string) {
	d.logf("=== Test: %s ===\n", testName)

	if expected == actual {
		d.logf("No differences found - test passes!\n")
		return
	}

	d.logf("\n--- Expected ---\n")
	d.printNumberedLines(expected)
	d.logf("\n--- Actual ---\n")
	d.printNumberedLines(actual)
	d.logf("\n--- Diff ---\n")

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(expected+"\n", actual+"\n")
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	for _, diff := range diffs {
		prefix := "  "
		switch diff.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		case diffmatchpatch.DiffEqual:
			// unchanged lines are skipped
			continue
		}
		for _, line := range strings.Split(strings.TrimSuffix(diff.Text, "\n"), "\n") {
			d.logf("%s%s\n", prefix, line)
		}
	}
}

func (d *Differ) printNumberedLines(content string) {
	for i, line := range strings.Split(content, "\n") {
		d.logf("%4d| %s\n", i+1, line)
	}
}

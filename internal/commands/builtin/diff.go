package builtin

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"luxos/internal/vfs"
	"luxos/pkg/luxtypes"
)

// DiffCommand compares two files line by line.
type DiffCommand struct {
	files *vfs.Store
}

// Name returns the command name "diff" for registration and lookup.
func (c *DiffCommand) Name() string {
	return "diff"
}

// Description returns a brief description of what the diff command does.
func (c *DiffCommand) Description() string {
	return "Compare two files line by line"
}

// Usage returns the syntax of the diff command.
func (c *DiffCommand) Usage() string {
	return "diff <file_a> <file_b>"
}

// HelpInfo returns structured help information for the diff command.
func (c *DiffCommand) HelpInfo() luxtypes.HelpInfo {
	return helpFor(c, []luxtypes.HelpExample{
		{Command: "diff old.txt new.txt", Description: "Show lines removed (-) and added (+)"},
	})
}

// Execute diffs args[0] against args[1].
func (c *DiffCommand) Execute(args []string) string {
	if len(args) < 2 || args[0] == "" || args[1] == "" {
		return usage(c)
	}
	a, err := c.files.Read(args[0])
	if err != nil {
		return readError(args[0], err)
	}
	b, err := c.files.Read(args[1])
	if err != nil {
		return readError(args[1], err)
	}
	if a == b {
		return fmt.Sprintf("Files '%s' and '%s' are identical.", args[0], args[1])
	}

	dmp := diffmatchpatch.New()
	charsA, charsB, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(charsA, charsB, false), lines)

	var out []string
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		}
		for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			out = append(out, prefix+line)
		}
	}
	return strings.Join(out, "\n")
}

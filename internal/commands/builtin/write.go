package builtin

import (
	"errors"
	"fmt"

	"luxos/internal/vfs"
	"luxos/pkg/luxtypes"
)

// WriteCommand creates or overwrites a text file.
type WriteCommand struct {
	files *vfs.Store
}

// Name returns the command name "write" for registration and lookup.
func (c *WriteCommand) Name() string {
	return "write"
}

// Description returns a brief description of what the write command does.
func (c *WriteCommand) Description() string {
	return "Write content to a file, replacing any previous content"
}

// Usage returns the syntax of the write command.
func (c *WriteCommand) Usage() string {
	return "write <file_name> <content>"
}

// HelpInfo returns structured help information for the write command.
func (c *WriteCommand) HelpInfo() luxtypes.HelpInfo {
	return helpFor(c, []luxtypes.HelpExample{
		{Command: "write notes.txt hello world", Description: "Write \"hello world\" to notes.txt"},
	}, "Content is every argument after the file name, joined by single spaces")
}

// Execute writes args[1:] to args[0].
func (c *WriteCommand) Execute(args []string) string {
	name := firstArg(args)
	content := joinRest(args, 1)
	if name == "" || content == "" {
		return usage(c)
	}

	err := c.files.Write(name, content)
	switch {
	case err == nil:
		return fmt.Sprintf("File '%s' created with content: \"%s\"", name, content)
	case errors.Is(err, vfs.ErrIsDir):
		return fmt.Sprintf("'%s' is a directory.", name)
	default:
		return fmt.Sprintf("Error: write: %v", err)
	}
}

package builtin

import (
	"errors"
	"fmt"

	"luxos/internal/vfs"
	"luxos/pkg/luxtypes"
)

// ReadCommand prints a file's content.
type ReadCommand struct {
	files *vfs.Store
}

// Name returns the command name "read" for registration and lookup.
func (c *ReadCommand) Name() string {
	return "read"
}

// Description returns a brief description of what the read command does.
func (c *ReadCommand) Description() string {
	return "Show the contents of a file"
}

// Usage returns the syntax of the read command.
func (c *ReadCommand) Usage() string {
	return "read <file_name>"
}

// HelpInfo returns structured help information for the read command.
func (c *ReadCommand) HelpInfo() luxtypes.HelpInfo {
	return helpFor(c, []luxtypes.HelpExample{
		{Command: "read notes.txt", Description: "Show notes.txt"},
	})
}

// Execute reads args[0].
func (c *ReadCommand) Execute(args []string) string {
	name := firstArg(args)
	if name == "" {
		return usage(c)
	}
	content, err := c.files.Read(name)
	if err != nil {
		return readError(name, err)
	}
	return fmt.Sprintf("Contents of '%s':\n%s", name, content)
}

func readError(name string, err error) string {
	switch {
	case errors.Is(err, vfs.ErrNotFound):
		return "File not found."
	case errors.Is(err, vfs.ErrIsDir):
		return fmt.Sprintf("'%s' is a directory.", name)
	default:
		return fmt.Sprintf("Error: read: %v", err)
	}
}

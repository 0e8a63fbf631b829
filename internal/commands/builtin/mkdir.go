package builtin

import (
	"errors"
	"fmt"

	"luxos/internal/vfs"
	"luxos/pkg/luxtypes"
)

// MkdirCommand creates an empty directory entry.
type MkdirCommand struct {
	files *vfs.Store
}

// Name returns the command name "mkdir" for registration and lookup.
func (c *MkdirCommand) Name() string {
	return "mkdir"
}

// Description returns a brief description of what the mkdir command does.
func (c *MkdirCommand) Description() string {
	return "Create a directory"
}

// Usage returns the syntax of the mkdir command.
func (c *MkdirCommand) Usage() string {
	return "mkdir <directory_name>"
}

// HelpInfo returns structured help information for the mkdir command.
func (c *MkdirCommand) HelpInfo() luxtypes.HelpInfo {
	return helpFor(c, []luxtypes.HelpExample{
		{Command: "mkdir docs", Description: "Create a directory named docs"},
	}, "Names are flat: docs/notes is a single entry, not a nested path")
}

// Execute creates args[0].
func (c *MkdirCommand) Execute(args []string) string {
	name := firstArg(args)
	if name == "" {
		return usage(c)
	}

	err := c.files.Mkdir(name)
	switch {
	case err == nil:
		return fmt.Sprintf("Directory '%s' created.", name)
	case errors.Is(err, vfs.ErrExists):
		return "Directory already exists."
	default:
		return fmt.Sprintf("Error: mkdir: %v", err)
	}
}

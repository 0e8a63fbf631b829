package builtin

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"luxos/internal/vfs"
	"luxos/pkg/luxtypes"
)

// LsCommand lists the virtual file store in creation order.
type LsCommand struct {
	files *vfs.Store
}

// Name returns the command name "ls" for registration and lookup.
func (c *LsCommand) Name() string {
	return "ls"
}

// Description returns a brief description of what the ls command does.
func (c *LsCommand) Description() string {
	return "List files and directories"
}

// Usage returns the syntax of the ls command.
func (c *LsCommand) Usage() string {
	return "ls [pattern]"
}

// HelpInfo returns structured help information for the ls command.
func (c *LsCommand) HelpInfo() luxtypes.HelpInfo {
	return helpFor(c, []luxtypes.HelpExample{
		{Command: "ls", Description: "List every entry"},
		{Command: "ls *.txt", Description: "List entries matching a glob pattern"},
	}, "Directories are shown with a trailing /")
}

// Execute lists entries, optionally filtered by a glob in args[0].
func (c *LsCommand) Execute(args []string) string {
	var matcher glob.Glob
	if pattern := firstArg(args); pattern != "" {
		g, err := glob.Compile(pattern)
		if err != nil {
			return fmt.Sprintf("Invalid pattern '%s': %v", pattern, err)
		}
		matcher = g
	}

	var names []string
	for _, entry := range c.files.Entries() {
		if matcher != nil && !matcher.Match(entry.Name) {
			continue
		}
		name := entry.Name
		if entry.IsDir {
			name += "/"
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return "No files found."
	}
	return strings.Join(names, "\n")
}

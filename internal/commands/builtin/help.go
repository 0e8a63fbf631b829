package builtin

import (
	"fmt"
	"strings"

	"luxos/internal/commands"
	"luxos/pkg/luxtypes"
)

// HelpCommand lists the registered commands or describes one of them.
// Commands added by modules show up as soon as they are merged.
type HelpCommand struct {
	registry *commands.Registry
}

// Name returns the command name "help" for registration and lookup.
func (c *HelpCommand) Name() string {
	return "help"
}

// Description returns a brief description of what the help command does.
func (c *HelpCommand) Description() string {
	return "Show command help"
}

// Usage returns the syntax of the help command.
func (c *HelpCommand) Usage() string {
	return "help [command]"
}

// HelpInfo returns structured help information for the help command.
func (c *HelpCommand) HelpInfo() luxtypes.HelpInfo {
	return helpFor(c, []luxtypes.HelpExample{
		{Command: "help", Description: "List every available command"},
		{Command: "help install", Description: "Show usage and examples for install"},
	})
}

// Execute lists all commands, or shows detailed help for args[0].
func (c *HelpCommand) Execute(args []string) string {
	if name := firstArg(args); name != "" {
		return c.showCommandHelp(name)
	}
	return "Available commands: " + strings.Join(c.registry.Names(), ", ")
}

func (c *HelpCommand) showCommandHelp(name string) string {
	cmd, ok := c.registry.Get(name)
	if !ok {
		return fmt.Sprintf("Unknown command: %s", name)
	}

	info := cmd.HelpInfo()
	lines := []string{
		fmt.Sprintf("Command: %s", name),
		fmt.Sprintf("Description: %s", info.Description),
		fmt.Sprintf("Usage: %s", info.Usage),
	}
	if len(info.Examples) > 0 {
		lines = append(lines, "Examples:")
		for _, ex := range info.Examples {
			lines = append(lines, fmt.Sprintf("  %-28s %s", ex.Command, ex.Description))
		}
	}
	for _, note := range info.Notes {
		lines = append(lines, "Note: "+note)
	}
	return strings.Join(lines, "\n")
}

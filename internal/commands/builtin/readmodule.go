package builtin

import (
	"errors"
	"fmt"
	"strings"

	"luxos/internal/loader"
	"luxos/pkg/luxtypes"
)

// ReadModuleCommand inserts a disk into the drive and loads the module on
// it. The command only acknowledges the insert; the load result appears
// once the disk has been read.
type ReadModuleCommand struct {
	loader *loader.Loader
}

// Name returns the command name "readmodule" for registration and lookup.
func (c *ReadModuleCommand) Name() string {
	return "readmodule"
}

// Description returns a brief description of what the readmodule command does.
func (c *ReadModuleCommand) Description() string {
	return "Load commands from a module disk"
}

// Usage returns the syntax of the readmodule command.
func (c *ReadModuleCommand) Usage() string {
	return "readmodule [path]"
}

// HelpInfo returns structured help information for the readmodule command.
func (c *ReadModuleCommand) HelpInfo() luxtypes.HelpInfo {
	return helpFor(c, []luxtypes.HelpExample{
		{Command: "readmodule ./disks/greet.star", Description: "Load a Starlark module from the host"},
		{Command: "readmodule", Description: "Wait for a file to be dropped into the drive directory"},
	},
		"Accepted disks: "+strings.Join(loader.DefaultAllowedExtensions, " "),
		"Module commands replace builtins with the same name",
	)
}

// Execute starts reading args[0], or waits on the drive directory.
func (c *ReadModuleCommand) Execute(args []string) string {
	ack, err := c.loader.ReadModule(firstArg(args))
	switch {
	case err == nil:
		return ack
	case errors.Is(err, loader.ErrDriveBusy):
		return "Disk drive busy. Please wait."
	case errors.Is(err, loader.ErrNoDisk):
		return "No disk inserted."
	default:
		return fmt.Sprintf("Disk read error: %v", err)
	}
}

// ModulesCommand lists loaded modules.
type ModulesCommand struct {
	loader *loader.Loader
}

// Name returns the command name "modules" for registration and lookup.
func (c *ModulesCommand) Name() string {
	return "modules"
}

// Description returns a brief description of what the modules command does.
func (c *ModulesCommand) Description() string {
	return "List loaded modules"
}

// Usage returns the syntax of the modules command.
func (c *ModulesCommand) Usage() string {
	return "modules"
}

// HelpInfo returns structured help information for the modules command.
func (c *ModulesCommand) HelpInfo() luxtypes.HelpInfo {
	return helpFor(c, nil)
}

// Execute lists modules in load order.
func (c *ModulesCommand) Execute(_ []string) string {
	modules := c.loader.Modules()
	if len(modules) == 0 {
		return "No modules loaded."
	}
	lines := make([]string, len(modules))
	for i, m := range modules {
		name := m.Name
		if m.Version != "" {
			name += " v" + m.Version
		}
		lines[i] = fmt.Sprintf("%s (%s): %s", name, m.Source, strings.Join(m.Commands, ", "))
	}
	return strings.Join(lines, "\n")
}

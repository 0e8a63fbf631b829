package commands

import (
	"fmt"

	"luxos/pkg/luxtypes"
)

// FuncCommand adapts a HandlerFunc to the Command interface. Loaded modules
// register their handlers through it.
type FuncCommand struct {
	name        string
	description string
	handler     luxtypes.HandlerFunc
}

// NewFuncCommand wraps handler as a command named name.
func NewFuncCommand(name, description string, handler luxtypes.HandlerFunc) *FuncCommand {
	return &FuncCommand{
		name:        name,
		description: description,
		handler:     handler,
	}
}

// Name returns the registered command name.
func (c *FuncCommand) Name() string {
	return c.name
}

// Description returns the description given at construction.
func (c *FuncCommand) Description() string {
	if c.description == "" {
		return "External command"
	}
	return c.description
}

// Usage returns a generic usage line; handlers accept any arguments.
func (c *FuncCommand) Usage() string {
	return fmt.Sprintf("%s [args...]", c.name)
}

// HelpInfo returns structured help information for the command.
func (c *FuncCommand) HelpInfo() luxtypes.HelpInfo {
	return luxtypes.HelpInfo{
		Command:     c.Name(),
		Description: c.Description(),
		Usage:       c.Usage(),
	}
}

// Execute calls the wrapped handler.
func (c *FuncCommand) Execute(args []string) string {
	return c.handler(args...)
}

package builtin

import (
	"luxos/internal/screen"
	"luxos/pkg/luxtypes"
)

// ClearCommand empties the screen buffer. The console appends the echo
// and result after the clear, so they stay visible.
type ClearCommand struct {
	screen *screen.Buffer
}

// Name returns the command name "clear" for registration and lookup.
func (c *ClearCommand) Name() string {
	return "clear"
}

// Description returns a brief description of what the clear command does.
func (c *ClearCommand) Description() string {
	return "Clear the screen"
}

// Usage returns the syntax of the clear command.
func (c *ClearCommand) Usage() string {
	return "clear"
}

// HelpInfo returns structured help information for the clear command.
func (c *ClearCommand) HelpInfo() luxtypes.HelpInfo {
	return helpFor(c, nil)
}

// Execute clears the screen.
func (c *ClearCommand) Execute(_ []string) string {
	c.screen.Clear()
	return "Screen cleared."
}

package builtin

import (
	"luxos/internal/version"
	"luxos/pkg/luxtypes"
)

// VersionCommand shows LuxOS version information.
type VersionCommand struct{}

// Name returns the command name "version" for registration and lookup.
func (c *VersionCommand) Name() string {
	return "version"
}

// Description returns a brief description of what the version command does.
func (c *VersionCommand) Description() string {
	return "Show LuxOS version information"
}

// Usage returns the syntax of the version command.
func (c *VersionCommand) Usage() string {
	return "version"
}

// HelpInfo returns structured help information for the version command.
func (c *VersionCommand) HelpInfo() luxtypes.HelpInfo {
	return helpFor(c, nil, "Release names follow the brightness scale, from Ember to Nova")
}

// Execute returns the formatted version.
func (c *VersionCommand) Execute(_ []string) string {
	return version.GetFormattedVersion()
}

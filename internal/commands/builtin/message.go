package builtin

import (
	"fmt"

	"luxos/pkg/luxtypes"
)

// FaxCommand pretends to send a fax. Nothing leaves the console.
type FaxCommand struct{}

// Name returns the command name "fax" for registration and lookup.
func (c *FaxCommand) Name() string {
	return "fax"
}

// Description returns a brief description of what the fax command does.
func (c *FaxCommand) Description() string {
	return "Send a fax"
}

// Usage returns the syntax of the fax command.
func (c *FaxCommand) Usage() string {
	return "fax <number> <message>"
}

// HelpInfo returns structured help information for the fax command.
func (c *FaxCommand) HelpInfo() luxtypes.HelpInfo {
	return helpFor(c, []luxtypes.HelpExample{
		{Command: "fax 555-0100 Quarterly report attached", Description: "Fax a message"},
	}, "Faxes are simulated; no message is delivered")
}

// Execute echoes the fax.
func (c *FaxCommand) Execute(args []string) string {
	number := firstArg(args)
	message := joinRest(args, 1)
	if number == "" || message == "" {
		return usage(c)
	}
	return fmt.Sprintf("Fax sent to %s: %s", number, message)
}

// EmailCommand pretends to send an email. Nothing leaves the console.
type EmailCommand struct{}

// Name returns the command name "email" for registration and lookup.
func (c *EmailCommand) Name() string {
	return "email"
}

// Description returns a brief description of what the email command does.
func (c *EmailCommand) Description() string {
	return "Send an email"
}

// Usage returns the syntax of the email command.
func (c *EmailCommand) Usage() string {
	return "email <address> <subject> <body>"
}

// HelpInfo returns structured help information for the email command.
func (c *EmailCommand) HelpInfo() luxtypes.HelpInfo {
	return helpFor(c, []luxtypes.HelpExample{
		{Command: "email ada@lux.os Hello See you at noon", Description: "Email with subject Hello"},
	}, "The subject is a single word; the body is everything after it", "Emails are simulated; no message is delivered")
}

// Execute echoes the email.
func (c *EmailCommand) Execute(args []string) string {
	if len(args) < 3 || args[0] == "" || args[1] == "" {
		return usage(c)
	}
	body := joinRest(args, 2)
	if body == "" {
		return usage(c)
	}
	return fmt.Sprintf("Email sent to %s with subject '%s': %s", args[0], args[1], body)
}

// Package luxtypes defines command system types for LuxOS.
// This file contains the types used by the help system and the
// function-backed handler signature shared by builtins and loaded modules.
package luxtypes

// HandlerFunc is the extension contract: a handler receives the positional
// arguments exactly as split from the input line and returns display text.
type HandlerFunc func(args ...string) string

// HelpInfo represents structured help information for a command.
type HelpInfo struct {
	Command     string        `json:"command"`            // Command name
	Description string        `json:"description"`        // Brief description of what the command does
	Usage       string        `json:"usage"`              // Usage syntax
	Examples    []HelpExample `json:"examples,omitempty"` // Usage examples
	Notes       []string      `json:"notes,omitempty"`    // Additional notes or warnings
}

// HelpExample represents a usage example with explanation.
type HelpExample struct {
	Command     string `json:"command"`     // Example command
	Description string `json:"description"` // What this example demonstrates
}

// Package luxtypes defines core architectural interfaces for LuxOS.
// This file contains the interfaces that tie the console, the command
// registry and the asynchronous components together.
package luxtypes

import "time"

// Command defines the interface that all LuxOS commands must implement,
// whether built in or merged from a loaded module.
type Command interface {
	Name() string
	Description() string
	Usage() string
	HelpInfo() HelpInfo
	Execute(args []string) string
}

// Scheduler runs deferred work as console events. Every callback handed to a
// Scheduler runs serialized with command dispatch, so it may touch shared
// console state without further locking.
type Scheduler interface {
	// After runs fn once d has elapsed.
	After(d time.Duration, fn func())
	// Go runs work in the background and then runs the completion it returns.
	Go(work func() func())
	// Emit appends a line to the screen outside of a command result.
	Emit(line string)
}

// Package commands provides command registration and lookup for LuxOS.
// Each console owns its own Registry, so several consoles can coexist.
package commands

import (
	"sort"
	"sync"

	"luxos/pkg/luxtypes"
)

// Registry manages command registration and lookup for LuxOS commands.
// Registration is last-writer-wins: a later command with the same name
// replaces the earlier one, builtins included.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]luxtypes.Command
}

// NewRegistry creates a new command registry with an empty command map.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]luxtypes.Command),
	}
}

// Register adds or replaces a command under cmd.Name(). No validation of the
// name is performed.
func (r *Registry) Register(cmd luxtypes.Command) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands[cmd.Name()] = cmd
}

// RegisterFunc registers a bare handler under name.
func (r *Registry) RegisterFunc(name string, handler luxtypes.HandlerFunc) {
	r.Register(NewFuncCommand(name, "", handler))
}

// Merge registers every command in cmds under a single lock, so readers
// never observe a partially merged module.
func (r *Registry) Merge(cmds []luxtypes.Command) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, cmd := range cmds {
		r.commands[cmd.Name()] = cmd
	}
}

// Get retrieves a command by name.
func (r *Registry) Get(name string) (luxtypes.Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, exists := r.commands[name]
	return cmd, exists
}

// GetAll returns all registered commands sorted by name.
func (r *Registry) GetAll() []luxtypes.Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cmds := make([]luxtypes.Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool {
		return cmds[i].Name() < cmds[j].Name()
	})
	return cmds
}

// Names returns the sorted command names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.commands)
}

// Execute runs a command by name. The boolean is false when no command is
// registered under name.
func (r *Registry) Execute(name string, args []string) (string, bool) {
	cmd, exists := r.Get(name)
	if !exists {
		return "", false
	}
	return cmd.Execute(args), true
}

// IsValidCommand checks if a command exists in the registry.
func (r *Registry) IsValidCommand(name string) bool {
	_, exists := r.Get(name)
	return exists
}

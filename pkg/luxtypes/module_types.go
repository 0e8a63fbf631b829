package luxtypes

import "time"

// ModuleInfo records a module that was merged into a console's registry.
type ModuleInfo struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Version     string    `json:"version,omitempty"`
	Description string    `json:"description,omitempty"`
	Source      string    `json:"source"`
	Commands    []string  `json:"commands"`
	LoadedAt    time.Time `json:"loaded_at"`
}

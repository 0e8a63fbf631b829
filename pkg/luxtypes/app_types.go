package luxtypes

// AppStatus is the install state of a catalog app.
type AppStatus int

const (
	// AppNotInstalled is the initial state of every catalog app.
	AppNotInstalled AppStatus = iota
	// AppInstalling means an install timer is pending.
	AppInstalling
	// AppInstalled is terminal for the lifetime of the console.
	AppInstalled
)

// String returns a human-readable representation of the status.
func (s AppStatus) String() string {
	switch s {
	case AppNotInstalled:
		return "not installed"
	case AppInstalling:
		return "installing"
	case AppInstalled:
		return "installed"
	default:
		return "unknown"
	}
}

// App describes an installable catalog entry.
type App struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Version     string `yaml:"version"`
	// Extension, when set, is the file extension (with dot) the app opens.
	Extension string `yaml:"extension,omitempty"`
}

package apps

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"luxos/internal/logger"
	"luxos/pkg/luxtypes"
)

// DefaultDelay is how long an install takes.
const DefaultDelay = 2000 * time.Millisecond

var (
	// ErrUnknownApp is returned for names missing from the catalog.
	ErrUnknownApp = errors.New("unknown app")
	// ErrAlreadyInstalled is returned when the app is already installed.
	ErrAlreadyInstalled = errors.New("app already installed")
	// ErrInstalling is returned when the same app is still installing.
	ErrInstalling = errors.New("app is already being installed")
	// ErrBusy is returned when a different app holds the install slot.
	ErrBusy = errors.New("another app is installing")
)

// AppState pairs a catalog entry with its current status.
type AppState struct {
	luxtypes.App
	Status luxtypes.AppStatus
}

// Installer drives NotInstalled -> Installing -> Installed transitions.
// Only one app may be installing at a time; the completion transition is
// delivered later through the Scheduler as a console event.
type Installer struct {
	mu         sync.Mutex
	catalog    *Catalog
	status     map[string]luxtypes.AppStatus
	installing string
	delay      time.Duration
	scheduler  luxtypes.Scheduler
	log        *log.Logger
}

// NewInstaller creates an installer over catalog. A non-positive delay falls
// back to DefaultDelay.
func NewInstaller(catalog *Catalog, scheduler luxtypes.Scheduler, delay time.Duration) *Installer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Installer{
		catalog:   catalog,
		status:    make(map[string]luxtypes.AppStatus),
		delay:     delay,
		scheduler: scheduler,
		log:       logger.NewStyledLogger("Installer"),
	}
}

// Catalog returns the catalog the installer serves.
func (i *Installer) Catalog() *Catalog {
	return i.catalog
}

// Install starts installing name. On success the app is Installing, an
// "Installing" line has been emitted and completion is scheduled.
func (i *Installer) Install(name string) error {
	app, ok := i.catalog.Get(name)
	if !ok {
		return fmt.Errorf("install %q: %w", name, ErrUnknownApp)
	}

	i.mu.Lock()
	switch {
	case i.status[name] == luxtypes.AppInstalled:
		i.mu.Unlock()
		return fmt.Errorf("install %q: %w", name, ErrAlreadyInstalled)
	case i.installing == name:
		i.mu.Unlock()
		return fmt.Errorf("install %q: %w", name, ErrInstalling)
	case i.installing != "":
		other := i.installing
		i.mu.Unlock()
		return fmt.Errorf("install %q: %w: %s", name, ErrBusy, other)
	}
	i.status[name] = luxtypes.AppInstalling
	i.installing = name
	i.mu.Unlock()

	i.log.Info("Install started", "app", name, "delay", i.delay)
	i.scheduler.Emit(fmt.Sprintf("Installing %s v%s...", app.Name, app.Version))
	i.scheduler.After(i.delay, func() {
		i.Complete(name)
	})
	return nil
}

// Complete moves an installing app to Installed and announces it. It returns
// false when name was not installing.
func (i *Installer) Complete(name string) bool {
	i.mu.Lock()
	if i.status[name] != luxtypes.AppInstalling {
		i.mu.Unlock()
		return false
	}
	i.status[name] = luxtypes.AppInstalled
	if i.installing == name {
		i.installing = ""
	}
	i.mu.Unlock()

	i.log.Info("Install finished", "app", name)
	i.scheduler.Emit(fmt.Sprintf("%s installed successfully.", name))
	return true
}

// Status returns the current status of name.
func (i *Installer) Status(name string) luxtypes.AppStatus {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.status[name]
}

// Installing returns the app currently installing, or "".
func (i *Installer) Installing() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.installing
}

// Installed returns installed apps in catalog order.
func (i *Installer) Installed() []luxtypes.App {
	i.mu.Lock()
	defer i.mu.Unlock()

	var out []luxtypes.App
	for _, app := range i.catalog.apps {
		if i.status[app.Name] == luxtypes.AppInstalled {
			out = append(out, app)
		}
	}
	return out
}

// States returns every catalog app with its status.
func (i *Installer) States() []AppState {
	i.mu.Lock()
	defer i.mu.Unlock()

	out := make([]AppState, 0, len(i.catalog.apps))
	for _, app := range i.catalog.apps {
		out = append(out, AppState{App: app, Status: i.status[app.Name]})
	}
	return out
}

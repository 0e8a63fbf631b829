// Package console implements the LuxOS command interpreter. A Console owns
// a command registry, a virtual file store, a screen buffer, an app
// installer and a module loader, and serializes every event that touches
// them: submitted lines, install timers and module loads.
package console

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"luxos/internal/apps"
	"luxos/internal/clock"
	"luxos/internal/commands"
	"luxos/internal/commands/builtin"
	"luxos/internal/loader"
	"luxos/internal/logger"
	"luxos/internal/screen"
	"luxos/internal/testutils"
	"luxos/internal/vfs"
	"luxos/pkg/luxtypes"
)

// Welcome is printed by Start.
var Welcome = []string{
	"Welcome to LuxOS 8-bit Emulator",
	"Type 'help' for a list of commands.",
}

// RenderFunc receives the full screen after every event. It runs while the
// console is locked and must not call back into the console.
type RenderFunc func(screen string)

// Options configures a Console. Zero values select defaults.
type Options struct {
	Lines             int
	InstallDelay      time.Duration
	Catalog           *apps.Catalog
	AllowedExtensions []string
	MaxSteps          uint64
	DriveDir          string
	// HostFs resolves readmodule paths.
	HostFs   afero.Fs
	Clock    clock.Clock
	Render   RenderFunc
	TestMode bool
}

// Console is one LuxOS session.
type Console struct {
	mu     sync.Mutex
	outbox []string

	registry  *commands.Registry
	files     *vfs.Store
	screen    *screen.Buffer
	installer *apps.Installer
	loader    *loader.Loader

	clock   clock.Clock
	render  RenderFunc
	pending sync.WaitGroup
	log     *log.Logger
}

// New creates a console with every builtin registered.
func New(opts Options) *Console {
	c := &Console{
		registry: commands.NewRegistry(),
		files:    vfs.New(),
		screen:   screen.New(opts.Lines),
		clock:    opts.Clock,
		render:   opts.Render,
		log:      logger.NewStyledLogger("Console"),
	}
	if c.clock == nil {
		c.clock = clock.Real()
	}

	catalog := opts.Catalog
	if catalog == nil {
		catalog = apps.DefaultCatalog()
	}
	c.installer = apps.NewInstaller(catalog, c, opts.InstallDelay)

	testMode := opts.TestMode
	c.loader = loader.New(c.registry, c, loader.Options{
		AllowedExtensions: opts.AllowedExtensions,
		MaxSteps:          opts.MaxSteps,
		DriveDir:          opts.DriveDir,
		Fs:                opts.HostFs,
		NewID:             func() string { return testutils.GenerateUUID(testMode) },
		Now: func() time.Time {
			if testMode {
				return testutils.GetCurrentTime(true)
			}
			return c.clock.Now()
		},
	})

	builtin.RegisterAll(&builtin.Env{
		Registry:  c.registry,
		Files:     c.files,
		Screen:    c.screen,
		Installer: c.installer,
		Loader:    c.loader,
	})
	return c
}

// Registry returns the console's command registry.
func (c *Console) Registry() *commands.Registry {
	return c.registry
}

// Files returns the console's virtual file store.
func (c *Console) Files() *vfs.Store {
	return c.files
}

// Installer returns the console's app installer.
func (c *Console) Installer() *apps.Installer {
	return c.installer
}

// Loader returns the console's module loader.
func (c *Console) Loader() *loader.Loader {
	return c.loader
}

// Register adds or replaces a command.
func (c *Console) Register(cmd luxtypes.Command) {
	c.registry.Register(cmd)
}

// RegisterFunc adds or replaces a command backed by a bare handler.
func (c *Console) RegisterFunc(name string, handler luxtypes.HandlerFunc) {
	c.registry.RegisterFunc(name, handler)
}

// Start prints the welcome banner.
func (c *Console) Start() {
	c.event(func() {
		for _, line := range Welcome {
			c.screen.Append(line)
		}
	})
}

// Dispatch runs line and returns its result without echoing either.
// Lines the command emits still reach the screen.
func (c *Console) Dispatch(line string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	result := c.dispatch(line)
	c.flush()
	return result
}

// Submit runs line, echoes it and its result to the screen and renders.
func (c *Console) Submit(line string) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := c.dispatch(line)
	c.screen.Append("> " + line)
	c.screen.AppendText(result)
	c.flush()
	c.draw()
	return result
}

// Screen returns the rendered screen.
func (c *Console) Screen() string {
	return c.screen.Render()
}

// Lines returns the screen lines.
func (c *Console) Lines() []string {
	return c.screen.Lines()
}

// dispatch splits line on single spaces and runs the named command.
// Callers hold c.mu.
func (c *Console) dispatch(line string) (result string) {
	parts := strings.Split(strings.TrimSpace(line), " ")
	name, args := parts[0], parts[1:]

	cmd, ok := c.registry.Get(name)
	if !ok {
		c.log.Debug("Unknown command", "command", name)
		return fmt.Sprintf("Unknown command: %s", name)
	}

	defer func() {
		if r := recover(); r != nil {
			c.log.Error("Command panicked", "command", name, "error", r)
			result = fmt.Sprintf("Error: %s: %v", name, r)
		}
	}()
	logger.CommandExecution(name, args)
	return cmd.Execute(args)
}

// Wait blocks until every pending timer and background job has delivered
// its completion event, or ctx is done.
func (c *Console) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		c.pending.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

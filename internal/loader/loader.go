// Package loader implements the LuxOS module loader: it acquires module
// files through a single-slot disk drive, evaluates them in a sandboxed
// evaluator and merges their exported commands into a command registry.
package loader

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"
	"github.com/h2non/filetype"
	"github.com/spf13/afero"

	"luxos/internal/commands"
	"luxos/internal/logger"
	"luxos/pkg/luxtypes"
)

// ErrUnsupportedType is returned for disks outside the allow-list or with
// binary content.
var ErrUnsupportedType = errors.New("unsupported file type")

// DefaultAllowedExtensions covers script, data, markup and style disks.
var DefaultAllowedExtensions = []string{".star", ".json", ".yaml", ".yml", ".html", ".css"}

// Options configures a Loader.
type Options struct {
	// AllowedExtensions restricts which disks are read. Defaults to
	// DefaultAllowedExtensions.
	AllowedExtensions []string
	// MaxSteps bounds Starlark execution. Defaults to DefaultMaxSteps.
	MaxSteps uint64
	// DriveDir is watched by readmodule when no path is given.
	DriveDir string
	// Fs resolves readmodule paths. Defaults to the host filesystem.
	Fs afero.Fs
	// NewID names loaded modules.
	NewID func() string
	// Now stamps loaded modules.
	Now func() time.Time
}

// Loader merges module commands into a registry.
type Loader struct {
	registry   *commands.Registry
	scheduler  luxtypes.Scheduler
	drive      Drive
	allowed    map[string]bool
	evaluators map[string]Evaluator
	driveDir   string
	fs         afero.Fs
	newID      func() string
	now        func() time.Time
	log        *log.Logger

	mu      sync.RWMutex
	modules []luxtypes.ModuleInfo
}

// New creates a loader for registry. Completion messages are emitted
// through scheduler.
func New(registry *commands.Registry, scheduler luxtypes.Scheduler, opts Options) *Loader {
	allowedList := opts.AllowedExtensions
	if len(allowedList) == 0 {
		allowedList = DefaultAllowedExtensions
	}
	allowed := make(map[string]bool, len(allowedList))
	for _, ext := range allowedList {
		allowed[strings.ToLower(ext)] = true
	}

	star := &StarlarkEvaluator{MaxSteps: opts.MaxSteps}
	l := &Loader{
		registry:  registry,
		scheduler: scheduler,
		allowed:   allowed,
		evaluators: map[string]Evaluator{
			".star": star,
			".json": JSONEvaluator{},
			".yaml": YAMLEvaluator{},
			".yml":  YAMLEvaluator{},
			".html": inertEvaluator{kind: "markup"},
			".css":  inertEvaluator{kind: "style"},
		},
		driveDir: opts.DriveDir,
		fs:       opts.Fs,
		newID:    opts.NewID,
		now:      opts.Now,
		log:      logger.NewStyledLogger("Loader"),
	}
	if l.fs == nil {
		l.fs = afero.NewOsFs()
	}
	if l.now == nil {
		l.now = time.Now
	}
	if l.newID == nil {
		l.newID = func() string { return fmt.Sprintf("module-%d", l.now().UnixNano()) }
	}
	return l
}

// Busy reports whether the drive slot is occupied.
func (l *Loader) Busy() bool {
	return l.drive.Busy()
}

// ReadModule occupies the drive and starts acquiring a disk in the
// background. With an empty path the drive directory is watched. The
// returned string acknowledges the request; the outcome is emitted later.
func (l *Loader) ReadModule(path string) (string, error) {
	var picker Picker
	switch {
	case path != "":
		picker = &FilePicker{Fs: l.fs, Path: path}
	case l.driveDir != "":
		picker = &DirectoryPicker{Dir: l.driveDir}
	default:
		return "", ErrNoDisk
	}
	return l.ReadWith(picker)
}

// ReadWith is ReadModule with an explicit picker.
func (l *Loader) ReadWith(picker Picker) (string, error) {
	if err := l.drive.Insert(); err != nil {
		return "", err
	}
	l.log.Debug("Disk inserted", "picker", picker.Describe())

	l.scheduler.Go(func() func() {
		disk, err := picker.Pick()
		l.drive.Eject()
		return func() {
			l.scheduler.Emit(l.finish(disk, err))
		}
	})
	return picker.Describe(), nil
}

func (l *Loader) finish(disk Disk, err error) string {
	if err != nil {
		l.log.Warn("Disk acquisition failed", "error", err)
		if errors.Is(err, ErrNoDisk) {
			return "No disk inserted."
		}
		return fmt.Sprintf("Disk read error: %v", err)
	}

	if reason := l.rejectReason(disk); reason != "" {
		l.log.Warn("Disk rejected", "module", disk.Name, "reason", reason)
		return fmt.Sprintf("Unsupported file type: %s. Disk ejected.", reason)
	}

	info, err := l.Load(disk.Name, disk.Data)
	if err != nil {
		return fmt.Sprintf("Error loading module '%s': %v", disk.Name, err)
	}
	return fmt.Sprintf("Module '%s' loaded: %d command(s) added.", info.Name, len(info.Commands))
}

// rejectReason returns why a disk may not be loaded, or "".
func (l *Loader) rejectReason(disk Disk) string {
	ext := strings.ToLower(filepath.Ext(disk.Name))
	if !l.allowed[ext] {
		if ext == "" {
			return "(none)"
		}
		return ext
	}
	if kind, _ := filetype.Match(disk.Data); kind != filetype.Unknown {
		return kind.MIME.Value
	}
	return ""
}

// Load evaluates source and merges every exported command into the
// registry. On any failure the registry is left untouched.
func (l *Loader) Load(fileName string, source []byte) (info luxtypes.ModuleInfo, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("module panicked: %v", r)
		}
	}()

	ext := strings.ToLower(filepath.Ext(fileName))
	eval, ok := l.evaluators[ext]
	if !ok || !l.allowed[ext] {
		return info, fmt.Errorf("%w: %s", ErrUnsupportedType, ext)
	}

	logger.ModuleOperation(fileName, "evaluate", "bytes", len(source))
	module, err := eval.Evaluate(fileName, source)
	if err != nil {
		l.log.Warn("Module evaluation failed", "module", fileName, "error", err)
		return info, err
	}

	name := module.Name
	if name == "" {
		name = strings.TrimSuffix(fileName, filepath.Ext(fileName))
	}

	cmds := make([]luxtypes.Command, 0, len(module.Commands))
	names := make([]string, 0, len(module.Commands))
	for _, export := range module.Commands {
		handler := export.Handler
		description := export.Description
		if description == "" {
			description = fmt.Sprintf("Provided by module %s", name)
		}
		cmds = append(cmds, commands.NewFuncCommand(export.Name, description, func(args ...string) string {
			return ansi.Strip(handler(args...))
		}))
		names = append(names, export.Name)
	}
	l.registry.Merge(cmds)

	info = luxtypes.ModuleInfo{
		ID:          l.newID(),
		Name:        name,
		Version:     module.Version,
		Description: module.Description,
		Source:      fileName,
		Commands:    names,
		LoadedAt:    l.now(),
	}
	l.mu.Lock()
	l.modules = append(l.modules, info)
	l.mu.Unlock()

	l.log.Info("Module loaded", "module", name, "commands", names)
	return info, nil
}

// Modules returns loaded modules in load order.
func (l *Loader) Modules() []luxtypes.ModuleInfo {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]luxtypes.ModuleInfo, len(l.modules))
	copy(out, l.modules)
	return out
}

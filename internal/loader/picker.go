package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"

	"luxos/internal/logger"
)

// ErrNoDisk is returned when the acquisition step ends without a file.
var ErrNoDisk = errors.New("no disk inserted")

// Disk is a file handed to the loader by a picker.
type Disk struct {
	Name string
	Data []byte
}

// Picker acquires a disk. Pick may block indefinitely; it always runs off
// the console event path.
type Picker interface {
	Describe() string
	Pick() (Disk, error)
}

// FilePicker reads a named file from a host filesystem.
type FilePicker struct {
	Fs   afero.Fs
	Path string
}

// Describe returns the acknowledgement shown while the file is read.
func (p *FilePicker) Describe() string {
	return fmt.Sprintf("Insert disk: reading '%s'...", p.Path)
}

// Pick reads the file.
func (p *FilePicker) Pick() (Disk, error) {
	info, err := p.Fs.Stat(p.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return Disk{}, fmt.Errorf("%w: %s does not exist", ErrNoDisk, p.Path)
		}
		return Disk{}, err
	}
	if info.IsDir() {
		return Disk{}, fmt.Errorf("%w: %s is a directory", ErrNoDisk, p.Path)
	}

	data, err := afero.ReadFile(p.Fs, p.Path)
	if err != nil {
		return Disk{}, fmt.Errorf("failed to read %s: %w", p.Path, err)
	}
	return Disk{Name: filepath.Base(p.Path), Data: data}, nil
}

// DefaultSettle is the quiet period after the last write before a dropped
// file is read.
const DefaultSettle = 200 * time.Millisecond

// DirectoryPicker waits for a file to be dropped into a watched directory,
// the way a user would insert a disk. There is no timeout.
type DirectoryPicker struct {
	Dir string
	// Settle is how long a file must go without Create or Write events
	// before it is read. Zero means DefaultSettle.
	Settle time.Duration
}

// Describe returns the acknowledgement shown while waiting.
func (p *DirectoryPicker) Describe() string {
	return fmt.Sprintf("Insert disk: waiting for a file in %s...", p.Dir)
}

// Pick blocks until a non-empty regular file in Dir has stopped changing.
func (p *DirectoryPicker) Pick() (Disk, error) {
	info, err := os.Stat(p.Dir)
	if err != nil {
		return Disk{}, fmt.Errorf("%w: drive directory: %v", ErrNoDisk, err)
	}
	if !info.IsDir() {
		return Disk{}, fmt.Errorf("%w: %s is not a directory", ErrNoDisk, p.Dir)
	}

	settle := p.Settle
	if settle <= 0 {
		settle = DefaultSettle
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return Disk{}, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	if err := watcher.Add(p.Dir); err != nil {
		return Disk{}, fmt.Errorf("failed to watch %s: %w", p.Dir, err)
	}
	logger.Debug("Waiting for disk", "dir", p.Dir)

	timer := time.NewTimer(settle)
	timer.Stop()
	defer timer.Stop()
	candidate := ""

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return Disk{}, ErrNoDisk
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
				continue
			}
			stat, err := os.Stat(event.Name)
			if err != nil || stat.IsDir() {
				continue
			}
			// every write restarts the quiet period
			candidate = event.Name
			timer.Reset(settle)

		case <-timer.C:
			stat, err := os.Stat(candidate)
			if err != nil || stat.IsDir() || stat.Size() == 0 {
				continue
			}
			data, err := os.ReadFile(candidate)
			if err != nil {
				return Disk{}, fmt.Errorf("failed to read %s: %w", candidate, err)
			}
			return Disk{Name: filepath.Base(candidate), Data: data}, nil

		case err, ok := <-watcher.Errors:
			if !ok {
				return Disk{}, ErrNoDisk
			}
			return Disk{}, fmt.Errorf("drive watcher: %w", err)
		}
	}
}

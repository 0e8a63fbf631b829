// Package vfs implements the LuxOS virtual file store: a flat, in-memory
// namespace of text files and (always empty) directories.
//
// Entries live in an afero in-memory filesystem. Names are opaque keys, so a
// name containing a slash is a single entry rather than a nested path.
package vfs

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"sync"

	"github.com/spf13/afero"
)

var (
	// ErrEmptyName is returned when a required name or content is empty.
	ErrEmptyName = errors.New("name and content must not be empty")
	// ErrNotFound is returned when no entry has the requested name.
	ErrNotFound = errors.New("file not found")
	// ErrExists is returned by Mkdir when the name is already taken.
	ErrExists = errors.New("entry already exists")
	// ErrIsDir is returned when a file operation targets a directory.
	ErrIsDir = errors.New("entry is a directory")
)

// Entry describes a single name in the store.
type Entry struct {
	Name  string
	IsDir bool
	Size  int64
}

// Store is safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	fs    afero.Fs
	order []string
}

// New creates an empty store backed by a fresh in-memory filesystem.
func New() *Store {
	return NewWithFs(afero.NewMemMapFs())
}

// NewWithFs creates a store on top of an existing afero filesystem.
// Only entries written through the store are listed.
func NewWithFs(fs afero.Fs) *Store {
	return &Store{fs: fs}
}

func keyFor(name string) string {
	return "/e_" + url.PathEscape(name)
}

// Write stores content under name, overwriting any previous file.
func (s *Store) Write(name, content string) error {
	if name == "" || content == "" {
		return ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := keyFor(name)
	info, err := s.fs.Stat(key)
	exists := err == nil
	if exists && info.IsDir() {
		return fmt.Errorf("write %q: %w", name, ErrIsDir)
	}

	if err := afero.WriteFile(s.fs, key, []byte(content), 0644); err != nil {
		return fmt.Errorf("write %q: %w", name, err)
	}
	if !exists {
		s.order = append(s.order, name)
	}
	return nil
}

// Read returns the content stored under name.
func (s *Store) Read(name string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key := keyFor(name)
	info, err := s.fs.Stat(key)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("read %q: %w", name, ErrNotFound)
		}
		return "", fmt.Errorf("read %q: %w", name, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("read %q: %w", name, ErrIsDir)
	}

	data, err := afero.ReadFile(s.fs, key)
	if err != nil {
		return "", fmt.Errorf("read %q: %w", name, err)
	}
	return string(data), nil
}

// Mkdir creates an empty directory entry.
func (s *Store) Mkdir(name string) error {
	if name == "" {
		return ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := keyFor(name)
	if _, err := s.fs.Stat(key); err == nil {
		return fmt.Errorf("mkdir %q: %w", name, ErrExists)
	}
	if err := s.fs.Mkdir(key, 0755); err != nil {
		return fmt.Errorf("mkdir %q: %w", name, err)
	}
	s.order = append(s.order, name)
	return nil
}

// Exists reports whether an entry named name exists.
func (s *Store) Exists(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, err := s.fs.Stat(keyFor(name))
	return err == nil
}

// List returns all names in insertion order.
func (s *Store) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Entries returns every entry in insertion order.
func (s *Store) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]Entry, 0, len(s.order))
	for _, name := range s.order {
		info, err := s.fs.Stat(keyFor(name))
		if err != nil {
			continue
		}
		entry := Entry{Name: name, IsDir: info.IsDir()}
		if !entry.IsDir {
			entry.Size = info.Size()
		}
		entries = append(entries, entry)
	}
	return entries
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

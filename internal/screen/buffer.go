// Package screen implements the console scroll-back: a bounded list of
// rendered lines where the oldest line is evicted first.
package screen

import (
	"strings"
	"sync"
)

// DefaultLines is the number of lines a classic LuxOS screen retains.
const DefaultLines = 24

// Buffer is a thread-safe FIFO of at most Cap lines.
type Buffer struct {
	mu    sync.RWMutex
	lines []string
	max   int
}

// New creates a buffer holding at most maxLines lines. A non-positive bound
// falls back to DefaultLines.
func New(maxLines int) *Buffer {
	if maxLines <= 0 {
		maxLines = DefaultLines
	}
	return &Buffer{
		lines: make([]string, 0, maxLines),
		max:   maxLines,
	}
}

// Append pushes line to the end, evicting from the front while over the bound.
func (b *Buffer) Append(line string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.lines = append(b.lines, line)
	if over := len(b.lines) - b.max; over > 0 {
		b.lines = append(b.lines[:0:0], b.lines[over:]...)
	}
}

// AppendText appends every line of a possibly multi-line string.
func (b *Buffer) AppendText(text string) {
	for _, line := range strings.Split(text, "\n") {
		b.Append(line)
	}
}

// Render returns the retained lines joined by newlines.
func (b *Buffer) Render() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return strings.Join(b.lines, "\n")
}

// Clear empties the buffer.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = b.lines[:0]
}

// Lines returns a copy of the retained lines.
func (b *Buffer) Lines() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// Len returns the number of retained lines.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lines)
}

// Cap returns the line bound.
func (b *Buffer) Cap() int {
	return b.max
}

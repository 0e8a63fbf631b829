package testutils

import "sync"

// RenderRecorder captures every frame passed to a console render callback.
type RenderRecorder struct {
	mu     sync.Mutex
	frames []string
}

// Render records screen. Pass it as the console render callback.
func (r *RenderRecorder) Render(screen string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, screen)
}

// Count returns the number of frames rendered.
func (r *RenderRecorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames)
}

// Last returns the most recent frame, or "".
func (r *RenderRecorder) Last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.frames) == 0 {
		return ""
	}
	return r.frames[len(r.frames)-1]
}

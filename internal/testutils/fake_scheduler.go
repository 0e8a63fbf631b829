package testutils

import (
	"sync"
	"time"
)

// FakeScheduler is a luxtypes.Scheduler that records everything and runs
// deferred work only when the test asks for it.
type FakeScheduler struct {
	mu      sync.Mutex
	clock   *FakeClock
	emitted []string
	work    []func() func()
}

// NewFakeScheduler creates a scheduler whose After callbacks fire from the
// returned clock's Advance.
func NewFakeScheduler() *FakeScheduler {
	return &FakeScheduler{clock: NewFakeClock()}
}

// Clock returns the clock driving After callbacks.
func (s *FakeScheduler) Clock() *FakeClock {
	return s.clock
}

// After schedules fn on the fake clock.
func (s *FakeScheduler) After(d time.Duration, fn func()) {
	s.clock.AfterFunc(d, fn)
}

// Go queues work until RunPending.
func (s *FakeScheduler) Go(work func() func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.work = append(s.work, work)
}

// Emit records a screen line.
func (s *FakeScheduler) Emit(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emitted = append(s.emitted, line)
}

// Emitted returns the recorded screen lines.
func (s *FakeScheduler) Emitted() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.emitted))
	copy(out, s.emitted)
	return out
}

// RunPending runs all queued background work and its completions in order.
func (s *FakeScheduler) RunPending() {
	s.mu.Lock()
	work := s.work
	s.work = nil
	s.mu.Unlock()

	for _, w := range work {
		if done := w(); done != nil {
			done()
		}
	}
}

// PendingWork returns the number of queued background jobs.
func (s *FakeScheduler) PendingWork() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.work)
}

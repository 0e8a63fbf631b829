package console

import (
	"time"
)

// event runs fn as one serialized console event, then renders.
func (c *Console) event(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	func() {
		defer func() {
			if r := recover(); r != nil {
				c.log.Error("Event panicked", "error", r)
			}
		}()
		fn()
	}()
	c.flush()
	c.draw()
}

// After runs fn as a console event once d has elapsed.
func (c *Console) After(d time.Duration, fn func()) {
	c.pending.Add(1)
	c.clock.AfterFunc(d, func() {
		defer c.pending.Done()
		c.event(fn)
	})
}

// Go runs work on its own goroutine and delivers the function it returns
// as a console event.
func (c *Console) Go(work func() func()) {
	c.pending.Add(1)
	go func() {
		defer c.pending.Done()
		if done := work(); done != nil {
			c.event(done)
		}
	}()
}

// Emit queues a screen line. It is only called from inside an event; the
// line is appended when the event body has finished.
func (c *Console) Emit(line string) {
	c.outbox = append(c.outbox, line)
}

// flush appends queued lines. Callers hold c.mu.
func (c *Console) flush() {
	for _, line := range c.outbox {
		c.screen.AppendText(line)
	}
	c.outbox = c.outbox[:0]
}

// draw calls the render callback. Callers hold c.mu.
func (c *Console) draw() {
	if c.render != nil {
		c.render(c.screen.Render())
	}
}

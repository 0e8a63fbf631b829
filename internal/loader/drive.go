package loader

import (
	"errors"
	"sync"
)

// ErrDriveBusy is returned when a disk is already being read.
var ErrDriveBusy = errors.New("disk drive busy")

// Drive is the single disk slot: at most one module acquisition may be
// pending at a time.
type Drive struct {
	mu   sync.Mutex
	busy bool
}

// Insert occupies the slot or fails with ErrDriveBusy.
func (d *Drive) Insert() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.busy {
		return ErrDriveBusy
	}
	d.busy = true
	return nil
}

// Eject releases the slot. Ejecting an empty drive is a no-op.
func (d *Drive) Eject() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.busy = false
}

// Busy reports whether a disk is in the slot.
func (d *Drive) Busy() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.busy
}

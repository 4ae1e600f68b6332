package input

import "sync/atomic"

// ButtonQueue collects button-down events between frames
// Thread-Safety:
//   - Push: lock-free, any number of producers (input polling)
//   - Drain: single consumer (frame tick), removes everything in one swap
//
// The queue is a set, not a list: identical presses within a frame collapse,
// and nothing about arrival order survives the drain
type ButtonQueue struct {
	pending atomic.Uint32
}

// NewButtonQueue creates an empty queue
func NewButtonQueue() *ButtonQueue {
	return &ButtonQueue{}
}

// Push records b as pressed for the next drain
func (q *ButtonQueue) Push(b Button) error {
	slot, err := b.Slot()
	if err != nil {
		return err
	}
	q.pending.Or(1 << slot)
	return nil
}

// Drain atomically removes and returns every pending press
func (q *ButtonQueue) Drain() ButtonMask {
	return ButtonMask(q.pending.Swap(0))
}

// Pending reports whether a drain would return anything
func (q *ButtonQueue) Pending() bool {
	return q.pending.Load() != 0
}

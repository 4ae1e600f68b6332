package input

import "sync/atomic"

// StickLatch holds the last polled facing-relative direction
// Written by the polling side, read once per frame by the tick
type StickLatch struct {
	dir atomic.Uint32
}

// Store replaces the latched direction
func (l *StickLatch) Store(d Direction) {
	l.dir.Store(uint32(d))
}

// Load returns the latched direction, DirNone before the first Store
func (l *StickLatch) Load() Direction {
	return Direction(l.dir.Load())
}

// CompareAndSwap replaces old with d only if no poll landed in between
func (l *StickLatch) CompareAndSwap(old, d Direction) bool {
	return l.dir.CompareAndSwap(uint32(old), uint32(d))
}

// ButtonLevels tracks which buttons are physically held
// Sources without release events (terminals) may leave every level low
type ButtonLevels struct {
	held atomic.Uint32
}

// Set marks b held or released, invalid identities are ignored
func (l *ButtonLevels) Set(b Button, held bool) {
	slot, err := b.Slot()
	if err != nil {
		return
	}
	if held {
		l.held.Or(1 << slot)
	} else {
		l.held.And(^uint32(1 << slot))
	}
}

// Load returns the held set
func (l *ButtonLevels) Load() ButtonMask {
	return ButtonMask(l.held.Load())
}

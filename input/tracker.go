package input

// ButtonTracker derives per-frame button statuses from press edges and held levels
// Owned by the frame tick, not safe for concurrent use
type ButtonTracker struct {
	prev ButtonSet
}

// Step advances one frame
// A press drained this frame is Down even if the level already dropped (tap shorter than a frame)
func (t *ButtonTracker) Step(pressed, held ButtonMask) ButtonSet {
	var next ButtonSet
	for slot := 0; slot < ButtonCount; slot++ {
		b := ButtonA + Button(slot)
		switch {
		case pressed.Has(b):
			next[slot] = StatusDown
		case t.prev[slot].pressed() && held.Has(b):
			next[slot] = StatusHold
		case t.prev[slot].pressed():
			next[slot] = StatusRelease
		default:
			next[slot] = StatusUp
		}
	}
	t.prev = next
	return next
}

// Reset forgets all held state
func (t *ButtonTracker) Reset() {
	t.prev = ButtonSet{}
}

// OnFacingFlip remaps a not-yet-committed sample after the character turns around
// Committed history is never rewritten; applying it twice restores the input
func OnFacingFlip(pending Sample) Sample {
	pending.Direction = pending.Direction.Mirror()
	return pending
}

package combat

import "time"

// TriggerHitStop freezes the character for d after a hit
// The hit opens the cancel window. A trigger during a running freeze replaces
// the timer, and its duration and saved velocity win. The velocity saved then
// is the frozen one, so resume restores zero
func (e *Engine) TriggerHitStop(d time.Duration) {
	e.EnterCancelWindow()

	if e.timer != nil {
		e.timer.Stop()
	}
	e.saved = e.move.FreezeVelocity()
	e.anim.SetEnabled(false)
	e.frozen = true
	e.owed++

	e.gen++
	gen := e.gen
	e.timer = e.clock.AfterFunc(d, func() { e.signalResume(gen) })
}

// signalResume runs on the timer goroutine
// Keeps the highest fired generation so a late stale timer cannot hide a newer one
func (e *Engine) signalResume(gen uint64) {
	for {
		cur := e.resumeGen.Load()
		if gen <= cur || e.resumeGen.CompareAndSwap(cur, gen) {
			return
		}
	}
}

// Poll ends hit-stop if the live timer has fired
// Call once at the start of every frame; reports whether a resume happened
func (e *Engine) Poll() bool {
	if !e.frozen || e.resumeGen.Load() < e.gen {
		return false
	}

	e.frozen = false
	e.timer = nil
	e.anim.SetEnabled(true)
	e.move.RestoreVelocity(e.saved)

	owed := e.owed
	e.owed = 0
	for i := 0; i < owed; i++ {
		e.ApplyPendingCancelAction()
	}
	return true
}

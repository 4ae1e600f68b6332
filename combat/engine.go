// Package combat owns one character's attack lifecycle: attack starts,
// the cancel window, pending cancel actions and hit-stop freeze.
//
// Engine is driven from a single goroutine, the frame loop. The only thing
// another goroutine touches is the hit-stop resume signal, which the timer
// callback flips atomically and Poll consumes at the start of the next frame.
// Invalid transitions are silent: operations return false and change nothing.
package combat

import (
	"sync/atomic"
)

// Deps are the collaborators an Engine drives
// Sound and Relay may be nil
type Deps struct {
	Movement Movement
	Animator Animator
	Sound    SoundPlayer
	Relay    StateRelay
	Clock    Scheduler
	Moves    CancelTable
}

// Engine is the attack-cancel state machine for one character
type Engine struct {
	move  Movement
	anim  Animator
	sound SoundPlayer
	relay StateRelay
	clock Scheduler
	moves CancelTable

	state   State
	attack  Identity
	pending CancelAction
	frames  int // Frames since the current attack started

	// Attack flags raised since the last reset, cleared by ResetToNeutral
	groundFlags map[Identity]struct{}
	airFlags    map[Identity]struct{}

	// Hit-stop
	frozen    bool
	saved     Vec2
	timer     Timer
	owed      int           // TriggerHitStop calls not yet covered by a resume
	gen       uint64        // Generation of the live timer
	resumeGen atomic.Uint64 // Highest generation whose timer fired
}

// NewEngine creates an idle engine
func NewEngine(d Deps) *Engine {
	e := &Engine{
		move:        d.Movement,
		anim:        d.Animator,
		sound:       d.Sound,
		relay:       d.Relay,
		clock:       d.Clock,
		moves:       d.Moves,
		groundFlags: make(map[Identity]struct{}),
		airFlags:    make(map[Identity]struct{}),
	}
	if e.sound == nil {
		e.sound = nopSound{}
	}
	if e.relay == nil {
		e.relay = nopRelay{}
	}
	if e.moves == nil {
		e.moves = Moves{}
	}
	return e
}

func (e *Engine) State() State           { return e.state }
func (e *Engine) Attack() Identity       { return e.attack }
func (e *Engine) Pending() CancelAction  { return e.pending }
func (e *Engine) Frozen() bool           { return e.frozen }
func (e *Engine) Attacking() bool        { return e.state != StateIdle }
func (e *Engine) FramesIntoAttack() int  { return e.frames }
func (e *Engine) CancelEligible() bool   { return e.state == StateCancelEligible }
func (e *Engine) SetMoves(t CancelTable) { e.moves = t }

// Snapshot copies the observable state
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		State:            e.state,
		Attack:           e.attack,
		Pending:          e.pending,
		Frozen:           e.frozen,
		FramesIntoAttack: e.frames,
	}
}

// canStart reports whether a new attack may begin from the current state
func (e *Engine) canStart() bool {
	return !e.frozen && (e.state == StateIdle || e.state == StateCancelEligible)
}

// BeginGroundAttack starts id as a grounded normal or special
func (e *Engine) BeginGroundAttack(id Identity) bool {
	if !e.canStart() || id == NoAttack {
		return false
	}
	if !e.move.IsGrounded() || e.anim.Bool(FlagJumping) {
		return false
	}

	if e.state == StateIdle {
		if e.anim.Bool(FlagRunning) && !e.anim.Bool(FlagSkidding) {
			e.move.Skid()
		}
		e.anim.SetBool(FlagRunning, false)
		e.move.StopRun()
	}

	e.anim.SetBool(string(id), true)
	e.groundFlags[id] = struct{}{}
	e.start(id)
	return true
}

// BeginAirAttack starts id as an air normal
func (e *Engine) BeginAirAttack(id Identity) bool {
	if !e.canStart() || id == NoAttack {
		return false
	}
	if e.move.IsGrounded() || !e.anim.Bool(FlagJumping) || e.move.IsBackDashing() {
		return false
	}

	e.anim.SetTrigger(string(id))
	e.airFlags[id] = struct{}{}
	e.start(id)
	return true
}

func (e *Engine) start(id Identity) {
	e.state = StateActive
	e.attack = id
	e.pending = CancelAction{}
	e.anim.SetBool(FlagCanCancel, false)
	e.frames = 0
}

// Throw starts a grab from neutral on the ground
func (e *Engine) Throw(forward bool) bool {
	if e.frozen || e.state != StateIdle || !e.move.IsGrounded() {
		return false
	}

	if e.anim.Bool(FlagRunning) && !e.anim.Bool(FlagSkidding) {
		e.move.Skid()
	}
	e.relay.SetThrowDirection(forward)
	e.anim.SetBool(FlagThrowWhiff, true)
	e.anim.SetBool(FlagRunning, false)
	e.move.StopRun()
	e.start(Throw)
	return true
}

// ThrowConnect is the animation hook for a grab that landed
func (e *Engine) ThrowConnect() {
	if e.attack != Throw {
		return
	}
	e.anim.SetBool(FlagThrowWhiff, false)
	e.anim.SetBool(FlagThrowHit, true)
	e.move.ThrowHit()
}

// ThrowRelease ends the held part of a connected grab
func (e *Engine) ThrowRelease() {
	if e.attack != Throw {
		return
	}
	e.move.ThrowEnd()
}

// Startup is the animation hook for the first frame of an attack
func (e *Engine) Startup() {
	e.ExitCancelWindow()
	e.anim.SetBool(FlagCanCancel, false)
	e.sound.Play(SoundWhiff)
}

// EnterCancelWindow makes the active attack cancelable
func (e *Engine) EnterCancelWindow() bool {
	if e.state != StateActive {
		return e.state == StateCancelEligible
	}
	e.state = StateCancelEligible
	e.anim.SetBool(FlagCanCancel, true)
	return true
}

// ExitCancelWindow closes the cancel window for recovery frames
func (e *Engine) ExitCancelWindow() bool {
	if e.state != StateCancelEligible {
		return false
	}
	e.state = StateActive
	e.anim.SetBool(FlagCanCancel, false)
	return true
}

// ExitActiveState is the animation hook for the last frame of a move
func (e *Engine) ExitActiveState() {
	e.ResetToNeutral()
}

// RequestCancelAction records a as the pending cancel
// Only accepted inside the cancel window; any rejection also drops the previous pending action
// Applied immediately unless hit-stop is running, in which case the resume applies it
func (e *Engine) RequestCancelAction(a CancelAction) bool {
	if e.state != StateCancelEligible || a.IsNone() {
		e.pending = CancelAction{}
		return false
	}
	if a.Kind == CancelJump && (!e.moves.CanJumpCancel(e.attack) || e.move.AirActionsLeft() <= 0) {
		e.pending = CancelAction{}
		return false
	}

	e.pending = a
	if !e.frozen {
		e.ApplyPendingCancelAction()
	}
	return true
}

// ApplyPendingCancelAction executes and clears the pending action
// No-op when nothing is pending
func (e *Engine) ApplyPendingCancelAction() {
	a := e.pending
	if a.IsNone() {
		return
	}

	e.ResetToNeutral()
	e.anim.SetTrigger(TriggerExecutingCancel)
	e.relay.UseCancelAction(a)
	e.sound.Play(SoundCancel)

	switch a.Kind {
	case CancelJump:
		e.move.Jump(a.Direction)
	case CancelAttack:
		if a.Air {
			e.BeginAirAttack(a.Attack)
		} else {
			e.BeginGroundAttack(a.Attack)
		}
	case CancelReversal:
		e.move.RC()
		e.anim.SetTrigger(TriggerInputBufferCancel)
	}
}

// ReversalCancel cuts any attack short outside a connected throw
// During hit-stop it waits as the pending action
func (e *Engine) ReversalCancel() bool {
	if !e.Attacking() || e.anim.Bool(FlagThrowHit) {
		return false
	}
	e.pending = ReversalCancel()
	if !e.frozen {
		e.ApplyPendingCancelAction()
	}
	return true
}

// BufferedInputCancel drops an attack that is fewer than frameLimit frames old
// so a buffered input can replace it
func (e *Engine) BufferedInputCancel(frameLimit int) bool {
	if e.frozen || !e.Attacking() || e.frames >= frameLimit {
		return false
	}
	if e.anim.Bool(FlagThrowHit) || e.anim.Bool(FlagThrowWhiff) {
		return false
	}
	e.ResetToNeutral()
	e.anim.SetTrigger(TriggerInputBufferCancel)
	return true
}

// OnLand cancels an attack when the character touches ground
func (e *Engine) OnLand() {
	if !e.Attacking() {
		return
	}
	e.ResetToNeutral()
	e.anim.SetTrigger(TriggerExecutingCancel)
	e.anim.SetBool(FlagCanCancel, false)
}

// ResetToNeutral unconditionally returns to Idle with every attack flag cleared
// Hit-stop freeze is left alone
func (e *Engine) ResetToNeutral() {
	for id := range e.groundFlags {
		e.anim.SetBool(string(id), false)
		delete(e.groundFlags, id)
	}
	for id := range e.airFlags {
		e.anim.ResetTrigger(string(id))
		delete(e.airFlags, id)
	}
	e.anim.SetBool(FlagThrowWhiff, false)
	e.anim.SetBool(FlagThrowHit, false)
	e.anim.SetBool(FlagCanCancel, false)

	e.pending = CancelAction{}
	e.attack = NoAttack
	e.state = StateIdle
}

// Tick advances the attack frame counter, paused during hit-stop
func (e *Engine) Tick() {
	if e.frozen {
		return
	}
	e.frames++
}

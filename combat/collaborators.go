package combat

import (
	"time"

	"github.com/lixenwraith/battle-input/input"
)

// Movement is the character's locomotion controller
type Movement interface {
	IsGrounded() bool
	IsRunning() bool
	IsBackDashing() bool
	AirActionsLeft() int

	Jump(dir input.Direction)
	Walk(dir input.Direction)
	Run(dir input.Direction)
	Skid()
	Dash(dir input.Direction)
	BackDash(dir input.Direction)
	AirDash(forward bool)
	StopRun()
	RC()
	SetHoldingJump(holding bool)

	// FreezeVelocity zeroes velocity and returns what it was
	FreezeVelocity() Vec2
	RestoreVelocity(v Vec2)

	ThrowHit()
	ThrowEnd()
}

// Animator holds named animation flags and triggers
type Animator interface {
	Bool(name string) bool
	SetBool(name string, v bool)
	SetTrigger(name string)
	ResetTrigger(name string)
	SetEnabled(enabled bool)
	Enabled() bool
}

// SoundPlayer plays a named effect, fire-and-forget
type SoundPlayer interface {
	Play(effect string)
}

// StateRelay forwards decisions to the player-state owner
type StateRelay interface {
	SetThrowDirection(forward bool)
	UseCancelAction(a CancelAction)
}

// CancelTable answers per-attack cancel rules
type CancelTable interface {
	CanJumpCancel(id Identity) bool
}

// Timer is a scheduled callback that can be stopped before it fires
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d on its own goroutine
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type nopSound struct{}

func (nopSound) Play(string) {}

type nopRelay struct{}

func (nopRelay) SetThrowDirection(bool)       {}
func (nopRelay) UseCancelAction(CancelAction) {}

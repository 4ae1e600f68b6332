package combat

import (
	"time"

	"github.com/lixenwraith/battle-input/input"
)

// Identity names an attack, doubling as its animator flag
type Identity string

const (
	NoAttack Identity = ""
	Throw    Identity = "Throw"
)

// State is the attack lifecycle; hit-stop freeze is tracked separately
type State uint8

const (
	StateIdle State = iota
	StateActive
	StateCancelEligible
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateCancelEligible:
		return "cancel-eligible"
	}
	return "idle"
}

// Animator flag and trigger names
const (
	FlagJumping    = "IsJumping"
	FlagRunning    = "IsRunning"
	FlagSkidding   = "IsSkidding"
	FlagCanCancel  = "CanCancel"
	FlagThrowHit   = "ThrowHit"
	FlagThrowWhiff = "ThrowWhiff"

	TriggerExecutingCancel   = "ExecutingCancel"
	TriggerInputBufferCancel = "InputBufferCancel"
)

// Sound effect names played through SoundPlayer
const (
	SoundWhiff  = "whiff"
	SoundCancel = "cancel"
	SoundHit    = "hit"
	SoundDash   = "dash"
)

// CancelKind discriminates CancelAction
type CancelKind uint8

const (
	CancelNone CancelKind = iota
	CancelJump
	CancelAttack
	CancelReversal
)

func (k CancelKind) String() string {
	switch k {
	case CancelJump:
		return "jump"
	case CancelAttack:
		return "attack"
	case CancelReversal:
		return "reversal"
	}
	return "none"
}

// CancelAction is a request to cut the current attack short
// The zero value is the empty action
type CancelAction struct {
	Kind      CancelKind
	Attack    Identity        // CancelAttack only
	Air       bool            // CancelAttack only: start as an air attack
	Direction input.Direction // CancelJump only
}

func JumpCancel(dir input.Direction) CancelAction {
	return CancelAction{Kind: CancelJump, Direction: dir}
}

func AttackCancel(id Identity, air bool) CancelAction {
	return CancelAction{Kind: CancelAttack, Attack: id, Air: air}
}

func ReversalCancel() CancelAction {
	return CancelAction{Kind: CancelReversal}
}

func (a CancelAction) IsNone() bool {
	return a.Kind == CancelNone
}

func (a CancelAction) String() string {
	switch a.Kind {
	case CancelJump:
		return "jump:" + a.Direction.String()
	case CancelAttack:
		return "attack:" + string(a.Attack)
	}
	return a.Kind.String()
}

// Properties is the per-attack frame data the engine consults
type Properties struct {
	JumpCancel bool
	Air        bool
	HitStop    time.Duration
}

// Moves is a property table keyed by attack identity
type Moves map[Identity]Properties

// CanJumpCancel reports whether id may be cancelled into a jump
// Unknown attacks cannot
func (m Moves) CanJumpCancel(id Identity) bool {
	return m[id].JumpCancel
}

// HitStop returns the freeze duration configured for id
func (m Moves) HitStop(id Identity) time.Duration {
	return m[id].HitStop
}

// Vec2 is a saved velocity
type Vec2 struct {
	X, Y float64
}

// Snapshot is a read-only copy of engine state
type Snapshot struct {
	State            State
	Attack           Identity
	Pending          CancelAction
	Frozen           bool
	FramesIntoAttack int
}

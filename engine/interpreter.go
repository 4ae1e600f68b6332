package engine

import (
	"fmt"

	"github.com/lixenwraith/battle-input/combat"
	"github.com/lixenwraith/battle-input/config"
	"github.com/lixenwraith/battle-input/input"
	"github.com/lixenwraith/battle-input/motion"
)

// Moveset maps buttons to the attack each one starts
type Moveset = config.Bindings

// DefaultMoveset is the built-in button layout
func DefaultMoveset() Moveset {
	b, err := config.Default().Moveset.Resolve()
	if err != nil {
		panic(fmt.Errorf("default moveset: %w", err))
	}
	return b
}

// Frame is everything the interpreter reads for one tick
type Frame struct {
	History *input.History
	Window  *input.Window
	Budgets motion.Budgets
	Pressed input.ButtonMask // Buttons drained this frame
}

// Decision records what the interpreter did on one frame
type Decision struct {
	Dash     motion.Dash
	Special  motion.Variant
	Attack   combat.Identity // Attack started or requested, NoAttack if none
	Reversal bool
	Throw    bool
}

func (d Decision) String() string {
	switch {
	case d.Reversal:
		return "reversal"
	case d.Throw:
		return "throw"
	case d.Special != motion.VariantNone:
		return "special:" + d.Special.String() + ":" + string(d.Attack)
	case d.Attack != combat.NoAttack:
		return "normal:" + string(d.Attack)
	case d.Dash != motion.DashNone:
		return "dash:" + d.Dash.String()
	}
	return ""
}

// Interpreter turns committed input into movement and combat calls
// Owned by the frame loop
type Interpreter struct {
	combat       *combat.Engine
	move         combat.Movement
	anim         combat.Animator
	moves        Moveset
	bufferFrames int
}

func NewInterpreter(c *combat.Engine, m combat.Movement, a combat.Animator, moves Moveset, bufferFrames int) *Interpreter {
	return &Interpreter{
		combat:       c,
		move:         m,
		anim:         a,
		moves:        moves,
		bufferFrames: bufferFrames,
	}
}

// SetMoveset replaces the button layout between frames
func (in *Interpreter) SetMoveset(moves Moveset, bufferFrames int) {
	in.moves = moves
	in.bufferFrames = bufferFrames
}

// Run interprets one frame: movement, dash, then buttons
func (in *Interpreter) Run(f Frame) (Decision, error) {
	var d Decision
	in.Movement(f)
	d.Dash = in.Dash(f)
	err := in.Buttons(f, &d)
	return d, err
}

// Movement applies held-direction locomotion, skipped during hit-stop
func (in *Interpreter) Movement(f Frame) {
	if in.combat.Frozen() {
		return
	}
	dir := f.History.At(0).Direction
	running := in.move.IsRunning()
	skidding := in.anim.Bool(combat.FlagSkidding)

	switch {
	case dir.IsUp():
		if in.combat.Attacking() {
			in.combat.RequestCancelAction(combat.JumpCancel(dir))
		} else {
			in.move.Jump(dir)
		}
	case !running && (dir == input.DirForward || dir == input.DirBack):
		in.move.Walk(dir)
	case running && (dir == input.DirForward || dir == input.DirDownForward) && !skidding:
		in.move.Run(dir)
	default:
		if in.anim.Bool(combat.FlagRunning) && !skidding {
			in.move.Skid()
		}
	}

	if !dir.IsUp() {
		in.move.SetHoldingJump(false)
	}
}

// Dash recognizes 66/44 on the frame a direction change lands
func (in *Interpreter) Dash(f Frame) motion.Dash {
	if in.combat.Frozen() || !f.History.DirectionChanged() {
		return motion.DashNone
	}

	d := motion.RecognizeDash(f.Window, f.Budgets, motion.Gate{
		Attacking: in.combat.Attacking(),
		Running:   in.anim.Bool(combat.FlagRunning),
		Skidding:  in.anim.Bool(combat.FlagSkidding),
	})

	dir := f.History.At(0).Direction
	grounded := in.move.IsGrounded()
	switch {
	case d == motion.DashForward && grounded:
		in.move.Dash(dir)
	case d == motion.DashForward:
		in.move.AirDash(true)
	case d == motion.DashBack && grounded:
		in.move.BackDash(dir)
	case d == motion.DashBack:
		in.move.AirDash(false)
	}
	return d
}

// Buttons acts on the buttons pressed this frame
// A+B is a reversal cancel; otherwise the lowest attack button wins, then D
func (in *Interpreter) Buttons(f Frame, d *Decision) error {
	if f.Pressed.Empty() {
		return nil
	}
	if f.Pressed.Has(input.ButtonA) && f.Pressed.Has(input.ButtonB) {
		d.Reversal = in.combat.ReversalCancel()
		return nil
	}
	for _, b := range []input.Button{input.ButtonA, input.ButtonB, input.ButtonC, input.ButtonD} {
		if f.Pressed.Has(b) {
			return in.Interpret(f, b, d)
		}
	}
	return nil
}

// Interpret acts on a single button
func (in *Interpreter) Interpret(f Frame, b input.Button, d *Decision) error {
	if _, err := b.Slot(); err != nil {
		return fmt.Errorf("interpret: %w", err)
	}
	if b == input.ButtonD {
		switch f.History.At(0).Direction {
		case input.DirForward:
			d.Throw = in.combat.Throw(true)
		case input.DirBack:
			d.Throw = in.combat.Throw(false)
		}
		return nil
	}
	in.Special(f, b, d)
	return nil
}

// Special starts a quarter-circle special if one is bound and recognized, else a normal
func (in *Interpreter) Special(f Frame, b input.Button, d *Decision) {
	if id, ok := in.moves.Special[b]; ok {
		res := motion.DetectQuarterCircle(f.Window, f.Budgets, f.Window.SinceCurrent())
		if res.Matched {
			if in.attack(id, !in.move.IsGrounded()) {
				d.Special = res.Variant
				d.Attack = id
			}
			return
		}
	}

	air := !in.move.IsGrounded()
	table := in.moves.Ground
	if air {
		table = in.moves.Air
	}
	if id, ok := table[b]; ok && in.attack(id, air) {
		d.Attack = id
	}
}

// attack routes a start through the cancel window or the input buffer as the state requires
func (in *Interpreter) attack(id combat.Identity, air bool) bool {
	if in.combat.CancelEligible() {
		return in.combat.RequestCancelAction(combat.AttackCancel(id, air))
	}
	if in.combat.State() == combat.StateActive {
		in.combat.BufferedInputCancel(in.bufferFrames)
	}
	if air {
		return in.combat.BeginAirAttack(id)
	}
	return in.combat.BeginGroundAttack(id)
}

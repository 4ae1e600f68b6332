package main

import (
	"sync"

	"github.com/lixenwraith/battle-input/combat"
	"github.com/lixenwraith/battle-input/input"
)

// Kinematics in cells per second
const (
	walkSpeed     = 6.0
	runSpeed      = 14.0
	dashSpeed     = 22.0
	airDashSpeed  = 18.0
	jumpSpeed     = 16.0
	gravity       = 48.0
	friction      = 40.0
	stageWidth    = 60.0
	maxAirActions = 1
)

// puppet is a one-axis stand-in character for the training harness
// Movement calls arrive on the frame goroutine, advance and the getters on the UI goroutine
type puppet struct {
	mu   sync.Mutex
	anim *flags

	x, y   float64
	vx, vy float64
	facing float64 // +1 faces right

	grounded    bool
	running     bool
	backDashing bool
	airActions  int
	holdingJump bool
	throwing    bool
	last        string
}

func newPuppet(anim *flags) *puppet {
	return &puppet{anim: anim, x: stageWidth / 2, facing: 1, grounded: true, airActions: maxAirActions}
}

// horizontal returns -1, 0 or +1 for the facing-relative direction in world space
func (p *puppet) horizontal(dir input.Direction) float64 {
	switch dir {
	case input.DirForward, input.DirUpForward, input.DirDownForward:
		return p.facing
	case input.DirBack, input.DirUpBack, input.DirDownBack:
		return -p.facing
	}
	return 0
}

func (p *puppet) IsGrounded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.grounded
}

func (p *puppet) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

func (p *puppet) IsBackDashing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.backDashing
}

func (p *puppet) AirActionsLeft() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.airActions
}

func (p *puppet) Jump(dir input.Direction) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.grounded {
		return
	}
	p.grounded = false
	p.running = false
	p.anim.SetBool(combat.FlagRunning, false)
	p.anim.SetBool(combat.FlagJumping, true)
	p.vy = jumpSpeed
	p.vx = p.horizontal(dir) * walkSpeed
	p.last = "jump"
}

func (p *puppet) Walk(dir input.Direction) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.grounded {
		p.vx = p.horizontal(dir) * walkSpeed
	}
}

func (p *puppet) Run(dir input.Direction) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.grounded {
		p.running = true
		p.vx = p.horizontal(dir) * runSpeed
		p.anim.SetBool(combat.FlagRunning, true)
	}
}

func (p *puppet) Skid() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.running = false
	p.anim.SetBool(combat.FlagRunning, false)
	p.last = "skid"
}

func (p *puppet) Dash(dir input.Direction) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.running = true
	p.vx = p.horizontal(dir) * dashSpeed
	p.anim.SetBool(combat.FlagRunning, true)
	p.last = "dash"
}

func (p *puppet) BackDash(dir input.Direction) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.backDashing = true
	p.vx = p.horizontal(dir) * dashSpeed
	p.last = "backdash"
}

func (p *puppet) AirDash(forward bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.airActions == 0 {
		return
	}
	p.airActions--
	p.vy = 0
	p.vx = -p.facing * airDashSpeed
	if forward {
		p.vx = p.facing * airDashSpeed
	}
	p.last = "airdash"
}

func (p *puppet) StopRun() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.running = false
	p.anim.SetBool(combat.FlagRunning, false)
}

func (p *puppet) RC() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.last = "rc"
}

func (p *puppet) SetHoldingJump(holding bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.holdingJump = holding
}

func (p *puppet) FreezeVelocity() combat.Vec2 {
	p.mu.Lock()
	defer p.mu.Unlock()
	v := combat.Vec2{X: p.vx, Y: p.vy}
	p.vx, p.vy = 0, 0
	return v
}

func (p *puppet) RestoreVelocity(v combat.Vec2) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.vx, p.vy = v.X, v.Y
}

func (p *puppet) ThrowHit() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.throwing = true
}

func (p *puppet) ThrowEnd() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.throwing = false
}

// flip turns the puppet around
func (p *puppet) flip() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.facing = -p.facing
}

// advance integrates dt seconds of motion; nothing moves while the animator is disabled
// Reports whether the puppet touched down during this step
func (p *puppet) advance(dt float64) (landed bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.anim.Enabled() {
		return false
	}

	p.x += p.vx * dt
	if p.x < 0 {
		p.x, p.vx = 0, 0
	} else if p.x > stageWidth {
		p.x, p.vx = stageWidth, 0
	}

	if !p.grounded {
		p.vy -= gravity * dt
		p.y += p.vy * dt
		if p.y <= 0 && p.vy < 0 {
			p.y, p.vy = 0, 0
			p.grounded = true
			p.airActions = maxAirActions
			p.anim.SetBool(combat.FlagJumping, false)
			p.vx = 0
			landed = true
		}
		return landed
	}

	if !p.running {
		switch {
		case p.vx > 0:
			p.vx = max(0, p.vx-friction*dt)
		case p.vx < 0:
			p.vx = min(0, p.vx+friction*dt)
		}
		if p.vx == 0 {
			p.backDashing = false
		}
	}
	return false
}

// puppetView is what the overlay draws
type puppetView struct {
	X, Y     float64
	Facing   float64
	Grounded bool
	Running  bool
	Throwing bool
	Last     string
}

func (p *puppet) view() puppetView {
	p.mu.Lock()
	defer p.mu.Unlock()
	return puppetView{X: p.x, Y: p.y, Facing: p.facing, Grounded: p.grounded, Running: p.running, Throwing: p.throwing, Last: p.last}
}

// flags is a mutex-guarded animator: named bools, counted triggers, an enable switch
type flags struct {
	mu       sync.Mutex
	bools    map[string]bool
	triggers map[string]int
	disabled bool
}

func newFlags() *flags {
	return &flags{bools: make(map[string]bool), triggers: make(map[string]int)}
}

func (f *flags) Bool(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bools[name]
}

func (f *flags) SetBool(name string, v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bools[name] = v
}

func (f *flags) SetTrigger(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.triggers[name]++
}

func (f *flags) ResetTrigger(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.triggers, name)
}

func (f *flags) SetEnabled(enabled bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.disabled = !enabled
}

func (f *flags) Enabled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.disabled
}

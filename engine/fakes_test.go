package engine

import (
	"sync"
	"testing"
	"time"

	"github.com/lixenwraith/battle-input/combat"
	"github.com/lixenwraith/battle-input/config"
	"github.com/lixenwraith/battle-input/input"
)

// stubMovement records locomotion calls; grounded unless told otherwise
type stubMovement struct {
	mu       sync.Mutex
	grounded bool
	running  bool
	calls    []string
	dirs     []input.Direction
}

func (m *stubMovement) record(call string, dir input.Direction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
	m.dirs = append(m.dirs, dir)
}

func (m *stubMovement) count(call string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (m *stubMovement) IsGrounded() bool    { return m.grounded }
func (m *stubMovement) IsRunning() bool     { return m.running }
func (m *stubMovement) IsBackDashing() bool { return false }
func (m *stubMovement) AirActionsLeft() int { return 1 }

func (m *stubMovement) Jump(d input.Direction)     { m.record("jump", d) }
func (m *stubMovement) Walk(d input.Direction)     { m.record("walk", d) }
func (m *stubMovement) Run(d input.Direction)      { m.record("run", d) }
func (m *stubMovement) Skid()                      { m.record("skid", input.DirNone) }
func (m *stubMovement) Dash(d input.Direction)     { m.record("dash", d) }
func (m *stubMovement) BackDash(d input.Direction) { m.record("backdash", d) }
func (m *stubMovement) StopRun()                   { m.record("stoprun", input.DirNone) }
func (m *stubMovement) RC()                        { m.record("rc", input.DirNone) }
func (m *stubMovement) SetHoldingJump(bool)        {}
func (m *stubMovement) FreezeVelocity() combat.Vec2 {
	return combat.Vec2{X: 1}
}
func (m *stubMovement) RestoreVelocity(combat.Vec2) { m.record("restore", input.DirNone) }
func (m *stubMovement) ThrowHit()                   { m.record("throwhit", input.DirNone) }
func (m *stubMovement) ThrowEnd()                   { m.record("throwend", input.DirNone) }

func (m *stubMovement) AirDash(forward bool) {
	d := input.DirBack
	if forward {
		d = input.DirForward
	}
	m.record("airdash", d)
}

type stubAnimator struct {
	mu       sync.Mutex
	bools    map[string]bool
	triggers map[string]int
	enabled  bool
}

func newStubAnimator() *stubAnimator {
	return &stubAnimator{bools: map[string]bool{}, triggers: map[string]int{}, enabled: true}
}

func (a *stubAnimator) Bool(n string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.bools[n]
}

func (a *stubAnimator) SetBool(n string, v bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.bools[n] = v
}

func (a *stubAnimator) SetTrigger(n string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.triggers[n]++
}

func (a *stubAnimator) ResetTrigger(n string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.triggers[n] = 0
}

func (a *stubAnimator) SetEnabled(e bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = e
}

func (a *stubAnimator) Enabled() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.enabled
}

type stubRelay struct {
	used []combat.CancelAction
}

func (r *stubRelay) SetThrowDirection(bool)              {}
func (r *stubRelay) UseCancelAction(a combat.CancelAction) { r.used = append(r.used, a) }

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// pipeline is a scheduler on a manual clock at 100 Hz
type pipeline struct {
	t     *testing.T
	fs    *FrameScheduler
	clock *ManualClock
	move  *stubMovement
	anim  *stubAnimator
	relay *stubRelay
}

const frame = 10 * time.Millisecond

func newPipeline(t *testing.T, tweak func(*config.Config)) *pipeline {
	t.Helper()
	cfg := config.Default()
	cfg.TickRate = 100
	if tweak != nil {
		tweak(cfg)
	}

	p := &pipeline{
		t:     t,
		clock: NewManualClock(epoch),
		move:  &stubMovement{grounded: true},
		anim:  newStubAnimator(),
		relay: &stubRelay{},
	}
	fs, err := NewFrameScheduler(cfg, Deps{
		Clock:    p.clock,
		Movement: p.move,
		Animator: p.anim,
		Relay:    p.relay,
	})
	if err != nil {
		t.Fatalf("NewFrameScheduler: %v", err)
	}
	p.fs = fs
	return p
}

// step advances one frame and runs it
func (p *pipeline) step() *FrameState {
	p.t.Helper()
	p.clock.Advance(frame)
	if err := p.fs.Step(); err != nil {
		p.t.Fatalf("Step: %v", err)
	}
	return p.fs.Last()
}

// hold latches d and runs n frames, returning the last state
func (p *pipeline) hold(d input.Direction, n int) *FrameState {
	p.t.Helper()
	p.fs.SetStick(d)
	var st *FrameState
	for i := 0; i < n; i++ {
		st = p.step()
	}
	return st
}

func (p *pipeline) press(b input.Button) {
	p.t.Helper()
	if err := p.fs.Press(b); err != nil {
		p.t.Fatalf("Press(%v): %v", b, err)
	}
}

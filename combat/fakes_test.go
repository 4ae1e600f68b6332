package combat

import (
	"time"

	"github.com/lixenwraith/battle-input/input"
)

type fakeMovement struct {
	grounded    bool
	running     bool
	backDashing bool
	airActions  int
	velocity    Vec2
	restored    []Vec2
	calls       []string
	jumps       []input.Direction
	holdingJump bool
}

func newGrounded() *fakeMovement {
	return &fakeMovement{grounded: true, airActions: 1, velocity: Vec2{X: 3, Y: 0}}
}

func (m *fakeMovement) IsGrounded() bool    { return m.grounded }
func (m *fakeMovement) IsRunning() bool     { return m.running }
func (m *fakeMovement) IsBackDashing() bool { return m.backDashing }
func (m *fakeMovement) AirActionsLeft() int { return m.airActions }

func (m *fakeMovement) Jump(dir input.Direction) {
	m.calls = append(m.calls, "jump")
	m.jumps = append(m.jumps, dir)
}
func (m *fakeMovement) Walk(input.Direction)     { m.calls = append(m.calls, "walk") }
func (m *fakeMovement) Run(input.Direction)      { m.calls = append(m.calls, "run") }
func (m *fakeMovement) Skid()                    { m.calls = append(m.calls, "skid") }
func (m *fakeMovement) Dash(input.Direction)     { m.calls = append(m.calls, "dash") }
func (m *fakeMovement) BackDash(input.Direction) { m.calls = append(m.calls, "backdash") }
func (m *fakeMovement) AirDash(bool)             { m.calls = append(m.calls, "airdash") }
func (m *fakeMovement) StopRun()                 { m.calls = append(m.calls, "stoprun") }
func (m *fakeMovement) RC()                      { m.calls = append(m.calls, "rc") }
func (m *fakeMovement) SetHoldingJump(h bool)    { m.holdingJump = h }
func (m *fakeMovement) ThrowHit()                { m.calls = append(m.calls, "throwhit") }
func (m *fakeMovement) ThrowEnd()                { m.calls = append(m.calls, "throwend") }

func (m *fakeMovement) FreezeVelocity() Vec2 {
	v := m.velocity
	m.velocity = Vec2{}
	return v
}

func (m *fakeMovement) RestoreVelocity(v Vec2) {
	m.velocity = v
	m.restored = append(m.restored, v)
}

func (m *fakeMovement) count(call string) int {
	n := 0
	for _, c := range m.calls {
		if c == call {
			n++
		}
	}
	return n
}

type fakeAnimator struct {
	bools    map[string]bool
	triggers map[string]int
	enabled  bool
}

func newAnimator() *fakeAnimator {
	return &fakeAnimator{bools: map[string]bool{}, triggers: map[string]int{}, enabled: true}
}

func (a *fakeAnimator) Bool(name string) bool       { return a.bools[name] }
func (a *fakeAnimator) SetBool(name string, v bool) { a.bools[name] = v }
func (a *fakeAnimator) SetTrigger(name string)      { a.triggers[name]++ }
func (a *fakeAnimator) ResetTrigger(name string)    { a.triggers[name] = 0 }
func (a *fakeAnimator) SetEnabled(e bool)           { a.enabled = e }
func (a *fakeAnimator) Enabled() bool               { return a.enabled }

type recorder struct {
	sounds  []string
	used    []CancelAction
	forward []bool
}

func (r *recorder) Play(effect string)             { r.sounds = append(r.sounds, effect) }
func (r *recorder) SetThrowDirection(forward bool) { r.forward = append(r.forward, forward) }
func (r *recorder) UseCancelAction(a CancelAction) { r.used = append(r.used, a) }

// fakeTimer fires only when the test calls fire
type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

func (t *fakeTimer) fire() { t.f() }

type fakeScheduler struct {
	timers []*fakeTimer
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	t := &fakeTimer{d: d, f: f}
	s.timers = append(s.timers, t)
	return t
}

func (s *fakeScheduler) last() *fakeTimer {
	return s.timers[len(s.timers)-1]
}

type rig struct {
	e     *Engine
	move  *fakeMovement
	anim  *fakeAnimator
	rec   *recorder
	clock *fakeScheduler
}

func newRig() *rig {
	r := &rig{
		move:  newGrounded(),
		anim:  newAnimator(),
		rec:   &recorder{},
		clock: &fakeScheduler{},
	}
	r.e = NewEngine(Deps{
		Movement: r.move,
		Animator: r.anim,
		Sound:    r.rec,
		Relay:    r.rec,
		Clock:    r.clock,
		Moves: Moves{
			"5B":  {JumpCancel: true, HitStop: 100 * time.Millisecond},
			"5C":  {JumpCancel: false, HitStop: 150 * time.Millisecond},
			"J5B": {Air: true},
		},
	})
	return r
}

// eligible puts the rig in CancelEligible on a grounded attack
func (r *rig) eligible(id Identity) {
	r.e.BeginGroundAttack(id)
	r.e.EnterCancelWindow()
}

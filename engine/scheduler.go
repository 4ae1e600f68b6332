package engine

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/battle-input/combat"
	"github.com/lixenwraith/battle-input/config"
	"github.com/lixenwraith/battle-input/core"
	"github.com/lixenwraith/battle-input/input"
	"github.com/lixenwraith/battle-input/motion"
	"github.com/lixenwraith/battle-input/status"
)

// Deps are the character collaborators and shared services a scheduler drives
// Clock defaults to the wall clock, Status to a fresh registry
type Deps struct {
	Clock    Clock
	Movement combat.Movement
	Animator combat.Animator
	Sound    combat.SoundPlayer
	Relay    combat.StateRelay
	Status   *status.Registry
}

// FrameScheduler runs the per-frame input pipeline on a fixed tick
// Intake methods (Press, Release, SetStick, FacingChanged, Submit) are safe from any goroutine;
// everything else in a frame runs on the loop goroutine, or the caller of Step
type FrameScheduler struct {
	clock  Clock
	combat *combat.Engine
	interp *Interpreter
	moves  combat.Moves
	sound  combat.SoundPlayer

	// Frame-owned input state
	history *input.History
	window  input.Window
	tracker input.ButtonTracker
	lastRun time.Time

	// Intake, written by the polling side
	queue    *input.ButtonQueue
	stick    input.StickLatch
	levels   input.ButtonLevels
	flips    atomic.Uint32
	commands *CommandQueue

	budgets atomic.Pointer[motion.Budgets]
	reload  atomic.Pointer[config.Config]
	trace   atomic.Bool
	last    atomic.Pointer[FrameState]
	frame   atomic.Uint64

	// Tick configuration
	tickInterval     time.Duration
	nextTickDeadline time.Time
	mu               sync.Mutex // Serializes Step between the loop and direct callers

	// Control
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
	errChan  chan error

	// Cached metric pointers
	statusReg     *status.Registry
	statFrames    *atomic.Int64
	statResumes   *atomic.Int64
	statDashes    *atomic.Int64
	statSpecials  *atomic.Int64
	statNormals   *atomic.Int64
	statReversals *atomic.Int64
	statFrameMs   *status.Gauge
	statDecision  *status.Label
	statState     *status.Label
}

// NewFrameScheduler builds the pipeline for one character from cfg
func NewFrameScheduler(cfg *config.Config, deps Deps) (*FrameScheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if deps.Movement == nil || deps.Animator == nil {
		return nil, fmt.Errorf("frame scheduler: movement and animator are required")
	}
	if deps.Clock == nil {
		deps.Clock = NewWallClock()
	}
	if deps.Status == nil {
		deps.Status = status.NewRegistry()
	}

	history, err := input.NewHistory(cfg.HistorySize)
	if err != nil {
		return nil, err
	}
	moveset, err := cfg.Moveset.Resolve()
	if err != nil {
		return nil, err
	}
	moves := cfg.Moves()

	ce := combat.NewEngine(combat.Deps{
		Movement: deps.Movement,
		Animator: deps.Animator,
		Sound:    deps.Sound,
		Relay:    deps.Relay,
		Clock:    deps.Clock,
		Moves:    moves,
	})

	reg := deps.Status
	fs := &FrameScheduler{
		clock:         deps.Clock,
		combat:        ce,
		interp:        NewInterpreter(ce, deps.Movement, deps.Animator, moveset, cfg.BufferFrames),
		moves:         moves,
		sound:         deps.Sound,
		history:       history,
		queue:         input.NewButtonQueue(),
		commands:      NewCommandQueue(),
		tickInterval:  cfg.FrameDuration(),
		stopChan:      make(chan struct{}),
		errChan:       make(chan error, 1),
		statusReg:     reg,
		statFrames:    reg.Counters.Get("engine.frames"),
		statResumes:   reg.Counters.Get("combat.resumes"),
		statDashes:    reg.Counters.Get("motion.dashes"),
		statSpecials:  reg.Counters.Get("motion.specials"),
		statNormals:   reg.Counters.Get("combat.normals"),
		statReversals: reg.Counters.Get("combat.reversals"),
		statFrameMs:   reg.Gauges.Get("engine.frame_ms"),
		statDecision:  reg.Labels.Get("engine.decision"),
		statState:     reg.Labels.Get("combat.state"),
	}
	budgets := cfg.Budgets()
	fs.budgets.Store(&budgets)
	fs.trace.Store(cfg.Trace)
	return fs, nil
}

// History returns the committed input history, frame-owned
func (fs *FrameScheduler) History() *input.History { return fs.history }

// Combat returns the attack-cancel engine, frame-owned
func (fs *FrameScheduler) Combat() *combat.Engine { return fs.combat }

// Frame returns the number of completed frames
func (fs *FrameScheduler) Frame() uint64 { return fs.frame.Load() }

// Status returns the metrics registry
func (fs *FrameScheduler) Status() *status.Registry { return fs.statusReg }

// Last returns the state published by the latest Step, nil before the first
func (fs *FrameScheduler) Last() *FrameState { return fs.last.Load() }

// Err delivers the error that stopped the loop
func (fs *FrameScheduler) Err() <-chan error { return fs.errChan }

// Press queues b for the next frame and marks it held
func (fs *FrameScheduler) Press(b input.Button) error {
	if err := fs.queue.Push(b); err != nil {
		return err
	}
	fs.levels.Set(b, true)
	return nil
}

// Release marks b no longer held
func (fs *FrameScheduler) Release(b input.Button) {
	fs.levels.Set(b, false)
}

// SetStick latches the facing-relative stick direction
func (fs *FrameScheduler) SetStick(d input.Direction) {
	fs.stick.Store(d)
}

// FacingChanged signals that the character turned around
// Signals are counted, two flips before a frame cancel out
func (fs *FrameScheduler) FacingChanged() {
	fs.flips.Add(1)
}

// Submit queues a combat hook for the next frame
func (fs *FrameScheduler) Submit(cmd Command) {
	fs.commands.Push(cmd)
}

// SetBudgets swaps the motion budgets, effective next frame
func (fs *FrameScheduler) SetBudgets(b motion.Budgets) {
	fs.budgets.Store(&b)
}

// ApplyConfig hot-swaps budgets, moveset, attack table and tracing at the next frame
// History size and tick rate are fixed for the scheduler's lifetime
func (fs *FrameScheduler) ApplyConfig(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	fs.SetBudgets(cfg.Budgets())
	fs.trace.Store(cfg.Trace)
	fs.reload.Store(cfg)
	return nil
}

// Step runs one frame:
// resume hit-stop, run queued hooks, drain buttons, build and commit the sample,
// interpret it, advance the attack counter, publish
func (fs *FrameScheduler) Step() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	start := fs.clock.Now()
	elapsed := fs.tickInterval
	if !fs.lastRun.IsZero() {
		elapsed = start.Sub(fs.lastRun)
	}
	fs.lastRun = start

	if cfg := fs.reload.Swap(nil); cfg != nil {
		fs.applyReload(cfg)
	}

	resumed := fs.combat.Poll()
	if resumed {
		fs.statResumes.Add(1)
	}

	for _, cmd := range fs.commands.Consume() {
		fs.runCommand(cmd)
	}

	pressed := fs.queue.Drain()

	dir := fs.stick.Load()
	pending := input.Sample{Direction: dir, Elapsed: elapsed}
	if fs.flips.Swap(0)%2 == 1 {
		pending = input.OnFacingFlip(pending)
		fs.stick.CompareAndSwap(dir, pending.Direction)
	}
	pending.Buttons = fs.tracker.Step(pressed, fs.levels.Load())

	fs.history.Commit(pending)
	fs.history.Fill(&fs.window)

	decision, err := fs.interp.Run(Frame{
		History: fs.history,
		Window:  &fs.window,
		Budgets: *fs.budgets.Load(),
		Pressed: pressed,
	})
	if err != nil {
		return err
	}

	fs.combat.Tick()

	frame := fs.frame.Add(1)
	state := &FrameState{
		Frame:     frame,
		Direction: pending.Direction,
		Buttons:   pending.Buttons,
		Combat:    fs.combat.Snapshot(),
		Decision:  decision,
		Resumed:   resumed,
	}
	fs.last.Store(state)
	fs.record(state, start)

	if fs.trace.Load() {
		line, err := EncodeFrame(*state)
		if err != nil {
			return fmt.Errorf("trace frame %d: %w", frame, err)
		}
		log.Printf("trace %s", line)
	}
	return nil
}

func (fs *FrameScheduler) applyReload(cfg *config.Config) {
	moveset, err := cfg.Moveset.Resolve()
	if err != nil {
		log.Printf("engine: reload rejected: %v", err)
		return
	}
	fs.moves = cfg.Moves()
	fs.combat.SetMoves(fs.moves)
	fs.interp.SetMoveset(moveset, cfg.BufferFrames)
}

func (fs *FrameScheduler) runCommand(cmd Command) {
	switch cmd.Kind {
	case CmdHitStop:
		d := cmd.Duration
		if d <= 0 {
			d = fs.moves.HitStop(fs.combat.Attack())
		}
		fs.combat.TriggerHitStop(d)
		fs.play(combat.SoundHit)
	case CmdStartup:
		fs.combat.Startup()
	case CmdEnterCancel:
		fs.combat.EnterCancelWindow()
	case CmdExitCancel:
		fs.combat.ExitCancelWindow()
	case CmdExitActive:
		fs.combat.ExitActiveState()
	case CmdThrowConnect:
		fs.combat.ThrowConnect()
	case CmdThrowRelease:
		fs.combat.ThrowRelease()
	case CmdLand:
		fs.combat.OnLand()
	case CmdReset:
		fs.combat.ResetToNeutral()
	}
}

func (fs *FrameScheduler) record(st *FrameState, start time.Time) {
	fs.statFrames.Store(int64(st.Frame))
	switch {
	case st.Decision.Reversal:
		fs.statReversals.Add(1)
	case st.Decision.Special != motion.VariantNone:
		fs.statSpecials.Add(1)
	case st.Decision.Attack != combat.NoAttack:
		fs.statNormals.Add(1)
	}
	if st.Decision.Dash != motion.DashNone {
		fs.statDashes.Add(1)
		fs.play(combat.SoundDash)
	}
	if s := st.Decision.String(); s != "" {
		fs.statDecision.Store(s)
	}
	fs.statState.Store(st.Combat.State.String())
	fs.statFrameMs.Observe(float64(fs.clock.Now().Sub(start)) / float64(time.Millisecond))
}

func (fs *FrameScheduler) play(effect string) {
	if fs.sound != nil {
		fs.sound.Play(effect)
	}
}

// Start begins the fixed-tick loop
func (fs *FrameScheduler) Start() {
	if fs.running.CompareAndSwap(false, true) {
		fs.wg.Add(1)
		core.Go(fs.loop)
	}
}

// Stop halts the loop and waits for the current frame to finish
func (fs *FrameScheduler) Stop() {
	fs.stopOnce.Do(func() {
		close(fs.stopChan)
		if fs.running.Load() {
			fs.wg.Wait()
		}
	})
}

// loop runs Step on every deadline with drift correction
func (fs *FrameScheduler) loop() {
	defer fs.wg.Done()
	defer fs.running.Store(false)

	fs.nextTickDeadline = fs.clock.Now().Add(fs.tickInterval)

	timer := time.NewTimer(0)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	defer timer.Stop()

	for {
		select {
		case <-fs.stopChan:
			return
		default:
		}

		now := fs.clock.Now()
		if !now.Before(fs.nextTickDeadline) {
			if err := fs.Step(); err != nil {
				log.Printf("engine: frame %d: %v", fs.Frame(), err)
				select {
				case fs.errChan <- err:
				default:
				}
				return
			}

			fs.nextTickDeadline = fs.nextTickDeadline.Add(fs.tickInterval)
			// Skip missed frames rather than bursting to catch up
			if now.Sub(fs.nextTickDeadline) > fs.tickInterval*2 {
				fs.nextTickDeadline = now.Add(fs.tickInterval)
			}
		}

		sleep := fs.nextTickDeadline.Sub(fs.clock.Now())
		if sleep <= 0 {
			continue
		}
		timer.Reset(sleep)
		select {
		case <-timer.C:
		case <-fs.stopChan:
			return
		}
	}
}

package main

import (
	"log"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/battle-input/combat"
	"github.com/lixenwraith/battle-input/config"
	"github.com/lixenwraith/battle-input/engine"
	"github.com/lixenwraith/battle-input/input"
)

// Terminals report presses only, so a button is released after a fixed hold
const buttonHold = 80 * time.Millisecond

// soundConfigurer is the part of the sound manager a reload touches
type soundConfigurer interface {
	Configure(enabled bool, volume float64)
}

// harness turns terminal keys into scheduler intake and animation cues into commands
type harness struct {
	fs     *engine.FrameScheduler
	pup    *puppet
	sound  soundConfigurer
	keys   atomic.Pointer[input.Keymap]
	after  func(time.Duration, func())
	cues   timeline
	moves  moveLog
	landed int
}

func newHarness(fs *engine.FrameScheduler, pup *puppet, km *input.Keymap, sound soundConfigurer) *harness {
	h := &harness{
		fs:    fs,
		pup:   pup,
		sound: sound,
		after: func(d time.Duration, f func()) { time.AfterFunc(d, f) },
	}
	h.keys.Store(km)
	return h
}

// handleKey applies one key event; false means quit
func (h *harness) handleKey(ev *tcell.EventKey) bool {
	b, ok := h.keys.Load().Lookup(ev)
	if !ok {
		return true
	}

	switch b.Control {
	case input.ControlQuit:
		return false
	case input.ControlStick:
		h.fs.SetStick(b.Direction)
	case input.ControlButton:
		h.press(b.Button)
	case input.ControlFlip:
		h.pup.flip()
		h.fs.FacingChanged()
	case input.ControlHit:
		h.fs.Submit(engine.Command{Kind: engine.CmdHitStop})
	case input.ControlReset:
		h.fs.Submit(engine.Command{Kind: engine.CmdReset})
	case input.ControlLand:
		h.fs.Submit(engine.Command{Kind: engine.CmdLand})
	}
	return true
}

func (h *harness) press(b input.Button) {
	if err := h.fs.Press(b); err != nil {
		log.Printf("harness: press %v: %v", b, err)
		return
	}
	h.after(buttonHold, func() { h.fs.Release(b) })
}

// tick advances the puppet by dt and feeds animation cues for the latest frame
// Returns the latest published frame, nil before the first
func (h *harness) tick(dt time.Duration) *engine.FrameState {
	if h.pup.advance(dt.Seconds()) {
		h.landed++
		h.fs.Submit(engine.Command{Kind: engine.CmdLand})
	}

	st := h.fs.Last()
	if st == nil {
		return nil
	}
	for _, cmd := range h.cues.observe(st.Combat) {
		h.fs.Submit(cmd)
	}
	h.moves.add(st)
	return st
}

// reload applies a hot-reloaded config; runs on the watcher goroutine
func (h *harness) reload(cfg *config.Config) {
	if err := h.fs.ApplyConfig(cfg); err != nil {
		log.Printf("harness: reload rejected: %v", err)
		return
	}
	km, err := input.LoadKeymap(cfg.Keys)
	if err != nil {
		log.Printf("harness: keymap rejected: %v", err)
	} else {
		h.keys.Store(km)
	}
	if h.sound != nil {
		h.sound.Configure(cfg.Audio.Enabled, cfg.Audio.Volume)
	}
	log.Printf("harness: config reloaded")
}

// relayLog is the player-state relay for the harness: it only logs
type relayLog struct{}

func (relayLog) SetThrowDirection(forward bool) {
	log.Printf("relay: throw forward=%v", forward)
}

func (relayLog) UseCancelAction(a combat.CancelAction) {
	log.Printf("relay: cancel %v", a)
}

package main

import (
	"github.com/lixenwraith/battle-input/combat"
	"github.com/lixenwraith/battle-input/engine"
)

// cue fires cmd once an attack has run for at frames
type cue struct {
	at  int
	cmd engine.CommandKind
}

// defaultCues is generic frame data: startup, a cancel window, recovery, end
var defaultCues = []cue{
	{at: 3, cmd: engine.CmdStartup},
	{at: 6, cmd: engine.CmdEnterCancel},
	{at: 16, cmd: engine.CmdExitCancel},
	{at: 26, cmd: engine.CmdExitActive},
}

// throwCues connect just after startup, release, then end
var throwCues = []cue{
	{at: 3, cmd: engine.CmdStartup},
	{at: 5, cmd: engine.CmdThrowConnect},
	{at: 20, cmd: engine.CmdThrowRelease},
	{at: 28, cmd: engine.CmdExitActive},
}

// timeline stands in for animation events
// It watches published snapshots and emits each cue of the current attack once
type timeline struct {
	attack combat.Identity
	frames int
	next   int
	cues   []cue
}

// observe returns the commands due since the last snapshot
// A new attack is recognized by a changed identity or a frame counter that went backwards
func (tl *timeline) observe(s combat.Snapshot) []engine.Command {
	if s.State == combat.StateIdle {
		tl.attack, tl.frames, tl.next, tl.cues = combat.NoAttack, 0, 0, nil
		return nil
	}

	if s.Attack != tl.attack || s.FramesIntoAttack < tl.frames {
		tl.attack = s.Attack
		tl.next = 0
		tl.cues = defaultCues
		if s.Attack == combat.Throw {
			tl.cues = throwCues
		}
	}
	tl.frames = s.FramesIntoAttack

	var out []engine.Command
	for tl.next < len(tl.cues) && s.FramesIntoAttack >= tl.cues[tl.next].at {
		out = append(out, engine.Command{Kind: tl.cues[tl.next].cmd})
		tl.next++
	}
	return out
}

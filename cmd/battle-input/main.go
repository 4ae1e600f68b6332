// Command battle-input is a terminal training mode for the input interpreter:
// stick and buttons on the keyboard, a stand-in character, and a live frame readout
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/battle-input/audio"
	"github.com/lixenwraith/battle-input/config"
	"github.com/lixenwraith/battle-input/core"
	"github.com/lixenwraith/battle-input/engine"
	"github.com/lixenwraith/battle-input/input"
)

var (
	configFlag = flag.String("config", "battle-input.toml", "Path to the TOML tuning file (missing file uses defaults)")
	debugFlag  = flag.Bool("debug", false, "Write logs to logs/battle-input.log")
	traceFlag  = flag.Bool("trace", false, "Log every frame as JSON, requires -debug")
)

const renderInterval = 16 * time.Millisecond

func main() {
	// A crash must not leave the terminal raw
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "battle-input: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configFlag)
	if err != nil {
		return err
	}
	if *traceFlag {
		cfg.Trace = true
	}

	if logFile := setupLogging(cfg.Debug || *debugFlag); logFile != nil {
		defer logFile.Close()
	}

	keymap, err := input.LoadKeymap(cfg.Keys)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	core.SetCrashScreen(screen)
	defer func() {
		core.SetCrashScreen(nil)
		screen.Fini()
	}()

	sound := audio.NewSoundManager(cfg.Audio.Enabled, cfg.Audio.Volume)
	if err := sound.Initialize(); err != nil {
		// Non-fatal, the harness runs silent
		log.Printf("audio initialization failed: %v", err)
	}
	defer sound.Cleanup()

	anim := newFlags()
	pup := newPuppet(anim)
	fs, err := engine.NewFrameScheduler(cfg, engine.Deps{
		Movement: pup,
		Animator: anim,
		Sound:    sound,
		Relay:    relayLog{},
	})
	if err != nil {
		return err
	}
	fs.Start()
	defer fs.Stop()

	h := newHarness(fs, pup, keymap, sound)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	core.Go(func() {
		if err := config.Watch(ctx, *configFlag, h.reload); err != nil {
			log.Printf("config watch: %v", err)
		}
	})

	events := make(chan tcell.Event, 64)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				// Screen finalized
				return
			}
			events <- ev
		}
	})

	ticker := time.NewTicker(renderInterval)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !h.handleKey(ev) {
					return nil
				}
			case *tcell.EventResize:
				screen.Sync()
			}

		case err := <-fs.Err():
			return fmt.Errorf("frame loop: %w", err)

		case now := <-ticker.C:
			st := h.tick(now.Sub(last))
			last = now
			drawOverlay(screen, pup.view(), st, &h.moves, fs.Status().Snapshot())
		}
	}
}

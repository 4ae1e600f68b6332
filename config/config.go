// Package config loads battle-input tuning from TOML, environment overrides and defaults
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/lixenwraith/battle-input/combat"
	"github.com/lixenwraith/battle-input/input"
	"github.com/lixenwraith/battle-input/motion"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config is the full tuning surface
type Config struct {
	HistorySize   int               `toml:"history_size"`
	DashBudget    Duration          `toml:"dash_budget"`
	SpecialBudget Duration          `toml:"special_budget"`
	TickRate      int               `toml:"tick_rate"`
	BufferFrames  int               `toml:"buffer_frames"`
	Trace         bool              `toml:"trace"`
	Debug         bool              `toml:"debug"`
	Moveset       Moveset           `toml:"moveset"`
	Attacks       map[string]Attack `toml:"attacks"`
	Audio         Audio             `toml:"audio"`
	Keys          map[string]string `toml:"keys"`
}

// Moveset maps button names to attack identities
type Moveset struct {
	Ground  map[string]string `toml:"ground"`
	Air     map[string]string `toml:"air"`
	Special map[string]string `toml:"special"`
}

// Attack is per-attack frame data
type Attack struct {
	JumpCancel bool     `toml:"jump_cancel"`
	HitStop    Duration `toml:"hit_stop"`
}

type Audio struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"` // 0.0 - 1.0
}

// Default returns the built-in tuning
func Default() *Config {
	return &Config{
		HistorySize:   16,
		DashBudget:    Duration(250 * time.Millisecond),
		SpecialBudget: Duration(300 * time.Millisecond),
		TickRate:      60,
		BufferFrames:  4,
		Moveset: Moveset{
			Ground:  map[string]string{"a": "5B", "b": "5C"},
			Air:     map[string]string{"a": "J5B", "b": "J5C"},
			Special: map[string]string{"a": "StunEdge"},
		},
		Attacks: map[string]Attack{
			"5B":       {JumpCancel: true, HitStop: Duration(100 * time.Millisecond)},
			"5C":       {HitStop: Duration(150 * time.Millisecond)},
			"J5B":      {JumpCancel: true, HitStop: Duration(80 * time.Millisecond)},
			"J5C":      {HitStop: Duration(120 * time.Millisecond)},
			"StunEdge": {HitStop: Duration(100 * time.Millisecond)},
		},
		Audio: Audio{Enabled: true, Volume: 0.5},
		Keys:  map[string]string{},
	}
}

// Validate checks every bound and button name
func (c *Config) Validate() error {
	if c.HistorySize < input.MinHistorySize {
		return fmt.Errorf("%w: history_size %d < %d", ErrInvalidConfig, c.HistorySize, input.MinHistorySize)
	}
	if c.DashBudget <= 0 || c.SpecialBudget <= 0 {
		return fmt.Errorf("%w: motion budgets must be positive", ErrInvalidConfig)
	}
	if c.TickRate <= 0 || c.TickRate > 1000 {
		return fmt.Errorf("%w: tick_rate %d out of range 1-1000", ErrInvalidConfig, c.TickRate)
	}
	if c.BufferFrames < 0 {
		return fmt.Errorf("%w: buffer_frames %d < 0", ErrInvalidConfig, c.BufferFrames)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("%w: audio volume %.2f out of range 0-1", ErrInvalidConfig, c.Audio.Volume)
	}
	for name, a := range c.Attacks {
		if a.HitStop < 0 {
			return fmt.Errorf("%w: attacks.%s hit_stop is negative", ErrInvalidConfig, name)
		}
	}
	if _, err := c.Moveset.Resolve(); err != nil {
		return err
	}
	if _, err := input.LoadKeymap(c.Keys); err != nil {
		return fmt.Errorf("%w: keys: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Budgets returns the motion timing budgets
func (c *Config) Budgets() motion.Budgets {
	return motion.Budgets{Dash: c.DashBudget.Std(), Special: c.SpecialBudget.Std()}
}

// FrameDuration is one tick at TickRate
func (c *Config) FrameDuration() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

// Moves builds the attack property table
// Attacks bound in the air moveset are marked Air
func (c *Config) Moves() combat.Moves {
	air := make(map[string]bool, len(c.Moveset.Air))
	for _, id := range c.Moveset.Air {
		air[id] = true
	}
	moves := make(combat.Moves, len(c.Attacks))
	for name, a := range c.Attacks {
		moves[combat.Identity(name)] = combat.Properties{
			JumpCancel: a.JumpCancel,
			Air:        air[name],
			HitStop:    a.HitStop.Std(),
		}
	}
	return moves
}

// Bindings is a Moveset resolved to buttons
type Bindings struct {
	Ground  map[input.Button]combat.Identity
	Air     map[input.Button]combat.Identity
	Special map[input.Button]combat.Identity
}

// Resolve parses the button names of every table
func (m Moveset) Resolve() (Bindings, error) {
	var b Bindings
	var err error
	if b.Ground, err = resolveTable("ground", m.Ground); err != nil {
		return Bindings{}, err
	}
	if b.Air, err = resolveTable("air", m.Air); err != nil {
		return Bindings{}, err
	}
	if b.Special, err = resolveTable("special", m.Special); err != nil {
		return Bindings{}, err
	}
	return b, nil
}

func resolveTable(section string, table map[string]string) (map[input.Button]combat.Identity, error) {
	out := make(map[input.Button]combat.Identity, len(table))
	for name, id := range table {
		btn, err := input.ParseButton(name)
		if err != nil {
			return nil, fmt.Errorf("%w: moveset.%s: %w", ErrInvalidConfig, section, err)
		}
		if btn == input.ButtonD {
			return nil, fmt.Errorf("%w: moveset.%s: button d is reserved for throws", ErrInvalidConfig, section)
		}
		if id == "" {
			return nil, fmt.Errorf("%w: moveset.%s.%s is empty", ErrInvalidConfig, section, name)
		}
		out[btn] = combat.Identity(id)
	}
	return out, nil
}

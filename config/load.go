package config

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/gjson"
)

// ParseError reports a malformed config file
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Load reads path over the defaults, applies environment overrides and validates
// A missing file is not an error; an empty path skips the file
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		default:
			if err := decode(path, data, cfg); err != nil {
				return nil, err
			}
		}
	}

	applyEnv(cfg, os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes TOML data over the defaults without consulting the environment
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := decode("<data>", data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(source string, data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		pe := &ParseError{Path: source, Message: err.Error(), Err: err}
		var de *toml.DecodeError
		if errors.As(err, &de) {
			pe.Line, pe.Column = de.Position()
		}
		return pe
	}
	return nil
}

// Environment overrides, applied after the file
const (
	envHistorySize   = "BATTLE_INPUT_HISTORY_SIZE"
	envDashBudget    = "BATTLE_INPUT_DASH_BUDGET"
	envSpecialBudget = "BATTLE_INPUT_SPECIAL_BUDGET"
	envTickRate      = "BATTLE_INPUT_TICK_RATE"
	envBufferFrames  = "BATTLE_INPUT_BUFFER_FRAMES"
	envTrace         = "BATTLE_INPUT_TRACE"
	envAudioEnabled  = "BATTLE_INPUT_AUDIO_ENABLED"
	envVolume        = "BATTLE_INPUT_VOLUME"   // 0-100
	envHitStop       = "BATTLE_INPUT_HIT_STOP" // JSON object: {"5B": "120ms"}
)

// applyEnv overrides cfg from lookup; unparsable values are logged and skipped
func applyEnv(cfg *Config, lookup func(string) (string, bool)) {
	intVar := func(key string, dst *int) {
		if v, ok := lookup(key); ok {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			} else {
				log.Printf("config: ignoring %s=%q: %v", key, v, err)
			}
		}
	}
	durVar := func(key string, dst *Duration) {
		if v, ok := lookup(key); ok {
			if err := dst.UnmarshalText([]byte(v)); err != nil {
				log.Printf("config: ignoring %s=%q: %v", key, v, err)
			}
		}
	}
	boolVar := func(key string, dst *bool) {
		if v, ok := lookup(key); ok {
			if b, err := strconv.ParseBool(v); err == nil {
				*dst = b
			} else {
				log.Printf("config: ignoring %s=%q: %v", key, v, err)
			}
		}
	}

	intVar(envHistorySize, &cfg.HistorySize)
	durVar(envDashBudget, &cfg.DashBudget)
	durVar(envSpecialBudget, &cfg.SpecialBudget)
	intVar(envTickRate, &cfg.TickRate)
	intVar(envBufferFrames, &cfg.BufferFrames)
	boolVar(envTrace, &cfg.Trace)
	boolVar(envAudioEnabled, &cfg.Audio.Enabled)

	if v, ok := lookup(envVolume); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Audio.Volume = min(max(float64(n)/100.0, 0), 1)
		}
	}

	if v, ok := lookup(envHitStop); ok {
		if !gjson.Valid(v) {
			log.Printf("config: ignoring %s: not JSON", envHitStop)
			return
		}
		gjson.Parse(v).ForEach(func(key, value gjson.Result) bool {
			d, err := time.ParseDuration(value.String())
			if err != nil {
				log.Printf("config: ignoring %s.%s: %v", envHitStop, key.String(), err)
				return true
			}
			if cfg.Attacks == nil {
				cfg.Attacks = make(map[string]Attack)
			}
			a := cfg.Attacks[key.String()]
			a.HitStop = Duration(d)
			cfg.Attacks[key.String()] = a
			return true
		})
	}
}

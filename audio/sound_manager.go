package audio

import (
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(48000)
	// Speaker buffer, trades latency for underrun safety
	bufferDuration = 50 * time.Millisecond
)

// Effect names accepted by Play
const (
	EffectWhiff  = "whiff"
	EffectCancel = "cancel"
	EffectHit    = "hit"
	EffectDash   = "dash"
)

// SoundManager plays one-shot combat effects through a shared mixer
// Every method is safe before Initialize and after Cleanup; playback is then a no-op
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	enabled     bool
	volume      float64
	seed        int64
	played      map[string]int
	unknown     map[string]bool
}

// NewSoundManager creates a manager with the given output settings
func NewSoundManager(enabled bool, volume float64) *SoundManager {
	return &SoundManager{
		mixer:   &beep.Mixer{},
		enabled: enabled,
		volume:  clampVolume(volume),
		seed:    time.Now().UnixNano(),
		played:  make(map[string]int),
		unknown: make(map[string]bool),
	}
}

// Initialize opens the speaker and starts the mixer
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(bufferDuration)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences every active effect
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	speaker.Clear()
	sm.initialized = false
}

// Configure updates the output settings, taking effect on the next Play
func (sm *SoundManager) Configure(enabled bool, volume float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.enabled = enabled
	sm.volume = clampVolume(volume)
}

// Play starts effect; unknown names are logged once and ignored
func (sm *SoundManager) Play(effect string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	s := sm.build(effect)
	if s == nil {
		if !sm.unknown[effect] {
			sm.unknown[effect] = true
			log.Printf("audio: unknown effect %q", effect)
		}
		return
	}
	sm.played[effect]++

	if !sm.initialized || !sm.enabled || sm.volume == 0 {
		return
	}

	speaker.Lock()
	sm.mixer.Add(withVolume(s, sm.volume))
	speaker.Unlock()
}

// Played returns how many times effect was requested, audible or not
func (sm *SoundManager) Played(effect string) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.played[effect]
}

// build returns a fresh streamer for effect, nil if unknown
func (sm *SoundManager) build(effect string) beep.Streamer {
	sm.seed++
	switch effect {
	case EffectWhiff:
		return whiffSound(sampleRate, sm.seed)
	case EffectDash:
		return dashSound(sampleRate, sm.seed)
	case EffectHit:
		return hitSound(sampleRate, sm.seed)
	case EffectCancel:
		return cancelSound(sampleRate)
	default:
		return nil
	}
}

func clampVolume(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// Effect durations
const (
	whiffDuration  = 90 * time.Millisecond
	dashDuration   = 60 * time.Millisecond
	hitDuration    = 120 * time.Millisecond
	cancelNote     = 45 * time.Millisecond
	attackDuration = 4 * time.Millisecond
)

// noise is white noise that ends after a fixed sample count
type noise struct {
	remaining int
	rng       *rand.Rand
}

func newNoise(d time.Duration, rate beep.SampleRate, seed int64) beep.Streamer {
	return &noise{remaining: rate.N(d), rng: rand.New(rand.NewSource(seed))}
}

func (n *noise) Stream(samples [][2]float64) (int, bool) {
	if n.remaining <= 0 {
		return 0, false
	}
	count := len(samples)
	if count > n.remaining {
		count = n.remaining
	}
	for i := 0; i < count; i++ {
		v := n.rng.Float64()*2 - 1
		samples[i][0] = v
		samples[i][1] = v
	}
	n.remaining -= count
	return count, true
}

func (n *noise) Err() error { return nil }

// shape applies a linear attack then exponential release over total samples
type shape struct {
	streamer beep.Streamer
	pos      int
	attack   int
	total    int
	decay    float64
}

func newShape(s beep.Streamer, d time.Duration, decay float64, rate beep.SampleRate) beep.Streamer {
	return &shape{
		streamer: s,
		attack:   rate.N(attackDuration),
		total:    rate.N(d),
		decay:    decay,
	}
}

func (e *shape) Stream(samples [][2]float64) (n int, ok bool) {
	if e.pos >= e.total {
		return 0, false
	}
	if rem := e.total - e.pos; len(samples) > rem {
		samples = samples[:rem]
	}
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		gain := math.Exp(-e.decay * float64(e.pos) / float64(e.total))
		if e.pos < e.attack && e.attack > 0 {
			gain *= float64(e.pos) / float64(e.attack)
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		e.pos++
	}
	return n, ok
}

func (e *shape) Err() error { return e.streamer.Err() }

// withVolume scales s linearly; 0 mutes
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

func tone(freq float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	sine, err := generators.SineTone(rate, freq)
	if err != nil {
		// Frequency above Nyquist
		return generators.Silence(rate.N(d))
	}
	return beep.Take(rate.N(d), sine)
}

// whiffSound is a short airy swish for an attack startup
func whiffSound(rate beep.SampleRate, seed int64) beep.Streamer {
	return withVolume(newShape(newNoise(whiffDuration, rate, seed), whiffDuration, 4, rate), 0.35)
}

// dashSound is a shorter, brighter swish
func dashSound(rate beep.SampleRate, seed int64) beep.Streamer {
	return withVolume(newShape(newNoise(dashDuration, rate, seed), dashDuration, 6, rate), 0.25)
}

// hitSound is a low thump with a noise crack on top
func hitSound(rate beep.SampleRate, seed int64) beep.Streamer {
	body := newShape(tone(70, hitDuration, rate), hitDuration, 5, rate)
	crack := newShape(newNoise(hitDuration/3, rate, seed), hitDuration/3, 8, rate)
	return beep.Mix(withVolume(body, 0.8), withVolume(crack, 0.4))
}

// cancelSound is a rising two-note chirp
func cancelSound(rate beep.SampleRate) beep.Streamer {
	low := newShape(tone(660, cancelNote, rate), cancelNote, 2, rate)
	high := newShape(tone(990, cancelNote, rate), cancelNote, 3, rate)
	return withVolume(beep.Seq(low, high), 0.3)
}

package input

import (
	"fmt"
	"math"
	"time"
)

// MinHistorySize is the smallest history able to hold a four-sample motion
const MinHistorySize = 4

// Unbounded is the Elapsed of a hold that began before the oldest sample
// Exceeds any budget, and a few of them still sum without overflow
const Unbounded = time.Duration(math.MaxInt64 / 8)

// Sample is one committed frame of input
// Elapsed is the time since the previous sample was committed
type Sample struct {
	Direction Direction
	Buttons   ButtonSet
	Elapsed   time.Duration
}

// neutralSample is the pre-fill value: no input yet, all buttons up, zero time
var neutralSample = Sample{Direction: DirNone}

// History is a fixed-capacity, newest-first ring of committed samples
// Len always equals Cap; every Commit evicts the oldest entry
// Single writer: the frame tick owns it, recognizers read through At/Fill
type History struct {
	samples []Sample
	head    int // Physical index of the newest sample
}

// NewHistory creates a history pre-filled with capacity neutral samples
func NewHistory(capacity int) (*History, error) {
	if capacity < MinHistorySize {
		return nil, fmt.Errorf("%w: %d < %d", ErrHistoryTooSmall, capacity, MinHistorySize)
	}
	h := &History{samples: make([]Sample, capacity)}
	h.Reset()
	return h, nil
}

// Reset re-fills the history with neutral samples
func (h *History) Reset() {
	for i := range h.samples {
		h.samples[i] = neutralSample
	}
	h.head = 0
}

// Commit inserts s as the newest sample, evicting the oldest
func (h *History) Commit(s Sample) {
	h.head--
	if h.head < 0 {
		h.head = len(h.samples) - 1
	}
	h.samples[h.head] = s
}

// Len returns the number of samples held, always Cap
func (h *History) Len() int {
	return len(h.samples)
}

// Cap returns the configured capacity
func (h *History) Cap() int {
	return len(h.samples)
}

// Sample returns the i-th newest sample, 0 = current frame
func (h *History) Sample(i int) (Sample, error) {
	if i < 0 || i >= len(h.samples) {
		return Sample{}, fmt.Errorf("%w: %d (capacity %d)", ErrIndexOutOfRange, i, len(h.samples))
	}
	return h.samples[(h.head+i)%len(h.samples)], nil
}

// At is Sample for callers that have already bounded i
// Panics on out-of-range access
func (h *History) At(i int) Sample {
	s, err := h.Sample(i)
	if err != nil {
		panic(err)
	}
	return s
}

// DirectionChanged reports whether the newest sample began a new direction
func (h *History) DirectionChanged() bool {
	return h.At(0).Direction != h.At(1).Direction
}

// run is one stretch of consecutive samples sharing a direction
type run struct {
	dir     Direction
	buttons ButtonSet     // Buttons of the sample where the run began
	start   time.Duration // Age of the run's oldest sample, relative to sample 0
}

// Fill collapses the history into its newest direction changes and writes them into w
// Entry k of w is the k-th newest run of identical directions
// Its Elapsed is how long the previous (older) run was held before entry k began
// A run that reaches the oldest sample has no known start, so the entry after it
// and every older entry report Unbounded
// Returns how long the newest run has been held, also available as w.SinceCurrent
func (h *History) Fill(w *Window) time.Duration {
	var runs [WindowSize + 1]run
	count := 0
	truncated := false

	var age time.Duration
	var prev Sample
	for i := 0; i < len(h.samples); i++ {
		s := h.At(i)
		if i > 0 {
			age += prev.Elapsed
		}
		if count == 0 || s.Direction != runs[count-1].dir {
			if count == len(runs) {
				truncated = true
				break
			}
			runs[count].dir = s.Direction
			count++
		}
		runs[count-1].start = age
		runs[count-1].buttons = s.Buttons
		prev = s
	}

	// Truncated means a sixth direction was seen, so every kept run is complete
	// Otherwise the last run reaches the oldest sample and its start is unknown
	for k := 0; k < WindowSize; k++ {
		if k >= count {
			w.samples[k] = neutralSample
			continue
		}
		elapsed := Unbounded
		if truncated || k+1 < count-1 {
			elapsed = runs[k+1].start - runs[k].start
		}
		w.samples[k] = Sample{
			Direction: runs[k].dir,
			Buttons:   runs[k].buttons,
			Elapsed:   elapsed,
		}
	}
	w.since = runs[0].start
	if !truncated && count == 1 {
		w.since = Unbounded
	}
	return w.since
}

// WindowSize is the number of direction changes motion recognition reads
const WindowSize = 4

// Window is a newest-first view of direction changes
type Window struct {
	samples [WindowSize]Sample
	since   time.Duration
}

// WindowOf builds a window directly from changes, newest first
// Entries beyond those given are neutral
func WindowOf(sinceCurrent time.Duration, changes ...Sample) Window {
	w := Window{since: sinceCurrent}
	for i := range w.samples {
		if i < len(changes) {
			w.samples[i] = changes[i]
		} else {
			w.samples[i] = neutralSample
		}
	}
	return w
}

// At returns the i-th newest change, panics past WindowSize
func (w *Window) At(i int) Sample {
	return w.samples[i]
}

// SinceCurrent returns how long the newest change has been held
func (w *Window) SinceCurrent() time.Duration {
	return w.since
}

package motion

import (
	"testing"
	"time"

	"github.com/lixenwraith/battle-input/input"
)

const ms = time.Millisecond

func changes(dirs []input.Direction, times ...time.Duration) *input.Window {
	samples := make([]input.Sample, len(dirs))
	for i, d := range dirs {
		samples[i].Direction = d
		if i < len(times) {
			samples[i].Elapsed = times[i]
		}
	}
	w := input.WindowOf(0, samples...)
	return &w
}

func TestDetectDashScenario(t *testing.T) {
	w := changes([]input.Direction{input.DirForward, input.DirNeutral, input.DirForward}, 10*ms, 5*ms)

	if got := DetectDash(w, Budgets{Dash: 16 * ms}); got != DashForward {
		t.Errorf("budget 16ms: DetectDash = %v, want forward", got)
	}
	if got := DetectDash(w, Budgets{Dash: 10 * ms}); got != DashNone {
		t.Errorf("budget 10ms: DetectDash = %v, want none (15ms > 10ms)", got)
	}
	if got := DetectDash(w, Budgets{Dash: 15 * ms}); got != DashForward {
		t.Errorf("budget 15ms: DetectDash = %v, want forward (budget is inclusive)", got)
	}
}

// TestDetectDashBreakingAnyInput verifies every one of the four inputs is load-bearing
func TestDetectDashBreakingAnyInput(t *testing.T) {
	budget := Budgets{Dash: 16 * ms}
	base := []input.Direction{input.DirForward, input.DirNeutral, input.DirForward}

	for i := range base {
		for d := input.DirNone; d.Valid(); d++ {
			if d == base[i] {
				continue
			}
			mutated := append([]input.Direction(nil), base...)
			mutated[i] = d
			w := changes(mutated, 10*ms, 5*ms)
			if ForwardDashPattern(w) && !(i == 2 && d == input.DirUpForward) {
				t.Errorf("mutating change %d to %v still matched", i, d)
			}
		}
	}

	if got := DetectDash(changes(base, 12*ms, 5*ms), budget); got != DashNone {
		t.Errorf("time(0) over budget: DetectDash = %v, want none", got)
	}
	if got := DetectDash(changes(base, 10*ms, 7*ms), budget); got != DashNone {
		t.Errorf("time(1) over budget: DetectDash = %v, want none", got)
	}
}

func TestDashPatterns(t *testing.T) {
	D := func(ds ...input.Direction) []input.Direction { return ds }
	tests := []struct {
		name string
		dirs []input.Direction
		want Dash
	}{
		{"656", D(input.DirForward, input.DirNeutral, input.DirForward), DashForward},
		{"956 newest-first 6 5 9", D(input.DirForward, input.DirNeutral, input.DirUpForward), DashForward},
		{"6 5 8 9", D(input.DirForward, input.DirNeutral, input.DirUp, input.DirUpForward), DashForward},
		{"6 5 8 7", D(input.DirForward, input.DirNeutral, input.DirUp, input.DirUpBack), DashNone},
		{"454", D(input.DirBack, input.DirNeutral, input.DirBack), DashBack},
		{"4 5 7", D(input.DirBack, input.DirNeutral, input.DirUpBack), DashBack},
		{"4 5 8 7", D(input.DirBack, input.DirNeutral, input.DirUp, input.DirUpBack), DashBack},
		{"6 5 4", D(input.DirForward, input.DirNeutral, input.DirBack), DashNone},
		{"6 3 6", D(input.DirForward, input.DirDownForward, input.DirForward), DashNone},
		{"6 from nothing", D(input.DirForward, input.DirNone, input.DirNone), DashNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectDash(changes(tt.dirs, ms, ms), Budgets{Dash: 100 * ms})
			if got != tt.want {
				t.Errorf("DetectDash = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRecognizeDashGate(t *testing.T) {
	fwd := changes([]input.Direction{input.DirForward, input.DirNeutral, input.DirForward}, ms, ms)
	back := changes([]input.Direction{input.DirBack, input.DirNeutral, input.DirBack}, ms, ms)
	budget := Budgets{Dash: 50 * ms}

	tests := []struct {
		name string
		r    Reader
		gate Gate
		want Dash
	}{
		{"free forward", fwd, Gate{}, DashForward},
		{"attacking", fwd, Gate{Attacking: true}, DashNone},
		{"running forward", fwd, Gate{Running: true}, DashNone},
		{"skidding forward", fwd, Gate{Skidding: true}, DashNone},
		{"running back", back, Gate{Running: true}, DashBack},
		{"attacking back", back, Gate{Attacking: true}, DashNone},
	}
	for _, tt := range tests {
		if got := RecognizeDash(tt.r, budget, tt.gate); got != tt.want {
			t.Errorf("%s: RecognizeDash = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestDetectQuarterCircle(t *testing.T) {
	budget := Budgets{Special: 100 * ms}
	qcf := []input.Direction{input.DirForward, input.DirDownForward, input.DirDown}
	buffered := []input.Direction{input.DirNeutral, input.DirForward, input.DirDownForward, input.DirDown}

	tests := []struct {
		name  string
		dirs  []input.Direction
		times []time.Duration
		since time.Duration
		want  Result
	}{
		{"canonical in budget", qcf, []time.Duration{40 * ms, 30 * ms}, 60 * ms, Result{true, VariantCanonical}},
		{"canonical at budget", qcf, []time.Duration{40 * ms, 500 * ms}, 60 * ms, Result{true, VariantCanonical}},
		{"canonical too slow", qcf, []time.Duration{40 * ms}, 61 * ms, Result{}},
		{"buffered in budget", buffered, []time.Duration{20 * ms, 30 * ms}, 10 * ms, Result{true, VariantBuffered}},
		{"buffered too slow", buffered, []time.Duration{20 * ms, 30 * ms}, 51 * ms, Result{}},
		{"no motion", []input.Direction{input.DirForward, input.DirNeutral, input.DirDown}, nil, 0, Result{}},
		{"reverse motion", []input.Direction{input.DirBack, input.DirDownBack, input.DirDown}, nil, 0, Result{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := changes(tt.dirs, tt.times...)
			got := DetectQuarterCircle(w, budget, tt.since)
			if got != tt.want {
				t.Errorf("DetectQuarterCircle = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// TestQuarterCircleCanonicalWins uses a reader where both shapes are present
func TestQuarterCircleCanonicalWins(t *testing.T) {
	r := fixedReader{input.DirForward, input.DirDownForward, input.DirDown, input.DirDown}
	got := DetectQuarterCircle(r, Budgets{Special: time.Second}, 0)
	if got.Variant != VariantCanonical {
		t.Errorf("Variant = %v, want canonical", got.Variant)
	}
}

// fixedReader serves directions with zero elapsed, including shapes Window never produces
type fixedReader []input.Direction

func (f fixedReader) At(i int) input.Sample {
	return input.Sample{Direction: f[i]}
}

// TestRecognizeFromHistory drives recognition through a per-frame history
func TestRecognizeFromHistory(t *testing.T) {
	h, err := input.NewHistory(16)
	if err != nil {
		t.Fatal(err)
	}
	frame := 5 * ms
	for _, d := range []input.Direction{input.DirNeutral, input.DirForward, input.DirForward, input.DirNeutral, input.DirForward} {
		h.Commit(input.Sample{Direction: d, Elapsed: frame})
	}

	var w input.Window
	h.Fill(&w)
	// 6 held 2 frames, 5 held 1 frame: time(0)+time(1) = 15ms
	if got := DetectDash(&w, Budgets{Dash: 15 * ms}); got != DashForward {
		t.Errorf("DetectDash = %v, want forward", got)
	}
	if got := DetectDash(&w, Budgets{Dash: 14 * ms}); got != DashNone {
		t.Errorf("DetectDash = %v, want none", got)
	}
}

func TestDetectDashRejectsHoldOlderThanHistory(t *testing.T) {
	h, err := input.NewHistory(16)
	if err != nil {
		t.Fatal(err)
	}
	frame := time.Second / 60
	// 6 held a full second, longer than the 16-frame ring spans
	for i := 0; i < 60; i++ {
		h.Commit(input.Sample{Direction: input.DirForward, Elapsed: frame})
	}
	h.Commit(input.Sample{Direction: input.DirNeutral, Elapsed: frame})
	h.Commit(input.Sample{Direction: input.DirForward, Elapsed: frame})

	var w input.Window
	h.Fill(&w)
	if got := DetectDash(&w, Budgets{Dash: 250 * ms}); got != DashNone {
		t.Errorf("DetectDash = %v, want none", got)
	}

	// The same tap after a short hold still dashes
	h.Reset()
	for _, d := range []input.Direction{input.DirNeutral, input.DirForward, input.DirForward, input.DirNeutral, input.DirForward} {
		h.Commit(input.Sample{Direction: d, Elapsed: frame})
	}
	h.Fill(&w)
	if got := DetectDash(&w, Budgets{Dash: 250 * ms}); got != DashForward {
		t.Errorf("DetectDash after short hold = %v, want forward", got)
	}
}

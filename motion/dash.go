package motion

import "github.com/lixenwraith/battle-input/input"

// Dash is the result of dash recognition
type Dash uint8

const (
	DashNone Dash = iota
	DashForward
	DashBack
)

func (d Dash) String() string {
	switch d {
	case DashForward:
		return "forward"
	case DashBack:
		return "back"
	}
	return "none"
}

// Gate carries the character conditions that veto a recognized dash
type Gate struct {
	Attacking bool
	Running   bool
	Skidding  bool
}

// ForwardDashPattern matches 6 5 6, 6 5 9, or 6 5 8 9 (newest first)
func ForwardDashPattern(r Reader) bool {
	return dashPattern(r, input.DirForward, input.DirUpForward)
}

// BackDashPattern matches 4 5 4, 4 5 7, or 4 5 8 7 (newest first)
func BackDashPattern(r Reader) bool {
	return dashPattern(r, input.DirBack, input.DirUpBack)
}

func dashPattern(r Reader, side, upSide input.Direction) bool {
	if r.At(0).Direction != side || r.At(1).Direction != input.DirNeutral {
		return false
	}
	third := r.At(2).Direction
	if third == side || third == upSide {
		return true
	}
	return third == input.DirUp && r.At(3).Direction == upSide
}

// DetectDash classifies the pattern and checks time(0)+time(1) against budget
func DetectDash(r Reader, budget Budgets) Dash {
	if r.At(0).Elapsed+r.At(1).Elapsed > budget.Dash {
		return DashNone
	}
	switch {
	case ForwardDashPattern(r):
		return DashForward
	case BackDashPattern(r):
		return DashBack
	}
	return DashNone
}

// RecognizeDash is DetectDash plus the character gate
// A forward dash is refused while already running or skidding, a back dash is not
func RecognizeDash(r Reader, budget Budgets, gate Gate) Dash {
	if gate.Attacking {
		return DashNone
	}
	d := DetectDash(r, budget)
	if d == DashForward && (gate.Running || gate.Skidding) {
		return DashNone
	}
	return d
}

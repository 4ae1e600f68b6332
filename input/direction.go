package input

// Direction is a digital stick position in numpad notation, facing-relative
// (Forward = toward the opponent)
type Direction uint8

const (
	DirNone        Direction = iota // No input detected yet
	DirNeutral                      // 5
	DirDownBack                     // 1
	DirDown                         // 2
	DirDownForward                  // 3
	DirBack                         // 4
	DirForward                      // 6
	DirUpBack                       // 7
	DirUp                           // 8
	DirUpForward                    // 9
	dirCount
)

var directionNames = [dirCount]string{
	DirNone:        "0",
	DirNeutral:     "5",
	DirDownBack:    "1",
	DirDown:        "2",
	DirDownForward: "3",
	DirBack:        "4",
	DirForward:     "6",
	DirUpBack:      "7",
	DirUp:          "8",
	DirUpForward:   "9",
}

// String returns the numpad digit
func (d Direction) String() string {
	if d >= dirCount {
		return "?"
	}
	return directionNames[d]
}

// Valid reports whether d is one of the ten defined values
func (d Direction) Valid() bool {
	return d < dirCount
}

// IsUp reports 7, 8 or 9
func (d Direction) IsUp() bool {
	return d == DirUpBack || d == DirUp || d == DirUpForward
}

// IsDown reports 1, 2 or 3
func (d Direction) IsDown() bool {
	return d == DirDownBack || d == DirDown || d == DirDownForward
}

// Mirror swaps the horizontal component
// Vertical-only and neutral values are returned unchanged
func (d Direction) Mirror() Direction {
	switch d {
	case DirBack:
		return DirForward
	case DirForward:
		return DirBack
	case DirDownBack:
		return DirDownForward
	case DirDownForward:
		return DirDownBack
	case DirUpBack:
		return DirUpForward
	case DirUpForward:
		return DirUpBack
	}
	return d
}

// DirectionFromStick resolves raw facing-relative stick bits into a direction
// Simultaneous opposites cancel: up+down keeps up, back+forward keeps neither
func DirectionFromStick(up, down, back, forward bool) Direction {
	if up && down {
		down = false
	}
	if back && forward {
		back, forward = false, false
	}

	switch {
	case up && back:
		return DirUpBack
	case up && forward:
		return DirUpForward
	case up:
		return DirUp
	case down && back:
		return DirDownBack
	case down && forward:
		return DirDownForward
	case down:
		return DirDown
	case back:
		return DirBack
	case forward:
		return DirForward
	}
	return DirNeutral
}

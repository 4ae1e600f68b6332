// Package motion recognizes timed stick motions in an input history
//
// Every function here is pure: it reads the newest direction changes through
// a Reader and a timing budget, and never mutates either. Entry 0 is the
// current change; entry k's Elapsed is how long the direction before it was
// held.
package motion

import (
	"time"

	"github.com/lixenwraith/battle-input/input"
)

// Reader exposes the newest direction changes, newest first
// *input.Window satisfies it
type Reader interface {
	At(i int) input.Sample
}

// Budgets are the maximum cumulative windows a motion may take
// The two families are tuned independently
type Budgets struct {
	Dash    time.Duration // 66 / 44 window
	Special time.Duration // 236 window
}

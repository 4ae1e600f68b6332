package engine

import (
	"time"

	"github.com/lixenwraith/battle-input/combat"
)

// Timer is a pending callback from Clock.AfterFunc
type Timer = combat.Timer

// Clock is the time source for frame pacing and hit-stop timers
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// WallClock is the real system clock with monotonic readings
type WallClock struct{}

func NewWallClock() *WallClock {
	return &WallClock{}
}

func (WallClock) Now() time.Time {
	return time.Now()
}

// AfterFunc runs f on its own goroutine after d
func (WallClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

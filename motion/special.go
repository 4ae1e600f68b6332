package motion

import (
	"time"

	"github.com/lixenwraith/battle-input/input"
)

// Variant tags how a special motion was matched
type Variant uint8

const (
	VariantNone      Variant = iota
	VariantCanonical         // 2 3 6 completed by the newest change
	VariantBuffered          // 2 3 6 completed one change earlier
)

func (v Variant) String() string {
	switch v {
	case VariantCanonical:
		return "canonical"
	case VariantBuffered:
		return "buffered"
	}
	return "none"
}

// Result is the outcome of special-motion recognition
type Result struct {
	Matched bool
	Variant Variant
}

var noMatch = Result{}

// quarterCircleAt reports 2 3 6 ending at change index i (newest first)
func quarterCircleAt(r Reader, i int) bool {
	return r.At(i).Direction == input.DirForward &&
		r.At(i+1).Direction == input.DirDownForward &&
		r.At(i+2).Direction == input.DirDown
}

// DetectQuarterCircle recognizes 236 within budget.Special
// Canonical: the window runs from the 3 to now, time(0) + sinceCurrent
// Buffered: the press came one change after the 6, time(1) + time(0) + sinceCurrent
// Canonical is tested first and wins when both would match
func DetectQuarterCircle(r Reader, budget Budgets, sinceCurrent time.Duration) Result {
	if quarterCircleAt(r, 0) {
		if r.At(0).Elapsed+sinceCurrent <= budget.Special {
			return Result{Matched: true, Variant: VariantCanonical}
		}
		return noMatch
	}
	if quarterCircleAt(r, 1) {
		if r.At(1).Elapsed+r.At(0).Elapsed+sinceCurrent <= budget.Special {
			return Result{Matched: true, Variant: VariantBuffered}
		}
	}
	return noMatch
}

package status

import (
	"math"
	"sync/atomic"
)

// Gauge is a float64 that also tracks an exponential moving average
// Zero value is ready to use
type Gauge struct {
	last atomic.Uint64
	avg  atomic.Uint64
}

// smoothing is the weight of each new sample in the average
const smoothing = 0.1

// Observe records v as the latest value and folds it into the average
// The first sample seeds the average
func (g *Gauge) Observe(v float64) {
	g.last.Store(math.Float64bits(v))
	for {
		old := g.avg.Load()
		next := v
		if old != 0 {
			next = math.Float64frombits(old)*(1-smoothing) + v*smoothing
		}
		if g.avg.CompareAndSwap(old, math.Float64bits(next)) {
			return
		}
	}
}

func (g *Gauge) Last() float64 {
	return math.Float64frombits(g.last.Load())
}

func (g *Gauge) Average() float64 {
	return math.Float64frombits(g.avg.Load())
}

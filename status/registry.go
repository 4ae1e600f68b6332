// Package status holds lock-free runtime counters for the frame loop and the harness overlay
package status

import (
	"fmt"
	"strconv"
	"sync/atomic"
)

// Registry groups every metric the frame loop publishes
// Writers cache metric pointers at construction; readers take a Snapshot
type Registry struct {
	Counters *Set[atomic.Int64]
	Gauges   *Set[Gauge]
	Labels   *Set[Label]
}

func NewRegistry() *Registry {
	return &Registry{
		Counters: newSet[atomic.Int64](),
		Gauges:   newSet[Gauge](),
		Labels:   newSet[Label](),
	}
}

// Entry is one formatted metric
type Entry struct {
	Key   string
	Value string
}

// Snapshot formats every metric, counters first, then gauges, then labels
func (r *Registry) Snapshot() []Entry {
	out := make([]Entry, 0, r.Len())
	r.Counters.Range(func(k string, v *atomic.Int64) {
		out = append(out, Entry{k, strconv.FormatInt(v.Load(), 10)})
	})
	r.Gauges.Range(func(k string, g *Gauge) {
		out = append(out, Entry{k, fmt.Sprintf("%.2f (avg %.2f)", g.Last(), g.Average())})
	})
	r.Labels.Range(func(k string, l *Label) {
		out = append(out, Entry{k, l.Load()})
	})
	return out
}

// Len returns the total number of registered metrics
func (r *Registry) Len() int {
	return r.Counters.Len() + r.Gauges.Len() + r.Labels.Len()
}

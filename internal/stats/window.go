// Package stats keeps rolling render statistics for the service.
package stats

import (
	"slices"
	"sync"
	"time"
)

type sample struct {
	at         time.Time
	duration   time.Duration
	unresolved int
}

// Snapshot is a point-in-time aggregate of recent renders.
type Snapshot struct {
	Renders    int     `json:"renders"`
	Unresolved int     `json:"unresolved_references"`
	MinMs      float64 `json:"min_ms"`
	MaxMs      float64 `json:"max_ms"`
	AvgMs      float64 `json:"avg_ms"`
	P50Ms      float64 `json:"p50_ms"`
	P95Ms      float64 `json:"p95_ms"`
}

// Window tracks renders within a rolling time window.
type Window struct {
	mu      sync.Mutex
	samples []sample
	maxAge  time.Duration
}

func NewWindow(maxAge time.Duration) *Window {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &Window{
		samples: make([]sample, 0, 256),
		maxAge:  maxAge,
	}
}

// Record adds one render that took d and left unresolved references behind.
func (w *Window) Record(d time.Duration, unresolved int) {
	now := time.Now()
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pruneLocked(now)
	w.samples = append(w.samples, sample{at: now, duration: max(d, 0), unresolved: unresolved})
}

func (w *Window) Snapshot() Snapshot {
	now := time.Now()
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pruneLocked(now)
	if len(w.samples) == 0 {
		return Snapshot{}
	}

	ms := make([]float64, 0, len(w.samples))
	var sum float64
	snap := Snapshot{Renders: len(w.samples)}
	for _, s := range w.samples {
		v := float64(s.duration) / float64(time.Millisecond)
		ms = append(ms, v)
		sum += v
		snap.Unresolved += s.unresolved
	}
	slices.Sort(ms)

	snap.MinMs = ms[0]
	snap.MaxMs = ms[len(ms)-1]
	snap.AvgMs = sum / float64(len(ms))
	snap.P50Ms = percentile(ms, 50)
	snap.P95Ms = percentile(ms, 95)
	return snap
}

func (w *Window) pruneLocked(now time.Time) {
	cutoff := now.Add(-w.maxAge)
	w.samples = slices.DeleteFunc(w.samples, func(s sample) bool {
		return s.at.Before(cutoff)
	})
}

// percentile interpolates linearly between the two nearest ranks of a
// sorted slice.
func percentile(sorted []float64, pct float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if pct <= 0 {
		return sorted[0]
	}
	if pct >= 100 {
		return sorted[len(sorted)-1]
	}
	index := float64(len(sorted)-1) * pct / 100
	lower := int(index)
	if lower+1 >= len(sorted) {
		return sorted[lower]
	}
	weight := index - float64(lower)
	return sorted[lower] + (sorted[lower+1]-sorted[lower])*weight
}

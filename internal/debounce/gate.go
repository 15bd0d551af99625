// Package debounce delays a search until typing pauses.
package debounce

import (
	"sync"
	"time"
)

// DefaultInterval is the quiet window used when none is configured
const DefaultInterval = 300 * time.Millisecond

// Gate holds at most one pending call. Each Schedule replaces the pending
// call, so only the last term seen within the quiet window fires.
type Gate struct {
	mu       sync.Mutex
	interval time.Duration
	fire     func(term string)
	timer    *time.Timer
	gen      uint64
}

// New creates a gate that calls fire on its own goroutine once interval
// passes without another Schedule
func New(interval time.Duration, fire func(term string)) *Gate {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Gate{
		interval: interval,
		fire:     fire,
	}
}

// Schedule cancels the pending call, if any, and schedules term
func (g *Gate) Schedule(term string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.timer != nil {
		g.timer.Stop()
	}
	g.gen++
	gen := g.gen
	g.timer = time.AfterFunc(g.interval, func() {
		g.mu.Lock()
		// a timer that already started when Stop was called must not fire a stale term
		if gen != g.gen {
			g.mu.Unlock()
			return
		}
		g.timer = nil
		g.mu.Unlock()

		g.fire(term)
	})
}

// Stop cancels the pending call. It reports whether one was pending.
func (g *Gate) Stop() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.timer == nil {
		return false
	}
	g.timer.Stop()
	g.timer = nil
	g.gen++
	return true
}

// Pending reports whether a call is scheduled and has not fired yet
func (g *Gate) Pending() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.timer != nil
}

// Interval returns the quiet window
func (g *Gate) Interval() time.Duration {
	return g.interval
}

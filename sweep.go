// sweep.go — addresses an open design question: a watcher that
// terminates without demonitoring leaves its record on a long-lived
// target's monitor table, where no one ever removes it. The
// spec leaves the resolution to the host; this package provides an
// opt-in, rate-limited sweep a host can call periodically, built directly
// on an existing sliding-window rate limiter (catrate.Limiter) rather than
// hand-rolling a second sliding-window implementation.
package procore

import (
	"time"

	catrate "github.com/joeycumines/go-catrate"
)

// Sweeper rate-limits how often [Sweeper.MaybeSweep] actually scans the
// registry for stale monitor records, so a host can call it from a hot path
// (e.g. once per scheduler tick) without paying the scan cost every time.
type Sweeper struct {
	limiter  *catrate.Limiter
	category string
}

// NewSweeper creates a Sweeper that allows at most one sweep per interval.
func NewSweeper(interval time.Duration) *Sweeper {
	return &Sweeper{
		limiter:  catrate.NewLimiter(map[time.Duration]int{interval: 1}),
		category: "sweep",
	}
}

// MaybeSweep runs glb's stale-monitor scan if the rate limiter currently
// allows it, returning whether a sweep actually ran.
func (s *Sweeper) MaybeSweep(glb *GlobalContext) bool {
	if _, ok := s.limiter.Allow(s.category); !ok {
		return false
	}
	glb.sweepStaleMonitors()
	return true
}

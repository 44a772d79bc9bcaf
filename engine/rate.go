package engine

import (
	"time"

	"github.com/sarchlab/akita/v4/sim"
)

// RateLimiter caps how fast the core loop may advance the simulated
// clock relative to wall-clock time (spec.md §4.7 "Rate limiting").
// It reuses akita/v4/sim's frequency unit type purely as a
// ticks-per-wall-second ratio — there is no hardware clock domain
// here, just a convenient, already-idiomatic unit.
type RateLimiter struct {
	rate  sim.Freq // ticks per wall-clock second; zero means unlimited
	start time.Time
	zero  Time

	sleep func(time.Duration)
}

// NewRateLimiter returns a limiter with no cap. Call SetRate to enable
// throttling.
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{sleep: time.Sleep}
}

// SetRate sets the ticks-per-second cap; a zero rate disables
// throttling (the loop advances as fast as it can, the default).
func (r *RateLimiter) SetRate(rate sim.Freq) {
	r.rate = rate
	r.start = time.Time{}
}

// Rate returns the current cap.
func (r *RateLimiter) Rate() sim.Freq {
	return r.rate
}

// SetSleepFunc overrides how Throttle waits out its budget. Tests use
// this to replace time.Sleep with a no-op that just records the
// requested duration.
func (r *RateLimiter) SetSleepFunc(sleep func(time.Duration)) {
	r.sleep = sleep
}

// Throttle blocks, if necessary, so that advancing the clock to now
// does not outrun the configured rate. It is cooperative: wall time
// never drives simulated time directly, it only ever delays it.
func (r *RateLimiter) Throttle(now Time) {
	if r.rate <= 0 {
		return
	}
	if r.start.IsZero() {
		r.start = time.Now()
		r.zero = now
		return
	}

	elapsedTicks := float64(now - r.zero)
	wallBudget := time.Duration(elapsedTicks / float64(r.rate) * float64(time.Second))
	actual := time.Since(r.start)
	if wallBudget > actual {
		r.sleep(wallBudget - actual)
	}
}

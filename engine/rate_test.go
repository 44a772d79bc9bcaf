package engine_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/akita/v4/sim"

	"github.com/logiksim/core/engine"
)

var _ = Describe("RateLimiter", func() {
	It("never sleeps when unlimited", func() {
		r := engine.NewRateLimiter()
		slept := false
		r.SetSleepFunc(func(time.Duration) { slept = true })

		r.Throttle(0)
		r.Throttle(1_000_000)

		Expect(slept).To(BeFalse())
	})

	It("sleeps to keep ticks from outrunning the configured rate", func() {
		r := engine.NewRateLimiter()
		r.SetRate(10 * sim.Hz)

		var requested time.Duration
		r.SetSleepFunc(func(d time.Duration) { requested = d })

		r.Throttle(0)   // establishes the baseline instant
		r.Throttle(100) // 100 ticks at 10/s should take ~10s of wall time

		Expect(requested).To(BeNumerically(">", 9*time.Second))
	})
})

package controller_test

import (
	"context"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/logiksim/core/controller"
	"github.com/logiksim/core/element"
	"github.com/logiksim/core/engine"
	"github.com/logiksim/core/interconnect"
	"github.com/logiksim/core/internal/ident"
	"github.com/logiksim/core/library"
	"github.com/logiksim/core/metadata"
)

// updateCollector continuously drains a controller's update channel
// so its blocking sends never stall the core loop, and lets a test
// synchronously wait for a specific update to show up.
type updateCollector struct {
	mu   sync.Mutex
	seen []controller.Update
}

func newUpdateCollector(updates <-chan controller.Update) *updateCollector {
	c := &updateCollector{}
	go func() {
		for u := range updates {
			c.mu.Lock()
			c.seen = append(c.seen, u)
			c.mu.Unlock()
		}
	}()
	return c
}

func (c *updateCollector) waitFor(match func(controller.Update) bool) controller.Update {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		c.mu.Lock()
		for _, u := range c.seen {
			if match(u) {
				c.mu.Unlock()
				return u
			}
		}
		c.mu.Unlock()
		time.Sleep(time.Millisecond)
	}
	Fail("timed out waiting for expected update")
	return controller.Update{}
}

var _ = Describe("Controller end-to-end", func() {
	var (
		registry *library.Registry
		commands chan controller.Command
		updates  chan controller.Update
		collect  *updateCollector
		cancel   context.CancelFunc
	)

	newController := func() *controller.Controller {
		var ctx context.Context
		ctx, cancel = context.WithCancel(context.Background())
		ctrl := controller.New(registry, commands, updates)
		go ctrl.Run(ctx)
		return ctrl
	}

	BeforeEach(func() {
		var err error
		registry, err = library.NewBuiltins()
		Expect(err).NotTo(HaveOccurred())

		commands = make(chan controller.Command)
		updates = make(chan controller.Update, 64)
		collect = newUpdateCollector(updates)
	})

	AfterEach(func() {
		cancel()
	})

	It("fires an AND gate's output exactly when both inputs are latched (scenario 1)", func() {
		newController()

		gateID := ident.New()
		commands <- controller.Command{Op: controller.OpCreate, ID: gateID, GUID: element.GUIDAnd}
		commands <- controller.Command{Op: controller.OpScheduleEdge, Element: gateID, Port: 0, Value: true}
		commands <- controller.Command{Op: controller.OpScheduleEdge, Element: gateID, Port: 1, Value: true}

		upd := collect.waitFor(func(u controller.Update) bool {
			return u.Kind == controller.UpdateOutputChanged && u.Element == gateID
		})
		Expect(upd.Value).To(BeTrue())
		Expect(upd.When).To(Equal(engine.Time(1)))
	})

	It("delivers through an interconnect's two sinks at their own propagation delays (scenario 2)", func() {
		tree, err := interconnect.New(ident.New(),
			[]interconnect.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}, 1, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(tree.AddSegment([]interconnect.Point{{X: 2, Y: 0}, {X: 2, Y: 3}})).To(Succeed())

		ctrl := controller.New(registry, commands, updates)
		ctrl.NewInterconnect(tree)
		var ctx context.Context
		ctx, cancel = context.WithCancel(context.Background())
		go ctrl.Run(ctx)

		driverID, nearID, farID := ident.New(), ident.New(), ident.New()
		commands <- controller.Command{Op: controller.OpCreate, ID: driverID, GUID: element.GUIDOr}
		commands <- controller.Command{Op: controller.OpCreate, ID: nearID, GUID: element.GUIDOr}
		commands <- controller.Command{Op: controller.OpCreate, ID: farID, GUID: element.GUIDOr}

		commands <- controller.Command{
			Op: controller.OpConnect, Interconnect: tree.ID,
			Element: driverID, Port: 0, Direction: controller.DirOutput,
			Point: interconnect.Point{X: 0, Y: 0},
		}
		commands <- controller.Command{
			Op: controller.OpConnect, Interconnect: tree.ID,
			Element: nearID, Port: 0, Direction: controller.DirInput,
			Point: interconnect.Point{X: 2, Y: 0},
		}
		commands <- controller.Command{
			Op: controller.OpConnect, Interconnect: tree.ID,
			Element: farID, Port: 0, Direction: controller.DirInput,
			Point: interconnect.Point{X: 2, Y: 3},
		}

		commands <- controller.Command{Op: controller.OpScheduleEdge, Element: driverID, Port: 0, Value: true}

		near := collect.waitFor(func(u controller.Update) bool {
			return u.Kind == controller.UpdateOutputChanged && u.Element == nearID && u.Value
		})
		far := collect.waitFor(func(u controller.Update) bool {
			return u.Kind == controller.UpdateOutputChanged && u.Element == farID && u.Value
		})

		Expect(near.When).To(Equal(engine.Time(4)))
		Expect(far.When).To(Equal(engine.Time(7)))
		Expect(near.When).To(BeNumerically("<", far.When))
	})

	It("reports and adjusts simulator-wide properties, separately from per-element update", func() {
		newController()

		gateID := ident.New()
		commands <- controller.Command{Op: controller.OpCreate, ID: gateID, GUID: element.GUIDAnd}

		reply := make(chan controller.Update, 1)
		commands <- controller.Command{Op: controller.OpQueryProperties, ReplyTo: reply}
		initial := <-reply
		Expect(initial.Kind).To(Equal(controller.UpdateProperties))
		Expect(initial.Element).To(Equal(ident.ID{}))
		Expect(initial.Properties["rate"]).To(Equal(float64(0)))

		commands <- controller.Command{
			Op: controller.OpSetProperties, ReplyTo: reply,
			Props: metadata.Map{"rate": float64(10 * sim.Hz)},
		}
		set := <-reply
		Expect(set.Kind).To(Equal(controller.UpdateProperties))
		Expect(set.Properties["rate"]).To(Equal(float64(10 * sim.Hz)))

		commands <- controller.Command{Op: controller.OpQueryProperties, ReplyTo: reply}
		confirmed := <-reply
		Expect(confirmed.Properties["rate"]).To(Equal(float64(10 * sim.Hz)))

		// OpUpdate, unlike OpSetProperties, still targets one element's
		// own metadata and leaves simulator-wide rate untouched.
		commands <- controller.Command{
			Op: controller.OpUpdate, Element: gateID, ReplyTo: reply,
			Props: metadata.Map{"label": "g1"},
		}
		updated := <-reply
		Expect(updated.Element).To(Equal(gateID))
		Expect(updated.Properties["label"]).To(Equal("g1"))
	})
})

package interconnect_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/logiksim/core/engine"
	"github.com/logiksim/core/interconnect"
	"github.com/logiksim/core/internal/ident"
)

var _ = Describe("LineTree", func() {
	var (
		driverElement ident.ID
		sinkElement   ident.ID
	)

	BeforeEach(func() {
		driverElement = ident.New()
		sinkElement = ident.New()
	})

	It("computes a sink's delay as its Manhattan path length from the root", func() {
		tree, err := interconnect.New(ident.New(), []interconnect.Point{{X: 0, Y: 0}, {X: 0, Y: 5}}, 1, 1)
		Expect(err).NotTo(HaveOccurred())

		Expect(tree.AttachSink(sinkElement, 0, interconnect.Point{X: 0, Y: 5})).To(Succeed())
		Expect(tree.AttachDriver(driverElement, 0, interconnect.Point{X: 0, Y: 0})).To(Succeed())

		Expect(tree.Sinks()).To(HaveLen(1))
		Expect(tree.Sinks()[0].Delay).To(Equal(engine.Time(5)))
	})

	It("gives each of two sinks its own delay off a branch", func() {
		tree, err := interconnect.New(ident.New(), []interconnect.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}, 1, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(tree.AttachDriver(driverElement, 0, interconnect.Point{X: 0, Y: 0})).To(Succeed())

		Expect(tree.AddSegment([]interconnect.Point{{X: 2, Y: 0}, {X: 2, Y: 3}})).To(Succeed())

		nearSink := ident.New()
		farSink := ident.New()
		Expect(tree.AttachSink(nearSink, 0, interconnect.Point{X: 2, Y: 0})).To(Succeed())
		Expect(tree.AttachSink(farSink, 0, interconnect.Point{X: 2, Y: 3})).To(Succeed())

		byElement := map[ident.ID]engine.Time{}
		for _, s := range tree.Sinks() {
			byElement[s.Element] = s.Delay
		}
		Expect(byElement[nearSink]).To(Equal(engine.Time(2)))
		Expect(byElement[farSink]).To(Equal(engine.Time(5)))
	})

	It("turns a driver edge into one delivery per sink, due at now plus delay", func() {
		tree, err := interconnect.New(ident.New(), []interconnect.Point{{X: 0, Y: 0}, {X: 0, Y: 4}}, 1, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(tree.AttachDriver(driverElement, 0, interconnect.Point{X: 0, Y: 0})).To(Succeed())
		Expect(tree.AttachSink(sinkElement, 0, interconnect.Point{X: 0, Y: 4})).To(Succeed())

		deliveries := tree.OnDriverEdge(true, 10)
		Expect(deliveries).To(HaveLen(1))
		Expect(deliveries[0].Due).To(Equal(engine.Time(14)))
		Expect(deliveries[0].Value).To(BeTrue())
		Expect(tree.Value()).To(BeTrue())
	})

	It("recomputes sink delays after the driver moves and re-roots the tree", func() {
		tree, err := interconnect.New(ident.New(), []interconnect.Point{{X: 0, Y: 0}, {X: 0, Y: 5}}, 1, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(tree.AttachSink(sinkElement, 0, interconnect.Point{X: 0, Y: 2})).To(Succeed())

		Expect(tree.AttachDriver(driverElement, 0, interconnect.Point{X: 0, Y: 0})).To(Succeed())
		Expect(tree.Sinks()[0].Delay).To(Equal(engine.Time(2)))

		tree.DetachDriver()
		Expect(tree.AttachDriver(driverElement, 0, interconnect.Point{X: 0, Y: 5})).To(Succeed())
		Expect(tree.Root()).To(Equal(interconnect.Point{X: 0, Y: 5}))
		Expect(tree.Sinks()[0].Delay).To(Equal(engine.Time(3)))
	})

	It("attaches a driver mid-edge by splitting the edge and rooting there, without fusing the split away", func() {
		tree, err := interconnect.New(ident.New(), []interconnect.Point{{X: 0, Y: 0}, {X: 0, Y: 10}}, 1, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(tree.AttachSink(sinkElement, 0, interconnect.Point{X: 0, Y: 10})).To(Succeed())

		Expect(tree.AttachDriver(driverElement, 0, interconnect.Point{X: 0, Y: 4})).To(Succeed())

		Expect(tree.Root()).To(Equal(interconnect.Point{X: 0, Y: 4}))
		Expect(tree.Sinks()).To(HaveLen(1))
		Expect(tree.Sinks()[0].Delay).To(Equal(engine.Time(6)))
	})

	It("splits off the far side of a removed segment as its own tree", func() {
		tree, err := interconnect.New(ident.New(), []interconnect.Point{{X: 0, Y: 0}, {X: 0, Y: 10}}, 1, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(tree.AttachDriver(driverElement, 0, interconnect.Point{X: 0, Y: 0})).To(Succeed())

		midSink := ident.New()
		farSink := ident.New()
		Expect(tree.AttachSink(midSink, 0, interconnect.Point{X: 0, Y: 5})).To(Succeed())
		Expect(tree.AttachSink(farSink, 0, interconnect.Point{X: 0, Y: 10})).To(Succeed())

		detached, err := tree.RemoveSegment(interconnect.Edge{
			Parent: interconnect.Point{X: 0, Y: 5},
			Child:  interconnect.Point{X: 0, Y: 10},
		}, ident.New())
		Expect(err).NotTo(HaveOccurred())

		Expect(tree.Sinks()).To(HaveLen(1))
		Expect(tree.Sinks()[0].Element).To(Equal(midSink))
		Expect(tree.HasDriver()).To(BeTrue())

		Expect(detached.Sinks()).To(HaveLen(1))
		Expect(detached.Sinks()[0].Element).To(Equal(farSink))
		Expect(detached.HasDriver()).To(BeFalse())
	})

	It("merges two trees that touch at exactly one point", func() {
		a, err := interconnect.New(ident.New(), []interconnect.Point{{X: 0, Y: 0}, {X: 5, Y: 0}}, 1, 1)
		Expect(err).NotTo(HaveOccurred())
		b, err := interconnect.New(ident.New(), []interconnect.Point{{X: 5, Y: 0}, {X: 5, Y: 5}}, 1, 1)
		Expect(err).NotTo(HaveOccurred())

		Expect(a.Merge(b)).To(Succeed())
		Expect(a.Nodes()).To(ContainElements(
			interconnect.Point{X: 0, Y: 0},
			interconnect.Point{X: 5, Y: 0},
			interconnect.Point{X: 5, Y: 5},
		))
	})

	It("refuses to merge trees that don't touch", func() {
		a, _ := interconnect.New(ident.New(), []interconnect.Point{{X: 0, Y: 0}, {X: 1, Y: 0}}, 1, 1)
		b, _ := interconnect.New(ident.New(), []interconnect.Point{{X: 10, Y: 0}, {X: 11, Y: 0}}, 1, 1)

		Expect(a.Merge(b)).To(HaveOccurred())
	})

	It("refuses to merge trees that touch at more than one point", func() {
		a, _ := interconnect.New(ident.New(), []interconnect.Point{{X: 0, Y: 0}, {X: 5, Y: 0}}, 1, 1)
		b, err := interconnect.New(ident.New(), []interconnect.Point{{X: 0, Y: 0}, {X: 5, Y: 0}}, 1, 1)
		Expect(err).NotTo(HaveOccurred())

		Expect(a.Merge(b)).To(HaveOccurred())
	})
})

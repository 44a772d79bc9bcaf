package element_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/logiksim/core/element"
	"github.com/logiksim/core/internal/ident"
)

var _ = Describe("Compound", func() {
	It("forwards an external input to its mapped child port", func() {
		child := ident.New()
		c := element.NewCompound(ident.New(), nil, nil, element.CompoundConfig{
			Children: []ident.ID{child},
			Inputs:   []element.ChildPort{{Child: child, Port: 0}},
		})

		gotChild, gotPort, ok := c.ForwardInput(0)
		Expect(ok).To(BeTrue())
		Expect(gotChild).To(Equal(child))
		Expect(gotPort).To(Equal(0))

		_, _, ok = c.ForwardInput(1)
		Expect(ok).To(BeFalse())
	})

	It("mirrors a child's output through to the external port", func() {
		child := ident.New()
		c := element.NewCompound(ident.New(), nil, nil, element.CompoundConfig{
			Children: []ident.ID{child},
			Outputs:  []element.ChildPort{{Child: child, Port: 2}},
		})

		port, ok := c.MirrorsChildOutput(child, 2)
		Expect(ok).To(BeTrue())
		Expect(port).To(Equal(0))

		change := c.SetMirroredOutput(port, true)
		Expect(change.Outputs).To(Equal(map[int]bool{0: true}))
		Expect(c.OutputValue(0)).To(BeTrue())

		Expect(c.SetMirroredOutput(port, true)).To(BeNil(), "no change reported when the value repeats")
	})
})

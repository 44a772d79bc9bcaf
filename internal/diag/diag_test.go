package diag_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/logiksim/core/interconnect"
	"github.com/logiksim/core/internal/diag"
	"github.com/logiksim/core/internal/ident"
)

var _ = Describe("Render", func() {
	It("includes every element and interconnect in the rendered tables", func() {
		elID := ident.New()
		icID := ident.New()

		snap := diag.Snapshot{
			Now:           42,
			PendingEvents: 3,
			Elements: []diag.ElementSnapshot{
				{ID: elID, GUID: "logiksim.gate.and", Inputs: []diag.PortSnapshot{{Port: 0, Value: true, Delay: 1}}},
			},
			Interconnects: []diag.InterconnectSnapshot{
				{ID: icID, Root: interconnect.Point{X: 1, Y: 2}, HasDriver: true, Value: true},
			},
		}

		out := diag.Render(snap)
		Expect(out).To(ContainSubstring(elID.String()))
		Expect(out).To(ContainSubstring(icID.String()))
		Expect(out).To(ContainSubstring("tick 42"))
	})
})

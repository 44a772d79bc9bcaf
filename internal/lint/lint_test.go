package lint_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/logiksim/core/internal/diag"
	"github.com/logiksim/core/internal/ident"
	"github.com/logiksim/core/internal/lint"
)

var _ = Describe("Check", func() {
	It("flags an element input with no driving interconnect", func() {
		elID := ident.New()
		s := diag.Snapshot{
			Elements: []diag.ElementSnapshot{
				{ID: elID, GUID: "logiksim.gate.and", Inputs: []diag.PortSnapshot{{Port: 0}, {Port: 1}}},
			},
		}

		issues := lint.Check(s)
		Expect(issues).To(HaveLen(2))
		Expect(issues[0].Kind).To(Equal(lint.IssueFloatingInput))
	})

	It("flags a net with sinks but no driver", func() {
		elID, netID := ident.New(), ident.New()
		s := diag.Snapshot{
			Elements: []diag.ElementSnapshot{
				{ID: elID, GUID: "logiksim.gate.and", Inputs: []diag.PortSnapshot{{Port: 0}}},
			},
			Interconnects: []diag.InterconnectSnapshot{
				{ID: netID, HasDriver: false, Sinks: []diag.SinkSnapshot{{Element: elID, Port: 0}}},
			},
		}

		issues := lint.Check(s)
		Expect(issues).To(ContainElement(HaveField("Kind", lint.IssueUndrivenNet)))
	})

	It("flags a driven net with no sinks as dead, and reports nothing for a clean schematic", func() {
		netID := ident.New()
		dirty := diag.Snapshot{
			Interconnects: []diag.InterconnectSnapshot{{ID: netID, HasDriver: true}},
		}
		Expect(lint.Check(dirty)).To(ConsistOf(HaveField("Kind", lint.IssueDeadNet)))

		elID := ident.New()
		clean := diag.Snapshot{
			Elements: []diag.ElementSnapshot{
				{ID: elID, GUID: "logiksim.gate.and", Inputs: []diag.PortSnapshot{{Port: 0}}},
			},
			Interconnects: []diag.InterconnectSnapshot{
				{ID: netID, HasDriver: true, Sinks: []diag.SinkSnapshot{{Element: elID, Port: 0}}},
			},
		}
		Expect(lint.Check(clean)).To(BeEmpty())
	})
})

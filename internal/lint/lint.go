// Package lint runs static structural checks over a point-in-time
// snapshot of a schematic, adapted from the teacher's verify.RunLint
// (STRUCT checks over a CGRA program's port wiring) down to the
// structural checks that make sense for a LogikSim netlist: floating
// inputs and undriven nets.
package lint

import (
	"fmt"

	"github.com/logiksim/core/internal/diag"
	"github.com/logiksim/core/internal/ident"
)

// Kind names the category of a reported Issue.
type Kind int

const (
	// IssueFloatingInput marks an element input port that no
	// interconnect sink feeds.
	IssueFloatingInput Kind = iota
	// IssueUndrivenNet marks an interconnect with at least one sink
	// but no attached driver.
	IssueUndrivenNet
	// IssueDeadNet marks an interconnect with a driver but no sinks:
	// legal, but very likely a forgotten connection.
	IssueDeadNet
)

func (k Kind) String() string {
	switch k {
	case IssueFloatingInput:
		return "floating-input"
	case IssueUndrivenNet:
		return "undriven-net"
	case IssueDeadNet:
		return "dead-net"
	default:
		return "unknown"
	}
}

// Issue is one structural finding against a schematic snapshot.
type Issue struct {
	Kind    Kind
	Element ident.ID
	Port    int
	Net     ident.ID
	Message string
}

// Check runs every structural rule against s and returns the issues
// found, in no particular order.
func Check(s diag.Snapshot) []Issue {
	var issues []Issue

	wiredInput := make(map[ident.ID]map[int]bool)
	for _, ic := range s.Interconnects {
		if len(ic.Sinks) == 0 {
			if ic.HasDriver {
				issues = append(issues, Issue{
					Kind:    IssueDeadNet,
					Net:     ic.ID,
					Message: fmt.Sprintf("interconnect %s is driven but feeds no sinks", ic.ID),
				})
			}
			continue
		}
		if !ic.HasDriver {
			issues = append(issues, Issue{
				Kind:    IssueUndrivenNet,
				Net:     ic.ID,
				Message: fmt.Sprintf("interconnect %s feeds %d sink(s) but has no driver", ic.ID, len(ic.Sinks)),
			})
		}
		for _, sink := range ic.Sinks {
			if wiredInput[sink.Element] == nil {
				wiredInput[sink.Element] = make(map[int]bool)
			}
			wiredInput[sink.Element][sink.Port] = true
		}
	}

	for _, el := range s.Elements {
		for _, in := range el.Inputs {
			if !wiredInput[el.ID][in.Port] {
				issues = append(issues, Issue{
					Kind:    IssueFloatingInput,
					Element: el.ID,
					Port:    in.Port,
					Message: fmt.Sprintf("element %s (%s) input %d has no driving interconnect", el.ID, el.GUID, in.Port),
				})
			}
		}
	}

	return issues
}

// Package diag renders a point-in-time snapshot of the simulation as
// two tables — elements and interconnects — mirroring the teacher's
// core.PrintState (core/util.go).
package diag

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/logiksim/core/engine"
	"github.com/logiksim/core/interconnect"
	"github.com/logiksim/core/internal/ident"
)

// PortSnapshot is one port's latched/output value and delay.
type PortSnapshot struct {
	Port  int
	Value bool
	Delay engine.Time
}

// ElementSnapshot is one element's identity and port state.
type ElementSnapshot struct {
	ID      ident.ID
	GUID    string
	Inputs  []PortSnapshot
	Outputs []PortSnapshot
}

// SinkSnapshot is one interconnect sink's destination and delay.
type SinkSnapshot struct {
	Element ident.ID
	Port    int
	Point   interconnect.Point
	Delay   engine.Time
}

// InterconnectSnapshot is one interconnect's topology and live value.
type InterconnectSnapshot struct {
	ID        ident.ID
	Root      interconnect.Point
	HasDriver bool
	Value     bool
	Sinks     []SinkSnapshot
}

// Snapshot is a full point-in-time dump of the simulation.
type Snapshot struct {
	Now           engine.Time
	PendingEvents int
	Elements      []ElementSnapshot
	Interconnects []InterconnectSnapshot
}

// Render formats a snapshot as two tables, suitable for printing to a
// terminal or capturing in a diagnostic log line.
func Render(s Snapshot) string {
	out := fmt.Sprintf("==============State@tick %d (pending %d)==============\n", s.Now, s.PendingEvents)

	elTable := table.NewWriter()
	elTable.SetTitle("Elements")
	elTable.AppendHeader(table.Row{"ID", "GUID", "Inputs", "Outputs"})
	for _, e := range s.Elements {
		elTable.AppendRow(table.Row{e.ID.String(), e.GUID, formatPorts(e.Inputs), formatPorts(e.Outputs)})
	}
	out += elTable.Render() + "\n\n"

	icTable := table.NewWriter()
	icTable.SetTitle("Interconnects")
	icTable.AppendHeader(table.Row{"ID", "Root", "Driven", "Value", "Sinks"})
	for _, t := range s.Interconnects {
		icTable.AppendRow(table.Row{
			t.ID.String(), fmt.Sprintf("%v", t.Root), t.HasDriver, t.Value, formatSinks(t.Sinks),
		})
	}
	out += icTable.Render() + "\n"

	return out
}

func formatPorts(ports []PortSnapshot) string {
	s := ""
	for i, p := range ports {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("[%d]=%v(d%d)", p.Port, p.Value, p.Delay)
	}
	return s
}

func formatSinks(sinks []SinkSnapshot) string {
	s := ""
	for i, sk := range sinks {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%s:%d@%v(d%d)", sk.Element.String(), sk.Port, sk.Point, sk.Delay)
	}
	return s
}

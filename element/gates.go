package element

import (
	"github.com/sarchlab/akita/v4/sim"

	"github.com/logiksim/core/engine"
	"github.com/logiksim/core/internal/ident"
	"github.com/logiksim/core/metadata"
)

// GateKind names one of the five basic combinational gates (spec.md
// §4.3). The library never downcasts to a concrete Go type; dispatch
// inside Gate.recombine is a switch on GateKind, generalizing the
// teacher's token-switch instruction dispatch (core.Core.Tick).
type GateKind int

const (
	GateAnd GateKind = iota
	GateOr
	GateXor
	GateNand
	GateNor
)

// GUID values for the basic gates, as registered in the component
// library.
const (
	GUIDAnd  = "logiksim.gate.and"
	GUIDOr   = "logiksim.gate.or"
	GUIDXor  = "logiksim.gate.xor"
	GUIDNand = "logiksim.gate.nand"
	GUIDNor  = "logiksim.gate.nor"
)

func (k GateKind) guid() string {
	switch k {
	case GateAnd:
		return GUIDAnd
	case GateOr:
		return GUIDOr
	case GateXor:
		return GUIDXor
	case GateNand:
		return GUIDNand
	case GateNor:
		return GUIDNor
	default:
		return "logiksim.gate.unknown"
	}
}

// defaultInputDelay is used for any input port whose delay the
// metadata did not specify.
const defaultInputDelay engine.Time = 1

// Gate is a basic combinational gate: its single output equals the
// boolean function named by Kind applied to the latched input values
// (spec.md §4.3).
type Gate struct {
	base
	Kind   GateKind
	numIn  int
}

// NewGate instantiates a basic gate. numInputs must be >= 2 for
// And/Or/Xor/Nand/Nor. Per-input delays come from the metadata key
// "input_delays" ([]int, one per input) when present, else every
// input gets defaultInputDelay.
func NewGate(kind GateKind, numInputs int, id ident.ID, parent *ident.ID, md metadata.Map) *Gate {
	delays := inputDelaysFromMetadata(md, numInputs)
	g := &Gate{
		base:  newBase(id, kind.guid(), parent, md, delays, 1),
		Kind:  kind,
		numIn: numInputs,
	}
	g.recombine(nil)
	return g
}

func inputDelaysFromMetadata(md metadata.Map, numInputs int) []engine.Time {
	delays := make([]engine.Time, numInputs)
	for i := range delays {
		delays[i] = defaultInputDelay
	}
	raw, ok := md["input_delays"]
	if !ok {
		return delays
	}
	list, ok := raw.([]int)
	if !ok {
		return delays
	}
	for i := 0; i < len(list) && i < numInputs; i++ {
		if list[i] >= 0 {
			delays[i] = engine.Time(list[i])
		}
	}
	return delays
}

// Ports implements Element.
func (g *Gate) Ports() (inputs, outputs []PortDescriptor) {
	return g.ports(1)
}

// OnInputEdge implements Element: latches the value, recomputes the
// gate function, and reports any output change. A disabled element
// (metadata key "$disabled") still latches so no state is lost, but
// never reports a change to schedule (SPEC_FULL.md "Per-element
// enable/disable").
func (g *Gate) OnInputEdge(port int, value bool, t engine.Time) (*Change, error) {
	g.latched[port] = value
	g.InvokeHook(sim.HookCtx{Domain: g, Pos: HookPosInputLatched, Item: port})

	if g.md.IsDisabled() {
		return nil, nil
	}

	changed := g.recombine(nil)
	if changed == nil {
		return nil, nil
	}
	return &Change{Outputs: changed}, nil
}

// OnSelfWake implements Element. Basic gates never self-schedule.
func (g *Gate) OnSelfWake(t engine.Time) (*Change, error) {
	return nil, nil
}

func (g *Gate) recombine(changed map[int]bool) map[int]bool {
	var result bool
	switch g.Kind {
	case GateAnd, GateNand:
		result = true
		for _, v := range g.latched {
			result = result && v
		}
		if g.Kind == GateNand {
			result = !result
		}
	case GateOr, GateNor:
		result = false
		for _, v := range g.latched {
			result = result || v
		}
		if g.Kind == GateNor {
			result = !result
		}
	case GateXor:
		for _, v := range g.latched {
			result = result != v
		}
	}
	return g.setOutput(0, result, changed)
}

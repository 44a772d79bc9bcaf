package element

import (
	"github.com/logiksim/core/engine"
	"github.com/logiksim/core/internal/ident"
	"github.com/logiksim/core/metadata"
)

// ChildPort names one port of a child element nested inside a Compound.
type ChildPort struct {
	Child ident.ID
	Port  int
}

// Forwarder is implemented by elements whose ports are transparent
// aliases of a nested sub-graph (spec.md §4.5). The controller
// consults it before dispatching an input edge or mirroring an output
// change, walking the chain iteratively (never recursively) so nested
// compounds cannot blow the stack (spec.md §4.5 "traversal is
// iterative").
type Forwarder interface {
	// ForwardInput maps an external input port to the internal child
	// port it re-emits onto, with zero additional delay.
	ForwardInput(port int) (child ident.ID, childPort int, ok bool)
	// MirrorsChildOutput reports the external output port (if any)
	// that mirrors child's childPort.
	MirrorsChildOutput(child ident.ID, childPort int) (port int, ok bool)
	// Children lists every nested child id. Deleting a compound through
	// the controller does not delete these children.
	Children() []ident.ID
}

// Compound is an Element holding a subgraph of child element ids and a
// port-forwarding table, both taken from the CompoundConfig given at
// creation rather than from its metadata (spec.md §4.5). It has no
// combinational logic of its own: its output values mirror the mapped
// child outputs via SetMirroredOutput, while its own input latches
// change only through direct OnInputEdge calls, since the controller
// delivers input edges straight to the mapped child.
type Compound struct {
	base

	children  []ident.ID
	inputMap  []ChildPort
	outputMap []ChildPort
}

// CompoundConfig describes a compound element's port-forwarding table
// at creation time.
type CompoundConfig struct {
	Children []ident.ID
	Inputs   []ChildPort
	Outputs  []ChildPort
}

const GUIDCompound = "logiksim.compound"

// NewCompound instantiates a compound element.
func NewCompound(id ident.ID, parent *ident.ID, md metadata.Map, cfg CompoundConfig) *Compound {
	delays := make([]engine.Time, len(cfg.Inputs))
	return &Compound{
		base:      newBase(id, GUIDCompound, parent, md, delays, len(cfg.Outputs)),
		children:  append([]ident.ID(nil), cfg.Children...),
		inputMap:  append([]ChildPort(nil), cfg.Inputs...),
		outputMap: append([]ChildPort(nil), cfg.Outputs...),
	}
}

// Ports implements Element.
func (c *Compound) Ports() (inputs, outputs []PortDescriptor) {
	return c.ports(len(c.outputMap))
}

// ForwardInput implements Forwarder.
func (c *Compound) ForwardInput(port int) (ident.ID, int, bool) {
	if port < 0 || port >= len(c.inputMap) {
		return ident.ID{}, 0, false
	}
	m := c.inputMap[port]
	return m.Child, m.Port, true
}

// MirrorsChildOutput implements Forwarder.
func (c *Compound) MirrorsChildOutput(child ident.ID, childPort int) (int, bool) {
	for i, m := range c.outputMap {
		if m.Child == child && m.Port == childPort {
			return i, true
		}
	}
	return 0, false
}

// Children implements Forwarder.
func (c *Compound) Children() []ident.ID {
	return append([]ident.ID(nil), c.children...)
}

// OnInputEdge implements Element. The controller always forwards
// through ForwardInput first; this only keeps the compound's own
// InputValue consistent for direct callers (e.g. tests).
func (c *Compound) OnInputEdge(port int, value bool, t engine.Time) (*Change, error) {
	c.latched[port] = value
	return nil, nil
}

// OnSelfWake implements Element. Compounds never self-wake directly.
func (c *Compound) OnSelfWake(t engine.Time) (*Change, error) {
	return nil, nil
}

// SetMirroredOutput updates the compound's external output to match
// its driving child's current value, called by the controller after
// resolving the mirror chain. It returns the Change to schedule
// downstream, or nil if the value did not change.
func (c *Compound) SetMirroredOutput(port int, value bool) *Change {
	changed := c.setOutput(port, value, nil)
	if changed == nil {
		return nil
	}
	return &Change{Outputs: changed}
}

// Package element implements the polymorphic Element node (spec.md
// §4.3): basic gates, a compound element, and the shared metadata and
// port-state-machine substrate they sit on. Variant dispatch is a
// tagged struct plus a switch in Gate.recombine, grounded on the teacher's
// core.Core.Tick token-switch style — the library never downcasts to a
// concrete gate type.
package element

import (
	"github.com/logiksim/core/engine"
	"github.com/logiksim/core/internal/ident"
	"github.com/logiksim/core/metadata"
)

// PortDescriptor describes one port's stable shape: its propagation
// delay (zero for outputs, d_i >= 0 for inputs).
type PortDescriptor struct {
	Delay engine.Time
}

// Change reports which output ports took on a new value, to be
// scheduled onto their interconnects at zero additional delay (spec.md
// §4.3 "outputs don't [delay]").
type Change struct {
	Outputs map[int]bool
}

// Element is the capability set every library variant implements
// (spec.md §4.3). Implementations are owned exclusively by the
// controller; nothing outside the core worker ever touches one
// directly (spec.md §5).
type Element interface {
	// ID is immutable after creation (invariant 1).
	ID() ident.ID
	// GUID names the element's type in the library.
	GUID() string
	// Parent returns the compound element this one nests inside, if any.
	Parent() (ident.ID, bool)
	// Metadata returns the element's current opaque metadata.
	Metadata() metadata.Map

	// Ports returns stable input/output descriptors (invariant 2:
	// changing port count is a destroy/recreate, never done in place).
	Ports() (inputs, outputs []PortDescriptor)

	// InputValue returns the latched value of input port.
	InputValue(port int) bool
	// OutputValue returns the current value of output port.
	OutputValue(port int) bool

	// OnInputEdge is called when input port's pending change is due at
	// t: the latch updates, the element recomputes, and any output
	// change is returned for scheduling.
	OnInputEdge(port int, value bool, t engine.Time) (*Change, error)

	// OnSelfWake is called when the element's own scheduled wake
	// fires (used by clock-like elements; basic gates never self-wake).
	OnSelfWake(t engine.Time) (*Change, error)

	// ApplyMetadata merges delta into the element's metadata and
	// returns the observable delta to report — ordinarily delta
	// itself, but a variant may expand derived fields.
	ApplyMetadata(delta metadata.Map) (metadata.Map, error)
}

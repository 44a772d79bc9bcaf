package element

import (
	"github.com/sarchlab/akita/v4/sim"

	"github.com/logiksim/core/engine"
	"github.com/logiksim/core/internal/ident"
	"github.com/logiksim/core/metadata"
)

// HookPosOutputChanged marks when an element's combinational function
// produces a new output value, mirroring the teacher's
// HookPosPortMsgSend instrumentation points (core.Port).
var HookPosOutputChanged = &sim.HookPos{Name: "Element Output Changed"}

// HookPosInputLatched marks when a pending input edge latches.
var HookPosInputLatched = &sim.HookPos{Name: "Element Input Latched"}

// base holds the state every variant shares: identity, nesting,
// metadata, and the input latch / output value vectors. Concrete
// variants embed base and only implement the combinational/self-wake
// behavior on top.
type base struct {
	sim.HookableBase

	id        ident.ID
	guid      string
	parent    ident.ID
	hasParent bool
	md        metadata.Map

	inputDelays []engine.Time
	latched     []bool
	outputs     []bool
}

func newBase(id ident.ID, guid string, parent *ident.ID, md metadata.Map, inputDelays []engine.Time, numOutputs int) base {
	b := base{
		id:           id,
		guid:         guid,
		md:           md.Clone(),
		inputDelays:  append([]engine.Time(nil), inputDelays...),
		latched:      make([]bool, len(inputDelays)),
		outputs:      make([]bool, numOutputs),
	}
	if parent != nil {
		b.parent = *parent
		b.hasParent = true
	}
	return b
}

func (b *base) ID() ident.ID { return b.id }

func (b *base) GUID() string { return b.guid }

func (b *base) Parent() (ident.ID, bool) { return b.parent, b.hasParent }

func (b *base) Metadata() metadata.Map { return b.md.Clone() }

func (b *base) InputValue(port int) bool { return b.latched[port] }

func (b *base) OutputValue(port int) bool { return b.outputs[port] }

func (b *base) ports(numOutputs int) (inputs, outputs []PortDescriptor) {
	inputs = make([]PortDescriptor, len(b.inputDelays))
	for i, d := range b.inputDelays {
		inputs[i] = PortDescriptor{Delay: d}
	}
	outputs = make([]PortDescriptor, numOutputs)
	return inputs, outputs
}

// ApplyMetadata merges delta and returns it unchanged: basic gates
// have no derived fields. Compound does not override it either.
func (b *base) ApplyMetadata(delta metadata.Map) (metadata.Map, error) {
	b.md = metadata.Merge(b.md, delta)
	return delta, nil
}

// setOutput records a new value for port and, if it differs from the
// previous one, adds it to changed. Called from each gate's
// recombination step.
func (b *base) setOutput(port int, value bool, changed map[int]bool) map[int]bool {
	if b.outputs[port] == value {
		return changed
	}
	b.outputs[port] = value
	if changed == nil {
		changed = make(map[int]bool, 1)
	}
	changed[port] = value

	b.InvokeHook(sim.HookCtx{Domain: b, Pos: HookPosOutputChanged, Item: port})

	return changed
}

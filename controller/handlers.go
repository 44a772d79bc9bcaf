package controller

import (
	"fmt"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/logiksim/core/engine"
	"github.com/logiksim/core/internal/errs"
	"github.com/logiksim/core/internal/ident"
	"github.com/logiksim/core/metadata"
)

// handle dispatches one command and reports whether the controller
// should stop running.
func (c *Controller) handle(cmd Command) (quit bool) {
	switch cmd.Op {
	case OpCreate:
		c.handleCreate(cmd)
	case OpDelete:
		c.handleDelete(cmd)
	case OpConnect:
		c.handleConnect(cmd)
	case OpDisconnect:
		c.handleDisconnect(cmd)
	case OpScheduleEdge:
		c.handleScheduleEdge(cmd)
	case OpEnumerateComponents:
		c.handleEnumerateComponents(cmd)
	case OpQueryProperties:
		c.handleQueryProperties(cmd)
	case OpSetProperties:
		c.handleSetProperties(cmd)
	case OpUpdate:
		c.handleUpdateElement(cmd)
	case OpReset:
		c.handleReset(cmd)
	case OpSnapshot:
		c.handleSnapshot(cmd)
	case OpQuit:
		return true
	}
	return false
}

func (c *Controller) handleCreate(cmd Command) {
	id := cmd.ID
	if id.IsZero() {
		id = ident.New()
	}
	el, err := c.registry.Create(cmd.GUID, id, cmd.Parent, cmd.Props)
	if err != nil {
		c.reportError(id, err)
		return
	}
	c.elements[id] = el
	c.reply(cmd, Update{Kind: UpdateAck, Element: id})
}

func (c *Controller) handleDelete(cmd Command) {
	el, ok := c.elements[cmd.Element]
	if !ok {
		c.reportError(cmd.Element, fmt.Errorf("%w: %s", errs.ErrUnknownElement, cmd.Element))
		return
	}

	_, outs := el.Ports()
	for port := range outs {
		key := portKey{Element: cmd.Element, Port: port}
		treeID, ok := c.driverIndex[key]
		if !ok {
			continue
		}
		if tree, ok := c.interconnects[treeID]; ok {
			tree.DetachDriver()
		}
		delete(c.driverIndex, key)
		delete(c.treeDriver, treeID)
	}

	for _, tree := range c.interconnects {
		for _, s := range tree.Sinks() {
			if s.Element == cmd.Element {
				tree.DetachSink(s.Element, s.Port, s.Point)
			}
		}
	}

	delete(c.elements, cmd.Element)
	c.queue.CancelFor(cmd.Element)
	c.reply(cmd, Update{Kind: UpdateAck, Element: cmd.Element})
}

func (c *Controller) handleConnect(cmd Command) {
	tree, ok := c.interconnects[cmd.Interconnect]
	if !ok {
		c.reportError(cmd.Interconnect, fmt.Errorf("%w: %s", errs.ErrUnknownInterconnect, cmd.Interconnect))
		return
	}
	if _, ok := c.elements[cmd.Element]; !ok {
		c.reportError(cmd.Element, fmt.Errorf("%w: %s", errs.ErrUnknownElement, cmd.Element))
		return
	}

	var err error
	if cmd.Direction == DirOutput {
		if err = tree.AttachDriver(cmd.Element, cmd.Port, cmd.Point); err == nil {
			if tree.Root() != cmd.Point {
				panic(&errs.Fatal{Reason: fmt.Sprintf(
					"attach_driver: root %v != attach point %v on interconnect %s",
					tree.Root(), cmd.Point, cmd.Interconnect)})
			}
			key := portKey{Element: cmd.Element, Port: cmd.Port}
			c.driverIndex[key] = cmd.Interconnect
			c.treeDriver[cmd.Interconnect] = key
			c.queue.Schedule(engine.PropagateKey(cmd.Interconnect), c.now, nil)
		}
	} else {
		err = tree.AttachSink(cmd.Element, cmd.Port, cmd.Point)
	}
	if err != nil {
		c.reportError(cmd.Element, err)
		return
	}
	c.reply(cmd, Update{Kind: UpdateAck, Element: cmd.Element})
}

func (c *Controller) handleDisconnect(cmd Command) {
	tree, ok := c.interconnects[cmd.Interconnect]
	if !ok {
		c.reportError(cmd.Interconnect, fmt.Errorf("%w: %s", errs.ErrUnknownInterconnect, cmd.Interconnect))
		return
	}

	if cmd.Direction == DirOutput {
		tree.DetachDriver()
		key := portKey{Element: cmd.Element, Port: cmd.Port}
		delete(c.driverIndex, key)
		delete(c.treeDriver, cmd.Interconnect)
		c.queue.CancelKey(engine.PropagateKey(cmd.Interconnect))
	} else {
		tree.DetachSink(cmd.Element, cmd.Port, cmd.Point)
	}
	c.reply(cmd, Update{Kind: UpdateAck, Element: cmd.Element})
}

// handleScheduleEdge injects an external stimulus directly onto an
// input port, e.g. a primary input driven by a testbench rather than
// another element's output.
func (c *Controller) handleScheduleEdge(cmd Command) {
	targetID, targetPort, ok := c.resolveInputTarget(cmd.Element, cmd.Port)
	if !ok {
		c.reportError(cmd.Element, fmt.Errorf("%w: %s", errs.ErrUnknownElement, cmd.Element))
		return
	}
	target, ok := c.elements[targetID]
	if !ok {
		c.reportError(targetID, fmt.Errorf("%w: %s", errs.ErrUnknownElement, targetID))
		return
	}
	inputs, _ := target.Ports()
	if targetPort < 0 || targetPort >= len(inputs) {
		c.reportError(targetID, fmt.Errorf("%w: port %d", errs.ErrPortOutOfRange, targetPort))
		return
	}
	due := c.now + inputs[targetPort].Delay
	c.queue.Schedule(engine.InputEdgeKey(targetID, targetPort), due, cmd.Value)
	c.reply(cmd, Update{Kind: UpdateAck, Element: cmd.Element})
}

func (c *Controller) handleEnumerateComponents(cmd Command) {
	schemas := c.registry.Enumerate()
	infos := make([]ComponentInfo, 0, len(schemas))
	for _, s := range schemas {
		infos = append(infos, ComponentInfo{GUID: s.GUID, NumInputs: s.NumInputs, NumOutputs: s.NumOutputs})
	}
	c.reply(cmd, Update{Kind: UpdateComponentList, Components: infos})
}

// handleQueryProperties answers spec.md §6's `query_properties`: a
// simulator-wide read (rate, clock), not tied to any element.
func (c *Controller) handleQueryProperties(cmd Command) {
	c.reply(cmd, Update{Kind: UpdateProperties, Properties: metadata.Map{
		"rate":  float64(c.rate.Rate()),
		"clock": c.now,
	}})
}

// handleSetProperties answers spec.md §6's `set_properties`: a
// simulator-wide write. The only recognized property today is "rate",
// a ticks-per-wall-second float.
func (c *Controller) handleSetProperties(cmd Command) {
	if rate, ok := cmd.Props["rate"]; ok {
		f, ok := rate.(float64)
		if !ok {
			c.reportError(cmd.Element, fmt.Errorf("%w: rate must be a float64", errs.ErrInvalidMetadata))
			return
		}
		c.rate.SetRate(sim.Freq(f))
	}
	c.reply(cmd, Update{Kind: UpdateProperties, Properties: metadata.Map{
		"rate":  float64(c.rate.Rate()),
		"clock": c.now,
	}})
}

// handleUpdateElement answers spec.md §6's `update`
// (update_element_metadata): merges Props into one element's own
// metadata.
func (c *Controller) handleUpdateElement(cmd Command) {
	el, ok := c.elements[cmd.Element]
	if !ok {
		c.reportError(cmd.Element, fmt.Errorf("%w: %s", errs.ErrUnknownElement, cmd.Element))
		return
	}
	applied, err := el.ApplyMetadata(cmd.Props)
	if err != nil {
		c.reportError(cmd.Element, err)
		return
	}
	c.reply(cmd, Update{Kind: UpdateProperties, Element: cmd.Element, Properties: applied})
}

// handleReset rewinds the clock and drops every pending event without
// touching the element or interconnect tables (SPEC_FULL.md
// "Supplemented features" — re-running a testbench from t=0 without
// rebuilding the schematic).
func (c *Controller) handleReset(cmd Command) {
	c.queue = engine.NewQueue()
	c.now = 0
	c.reply(cmd, Update{Kind: UpdateAck})
}

// handleSnapshot answers a diagnostic dump request from within the
// core loop's own goroutine, since Snapshot reads the element and
// interconnect tables without a lock.
func (c *Controller) handleSnapshot(cmd Command) {
	c.reply(cmd, Update{Kind: UpdateSnapshot, Snapshot: c.Snapshot()})
}

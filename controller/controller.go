package controller

import (
	"context"
	"fmt"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/logiksim/core/element"
	"github.com/logiksim/core/engine"
	"github.com/logiksim/core/interconnect"
	"github.com/logiksim/core/internal/diag"
	"github.com/logiksim/core/internal/errs"
	"github.com/logiksim/core/internal/ident"
	"github.com/logiksim/core/internal/tracelog"
	"github.com/logiksim/core/library"
)

// portKey names one port of one element, used to index which
// interconnect (if any) a given output drives.
type portKey struct {
	Element ident.ID
	Port    int
}

// Controller owns the live simulation state — the element table, the
// interconnect table, and the event queue — and is the sole owner of
// all of it: only the goroutine running Run ever touches these fields
// (spec.md §5 "Concurrency model").
type Controller struct {
	registry *library.Registry

	elements      map[ident.ID]element.Element
	interconnects map[ident.ID]*interconnect.LineTree
	driverIndex   map[portKey]ident.ID
	treeDriver    map[ident.ID]portKey

	queue *engine.Queue
	rate  *engine.RateLimiter
	now   engine.Time

	commands chan Command
	updates  chan Update
}

// New returns a controller reading from commands and writing to
// updates (spec.md §6 "External interfaces"). Neither channel is
// owned until Run starts draining it.
func New(registry *library.Registry, commands chan Command, updates chan Update) *Controller {
	return &Controller{
		registry:      registry,
		elements:      make(map[ident.ID]element.Element),
		interconnects: make(map[ident.ID]*interconnect.LineTree),
		driverIndex:   make(map[portKey]ident.ID),
		treeDriver:    make(map[ident.ID]portKey),
		queue:         engine.NewQueue(),
		rate:          engine.NewRateLimiter(),
		commands:      commands,
		updates:       updates,
	}
}

// SetRate sets the wall-clock rate the core loop throttles itself to
// (spec.md §4.7 "simulation_rate"). Zero means unlimited.
func (c *Controller) SetRate(rate sim.Freq) {
	c.rate.SetRate(rate)
}

// Now returns the controller's current simulated tick. Safe to call
// only from the goroutine running Run, or after it has returned.
func (c *Controller) Now() engine.Time {
	return c.now
}

// NewInterconnect registers an already-built LineTree under its own
// ID. A tree already registered under the same ID is replaced; no
// error is reported. Wire
// topology (new trees, added segments, splits, merges) is constructed
// by the caller via the interconnect package and handed to the
// controller once built, since the controller itself has no opinion
// on grid geometry.
func (c *Controller) NewInterconnect(tree *interconnect.LineTree) {
	c.interconnects[tree.ID] = tree
}

// Snapshot dumps the current element and interconnect tables for
// diagnostics (internal/diag). Safe to call only from the goroutine
// running Run, or after it has returned.
func (c *Controller) Snapshot() diag.Snapshot {
	s := diag.Snapshot{Now: c.now, PendingEvents: c.queue.Len()}

	for id, el := range c.elements {
		inputs, outputs := el.Ports()
		es := diag.ElementSnapshot{ID: id, GUID: el.GUID()}
		for i, p := range inputs {
			es.Inputs = append(es.Inputs, diag.PortSnapshot{Port: i, Value: el.InputValue(i), Delay: p.Delay})
		}
		for i := range outputs {
			es.Outputs = append(es.Outputs, diag.PortSnapshot{Port: i, Value: el.OutputValue(i)})
		}
		s.Elements = append(s.Elements, es)
	}

	for id, tree := range c.interconnects {
		ts := diag.InterconnectSnapshot{ID: id, Root: tree.Root(), HasDriver: tree.HasDriver(), Value: tree.Value()}
		for _, sink := range tree.Sinks() {
			ts.Sinks = append(ts.Sinks, diag.SinkSnapshot{
				Element: sink.Element, Port: sink.Port, Point: sink.Point, Delay: sink.Delay,
			})
		}
		s.Interconnects = append(s.Interconnects, ts)
	}

	return s
}

// Run drains commands and advances simulated time until ctx is
// canceled or an OpQuit command arrives (spec.md §4.7 "Core Loop"):
// drain pending commands, drain due events, and otherwise either
// advance the clock to the next pending event (throttled to the
// configured simulation_rate) or block until a new command arrives.
func (c *Controller) Run(ctx context.Context) {
	defer c.recoverFatal()

	for {
		select {
		case <-ctx.Done():
			return
		case cmd, ok := <-c.commands:
			if !ok || c.handle(cmd) {
				return
			}
			continue
		default:
		}

		if ev := c.queue.PopDue(c.now); ev != nil {
			c.dispatch(ev)
			continue
		}

		due, hasNext := c.queue.PeekNext()
		if !hasNext {
			select {
			case <-ctx.Done():
				return
			case cmd, ok := <-c.commands:
				if !ok || c.handle(cmd) {
					return
				}
			}
			continue
		}

		c.rate.Throttle(due)
		c.now = due
	}
}

func (c *Controller) dispatch(ev *engine.Event) {
	switch ev.Kind {
	case engine.KindInputEdge:
		c.fireInputEdge(ev)
	case engine.KindSelfWake:
		c.fireSelfWake(ev)
	case engine.KindInterconnectPropagate:
		c.firePropagate(ev)
	}
}

func (c *Controller) fireInputEdge(ev *engine.Event) {
	el, ok := c.elements[ev.Target]
	if !ok {
		return
	}
	value, _ := ev.Payload.(bool)
	change, err := el.OnInputEdge(ev.Port, value, c.now)
	if err != nil {
		c.reportError(ev.Target, err)
		return
	}
	c.applyChange(ev.Target, change)
}

func (c *Controller) fireSelfWake(ev *engine.Event) {
	el, ok := c.elements[ev.Target]
	if !ok {
		return
	}
	change, err := el.OnSelfWake(c.now)
	if err != nil {
		c.reportError(ev.Target, err)
		return
	}
	c.applyChange(ev.Target, change)
}

// firePropagate re-reads the driving element's current output (rather
// than trusting a captured payload) so that multiple output flaps
// collapsed into one pending propagate event still fan out the
// latest, not a stale, value.
func (c *Controller) firePropagate(ev *engine.Event) {
	tree, ok := c.interconnects[ev.Target]
	if !ok {
		return
	}
	drv, ok := c.treeDriver[ev.Target]
	if !ok {
		return
	}
	el, ok := c.elements[drv.Element]
	if !ok {
		return
	}

	for _, d := range tree.OnDriverEdge(el.OutputValue(drv.Port), c.now) {
		c.scheduleDelivery(d)
	}
}

func (c *Controller) scheduleDelivery(d interconnect.Delivery) {
	targetID, targetPort, ok := c.resolveInputTarget(d.Sink.Element, d.Sink.Port)
	if !ok {
		return
	}
	target, ok := c.elements[targetID]
	if !ok {
		return
	}
	inputs, _ := target.Ports()
	if targetPort < 0 || targetPort >= len(inputs) {
		return
	}
	due := d.Due + inputs[targetPort].Delay
	c.queue.Schedule(engine.InputEdgeKey(targetID, targetPort), due, d.Value)
}

// resolveInputTarget follows a chain of compound forwarders down to
// the base element that actually owns the port, iteratively rather
// than recursively so nesting depth never grows the call stack
// (spec.md §4.5).
func (c *Controller) resolveInputTarget(id ident.ID, port int) (ident.ID, int, bool) {
	for {
		el, ok := c.elements[id]
		if !ok {
			return ident.ID{}, 0, false
		}
		forwarder, ok := el.(element.Forwarder)
		if !ok {
			return id, port, true
		}
		childID, childPort, ok := forwarder.ForwardInput(port)
		if !ok {
			return ident.ID{}, 0, false
		}
		id, port = childID, childPort
	}
}

// applyChange fans a set of changed output ports out to whatever they
// drive: an interconnect, an enclosing compound's mirrored port, or
// both.
func (c *Controller) applyChange(id ident.ID, change *element.Change) {
	if change == nil {
		return
	}
	for port, value := range change.Outputs {
		c.updates <- Update{Kind: UpdateOutputChanged, When: c.now, Element: id, Port: port, Value: value}
		c.propagateOutput(id, port, value)
	}
}

func (c *Controller) propagateOutput(id ident.ID, port int, value bool) {
	if treeID, ok := c.driverIndex[portKey{Element: id, Port: port}]; ok {
		c.queue.Schedule(engine.PropagateKey(treeID), c.now, nil)
	}

	el, ok := c.elements[id]
	if !ok {
		return
	}
	parentID, hasParent := el.Parent()

	for hasParent {
		parentEl, ok := c.elements[parentID]
		if !ok {
			return
		}
		compound, ok := parentEl.(*element.Compound)
		if !ok {
			return
		}
		extPort, ok := compound.MirrorsChildOutput(id, port)
		if !ok {
			return
		}
		mirrored := compound.SetMirroredOutput(extPort, value)
		if mirrored == nil {
			return
		}
		for mp, mv := range mirrored.Outputs {
			if treeID, ok := c.driverIndex[portKey{Element: parentID, Port: mp}]; ok {
				c.queue.Schedule(engine.PropagateKey(treeID), c.now, nil)
			}
			value = mv
		}

		id, port = parentID, extPort
		el = parentEl
		parentID, hasParent = el.Parent()
	}
}

// recoverFatal converts an internal invariant violation into the final
// error update spec.md §7 calls for, rather than letting the panic
// escape Run's goroutine and take the whole process down silently.
// Command and event errors never reach here — they're reportError's
// job; this only fires for a panic(*errs.Fatal), or any other panic a
// future invariant check might raise.
func (c *Controller) recoverFatal() {
	r := recover()
	if r == nil {
		return
	}
	tracelog.Fatal("internal invariant violation", "panic", r)
	c.updates <- Update{Kind: UpdateError, When: c.now, Err: &errs.Fatal{Reason: fmt.Sprint(r)}}
}

func (c *Controller) reportError(id ident.ID, err error) {
	tracelog.Warn("command failed", "element", id.String(), "err", err)
	c.updates <- Update{Kind: UpdateError, When: c.now, Element: id, Err: err}
}

func (c *Controller) reply(cmd Command, upd Update) {
	upd.When = c.now
	if cmd.ReplyTo != nil {
		cmd.ReplyTo <- upd
		return
	}
	c.updates <- upd
}

package interconnect

import (
	"fmt"

	"github.com/logiksim/core/engine"
	"github.com/logiksim/core/internal/errs"
	"github.com/logiksim/core/internal/ident"
)

// AttachDriver attaches a driver at point, re-rooting the tree there.
// A tree can have at most one driver at a time (spec.md §4.4, §8
// invariant "exactly one driver at the root, or none").
func (t *LineTree) AttachDriver(element ident.ID, port int, point Point) error {
	if t.hasDriver {
		return fmt.Errorf("%w: interconnect already has a driver", errs.ErrMultipleDrivers)
	}
	if err := t.ensureNode(point); err != nil {
		return err
	}
	t.reroot(point)
	t.driver = &PortRef{Element: element, Port: port}
	t.driverAt = point
	t.hasDriver = true
	t.recomputeSinkDelays()
	return nil
}

// DetachDriver removes the tree's driver, if any. The root stays where
// it is; only a future AttachDriver moves it again.
func (t *LineTree) DetachDriver() {
	t.driver = nil
	t.hasDriver = false
	t.value = false
}

// AttachSink attaches a new sink at point, computing its propagation
// delay from the current root.
func (t *LineTree) AttachSink(element ident.ID, port int, point Point) error {
	if err := t.ensureNode(point); err != nil {
		return err
	}
	t.sinks = append(t.sinks, Sink{
		PortRef: PortRef{Element: element, Port: port},
		Point:   point,
		Delay:   t.delayFromRoot(point),
	})
	return nil
}

// DetachSink removes the sink at point driving the given element/port,
// if present.
func (t *LineTree) DetachSink(element ident.ID, port int, point Point) {
	for i, s := range t.sinks {
		if s.Element == element && s.Port == port && s.Point == point {
			t.sinks = append(t.sinks[:i], t.sinks[i+1:]...)
			return
		}
	}
}

// OnDriverEdge records the driver's new value and returns one Delivery
// per sink, each due at the sink's precomputed propagation delay past
// now. The controller still has to add each destination element's own
// input delay before scheduling the resulting input-edge event.
func (t *LineTree) OnDriverEdge(value bool, now engine.Time) []Delivery {
	t.value = value
	out := make([]Delivery, 0, len(t.sinks))
	for _, s := range t.sinks {
		out = append(out, Delivery{Sink: s, Value: value, Due: now + s.Delay})
	}
	return out
}

// delayFromRoot computes the propagation delay from the tree's root to
// p, in simulation ticks (spec.md §8 invariant "δ(s) = ManhattanPathLength(root,s) / gridSpacing * delayPerGridpoint").
func (t *LineTree) delayFromRoot(p Point) engine.Time {
	path := t.pathFromRoot(p)
	length := 0
	for i := 0; i+1 < len(path); i++ {
		length += manhattan(path[i], path[i+1])
	}
	return engine.Time(length * t.delayPerGridpoint / t.gridSpacing)
}

// recomputeSinkDelays refreshes every sink's delay against the current
// root. Called whenever the root moves.
func (t *LineTree) recomputeSinkDelays() {
	for i := range t.sinks {
		t.sinks[i].Delay = t.delayFromRoot(t.sinks[i].Point)
	}
}

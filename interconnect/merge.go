package interconnect

import (
	"fmt"

	"github.com/logiksim/core/internal/errs"
)

// Merge absorbs other into t wherever the two trees touch at exactly
// one shared point (spec.md §4.4 "Merging two trees"). It fails if the
// trees don't touch at all, or touch at more than one point (the merge
// would be ambiguous), or if both sides are driven.
func (t *LineTree) Merge(other *LineTree) error {
	shared := sharedPoints(t, other)
	if len(shared) == 0 {
		return fmt.Errorf("%w: trees do not touch", errs.ErrDisjointAttach)
	}
	if len(shared) > 1 {
		return fmt.Errorf("%w: trees touch at %d points", errs.ErrAmbiguousMerge, len(shared))
	}
	if t.hasDriver && other.hasDriver {
		return fmt.Errorf("%w: both trees are already driven", errs.ErrMultipleDrivers)
	}

	var mergePoint Point
	for p := range shared {
		mergePoint = p
	}

	if err := t.ensureNode(mergePoint); err != nil {
		return err
	}
	if err := other.ensureNode(mergePoint); err != nil {
		return err
	}
	// reroot no longer fuses (see interconnect/reroot.go), so mergePoint
	// survives as a key in both adjacency maps until the splice below
	// reads it.
	t.reroot(mergePoint)
	other.reroot(mergePoint)

	t.children[mergePoint] = append(t.children[mergePoint], other.children[mergePoint]...)
	for p, children := range other.children {
		if p == mergePoint {
			continue
		}
		t.children[p] = children
	}
	t.sinks = append(t.sinks, other.sinks...)

	if other.hasDriver {
		t.driver = other.driver
		t.driverAt = other.driverAt
		t.hasDriver = true
	}
	if t.hasDriver {
		t.reroot(t.driverAt)
	}

	// Fuse once, now that both trees' children are fully spliced
	// together — a no-op if the merged tree ended up driven, since the
	// root is then pinned to the driver's attachment point.
	t.fuseCollinearAtRoot()
	if t.hasDriver {
		t.recomputeSinkDelays()
	}
	return nil
}

// sharedPoints returns every vertex of either tree that lies on the
// other, whether on one of its vertices or strictly inside one of its
// edges (which Merge then splits).
func sharedPoints(a, b *LineTree) map[Point]bool {
	shared := map[Point]bool{}
	for _, n := range b.Nodes() {
		if _, _, ok := a.Locate(n); ok {
			shared[n] = true
		}
	}
	for _, n := range a.Nodes() {
		if _, _, ok := b.Locate(n); ok {
			shared[n] = true
		}
	}
	return shared
}

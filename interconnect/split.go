package interconnect

import (
	"fmt"

	"github.com/logiksim/core/internal/ident"
)

// AddSegment grows the tree with a new branch. path[0] must already be
// on the tree; the rest describes a new, previously unseen run of
// axis-aligned segments (spec.md §4.4 "Adding a segment").
func (t *LineTree) AddSegment(path []Point) error {
	if len(path) < 2 {
		return fmt.Errorf("segment needs at least two points")
	}
	if err := t.ensureNode(path[0]); err != nil {
		return err
	}
	for i := 0; i+1 < len(path); i++ {
		a, b := path[i], path[i+1]
		if a == b {
			return fmt.Errorf("degenerate segment at %v", a)
		}
		if a.X != b.X && a.Y != b.Y {
			return fmt.Errorf("segment %v-%v is not axis-aligned", a, b)
		}
		t.children[a] = append(t.children[a], b)
	}
	return nil
}

// RemoveSegment removes one edge, splitting the tree in two when the
// child side carries anything. newID names the detached half. The
// receiver keeps whichever half still contains its root; the detached
// half is returned as a new, independent LineTree (spec.md §4.4
// "Removing a segment").
func (t *LineTree) RemoveSegment(edge Edge, newID ident.ID) (*LineTree, error) {
	siblings, ok := t.children[edge.Parent]
	found := false
	if ok {
		for _, c := range siblings {
			if c == edge.Child {
				found = true
				break
			}
		}
	}
	if !found {
		return nil, fmt.Errorf("no such edge %v", edge)
	}

	t.children[edge.Parent] = removeFromSlice(append([]Point(nil), siblings...), edge.Child)

	detached := &LineTree{
		ID:                newID,
		root:              edge.Child,
		children:          make(map[Point][]Point),
		delayPerGridpoint: t.delayPerGridpoint,
		gridSpacing:       t.gridSpacing,
	}
	moveSubtree(t.children, detached.children, edge.Child)

	detachedNodes := map[Point]bool{}
	for _, n := range detached.Nodes() {
		detachedNodes[n] = true
	}

	var remain, moved []Sink
	for _, s := range t.sinks {
		if detachedNodes[s.Point] {
			moved = append(moved, s)
		} else {
			remain = append(remain, s)
		}
	}
	t.sinks = remain
	detached.sinks = moved

	if t.hasDriver && detachedNodes[t.driverAt] {
		detached.driver = t.driver
		detached.driverAt = t.driverAt
		detached.hasDriver = true
		detached.reroot(t.driverAt)

		t.driver = nil
		t.hasDriver = false
		t.value = false
	}

	if t.hasDriver {
		t.recomputeSinkDelays()
	}
	if detached.hasDriver {
		detached.recomputeSinkDelays()
	}

	return detached, nil
}

// moveSubtree relocates every vertex reachable from node (inclusive)
// out of src into dst.
func moveSubtree(src, dst map[Point][]Point, node Point) {
	children, ok := src[node]
	if !ok {
		return
	}
	dst[node] = children
	delete(src, node)
	for _, c := range children {
		moveSubtree(src, dst, c)
	}
}

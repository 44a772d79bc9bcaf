// Package interconnect implements the LineTree: a rooted, acyclic
// graph of axis-aligned segments carrying one driver's value to many
// sinks, each with a precomputed propagation delay (spec.md §4.4).
// The topology algorithms (re-root, merge, split) are ported from
// original_source/src/logicitems/linetree.py's dict-of-dict tree, kept
// as an adjacency list here since Go has no convenient literal nested
// map idiom for a recursive tree shape.
package interconnect

import (
	"fmt"

	"github.com/logiksim/core/engine"
	"github.com/logiksim/core/internal/errs"
	"github.com/logiksim/core/internal/ident"
)

// PortRef names one port of one element.
type PortRef struct {
	Element ident.ID
	Port    int
}

// Sink is an attached input port together with its precomputed
// propagation delay from the tree's root.
type Sink struct {
	PortRef
	Point Point
	Delay engine.Time
}

// Delivery is one scheduled arrival produced by OnDriverEdge, to be
// turned into an input-edge event by the controller (which alone
// knows the destination element's own per-input delay).
type Delivery struct {
	Sink  Sink
	Value bool
	Due   engine.Time
}

// LineTree is a single interconnect: a connected, acyclic set of
// axis-aligned segments, at most one driver, and any number of sinks
// (spec.md §4.4).
type LineTree struct {
	ID ident.ID

	root     Point
	children map[Point][]Point

	driver   *PortRef
	driverAt Point
	hasDriver bool

	sinks []Sink
	value bool

	delayPerGridpoint int
	gridSpacing       int
}

// New builds a tree from an initial path: a sequence of distinct,
// consecutively-connected grid points with no branching. The root is
// arbitrary until a driver attaches (spec.md §4.4 "root node ... is
// arbitrary when undriven").
func New(id ident.ID, path []Point, delayPerGridpoint, gridSpacing int) (*LineTree, error) {
	if len(path) < 2 {
		return nil, fmt.Errorf("line tree needs at least two points")
	}
	t := &LineTree{
		ID:                id,
		root:              path[0],
		children:          make(map[Point][]Point),
		delayPerGridpoint: delayPerGridpoint,
		gridSpacing:       gridSpacing,
	}
	for i := 0; i+1 < len(path); i++ {
		a, b := path[i], path[i+1]
		if a == b {
			return nil, fmt.Errorf("degenerate segment at %v", a)
		}
		if a.X != b.X && a.Y != b.Y {
			return nil, fmt.Errorf("segment %v-%v is not axis-aligned", a, b)
		}
		t.children[a] = append(t.children[a], b)
	}
	return t, nil
}

// Root returns the tree's current root point.
func (t *LineTree) Root() Point {
	return t.root
}

// HasDriver reports whether the tree currently has a driver.
func (t *LineTree) HasDriver() bool {
	return t.hasDriver
}

// Value returns the tree's current logical value (the last value
// delivered by its driver, or false if never driven).
func (t *LineTree) Value() bool {
	return t.value
}

// Sinks returns the tree's current sinks in attachment order.
func (t *LineTree) Sinks() []Sink {
	return append([]Sink(nil), t.sinks...)
}

// IsEmpty reports whether the tree has no segments left. The
// controller does not call it: an interconnect whose segments are all
// removed stays registered in the controller's table.
func (t *LineTree) IsEmpty() bool {
	for _, c := range t.children {
		if len(c) > 0 {
			return false
		}
	}
	return true
}

// Nodes returns every point that is part of the tree (root, internal
// branch points, and leaves).
func (t *LineTree) Nodes() []Point {
	seen := map[Point]bool{t.root: true}
	var walk func(p Point)
	walk = func(p Point) {
		for _, c := range t.children[p] {
			seen[c] = true
			walk(c)
		}
	}
	walk(t.root)
	out := make([]Point, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	return out
}

// Edge is a parent/child pair, the unit split/remove operate on.
type Edge struct {
	Parent, Child Point
}

// Edges returns every edge currently in the tree.
func (t *LineTree) Edges() []Edge {
	var out []Edge
	var walk func(p Point)
	walk = func(p Point) {
		for _, c := range t.children[p] {
			out = append(out, Edge{Parent: p, Child: c})
			walk(c)
		}
	}
	walk(t.root)
	return out
}

// Locate reports whether p is on the tree: onNode is true if p is an
// existing vertex, otherwise containing names the edge p would split.
func (t *LineTree) Locate(p Point) (containing Edge, onNode bool, ok bool) {
	for _, n := range t.Nodes() {
		if n == p {
			return Edge{}, true, true
		}
	}
	for _, e := range t.Edges() {
		if between(e.Parent, p, e.Child) {
			return e, false, true
		}
	}
	return Edge{}, false, false
}

// splitEdgeAt splits edge (a,b) at p, preserving the subtree rooted at
// b (spec.md §4.4 "Splitting an edge at point p").
func (t *LineTree) splitEdgeAt(a, b, p Point) {
	siblings := t.children[a]
	for i, c := range siblings {
		if c == b {
			siblings[i] = p
			break
		}
	}
	t.children[a] = siblings
	t.children[p] = append(t.children[p], b)
}

// ensureNode makes sure p is a vertex of the tree, splitting the
// containing edge if p currently lies strictly inside it. It returns
// DisjointAttach if p is not part of the tree at all.
func (t *LineTree) ensureNode(p Point) error {
	edge, onNode, ok := t.Locate(p)
	if !ok {
		return fmt.Errorf("%w: point %v not on tree", errs.ErrDisjointAttach, p)
	}
	if onNode {
		return nil
	}
	t.splitEdgeAt(edge.Parent, edge.Child, p)
	return nil
}

func removeFromSlice(s []Point, v Point) []Point {
	out := s[:0]
	for _, p := range s {
		if p != v {
			out = append(out, p)
		}
	}
	return out
}

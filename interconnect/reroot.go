package interconnect

// pathFromRoot returns the unique path from the tree's root to target,
// inclusive of both endpoints, or nil if target is not in the tree.
func (t *LineTree) pathFromRoot(target Point) []Point {
	var path []Point
	var walk func(p Point) bool
	walk = func(p Point) bool {
		path = append(path, p)
		if p == target {
			return true
		}
		for _, c := range t.children[p] {
			if walk(c) {
				return true
			}
		}
		path = path[:len(path)-1]
		return false
	}
	walk(t.root)
	return path
}

// reroot re-roots the tree so newRoot becomes the root, inverting
// parent pointers along the path from the current root (spec.md §4.4
// "Re-rooting"). newRoot must already be a vertex of the tree.
//
// reroot never fuses collinear segments itself: a caller that needs
// newRoot to stay exactly where it put it (AttachDriver pinning the
// root to the driver's attachment point) would otherwise have that
// point silently eliminated whenever it happens to be a degree-2
// pass-through. Callers that do want the simplification — Merge, per
// spec.md §4.4 — call fuseCollinearAtRoot explicitly once the tree is
// back in a consistent state.
func (t *LineTree) reroot(newRoot Point) {
	if newRoot == t.root {
		return
	}

	path := t.pathFromRoot(newRoot)
	for i := len(path) - 1; i > 0; i-- {
		parent, child := path[i-1], path[i]
		t.children[parent] = removeFromSlice(append([]Point(nil), t.children[parent]...), child)
		t.children[child] = append(t.children[child], parent)
	}
	t.root = newRoot
}

// fuseCollinearAtRoot merges the root's two outgoing segments into one
// when they are collinear (spec.md §4.4 "merge any now-collinear pair
// of outgoing segments at the new root"). It repeats at the new root
// in case fusing exposes another collinear pair one level up.
//
// A driven tree's root is pinned to the driver's attachment point
// (spec.md §8 invariant "driver at the root") and is never eliminated
// by fusing, regardless of its degree — only an undriven root may
// move.
func (t *LineTree) fuseCollinearAtRoot() {
	if t.hasDriver {
		return
	}
	for {
		children := t.children[t.root]
		if len(children) != 2 {
			return
		}
		a, c := children[0], children[1]
		if !collinear(a, t.root, c) {
			return
		}

		delete(t.children, t.root)
		t.children[a] = append(t.children[a], c)
		t.root = a
	}
}

package engine

import (
	"container/heap"

	"github.com/logiksim/core/internal/ident"
)

// Queue is a min-priority queue over events ordered by (due, seq),
// paired with a pending-key index that enforces at-most-one pending
// event per Key (spec.md §4.1). Queue is not safe for concurrent use;
// it is owned exclusively by the controller's worker goroutine
// (spec.md §5).
type Queue struct {
	h       eventHeap
	pending map[Key]*Event
	nextSeq uint64
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{pending: make(map[Key]*Event)}
}

// Schedule inserts an event for key at due. If a pending event already
// occupies key: when the existing event is due strictly later than
// due, it is canceled and the new one takes its place; otherwise
// (existing due <= new due) the new event is dropped and the existing
// one survives unchanged — an earlier wake dominates a later one for
// the same key. Schedule returns the event that ends up live for key.
func (q *Queue) Schedule(key Key, due Time, payload any) *Event {
	if existing, ok := q.pending[key]; ok {
		if existing.Due <= due {
			return existing
		}
		q.removeLocked(existing)
	}

	e := &Event{
		Due:     due,
		Kind:    key.Kind,
		Target:  key.Target,
		Port:    key.Port,
		Payload: payload,
		seq:     q.nextSeq,
	}
	q.nextSeq++

	heap.Push(&q.h, e)
	q.pending[key] = e

	return e
}

// PopDue removes and returns the earliest event if its due time is
// <= now; otherwise it returns nil and leaves the queue untouched.
func (q *Queue) PopDue(now Time) *Event {
	if len(q.h) == 0 {
		return nil
	}
	if q.h[0].Due > now {
		return nil
	}
	e := heap.Pop(&q.h).(*Event)
	delete(q.pending, e.Key())
	return e
}

// PeekNext returns the next event's due time and whether one exists.
// It never removes anything; the core loop uses it to decide how far
// to advance the clock (spec.md §4.7).
func (q *Queue) PeekNext() (Time, bool) {
	if len(q.h) == 0 {
		return 0, false
	}
	return q.h[0].Due, true
}

// Len returns the number of events currently queued.
func (q *Queue) Len() int {
	return len(q.h)
}

// CancelFor removes every event targeting target, e.g. when an element
// or interconnect is deleted (spec.md §3 "Lifecycle", §8 invariant 5).
func (q *Queue) CancelFor(target ident.ID) {
	var doomed []*Event
	for _, e := range q.h {
		if e.Target == target {
			doomed = append(doomed, e)
		}
	}
	for _, e := range doomed {
		q.removeLocked(e)
	}
}

// CancelKey removes the pending event at key, if any, and reports
// whether one was removed.
func (q *Queue) CancelKey(key Key) bool {
	e, ok := q.pending[key]
	if !ok {
		return false
	}
	q.removeLocked(e)
	return true
}

func (q *Queue) removeLocked(e *Event) {
	if e.index >= 0 && e.index < len(q.h) && q.h[e.index] == e {
		heap.Remove(&q.h, e.index)
	}
	delete(q.pending, e.Key())
}

// PendingLen reports the size of the pending-key index, which must
// always equal Len (spec.md §8 invariant 2).
func (q *Queue) PendingLen() int {
	return len(q.pending)
}

type eventHeap []*Event

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	if h[i].Due != h[j].Due {
		return h[i].Due < h[j].Due
	}
	return h[i].seq < h[j].seq
}

func (h eventHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *eventHeap) Push(x any) {
	e := x.(*Event)
	e.index = len(*h)
	*h = append(*h, e)
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[:n-1]
	return e
}

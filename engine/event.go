package engine

import "github.com/logiksim/core/internal/ident"

// noPort is used in Key.Port for event kinds that are not port-scoped
// (self-wake, interconnect-propagate).
const noPort = -1

// Key identifies the slot a pending event occupies in the index. Two
// events with the same Key collapse per the rule in schedule (spec.md
// §4.1): an input-edge event's key includes the port, since edges on
// different ports of the same element must not collapse into each
// other.
type Key struct {
	Target ident.ID
	Kind   Kind
	Port   int
}

// SelfWakeKey builds the key for an element's self-wake event.
func SelfWakeKey(target ident.ID) Key {
	return Key{Target: target, Kind: KindSelfWake, Port: noPort}
}

// InputEdgeKey builds the key for a pending input-edge event on a
// specific port of an element.
func InputEdgeKey(target ident.ID, port int) Key {
	return Key{Target: target, Kind: KindInputEdge, Port: port}
}

// PropagateKey builds the key for a pending interconnect-propagate
// event on an interconnect.
func PropagateKey(target ident.ID) Key {
	return Key{Target: target, Kind: KindInterconnectPropagate, Port: noPort}
}

// Event is a future occurrence: at Due, Target's Kind handler fires
// with Payload. Events are consumed once; the queue never re-enqueues
// one unchanged (spec.md §3 "Lifecycle").
type Event struct {
	Due     Time
	Kind    Kind
	Target  ident.ID
	Port    int
	Payload any

	seq   uint64 // insertion order, breaks due-time ties FIFO
	index int    // position in the heap; -1 once popped or canceled
}

// Key returns the pending-key this event occupies.
func (e *Event) Key() Key {
	return Key{Target: e.Target, Kind: e.Kind, Port: e.Port}
}

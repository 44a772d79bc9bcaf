// Package controller owns the live simulation state — the element
// table, the interconnect table, and the event queue — and runs the
// core loop that drains commands, advances time, and emits updates
// (spec.md §4.6, §4.7).
package controller

import (
	"github.com/logiksim/core/engine"
	"github.com/logiksim/core/interconnect"
	"github.com/logiksim/core/internal/diag"
	"github.com/logiksim/core/internal/ident"
	"github.com/logiksim/core/metadata"
)

// Direction disambiguates which of an element's two port arrays
// Command.Port indexes into.
type Direction int

const (
	DirInput Direction = iota
	DirOutput
)

// Op names a command's operation.
type Op int

const (
	OpCreate Op = iota
	OpDelete
	// OpUpdate is spec.md §6's `update`: merges Props into Element's own
	// metadata (update_element_metadata). Per-element; always carries
	// Element.
	OpUpdate
	OpConnect
	OpDisconnect
	OpScheduleEdge
	OpEnumerateComponents
	// OpQueryProperties is spec.md §6's `query_properties`: simulator-wide,
	// carries no Element, answers with the current rate and clock.
	OpQueryProperties
	// OpSetProperties is spec.md §6's `set_properties`: simulator-wide,
	// carries no Element; Props may set "rate" (a float64 in Hz).
	OpSetProperties
	OpReset
	OpSnapshot
	OpQuit
)

// Command is the single external request type carried by the
// controller's command channel (spec.md §6). Only the fields relevant
// to Op are populated; the rest are zero.
type Command struct {
	Op Op

	ID     ident.ID
	Parent *ident.ID
	GUID   string

	// Props carries, depending on Op: the metadata delta for OpUpdate
	// (per-element), or the simulator properties to set for
	// OpSetProperties (simulator-wide, e.g. {"rate": 1e9}).
	Props metadata.Map

	Element   ident.ID
	Port      int
	Direction Direction
	Point     interconnect.Point
	Path      []interconnect.Point
	Edge      interconnect.Edge

	Interconnect ident.ID
	Value        bool

	// ReplyTo, if non-nil, receives exactly one Update answering this
	// command. Fire-and-forget commands (connect, disconnect, delete,
	// schedule_edge) may leave it nil.
	ReplyTo chan<- Update
}

// UpdateKind names the shape of an Update payload.
type UpdateKind int

const (
	UpdateOutputChanged UpdateKind = iota
	UpdateComponentList
	UpdateProperties
	UpdateError
	UpdateAck
	UpdateSnapshot
)

// Update is the single external notification type carried by the
// controller's update channel (spec.md §6).
type Update struct {
	Kind UpdateKind
	When engine.Time

	Element ident.ID
	Port    int
	Value   bool

	Components []ComponentInfo
	Properties metadata.Map
	Snapshot   diag.Snapshot

	Err error
}

// ComponentInfo describes one registered library GUID, answering
// enumerate_components.
type ComponentInfo struct {
	GUID       string
	NumInputs  int
	NumOutputs int
}

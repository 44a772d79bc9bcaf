// Package ident allocates process-unique identifiers for elements and
// interconnects. IDs are time-sortable and require no central counter,
// so they stay unique across restarts that rehydrate the controller
// from a replayed command log (spec.md §6 "Persisted state: None").
package ident

import "github.com/rs/xid"

// ID names an element or an interconnect. The zero value is never
// issued by New and can be used as a sentinel for "no such entity".
type ID struct {
	raw xid.ID
}

// New allocates a fresh ID.
func New() ID {
	return ID{raw: xid.New()}
}

// IsZero reports whether id is the unset sentinel value.
func (id ID) IsZero() bool {
	return id.raw.IsZero()
}

// String renders the ID in its canonical base32 form.
func (id ID) String() string {
	return id.raw.String()
}

// ParseString parses an ID previously produced by String, e.g. when
// replaying a recorded command log.
func ParseString(s string) (ID, error) {
	raw, err := xid.FromString(s)
	if err != nil {
		return ID{}, err
	}
	return ID{raw: raw}, nil
}

// Less orders IDs by creation time, then by the remaining bytes. It
// gives a stable iteration order for tests and diagnostics; it is not
// a simulation invariant.
func (id ID) Less(other ID) bool {
	return id.raw.Compare(other.raw) < 0
}

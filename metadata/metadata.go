// Package metadata implements the free-form, opaque-to-the-core
// key/value mapping carried by every element (spec.md §3).
package metadata

// Map is a metadata mapping: string keys to primitive values — numbers,
// booleans, strings, and nested Maps or slices of primitives. The core
// never interprets these values beyond two keys: gate construction
// reads "input_delays" and gate input handling reads the Disabled
// flag; every other key is opaque.
type Map map[string]any

// Clone makes a shallow-recursive copy so merges never alias a
// caller's map. Nested Maps are cloned; nested slices are not (they
// are never mutated in place by Merge).
func (m Map) Clone() Map {
	if m == nil {
		return nil
	}
	out := make(Map, len(m))
	for k, v := range m {
		if nested, ok := v.(Map); ok {
			out[k] = nested.Clone()
			continue
		}
		out[k] = v
	}
	return out
}

// Merge applies delta on top of m, returning a new Map and never
// mutating either argument. Keys present in delta overwrite m; nested
// Maps are merged recursively so a partial update to a nested mapping
// doesn't clobber sibling keys. Applying the same delta twice is
// idempotent because Merge is a pure overwrite, never an accumulation
// (spec.md §8 "Applying the same update twice is equivalent to
// applying it once").
func Merge(m, delta Map) Map {
	out := m.Clone()
	if out == nil {
		out = make(Map, len(delta))
	}
	for k, v := range delta {
		if nestedDelta, ok := v.(Map); ok {
			if nestedBase, ok := out[k].(Map); ok {
				out[k] = Merge(nestedBase, nestedDelta)
				continue
			}
		}
		out[k] = v
	}
	return out
}

// Disabled is the reserved key the editor uses to mute an element
// without deleting it (SPEC_FULL.md "Per-element enable/disable").
const Disabled = "$disabled"

// IsDisabled reports whether m carries the disabled flag.
func (m Map) IsDisabled() bool {
	v, ok := m[Disabled]
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

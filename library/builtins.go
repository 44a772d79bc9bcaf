package library

import (
	_ "embed"

	"github.com/logiksim/core/element"
	"github.com/logiksim/core/internal/ident"
	"github.com/logiksim/core/metadata"
)

//go:embed schemas.yaml
var builtinSchemaDoc []byte

var gateKindByGUID = map[string]element.GateKind{
	element.GUIDAnd:  element.GateAnd,
	element.GUIDOr:   element.GateOr,
	element.GUIDXor:  element.GateXor,
	element.GUIDNand: element.GateNand,
	element.GUIDNor:  element.GateNor,
}

// NewBuiltins returns a registry pre-loaded with the five basic gates.
// Compound elements are not registered here: their port map is
// freeform per instance, not fixed by a GUID. Schema entries that are
// not gates, such as logiksim.compound, are parsed and then skipped.
// The controller's create command resolves GUIDs only through
// Registry.Create, so it cannot build a compound; element.NewCompound
// is the only constructor.
func NewBuiltins() (*Registry, error) {
	schemas, err := ParseSchemas(builtinSchemaDoc)
	if err != nil {
		return nil, err
	}

	r := NewRegistry()
	for _, schema := range schemas {
		schema := schema
		kind, ok := gateKindByGUID[schema.GUID]
		if !ok {
			continue
		}
		numInputs := schema.NumInputs
		r.Register(schema, func(id ident.ID, parent *ident.ID, md metadata.Map) (element.Element, error) {
			return element.NewGate(kind, numInputs, id, parent, md), nil
		})
	}
	return r, nil
}

// Package library is the component library: a registry mapping each
// GUID to the metadata schema describing it and a factory that builds
// elements of that kind (spec.md §4.2).
package library

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Schema describes one GUID's fixed port shape and the metadata fields
// the editor should present for it. Schemas are normally loaded in
// bulk from an embedded YAML document.
type Schema struct {
	GUID       string           `yaml:"guid"`
	Kind       string           `yaml:"kind"`
	NumInputs  int              `yaml:"num_inputs"`
	NumOutputs int              `yaml:"num_outputs"`
	Fields     []SchemaField    `yaml:"fields,omitempty"`
}

// SchemaField documents one metadata key an editor may want to expose
// for a component, e.g. a gate's per-input delays.
type SchemaField struct {
	Key     string `yaml:"key"`
	Type    string `yaml:"type"`
	Default any    `yaml:"default,omitempty"`
}

// ParseSchemas decodes a YAML document containing a list of schemas.
func ParseSchemas(doc []byte) ([]Schema, error) {
	var schemas []Schema
	if err := yaml.Unmarshal(doc, &schemas); err != nil {
		return nil, fmt.Errorf("parsing component schemas: %w", err)
	}
	return schemas, nil
}

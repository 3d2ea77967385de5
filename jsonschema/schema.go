package jsonschema

import (
	json "github.com/goccy/go-json"
)

// Draft is the $schema URI emitted by Marshal.
const Draft = "https://json-schema.org/draft/2020-12/schema"

// Schema is a minimal JSON Schema representation used for export.
type Schema struct {
	SchemaURI string `json:"$schema,omitempty"`

	// Core
	Type    string `json:"type,omitempty"`
	Default any    `json:"default,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`

	// Array
	Items *Schema `json:"items,omitempty"`

	// Union
	OneOf []*Schema `json:"oneOf,omitempty"`
}

// Marshal renders s as indented JSON with the draft URI set on the root.
func Marshal(s *Schema) ([]byte, error) {
	root := *s
	root.SchemaURI = Draft
	return json.MarshalIndent(&root, "", "  ")
}

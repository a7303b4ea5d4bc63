// Package genmodels turns the schemas of an OpenAPI document into Go type
// declarations for the SDK's models file.
package genmodels

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/goccy/go-yaml"
)

// Document is the subset of an OpenAPI document the generator consumes.
type Document struct {
	OpenAPI    string `json:"openapi"`
	Info       Info   `json:"info"`
	Components struct {
		Schemas map[string]*Schema `json:"schemas"`
	} `json:"components"`
}

// Info carries the document metadata recorded in the generated header.
type Info struct {
	Title   string `json:"title"`
	Version string `json:"version"`
}

// Schema is the subset of JSON Schema the Amigo document uses.
type Schema struct {
	Ref         string             `json:"$ref"`
	Type        string             `json:"type"`
	Format      string             `json:"format"`
	Description string             `json:"description"`
	Properties  map[string]*Schema `json:"properties"`
	Required    []string           `json:"required"`
	Items       *Schema            `json:"items"`
	Enum        []string           `json:"enum"`
	AllOf       []*Schema          `json:"allOf"`
	AnyOf       []*Schema          `json:"anyOf"`
	Nullable    bool               `json:"nullable"`

	// AdditionalProperties is either a bool or a schema in the wild; it is
	// kept raw and interpreted on demand.
	AdditionalProperties json.RawMessage `json:"additionalProperties"`
}

// additionalSchema returns the map value schema when additionalProperties
// is a schema (or true, which means any).
func (s *Schema) additionalSchema() (*Schema, bool) {
	if len(s.AdditionalProperties) == 0 {
		return nil, false
	}
	var allowed bool
	if err := json.Unmarshal(s.AdditionalProperties, &allowed); err == nil {
		if allowed {
			return &Schema{}, true
		}
		return nil, false
	}
	var schema Schema
	if err := json.Unmarshal(s.AdditionalProperties, &schema); err != nil {
		return nil, false
	}
	return &schema, true
}

func (s *Schema) isRequired(name string) bool {
	for _, r := range s.Required {
		if r == name {
			return true
		}
	}
	return false
}

// ParseDocument decodes a JSON or YAML OpenAPI document. YAML input is
// converted to JSON first so one set of struct tags serves both.
func ParseDocument(data []byte) (*Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("genmodels: empty document")
	}
	if trimmed[0] != '{' {
		converted, err := yaml.YAMLToJSON(trimmed)
		if err != nil {
			return nil, fmt.Errorf("genmodels: convert YAML: %w", err)
		}
		trimmed = converted
	}
	var doc Document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("genmodels: parse document: %w", err)
	}
	if len(doc.Components.Schemas) == 0 {
		return nil, fmt.Errorf("genmodels: document has no component schemas")
	}
	return &doc, nil
}

// Package schema builds JSON Schemas and validates documents against them.
//
// reagent uses it to validate the configuration file before it is decoded, so unknown keys and
// out-of-range values are reported with the offending path instead of being silently ignored.
//
// # Quick Start
//
//	s := schema.MustCompile(schema.StrictObject(map[string]*schema.Property{
//	    "model": schema.Nested("Completion backend", schema.StrictObject(map[string]*schema.Property{
//	        "name":        schema.String("Model identifier").MinLength(1),
//	        "temperature": schema.Number("Sampling temperature").Min(0).Max(2),
//	    })),
//	    "max_iterations": schema.Integer("Loop bound").Min(1),
//	}))
//
//	err := s.ValidateJSON(bytes.NewReader(doc))
package schema

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema represents a JSON Schema definition.
// It provides both the raw map representation and a compiled validator.
type Schema struct {
	raw      map[string]any
	compiled *jsonschema.Schema
}

// Raw returns the underlying map[string]any representation.
func (s *Schema) Raw() map[string]any {
	if s == nil {
		return nil
	}
	return s.raw
}

// Validate validates a decoded JSON value against the schema.
// Returns nil if valid, or a *ValidationError describing the failure.
func (s *Schema) Validate(data any) error {
	if s == nil || s.compiled == nil {
		return nil
	}
	if err := s.compiled.Validate(data); err != nil {
		return &ValidationError{Err: err}
	}
	return nil
}

// ValidateJSON decodes a JSON document from r and validates it.
func (s *Schema) ValidateJSON(r io.Reader) error {
	if s == nil || s.compiled == nil {
		return nil
	}
	data, err := jsonschema.UnmarshalJSON(r)
	if err != nil {
		return fmt.Errorf("failed to parse document: %w", err)
	}
	return s.Validate(data)
}

// ValidationError wraps a JSON Schema validation error with a cleaner message.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("schema validation failed: %v", e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Compile compiles a raw schema map into a Schema with a compiled validator.
// Returns an error if the schema is invalid.
func Compile(raw map[string]any) (*Schema, error) {
	if raw == nil {
		return nil, nil
	}

	schemaJSON, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}

	schemaData, err := jsonschema.UnmarshalJSON(strings.NewReader(string(schemaJSON)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema.json", schemaData); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}

	compiled, err := c.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	return &Schema{
		raw:      raw,
		compiled: compiled,
	}, nil
}

// MustCompile is like Compile but panics on error.
// Use this for schemas defined at init time.
func MustCompile(raw map[string]any) *Schema {
	s, err := Compile(raw)
	if err != nil {
		panic(err)
	}
	return s
}

// -----------------------------------------------------------------------------
// Schema Builders
// -----------------------------------------------------------------------------

// Object creates an object schema with the given properties.
// Pass property names as variadic arguments to mark them as required.
func Object(properties map[string]*Property, required ...string) map[string]any {
	props := make(map[string]any, len(properties))
	for name, prop := range properties {
		props[name] = prop.build()
	}

	schema := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// StrictObject is like Object but rejects properties that are not listed.
func StrictObject(properties map[string]*Property, required ...string) map[string]any {
	schema := Object(properties, required...)
	schema["additionalProperties"] = false
	return schema
}

// Property represents a property in an object schema.
type Property struct {
	typ         string
	description string
	enum        []any
	minimum     *float64
	maximum     *float64
	minLength   *int
	pattern     string
	items       map[string]any
	object      map[string]any
}

func (p *Property) build() map[string]any {
	m := map[string]any{}

	// Nested objects start from their own schema so required/additionalProperties survive.
	for k, v := range p.object {
		m[k] = v
	}

	if p.typ != "" {
		m["type"] = p.typ
	}
	if p.description != "" {
		m["description"] = p.description
	}
	if len(p.enum) > 0 {
		m["enum"] = p.enum
	}
	if p.minimum != nil {
		m["minimum"] = *p.minimum
	}
	if p.maximum != nil {
		m["maximum"] = *p.maximum
	}
	if p.minLength != nil {
		m["minLength"] = *p.minLength
	}
	if p.pattern != "" {
		m["pattern"] = p.pattern
	}
	if p.items != nil {
		m["items"] = p.items
	}
	return m
}

// String creates a string property.
func String(description string) *Property {
	return &Property{typ: "string", description: description}
}

// Integer creates an integer property.
func Integer(description string) *Property {
	return &Property{typ: "integer", description: description}
}

// Number creates a number property (floating point).
func Number(description string) *Property {
	return &Property{typ: "number", description: description}
}

// Boolean creates a boolean property.
func Boolean(description string) *Property {
	return &Property{typ: "boolean", description: description}
}

// Array creates an array property with the given item schema.
//
//	schema.Array("Stop sequences", map[string]any{"type": "string"})
func Array(description string, items map[string]any) *Property {
	return &Property{typ: "array", description: description, items: items}
}

// Nested creates an object property from a schema built with Object or StrictObject.
func Nested(description string, object map[string]any) *Property {
	return &Property{typ: "object", description: description, object: object}
}

// Enum sets allowed values for the property.
//
//	schema.String("Level").Enum("debug", "info", "warn", "error")
func (p *Property) Enum(values ...any) *Property {
	p.enum = values
	return p
}

// Min sets the minimum value for number/integer properties.
func (p *Property) Min(min float64) *Property {
	p.minimum = &min
	return p
}

// Max sets the maximum value for number/integer properties.
func (p *Property) Max(max float64) *Property {
	p.maximum = &max
	return p
}

// MinLength sets the minimum length for string properties.
func (p *Property) MinLength(min int) *Property {
	p.minLength = &min
	return p
}

// Pattern sets a regex pattern for string validation.
//
//	schema.String("Timeout").Pattern(`^[0-9]+(ms|s|m|h)$`)
func (p *Property) Pattern(pattern string) *Property {
	p.pattern = pattern
	return p
}

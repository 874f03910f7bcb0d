package docstore

import (
	"bytes"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// schemaBaseURL is the location compiled schemas are registered under. Nothing is ever
// fetched from it; it only gives the compiler an absolute resource identifier.
const schemaBaseURL = "https://schemas.vault-registry.local/"

// Schema is a compiled JSON schema used to validate documents before they are accepted.
// A nil *Schema accepts every well-formed JSON document.
type Schema struct {
	name     string
	compiled *jsonschema.Schema
}

// CompileSchema compiles a JSON schema document.
func CompileSchema(name string, raw []byte) (*Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema %s: %w", name, err)
	}

	loc := schemaBaseURL + name
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(loc, doc); err != nil {
		return nil, fmt.Errorf("failed to add schema %s: %w", name, err)
	}

	compiled, err := compiler.Compile(loc)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema %s: %w", name, err)
	}

	return &Schema{name: name, compiled: compiled}, nil
}

// MustCompileSchema is like CompileSchema but panics on error. It is meant for
// schemas embedded in the binary.
func MustCompileSchema(name string, raw []byte) *Schema {
	s, err := CompileSchema(name, raw)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the name the schema was compiled with
func (s *Schema) Name() string {
	if s == nil {
		return ""
	}
	return s.name
}

// Validate checks raw JSON bytes against the schema
func (s *Schema) Validate(data []byte) error {
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("malformed JSON: %w", err)
	}
	if s == nil || s.compiled == nil {
		return nil
	}
	if err := s.compiled.Validate(inst); err != nil {
		return fmt.Errorf("schema %s: %w", s.name, err)
	}
	return nil
}

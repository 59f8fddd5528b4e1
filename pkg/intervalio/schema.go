package intervalio

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// Sentinel errors.
var (
	ErrSyntax = errors.New("document is not valid YAML or JSON")
	ErrSchema = errors.New("document does not match schema")
)

//go:embed schema.json
var schemaJSON []byte

// Schema returns the JSON schema that documents are validated against.
func Schema() []byte {
	return schemaJSON
}

// SchemaError lists every schema violation found in a document.
type SchemaError struct {
	Problems []Problem
}

// Problem is one schema violation.
type Problem struct {
	Field       string `json:"field"       yaml:"field"`
	Description string `json:"description" yaml:"description"`
}

func (e *SchemaError) Error() string {
	parts := make([]string, 0, len(e.Problems))

	for _, p := range e.Problems {
		parts = append(parts, p.Field+": "+p.Description)
	}

	return fmt.Sprintf("%s: %s", ErrSchema, strings.Join(parts, "; "))
}

func (e *SchemaError) Unwrap() error {
	return ErrSchema
}

// Validate checks raw YAML or JSON against the document schema. It returns
// a *SchemaError when the document parses but does not conform.
func Validate(data []byte) error {
	var raw any

	unmarshalErr := yaml.Unmarshal(data, &raw)
	if unmarshalErr != nil {
		return fmt.Errorf("%w: %w", ErrSyntax, unmarshalErr)
	}

	// An empty file decodes to nil, which the schema would reject as a non-object.
	if raw == nil {
		raw = map[string]any{}
	}

	result, validateErr := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaJSON),
		gojsonschema.NewGoLoader(raw),
	)
	if validateErr != nil {
		return fmt.Errorf("%w: %w", ErrSyntax, validateErr)
	}

	if result.Valid() {
		return nil
	}

	schemaErr := &SchemaError{}

	for _, re := range result.Errors() {
		schemaErr.Problems = append(schemaErr.Problems, Problem{
			Field:       re.Field(),
			Description: re.Description(),
		})
	}

	return schemaErr
}

package middleware

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Request payload validation. Schemas type-check the payloads; enum
// values are deliberately not restricted beyond their string type.

const createApplicantSchema = `{
	"type": "object",
	"properties": {
		"name": {"type": "string", "minLength": 1},
		"unit": {"type": "string"}
	},
	"required": ["name"],
	"additionalProperties": false
}`

const updateApplicantSchema = `{
	"type": "object",
	"properties": {
		"name": {"type": "string"},
		"unit": {"type": "string"},
		"status": {"type": "string"},
		"risk": {"type": "string"},
		"income_match": {"type": "string"},
		"error_rate": {"type": "string"}
	},
	"additionalProperties": false
}`

var (
	createSchema = mustCompile(createApplicantSchema)
	updateSchema = mustCompile(updateApplicantSchema)
)

func mustCompile(src string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(err)
	}
	return s
}

// ValidationError reports a payload that failed schema validation.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid payload: %s", strings.Join(e.Problems, "; "))
}

func validate(schema *gojsonschema.Schema, body []byte) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		// not even JSON
		return &ValidationError{Problems: []string{err.Error()}}
	}
	if result.Valid() {
		return nil
	}
	problems := make([]string, len(result.Errors()))
	for i, desc := range result.Errors() {
		problems[i] = desc.String()
	}
	return &ValidationError{Problems: problems}
}

// ValidateCreateApplicant checks a create payload.
func ValidateCreateApplicant(body []byte) error {
	return validate(createSchema, body)
}

// ValidateUpdateApplicant checks a partial-update payload.
func ValidateUpdateApplicant(body []byte) error {
	return validate(updateSchema, body)
}

// Package quiz defines the answer label set, the validated Decision shape and
// the error kinds shared by every stage of a run.
package quiz

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/jackzampolin/quizclick/internal/providers"
)

// Decision is the validated output of the selection phase.
type Decision struct {
	Question string `json:"question" yaml:"question"`
	Label    Label  `json:"choice" yaml:"choice"`
	Reason   string `json:"reason" yaml:"reason"`
}

// Validate checks the label invariant.
func (d *Decision) Validate() error {
	if !d.Label.Valid() {
		return &InvalidLabelError{Value: string(d.Label)}
	}
	return nil
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func decisionValidator() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiledSchema, compileErr = providers.CompileSchema(SchemaJSON())
	})
	return compiledSchema, compileErr
}

// ParseDecision turns an answer model response into a Decision.
//
// The response may wrap the object in a markdown fence or surround it with
// prose; anything that does not reduce to an object with exactly question,
// choice and reason (choice in the label set) fails with ErrSchemaValidation.
func ParseDecision(content string) (*Decision, error) {
	parsed, err := providers.ParseStructuredJSON(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaValidation, err)
	}

	schema, err := decisionValidator()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaValidation, err)
	}
	if err := providers.ValidateWithSchema(schema, parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaValidation, err)
	}

	var d Decision
	if err := json.Unmarshal(parsed, &d); err != nil {
		return nil, fmt.Errorf("%w: decode decision: %v", ErrSchemaValidation, err)
	}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaValidation, err)
	}
	return &d, nil
}

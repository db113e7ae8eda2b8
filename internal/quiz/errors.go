package quiz

import (
	"errors"
	"fmt"
)

// Error kinds. Every failure in a run wraps exactly one of these so the
// operator can tell which collaborator gave up.
var (
	// ErrCapture is returned when the region cannot be captured.
	ErrCapture = errors.New("capture failed")

	// ErrInference covers transport, auth, rate-limit and provider-side
	// failures on either inference call.
	ErrInference = errors.New("inference invocation failed")

	// ErrSchemaValidation is returned when an answer response cannot be
	// turned into a valid Decision.
	ErrSchemaValidation = errors.New("schema validation failed")

	// ErrInvalidLabel is returned when a label outside the enumerated set
	// reaches the coordinate table.
	ErrInvalidLabel = errors.New("invalid label")

	// ErrActionInjection is returned when a click cannot be injected.
	ErrActionInjection = errors.New("action injection failed")
)

// InvalidLabelError carries the offending label value.
type InvalidLabelError struct {
	Value string
}

func (e *InvalidLabelError) Error() string {
	return fmt.Sprintf("invalid label %q (want one of %s)", e.Value, LabelSetString())
}

// Unwrap lets errors.Is match ErrInvalidLabel.
func (e *InvalidLabelError) Unwrap() error {
	return ErrInvalidLabel
}

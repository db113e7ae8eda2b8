package pipeline

import "fmt"

// StepError reports where a run stopped. Cycle 0 is the activation click.
type StepError struct {
	Cycle int
	Step  Step
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("cycle %d: %s: %v", e.Cycle, e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

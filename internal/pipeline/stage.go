// Package pipeline runs the capture, extract, decide and act loop.
//
// A cycle moves one screenshot through two typed stages: an Extractor turns
// the image into loose text and a Selector turns that text into a validated
// quiz.Decision. The Runner composes them with the screen collaborators and
// stops the run on the first failure.
package pipeline

import (
	"context"

	"github.com/jackzampolin/quizclick/internal/quiz"
)

// Frame is a PNG-encoded capture of the monitored region.
type Frame []byte

// ExtractedText is the vision model's unstructured reading of a frame.
type ExtractedText string

// CallInfo identifies the cycle an inference call belongs to.
type CallInfo struct {
	RunID string
	Cycle int
}

// Extractor reads the question and its options off a frame.
type Extractor interface {
	Extract(ctx context.Context, info CallInfo, frame Frame) (ExtractedText, error)
}

// Selector picks the answer for extracted question text.
type Selector interface {
	Select(ctx context.Context, info CallInfo, text ExtractedText) (*quiz.Decision, error)
}

// Step names a unit of work inside a run. Errors carry the step they came from.
type Step string

const (
	StepActivate Step = "activate"
	StepCapture  Step = "capture"
	StepExtract  Step = "extract"
	StepSelect   Step = "select"
	StepReport   Step = "report"
	StepAct      Step = "act"
	StepPace     Step = "pace"
)

// State is the Runner's position in its lifecycle.
type State string

const (
	StateIdle       State = "idle"
	StateActivated  State = "activated"
	StateCapturing  State = "capturing"
	StateExtracting State = "extracting"
	StateSelecting  State = "selecting"
	StateReporting  State = "reporting"
	StateActing     State = "acting"
	StatePacing     State = "pacing"
	StateTerminated State = "terminated"
	StateFailed     State = "failed"
)

// stateFor is the state entered when a step begins.
func stateFor(step Step) State {
	switch step {
	case StepActivate:
		return StateActivated
	case StepCapture:
		return StateCapturing
	case StepExtract:
		return StateExtracting
	case StepSelect:
		return StateSelecting
	case StepReport:
		return StateReporting
	case StepAct:
		return StateActing
	case StepPace:
		return StatePacing
	default:
		return StateFailed
	}
}

package report

import (
	"fmt"
	"io"
	"sync"

	"github.com/jackzampolin/quizclick/internal/quiz"
)

// CycleReport is what the operator sees for one answered question.
type CycleReport struct {
	Cycle    int        `json:"cycle" yaml:"cycle"`
	Question string     `json:"question" yaml:"question"`
	Choice   quiz.Label `json:"choice" yaml:"choice"`
	Reason   string     `json:"reason" yaml:"reason"`
}

// Reporter writes cycle reports.
type Reporter interface {
	Report(r CycleReport) error
}

// Writer is a Reporter that writes to an io.Writer.
type Writer struct {
	mu     sync.Mutex
	w      io.Writer
	format OutputFormat
	count  int
}

// NewWriter creates a reporter writing format to w.
func NewWriter(w io.Writer, format OutputFormat) *Writer {
	if format == "" {
		format = DefaultOutput
	}
	return &Writer{w: w, format: format}
}

// Report writes one cycle report. YAML reports are separated by document markers.
func (rw *Writer) Report(r CycleReport) error {
	rw.mu.Lock()
	defer rw.mu.Unlock()

	if rw.format == OutputFormatYAML && rw.count > 0 {
		if _, err := io.WriteString(rw.w, "---\n"); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}
	if err := OutputTo(rw.w, rw.format, r); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	rw.count++
	return nil
}

// FromDecision builds the report for a cycle.
func FromDecision(cycle int, d *quiz.Decision) CycleReport {
	return CycleReport{
		Cycle:    cycle,
		Question: d.Question,
		Choice:   d.Label,
		Reason:   d.Reason,
	}
}

var _ Reporter = (*Writer)(nil)

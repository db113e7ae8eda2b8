package pipeline

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/jackzampolin/quizclick/internal/quiz"
	"github.com/jackzampolin/quizclick/internal/report"
	"github.com/jackzampolin/quizclick/internal/screen"
)

// events records collaborator calls in order across fakes.
type events struct {
	mu  sync.Mutex
	log []string
}

func (e *events) add(s string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.log = append(e.log, s)
}

func (e *events) list() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, len(e.log))
	copy(out, e.log)
	return out
}

type fakeCapturer struct {
	ev    *events
	frame []byte
	err   error
	calls int
}

func (c *fakeCapturer) Capture(ctx context.Context, region screen.Region) ([]byte, error) {
	c.calls++
	if c.ev != nil {
		c.ev.add("capture")
	}
	if c.err != nil {
		return nil, c.err
	}
	return c.frame, nil
}

type fakeClicker struct {
	ev     *events
	clicks []screen.Point
	// failOn is the 1-based click that fails; 0 never fails.
	failOn int
	err    error
}

func (c *fakeClicker) Click(ctx context.Context, p screen.Point) error {
	if c.ev != nil {
		c.ev.add("click " + p.String())
	}
	if c.failOn > 0 && len(c.clicks)+1 == c.failOn {
		return c.err
	}
	c.clicks = append(c.clicks, p)
	return nil
}

type fakeExtractor struct {
	ev    *events
	text  ExtractedText
	errs  []error // returned in order before succeeding
	calls int
}

func (e *fakeExtractor) Extract(ctx context.Context, info CallInfo, frame Frame) (ExtractedText, error) {
	e.calls++
	if e.ev != nil {
		e.ev.add("extract")
	}
	if e.calls <= len(e.errs) {
		return "", e.errs[e.calls-1]
	}
	return e.text, nil
}

type fakeSelector struct {
	ev       *events
	decision *quiz.Decision
	errs     []error
	calls    int
}

func (s *fakeSelector) Select(ctx context.Context, info CallInfo, text ExtractedText) (*quiz.Decision, error) {
	s.calls++
	if s.ev != nil {
		s.ev.add("select")
	}
	if s.calls <= len(s.errs) {
		return nil, s.errs[s.calls-1]
	}
	return s.decision, nil
}

type eventReporter struct {
	ev      *events
	reports []report.CycleReport
}

func (r *eventReporter) Report(rep report.CycleReport) error {
	r.ev.add("report " + rep.Choice.String())
	r.reports = append(r.reports, rep)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

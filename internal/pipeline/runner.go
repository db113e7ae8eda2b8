package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"

	"github.com/jackzampolin/quizclick/internal/llmcall"
	"github.com/jackzampolin/quizclick/internal/quiz"
	"github.com/jackzampolin/quizclick/internal/report"
	"github.com/jackzampolin/quizclick/internal/screen"
)

// Config bounds and shapes a run.
type Config struct {
	MaxCycles  int
	Region     screen.Region
	Activation screen.Point
	Pace       time.Duration
	Table      *screen.CoordinateTable

	// InferenceAttempts > 1 retries inference failures (never schema
	// failures) with a fixed RetryDelay. 0 or 1 means fail fast.
	InferenceAttempts int
	RetryDelay        time.Duration
}

// Validate checks the run bounds.
func (c Config) Validate() error {
	if c.MaxCycles <= 0 {
		return fmt.Errorf("max cycles must be positive, got %d", c.MaxCycles)
	}
	if err := c.Region.Validate(); err != nil {
		return err
	}
	if c.Pace < 0 {
		return fmt.Errorf("pace must not be negative, got %s", c.Pace)
	}
	if c.InferenceAttempts < 0 {
		return fmt.Errorf("inference attempts must not be negative, got %d", c.InferenceAttempts)
	}
	return nil
}

// Deps are the Runner's collaborators. Recorder and Logger are optional.
type Deps struct {
	Capturer  screen.Capturer
	Clicker   screen.Clicker
	Extractor Extractor
	Selector  Selector
	Reporter  report.Reporter
	Recorder  *llmcall.Recorder
	Logger    *slog.Logger
}

// Summary describes a finished run, successful or not.
type Summary struct {
	RunID     string          `json:"run_id" yaml:"run_id"`
	State     State           `json:"state" yaml:"state"`
	Completed int             `json:"cycles_completed" yaml:"cycles_completed"`
	Elapsed   time.Duration   `json:"elapsed" yaml:"elapsed"`
	Inference llmcall.Summary `json:"inference" yaml:"inference"`
}

// Runner drives the bounded capture, extract, select, report, act, pace loop.
// It is single-use and strictly sequential.
type Runner struct {
	cfg  Config
	deps Deps

	logger *slog.Logger
	sleep  func(ctx context.Context, d time.Duration) error

	mu        sync.Mutex
	state     State
	runID     string
	completed int
}

// NewRunner creates a runner. A nil Table uses the default layout.
func NewRunner(cfg Config, deps Deps) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid run config: %w", err)
	}
	if cfg.Table == nil {
		cfg.Table = screen.DefaultCoordinateTable()
	}
	switch {
	case deps.Capturer == nil:
		return nil, errors.New("runner requires a capturer")
	case deps.Clicker == nil:
		return nil, errors.New("runner requires a clicker")
	case deps.Extractor == nil:
		return nil, errors.New("runner requires an extractor")
	case deps.Selector == nil:
		return nil, errors.New("runner requires a selector")
	case deps.Reporter == nil:
		return nil, errors.New("runner requires a reporter")
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Runner{
		cfg:    cfg,
		deps:   deps,
		logger: logger,
		sleep:  sleepContext,
		state:  StateIdle,
		runID:  uuid.New().String(),
	}, nil
}

// RunID returns the identifier attached to this run's calls and logs.
func (r *Runner) RunID() string {
	return r.runID
}

// State returns the current lifecycle state.
func (r *Runner) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Run performs the activation click and then MaxCycles cycles.
// The first failure stops the run and is returned as a *StepError.
// The summary is returned in both cases.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	if r.State() != StateIdle {
		return nil, fmt.Errorf("runner already used (state %s)", r.State())
	}

	start := time.Now()
	logger := r.logger.With("run_id", r.runID)
	logger.Info("run starting",
		"max_cycles", r.cfg.MaxCycles,
		"region", r.cfg.Region.String(),
		"pace", r.cfg.Pace,
	)

	err := r.run(ctx, logger)

	final := StateTerminated
	if err != nil {
		final = StateFailed
	}
	r.transition(logger, final)

	summary := r.summary(time.Since(start))
	attrs := []any{
		"state", summary.State,
		"cycles_completed", summary.Completed,
		"inference_calls", summary.Inference.Calls,
		"input_tokens", summary.Inference.InputTokens,
		"output_tokens", summary.Inference.OutputTokens,
		"elapsed", summary.Elapsed.Round(time.Millisecond),
	}
	if err != nil {
		logger.Error("run failed", append(attrs, "error", err)...)
		return summary, err
	}
	logger.Info("run complete", attrs...)
	return summary, nil
}

func (r *Runner) run(ctx context.Context, logger *slog.Logger) error {
	if err := r.step(ctx, logger, 0, StepActivate, func(ctx context.Context) error {
		return r.deps.Clicker.Click(ctx, r.cfg.Activation)
	}); err != nil {
		return err
	}

	for cycle := 1; cycle <= r.cfg.MaxCycles; cycle++ {
		if err := r.cycle(ctx, logger, cycle); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) cycle(ctx context.Context, logger *slog.Logger, cycle int) error {
	info := CallInfo{RunID: r.runID, Cycle: cycle}
	cycleStart := time.Now()

	var frame Frame
	if err := r.step(ctx, logger, cycle, StepCapture, func(ctx context.Context) error {
		img, err := r.deps.Capturer.Capture(ctx, r.cfg.Region)
		if err != nil {
			return err
		}
		frame = img
		return nil
	}); err != nil {
		return err
	}

	var text ExtractedText
	if err := r.step(ctx, logger, cycle, StepExtract, func(ctx context.Context) error {
		return r.withRetry(ctx, logger, cycle, StepExtract, func() error {
			t, err := r.deps.Extractor.Extract(ctx, info, frame)
			if err != nil {
				return err
			}
			text = t
			return nil
		})
	}); err != nil {
		return err
	}

	var decision *quiz.Decision
	if err := r.step(ctx, logger, cycle, StepSelect, func(ctx context.Context) error {
		return r.withRetry(ctx, logger, cycle, StepSelect, func() error {
			d, err := r.deps.Selector.Select(ctx, info, text)
			if err != nil {
				return err
			}
			decision = d
			return nil
		})
	}); err != nil {
		return err
	}

	if err := r.step(ctx, logger, cycle, StepReport, func(context.Context) error {
		return r.deps.Reporter.Report(report.FromDecision(cycle, decision))
	}); err != nil {
		return err
	}

	var target screen.Point
	if err := r.step(ctx, logger, cycle, StepAct, func(ctx context.Context) error {
		p, err := r.cfg.Table.Map(decision.Label)
		if err != nil {
			return err
		}
		target = p
		return r.deps.Clicker.Click(ctx, p)
	}); err != nil {
		return err
	}

	r.mu.Lock()
	r.completed = cycle
	r.mu.Unlock()

	logger.Info("cycle complete",
		"cycle", cycle,
		"choice", decision.Label,
		"target", target.String(),
		"duration", time.Since(cycleStart).Round(time.Millisecond),
	)

	return r.step(ctx, logger, cycle, StepPace, func(ctx context.Context) error {
		return r.sleep(ctx, r.cfg.Pace)
	})
}

// step enters the state for s, runs fn and wraps any failure in a StepError.
func (r *Runner) step(ctx context.Context, logger *slog.Logger, cycle int, s Step, fn func(context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return &StepError{Cycle: cycle, Step: s, Err: err}
	}
	r.transition(logger.With("cycle", cycle), stateFor(s))
	if err := fn(ctx); err != nil {
		return &StepError{Cycle: cycle, Step: s, Err: err}
	}
	return nil
}

// withRetry retries inference failures when the run opted in.
func (r *Runner) withRetry(ctx context.Context, logger *slog.Logger, cycle int, s Step, fn func() error) error {
	if r.cfg.InferenceAttempts <= 1 {
		return fn()
	}
	return retry.Do(
		fn,
		retry.Context(ctx),
		retry.Attempts(uint(r.cfg.InferenceAttempts)),
		retry.Delay(r.cfg.RetryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return errors.Is(err, quiz.ErrInference)
		}),
		retry.OnRetry(func(n uint, err error) {
			logger.Warn("retrying inference call",
				"cycle", cycle,
				"step", s,
				"attempt", n+1,
				"error", err,
			)
		}),
	)
}

func (r *Runner) transition(logger *slog.Logger, next State) {
	r.mu.Lock()
	prev := r.state
	r.state = next
	r.mu.Unlock()
	logger.Debug("state transition", "from", prev, "to", next)
}

func (r *Runner) summary(elapsed time.Duration) *Summary {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := &Summary{
		RunID:     r.runID,
		State:     r.state,
		Completed: r.completed,
		Elapsed:   elapsed,
	}
	if r.deps.Recorder != nil {
		s.Inference = r.deps.Recorder.Summary()
	}
	return s
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

package screen

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-vgo/robotgo"

	"github.com/jackzampolin/quizclick/internal/quiz"
)

// Clicker injects a pointer click at a screen point.
type Clicker interface {
	Click(ctx context.Context, p Point) error
}

// RobotClicker moves the system pointer and clicks the left button.
type RobotClicker struct {
	// Tolerance is how far (per axis) the pointer may land from the target
	// before the click is refused. HiDPI scaling can shift it by a pixel.
	Tolerance int
}

// NewRobotClicker creates a clicker with a 1px tolerance.
func NewRobotClicker() *RobotClicker {
	return &RobotClicker{Tolerance: 1}
}

// Click moves to p, checks the pointer arrived, and clicks.
// Failures wrap quiz.ErrActionInjection.
func (c *RobotClicker) Click(ctx context.Context, p Point) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	robotgo.Move(p.X, p.Y)
	x, y := robotgo.Location()
	if abs(x-p.X) > c.Tolerance || abs(y-p.Y) > c.Tolerance {
		return fmt.Errorf("%w: pointer at (%d,%d), wanted %s", quiz.ErrActionInjection, x, y, p)
	}

	robotgo.Click("left", false)
	return nil
}

// DryRunClicker logs clicks instead of injecting them.
type DryRunClicker struct {
	Logger *slog.Logger
	clicks []Point
}

// Click records p.
func (c *DryRunClicker) Click(ctx context.Context, p Point) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	logger := c.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("dry-run click", "x", p.X, "y", p.Y)
	c.clicks = append(c.clicks, p)
	return nil
}

// Clicks returns the points clicked so far.
func (c *DryRunClicker) Clicks() []Point {
	out := make([]Point, len(c.clicks))
	copy(out, c.clicks)
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

var (
	_ Clicker = (*RobotClicker)(nil)
	_ Clicker = (*DryRunClicker)(nil)
)

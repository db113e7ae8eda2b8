package screen

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"

	"github.com/kbinani/screenshot"

	"github.com/jackzampolin/quizclick/internal/quiz"
)

// Capturer grabs an encoded image of a screen region.
type Capturer interface {
	Capture(ctx context.Context, region Region) ([]byte, error)
}

// ScreenshotCapturer captures the live display and encodes it as PNG.
type ScreenshotCapturer struct{}

// NewScreenshotCapturer creates a capturer for the active displays.
func NewScreenshotCapturer() *ScreenshotCapturer {
	return &ScreenshotCapturer{}
}

// Capture grabs region and returns PNG bytes.
// Failures wrap quiz.ErrCapture.
func (c *ScreenshotCapturer) Capture(ctx context.Context, region Region) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := region.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", quiz.ErrCapture, err)
	}

	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return nil, fmt.Errorf("%w: no active display", quiz.ErrCapture)
	}
	var desktop image.Rectangle
	for i := 0; i < n; i++ {
		desktop = desktop.Union(screenshot.GetDisplayBounds(i))
	}
	if !region.Rect().In(desktop) {
		return nil, fmt.Errorf("%w: region %s outside desktop %v", quiz.ErrCapture, region, desktop)
	}

	img, err := screenshot.CaptureRect(region.Rect())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", quiz.ErrCapture, err)
	}
	return EncodePNG(img)
}

// EncodePNG encodes img as PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("%w: encode png: %v", quiz.ErrCapture, err)
	}
	return buf.Bytes(), nil
}

var _ Capturer = (*ScreenshotCapturer)(nil)

// Package screen holds the fixed screen geometry of a quiz (capture region,
// activation point, answer coordinates) and the capture and click
// collaborators that act on it.
package screen

import (
	"fmt"
	"image"
)

// Point is a screen coordinate.
type Point struct {
	X int `mapstructure:"x" yaml:"x" json:"x"`
	Y int `mapstructure:"y" yaml:"y" json:"y"`
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Region is a rectangle in screen coordinates. Right and Bottom are exclusive.
type Region struct {
	Left   int `mapstructure:"left" yaml:"left" json:"left"`
	Top    int `mapstructure:"top" yaml:"top" json:"top"`
	Right  int `mapstructure:"right" yaml:"right" json:"right"`
	Bottom int `mapstructure:"bottom" yaml:"bottom" json:"bottom"`
}

// Width returns the region width in pixels.
func (r Region) Width() int {
	return r.Right - r.Left
}

// Height returns the region height in pixels.
func (r Region) Height() int {
	return r.Bottom - r.Top
}

// Rect converts the region to an image.Rectangle.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.Left, r.Top, r.Right, r.Bottom)
}

// Validate checks the region has a positive area.
func (r Region) Validate() error {
	if r.Width() <= 0 || r.Height() <= 0 {
		return fmt.Errorf("region %s has no area", r)
	}
	return nil
}

func (r Region) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.Left, r.Top, r.Right, r.Bottom)
}

package screen

import (
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegion(t *testing.T) {
	r := Region{Left: 10, Top: 150, Right: 310, Bottom: 650}
	assert.Equal(t, 300, r.Width())
	assert.Equal(t, 500, r.Height())
	assert.Equal(t, image.Rect(10, 150, 310, 650), r.Rect())
	assert.NoError(t, r.Validate())

	assert.Error(t, Region{Left: 10, Top: 10, Right: 10, Bottom: 20}.Validate())
	assert.Error(t, Region{Left: 0, Top: 30, Right: 10, Bottom: 20}.Validate())
}

func TestEncodePNG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.White)

	b, err := EncodePNG(img)
	require.NoError(t, err)
	assert.Equal(t, "\x89PNG", string(b[:4]))
}

func TestDryRunClicker(t *testing.T) {
	c := &DryRunClicker{}
	require.NoError(t, c.Click(context.Background(), Point{1, 2}))
	require.NoError(t, c.Click(context.Background(), Point{3, 4}))
	assert.Equal(t, []Point{{1, 2}, {3, 4}}, c.Clicks())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, c.Click(ctx, Point{5, 6}))
}

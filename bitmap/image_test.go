package bitmap

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	b := New(3, 2)
	assert.Equal(t, 3, b.Width())
	assert.Equal(t, 2, b.Height())
	assert.Equal(t, image.Rect(0, 0, 3, 2), b.Bounds())
	assert.Len(t, b.Pixels(), 6)
	for _, p := range b.Pixels() {
		assert.Equal(t, Empty, p)
	}

	assert.NotPanics(t, func() { New(0, 0) })
	assert.Panics(t, func() { New(-1, 1) })
	assert.Panics(t, func() { New(1, -1) })
}

func TestFromPixels(t *testing.T) {
	pix := []Pixel{1, 2, 3, 4, 5, 6}
	b, err := FromPixels(3, 2, pix)
	require.NoError(t, err)

	p, err := b.PixelAt(2, 1)
	require.NoError(t, err)
	assert.Equal(t, Pixel(6), p)

	// The buffer is copied
	pix[0] = 42
	p, _ = b.PixelAt(0, 0)
	assert.Equal(t, Pixel(1), p)

	_, err = FromPixels(2, 2, pix)
	assert.Error(t, err)
	_, err = FromPixels(-3, -2, pix)
	assert.Error(t, err)
}

func TestSetPixel(t *testing.T) {
	b := New(2, 2)
	require.NoError(t, b.SetPixel(1, 0, RGB(0, 0xff, 0)))
	assert.Equal(t, []Pixel{Empty, RGB(0, 0xff, 0), Empty, Empty}, b.Pixels())

	for _, pt := range []image.Point{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		assert.Equal(t, ErrOutOfBounds, b.SetPixel(pt.X, pt.Y, 1))
		_, err := b.PixelAt(pt.X, pt.Y)
		assert.Equal(t, ErrOutOfBounds, err)
	}
	assert.Len(t, b.Pixels(), 4)
}

func TestPixelsIsACopy(t *testing.T) {
	b := New(1, 1)
	pix := b.Pixels()
	pix[0] = 0xffffff
	p, _ := b.PixelAt(0, 0)
	assert.Equal(t, Empty, p)
}

func TestFill(t *testing.T) {
	b := New(4, 3)
	b.Fill(image.Rect(1, 1, 3, 3), RGB(0, 0, 0xff))

	blue := RGB(0, 0, 0xff)
	assert.Equal(t, []Pixel{
		Empty, Empty, Empty, Empty,
		Empty, blue, blue, Empty,
		Empty, blue, blue, Empty,
	}, b.Pixels())

	// Clipped to the bounds
	b.Fill(image.Rect(-10, -10, 1, 10), RGB(0xff, 0, 0))
	for y := 0; y < 3; y++ {
		p, _ := b.PixelAt(0, y)
		assert.Equal(t, RGB(0xff, 0, 0), p)
	}

	// Entirely outside
	before := b.Pixels()
	b.Fill(image.Rect(10, 10, 20, 20), 1)
	assert.Equal(t, before, b.Pixels())
}

func TestImageInterface(t *testing.T) {
	b := New(2, 1)
	b.Set(0, 0, color.RGBA{0xff, 0x80, 0x01, 0xff})
	b.Set(5, 5, color.White)

	assert.Equal(t, RGB(0xff, 0x80, 0x01), b.At(0, 0))
	assert.Equal(t, Empty, b.At(5, 5))
	assert.Equal(t, PixelModel, b.ColorModel())
	assert.True(t, b.Opaque())
}

func TestFromImage(t *testing.T) {
	m := image.NewRGBA(image.Rect(10, 20, 13, 22))
	m.Set(10, 20, color.RGBA{0xff, 0, 0, 0xff})
	m.Set(12, 21, color.RGBA{0, 0, 0xff, 0xff})

	b := FromImage(m)
	assert.Equal(t, image.Rect(0, 0, 3, 2), b.Bounds())
	assert.Equal(t, RGB(0xff, 0, 0), b.At(0, 0))
	assert.Equal(t, RGB(0, 0, 0xff), b.At(2, 1))

	dup := FromImage(b)
	assert.True(t, dup.Equal(b))
	require.NoError(t, dup.SetPixel(0, 0, Empty))
	assert.False(t, dup.Equal(b))
}

func TestEqual(t *testing.T) {
	a, _ := FromPixels(2, 1, []Pixel{1, 2})
	b, _ := FromPixels(1, 2, []Pixel{1, 2})
	c, _ := FromPixels(2, 1, []Pixel{1, 2})
	assert.False(t, a.Equal(b))
	assert.True(t, a.Equal(c))
}

package bitmap

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// ErrOutOfBounds is returned when a coordinate lies outside the Bitmap.
var ErrOutOfBounds = errors.New("bitmap: coordinate out of bounds")

// Bitmap is an in-memory 24-bit image. Pixels are held in row-major order
// with the origin at the top-left corner. It implements image.Image and
// draw.Image.
type Bitmap struct {
	width  int
	height int
	pix    []Pixel
}

// New returns a width by height Bitmap with every pixel set to Empty. It
// panics if either dimension is negative.
func New(width, height int) *Bitmap {
	if width < 0 || height < 0 {
		panic(fmt.Sprintf("bitmap: negative dimensions %dx%d", width, height))
	}
	return &Bitmap{
		width:  width,
		height: height,
		pix:    make([]Pixel, width*height),
	}
}

// FromPixels returns a Bitmap holding a copy of pix, which must contain
// exactly width * height pixels in row-major order.
func FromPixels(width, height int, pix []Pixel) (*Bitmap, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("bitmap: negative dimensions %dx%d", width, height)
	}
	if len(pix) != width*height {
		return nil, fmt.Errorf("bitmap: %d pixels do not fill %dx%d", len(pix), width, height)
	}
	b := New(width, height)
	copy(b.pix, pix)
	return b, nil
}

// FromImage returns a copy of m as a Bitmap, moving the top-left corner of m
// to (0, 0).
func FromImage(m image.Image) *Bitmap {
	if b, ok := m.(*Bitmap); ok {
		dup := New(b.width, b.height)
		copy(dup.pix, b.pix)
		return dup
	}

	r := m.Bounds()
	b := New(r.Dx(), r.Dy())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			b.pix[(y-r.Min.Y)*b.width+x-r.Min.X] = PixelModel.Convert(m.At(x, y)).(Pixel)
		}
	}
	return b
}

// Width returns the width in pixels.
func (b *Bitmap) Width() int { return b.width }

// Height returns the height in pixels.
func (b *Bitmap) Height() int { return b.height }

// Pixels returns a copy of the pixels in row-major order.
func (b *Bitmap) Pixels() []Pixel {
	return append([]Pixel(nil), b.pix...)
}

func (b *Bitmap) in(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// PixelAt returns the pixel at (x, y).
func (b *Bitmap) PixelAt(x, y int) (Pixel, error) {
	if !b.in(x, y) {
		return Empty, ErrOutOfBounds
	}
	return b.pix[y*b.width+x], nil
}

// SetPixel sets the pixel at (x, y) to p.
func (b *Bitmap) SetPixel(x, y int, p Pixel) error {
	if !b.in(x, y) {
		return ErrOutOfBounds
	}
	b.pix[y*b.width+x] = p
	return nil
}

// Fill sets every pixel within r to p. Any part of r outside the Bitmap is
// ignored.
func (b *Bitmap) Fill(r image.Rectangle, p Pixel) {
	r = r.Intersect(b.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := b.pix[y*b.width : (y+1)*b.width]
		for x := r.Min.X; x < r.Max.X; x++ {
			row[x] = p
		}
	}
}

// Equal reports whether b and o have the same dimensions and pixels.
func (b *Bitmap) Equal(o *Bitmap) bool {
	if b.width != o.width || b.height != o.height {
		return false
	}
	for i := range b.pix {
		if b.pix[i] != o.pix[i] {
			return false
		}
	}
	return true
}

// ColorModel implements image.Image.
func (b *Bitmap) ColorModel() color.Model { return PixelModel }

// Bounds implements image.Image.
func (b *Bitmap) Bounds() image.Rectangle { return image.Rect(0, 0, b.width, b.height) }

// At implements image.Image.
func (b *Bitmap) At(x, y int) color.Color {
	p, _ := b.PixelAt(x, y)
	return p
}

// Set implements draw.Image. Points outside the Bitmap are ignored.
func (b *Bitmap) Set(x, y int, c color.Color) {
	if b.in(x, y) {
		b.pix[y*b.width+x] = PixelModel.Convert(c).(Pixel)
	}
}

// Opaque reports whether the image is fully opaque, which is always true.
func (b *Bitmap) Opaque() bool { return true }

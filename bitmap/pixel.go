package bitmap

import "image/color"

// Pixel is a 24-bit color packed as 0x00RRGGBB.
type Pixel uint32

// Empty is the zero Pixel, black.
const Empty Pixel = 0

// RGB returns the Pixel with the given channels.
func RGB(r, g, b uint8) Pixel {
	return Pixel(r)<<16 | Pixel(g)<<8 | Pixel(b)
}

// R returns the red channel.
func (p Pixel) R() uint8 { return uint8(p >> 16) }

// G returns the green channel.
func (p Pixel) G() uint8 { return uint8(p >> 8) }

// B returns the blue channel.
func (p Pixel) B() uint8 { return uint8(p) }

// RGBA implements color.Color. A Pixel is always opaque.
func (p Pixel) RGBA() (r, g, b, a uint32) {
	r = uint32(p.R())
	r |= r << 8
	g = uint32(p.G())
	g |= g << 8
	b = uint32(p.B())
	b |= b << 8
	a = 0xffff
	return
}

// PixelModel converts any color.Color to a Pixel, discarding alpha.
var PixelModel = color.ModelFunc(pixelModel)

func pixelModel(c color.Color) color.Color {
	if p, ok := c.(Pixel); ok {
		return p
	}
	r, g, b, _ := c.RGBA()
	return RGB(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

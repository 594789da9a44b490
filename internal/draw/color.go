package draw

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is an opaque 24-bit framebuffer colour.
type RGB struct {
	R, G, B uint8
}

// Black is the cleared framebuffer colour.
var Black = RGB{}

// Hex builds an RGB from a 0xRRGGBB literal.
func Hex(v uint32) RGB {
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}

// FromColor converts any image colour, dropping alpha.
func FromColor(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	return RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}

// FromColorful converts a (possibly out of gamut) colorful value, clamping each channel.
func FromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}

// Colorful returns the colour as a colorful.Color for blending and shading.
func (c RGB) Colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Hex returns the colour as "#rrggbb".
func (c RGB) Hex() string {
	return c.Colorful().Hex()
}

// RGBA implements color.Color.
func (c RGB) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}.RGBA()
}

// Scale multiplies each channel by per-channel light factors and clamps the result.
func (c RGB) Scale(lr, lg, lb float64) RGB {
	cf := c.Colorful()
	return FromColorful(colorful.Color{R: cf.R * lr, G: cf.G * lg, B: cf.B * lb})
}

// Blend mixes c towards o by t in linear RGB.
func (c RGB) Blend(o RGB, t float64) RGB {
	r1, g1, b1 := c.Colorful().LinearRgb()
	r2, g2, b2 := o.Colorful().LinearRgb()
	return FromColorful(colorful.LinearRgb(r1+t*(r2-r1), g1+t*(g2-g1), b1+t*(b2-b1)))
}

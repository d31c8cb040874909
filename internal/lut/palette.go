package lut

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Palette maps 8-bit indices to packed 0xRRGGBB colours.
type Palette [256]uint32

// RGB packs three channels given as ints, clamping each to a byte.
func RGB(r, g, b int) uint32 {
	return uint32(Clamp(r, 0, 255))<<16 | uint32(Clamp(g, 0, 255))<<8 | uint32(Clamp(b, 0, 255))
}

// Stop is one anchor of a piecewise-linear ramp.
type Stop struct {
	At      int // palette index
	R, G, B int
}

// Ramp interpolates linearly between consecutive stops. Entries before the
// first stop take its colour, entries after the last take the last colour.
func Ramp(stops ...Stop) Palette {
	var p Palette
	if len(stops) == 0 {
		return p
	}
	for i := range p {
		switch {
		case i <= stops[0].At:
			p[i] = RGB(stops[0].R, stops[0].G, stops[0].B)
			continue
		case i >= stops[len(stops)-1].At:
			s := stops[len(stops)-1]
			p[i] = RGB(s.R, s.G, s.B)
			continue
		}
		for k := 1; k < len(stops); k++ {
			a, b := stops[k-1], stops[k]
			if i > b.At {
				continue
			}
			span := b.At - a.At
			t := i - a.At
			p[i] = RGB(
				a.R+(b.R-a.R)*t/span,
				a.G+(b.G-a.G)*t/span,
				a.B+(b.B-a.B)*t/span,
			)
			break
		}
	}
	return p
}

// Grey returns the identity grey ramp.
func Grey() Palette {
	var p Palette
	for i := range p {
		p[i] = RGB(i, i, i)
	}
	return p
}

// HSL converts hue, saturation and lightness given in 256ths to a
// packed colour. Hue 256 is a full turn.
func HSL(h, s, l int) uint32 {
	c := colorful.Hsl(float64(h)*360/256, float64(s)/256, float64(l)/256).Clamped()
	r, g, b := c.RGB255()
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// Brighten scales the HSV value of every entry from index `from` onwards by
// factor, saturating at full brightness.
func (p *Palette) Brighten(from int, factor float64) {
	for i := max(from, 0); i < len(p); i++ {
		c := colorful.Color{
			R: float64(p[i]>>16&0xff) / 255,
			G: float64(p[i]>>8&0xff) / 255,
			B: float64(p[i]&0xff) / 255,
		}
		h, s, v := c.Hsv()
		v *= factor
		if v > 1 {
			v = 1
		}
		r, g, b := colorful.Hsv(h, s, v).Clamped().RGB255()
		p[i] = uint32(r)<<16 | uint32(g)<<8 | uint32(b)
	}
}

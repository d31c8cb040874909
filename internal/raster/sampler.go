package raster

import "math"

// Bilinear samples tex at the fractional coordinate (fx, fy) with edges clamped.
// Channels are interpolated independently and rounded.
func Bilinear(tex *FrameBuffer, fx, fy float64) uint32 {
	w := tex.Width
	h := tex.Height
	if w == 0 || h == 0 {
		return 0
	}

	if fx < 0 {
		fx = 0
	}
	if fy < 0 {
		fy = 0
	}
	if fx > float64(w-1) {
		fx = float64(w - 1)
	}
	if fy > float64(h-1) {
		fy = float64(h - 1)
	}

	x0 := int(fx)
	y0 := int(fy)
	x1 := min(x0+1, w-1)
	y1 := min(y0+1, h-1)
	dx := fx - float64(x0)
	dy := fy - float64(y0)

	pix := tex.Pix

	// Four texels
	c00 := pix[y0*w+x0]
	c10 := pix[y0*w+x1]
	c01 := pix[y1*w+x0]
	c11 := pix[y1*w+x1]

	w00 := (1 - dx) * (1 - dy)
	w10 := dx * (1 - dy)
	w01 := (1 - dx) * dy
	w11 := dx * dy

	var out uint32
	for shift := 16; shift >= 0; shift -= 8 {
		v := float64(c00>>shift&0xff)*w00 + float64(c10>>shift&0xff)*w10 +
			float64(c01>>shift&0xff)*w01 + float64(c11>>shift&0xff)*w11
		out |= uint32(v+0.5) << shift
	}
	return out
}

// Nearest samples tex at (fx, fy) floored to whole texels, wrapping at the edges.
func Nearest(tex *FrameBuffer, fx, fy float64) uint32 {
	return tex.Wrapped(int(math.Floor(fx)), int(math.Floor(fy)))
}

// Package effects implements the demo kernels. Each effect owns its frame,
// tables and animation state; nothing is shared between instances.
package effects

import (
	"oldschool-fx/internal/fx"
	"oldschool-fx/internal/raster"
)

// canvas is embedded by every effect for the frame buffer and viewport.
type canvas struct {
	w, h int
	fb   *raster.FrameBuffer
}

// alloc validates the viewport and (re)allocates the frame.
func (c *canvas) alloc(w, h int) error {
	if err := fx.CheckViewport(w, h); err != nil {
		return err
	}
	c.w, c.h = w, h
	if c.fb == nil {
		c.fb = raster.NewFrameBuffer(w, h)
	} else {
		c.fb.Resize(w, h)
	}
	return nil
}

// Frame implements fx.Effect.
func (c *canvas) Frame() *raster.FrameBuffer { return c.fb }

// iabs is |v| for ints.
func iabs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// stretch copies src over dst with nearest-neighbour scaling. Effects tied to
// a fixed design canvas render at that size and stretch to the viewport.
func stretch(dst, src *raster.FrameBuffer) {
	if src.Width == dst.Width && src.Height == dst.Height {
		copy(dst.Pix, src.Pix)
		return
	}
	for y := 0; y < dst.Height; y++ {
		sy := y * src.Height / dst.Height
		row := src.Pix[sy*src.Width : (sy+1)*src.Width]
		out := dst.Pix[y*dst.Width : (y+1)*dst.Width]
		for x := range out {
			out[x] = row[x*src.Width/dst.Width]
		}
	}
}

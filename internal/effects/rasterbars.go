package effects

import (
	"math"

	"oldschool-fx/internal/fx"
	"oldschool-fx/internal/lut"
	"oldschool-fx/internal/raster"
)

const (
	barsWidth  = 320
	barsHeight = 240
)

// RasterBars draws two families of sine-driven vertical bars over a grey
// gradient. Every bar runs from its start row down to the bottom, so later
// rows overpaint earlier ones and the bars appear to twist.
type RasterBars struct {
	canvas
	view             *raster.FrameBuffer
	pal              lut.Palette
	offset1, offset2 int
}

func newRasterBars(fx.Options) fx.Effect { return &RasterBars{} }

func (r *RasterBars) Setup(w, h int) error {
	if err := r.alloc(w, h); err != nil {
		return err
	}
	for i := 0; i < 80; i++ {
		r.pal[i] = lut.RGB(i, i*2, i*3)
		r.pal[i+80] = lut.RGB(i, i*3, i*2)
	}
	for i := 160; i < 256; i++ {
		r.pal[i] = lut.RGB(i-160, i-160, i-160)
	}
	r.view = raster.NewFrameBuffer(barsWidth, barsHeight)
	r.offset1, r.offset2 = 0, 0
	return nil
}

// column paints x from row y to the bottom.
func (r *RasterBars) column(x, y int, c uint32) {
	r.view.FillRect(x, y, x+1, barsHeight, c)
}

func (r *RasterBars) Step() {
	col := 160.0
	const inc = 96.0 / barsHeight
	for y := 0; y < barsHeight; y++ {
		r.view.FillRect(0, y, barsWidth, y+1, r.pal[int(col)])
		col += inc
	}

	idx := 0
	for y := 0; y < barsHeight; y += 3 {
		a := float64(y+r.offset1) * 3.14 / 180
		b := float64(y+r.offset2) * 4.14 / 180
		d := int(150 + 60*math.Sin(a) + 50*math.Cos(b))
		for x := d; x < d+20; x++ {
			r.column(x, y, r.pal[idx])
		}
		d = int(145 + 100*math.Sin(b) + 50*math.Cos(b))
		for x := d; x < d+35; x++ {
			r.column(x, y+3, r.pal[idx+80])
		}
		idx++
	}
	r.offset1 += 2
	r.offset2 += 2
	stretch(r.fb, r.view)
}

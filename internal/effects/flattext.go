package effects

import (
	"fmt"
	"math"

	"oldschool-fx/internal/fx"
	"oldschool-fx/internal/lut"
	"oldschool-fx/internal/raster"
	"oldschool-fx/internal/texture"
)

const flatAltitude = 100

// FlatText projects a 256² texture onto a rotating floor that fills the
// lower half of the screen and scrolls away from the viewer.
type FlatText struct {
	canvas
	textures   texture.Provider
	tex        *raster.FrameBuffer
	sine, cose lut.Table // 256 entries, ×256
	ang        int
	xd, yd     int
}

func newFlatText(o fx.Options) fx.Effect { return &FlatText{textures: o.Provider()} }

func (f *FlatText) Setup(w, h int) error {
	if err := f.alloc(w, h); err != nil {
		return err
	}
	tex, err := texture.Sized(f.textures, "flat", 256, 256)
	if err != nil {
		return fmt.Errorf("flattext: %w", err)
	}
	f.tex = tex
	f.sine = lut.Build(256, func(i int) int { return int(math.Sin(float64(i)*0.02454) * 256) })
	f.cose = lut.Build(256, func(i int) int { return int(math.Cos(float64(i)*0.02454) * 256) })
	f.ang, f.xd, f.yd = 0, 0, 0
	return nil
}

func (f *FlatText) Step() {
	const a = flatAltitude * 5 / 8
	const b = flatAltitude * 100
	f.ang += 2
	f.yd += 5
	ang := f.ang & 255
	cs, sn := f.cose[ang], f.sine[ang]

	hw, hh := f.w/2, f.h/2
	for y := 0; y < hh; y++ {
		row := f.fb.Pix[(f.h-y-1)*f.w:]
		dy := y - hh // never zero
		v := b / dy
		for x := 0; x < f.w; x++ {
			u := a * (x - hw) / dy
			un := (u*cs-v*sn)>>8 + f.xd
			vn := (u*sn+v*cs)>>8 + f.yd
			row[x] = f.tex.Pix[(un+vn<<8)&0xffff]
		}
	}
}

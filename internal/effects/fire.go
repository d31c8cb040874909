package effects

import (
	"math/rand/v2"

	"oldschool-fx/internal/fx"
	"oldschool-fx/internal/lut"
	"oldschool-fx/internal/raster"
)

// Fire reseeds the bottom row with random heat and lets every cell above
// take a damped average of the cells below it, sweeping top to bottom.
type Fire struct {
	canvas
	rng  *rand.Rand
	heat *raster.IndexBuffer
	pal  lut.Palette
}

func newFire(o fx.Options) fx.Effect { return &Fire{rng: o.Rand()} }

func (f *Fire) Setup(w, h int) error {
	if err := f.alloc(w, h); err != nil {
		return err
	}
	f.heat = raster.NewIndexBuffer(w, h)
	for i := range f.pal {
		// hue from red to yellow, lightness saturating halfway up
		f.pal[i] = lut.HSL(i/3, 255, min(255, i*2))
	}
	return nil
}

func (f *Fire) Step() {
	w, h := f.w, f.h
	cells := f.heat.Idx
	for x := 0; x < w; x++ {
		cells[(h-1)*w+x] = uint8(f.rng.IntN(100))
	}
	for y := 0; y < h-1; y++ {
		below := ((y + 1) % h) * w
		below2 := ((y + 2) % h) * w
		for x := 0; x < w; x++ {
			sum := int(cells[below+lut.Wrap(x-1, w)]) + int(cells[below+x]) +
				int(cells[below+(x+1)%w]) + int(cells[below2+x])
			cells[y*w+x] = uint8(sum * 32 / 129)
		}
	}
	f.heat.Resolve(f.fb, f.pal[:])
}

// Heat exposes the palette-index grid.
func (f *Fire) Heat() *raster.IndexBuffer { return f.heat }

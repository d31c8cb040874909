package effects

import (
	"fmt"
	"math"

	"oldschool-fx/internal/fx"
	"oldschool-fx/internal/texture"
)

const wobbleWhite = 0xFFFFFF

// Wobble rotates a centred picture with a shear that varies per column,
// so the picture seems to flap around its vertical axis.
type Wobble struct {
	canvas
	textures         texture.Provider
	src              []uint32 // picture centred on white, w×h
	prm1, prm2, prm3 float64
	dk               float64 // degrees
	aci              float64 // radians
}

func newWobble(o fx.Options) fx.Effect { return &Wobble{textures: o.Provider()} }

func (b *Wobble) Setup(w, h int) error {
	if err := b.alloc(w, h); err != nil {
		return err
	}
	pic, err := texture.Sized(b.textures, "isle", max(w/2, 1), max(h/2, 1))
	if err != nil {
		return fmt.Errorf("wobble: %w", err)
	}
	b.prm1, b.prm2, b.prm3 = 0.6, 2.0, 0.5
	b.dk, b.aci = 0, 0

	icx, icy := pic.Width/2, pic.Height/2
	cx, cy := w/2, h/2
	b.src = make([]uint32, w*h)
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			c := uint32(wobbleWhite)
			if i > cx-icx && i < cx+icx && j > cy-icy && j < cy+icy {
				c = pic.At(i-cx+icx, j-cy+icy)
			}
			b.src[j*w+i] = c
		}
	}
	return nil
}

func (b *Wobble) Step() {
	w, h := b.w, b.h
	cx, cy := w/2, h/2
	sb := math.Sin(b.aci)
	for i := 0; i < w; i++ {
		var a float64
		if cx > 0 {
			a = math.Cos(b.aci + math.Cos(math.Pi/float64(cx)*b.prm1*float64(iabs(cx-i))))
		} else {
			a = math.Cos(b.aci + 1)
		}
		for j := 0; j < h; j++ {
			di, dj := float64(i-cx), float64(j-cy)
			ix := cx + int(math.Round(di*a*b.prm2-dj*sb))
			iy := cy + int(math.Round(di*sb*b.prm3+dj*a))
			c := uint32(wobbleWhite)
			if ix >= 0 && iy >= 0 && ix < w && iy < h {
				c = b.src[iy*w+ix]
			}
			b.fb.Pix[j*w+i] = c
		}
	}
	b.dk += 2
	if b.dk >= 360 {
		b.dk = 0
	}
	b.aci = b.dk * math.Pi / 180
}

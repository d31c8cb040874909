package effects

import (
	"fmt"
	"math/rand/v2"

	"oldschool-fx/internal/fx"
	"oldschool-fx/internal/raster"
	"oldschool-fx/internal/texture"
)

const rippleRadius = 3

// Ripple runs the classic two-buffer water height simulation and refracts
// a background picture through the surface slope.
type Ripple struct {
	canvas
	textures texture.Provider
	rng      *rand.Rand
	tex      *raster.FrameBuffer
	heights  []int16 // two maps of w×(h+2) with guard rows, toggled each frame
	oldind   int
	newind   int
	// Rain disturbs a random point on roughly one step in Rain. Zero disables it.
	Rain int
}

func newRipple(o fx.Options) fx.Effect {
	return &Ripple{textures: o.Provider(), rng: o.Rand(), Rain: 4}
}

func (r *Ripple) Setup(w, h int) error {
	if err := r.alloc(w, h); err != nil {
		return err
	}
	tex, err := texture.Sized(r.textures, "ocean", w, h)
	if err != nil {
		return fmt.Errorf("ripple: %w", err)
	}
	r.tex = tex
	r.heights = make([]int16, w*(h+2)*2)
	r.oldind = w
	r.newind = w * (h + 3)
	copy(r.fb.Pix, tex.Pix)
	return nil
}

// Disturb drops a stone at (x, y), raising the surface in a small square.
func (r *Ripple) Disturb(x, y int) {
	for j := y - rippleRadius; j < y+rippleRadius; j++ {
		for k := x - rippleRadius; k < x+rippleRadius; k++ {
			if j >= 0 && j < r.h && k >= 0 && k < r.w {
				r.heights[r.oldind+j*r.w+k] += 512
			}
		}
	}
}

func (r *Ripple) Step() {
	if r.Rain > 0 && r.rng.IntN(r.Rain) == 0 {
		r.Disturb(r.rng.IntN(r.w), r.rng.IntN(r.h))
	}

	r.oldind, r.newind = r.newind, r.oldind
	w, h := r.w, r.h
	hw, hh := w>>1, h>>1
	m := r.heights
	src := r.tex.Pix

	mapind := r.oldind
	i := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			data := int16((int(m[mapind-w]) + int(m[mapind+w]) + int(m[mapind-1]) + int(m[mapind+1])) >> 1)
			data -= m[r.newind+i]
			data -= data >> 5
			m[r.newind+i] = data

			data = 1024 - data
			a := (x-hw)*int(data)/1024 + hw
			b := (y-hh)*int(data)/1024 + hh
			a = min(max(a, 0), w-1)
			b = min(max(b, 0), h-1)
			r.fb.Pix[i] = src[a+b*w]
			mapind++
			i++
		}
	}
}

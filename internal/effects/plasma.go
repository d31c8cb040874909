package effects

import (
	"math"

	"oldschool-fx/internal/fx"
	"oldschool-fx/internal/lut"
)

// Plasma sums shifted cosines along each axis and multiplies the two sums
// into a palette index.
type Plasma struct {
	canvas
	cos   lut.Table
	pal   lut.Palette
	phase int
}

func newPlasma(fx.Options) fx.Effect { return &Plasma{phase: 1} }

func (p *Plasma) Setup(w, h int) error {
	if err := p.alloc(w, h); err != nil {
		return err
	}
	// five full turns; wider viewports wrap through At
	p.cos = lut.Build(1800, func(i int) int {
		return int(math.Cos(math.Pi*float64(i)/180) * 1024)
	})
	p.pal = plasmaPalette()
	return nil
}

// plasmaPalette walks r, g and b up then down in six ramps of 42 entries.
func plasmaPalette() lut.Palette {
	var pal lut.Palette
	r, g, b := 0, 0, 0
	deltas := [6][3]int{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {-1, 0, 0}, {0, -1, 0}, {0, 0, -1}}
	i := 0
	for _, d := range deltas {
		for k := 0; k < 42; k++ {
			pal[i] = lut.RGB(r*4, g*4, b*4)
			r, g, b = r+d[0], g+d[1], b+d[2]
			i++
		}
	}
	return pal
}

func (p *Plasma) Step() {
	p.phase += 2
	if p.phase > 360 {
		p.phase = 0
	}
	p.draw()
}

func (p *Plasma) draw() {
	c := p.cos
	ph := p.phase
	iy := make([]int, p.h)
	for y := range iy {
		iy[y] = 75 + ((c.At(y+(ph<<1))<<1)+c.At((y<<1)+(ph>>1))+(c.At(y+ph)<<1))>>5
	}
	for x := 0; x < p.w; x++ {
		ix := 75 + (c.At((x<<1)+(ph>>1))+c.At(x+(ph<<1))+(c.At((x>>1)+ph)<<1))>>6
		for y := 0; y < p.h; y++ {
			idx := iabs((ix * iy[y] >> 5) % 256)
			p.fb.Pix[y*p.w+x] = p.pal[idx]
		}
	}
}

package effects

import (
	"math"

	"oldschool-fx/internal/fx"
	"oldschool-fx/internal/raster"
)

const (
	moireSpacing = 6   // ring radius step (diameter step 12)
	moireHalfPen = 1.5 // half of the 3 px pen
)

// Moire overlays a fixed set of concentric rings with a second, larger set
// travelling on a Lissajous path.
type Moire struct {
	canvas
	fixed []uint8 // coverage of the centred rings, 255 = black
	t     float64
}

func newMoire(fx.Options) fx.Effect { return &Moire{} }

func (m *Moire) Setup(w, h int) error {
	if err := m.alloc(w, h); err != nil {
		return err
	}
	m.t = 0
	m.fixed = make([]uint8, w*h)
	limit := float64(max(w, h))
	cx, cy := float64(w/2), float64(h/2)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.fixed[y*w+x] = ringCoverage(math.Hypot(float64(x)-cx, float64(y)-cy), limit)
		}
	}
	m.draw()
	return nil
}

// ringCoverage returns how much of a pixel at distance d from the centre is
// covered by the nearest ring whose radius is below limit.
func ringCoverage(d, limit float64) uint8 {
	k := math.Round(d / moireSpacing)
	if k*moireSpacing >= limit {
		k = math.Floor((limit - 1e-9) / moireSpacing)
	}
	dist := math.Abs(d - k*moireSpacing)
	cov := moireHalfPen + 0.5 - dist
	switch {
	case cov <= 0:
		return 0
	case cov >= 1:
		return 255
	}
	return uint8(cov * 255)
}

func (m *Moire) Step() {
	m.t += 0.02
	m.draw()
}

func (m *Moire) draw() {
	w, h := m.w, m.h
	// the moving set is a 4w×3h image centred at (w, h), drawn at (posX, posY)
	posX := int(100 + 50*math.Cos(m.t) + 50*math.Cos(3*m.t) - float64(w))
	posY := int(100 + 50*math.Sin(m.t) + 40*math.Sin(math.Sqrt2*m.t) - float64(h))
	cx, cy := float64(posX+w), float64(posY+h)
	limit := float64(max(4*w, 3*h))

	for y := 0; y < h; y++ {
		inY := y >= posY && y < posY+3*h
		dy := float64(y) - cy
		for x := 0; x < w; x++ {
			cov := m.fixed[y*w+x]
			if inY && x >= posX && x < posX+4*w {
				cov = max(cov, ringCoverage(math.Hypot(float64(x)-cx, dy), limit))
			}
			v := 255 - cov
			m.fb.Pix[y*w+x] = raster.RGB(v, v, v)
		}
	}
}

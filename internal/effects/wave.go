package effects

import (
	"fmt"
	"math"

	"oldschool-fx/internal/fx"
	"oldschool-fx/internal/glyph"
)

const (
	waveCols  = 30
	waveLines = 20
	waveKinds = 4
	waveStep  = 0.07
	waveWhite = 0xFFFFFF
)

// Wave moves a 30×20 grid of 2×2 dots along one of four motion patterns:
// two grid wobbles, a spiral and a set of counter-rotating rings.
type Wave struct {
	canvas
	kind     int
	position float64
	px, py   int // top-left of the resting grid
	cx, cy   int
}

func newWave(fx.Options) fx.Effect { return &Wave{} }

func (v *Wave) Setup(w, h int) error {
	if err := v.alloc(w, h); err != nil {
		return err
	}
	v.position = 0
	v.px = int(0.5*float64(w-(waveCols-1)*15)) - 3
	v.py = int(0.5*float64(h-(waveLines-1)*15)) - 3
	v.cx = int(0.5 * float64(w))
	v.cy = int(0.5 * float64(h))
	return nil
}

// SetKind selects a motion pattern (taken modulo four) and restarts it.
func (v *Wave) SetKind(k int) {
	v.kind = ((k % waveKinds) + waveKinds) % waveKinds
	v.position = 0
}

// Kind returns the selected motion pattern.
func (v *Wave) Kind() int { return v.kind }

// ring maps a column of the rings pattern to its ring number and direction.
func ring(i int) (k int, dir float64) {
	bounds := [...]int{2, 5, 8, 12, 17, 23, 31}
	for k, b := range bounds {
		if i < b {
			if k%2 == 0 {
				return k, 1
			}
			return k, -1
		}
	}
	return 0, 0
}

func (v *Wave) dot(i, j int) (float64, float64) {
	p := v.position
	fi, fj := float64(i), float64(j)
	switch v.kind {
	case 0:
		x := float64(v.px+15*i) + 10*math.Cos(p*(1+0.01*fi+0.015*fj))
		y := float64(v.py+15*j) - 10*math.Sin(p*(1+0.0123*fj+0.012*fi))
		return x, y
	case 1:
		x := float64(v.px+15*i) + 20*math.Sin(p*(1+0.0059*fj+0.00639*fi))*math.Cos(p+0.3*fi+0.3*fj)
		y := float64(v.py+15*j) - 20*math.Cos(p*(1-0.073*fj+0.00849*fi))*math.Sin(p+0.23*fj+0.389*fi)
		return x, y
	case 2:
		a := 0.01*(40-fi)*p + fj
		return float64(v.cx) + 14*fi*math.Cos(a), float64(v.cy) - 14*fi*math.Sin(a)
	}
	k, dir := ring(i)
	a := 0.1*p*dir + fj + 0.786*fi
	r := 20 * float64(k+4)
	return float64(v.cx) + r*math.Cos(a), float64(v.cy) - r*math.Sin(a)
}

func (v *Wave) Step() {
	v.fb.Fill(0)
	v.position += waveStep
	for i := 0; i < waveCols; i++ {
		for j := 0; j < waveLines; j++ {
			dx, dy := v.dot(i, j)
			x, y := int(dx), int(dy)
			v.fb.FillRect(x, y, x+2, y+2, waveWhite)
		}
	}
	glyph.Draw(v.fb, 10, 10, fmt.Sprintf("pattern %d of %d", v.kind+1, waveKinds), waveWhite, 1)
}

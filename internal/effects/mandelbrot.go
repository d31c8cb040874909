package effects

import (
	"oldschool-fx/internal/fx"
)

const (
	mandelIter = 570
	mandelZoom = 150.0
	// zoom target on the seahorse valley
	mandelTargetX = -0.743643887037151
	mandelTargetY = 0.13182590420533
	mandelRate    = 1.02
	mandelDepth   = 150.0 * 1e5
)

// Mandelbrot renders the escape-time set. Frame zero is the classic static
// view; every step then zooms a little further toward a fixed point and the
// zoom restarts once doubles run out of useful precision.
type Mandelbrot struct {
	canvas
	zoom float64
}

func newMandelbrot(fx.Options) fx.Effect { return &Mandelbrot{} }

func (m *Mandelbrot) Setup(w, h int) error {
	if err := m.alloc(w, h); err != nil {
		return err
	}
	m.zoom = mandelZoom
	m.draw()
	return nil
}

func (m *Mandelbrot) Step() {
	m.zoom *= mandelRate
	if m.zoom > mandelDepth {
		m.zoom = mandelZoom
	}
	m.draw()
}

func (m *Mandelbrot) draw() {
	// the view centre slides from the origin to the target as the zoom grows
	f := 1 - mandelZoom/m.zoom
	ox, oy := mandelTargetX*f, mandelTargetY*f
	for y := 0; y < m.h; y++ {
		cy := float64(y-m.h/2)/m.zoom + oy
		for x := 0; x < m.w; x++ {
			cx := float64(x-m.w/2)/m.zoom + ox
			iter := escape(cx, cy)
			m.fb.Pix[y*m.w+x] = uint32(iter|iter<<8) & 0xffffff
		}
	}
}

// escape counts down from mandelIter while the orbit stays bounded.
func escape(cx, cy float64) int {
	var zx, zy float64
	iter := mandelIter
	for zx*zx+zy*zy < 4 && iter > 0 {
		zx, zy = zx*zx-zy*zy+cx, 2*zx*zy+cy
		iter--
	}
	return iter
}

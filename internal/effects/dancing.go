package effects

import (
	"math"

	"oldschool-fx/internal/fx"
	"oldschool-fx/internal/lut"
	"oldschool-fx/internal/mathutil"
	"oldschool-fx/internal/raster"
)

const (
	danceCellW   = 15
	danceCellH   = 10
	danceShear   = 10
	danceLightZ  = 10
	danceFalloff = 45.0
	danceWhite   = 0xFFFFFF
)

// danceLight is the colour of the moving light; the floor itself is black.
var danceLight = mathutil.Vec3{255, 255, 0}

// Dancing shades an isometric grid whose points ride a radial sine wave.
// Each quad is lit by the angle between its depth edge and the direction
// to a light circling the screen, attenuated by distance.
type Dancing struct {
	canvas
	painter   *raster.Painter
	pts       []mathutil.Vec3 // pw×ph, indexed [x*ph+y]
	pw, ph    int
	xc        int
	cx, cy    float64
	light     mathutil.Vec3
	dec, decl float64
}

func newDancing(fx.Options) fx.Effect { return &Dancing{} }

func (d *Dancing) Setup(w, h int) error {
	if err := d.alloc(w, h); err != nil {
		return err
	}
	d.painter = raster.NewPainter(w, h)
	d.pw, d.ph = w/danceCellW, h/danceCellH
	d.pts = make([]mathutil.Vec3, d.pw*d.ph)
	d.xc = d.ph / 2 * danceShear
	d.cx = float64(danceCellW*d.pw/2 + d.xc)
	d.cy = float64(danceCellH * d.ph / 2)
	d.dec, d.decl = 0, 0
	d.advance()
	return nil
}

func (d *Dancing) point(x, y int) mathutil.Vec3 { return d.pts[x*d.ph+y] }

// advance moves the wave and the light one tick.
func (d *Dancing) advance() {
	d.dec += 0.25
	d.decl += 0.05
	d.light = mathutil.Vec3{
		d.cx + math.Sin(d.decl)*float64(d.w)/2,
		d.cy + math.Cos(d.decl)*float64(d.h)/2,
		danceLightZ,
	}
	wcx, wcy := d.pw/2, d.ph/2
	for x := 0; x < d.pw; x++ {
		for y := 0; y < d.ph; y++ {
			r := math.Hypot(float64(x-wcx), float64(y-wcy))
			z := -math.Sin(d.dec+r+danceCellH) * danceShear
			d.pts[x*d.ph+y] = mathutil.Vec3{
				float64(x*danceCellW + y*danceShear),
				float64(y*danceCellH) - z,
				z,
			}
		}
	}
}

// shade returns the colour of the quad with corner (x, y).
func (d *Dancing) shade(x, y int) uint32 {
	c := mathutil.Centroid(d.point(x, y), d.point(x+1, y), d.point(x+1, y+1), d.point(x, y+1))
	v := d.light.Sub(c)
	u := d.point(x, y+1).Sub(d.point(x, y))
	dist := v.Len()
	a := u.Angle(v)

	var ch [3]int
	for i, l := range danceLight {
		switch {
		case l == 0:
		case dist == 0:
			ch[i] = 255
		default:
			ch[i] = lut.Clamp(int((math.Pi-a)*l/(dist/danceFalloff)), 0, 255)
		}
	}
	return lut.RGB(ch[0], ch[1], ch[2])
}

func (d *Dancing) Step() {
	d.advance()
	d.fb.Fill(danceWhite)
	xc := float64(d.xc)
	quad := make([][2]float64, 4)
	for x := 0; x < d.pw-1; x++ {
		for y := 0; y < d.ph-1; y++ {
			for k, p := range [4]mathutil.Vec3{d.point(x, y), d.point(x+1, y), d.point(x+1, y+1), d.point(x, y+1)} {
				quad[k] = [2]float64{math.Trunc(p[0] - xc), math.Trunc(p[1])}
			}
			d.painter.FillPolygon(d.fb, quad, d.shade(x, y))
		}
	}
}

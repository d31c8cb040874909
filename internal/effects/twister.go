package effects

import (
	"math"

	"oldschool-fx/internal/fx"
	"oldschool-fx/internal/lut"
	"oldschool-fx/internal/raster"
)

const (
	twistWidth  = 640
	twistHeight = 480
	twistTable  = 256
)

// Twister renders a rotating square column. For each table entry the two
// visible faces are bounded by edge1..edge2 and edge2..edge3, and every
// screen row picks an entry through a torsion table.
type Twister struct {
	canvas
	view                *raster.FrameBuffer
	edge1, edge2, edge3 [twistTable]int
	torsion             [twistTable]float64
	pal                 lut.Palette
	roll                int
}

func newTwister(fx.Options) fx.Effect { return &Twister{} }

func (t *Twister) Setup(w, h int) error {
	if err := t.alloc(w, h); err != nil {
		return err
	}
	for i := range t.pal {
		t.pal[i] = lut.RGB(i, i/2, i/4)
	}
	for i := 0; i < twistTable; i++ {
		var x [4]int
		least := 0
		for k := range x {
			a := float64(k)*math.Pi/2 + float64(i)*(3*math.Pi/twistTable)
			x[k] = twistWidth/2 - int((twistWidth/2-20)*math.Cos(a))
			if x[k] < x[least] {
				least = k
			}
		}
		t.edge1[i] = x[least]
		t.edge2[i] = x[(least+1)&3]
		t.edge3[i] = x[(least+2)&3]
		fi := float64(i)
		t.torsion[i] = 1.2 * math.Sin(fi*14*math.Pi/twistTable) * math.Cos(fi*2*math.Pi/twistTable)
	}
	if t.view == nil {
		t.view = raster.NewFrameBuffer(twistWidth, twistHeight)
	}
	t.roll = 0
	return nil
}

// face stretches one 64-texel XOR slice over size pixels from x = begin.
func (t *Twister) face(begin, size, y int) {
	if size < 0 {
		return
	}
	j := y & 63
	x := begin
	if size == 0 {
		t.view.Set(x, y, t.pal[texel(0, j)])
		return
	}
	rap := 64 / float64(size)
	for k := 0.0; k < 64; k += rap {
		t.view.Set(x, y, t.pal[texel(int(k), j)])
		x++
	}
}

func texel(i, j int) int {
	c := (i ^ j) << 2
	if c&64 == 0 {
		c ^= 64
	}
	return c
}

func (t *Twister) Step() {
	t.view.Fill(0)
	t.roll = (t.roll + 1) % (twistTable - 1)
	for y := 0; y < twistHeight; y++ {
		i := int(float64(t.roll)+float64(y)*t.torsion[t.roll]) & (twistTable - 1)
		e1, e2, e3 := t.edge1[i], t.edge2[i], t.edge3[i]
		t.face(e1, e2-e1, y)
		t.face(e2, e3-e2, y)
	}
	stretch(t.fb, t.view)
}

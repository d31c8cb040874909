package effects

import (
	"fmt"
	"math"

	"oldschool-fx/internal/fx"
	"oldschool-fx/internal/raster"
	"oldschool-fx/internal/texture"
)

const (
	wormWidth  = 640
	wormHeight = 480
	wormSpokes = 2400
	wormTex    = 15
)

// Wormhole projects rings of spokes into a fixed table of texel indices and
// animates by rolling the 15×15 texture rather than the table.
type Wormhole struct {
	canvas
	textures texture.Provider
	table    []uint8 // wormWidth×wormHeight texel indices
	tex      [wormTex * wormTex]uint32
	view     *raster.FrameBuffer
}

func newWormhole(o fx.Options) fx.Effect { return &Wormhole{textures: o.Provider()} }

func (m *Wormhole) Setup(w, h int) error {
	if err := m.alloc(w, h); err != nil {
		return err
	}
	src, err := texture.Sized(m.textures, "wormhole", wormTex, wormTex)
	if err != nil {
		return fmt.Errorf("wormhole: %w", err)
	}
	// stored column-major; the rolls below work on this order
	for x := 0; x < wormTex; x++ {
		for y := 0; y < wormTex; y++ {
			m.tex[x*wormTex+y] = src.Pix[y*wormTex+x]
		}
	}
	if m.table == nil {
		m.table = wormTable()
		m.view = raster.NewFrameBuffer(wormWidth, wormHeight)
	}
	return nil
}

func wormTable() []uint8 {
	const xc, yc = wormWidth / 2, wormHeight/2 - wormHeight/4
	table := make([]uint8, wormWidth*wormHeight)
	var cos, sin [wormSpokes]float64
	for i := range cos {
		a := 2 * math.Pi * float64(i) / wormSpokes
		cos[i], sin[i] = math.Cos(a), math.Sin(a)
	}
	for j := 1; j <= wormSpokes; j++ {
		z := -1 + math.Log(2*float64(j)/wormSpokes)
		rx := float64(wormWidth * j / wormSpokes)
		ry := float64(wormHeight * j / wormSpokes)
		v := uint8(j / 7 % wormTex * wormTex)
		for i := 0; i < wormSpokes; i++ {
			x := rx*cos[i] + xc
			y := ry*sin[i] - 25*z + yc
			if x >= 0 && x < wormWidth && y >= 0 && y < wormHeight {
				table[int(x)+int(y)*wormWidth] = uint8(i/8%wormTex) + v
			}
		}
	}
	return table
}

// roll moves every texel one row up and each column two texels along.
func (m *Wormhole) roll() {
	t := &m.tex
	var reg [wormTex]uint32
	copy(reg[:], t[:wormTex])
	copy(t[:], t[wormTex:])
	copy(t[wormTex*(wormTex-1):], reg[:])
	for range 2 {
		for k := 0; k < wormTex; k++ {
			col := t[k*wormTex : (k+1)*wormTex]
			first := col[0]
			copy(col, col[1:])
			col[wormTex-1] = first
		}
	}
}

func (m *Wormhole) Step() {
	for i, v := range m.table {
		m.view.Pix[i] = m.tex[v]
	}
	m.roll()
	stretch(m.fb, m.view)
}

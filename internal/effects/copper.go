package effects

import (
	"math"

	"oldschool-fx/internal/fx"
	"oldschool-fx/internal/lut"
)

const copperLines = 15

// copperShades is the 15-line intensity profile shared by every bar.
var copperShades = [copperLines]int{
	0x22, 0x44, 0x66, 0x88, 0xaa, 0xcc, 0xee, 0xff, 0xee, 0xcc, 0xaa, 0x88, 0x66, 0x44, 0x22,
}

// Copper bobs twelve 15-line bars up and down a sine table. Bars are drawn
// back to front: four blue, four white, then four red on top.
type Copper struct {
	canvas
	sin    lut.Table // 360 entries, centred on the viewport
	bars   [3][copperLines]uint32
	phases [12]int
}

func newCopper(fx.Options) fx.Effect { return &Copper{} }

func (c *Copper) Setup(w, h int) error {
	if err := c.alloc(w, h); err != nil {
		return err
	}
	centre := h >> 1
	c.sin = lut.Build(360, func(i int) int {
		return int(float64(centre) + math.Sin(float64(i)*0.0174532)*100)
	})
	for i, v := range copperShades {
		c.bars[0][i] = lut.RGB(0, 0, v)
		c.bars[1][i] = lut.RGB(v, v, v)
		c.bars[2][i] = lut.RGB(v, 0, 0)
	}
	// back to front; each colour trails its leader by 8, 16 and 24 degrees
	for i := range c.phases {
		c.phases[i] = 8 * (i + 1)
	}
	return nil
}

func (c *Copper) Step() {
	c.fb.Fill(0)
	for i := range c.phases {
		y := c.sin[c.phases[i]]
		c.phases[i] = (c.phases[i] + 2) % 360
		for _, col := range c.bars[i/4] {
			c.fb.FillRect(0, y, c.w, y+1, col)
			y++
		}
	}
}

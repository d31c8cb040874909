package effects

import (
	"fmt"
	"math"

	"oldschool-fx/internal/fx"
	"oldschool-fx/internal/lut"
	"oldschool-fx/internal/raster"
	"oldschool-fx/internal/texture"
)

// Bump lights a height map with a point light circling the centre. The
// height gradient minus the light direction indexes a radial environment
// map whose value selects a blue-white palette entry.
type Bump struct {
	canvas
	textures texture.Provider
	height   []int // red channel of the bump texture
	env      [256 * 256]uint8
	shade    *raster.IndexBuffer
	pal      lut.Palette
	t        float64
	lx, ly   int
}

func newBump(o fx.Options) fx.Effect { return &Bump{textures: o.Provider()} }

func (b *Bump) Setup(w, h int) error {
	if err := b.alloc(w, h); err != nil {
		return err
	}
	src, err := texture.Sized(b.textures, "bump", w, h)
	if err != nil {
		return fmt.Errorf("bump: %w", err)
	}
	b.height = make([]int, w*h)
	for i, c := range src.Pix {
		b.height[i] = int(c >> 16 & 0xff)
	}

	diag := math.Sqrt(128*128 + 128*128)
	for y := 0; y < 256; y++ {
		for x := 0; x < 256; x++ {
			d := math.Hypot(float64(x-128), float64(y-128))
			b.env[y*256+x] = uint8(255 - 255*d/diag)
		}
	}
	for i := 64; i < 128; i++ {
		b.pal[i] = lut.RGB(0, 0, (i-64)*4)
	}
	for i := 128; i < 256; i++ {
		b.pal[i] = lut.RGB((i-128)*2, (i-128)*2, 255)
	}
	b.shade = raster.NewIndexBuffer(w, h)
	b.t = 0
	b.moveLight()
	return nil
}

func (b *Bump) moveLight() {
	b.t += 0.1
	b.lx = int(float64(b.w/2) + 80*math.Cos(b.t))
	b.ly = int(float64(b.h/2) + 80*math.Sin(b.t))
}

func (b *Bump) Step() {
	w := b.w
	for y := 1; y < b.h-1; y++ {
		for x := 1; x < w-1; x++ {
			i := y*w + x
			dx := b.height[i+1] - b.height[i-1] - (b.lx - x)
			dy := b.height[i+w] - b.height[i-w] - (b.ly - y)
			if dx <= -128 || dx >= 128 || dy <= -128 || dy >= 128 {
				dx, dy = -128, -128
			}
			b.shade.Idx[i] = b.env[(dx+128)+256*(dy+128)]
		}
	}
	b.moveLight()
	b.shade.Resolve(b.fb, b.pal[:])
}

package effects

import (
	"fmt"
	"math"

	"oldschool-fx/internal/fx"
	"oldschool-fx/internal/lut"
	"oldschool-fx/internal/raster"
	"oldschool-fx/internal/texture"
)

const (
	twirlRadius = 100
	twirlLimit  = 15.7 // 5π
	twirlStep   = 0.1
)

// Twirl rotates the picture inside a disc by an angle that falls off
// linearly to zero at the rim, sampling the source bilinearly.
type Twirl struct {
	canvas
	textures texture.Provider
	src      *raster.FrameBuffer
	angle    float64
	sens     float64
}

func newTwirl(o fx.Options) fx.Effect { return &Twirl{textures: o.Provider()} }

func (t *Twirl) Setup(w, h int) error {
	if err := t.alloc(w, h); err != nil {
		return err
	}
	src, err := texture.Sized(t.textures, "flower", w, h)
	if err != nil {
		return fmt.Errorf("twirl: %w", err)
	}
	t.src = src
	t.angle = 0
	t.sens = twirlStep
	return nil
}

// inverse maps an output pixel to its source coordinate.
func (t *Twirl) inverse(x, y int) (float64, float64) {
	cx, cy := float64(t.w)*0.5, float64(t.h)*0.5
	dx, dy := float64(x)-cx, float64(y)-cy
	d2 := dx*dx + dy*dy
	if d2 > twirlRadius*twirlRadius {
		return float64(x), float64(y)
	}
	d := math.Sqrt(d2)
	a := math.Atan2(dy, dx) + t.angle*(twirlRadius-d)/twirlRadius
	return cx + d*math.Cos(a), cy + d*math.Sin(a)
}

func (t *Twirl) Step() {
	for y := 0; y < t.h; y++ {
		for x := 0; x < t.w; x++ {
			sx, sy := t.inverse(x, y)
			t.fb.Pix[y*t.w+x] = raster.Bilinear(t.src, sx, sy)
		}
	}
	t.angle += t.sens
	if t.angle < -twirlLimit {
		t.sens = twirlStep
	}
	if t.angle > twirlLimit {
		t.sens = -twirlStep
	}
}

// Block pixelates the picture with square cells whose side swings between
// one pixel and a quarter of the viewport width.
type Block struct {
	canvas
	textures texture.Provider
	src      *raster.FrameBuffer
	size     int
	sens     int
}

func newBlock(o fx.Options) fx.Effect { return &Block{textures: o.Provider()} }

func (b *Block) Setup(w, h int) error {
	if err := b.alloc(w, h); err != nil {
		return err
	}
	src, err := texture.Sized(b.textures, "flower", w, h)
	if err != nil {
		return fmt.Errorf("block: %w", err)
	}
	b.src = src
	b.size = 1
	b.sens = 1
	return nil
}

// pixelate averages every size×size cell of src into fb.
func (b *Block) pixelate(size int) {
	w, h := b.w, b.h
	for y := 0; y < h; y += size {
		for x := 0; x < w; x += size {
			bw, bh := min(size, w-x), min(size, h-y)
			var r, g, bl int
			for by := 0; by < bh; by++ {
				for bx := 0; bx < bw; bx++ {
					c := b.src.Pix[(y+by)*w+x+bx]
					r += int(c >> 16 & 0xff)
					g += int(c >> 8 & 0xff)
					bl += int(c & 0xff)
				}
			}
			n := bw * bh
			b.fb.FillRect(x, y, x+bw, y+bh, lut.RGB(r/n, g/n, bl/n))
		}
	}
}

func (b *Block) Step() {
	b.pixelate(b.size)
	b.size += b.sens
	if limit := max(b.w/4, 1); b.size >= limit {
		b.size, b.sens = limit, -1
	}
	if b.size <= 1 {
		b.size, b.sens = 1, 1
	}
}

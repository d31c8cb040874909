package effects

import (
	"math"
	"math/rand/v2"

	"oldschool-fx/internal/fx"
	"oldschool-fx/internal/lut"
	"oldschool-fx/internal/raster"
)

const (
	blobRadius = 44
	blobSide   = blobRadius * 2
	blobCount  = 20
)

// Blob random-walks metaball sprites and accumulates their density into a
// grey buffer with saturating adds.
type Blob struct {
	canvas
	rng     *rand.Rand
	sprite  [blobSide * blobSide]uint8
	pos     [blobCount][2]int
	density *raster.IndexBuffer
	pal     lut.Palette
}

func newBlob(o fx.Options) fx.Effect { return &Blob{rng: o.Rand()} }

func (b *Blob) Setup(w, h int) error {
	if err := b.alloc(w, h); err != nil {
		return err
	}
	b.density = raster.NewIndexBuffer(w, h)
	b.pal = lut.Grey()

	const r2 = blobRadius * blobRadius
	for i := -blobRadius; i < blobRadius; i++ {
		for j := -blobRadius; j < blobRadius; j++ {
			var v uint8
			if d2 := i*i + j*j; d2 <= r2 {
				f := float64(d2) / r2
				v = uint8(math.Pow(1-f*f, 4) * 255)
			}
			b.sprite[(i+blobRadius)*blobSide+j+blobRadius] = v
		}
	}
	for k := range b.pos {
		b.pos[k] = b.home()
	}
	return nil
}

func (b *Blob) home() [2]int {
	return [2]int{b.w>>1 - blobRadius, b.h>>1 - blobRadius}
}

func (b *Blob) Step() {
	for k := range b.pos {
		b.pos[k][0] += -2 + b.rng.IntN(5)
		b.pos[k][1] += -2 + b.rng.IntN(5)
	}
	w := b.w
	d := b.density.Idx
	for k := range b.pos {
		x, y := b.pos[k][0], b.pos[k][1]
		if x <= 0 || x >= b.w-blobSide || y <= 0 || y >= b.h-blobSide {
			b.pos[k] = b.home()
			continue
		}
		for i := 0; i < blobSide; i++ {
			row := (y+i)*w + x
			for j := 0; j < blobSide; j++ {
				d[row+j] = uint8(min(int(d[row+j])+int(b.sprite[i*blobSide+j]), 255))
			}
		}
	}
	b.density.Resolve(b.fb, b.pal[:])
}

package effects

import (
	"math/rand/v2"

	"oldschool-fx/internal/fx"
	"oldschool-fx/internal/lut"
	"oldschool-fx/internal/raster"
)

const explosionParticles = 500

type particle struct {
	x, y   int
	dx, dy int
	heat   int
	dead   bool
}

// Explosion throws hot particles out of the centre under gravity and
// smears their trails with an eight-neighbour cooling blur.
type Explosion struct {
	canvas
	rng       *rand.Rand
	heat      *raster.IndexBuffer
	pal       lut.Palette
	particles [explosionParticles]particle
}

func newExplosion(o fx.Options) fx.Effect { return &Explosion{rng: o.Rand()} }

func (e *Explosion) Setup(w, h int) error {
	if err := e.alloc(w, h); err != nil {
		return err
	}
	e.heat = raster.NewIndexBuffer(w, h)
	e.pal = explosionPalette()
	e.respawn()
	return nil
}

// explosionPalette runs black → blue → red → yellow → white.
func explosionPalette() lut.Palette {
	var p lut.Palette
	for i := 0; i < 32; i++ {
		p[i] = lut.RGB(0, 0, i<<1)
		p[i+32] = lut.RGB(i<<3, 0, 64-(i<<1))
		p[i+64] = lut.RGB(255, i<<3, 0)
		p[i+96] = lut.RGB(255, 255, i<<2)
		p[i+128] = lut.RGB(255, 255, 64+(i<<2))
		p[i+160] = lut.RGB(255, 255, 128+(i<<2))
		p[i+192] = lut.RGB(255, 255, 192+i)
		p[i+224] = lut.RGB(255, 255, 224+i)
	}
	return p
}

func (e *Explosion) respawn() {
	for i := range e.particles {
		e.particles[i] = particle{
			x:    e.w>>1 - 20 + e.rng.IntN(40),
			y:    e.h>>1 - 20 + e.rng.IntN(40),
			dx:   -10 + e.rng.IntN(20),
			dy:   -17 + e.rng.IntN(19),
			heat: 255,
		}
	}
}

// Live returns the number of particles still burning.
func (e *Explosion) Live() int {
	n := 0
	for _, p := range e.particles {
		if !p.dead {
			n++
		}
	}
	return n
}

func (e *Explosion) Step() {
	w, h := e.w, e.h
	dead := 0
	for i := range e.particles {
		p := &e.particles[i]
		if p.dead {
			dead++
			continue
		}
		p.x += p.dx
		p.y += p.dy
		if p.y >= h-3 || p.heat == 0 || p.x <= 1 || p.x >= w-3 {
			p.dead = true
			continue
		}
		p.dy++   // gravity
		p.heat-- // cooling
		c := uint8(p.heat)
		e.heat.Set(p.x, p.y, c)
		e.heat.Set(p.x-1, p.y, c)
		e.heat.Set(p.x+1, p.y, c)
		e.heat.Set(p.x, p.y-1, c)
		e.heat.Set(p.x, p.y+1, c)
	}

	// in-place blur: the centre row takes the mean of its eight neighbours
	f := e.heat.Idx
	for i := 1; i < h-2; i++ {
		up, mid, down := (i-1)*w, i*w, (i+1)*w
		for j := 1; j < w-2; j++ {
			sum := int(f[up+j-1]) + int(f[up+j]) + int(f[up+j+1]) +
				int(f[mid+j-1]) + int(f[mid+j+1]) +
				int(f[down+j-1]) + int(f[down+j]) + int(f[down+j+1])
			sum >>= 3
			if sum > 4 {
				sum -= 4
			} else {
				sum = 0
			}
			f[mid+j] = uint8(sum)
		}
	}

	e.heat.Resolve(e.fb, e.pal[:])

	if dead == explosionParticles {
		e.respawn()
	}
}

package effects

import (
	"math/rand/v2"

	"oldschool-fx/internal/fx"
	"oldschool-fx/internal/lut"
	"oldschool-fx/internal/raster"
)

const (
	seaHeight  = 200 // design rows; the frame is stretched to the viewport
	seaFalls   = 10
	seaScroll  = 10
	seaRandLen = 10000
)

type spark struct {
	x, y, speed int
}

// BurningSea burns a band of random heat, blurs it upwards with a jittered
// kernel and reflects the result below the band through a sine ripple.
type BurningSea struct {
	canvas
	rng    *rand.Rand
	field  *raster.IndexBuffer
	view   *raster.FrameBuffer
	pal    lut.Palette
	sinp   lut.Table
	jitter lut.Table
	falls  [seaFalls]spark
	t      int
	r1     int
}

func newBurningSea(o fx.Options) fx.Effect { return &BurningSea{rng: o.Rand()} }

func (s *BurningSea) Setup(w, h int) error {
	if err := s.alloc(w, h); err != nil {
		return err
	}
	s.field = raster.NewIndexBuffer(w, seaHeight)
	s.view = raster.NewFrameBuffer(w, seaHeight)
	s.sinp = lut.Sine(628, 0.01, 128)
	s.jitter = lut.Build(seaRandLen, func(int) int { return s.rng.IntN(3) })

	// 6-bit ramps: red, red→yellow, yellow→white, then a blue tail
	s.pal = lut.Palette{}
	for i := 0; i < 64; i++ {
		s.pal[i] = lut.RGB(i, 0, 0)
		s.pal[64+i] = lut.RGB(63, i, 0)
		s.pal[128+i] = lut.RGB(63, 63, i)
		s.pal[192+i] = lut.RGB(0, 0, i)
	}
	s.pal.Brighten(1, 4)

	for i := range s.falls {
		s.falls[i] = spark{x: s.rng.IntN(300), y: s.rng.IntN(50), speed: s.rng.IntN(4) + 1}
	}
	s.t, s.r1 = 0, 0
	return nil
}

func (s *BurningSea) Step() {
	f := s.field
	w := s.w
	s.t += 8
	if s.t > 60000 {
		s.t = 0
	}

	for x := 0; x < w; x++ {
		for y := 130; y < 133; y++ {
			f.Set(x, y, uint8(s.rng.IntN(100)+80))
		}
	}

	for i := range s.falls {
		sp := &s.falls[i]
		sp.y += sp.speed
		if sp.y > 125 {
			*sp = spark{x: s.rng.IntN(300), y: 1, speed: s.rng.IntN(4) + 1}
		}
		for dx := 0; dx < sp.speed+2; dx++ {
			for dy := 0; dy < sp.speed+2; dy++ {
				f.Set(sp.x+dx, sp.y+dy, uint8(s.rng.IntN(50)+sp.speed<<5))
			}
		}
	}

	for ab := w - 2; ab > 0; ab-- {
		for bb := 131; bb > 0; bb-- {
			if bb < seaScroll-1 || bb > seaScroll+12 {
				if f.At(ab, bb+1) > 0 || f.At(ab, bb) > 0 {
					s.r1++
					if s.r1 > 9000 {
						s.r1 = 0
					}
					blur := (int(f.At(ab-1, bb+1)) + int(f.At(ab+1, bb+1)) +
						s.jitter[s.r1]*int(f.At(ab, bb+1)) + int(f.At(ab, bb))) >> 2
					f.Set(ab, bb, uint8(min(blur, 190)))
				}
			}
			if v := f.At(ab, bb); v > 0 {
				f.Set(ab, bb, v-1)
			}

			// reflection below the band, displaced by a travelling sine
			abnew := ab + (s.sinp.At(s.t+bb*20)*((bb-110)>>2))>>7
			bbnew := 265 - bb
			if abnew > 0 && abnew < w && bbnew > 0 && bbnew < seaHeight {
				f.Set(ab, bbnew, f.At(abnew, bb)>>1)
			}
		}
	}

	for y := 0; y < 30; y++ {
		clear(f.Idx[y*w : (y+1)*w])
	}

	f.Resolve(s.view, s.pal[:])
	stretch(s.fb, s.view)
}

package effects

import (
	"math/rand/v2"

	"oldschool-fx/internal/fx"
	"oldschool-fx/internal/raster"
)

const starCount = 1020

type star struct {
	x, y  float64
	z     int
	speed int
	grey  uint8
}

// Starfield flies through stars by dividing their positions by depth.
type Starfield struct {
	canvas
	rng    *rand.Rand
	stars  [starCount]star
	cx, cy int
}

func newStarfield(o fx.Options) fx.Effect { return &Starfield{rng: o.Rand()} }

func (s *Starfield) Setup(w, h int) error {
	if err := s.alloc(w, h); err != nil {
		return err
	}
	s.cx, s.cy = w>>1, h>>1
	for i := range s.stars {
		s.stars[i] = s.spawn(i + 1)
	}
	return nil
}

// spawn places star i at depth i. Its grey level follows the slot, so deep
// slots give bright stars.
func (s *Starfield) spawn(i int) star {
	return star{
		x:     (-10 + 20*s.rng.Float64()) * 3072,
		y:     (-10 + 20*s.rng.Float64()) * 3072,
		z:     i,
		speed: 2 + s.rng.IntN(2),
		grey:  uint8(i >> 2),
	}
}

// project returns the screen position of st and whether it is visible.
func (s *Starfield) project(st star) (int, int, bool) {
	px := int(st.x/float64(st.z) + float64(s.cx))
	py := int(st.y/float64(st.z) + float64(s.cy))
	return px, py, px >= 0 && px < s.w && py >= 0 && py < s.h
}

func (s *Starfield) Step() {
	s.fb.Fill(0)
	for i := range s.stars {
		st := &s.stars[i]
		st.z -= st.speed
		if st.z <= 0 {
			*st = s.spawn(i + 1)
		}
		px, py, ok := s.project(*st)
		if !ok {
			*st = s.spawn(i + 1)
			continue
		}
		g := st.grey
		s.fb.Set(px, py, raster.RGB(g, g, g))
	}
}

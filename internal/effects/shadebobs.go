package effects

import (
	"math"

	"oldschool-fx/internal/fx"
	"oldschool-fx/internal/lut"
	"oldschool-fx/internal/raster"
)

const bobTrail = 500

// bobHeat is the 16×16 heat stamp of one shade bob.
var bobHeat = [16][16]uint8{
	{0, 0, 0, 0, 0, 0, 0, 1, 1, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0},
	{0, 0, 0, 1, 1, 1, 2, 2, 2, 2, 1, 1, 1, 0, 0, 0},
	{0, 0, 1, 1, 2, 2, 2, 3, 3, 2, 2, 2, 1, 1, 0, 0},
	{0, 0, 1, 2, 2, 3, 3, 3, 3, 3, 3, 2, 2, 1, 0, 0},
	{0, 1, 1, 2, 3, 3, 3, 3, 3, 3, 3, 3, 2, 1, 1, 0},
	{0, 1, 2, 2, 3, 3, 3, 4, 4, 3, 3, 3, 2, 2, 1, 0},
	{1, 1, 2, 3, 3, 3, 4, 4, 4, 4, 3, 3, 3, 2, 1, 1},
	{1, 1, 2, 3, 3, 3, 4, 4, 4, 4, 3, 3, 3, 2, 1, 1},
	{0, 1, 2, 2, 3, 3, 3, 4, 4, 3, 3, 3, 2, 2, 1, 0},
	{0, 1, 1, 2, 3, 3, 3, 3, 3, 3, 3, 3, 2, 1, 1, 0},
	{0, 0, 1, 2, 2, 3, 3, 3, 3, 3, 3, 2, 2, 1, 0, 0},
	{0, 0, 1, 1, 2, 2, 2, 3, 3, 2, 2, 2, 1, 1, 0, 0},
	{0, 0, 0, 1, 1, 1, 2, 2, 2, 2, 1, 1, 1, 0, 0, 0},
	{0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 1, 1, 0, 0, 0, 0, 0, 0, 0},
}

// ShadeBobs drags a heat stamp along a looping path, adding heat at the
// head and taking it back bobTrail steps later.
type ShadeBobs struct {
	canvas
	xpath, ypath lut.Table // 512 entries
	wobble       lut.Table // 1024 entries
	heat         *raster.IndexBuffer
	pal          lut.Palette
	trail        int
}

func newShadeBobs(fx.Options) fx.Effect { return &ShadeBobs{} }

func (s *ShadeBobs) Setup(w, h int) error {
	if err := s.alloc(w, h); err != nil {
		return err
	}
	hw, hh := w-150, h-180
	const aw, ah = 67, 82
	s.xpath = lut.Build(512, func(i int) int {
		rad := float64(i) * 0.703125 * 0.0174532
		return int(math.Sin(rad*2)*float64(hw)/2 + float64(hw/2) + aw)
	})
	s.ypath = lut.Build(512, func(i int) int {
		rad := float64(i) * 0.703125 * 0.0174532
		return int(math.Sin(rad)*float64(hh)/2 + float64(hh/2) + ah)
	})
	s.wobble = lut.Sine(1024, 0.3515625*0.0174532, 15)

	for i := 0; i < 64; i++ {
		s.pal[i] = lut.RGB(0, 0, i<<1)
		s.pal[i+64] = lut.RGB(i<<1, 0, 128-(i<<1))
		s.pal[i+128] = lut.RGB(128+(i<<1), 0, 128-(i<<1))
		s.pal[i+192] = lut.RGB(255, i<<2, i<<2)
	}
	s.heat = raster.NewIndexBuffer(w, h)
	s.trail = 0
	return nil
}

func (s *ShadeBobs) location(i int) (int, int) {
	return s.xpath[i&511] + s.wobble[i&1023], s.ypath[i&511] + s.wobble[i&1023]
}

// stamp adds sign·8·heat at (x, y). Offsets are linear in the buffer, so a
// bob crossing the right edge continues on the next row.
func (s *ShadeBobs) stamp(x, y, sign int) {
	cells := s.heat.Idx
	for i := 0; i < 16; i++ {
		base := (y+i)*s.w + x
		for j := 0; j < 16; j++ {
			k := base + j
			if k < 0 || k >= len(cells) {
				continue
			}
			v := int(cells[k]) + sign*int(bobHeat[i][j])*8
			cells[k] = uint8(lut.Clamp(v, 0, 255))
		}
	}
}

func (s *ShadeBobs) Step() {
	if s.trail >= bobTrail {
		x, y := s.location(s.trail - bobTrail)
		s.stamp(x, y, -1)
	}
	x, y := s.location(s.trail)
	s.stamp(x, y, 1)
	s.trail++
	s.heat.Resolve(s.fb, s.pal[:])
}

package effects

import (
	"fmt"
	"math"

	"oldschool-fx/internal/fx"
	"oldschool-fx/internal/lut"
	"oldschool-fx/internal/raster"
	"oldschool-fx/internal/texture"
)

// sinePreset is one displacement pattern: amplitude, table advance per line,
// and whether odd and even lines move in opposite directions.
type sinePreset struct {
	amp       float64
	add       int
	alternate bool
}

var sinePresets = [...]sinePreset{
	{8, 2, false}, {16, 4, false}, {20, 3, true}, {32, 5, false},
	{64, 2, false}, {128, 2, true}, {256, 4, false}, {128, 1, false},
	{64, 2, true}, {44, 8, false}, {32, 3, true}, {8, 2, true},
}

// SineWave shifts every line of a picture horizontally by a sine table
// lookup. It runs through the presets, one per table revolution.
type SineWave struct {
	canvas
	textures texture.Provider
	src      *raster.FrameBuffer
	tables   [len(sinePresets)]lut.Table // 512 entries each
	index    int
	preset   int
}

func newSineWave(o fx.Options) fx.Effect { return &SineWave{textures: o.Provider()} }

func (s *SineWave) Setup(w, h int) error {
	if err := s.alloc(w, h); err != nil {
		return err
	}
	src, err := texture.Sized(s.textures, "emblem", w, h)
	if err != nil {
		return fmt.Errorf("sinewave: %w", err)
	}
	s.src = src
	for k, p := range sinePresets {
		s.tables[k] = lut.Build(512, func(i int) int {
			return int(math.Sin(float64(i)*0.0174532*0.703125) * p.amp)
		})
	}
	s.index = 0
	s.preset = 0
	return nil
}

// Preset returns the running displacement pattern.
func (s *SineWave) Preset() int { return s.preset }

// shift returns the displacement of line y.
func (s *SineWave) shift(y int) int {
	p := sinePresets[s.preset]
	off := s.tables[s.preset][(s.index+y*p.add)&511]
	if p.alternate && y%2 == 0 && y > 0 {
		return -off
	}
	return off
}

func (s *SineWave) Step() {
	for y := 0; y < s.h; y++ {
		off := s.shift(y)
		row := s.fb.Pix[y*s.w : (y+1)*s.w]
		for x := range row {
			row[x] = s.src.At(x+off, y)
		}
	}
	s.index += 6
	if s.index > 511 {
		s.index = 0
		s.preset = (s.preset + 1) % len(sinePresets)
	}
}

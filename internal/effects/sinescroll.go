package effects

import (
	"math"
	"math/rand/v2"

	"oldschool-fx/internal/fx"
	"oldschool-fx/internal/glyph"
	"oldschool-fx/internal/lut"
)

const (
	sineScrollText = "This is an old-fashion amiga demo !"
	sineStars      = 250
	sineTable      = 1024
)

// rasterStops are the colours the glyph rasters fade through, top to bottom.
var rasterStops = [...]int{0xFF0000, 0xFFFF00, 0x00FF00, 0x00FFFF, 0xFF00FF, 0x00FFFF, 0x0000FF}

type scrollStar struct {
	x, y, dx int
	color    uint32
}

// SineScroll moves a ribbon of 16×16 glyphs along a sine path, one glyph
// column per screen column. Glyph pixels take their colour from a vertical
// raster gradient and cast a shadow two pixels down and right, over a
// field of parallax stars.
type SineScroll struct {
	canvas
	rng     *rand.Rand
	font    *glyph.Font
	text    []rune
	rasters []uint32 // one colour per screen row
	sine    lut.Table
	stars   [sineStars]scrollStar

	offset, pos, sinePos int
}

func newSineScroll(o fx.Options) fx.Effect {
	text := o.Text
	if text == "" {
		text = sineScrollText
	}
	return &SineScroll{rng: o.Rand(), text: glyph.Ribbon(text, 20)}
}

func (s *SineScroll) Setup(w, h int) error {
	if err := s.alloc(w, h); err != nil {
		return err
	}
	if s.font == nil {
		s.font = glyph.NewFont()
	}
	s.rasters = make([]uint32, h)
	seg := h / (len(rasterStops) - 1)
	bar := 0
	from := rasterStops[0]
	for _, to := range rasterStops[1:] {
		for y := 0; y < seg; y++ {
			s.rasters[bar] = lerpRGB(from, to, y+1, seg)
			bar++
		}
		from = to
	}

	amp := float64((h - 18) / 2)
	s.sine = lut.Build(sineTable, func(i int) int {
		fi := float64(i)
		return int(math.Sin(fi*0.5*math.Pi/256)*math.Sin(fi*0.75*math.Pi/256)*amp+amp) + 1
	})
	for i := range s.stars {
		s.stars[i] = scrollStar{
			x:     s.rng.IntN(w),
			y:     s.rng.IntN(h),
			dx:    s.rng.IntN(4) + 1,
			color: uint32(s.rng.IntN(11)+4) * 0x111111,
		}
	}
	s.offset, s.pos, s.sinePos = 0, 0, 0
	return nil
}

// lerpRGB returns colour step n of den between two packed colours.
func lerpRGB(from, to, n, den int) uint32 {
	ch := func(shift int) int {
		a, b := from>>shift&0xff, to>>shift&0xff
		return a + (b-a)*n/den
	}
	return lut.RGB(ch(16), ch(8), ch(0))
}

func (s *SineScroll) Step() {
	sco, scp, sp := s.offset, s.pos, s.sinePos
	if s.offset++; s.offset >= glyph.Cell {
		s.offset = 0
		if s.pos++; s.pos >= len(s.text) {
			s.pos = 0
		}
	}
	s.sinePos += 4
	if s.sinePos >= sineTable {
		s.sinePos -= sineTable
	}

	fb := s.fb
	fb.Fill(0)
	for i := range s.stars {
		st := &s.stars[i]
		st.x %= s.w
		if fb.At(st.x, st.y) == 0 {
			fb.Set(st.x, st.y, st.color)
		}
		st.x += st.dx
	}

	for x := 0; x < s.w; x++ {
		ypos := s.sine[sp]
		if sp++; sp >= sineTable {
			sp = 0
		}
		col := s.font.Column(s.text, scp, sco)
		if sco++; sco >= glyph.Cell {
			sco = 0
			if scp++; scp >= len(s.text) {
				scp = 0
			}
		}
		for y := 0; y < glyph.Cell; y++ {
			if col&(1<<y) == 0 {
				continue
			}
			row := y + ypos
			if row >= 0 && row < s.h {
				fb.Set(x, row, s.rasters[row])
			}
			fb.Set(x+2, row+2, 0)
		}
	}
}

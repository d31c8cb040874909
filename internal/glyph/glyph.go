// Package glyph rasterizes text for the scroller effects using the fixed
// 7×13 bitmap face from x/image.
package glyph

import (
	"image"
	"strings"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"oldschool-fx/internal/raster"
)

// Cell is the side of a scroller glyph cell.
const Cell = 16

var face = basicfont.Face7x13

// Metrics of the base face before scaling.
var (
	Advance = face.Advance
	Height  = face.Height
	Ascent  = face.Ascent
)

// Width returns the unscaled pixel width of s.
func Width(s string) int {
	return font.MeasureString(face, s).Ceil()
}

// Mask renders s into an alpha mask of exactly Width(s)×Height pixels.
func Mask(s string) *image.Alpha {
	w := max(Width(s), 1)
	m := image.NewAlpha(image.Rect(0, 0, w, Height))
	d := font.Drawer{
		Dst:  m,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.P(0, Ascent),
	}
	d.DrawString(s)
	return m
}

// Draw stamps s into fb with its top-left corner at (x, y), every font pixel
// enlarged to a scale×scale block. Pixels outside fb are clipped.
func Draw(fb *raster.FrameBuffer, x, y int, s string, c uint32, scale int) {
	scale = max(scale, 1)
	m := Mask(s)
	b := m.Bounds()
	for my := 0; my < b.Dy(); my++ {
		for mx := 0; mx < b.Dx(); mx++ {
			if m.Pix[my*m.Stride+mx] < 128 {
				continue
			}
			fb.FillRect(x+mx*scale, y+my*scale, x+(mx+1)*scale, y+(my+1)*scale, c)
		}
	}
}

// DrawCentred draws s horizontally centred in fb with its top at y and
// returns the scaled line height.
func DrawCentred(fb *raster.FrameBuffer, y int, s string, c uint32, scale int) int {
	scale = max(scale, 1)
	x := (fb.Width - Width(s)*scale) / 2
	Draw(fb, x, y, s, c, scale)
	return Height * scale
}

// Sliver is one 16×16 scroller glyph stored as column masks: bit y of
// column x is set when the pixel at (x, y) is lit.
type Sliver [Cell]uint16

// Font maps runes to slivers. Upper-case letters share the lower-case
// glyphs and runes without a glyph render as space.
type Font struct {
	glyphs map[rune]Sliver
}

// Charset lists the runes of the classic scroller font in order.
const Charset = " !'(),-.:?0123456789abcdefghijklmnopqrstuvwxyz"

// NewFont rasterizes every rune of Charset into a Cell×Cell sliver by
// stretching the 7×13 glyph to fill the cell.
func NewFont() *Font {
	f := &Font{glyphs: make(map[rune]Sliver, len(Charset))}
	for _, r := range Charset {
		f.glyphs[r] = rasterize(string(unicode.ToUpper(r)))
	}
	return f
}

func rasterize(s string) Sliver {
	m := Mask(s)
	var sl Sliver
	w := Advance
	for x := 0; x < Cell; x++ {
		mx := x * w / Cell
		for y := 0; y < Cell; y++ {
			my := y * Height / Cell
			if m.Pix[my*m.Stride+mx] >= 128 {
				sl[x] |= 1 << y
			}
		}
	}
	return sl
}

// Glyph returns the sliver for r.
func (f *Font) Glyph(r rune) Sliver {
	if g, ok := f.glyphs[unicode.ToLower(r)]; ok {
		return g
	}
	return f.glyphs[' ']
}

// Column returns column x of the glyph at rune position i of text, treating
// text as a ribbon of Cell-wide glyphs. Positions past the end are blank.
func (f *Font) Column(text []rune, i, x int) uint16 {
	if i < 0 || i >= len(text) || x < 0 || x >= Cell {
		return 0
	}
	return f.Glyph(text[i])[x]
}

// Ribbon prefixes text with pad blanks so a scroller starts off-screen.
func Ribbon(text string, pad int) []rune {
	return []rune(strings.Repeat(" ", pad) + text)
}

package effects

import (
	"strings"

	"oldschool-fx/internal/fx"
	"oldschool-fx/internal/glyph"
	"oldschool-fx/internal/mathutil"
	"oldschool-fx/internal/raster"
)

const scrollWhite = 0xFFFFFF

var crawlText = []string{
	"a long time ago",
	"on a home computer far far away",
	"",
	"coders bent the raster beam",
	"to draw more colours",
	"than the hardware allowed",
	"",
	"copper bars and plasmas",
	"fires and tunnels",
	"scrollers on sine waves",
	"",
	"every frame computed",
	"before the next one",
	"",
	"greetings to all sceners",
}

// crawl is a block of centred lines moving up the screen. When the last
// line has left the top it starts again below the bottom edge.
type crawl struct {
	lines []string
	scale int
	step  int
	y     int
}

func newCrawl(text string, scale, step int) crawl {
	lines := crawlText
	if text != "" {
		lines = strings.Split(text, "\n")
	}
	return crawl{lines: lines, scale: scale, step: step}
}

func (c *crawl) reset(h int) { c.y = h + 10 }

// draw renders the lines into fb and advances the block.
func (c *crawl) draw(fb *raster.FrameBuffer) {
	fb.Fill(0)
	y := c.y
	for _, l := range c.lines {
		lh := glyph.DrawCentred(fb, y, l, scrollWhite, c.scale)
		y += lh * 3 / 2
	}
	if y <= 0 {
		c.reset(fb.Height)
	} else {
		c.y -= c.step
	}
}

// SimpleScroll moves centred text lines up by one pixel per step.
type SimpleScroll struct {
	canvas
	crawl
}

func newSimpleScroll(o fx.Options) fx.Effect {
	return &SimpleScroll{crawl: newCrawl(o.Text, 1, 1)}
}

func (s *SimpleScroll) Setup(w, h int) error {
	if err := s.alloc(w, h); err != nil {
		return err
	}
	s.reset(h)
	return nil
}

func (s *SimpleScroll) Step() { s.draw(s.fb) }

// StarWars renders the crawl flat, then maps it onto a trapezoid narrowing
// towards the top of the screen with an inverse perspective transform.
type StarWars struct {
	canvas
	crawl
	flat *raster.FrameBuffer
	inv  mathutil.Mat3 // screen to flat-frame coordinates
}

func newStarWars(o fx.Options) fx.Effect {
	return &StarWars{crawl: newCrawl(o.Text, 2, 5)}
}

func (s *StarWars) Setup(w, h int) error {
	if err := s.alloc(w, h); err != nil {
		return err
	}
	s.flat = raster.NewFrameBuffer(w, h)
	s.reset(h)
	fw, fh := float64(w), float64(h)
	quad := [4][2]float64{
		{fw/2 - 50, 0},
		{fw/2 + 50, 0},
		{fw - 1, fh - 1},
		{0, fh - 1},
	}
	s.inv = mathutil.Mat3Mul(mathutil.Scale2(fw, fh), mathutil.SquareToQuad(quad).Inverse())
	return nil
}

func (s *StarWars) Step() {
	s.draw(s.flat)
	for y := 0; y < s.h; y++ {
		for x := 0; x < s.w; x++ {
			var c uint32
			if sx, sy, ok := s.inv.Project(float64(x), float64(y)); ok &&
				sx >= 0 && sy >= 0 && sx < float64(s.w) && sy < float64(s.h) {
				c = raster.Bilinear(s.flat, sx, sy)
			}
			s.fb.Pix[y*s.w+x] = c
		}
	}
}

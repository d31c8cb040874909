package effects

import (
	"fmt"
	"math"

	"oldschool-fx/internal/fx"
	"oldschool-fx/internal/glyph"
	"oldschool-fx/internal/raster"
	"oldschool-fx/internal/texture"
)

const (
	ballPages = 8
	ballBack  = 0xFFFFFF // page background, also the sprite's transparent colour
)

// ballShape holds the periods and phase offsets of one rose path.
type ballShape struct {
	xspeed, yspeed, xrspeed, yrspeed float64
	xstart, ystart, xrstart, yrstart float64
}

var ballShapes = [...]ballShape{
	{100, 100, 4150, 4150, 0, 0, 0, 4150},
	{199999, 100, 550, 950, 0, 50, 0, 0},
	{100, 150, 2200, 1100, 0, 150, 0, 1100},
}

// UnlimitedBalls never clears: it cycles through eight pages and stamps one
// ball on each per step, so the shown page holds a trail that looks like
// an ever-growing number of sprites.
type UnlimitedBalls struct {
	canvas
	textures texture.Provider
	ball     *raster.FrameBuffer
	pages    [ballPages]*raster.FrameBuffer
	shape    int
	count    int
	current  int
	xc, yc   int
	xr, yr   float64
	ready    bool
}

func newUnlimitedBalls(o fx.Options) fx.Effect {
	return &UnlimitedBalls{textures: o.Provider()}
}

func (u *UnlimitedBalls) Setup(w, h int) error {
	if err := u.alloc(w, h); err != nil {
		return err
	}
	ball, err := u.textures.Texture("ball")
	if err != nil {
		return fmt.Errorf("unlimitedballs: %w", err)
	}
	u.ball = ball
	for i := range u.pages {
		u.pages[i] = raster.NewFrameBuffer(w, h)
	}
	u.ready = true
	u.restart()
	return nil
}

// SetShape selects one of the three rose paths and starts over.
func (u *UnlimitedBalls) SetShape(n int) {
	u.shape = ((n % len(ballShapes)) + len(ballShapes)) % len(ballShapes)
	if u.ready {
		u.restart()
	}
}

// Shape returns the selected path.
func (u *UnlimitedBalls) Shape() int { return u.shape }

// Sprites returns the number of balls stamped so far.
func (u *UnlimitedBalls) Sprites() int { return u.current }

func (u *UnlimitedBalls) restart() {
	u.count = 0
	u.current = 0
	u.xc = u.w/2 - u.ball.Width/2
	u.yc = u.h/2 - u.ball.Height/2
	u.xr = float64(u.w) / 2.5
	u.yr = float64(u.h) / 2.5
	for _, p := range u.pages {
		p.Fill(ballBack)
	}
}

func (u *UnlimitedBalls) stamp(page *raster.FrameBuffer, x, y int) {
	for sy := 0; sy < u.ball.Height; sy++ {
		for sx := 0; sx < u.ball.Width; sx++ {
			c := u.ball.Pix[sy*u.ball.Width+sx]
			if c == ballBack || c == texture.Key {
				continue
			}
			page.Set(x+sx, y+sy, c)
		}
	}
}

func (u *UnlimitedBalls) Step() {
	s := ballShapes[u.shape]
	u.count = (u.count + 1) % ballPages
	for i := range u.pages {
		c := float64(u.current)
		xr := math.Cos((c+s.xrstart)*math.Pi/s.xrspeed) * u.xr
		yr := math.Cos((c+s.yrstart)*math.Pi/s.yrspeed) * u.yr
		x := math.Cos((c+s.xstart)*math.Pi/s.xspeed) * xr
		y := math.Sin((c+s.ystart)*math.Pi/s.yspeed) * yr
		u.stamp(u.pages[i], u.xc+int(math.Round(x)), u.yc+int(math.Round(y)))
		u.current++
	}
	copy(u.fb.Pix, u.pages[u.count].Pix)
	glyph.Draw(u.fb, 5, 5, fmt.Sprintf("sprites: %d", u.current), 0, 1)
}

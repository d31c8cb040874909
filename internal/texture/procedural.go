package texture

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"github.com/lucasb-eyer/go-colorful"

	"oldschool-fx/internal/glyph"
	"oldschool-fx/internal/raster"
)

// Key is the colour sprite sheets use for transparent texels.
const Key = 0xFF00FF

type generator struct {
	w, h int
	gen  func(w, h int) *raster.FrameBuffer
}

var builtins = map[string]generator{
	"stone":     {256, 256, stone},
	"tile":      {256, 256, tile},
	"warp":      {256, 256, swirl},
	"wormhole":  {15, 15, cells},
	"heightmap": {512, 512, heightmap},
	"colormap":  {512, 512, colormap},
	"sunset":    {640, 240, sunset},
	"emblem":    {256, 256, emblem},
	"landscape": {320, 120, landscape},
	"atlas":     {256, 256, atlas},
	"flower":    {256, 256, flower},
	"bump":      {256, 256, bumps},
	"isle":      {240, 180, isle},
	"ball":      {16, 16, ball},
	"flat":      {256, 256, flat},
	"ocean":     {320, 240, ocean},
}

// Builtin generates the named procedural texture at its native size.
func Builtin(name string) (*raster.FrameBuffer, error) {
	g, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return g.gen(g.w, g.h), nil
}

// Names lists the procedural textures in sorted order.
func Names() []string {
	out := make([]string, 0, len(builtins))
	for n := range builtins {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func fill(w, h int, f func(x, y int) uint32) *raster.FrameBuffer {
	fb := raster.NewFrameBuffer(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			fb.Pix[y*w+x] = f(x, y)
		}
	}
	return fb
}

func pack(c colorful.Color) uint32 {
	r, g, b := c.Clamped().RGB255()
	return raster.RGB(r, g, b)
}

// hash2 is a small integer hash giving a stable value in [0, 1).
func hash2(x, y, seed int) float64 {
	h := uint32(x)*374761393 + uint32(y)*668265263 + uint32(seed)*2246822519
	h = (h ^ (h >> 13)) * 1274126177
	h ^= h >> 16
	return float64(h&0xffffff) / float64(0x1000000)
}

// noise is tileable value noise with period p cells.
func noise(x, y float64, p, seed int) float64 {
	x0, y0 := int(math.Floor(x)), int(math.Floor(y))
	fx, fy := x-float64(x0), y-float64(y0)
	fx = fx * fx * (3 - 2*fx)
	fy = fy * fy * (3 - 2*fy)
	wrap := func(v int) int { return ((v % p) + p) % p }
	a := hash2(wrap(x0), wrap(y0), seed)
	b := hash2(wrap(x0+1), wrap(y0), seed)
	c := hash2(wrap(x0), wrap(y0+1), seed)
	d := hash2(wrap(x0+1), wrap(y0+1), seed)
	return a + (b-a)*fx + (c-a)*fy + (a-b-c+d)*fx*fy
}

// fbm sums octaves of noise over a w-pixel tile, returning [0, 1).
func fbm(x, y, w, octaves, seed int) float64 {
	var sum, amp, norm float64 = 0, 1, 0
	cells := 4
	for o := 0; o < octaves; o++ {
		s := float64(cells) / float64(w)
		sum += amp * noise(float64(x)*s, float64(y)*s, cells, seed+o)
		norm += amp
		amp /= 2
		cells *= 2
	}
	return sum / norm
}

func stone(w, h int) *raster.FrameBuffer {
	return fill(w, h, func(x, y int) uint32 {
		n := fbm(x, y, w, 5, 7)
		mortar := math.Abs(math.Sin(float64(y)*math.Pi/32)) < 0.08 ||
			math.Abs(math.Sin((float64(x)+float64((y/32)%2)*32)*math.Pi/64)) < 0.05
		l := 0.25 + 0.5*n
		if mortar {
			l *= 0.45
		}
		return pack(colorful.Hsl(30, 0.25, l))
	})
}

func tile(w, h int) *raster.FrameBuffer {
	return fill(w, h, func(x, y int) uint32 {
		dx, dy := float64(x-w/2), float64(y-h/2)
		r := math.Hypot(dx, dy) / float64(w/2)
		switch {
		case r < 0.35:
			return raster.RGB(250, 200, 40)
		case r < 0.45:
			return raster.RGB(20, 20, 20)
		}
		if (x/32+y/32)%2 == 0 {
			return raster.RGB(40, 90, 200)
		}
		return raster.RGB(230, 230, 240)
	})
}

func swirl(w, h int) *raster.FrameBuffer {
	return fill(w, h, func(x, y int) uint32 {
		u := float64(x) * 2 * math.Pi / float64(w)
		v := float64(y) * 2 * math.Pi / float64(h)
		hue := math.Mod(180+90*math.Sin(u*2)+90*math.Cos(v*3)+360, 360)
		l := 0.35 + 0.25*math.Sin(u*4+v*2)
		return pack(colorful.Hsl(hue, 0.8, l))
	})
}

func cells(w, h int) *raster.FrameBuffer {
	return fill(w, h, func(x, y int) uint32 {
		if x == 0 || y == 0 {
			return raster.RGB(255, 255, 255)
		}
		return pack(colorful.Hsv(float64(x*24), 0.7, 0.3+0.05*float64(y%8)))
	})
}

// heightField runs diamond-square on an n+1 grid with a fixed seed and
// samples it into a w×h buffer of grey levels.
func heightField(w, h int) []float64 {
	n := 1
	for n < max(w, h) {
		n <<= 1
	}
	size := n + 1
	g := make([]float64, size*size)
	rng := rand.New(rand.NewPCG(1, 2))
	at := func(x, y int) *float64 { return &g[(y%n)*size+(x%n)] }

	*at(0, 0) = 0.5
	amp := 0.5
	for step := n; step > 1; step /= 2 {
		half := step / 2
		for y := 0; y < n; y += step {
			for x := 0; x < n; x += step {
				avg := (*at(x, y) + *at(x+step, y) + *at(x, y+step) + *at(x+step, y+step)) / 4
				*at(x+half, y+half) = avg + (rng.Float64()*2-1)*amp
			}
		}
		for y := 0; y < n; y += half {
			for x := (y + half) % step; x < n; x += step {
				avg := (*at(x-half+n, y) + *at(x+half, y) + *at(x, y-half+n) + *at(x, y+half)) / 4
				*at(x, y) = avg + (rng.Float64()*2-1)*amp
			}
		}
		amp *= 0.55
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			v := *at(x, y)
			lo, hi = math.Min(lo, v), math.Max(hi, v)
		}
	}
	out := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out[y*w+x] = (*at(x*n/w, y*n/h) - lo) / (hi - lo + 1e-12)
		}
	}
	return out
}

func heightmap(w, h int) *raster.FrameBuffer {
	hf := heightField(w, h)
	return fill(w, h, func(x, y int) uint32 {
		v := uint8(hf[y*w+x] * 255)
		return raster.RGB(v, v, v)
	})
}

func colormap(w, h int) *raster.FrameBuffer {
	hf := heightField(w, h)
	stops := []struct {
		at float64
		c  colorful.Color
	}{
		{0.00, colorful.Color{R: 0.05, G: 0.15, B: 0.45}},
		{0.30, colorful.Color{R: 0.85, G: 0.80, B: 0.55}},
		{0.40, colorful.Color{R: 0.20, G: 0.55, B: 0.15}},
		{0.70, colorful.Color{R: 0.40, G: 0.30, B: 0.20}},
		{1.00, colorful.Color{R: 1, G: 1, B: 1}},
	}
	return fill(w, h, func(x, y int) uint32 {
		v := hf[y*w+x]
		for i := 1; i < len(stops); i++ {
			if v <= stops[i].at {
				t := (v - stops[i-1].at) / (stops[i].at - stops[i-1].at)
				shade := 0.85 + 0.3*hash2(x, y, 3)
				c := stops[i-1].c.BlendRgb(stops[i].c, t)
				return pack(colorful.Color{R: c.R * shade, G: c.G * shade, B: c.B * shade})
			}
		}
		return pack(stops[len(stops)-1].c)
	})
}

func sunset(w, h int) *raster.FrameBuffer {
	top := colorful.Color{R: 0.10, G: 0.05, B: 0.30}
	bottom := colorful.Color{R: 1.00, G: 0.55, B: 0.15}
	return fill(w, h, func(x, y int) uint32 {
		t := float64(y) / float64(max(h-1, 1))
		c := top.BlendLab(bottom, t)
		cloud := fbm(x, y*3, w, 4, 11)
		if cloud > 0.6 {
			c = c.BlendRgb(colorful.Color{R: 1, G: 0.8, B: 0.7}, (cloud-0.6)*1.5)
		}
		return pack(c)
	})
}

func emblem(w, h int) *raster.FrameBuffer {
	cx, cy := float64(w)/2, float64(h)/2
	return fill(w, h, func(x, y int) uint32 {
		dx, dy := float64(x)-cx, float64(y)-cy
		r := math.Hypot(dx, dy)
		a := math.Atan2(dy, dx)
		edge := float64(w) * (0.32 + 0.06*math.Sin(5*a))
		switch {
		case r < edge*0.35:
			return raster.RGB(255, 210, 0)
		case r < edge*0.45:
			return 0
		case r < edge:
			return pack(colorful.Hsv(math.Mod(a*180/math.Pi+360, 360), 0.9, 0.95))
		}
		return 0
	})
}

func landscape(w, h int) *raster.FrameBuffer {
	sky := colorful.Color{R: 0.45, G: 0.65, B: 0.95}
	haze := colorful.Color{R: 0.95, G: 0.85, B: 0.75}
	return fill(w, h, func(x, y int) uint32 {
		ridge := float64(h) * (0.35 + 0.35*fbm(x, 0, w, 4, 21))
		fy := float64(y)
		if fy > ridge {
			d := (fy - ridge) / float64(h)
			return pack(colorful.Hsl(120, 0.35, 0.35-0.2*d))
		}
		return pack(sky.BlendRgb(haze, fy/ridge))
	})
}

func flower(w, h int) *raster.FrameBuffer {
	cx, cy := float64(w)/2, float64(h)/2
	return fill(w, h, func(x, y int) uint32 {
		dx, dy := float64(x)-cx, float64(y)-cy
		r := math.Hypot(dx, dy) / (float64(w) / 2)
		a := math.Atan2(dy, dx)
		petal := 0.55 + 0.35*math.Abs(math.Cos(3*a))
		switch {
		case r < 0.18:
			return pack(colorful.Hsl(45, 0.9, 0.5-0.6*r))
		case r < petal:
			return pack(colorful.Hsl(330, 0.75, 0.75-0.4*r/petal))
		}
		return pack(colorful.Hsl(110, 0.4, 0.2+0.2*fbm(x, y, w, 3, 5)))
	})
}

func bumps(w, h int) *raster.FrameBuffer {
	return fill(w, h, func(x, y int) uint32 {
		fx := math.Mod(float64(x), 64) - 32
		fy := math.Mod(float64(y), 64) - 32
		d := math.Hypot(fx, fy) / 28
		v := 0.0
		if d < 1 {
			v = math.Sqrt(1 - d*d)
		}
		v = 0.8*v + 0.2*fbm(x, y, w, 4, 9)
		g := uint8(v * 255)
		return raster.RGB(g, g, g)
	})
}

func isle(w, h int) *raster.FrameBuffer {
	cx, cy := float64(w)/2, float64(h)/2
	return fill(w, h, func(x, y int) uint32 {
		dx := (float64(x) - cx) / cx
		dy := (float64(y) - cy) / cy
		d := math.Hypot(dx, dy) + 0.25*(fbm(x, y, w, 4, 13)-0.5)
		switch {
		case d < 0.35:
			return pack(colorful.Hsl(100, 0.5, 0.3+0.3*(0.35-d)))
		case d < 0.45:
			return pack(colorful.Hsl(45, 0.6, 0.7))
		}
		return pack(colorful.Hsl(205, 0.7, 0.35+0.1*math.Sin(float64(y)*0.4)))
	})
}

func ball(w, h int) *raster.FrameBuffer {
	r := float64(min(w, h)) / 2
	return fill(w, h, func(x, y int) uint32 {
		dx, dy := float64(x)+0.5-r, float64(y)+0.5-r
		d := math.Hypot(dx, dy) / r
		if d > 1 {
			return raster.RGB(255, 255, 255)
		}
		shine := math.Max(0, 1-math.Hypot(dx+r/3, dy+r/3)/r*1.6)
		return pack(colorful.Hsl(0, 0.85, 0.25+0.3*(1-d)+0.45*shine))
	})
}

func flat(w, h int) *raster.FrameBuffer {
	fb := fill(w, h, func(x, y int) uint32 {
		if (x/16+y/16)%2 == 0 {
			return raster.RGB(30, 30, 80)
		}
		return raster.RGB(60, 60, 140)
	})
	for row := 0; row*32+8 < h; row++ {
		glyph.Draw(fb, 4, row*32+8, "OLDSCHOOL", raster.RGB(255, 220, 0), 2)
	}
	return fb
}

func ocean(w, h int) *raster.FrameBuffer {
	return fill(w, h, func(x, y int) uint32 {
		n := fbm(x, y, w, 5, 17)
		return pack(colorful.Hsl(200+20*n, 0.7, 0.2+0.45*n))
	})
}

func atlas(w, h int) *raster.FrameBuffer {
	fb := raster.NewFrameBuffer(w, h)
	hw, hh := w/2, h/2

	// floor
	for y := 0; y < hh; y++ {
		for x := 0; x < hw; x++ {
			c := raster.RGB(90, 60, 30)
			if (x/16+y/16)%2 == 0 {
				c = raster.RGB(200, 170, 110)
			}
			fb.Pix[y*w+x] = c
		}
	}
	// ceiling
	for y := 0; y < hh; y++ {
		for x := hw; x < w; x++ {
			n := fbm(x, y, w, 4, 31)
			fb.Pix[y*w+x] = pack(colorful.Hsl(215, 0.6, 0.35+0.5*n))
		}
	}
	// sprite on key colour
	sr := float64(min(hw, hh)) / 2
	for y := hh; y < h; y++ {
		for x := 0; x < hw; x++ {
			dx, dy := float64(x)-sr, float64(y-hh)-sr
			d := math.Hypot(dx, dy) / sr
			if d > 0.95 {
				fb.Pix[y*w+x] = Key
				continue
			}
			fb.Pix[y*w+x] = pack(colorful.Hsl(55, 0.9, 0.2+0.6*(1-d)))
		}
	}
	// scroller strip: rows of 16 px, 128 px wide
	msg := []string{
		"GREETINGS TO ALL ",
		"OLDSCHOOL CODERS ",
		"SCROLLING OVER A ",
		"MIRRORED FLOOR   ",
		"WITH BOUNCING    ",
		"SPRITES AND THEIR",
		"SHADOWS. SEE YOU ",
		"IN THE NEXT DEMO ",
	}
	for i, s := range msg {
		y0 := hh + i*16
		if y0+16 > h {
			break
		}
		strip := raster.NewFrameBuffer(hw, 16)
		glyph.Draw(strip, 1, 1, s, raster.RGB(255, 255, 255), 1)
		fb.CopyFrom(strip, hw, y0)
	}
	return fb
}

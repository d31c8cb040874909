package effects

import (
	"fmt"
	"math"

	"oldschool-fx/internal/fx"
	"oldschool-fx/internal/raster"
	"oldschool-fx/internal/texture"
)

const tunnelTex = 256

// tunnelIndex wraps a shifted table value into the texture. The sign is
// dropped after the remainder so negative angles mirror onto the texture.
func tunnelIndex(v, shift int) int {
	return iabs((v + shift) % tunnelTex)
}

// Tunnel maps every pixel through precomputed distance and angle tables
// into an XOR texture and scrolls the texture along both axes.
type Tunnel struct {
	canvas
	tex      []uint32 // tunnelTex², indexed [angle*tunnelTex + distance]
	distance []int32
	angle    []int32
	anim     float64
}

func newTunnel(fx.Options) fx.Effect { return &Tunnel{} }

func (t *Tunnel) Setup(w, h int) error {
	if err := t.alloc(w, h); err != nil {
		return err
	}
	t.tex = make([]uint32, tunnelTex*tunnelTex)
	for y := 0; y < tunnelTex; y++ {
		for x := 0; x < tunnelTex; x++ {
			t.tex[y*tunnelTex+x] = uint32(x ^ y)
		}
	}

	t.distance = make([]int32, w*h)
	t.angle = make([]int32, w*h)
	cx, cy := float64(w)/2, float64(h)/2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx, dy := float64(x)-cx, float64(y)-cy
			r := math.Sqrt(dx*dx + dy*dy)
			var d int
			if r > 0 {
				d = int(math.Floor(math.Mod(32*tunnelTex/r, tunnelTex)))
			}
			t.distance[y*w+x] = int32(d)
			t.angle[y*w+x] = int32(math.Floor(0.5 * tunnelTex * math.Atan2(dy, dx) / 3.1416))
		}
	}
	t.anim = 0
	return nil
}

func (t *Tunnel) Step() {
	shiftX := int(math.Floor(tunnelTex * t.anim))
	shiftY := int(math.Floor(tunnelTex * 0.25 * t.anim))
	for i := range t.fb.Pix {
		u := tunnelIndex(int(t.distance[i]), shiftX)
		v := tunnelIndex(int(t.angle[i]), shiftY)
		t.fb.Pix[i] = t.tex[v*tunnelTex+u]
	}
	t.anim += 0.05
}

// LookTunnel is the textured tunnel with a wandering viewpoint: its tables
// cover twice the viewport and a moving window into them is shown.
type LookTunnel struct {
	canvas
	textures texture.Provider
	tex      *raster.FrameBuffer
	tw, th   int // table size, 2w×2h
	distance []int32
	angle    []int32
	anim     float64
}

func newLookTunnel(o fx.Options) fx.Effect { return &LookTunnel{textures: o.Provider()} }

func (t *LookTunnel) Setup(w, h int) error {
	if err := t.alloc(w, h); err != nil {
		return err
	}
	tex, err := texture.Sized(t.textures, "stone", tunnelTex, tunnelTex)
	if err != nil {
		return fmt.Errorf("looktunnel: %w", err)
	}
	t.tex = tex

	t.tw, t.th = 2*w, 2*h
	t.distance = make([]int32, t.tw*t.th)
	t.angle = make([]int32, t.tw*t.th)
	for y := 0; y < t.th; y++ {
		for x := 0; x < t.tw; x++ {
			dx, dy := float64(x-w), float64(y-h)
			r := math.Sqrt(dx*dx + dy*dy)
			var d int
			if r > 0 {
				d = int(32*tunnelTex/r) % tunnelTex
			}
			t.distance[y*t.tw+x] = int32(d)
			// the horizontal offset is divided by π inside atan2, which
			// stretches the angle bands near the horizon
			t.angle[y*t.tw+x] = int32(0.5 * tunnelTex * math.Atan2(dy, dx/3.1416))
		}
	}
	t.anim = 0
	return nil
}

func (t *LookTunnel) Step() {
	shiftX := int(tunnelTex * t.anim)
	shiftY := int(tunnelTex * 0.25 * t.anim)
	lookX := t.w/2 + int(float64(t.w/2)*math.Sin(t.anim))
	lookY := t.h/2 + int(float64(t.h/2)*math.Sin(t.anim*2))
	for y := 0; y < t.h; y++ {
		row := (y + lookY) * t.tw
		for x := 0; x < t.w; x++ {
			i := row + x + lookX
			u := tunnelIndex(int(t.distance[i]), shiftX)
			v := tunnelIndex(int(t.angle[i]), shiftY)
			t.fb.Pix[y*t.w+x] = t.tex.Pix[v*tunnelTex+u]
		}
	}
	t.anim += 0.02
}

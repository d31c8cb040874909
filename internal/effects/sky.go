package effects

import (
	"fmt"
	"math"

	"oldschool-fx/internal/fx"
	"oldschool-fx/internal/raster"
	"oldschool-fx/internal/texture"
)

const (
	skyWidth  = 320
	skyHeight = 200
	skyBlue   = 0x0000FF
)

// Sky draws a perspective floor and ceiling mirrored around the screen's
// vertical axis, bobbing sprites with squashed shadows, and a scroller
// strip along the bottom. Everything is read from one 256² atlas: floor
// top-left, ceiling top-right, sprite bottom-left and the scroller text
// bottom-right in eight 16-pixel rows.
type Sky struct {
	canvas
	textures texture.Provider
	atlas    *raster.FrameBuffer
	view     *raster.FrameBuffer
	t        int
}

func newSky(o fx.Options) fx.Effect { return &Sky{textures: o.Provider()} }

func (s *Sky) Setup(w, h int) error {
	if err := s.alloc(w, h); err != nil {
		return err
	}
	atlas, err := texture.Sized(s.textures, "atlas", 256, 256)
	if err != nil {
		return fmt.Errorf("sky: %w", err)
	}
	s.atlas = atlas
	if s.view == nil {
		s.view = raster.NewFrameBuffer(skyWidth, skyHeight)
	}
	s.t = 0
	return nil
}

func (s *Sky) texel(x, y int) uint32 { return s.atlas.Pix[(y&255)<<8|x&255] }

func (s *Sky) planes() {
	for z := 1; z < 91; z++ {
		u := 0
		ustep := (160 << 7) / (2*z + 10)
		ynew := (7000/z + s.t) & 127
		ynew2 := (2048/z + s.t>>5) & 127
		for x := 0; x < 160; x++ {
			xnew := (u >> 7) & 127
			xnew2 := (u >> 9) & 127
			s.view.Set(160+x, 90-z, s.texel(255-xnew2, ynew2))
			s.view.Set(160-x, 90-z, s.texel(128+xnew2, ynew2))
			s.view.Set(160+x, 91+z, s.texel(127-xnew, ynew))
			s.view.Set(160-x, 91+z, s.texel(xnew, ynew))
			u += ustep
		}
	}
}

// sprite scales the 128² sprite by (rx, ry) centred on (x, y). Shadows are
// drawn at half brightness.
func (s *Sky) sprite(x, y int, rx, ry float64, shadow bool) {
	const side = 127
	xn := max(int(side*rx), 2)
	yn := max(int(side*ry), 2)
	an := int(float64(side<<8) / float64(yn))
	bn := int(float64(side<<8) / float64(xn))
	rn, tn := x-xn>>1, y-yn>>1
	for ut := 1; ut < xn; ut++ {
		for vt := 1; vt < yn; vt++ {
			c := s.texel((ut*bn)>>8, (vt*an)>>8+128)
			if c == texture.Key {
				continue
			}
			if shadow {
				c = c >> 1 & 0x7F7F7F
			}
			s.view.Set(ut+rn, vt+tn, c)
		}
	}
}

func (s *Sky) scroller() {
	for d := 0; d < skyWidth; d++ {
		t2 := (s.t/9 + d) & 1023
		ys := t2 >> 7
		xs := t2 & 127
		for c := 0; c < 15; c++ {
			s.view.Set(d, c+184, s.texel(xs+128, ys*16+128+c))
		}
	}
}

func (s *Sky) Step() {
	s.view.Fill(skyBlue)
	s.t += 10
	s.planes()
	for b := 0; b < 200; b += 10 {
		bb, ft := float64(b), float64(s.t)
		e := int(110 + 20*math.Cos((bb+ft)*0.01) + 15*math.Sin((4*bb+ft)*0.01))
		f := int(160 + 50*math.Sin((2*bb+ft)*0.01) + 25*math.Cos((2*bb+ft)*0.01))
		s.sprite(f, e, 0.1, 0.1, false)
		s.sprite(f, e>>2+135, 0.1, 0.04, true)
	}
	s.scroller()
	stretch(s.fb, s.view)
}

package effects

import (
	"fmt"
	"math"

	"oldschool-fx/internal/fx"
	"oldschool-fx/internal/raster"
	"oldschool-fx/internal/texture"
)

// Warp distorts a 256² texture through a logarithmic table computed for one
// quarter of the screen and mirrored into the other three.
type Warp struct {
	canvas
	textures    texture.Provider
	tex         *raster.FrameBuffer
	qw, qh      int
	dist        [][2]int16 // qh×qw
	alpha, beta float64
	dz, dw      float64
}

func newWarp(o fx.Options) fx.Effect { return &Warp{textures: o.Provider()} }

func (p *Warp) Setup(w, h int) error {
	if err := p.alloc(w, h); err != nil {
		return err
	}
	tex, err := texture.Sized(p.textures, "warp", 256, 256)
	if err != nil {
		return fmt.Errorf("warp: %w", err)
	}
	p.tex = tex

	p.qw, p.qh = w/2, h/2
	p.dist = make([][2]int16, p.qw*p.qh)
	fw, fh := float64(w), float64(h)
	for i := 0; i < p.qh; i++ {
		for j := 0; j < p.qw; j++ {
			f := math.Pow(float64(j)*1.2/fw, 2)
			u := math.Log(1+float64(i)/(fh/3)) / (3*f + 1) * fh / 2
			f = math.Pow(float64(i)*1.5/fw, 2)
			v := math.Log(1+float64(j)/(fw/3)) / (3*f + 1) * fw / 2
			p.dist[i*p.qw+j] = [2]int16{int16(u), int16(v)}
		}
	}
	p.alpha, p.beta, p.dz, p.dw = 0, 0, 0, 0
	return nil
}

// texel reads the texture transposed: u selects the row and v the column.
func (p *Warp) texel(u, v int) uint32 {
	return p.tex.Pix[(u&255)<<8|v&255]
}

func (p *Warp) Step() {
	p.alpha += 0.02
	p.beta += 0.044
	p.dz += math.Sin(p.alpha+p.beta)*2 + math.Cos(p.beta) + 0.4
	p.dw += math.Cos(p.beta-p.alpha)*3 + math.Sin(p.alpha) + 0.2
	decz, decw := int(p.dz), int(p.dw)

	w := p.w
	pix := p.fb.Pix
	for j := 0; j < p.qh; j++ {
		top := p.qw + w*(p.qh-j)
		bottom := p.qw + w*(p.qh+j)
		for i := 0; i < p.qw; i++ {
			d := p.dist[j*p.qw+i]
			dx, dy := int(d[0]), int(d[1])
			if top-i < len(pix) {
				pix[top-i] = p.texel(-dx+decz, -dy+decw)
			}
			if top+i < len(pix) {
				pix[top+i] = p.texel(-dx+decz, dy+decw)
			}
			if bottom-i < len(pix) {
				pix[bottom-i] = p.texel(dx+decz, -dy+decw)
			}
			if bottom+i < len(pix) {
				pix[bottom+i] = p.texel(dx+decz, dy+decw)
			}
		}
	}
}

package effects

import (
	"fmt"
	"math"

	"oldschool-fx/internal/fx"
	"oldschool-fx/internal/lut"
	"oldschool-fx/internal/raster"
	"oldschool-fx/internal/texture"
)

// RotoZoom rotates and zooms a 256² tile with 20.12 fixed-point stepping:
// each row starts one step perpendicular to the previous row's start.
type RotoZoom struct {
	canvas
	textures    texture.Provider
	tile        *raster.FrameBuffer
	roto, roto2 lut.Table // 256 entries, ×4096
	path, zpath int
}

func newRotoZoom(o fx.Options) fx.Effect { return &RotoZoom{textures: o.Provider()} }

func (r *RotoZoom) Setup(w, h int) error {
	if err := r.alloc(w, h); err != nil {
		return err
	}
	tile, err := texture.Sized(r.textures, "tile", 256, 256)
	if err != nil {
		return fmt.Errorf("rotozoom: %w", err)
	}
	r.tile = tile
	r.roto = lut.Build(256, func(i int) int {
		c := math.Sin(float64(i) * 1.41176 * 0.0174532)
		return int((c + 0.8) * 4096)
	})
	r.roto2 = lut.Build(256, func(i int) int {
		return int(2 * math.Sin(float64(i)*1.41176*0.0174532) * 4096)
	})
	r.path, r.zpath = 0, 0
	return nil
}

func (r *RotoZoom) Step() {
	r.draw(r.roto[r.path], r.roto[(r.path+128)&255], r.roto2[r.zpath])
	r.path = (r.path - 1) & 255
	r.zpath = (r.zpath + 1) & 255
}

// draw renders the tile for one rotation (stepx, stepy) and zoom, all 20.12.
func (r *RotoZoom) draw(stepx, stepy, zoom int) {
	xd := (stepx * zoom) >> 12
	yd := (stepy * zoom) >> 12
	sx, sy := 0, 0
	pix := r.fb.Pix
	for j := 0; j < r.h; j++ {
		x, y := sx, sy
		row := pix[j*r.w : (j+1)*r.w]
		for i := range row {
			row[i] = r.tile.Pix[((y>>12)&255)<<8|(x>>12)&255]
			x += xd
			y += yd
		}
		sx -= yd
		sy += xd
	}
}

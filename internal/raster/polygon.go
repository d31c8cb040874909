package raster

import (
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// Painter fills anti-aliased polygons into a FrameBuffer. It keeps its
// rasterizer and coverage mask between calls so per-frame use does not allocate.
type Painter struct {
	z      *vector.Rasterizer
	mask   image.Alpha
	bounds image.Rectangle
}

// NewPainter returns a painter for buffers of the given size.
func NewPainter(w, h int) *Painter {
	return &Painter{
		z:      vector.NewRasterizer(1, 1),
		bounds: image.Rect(0, 0, max(w, 1), max(h, 1)),
	}
}

// FillPolygon fills the closed polygon pts with colour c, blending the
// rasterizer's coverage over the existing pixels. The rasterizer and mask
// only span the polygon's bounding box clipped to the buffer.
func (p *Painter) FillPolygon(fb *FrameBuffer, pts [][2]float64, c uint32) {
	if len(pts) < 3 || fb.Width == 0 || fb.Height == 0 {
		return
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, pt := range pts {
		minX, maxX = math.Min(minX, pt[0]), math.Max(maxX, pt[0])
		minY, maxY = math.Min(minY, pt[1]), math.Max(maxY, pt[1])
	}
	r := image.Rect(int(math.Floor(minX)), int(math.Floor(minY)), int(math.Ceil(maxX))+1, int(math.Ceil(maxY))+1).
		Intersect(image.Rect(0, 0, fb.Width, fb.Height)).
		Intersect(p.bounds)
	if r.Empty() {
		return
	}

	dx, dy := r.Dx(), r.Dy()
	if n := dx * dy; cap(p.mask.Pix) < n {
		p.mask.Pix = make([]uint8, n)
	} else {
		p.mask.Pix = p.mask.Pix[:n]
	}
	p.mask.Stride = dx
	p.mask.Rect = image.Rect(0, 0, dx, dy)

	ox, oy := float64(r.Min.X), float64(r.Min.Y)
	p.z.Reset(dx, dy)
	p.z.DrawOp = draw.Src
	p.z.MoveTo(float32(pts[0][0]-ox), float32(pts[0][1]-oy))
	for _, pt := range pts[1:] {
		p.z.LineTo(float32(pt[0]-ox), float32(pt[1]-oy))
	}
	p.z.ClosePath()
	p.z.Draw(&p.mask, p.mask.Rect, image.Opaque, image.Point{})

	cr, cg, cb := Channels(c)
	for y := 0; y < dy; y++ {
		cover := p.mask.Pix[y*dx : (y+1)*dx]
		row := fb.Pix[(r.Min.Y+y)*fb.Width+r.Min.X:][:dx]
		for x, a8 := range cover {
			a := uint32(a8)
			switch a {
			case 0:
				continue
			case 255:
				row[x] = c
				continue
			}
			dr, dg, db := Channels(row[x])
			row[x] = RGB(
				blend(dr, cr, a),
				blend(dg, cg, a),
				blend(db, cb, a),
			)
		}
	}
}

func blend(dst, src uint8, a uint32) uint8 {
	return uint8((uint32(dst)*(255-a) + uint32(src)*a + 127) / 255)
}

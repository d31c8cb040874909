package postprocess

import (
	"image"

	"golang.org/x/image/draw"
)

// Fit rescales img to exactly w×h with CatmullRom filtering. Images already
// at the target size are returned unchanged.
func Fit(img *image.NRGBA, w, h int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return img
	}
	if w <= 0 || h <= 0 || b.Empty() {
		return image.NewNRGBA(image.Rect(0, 0, max(w, 0), max(h, 0)))
	}

	// Frames and textures are opaque, so no premultiply step is needed.
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Upscale enlarges img by an integer factor with nearest-neighbour sampling,
// keeping the hard pixel edges of low-resolution effects.
func Upscale(img *image.NRGBA, factor int) *image.NRGBA {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

package effects

import (
	"fmt"
	"math"

	"oldschool-fx/internal/fx"
	"oldschool-fx/internal/raster"
	"oldschool-fx/internal/texture"
)

const (
	lensSide   = 150
	lensZoom   = 40
	lensMargin = 15
)

// Lens bounces a magnifying sphere over a picture. The offset table is
// computed for one quadrant and mirrored; cells outside the sphere have a
// zero offset, so only the disc is distorted.
type Lens struct {
	canvas
	textures texture.Provider
	back     *raster.FrameBuffer
	offset   [lensSide][lensSide][2]int
	x, y     int
	xd, yd   int
}

func newLens(o fx.Options) fx.Effect { return &Lens{textures: o.Provider()} }

func (l *Lens) Setup(w, h int) error {
	if err := l.alloc(w, h); err != nil {
		return err
	}
	back, err := texture.Sized(l.textures, "emblem", w, h)
	if err != nil {
		return fmt.Errorf("lens: %w", err)
	}
	l.back = back

	const r, c = lensSide / 2, lensSide / 2
	l.offset = [lensSide][lensSide][2]int{}
	for y := 0; y < c; y++ {
		for x := 0; x < c; x++ {
			var ix, iy int
			if x*x+y*y < r*r {
				shift := lensZoom / math.Sqrt(float64(lensZoom*lensZoom-(x*x+y*y-r*r)))
				ix = int(float64(x)*shift - float64(x))
				iy = int(float64(y)*shift - float64(y))
			}
			l.offset[c-y][c-x] = [2]int{-ix, -iy}
			l.offset[c+y][c+x] = [2]int{ix, iy}
			l.offset[c+y][c-x] = [2]int{-ix, iy}
			l.offset[c-y][c+x] = [2]int{ix, -iy}
		}
	}
	l.x, l.y = 16, 16
	l.xd, l.yd = 1, 1
	return nil
}

func (l *Lens) Step() {
	copy(l.fb.Pix, l.back.Pix)
	for y := 0; y < lensSide; y++ {
		for x := 0; x < lensSide; x++ {
			px, py := l.x+x, l.y+y
			if !l.fb.In(px, py) {
				continue
			}
			o := l.offset[y][x]
			l.fb.Pix[py*l.w+px] = l.back.Clamped(px+o[0], py+o[1])
		}
	}
	l.x += l.xd
	l.y += l.yd
	if l.x > l.w-lensSide-lensMargin || l.x < lensMargin {
		l.xd = -l.xd
	}
	if l.y > l.h-lensSide-lensMargin || l.y < lensMargin {
		l.yd = -l.yd
	}
}

// Position returns the top-left corner of the lens square.
func (l *Lens) Position() (int, int) { return l.x, l.y }

package effects

import (
	"fmt"
	"math"

	"oldschool-fx/internal/fx"
	"oldschool-fx/internal/raster"
	"oldschool-fx/internal/texture"
)

const lakeFrames = 12

// Lake shows a picture over its rippling reflection. The twelve ripple
// frames are built once per Setup and then cycled.
type Lake struct {
	canvas
	textures texture.Provider
	pic      *raster.FrameBuffer
	waves    [lakeFrames]*raster.FrameBuffer
	current  int
}

func newLake(o fx.Options) fx.Effect { return &Lake{textures: o.Provider()} }

func (l *Lake) Setup(w, h int) error {
	if err := l.alloc(w, h); err != nil {
		return err
	}
	ih := max(h/2, 1)
	pic, err := texture.Sized(l.textures, "landscape", w, ih)
	if err != nil {
		return fmt.Errorf("lake: %w", err)
	}
	l.pic = pic
	for p := range l.waves {
		l.waves[p] = l.ripple(p)
	}
	l.current = 0
	return nil
}

// ripple builds frame p: every reflected line is taken from a line further
// down the mirror image by a displacement that decays with depth.
func (l *Lake) ripple(p int) *raster.FrameBuffer {
	w, ih := l.pic.Width, l.pic.Height
	out := raster.NewFrameBuffer(w, ih)
	phase := 2 * math.Pi * float64(p) / lakeFrames
	amp := ih / 14
	for j := 0; j < ih; j++ {
		k := int(float64(amp) * (float64(j) + 28) * math.Sin(float64(amp*(ih-j)/(j+1))+phase) / float64(ih))
		src := j
		if j >= -k {
			src = min(j+k, ih-1)
		}
		// mirror image: line 0 of the reflection is the picture's last line
		sy := ih - 1 - src
		copy(out.Pix[j*w:(j+1)*w], l.pic.Pix[sy*w:(sy+1)*w])
	}
	return out
}

func (l *Lake) Step() {
	l.current = (l.current + 1) % lakeFrames
	l.fb.CopyFrom(l.pic, 0, 0)
	l.fb.CopyFrom(l.waves[l.current], 0, l.pic.Height)
}

package batch

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/gif"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"
)

// encodeStill writes img as a single webp or png image.
func encodeStill(w io.Writer, img image.Image, format string) error {
	switch format {
	case "webp":
		return nativewebp.Encode(w, img, nil)
	case "png":
		return png.Encode(w, img)
	}
	return fmt.Errorf("unsupported still format %q", format)
}

// animation collects frames for one animated GIF.
type animation struct {
	g     gif.GIF
	delay int // hundredths of a second
}

func newAnimation(interval time.Duration) *animation {
	// browsers clamp shorter delays to 10 (100 ms)
	return &animation{delay: max(int(interval/(10*time.Millisecond)), 2)}
}

// add dithers img into the Plan 9 palette and appends it.
func (a *animation) add(img image.Image) {
	b := img.Bounds()
	p := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), palette.Plan9)
	draw.FloydSteinberg.Draw(p, p.Bounds(), img, b.Min)
	a.g.Image = append(a.g.Image, p)
	a.g.Delay = append(a.g.Delay, a.delay)
}

func (a *animation) len() int { return len(a.g.Image) }

func (a *animation) write(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gif.EncodeAll(f, &a.g); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

package present

import (
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"oldschool-fx/internal/raster"
)

// maxStepsPerUpdate bounds catch-up after a stall.
const maxStepsPerUpdate = 4

// Window is an ebiten.Game showing the switcher's effect. The logical
// screen is the window size divided by Scale, and Layout re-runs Setup
// whenever that changes.
type Window struct {
	sw    *Switcher
	scale int
	pace  pacer
	surf  surface[*ebiten.Image]
	err   error

	// ShowTitle draws the effect name in the corner.
	ShowTitle bool
}

// NewWindow wraps sw. scale enlarges every effect pixel to scale×scale.
func NewWindow(sw *Switcher, scale int) *Window {
	return &Window{
		sw:        sw,
		scale:     max(scale, 1),
		surf:      surface[*ebiten.Image]{alloc: ebiten.NewImage},
		ShowTitle: true,
	}
}

// Update implements ebiten.Game.
func (w *Window) Update() error {
	if w.err != nil {
		return w.err
	}

	var cmd command
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyQ):
		cmd = cmdQuit
	case inpututil.IsKeyJustPressed(ebiten.KeySpace), inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		cmd = cmdNext
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		cmd = cmdPrev
	case inpututil.IsKeyJustPressed(ebiten.KeyT):
		w.ShowTitle = !w.ShowTitle
	}
	switch cmd {
	case cmdQuit:
		return ebiten.Termination
	case cmdNext:
		w.err = w.sw.Next()
		w.pace.reset()
	case cmdPrev:
		w.err = w.sw.Prev()
		w.pace.reset()
	}
	if w.err != nil {
		return w.err
	}

	dt := time.Second / time.Duration(ebiten.TPS())
	p := w.sw.Player()
	for range w.pace.advance(dt, w.sw.interval(), maxStepsPerUpdate) {
		p.Tick()
	}
	return nil
}

// Draw implements ebiten.Game.
func (w *Window) Draw(screen *ebiten.Image) {
	fb := w.sw.Player().Frame()
	if fb == nil {
		return
	}
	screen.DrawImage(w.surf.upload(fb), nil)
	if w.ShowTitle {
		ebitenutil.DebugPrint(screen, w.sw.Title())
	}
}

// Layout implements ebiten.Game.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	vw := max(outsideWidth/w.scale, 1)
	vh := max(outsideHeight/w.scale, 1)
	if err := w.sw.Resize(vw, vh); err != nil && w.err == nil {
		w.err = err
	}
	return vw, vh
}

// gpuImage is the part of ebiten.Image a surface needs.
type gpuImage interface {
	WritePixels(pix []byte)
	Deallocate()
}

// surface uploads frames to a GPU image through a CPU staging buffer. Both
// are replaced when the frame size changes, and the old image is freed.
type surface[T gpuImage] struct {
	rgba  *image.NRGBA
	img   T
	alloc func(w, h int) T
}

// upload copies fb into the GPU image and returns it.
func (s *surface[T]) upload(fb *raster.FrameBuffer) T {
	if s.rgba == nil || s.rgba.Rect.Dx() != fb.Width || s.rgba.Rect.Dy() != fb.Height {
		if s.rgba != nil {
			s.img.Deallocate()
		}
		s.rgba = image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
		s.img = s.alloc(fb.Width, fb.Height)
	}
	// frames are opaque, so NRGBA bytes are already premultiplied
	fb.CopyTo(s.rgba)
	s.img.WritePixels(s.rgba.Pix)
	return s.img
}

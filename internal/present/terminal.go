package present

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"oldschool-fx/internal/postprocess"
	"oldschool-fx/internal/raster"
)

// cells is the part of tcell.Screen the terminal sink draws with.
type cells interface {
	Size() (int, int)
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Show()
}

// Terminal shows frames in a terminal. Each character cell carries two
// vertically stacked pixels: the upper half block in the foreground colour
// and the lower pixel as the background.
type Terminal struct {
	screen cells
}

// NewTerminal draws on s, which must already be initialised.
func NewTerminal(s cells) *Terminal {
	return &Terminal{screen: s}
}

// Viewport returns the pixel size the terminal can show.
func (t *Terminal) Viewport() (int, int) {
	cols, rows := t.screen.Size()
	return max(cols, 1), max(rows*2, 1)
}

// Present implements Sink. Frames of another size are rescaled to fit.
func (t *Terminal) Present(fb *raster.FrameBuffer) error {
	w, h := t.Viewport()
	img := postprocess.Fit(fb.NRGBA(), w, h)
	for y := 0; y+1 < h; y += 2 {
		for x := 0; x < w; x++ {
			top := img.PixOffset(x, y)
			bot := img.PixOffset(x, y+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(img.Pix[top]), int32(img.Pix[top+1]), int32(img.Pix[top+2]))).
				Background(tcell.NewRGBColor(int32(img.Pix[bot]), int32(img.Pix[bot+1]), int32(img.Pix[bot+2])))
			t.screen.SetContent(x, y/2, '▀', nil, style)
		}
	}
	t.screen.Show()
	return nil
}

// command is what a key press asks the viewer to do.
type command int

const (
	cmdNone command = iota
	cmdQuit
	cmdNext
	cmdPrev
)

func keyCommand(k tcell.Key, r rune) command {
	switch k {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return cmdQuit
	case tcell.KeyRight:
		return cmdNext
	case tcell.KeyLeft:
		return cmdPrev
	case tcell.KeyRune:
		switch r {
		case 'q', 'Q':
			return cmdQuit
		case ' ', 'n':
			return cmdNext
		case 'p':
			return cmdPrev
		}
	}
	return cmdNone
}

// Loop runs sw on screen until the user quits or ctx is done. Events are
// read on their own goroutine; frames are stepped on the effect's timer.
func Loop(ctx context.Context, screen tcell.Screen, sw *Switcher) error {
	t := NewTerminal(screen)
	if err := sw.Resize(t.Viewport()); err != nil {
		return err
	}

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(sw.interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
				if err := sw.Resize(t.Viewport()); err != nil {
					return err
				}
			case *tcell.EventKey:
				var err error
				switch keyCommand(ev.Key(), ev.Rune()) {
				case cmdQuit:
					return nil
				case cmdNext:
					err = sw.Next()
				case cmdPrev:
					err = sw.Prev()
				default:
					continue
				}
				if err != nil {
					return err
				}
				screen.Clear()
				ticker.Reset(sw.interval())
			}

		case <-ticker.C:
			p := sw.Player()
			p.Tick()
			if err := t.Present(p.Frame()); err != nil {
				return err
			}
		}
	}
}

package present

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"oldschool-fx/internal/effects"
	"oldschool-fx/internal/fx"
	"oldschool-fx/internal/raster"
	"oldschool-fx/internal/texture"
)

func player(t *testing.T, name string, w, h int) *fx.Player {
	t.Helper()
	e, info, err := effects.New(name, fx.Options{Seed: 3})
	if err != nil {
		t.Fatal(err)
	}
	p := fx.NewPlayer(e, info)
	if w > 0 {
		if err := p.Resize(w, h); err != nil {
			t.Fatal(err)
		}
	}
	return p
}

func TestRunPresentsEveryFrame(t *testing.T) {
	p := player(t, "plasma", 16, 8)
	var got []*raster.FrameBuffer
	sink := SinkFunc(func(fb *raster.FrameBuffer) error {
		if fb.Width != 16 || fb.Height != 8 {
			t.Errorf("frame %dx%d, want 16x8", fb.Width, fb.Height)
		}
		got = append(got, fb.Clone())
		return nil
	})
	if err := Run(context.Background(), p, sink, time.Millisecond, 3); err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || p.Frames() != 3 {
		t.Errorf("presented %d frames over %d steps, want 3", len(got), p.Frames())
	}
	if got[0].Equal(got[1]) {
		t.Error("consecutive plasma frames are identical")
	}
}

func TestRunStops(t *testing.T) {
	if err := Run(context.Background(), player(t, "fire", 0, 0), SinkFunc(func(*raster.FrameBuffer) error { return nil }), 0, 1); !errors.Is(err, ErrNotReady) {
		t.Errorf("Run before Resize = %v, want ErrNotReady", err)
	}

	boom := errors.New("boom")
	p := player(t, "fire", 8, 8)
	if err := Run(context.Background(), p, SinkFunc(func(*raster.FrameBuffer) error { return boom }), 0, 5); !errors.Is(err, boom) {
		t.Errorf("Run = %v, want sink error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := Run(ctx, p, SinkFunc(func(*raster.FrameBuffer) error { return nil }), 0, 0)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Run = %v, want deadline exceeded", err)
	}
}

func TestSwitcher(t *testing.T) {
	if _, err := NewSwitcher(nil, fx.Options{}); err == nil {
		t.Error("empty name list accepted")
	}
	if _, err := NewSwitcher([]string{"nope"}, fx.Options{}); !errors.Is(err, fx.ErrUnknownEffect) {
		t.Errorf("unknown effect: %v", err)
	}

	sw, err := NewSwitcher([]string{"fire", "plasma", "tunnel"}, fx.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if sw.Player().Frame() != nil {
		t.Error("frame before Resize")
	}
	if err := sw.Resize(20, 10); err != nil {
		t.Fatal(err)
	}

	steps := []struct {
		move  func() error
		index int
		name  string
	}{
		{sw.Next, 1, "plasma"},
		{sw.Next, 2, "tunnel"},
		{sw.Next, 0, "fire"},
		{sw.Prev, 2, "tunnel"},
	}
	for i, s := range steps {
		if err := s.move(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if sw.Index() != s.index || sw.Player().Info().Name != s.name {
			t.Errorf("step %d: at %d %s, want %d %s", i, sw.Index(), sw.Player().Info().Name, s.index, s.name)
		}
		if w, h := sw.Player().Size(); w != 20 || h != 10 {
			t.Errorf("step %d: viewport %dx%d, want 20x10", i, w, h)
		}
	}
	if got := sw.Title(); got != "Tunnel (3/3)" {
		t.Errorf("Title() = %q", got)
	}
}

// corruptFlower returns options whose "flower" texture is a broken PNG, so
// twirl and block fail Setup while everything else works.
func corruptFlower(t *testing.T) fx.Options {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "flower.png"), []byte("\x89PNG not really"), 0o644); err != nil {
		t.Fatal(err)
	}
	return fx.Options{Textures: texture.NewCache(texture.BuildIndex(dir))}
}

func TestSwitcherSkipsBrokenEffect(t *testing.T) {
	opts := corruptFlower(t)

	sw, err := NewSwitcher([]string{"plasma", "twirl", "tunnel"}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if err := sw.Resize(32, 24); err != nil {
		t.Fatal(err)
	}

	if err := sw.Next(); err != nil {
		t.Fatalf("Next() = %v, want the broken effect skipped", err)
	}
	if sw.Index() != 2 || sw.Player().Info().Name != "tunnel" {
		t.Errorf("Next() landed on %d %s, want 2 tunnel", sw.Index(), sw.Player().Info().Name)
	}
	if w, h := sw.Player().Size(); w != 32 || h != 24 {
		t.Errorf("viewport %dx%d, want 32x24", w, h)
	}

	failed := sw.Failures()["twirl"]
	if failed == nil {
		t.Fatal("no failure recorded for twirl")
	}
	if n := strings.Count(failed.Error(), "twirl"); n != 1 {
		t.Errorf("error names the effect %d times: %v", n, failed)
	}

	if err := sw.Prev(); err != nil {
		t.Fatal(err)
	}
	if sw.Index() != 0 {
		t.Errorf("Prev() landed on %d, want 0 (twirl skipped backwards)", sw.Index())
	}
	sw.Player().Tick()
	if sw.Player().Frames() != 1 {
		t.Error("effect after skipping does not run")
	}
}

func TestSwitcherResizeMovesPastBrokenEffect(t *testing.T) {
	opts := corruptFlower(t)

	// nothing is set up before the first Resize, so twirl is accepted here
	sw, err := NewSwitcher([]string{"twirl", "fire"}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if err := sw.Resize(16, 16); err != nil {
		t.Fatalf("Resize() = %v, want fire to take over", err)
	}
	if got := sw.Title(); got != "Fire (2/2, 1 skipped)" {
		t.Errorf("Title() = %q", got)
	}
	if sw.Player().Info().Name != "fire" || sw.Player().Frame() == nil {
		t.Errorf("running %s, want a set-up fire", sw.Player().Info().Name)
	}
	if _, ok := sw.Failures()["twirl"]; !ok {
		t.Error("twirl failure not recorded")
	}

	unknown, err := NewSwitcher([]string{"nope", "fire"}, fx.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if unknown.Index() != 1 || !errors.Is(unknown.Failures()["nope"], fx.ErrUnknownEffect) {
		t.Errorf("unknown name: index %d, failures %v", unknown.Index(), unknown.Failures())
	}

	broken, err := NewSwitcher([]string{"twirl", "block"}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if err := broken.Resize(16, 16); err == nil {
		t.Error("Resize() with only broken effects succeeded")
	}
	if len(broken.Failures()) != 2 {
		t.Errorf("failures = %v, want both effects", broken.Failures())
	}
}

func TestPacer(t *testing.T) {
	var p pacer
	steps := []struct {
		dt, interval time.Duration
		want         int
	}{
		{16 * time.Millisecond, 10 * time.Millisecond, 1}, // 6 ms left
		{4 * time.Millisecond, 10 * time.Millisecond, 1},  // 0 left
		{5 * time.Millisecond, 10 * time.Millisecond, 0},
		{100 * time.Millisecond, 10 * time.Millisecond, 4}, // capped, backlog dropped
		{9 * time.Millisecond, 10 * time.Millisecond, 0},
	}
	for i, s := range steps {
		if got := p.advance(s.dt, s.interval, 4); got != s.want {
			t.Errorf("step %d: advance = %d, want %d", i, got, s.want)
		}
	}
}

func TestKeyCommand(t *testing.T) {
	tests := []struct {
		key  tcell.Key
		r    rune
		want command
	}{
		{tcell.KeyEscape, 0, cmdQuit},
		{tcell.KeyCtrlC, 0, cmdQuit},
		{tcell.KeyRune, 'q', cmdQuit},
		{tcell.KeyRight, 0, cmdNext},
		{tcell.KeyRune, ' ', cmdNext},
		{tcell.KeyLeft, 0, cmdPrev},
		{tcell.KeyRune, 'x', cmdNone},
		{tcell.KeyEnter, 0, cmdNone},
	}
	for _, tt := range tests {
		if got := keyCommand(tt.key, tt.r); got != tt.want {
			t.Errorf("keyCommand(%v, %q) = %d, want %d", tt.key, tt.r, got, tt.want)
		}
	}
}

type fakeCells struct {
	w, h  int
	runes map[[2]int]rune
	style map[[2]int]tcell.Style
	shown int
}

func newFakeCells(w, h int) *fakeCells {
	return &fakeCells{w: w, h: h, runes: map[[2]int]rune{}, style: map[[2]int]tcell.Style{}}
}

func (f *fakeCells) Size() (int, int) { return f.w, f.h }

func (f *fakeCells) SetContent(x, y int, primary rune, _ []rune, style tcell.Style) {
	f.runes[[2]int{x, y}] = primary
	f.style[[2]int{x, y}] = style
}

func (f *fakeCells) Show() { f.shown++ }

func TestTerminalHalfBlocks(t *testing.T) {
	screen := newFakeCells(3, 2)
	term := NewTerminal(screen)
	if w, h := term.Viewport(); w != 3 || h != 4 {
		t.Fatalf("Viewport() = %dx%d, want 3x4", w, h)
	}

	fb := raster.NewFrameBuffer(3, 4)
	fb.Set(1, 2, 0xFF0000) // top of cell (1,1)
	fb.Set(1, 3, 0x0000FF) // bottom of cell (1,1)
	if err := term.Present(fb); err != nil {
		t.Fatal(err)
	}
	if screen.shown != 1 {
		t.Errorf("Show called %d times, want 1", screen.shown)
	}
	if len(screen.runes) != 6 {
		t.Errorf("wrote %d cells, want 6", len(screen.runes))
	}
	if r := screen.runes[[2]int{1, 1}]; r != '▀' {
		t.Errorf("cell rune %q, want upper half block", r)
	}
	want := tcell.StyleDefault.Foreground(tcell.NewRGBColor(255, 0, 0)).Background(tcell.NewRGBColor(0, 0, 255))
	if got := screen.style[[2]int{1, 1}]; got != want {
		t.Errorf("cell (1,1) style = %v, want red over blue", got)
	}
	black := tcell.StyleDefault.Foreground(tcell.NewRGBColor(0, 0, 0)).Background(tcell.NewRGBColor(0, 0, 0))
	if got := screen.style[[2]int{0, 0}]; got != black {
		t.Errorf("cell (0,0) style = %v, want black", got)
	}
}

type fakeImage struct {
	w, h    int
	written int
	freed   bool
}

func (f *fakeImage) WritePixels(pix []byte) { f.written = len(pix) }
func (f *fakeImage) Deallocate()            { f.freed = true }

func TestSurfaceFreesReplacedImage(t *testing.T) {
	var made []*fakeImage
	s := surface[*fakeImage]{alloc: func(w, h int) *fakeImage {
		img := &fakeImage{w: w, h: h}
		made = append(made, img)
		return img
	}}

	first := s.upload(raster.NewFrameBuffer(4, 2))
	if again := s.upload(raster.NewFrameBuffer(4, 2)); again != first || len(made) != 1 {
		t.Fatalf("same-size upload allocated %d images", len(made))
	}
	if first.written != 4*2*4 {
		t.Errorf("wrote %d bytes, want %d", first.written, 4*2*4)
	}

	second := s.upload(raster.NewFrameBuffer(3, 3))
	if len(made) != 2 || second == first || second.w != 3 || second.h != 3 {
		t.Fatalf("resize: %d images, new %dx%d", len(made), second.w, second.h)
	}
	if !first.freed {
		t.Error("replaced image was not deallocated")
	}
	if second.freed {
		t.Error("current image deallocated")
	}
}

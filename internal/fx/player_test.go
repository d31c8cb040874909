package fx

import (
	"errors"
	"testing"

	"oldschool-fx/internal/raster"
)

type countingEffect struct {
	setups int
	steps  int
	fb     *raster.FrameBuffer
}

func (c *countingEffect) Setup(w, h int) error {
	if err := CheckViewport(w, h); err != nil {
		return err
	}
	c.setups++
	c.fb = raster.NewFrameBuffer(w, h)
	return nil
}

func (c *countingEffect) Step() {
	c.steps++
	c.fb.Fill(uint32(c.steps))
}

func (c *countingEffect) Frame() *raster.FrameBuffer { return c.fb }

func TestPlayerResizeOnlyOnChange(t *testing.T) {
	e := &countingEffect{}
	p := NewPlayer(e, Info{Name: "count"})

	if p.Frame() != nil {
		t.Fatal("frame before resize should be nil")
	}
	p.Tick()
	if e.steps != 0 {
		t.Fatal("tick before resize must not step")
	}

	steps := []struct {
		w, h       int
		wantSetups int
	}{
		{64, 48, 1},
		{64, 48, 1},
		{32, 48, 2},
		{32, 48, 2},
		{64, 48, 3},
	}
	for _, s := range steps {
		if err := p.Resize(s.w, s.h); err != nil {
			t.Fatalf("Resize(%d,%d): %v", s.w, s.h, err)
		}
		if e.setups != s.wantSetups {
			t.Errorf("after Resize(%d,%d): setups = %d, want %d", s.w, s.h, e.setups, s.wantSetups)
		}
		p.Tick()
		fb := p.Frame()
		if fb.Width != s.w || fb.Height != s.h || len(fb.Pix) != s.w*s.h {
			t.Errorf("frame is %dx%d (%d px), want %dx%d", fb.Width, fb.Height, len(fb.Pix), s.w, s.h)
		}
	}
}

func TestPlayerRejectsEmptyViewport(t *testing.T) {
	p := NewPlayer(&countingEffect{}, Info{})
	err := p.Resize(0, 10)
	if !errors.Is(err, ErrViewport) {
		t.Fatalf("err = %v, want ErrViewport", err)
	}
	if p.Frame() != nil {
		t.Error("failed setup must leave the player unready")
	}
}

func TestNewRandRepeats(t *testing.T) {
	a, b := NewRand(42), NewRand(42)
	for i := 0; i < 100; i++ {
		if a.Uint64() != b.Uint64() {
			t.Fatalf("sequences diverge at %d", i)
		}
	}
	if NewRand(1).Uint64() == NewRand(2).Uint64() {
		t.Error("different seeds produced the same first value")
	}
}

// Package present hands finished frames to a display. Presenters only read
// frames through fx.Player; they never reach into an effect's buffers.
package present

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"time"

	"oldschool-fx/internal/effects"
	"oldschool-fx/internal/fx"
	"oldschool-fx/internal/lut"
	"oldschool-fx/internal/raster"
)

// MinInterval is the shortest tick a presenter honours. A few effects were
// tuned for a 1 ms timer that no display refreshes at.
const MinInterval = 10 * time.Millisecond

// ErrNotReady is returned when a player is driven before its first Resize.
var ErrNotReady = errors.New("present: player has no viewport")

// Sink receives finished frames.
type Sink interface {
	Present(fb *raster.FrameBuffer) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(fb *raster.FrameBuffer) error

// Present implements Sink.
func (f SinkFunc) Present(fb *raster.FrameBuffer) error { return f(fb) }

// Run ticks p every interval and hands each new frame to sink. Each frame is
// complete before the next step starts. It returns after frames steps, or
// when ctx is done if frames is zero.
func Run(ctx context.Context, p *fx.Player, sink Sink, interval time.Duration, frames int) error {
	if p.Frame() == nil {
		return ErrNotReady
	}
	ticker := time.NewTicker(max(interval, MinInterval))
	defer ticker.Stop()

	for n := 0; frames <= 0 || n < frames; n++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		p.Tick()
		if err := sink.Present(p.Frame()); err != nil {
			return err
		}
	}
	return nil
}

// Switcher owns the running effect of an interactive viewer and replaces it
// when the user cycles. A new effect is set up for the current viewport.
// Effects that fail to set up are skipped and their errors kept, so one
// broken asset never stops the viewer.
type Switcher struct {
	names  []string
	opts   fx.Options
	i      int
	player *fx.Player
	w, h   int
	failed map[string]error
}

// NewSwitcher builds the first effect of names that sets up. It fails only
// when none does.
func NewSwitcher(names []string, opts fx.Options) (*Switcher, error) {
	if len(names) == 0 {
		return nil, errors.New("present: no effects to show")
	}
	s := &Switcher{names: names, opts: opts, failed: make(map[string]error)}
	if err := s.seek(0, 1); err != nil {
		return nil, err
	}
	return s, nil
}

// Player returns the running effect.
func (s *Switcher) Player() *fx.Player { return s.player }

// Index returns the position of the running effect in the name list.
func (s *Switcher) Index() int { return s.i }

// Title describes the running effect for a status line.
func (s *Switcher) Title() string {
	info := s.player.Info()
	if n := len(s.failed); n > 0 {
		return fmt.Sprintf("%s (%d/%d, %d skipped)", info.Title, s.i+1, len(s.names), n)
	}
	return fmt.Sprintf("%s (%d/%d)", info.Title, s.i+1, len(s.names))
}

// Failures returns the last setup error of every effect that is currently
// being skipped, keyed by name.
func (s *Switcher) Failures() map[string]error {
	return maps.Clone(s.failed)
}

// Resize sets the viewport for the running effect and all later ones. If the
// running effect cannot set up at the new size, the next one that can takes
// its place.
func (s *Switcher) Resize(w, h int) error {
	s.w, s.h = w, h
	if err := s.player.Resize(w, h); err != nil {
		s.failed[s.names[s.i]] = fmt.Errorf("present: %w", err)
		return s.seek(s.i+1, 1)
	}
	return nil
}

// Next switches to the following effect, wrapping at the end.
func (s *Switcher) Next() error { return s.seek(s.i+1, 1) }

// Prev switches to the preceding effect, wrapping at the start.
func (s *Switcher) Prev() error { return s.seek(s.i-1, -1) }

// seek shows the first effect from i onwards in direction dir that sets up.
// Every name is tried at most once.
func (s *Switcher) seek(i, dir int) error {
	var last error
	for range s.names {
		i = lut.Wrap(i, len(s.names))
		err := s.show(i)
		if err == nil {
			delete(s.failed, s.names[i])
			return nil
		}
		s.failed[s.names[i]] = err
		last = err
		i += dir
	}
	return fmt.Errorf("present: no effect could be set up: %w", last)
}

func (s *Switcher) show(i int) error {
	e, info, err := effects.New(s.names[i], s.opts)
	if err != nil {
		return fmt.Errorf("present: %w", err)
	}
	p := fx.NewPlayer(e, info)
	if s.w > 0 && s.h > 0 {
		if err := p.Resize(s.w, s.h); err != nil {
			return fmt.Errorf("present: %w", err)
		}
	}
	s.i = i
	s.player = p
	return nil
}

// interval returns the tick period of the running effect.
func (s *Switcher) interval() time.Duration {
	return max(s.player.Info().Interval, MinInterval)
}

// pacer converts display updates into effect steps: it accumulates elapsed
// time and releases one step per whole interval, at most limit per call.
type pacer struct {
	acc time.Duration
}

func (p *pacer) advance(dt, interval time.Duration, limit int) int {
	p.acc += dt
	n := 0
	for p.acc >= interval && n < limit {
		p.acc -= interval
		n++
	}
	if n == limit {
		// drop any backlog
		p.acc = 0
	}
	return n
}

func (p *pacer) reset() { p.acc = 0 }

package fx

import "oldschool-fx/internal/raster"

// Player drives one effect for a presenter. It re-runs Setup only when the
// viewport actually changes and counts the steps taken since then.
type Player struct {
	effect Effect
	info   Info
	width  int
	height int
	frames int
	ready  bool
}

// NewPlayer wraps e. Resize must be called before the first Tick.
func NewPlayer(e Effect, info Info) *Player {
	return &Player{effect: e, info: info}
}

// Info returns the description of the wrapped effect.
func (p *Player) Info() Info { return p.info }

// Effect returns the wrapped effect.
func (p *Player) Effect() Effect { return p.effect }

// Resize sets the viewport, calling Setup when it differs from the current one.
func (p *Player) Resize(width, height int) error {
	if p.ready && width == p.width && height == p.height {
		return nil
	}
	if err := p.effect.Setup(width, height); err != nil {
		p.ready = false
		return err
	}
	p.width, p.height = width, height
	p.frames = 0
	p.ready = true
	return nil
}

// Tick advances the effect by one step. It is a no-op before a successful Resize.
func (p *Player) Tick() {
	if !p.ready {
		return
	}
	p.effect.Step()
	p.frames++
}

// Frame returns the current frame, or nil before a successful Resize.
func (p *Player) Frame() *raster.FrameBuffer {
	if !p.ready {
		return nil
	}
	return p.effect.Frame()
}

// Frames returns the number of steps since the last Setup.
func (p *Player) Frames() int { return p.frames }

// Size returns the current viewport.
func (p *Player) Size() (int, int) { return p.width, p.height }

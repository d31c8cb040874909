// Package fx defines the lifecycle every effect follows: Setup sizes the
// buffers and tables for a viewport, Step advances the animation by one
// tick, and Frame returns the pixels computed by the last Step.
package fx

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"oldschool-fx/internal/raster"
	"oldschool-fx/internal/texture"
)

var (
	// ErrViewport is returned by Setup for a non-positive width or height.
	ErrViewport = errors.New("fx: viewport must be at least 1x1")
	// ErrUnknownEffect is returned when a name is not registered.
	ErrUnknownEffect = errors.New("fx: unknown effect")
)

// Effect is one animated pixel kernel.
type Effect interface {
	// Setup (re)allocates buffers and viewport-dependent tables. It is called
	// once before the first Step and again whenever the viewport changes.
	Setup(width, height int) error
	// Step advances the animation state and recomputes the frame.
	Step()
	// Frame returns the most recently computed frame. The buffer is owned by
	// the effect and is overwritten by the next Step.
	Frame() *raster.FrameBuffer
}

// Kind groups effects by how their kernel computes a frame.
type Kind int

const (
	ClosedForm Kind = iota // pixel is a pure function of position and phase
	Automaton              // pixel depends on its neighbours in the previous frame
	Particles              // independent entities stamped into the buffer
	Transform              // inverse mapping into a source texture
	Raster                 // scanline and text compositions
)

func (k Kind) String() string {
	switch k {
	case ClosedForm:
		return "closed-form"
	case Automaton:
		return "automaton"
	case Particles:
		return "particles"
	case Transform:
		return "transform"
	case Raster:
		return "raster"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Info describes a registered effect.
type Info struct {
	Name     string        `json:"name"`
	Title    string        `json:"title"`
	Kind     Kind          `json:"-"`
	Interval time.Duration `json:"interval"` // timer period the effect was tuned for
	Width    int           `json:"width"`    // canvas size the effect was tuned for
	Height   int           `json:"height"`
	Assets   []string      `json:"assets,omitempty"`
}

// Options carries what an effect may not create by itself.
type Options struct {
	Seed     uint64
	Textures texture.Provider // nil means procedural textures only
	Text     string           // scroller message; empty selects the default
}

// Rand returns a generator seeded from o.Seed.
func (o Options) Rand() *rand.Rand {
	return NewRand(o.Seed)
}

// Provider returns the configured texture provider or the procedural set.
func (o Options) Provider() texture.Provider {
	if o.Textures == nil {
		return texture.Procedural{}
	}
	return o.Textures
}

// NewRand returns a PCG generator so runs with the same seed repeat exactly.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// CheckViewport validates a Setup size.
func CheckViewport(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrViewport, width, height)
	}
	return nil
}

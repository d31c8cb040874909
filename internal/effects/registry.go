package effects

import (
	"fmt"
	"time"

	"oldschool-fx/internal/fx"
)

type entry struct {
	info fx.Info
	ctor func(fx.Options) fx.Effect
}

func info(name, title string, kind fx.Kind, ms, w, h int, assets ...string) fx.Info {
	return fx.Info{
		Name:     name,
		Title:    title,
		Kind:     kind,
		Interval: time.Duration(ms) * time.Millisecond,
		Width:    w,
		Height:   h,
		Assets:   assets,
	}
}

// catalogue lists every effect in presentation order.
var catalogue = []entry{
	{info("plasma", "Plasma", fx.ClosedForm, 10, 640, 480), newPlasma},
	{info("moire", "Moire", fx.ClosedForm, 10, 256, 256), newMoire},
	{info("mandelbrot", "Mandelbrot", fx.ClosedForm, 10, 640, 480), newMandelbrot},
	{info("tunnel", "Tunnel", fx.ClosedForm, 10, 256, 256), newTunnel},
	{info("looktunnel", "Look Tunnel", fx.ClosedForm, 1, 256, 256, "stone"), newLookTunnel},

	{info("fire", "Fire", fx.Automaton, 10, 256, 256), newFire},
	{info("burningsea", "Burning Sea", fx.Automaton, 10, 640, 200), newBurningSea},
	{info("ripple", "Ripple", fx.Automaton, 33, 408, 306, "ocean"), newRipple},
	{info("explosion", "Explosion", fx.Automaton, 10, 480, 360), newExplosion},

	{info("starfield", "Starfield", fx.Particles, 10, 480, 360), newStarfield},
	{info("blob", "Blob", fx.Particles, 10, 800, 600), newBlob},
	{info("shadebobs", "Shade Bobs", fx.Particles, 10, 480, 360), newShadeBobs},
	{info("unlimitedballs", "Unlimited Balls", fx.Particles, 10, 512, 512, "ball"), newUnlimitedBalls},
	{info("copper", "Coppers", fx.Raster, 10, 480, 360), newCopper},
	{info("rasterbars", "Rasters", fx.Raster, 10, 320, 240), newRasterBars},
	{info("wave", "Wave", fx.Particles, 10, 640, 480), newWave},

	{info("rotozoom", "RotoZoom", fx.Transform, 10, 480, 360, "tile"), newRotoZoom},
	{info("warp", "Warp", fx.Transform, 30, 640, 480, "warp"), newWarp},
	{info("wormhole", "Wormhole", fx.Transform, 30, 640, 480, "wormhole"), newWormhole},
	{info("twirl", "Twirl", fx.Transform, 10, 240, 160, "flower"), newTwirl},
	{info("block", "Block", fx.Transform, 10, 240, 160, "flower"), newBlock},
	{info("lens", "Lens", fx.Transform, 10, 340, 360, "emblem"), newLens},
	{info("bump", "Bump", fx.Transform, 1, 640, 400, "bump"), newBump},
	{info("wobble", "Wobble", fx.Transform, 10, 210, 200, "isle"), newWobble},
	{info("flattext", "Flat Text", fx.Transform, 10, 640, 400, "flat"), newFlatText},
	{info("sinewave", "Sine Wave", fx.Transform, 10, 340, 360, "emblem"), newSineWave},
	{info("lake", "Lake", fx.Transform, 100, 306, 300, "landscape"), newLake},
	{info("twister", "Twister", fx.Transform, 100, 640, 480), newTwister},
	{info("voxel", "Voxel", fx.Transform, 10, 640, 400, "heightmap", "colormap", "sunset"), newVoxel},
	{info("dancing", "Dancing", fx.Transform, 10, 640, 480), newDancing},
	{info("sky", "Sky", fx.Raster, 10, 320, 200, "atlas"), newSky},

	{info("sinescroll", "Sine Scroll", fx.Raster, 10, 256, 256), newSineScroll},
	{info("simplescroll", "Simple Scroll", fx.Raster, 10, 480, 360), newSimpleScroll},
	{info("starwars", "Starwars Scroll", fx.Raster, 50, 480, 360), newStarWars},
}

// Names returns the registered effect names in presentation order.
func Names() []string {
	out := make([]string, len(catalogue))
	for i, e := range catalogue {
		out[i] = e.info.Name
	}
	return out
}

// All returns the Info of every registered effect.
func All() []fx.Info {
	out := make([]fx.Info, len(catalogue))
	for i, e := range catalogue {
		out[i] = e.info
	}
	return out
}

// Lookup returns the Info for name.
func Lookup(name string) (fx.Info, bool) {
	for _, e := range catalogue {
		if e.info.Name == name {
			return e.info, true
		}
	}
	return fx.Info{}, false
}

// New constructs the named effect. The effect is not set up yet.
func New(name string, opts fx.Options) (fx.Effect, fx.Info, error) {
	for _, e := range catalogue {
		if e.info.Name == name {
			return e.ctor(opts), e.info, nil
		}
	}
	return nil, fx.Info{}, fmt.Errorf("%w: %q", fx.ErrUnknownEffect, name)
}

package main

import (
	"errors"
	"flag"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"

	"oldschool-fx/internal/config"
	"oldschool-fx/internal/effects"
	"oldschool-fx/internal/fx"
	"oldschool-fx/internal/present"
	"oldschool-fx/internal/texture"
)

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	names := flag.String("effects", "", "Comma separated effects to cycle through (default: all)")
	width := flag.Int("width", 0, "Effect viewport width (default: 320)")
	height := flag.Int("height", 0, "Effect viewport height (default: 240)")
	scale := flag.Int("scale", 2, "Window pixels per effect pixel")
	assetDir := flag.String("assets", "", "Directory with texture overrides")
	seed := flag.Uint64("seed", 0, "Random seed for the stochastic effects")
	text := flag.String("text", "", "Scroller text")
	flag.Parse()

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{
		Effects:  *names,
		AssetDir: *assetDir,
		Width:    *width,
		Height:   *height,
		Scale:    *scale,
		Seed:     *seed,
		Text:     *text,
	})

	selected := cfg.Effects
	if len(selected) == 0 {
		selected = effects.Names()
	}
	sw, err := present.NewSwitcher(selected, fx.Options{
		Seed:     cfg.Seed,
		Textures: texture.NewCache(texture.BuildIndex(cfg.AssetDir)),
		Text:     cfg.Text,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(cfg.Width*cfg.Scale, cfg.Height*cfg.Scale)
	ebiten.SetWindowTitle("Oldschool effects - Space/Right: next, Left: previous, T: title, Esc/Q: quit")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	err = ebiten.RunGame(present.NewWindow(sw, cfg.Scale))
	reportSkipped(sw)
	if err != nil && !errors.Is(err, ebiten.Termination) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// reportSkipped lists the effects that could not be set up.
func reportSkipped(sw *present.Switcher) {
	failed := sw.Failures()
	for _, name := range slices.Sorted(maps.Keys(failed)) {
		fmt.Fprintf(os.Stderr, "Skipped %s: %v\n", name, failed[name])
	}
}

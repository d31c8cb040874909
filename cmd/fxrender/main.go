package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"oldschool-fx/internal/batch"
	"oldschool-fx/internal/config"
	"oldschool-fx/internal/effects"
	"oldschool-fx/internal/texture"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	list := flag.Bool("list", false, "List the available effects and exit")
	names := flag.String("effects", "", "Comma separated effect names (default: all)")
	width := flag.Int("width", 0, "Viewport width (default: 320)")
	height := flag.Int("height", 0, "Viewport height (default: 240)")
	frames := flag.Int("frames", 0, "Steps to run per effect (default: 100)")
	every := flag.Int("every", 0, "Write every Nth frame (default: 10)")
	format := flag.String("format", "", "Output format: webp, png or gif (default: webp)")
	scale := flag.Int("scale", 0, "Integer upscale factor for written frames (default: 1)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	assetDir := flag.String("assets", "", "Directory with texture overrides (default: procedural only)")
	outputDir := flag.String("output", "", "Output directory (default: renders)")
	seed := flag.Uint64("seed", 0, "Random seed for the stochastic effects")
	text := flag.String("text", "", "Scroller text")

	flag.Parse()

	if *list {
		for _, info := range effects.All() {
			fmt.Printf("%-14s %-16s %-11s %4dms %dx%d\n", info.Name, info.Title, info.Kind,
				info.Interval.Milliseconds(), info.Width, info.Height)
		}
		return
	}

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		Effects:   *names,
		AssetDir:  *assetDir,
		OutputDir: *outputDir,
		Width:     *width,
		Height:    *height,
		Frames:    *frames,
		Every:     *every,
		Format:    *format,
		Scale:     *scale,
		Workers:   *workers,
		Seed:      *seed,
		Text:      *text,
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	selected := cfg.Effects
	if len(selected) == 0 {
		selected = effects.Names()
	}

	// Build texture index
	texIndex := texture.BuildIndex(cfg.AssetDir)
	texCache := texture.NewCache(texIndex)
	fmt.Printf("Textures: %d indexed, %d procedural fallbacks\n", texIndex.Len(), len(texture.Names()))

	fmt.Printf("Oldschool effects → %s\n", cfg.Format)
	fmt.Printf("Effects: %d, Viewport: %dx%d, Frames: %d (every %d), Workers: %d\n",
		len(selected), cfg.Width, cfg.Height, cfg.Frames, cfg.Every, cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	// Run batch
	batchCfg := batch.Config{
		OutputDir: cfg.OutputDir,
		Textures:  texCache,
		Width:     cfg.Width,
		Height:    cfg.Height,
		Frames:    cfg.Frames,
		Every:     cfg.Every,
		Format:    cfg.Format,
		Scale:     cfg.Scale,
		Workers:   cfg.Workers,
		Seed:      cfg.Seed,
		Text:      cfg.Text,
	}

	results := batch.Run(batchCfg, selected)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, files := 0, 0
	var failed []batch.Result
	for _, r := range results {
		files += len(r.Files)
		if r.Success {
			success++
		} else {
			failed = append(failed, r)
		}
	}

	fmt.Printf("Rendered: %d/%d effects, %d files\n", success, len(selected), files)

	if len(failed) > 0 {
		fmt.Printf("\nFailed (%d):\n", len(failed))
		for _, e := range failed {
			fmt.Printf("  %s: %s\n", e.Name, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	os.MkdirAll(cfg.OutputDir, 0755)
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if len(failed) > 0 {
		os.Exit(1)
	}
}

package batch

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"oldschool-fx/internal/effects"
	"oldschool-fx/internal/fx"
	"oldschool-fx/internal/postprocess"
	"oldschool-fx/internal/texture"
)

// Config holds all shared resources for a batch run.
type Config struct {
	OutputDir string
	Textures  texture.Provider
	Width     int
	Height    int
	Frames    int // steps per effect
	Every     int // keep every Every-th frame
	Format    string
	Scale     int
	Workers   int
	Seed      uint64
	Text      string
	Quiet     bool // no progress lines
}

// Result holds the outcome of rendering one effect.
type Result struct {
	Name    string
	Files   []string // relative to OutputDir
	Success bool
	Error   string
}

// Run renders every named effect using a worker pool. Effects are
// independent: one failing does not stop the others.
func Run(cfg Config, names []string) []Result {
	total := len(names)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 && !cfg.Quiet {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					fmt.Printf("  [%d/%d] %.1f effects/sec\n", p, total, rate)
				}
			}
		}
	}()

	// Worker pool
	workers := max(cfg.Workers, 1)
	nameChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range nameChan {
				results[idx] = renderEffect(cfg, names[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range names {
		nameChan <- i
	}
	close(nameChan)

	wg.Wait()
	close(done)

	return results
}

func renderEffect(cfg Config, name string) Result {
	fail := func(err error) Result {
		return Result{Name: name, Error: err.Error()}
	}

	e, info, err := effects.New(name, fx.Options{Seed: cfg.Seed, Textures: cfg.Textures, Text: cfg.Text})
	if err != nil {
		return fail(err)
	}
	p := fx.NewPlayer(e, info)
	if err := p.Resize(cfg.Width, cfg.Height); err != nil {
		return fail(err)
	}

	every := max(cfg.Every, 1)
	var (
		files []string
		anim  *animation
	)
	if cfg.Format == "gif" {
		anim = newAnimation(info.Interval * time.Duration(every))
	}

	for i := 1; i <= cfg.Frames; i++ {
		p.Tick()
		if i%every != 0 {
			continue
		}
		img := postprocess.Upscale(p.Frame().NRGBA(), cfg.Scale)
		if anim != nil {
			anim.add(img)
			continue
		}
		rel := filepath.Join(name, fmt.Sprintf("%04d.%s", i, cfg.Format))
		if err := writeFrame(filepath.Join(cfg.OutputDir, rel), img, cfg.Format); err != nil {
			return Result{Name: name, Files: files, Error: err.Error()}
		}
		files = append(files, rel)
	}

	if anim != nil {
		if anim.len() == 0 {
			return fail(fmt.Errorf("%s: no frames selected (frames %d, every %d)", name, cfg.Frames, every))
		}
		rel := name + ".gif"
		if err := anim.write(filepath.Join(cfg.OutputDir, rel)); err != nil {
			return fail(err)
		}
		files = append(files, rel)
	}

	return Result{Name: name, Files: files, Success: true}
}

// writeFrame encodes one still frame, creating its directory.
func writeFrame(path string, img image.Image, format string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encodeStill(f, img, format); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

package batch

import (
	"encoding/json"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"oldschool-fx/internal/texture"
)

func testConfig(t *testing.T, format string) Config {
	return Config{
		OutputDir: t.TempDir(),
		Textures:  texture.NewCache(nil),
		Width:     32,
		Height:    24,
		Frames:    6,
		Every:     3,
		Format:    format,
		Scale:     2,
		Workers:   2,
		Seed:      1,
		Quiet:     true,
	}
}

func TestRunWritesFrames(t *testing.T) {
	for _, format := range []string{"png", "webp"} {
		t.Run(format, func(t *testing.T) {
			cfg := testConfig(t, format)
			results := Run(cfg, []string{"plasma", "fire", "nope"})
			if len(results) != 3 {
				t.Fatalf("got %d results, want 3", len(results))
			}
			for _, r := range results[:2] {
				if !r.Success || len(r.Files) != 2 {
					t.Errorf("%s: success=%v files=%v err=%q", r.Name, r.Success, r.Files, r.Error)
				}
				for _, f := range r.Files {
					st, err := os.Stat(filepath.Join(cfg.OutputDir, f))
					if err != nil || st.Size() == 0 {
						t.Errorf("%s: %v", f, err)
					}
				}
			}
			if r := results[2]; r.Success || r.Error == "" {
				t.Errorf("unknown effect: %+v", r)
			}
		})
	}
}

func TestPNGScaled(t *testing.T) {
	cfg := testConfig(t, "png")
	r := Run(cfg, []string{"tunnel"})[0]
	if !r.Success {
		t.Fatal(r.Error)
	}
	f, err := os.Open(filepath.Join(cfg.OutputDir, r.Files[0]))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Errorf("frame %v, want 64x48", b)
	}
}

func TestRunGIF(t *testing.T) {
	cfg := testConfig(t, "gif")
	r := Run(cfg, []string{"copper"})[0]
	if !r.Success || len(r.Files) != 1 {
		t.Fatalf("result %+v", r)
	}
	f, err := os.Open(filepath.Join(cfg.OutputDir, r.Files[0]))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	g, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Image) != 2 {
		t.Errorf("gif has %d frames, want 2", len(g.Image))
	}
	if g.Delay[0] != 3 {
		t.Errorf("delay = %d, want 3 (10 ms × every 3)", g.Delay[0])
	}

	cfg.Every = 10
	if r := Run(cfg, []string{"copper"})[0]; r.Success {
		t.Error("gif with no selected frames succeeded")
	}
}

func TestWriteManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.json")
	results := []Result{
		{Name: "fire", Files: []string{"fire/0003.png"}, Success: true},
		{Name: "nope", Error: "fx: unknown effect"},
	}
	if err := WriteManifest(path, results); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var entries []ManifestEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries", len(entries))
	}
	if e := entries[0]; e.Title != "Fire" || e.Kind != "automaton" || e.IntervalMS != 10 || e.Width != 256 {
		t.Errorf("fire entry = %+v", e)
	}
	if e := entries[1]; e.Error == "" || e.Files == nil {
		t.Errorf("failed entry = %+v", e)
	}
}

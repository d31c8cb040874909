package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fx.json")
	data := `{"effects": ["fire", "plasma"], "width": 64, "format": "PNG", "seed": 9}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Effects) != 2 || cfg.Width != 64 || cfg.Seed != 9 || cfg.Height != 0 {
		t.Errorf("Load = %+v", cfg)
	}

	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("missing file accepted")
	}
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("malformed file accepted")
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		flags Flags
		check func(t *testing.T, c Config)
	}{
		{
			name: "defaults",
			check: func(t *testing.T, c Config) {
				if c.Width != 320 || c.Height != 240 || c.Frames != 100 || c.Every != 10 {
					t.Errorf("size/frames defaults: %+v", c)
				}
				if c.Format != "webp" || c.Scale != 1 || c.OutputDir != "renders" {
					t.Errorf("output defaults: %+v", c)
				}
				if c.Workers != runtime.NumCPU() {
					t.Errorf("Workers = %d, want %d", c.Workers, runtime.NumCPU())
				}
				if len(c.Effects) != 0 {
					t.Errorf("Effects = %v, want all", c.Effects)
				}
			},
		},
		{
			name: "file kept",
			cfg:  Config{Width: 64, Format: "GIF", Workers: 3, Effects: []string{"fire"}},
			check: func(t *testing.T, c Config) {
				if c.Width != 64 || c.Format != "gif" || c.Workers != 3 || c.Effects[0] != "fire" {
					t.Errorf("file values lost: %+v", c)
				}
			},
		},
		{
			name:  "flags win",
			cfg:   Config{Width: 64, Format: "gif", Seed: 1, Effects: []string{"fire"}},
			flags: Flags{Width: 80, Format: "png", Seed: 5, Effects: " plasma, ,tunnel ", OutputDir: "out/../frames"},
			check: func(t *testing.T, c Config) {
				if c.Width != 80 || c.Format != "png" || c.Seed != 5 {
					t.Errorf("flags ignored: %+v", c)
				}
				if len(c.Effects) != 2 || c.Effects[0] != "plasma" || c.Effects[1] != "tunnel" {
					t.Errorf("Effects = %q", c.Effects)
				}
				if c.OutputDir != "frames" {
					t.Errorf("OutputDir = %q, want frames", c.OutputDir)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.cfg
			c.Resolve(tt.flags)
			tt.check(t, c)
		})
	}
}

func TestValidate(t *testing.T) {
	for _, f := range Formats {
		c := Config{Format: f}
		if err := c.Validate(); err != nil {
			t.Errorf("Validate(%s): %v", f, err)
		}
	}
	c := Config{Format: "bmp"}
	if err := c.Validate(); err == nil {
		t.Error("bmp accepted")
	}
}

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Config holds all configurable paths and render settings.
type Config struct {
	// Selection
	Effects []string `json:"effects"` // empty means every registered effect
	Text    string   `json:"text"`
	Seed    uint64   `json:"seed"`

	// Paths
	AssetDir  string `json:"asset_dir"`
	OutputDir string `json:"output_dir"`

	// Render settings
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Frames  int    `json:"frames"`
	Every   int    `json:"every"`
	Format  string `json:"format"`
	Scale   int    `json:"scale"`
	Workers int    `json:"workers"`
}

// Formats lists the accepted output formats.
var Formats = []string{"webp", "png", "gif"}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Effects != "" {
		c.Effects = splitList(flags.Effects)
	}
	if flags.AssetDir != "" {
		c.AssetDir = flags.AssetDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Frames > 0 {
		c.Frames = flags.Frames
	}
	if flags.Every > 0 {
		c.Every = flags.Every
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Scale > 0 {
		c.Scale = flags.Scale
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Seed != 0 {
		c.Seed = flags.Seed
	}
	if flags.Text != "" {
		c.Text = flags.Text
	}

	// Paths are relative to the working directory
	if c.OutputDir == "" {
		c.OutputDir = "renders"
	}
	c.OutputDir = filepath.Clean(c.OutputDir)
	if c.AssetDir != "" {
		c.AssetDir = filepath.Clean(c.AssetDir)
	}

	// Defaults for render settings
	if c.Width <= 0 {
		c.Width = 320
	}
	if c.Height <= 0 {
		c.Height = 240
	}
	if c.Frames <= 0 {
		c.Frames = 100
	}
	if c.Every <= 0 {
		c.Every = 10
	}
	c.Format = strings.ToLower(c.Format)
	if c.Format == "" {
		c.Format = "webp"
	}
	if c.Scale <= 0 {
		c.Scale = 1
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// Validate reports settings Resolve cannot repair.
func (c *Config) Validate() error {
	for _, f := range Formats {
		if c.Format == f {
			return nil
		}
	}
	return fmt.Errorf("config: unknown format %q (want one of %s)", c.Format, strings.Join(Formats, ", "))
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Effects   string // comma separated
	AssetDir  string
	OutputDir string
	Width     int
	Height    int
	Frames    int
	Every     int
	Format    string
	Scale     int
	Workers   int
	Seed      uint64
	Text      string
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

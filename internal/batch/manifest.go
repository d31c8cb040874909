package batch

import (
	"encoding/json"
	"os"

	"oldschool-fx/internal/effects"
)

// ManifestEntry represents one effect in the output manifest.
type ManifestEntry struct {
	Name       string   `json:"name"`
	Title      string   `json:"title"`
	Kind       string   `json:"kind"`
	IntervalMS int64    `json:"interval_ms"`
	Width      int      `json:"width"`
	Height     int      `json:"height"`
	Files      []string `json:"files"`
	Error      string   `json:"error,omitempty"`
}

// WriteManifest writes manifest.json for a finished run.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, len(results))
	for i, r := range results {
		e := ManifestEntry{
			Name:  r.Name,
			Files: r.Files,
			Error: r.Error,
		}
		if e.Files == nil {
			e.Files = []string{}
		}
		if info, ok := effects.Lookup(r.Name); ok {
			e.Title = info.Title
			e.Kind = info.Kind.String()
			e.IntervalMS = info.Interval.Milliseconds()
			e.Width = info.Width
			e.Height = info.Height
		}
		entries[i] = e
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

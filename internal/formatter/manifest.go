package formatter

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Manifest summarizes a bulk export run.
type Manifest struct {
	GeneratedAt time.Time       `json:"generated_at"`
	OutputDir   string          `json:"output_dir"`
	Formats     []Format        `json:"formats"`
	Transpose   int             `json:"transpose,omitempty"`
	Total       int             `json:"total"`
	Succeeded   int             `json:"succeeded"`
	Failed      int             `json:"failed"`
	Index       string          `json:"index,omitempty"`
	Entries     []ManifestEntry `json:"entries"`
}

// ManifestEntry records the files written for one song.
type ManifestEntry struct {
	SongID string   `json:"song_id"`
	Title  string   `json:"title"`
	Files  []string `json:"files,omitempty"`
	Error  string   `json:"error,omitempty"`
}

// WriteManifest writes m as indented JSON.
func WriteManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// ReadManifest loads a manifest written by [WriteManifest].
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}

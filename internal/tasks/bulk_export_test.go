package tasks

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Guillaumelf26/Harmony-sub000/internal/formatter"
	"github.com/Guillaumelf26/Harmony-sub000/internal/models"
	"github.com/Guillaumelf26/Harmony-sub000/internal/shared"
	th "github.com/Guillaumelf26/Harmony-sub000/internal/testing"
)

func exportSongs(t *testing.T) []*models.Song {
	t.Helper()
	grace := models.NewSong(1, th.AmazingGrace)
	grace.SetID("song-1")
	fair := models.NewSong(2, th.Scarborough)
	fair.SetID("song-2")
	return []*models.Song{grace, fair}
}

func TestBulkExport(t *testing.T) {
	engine := NewEngine(nil, nil, shared.NewLogger(io.Discard))

	t.Run("all formats", func(t *testing.T) {
		dir := t.TempDir()
		prog := make(chan ProgressUpdate, 16)

		result, err := engine.BulkExport(context.Background(), prog, exportSongs(t), BulkExportOpts{
			Formats:    []formatter.Format{formatter.FormatText, formatter.FormatMarkdown, formatter.FormatChordPro, formatter.FormatCSV},
			OutputDir:  dir,
			NumWorkers: 2,
		})
		if err != nil {
			t.Fatalf("BulkExport failed: %v", err)
		}

		if result.TotalSongs != 2 || result.SuccessfulExports != 2 || result.FailedExports != 0 {
			t.Errorf("unexpected counts: %+v", result)
		}
		for _, res := range result.Results {
			if len(res.Files) != 3 {
				t.Errorf("expected 3 files for %s, got %v", res.Title, res.Files)
			}
		}

		th.AssertFileExists(t, filepath.Join(dir, "txt", "1-amazing-grace.txt"))
		th.AssertFileExists(t, filepath.Join(dir, "md", "2-scarborough-fair.md"))
		th.AssertFileExists(t, filepath.Join(dir, "cho", "1-amazing-grace.cho"))

		index := th.MustReadFile(t, result.IndexPath)
		if !strings.Contains(index, "Scarborough Fair") {
			t.Errorf("index missing song: %q", index)
		}

		manifest, err := formatter.ReadManifest(result.ManifestPath)
		if err != nil {
			t.Fatalf("failed to read manifest: %v", err)
		}
		if manifest.Total != 2 || manifest.Succeeded != 2 || manifest.Index != "index.csv" {
			t.Errorf("unexpected manifest: %+v", manifest)
		}
		for _, entry := range manifest.Entries {
			for _, f := range entry.Files {
				if filepath.IsAbs(f) {
					t.Errorf("expected relative manifest path, got %s", f)
				}
			}
		}

		if len(prog) == 0 {
			t.Error("expected progress updates")
		}
	})

	t.Run("transposed text", func(t *testing.T) {
		dir := t.TempDir()
		result, err := engine.BulkExport(context.Background(), nil, exportSongs(t)[:1], BulkExportOpts{
			OutputDir: dir,
			Transpose: 2,
		})
		if err != nil {
			t.Fatalf("BulkExport failed: %v", err)
		}

		content := th.MustReadFile(t, result.Results[0].Files[0])
		if !strings.Contains(content, "Key: A") {
			t.Errorf("expected transposed key in %q", content)
		}
		if result.IndexPath != "" {
			t.Errorf("no index expected without csv, got %s", result.IndexPath)
		}
	})

	t.Run("unsupported format", func(t *testing.T) {
		_, err := engine.BulkExport(context.Background(), nil, exportSongs(t), BulkExportOpts{
			Formats:   []formatter.Format{"pdf"},
			OutputDir: t.TempDir(),
		})
		if !errors.Is(err, shared.ErrUnsupportedFormat) {
			t.Errorf("expected ErrUnsupportedFormat, got %v", err)
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		result, err := engine.BulkExport(ctx, nil, exportSongs(t), BulkExportOpts{OutputDir: t.TempDir()})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if result == nil || result.ManifestPath != "" {
			t.Errorf("cancelled export should not write a manifest: %+v", result)
		}
	})

	t.Run("no songs", func(t *testing.T) {
		result, err := engine.BulkExport(context.Background(), nil, nil, BulkExportOpts{OutputDir: t.TempDir()})
		if err != nil {
			t.Fatalf("BulkExport failed: %v", err)
		}
		if result.TotalSongs != 0 || result.ManifestPath == "" {
			t.Errorf("expected empty export with manifest, got %+v", result)
		}
	})
}

func TestSplitFormats(t *testing.T) {
	tc := []struct {
		name      string
		formats   []formatter.Format
		perSong   int
		wantIndex bool
	}{
		{"default", nil, 1, false},
		{"csv only", []formatter.Format{formatter.FormatCSV}, 0, true},
		{"mixed", []formatter.Format{formatter.FormatMarkdown, formatter.FormatCSV, formatter.FormatChordPro}, 2, true},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			perSong, index, err := splitFormats(tt.formats)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(perSong) != tt.perSong || index != tt.wantIndex {
				t.Errorf("expected %d per-song formats and index=%v, got %v and %v", tt.perSong, tt.wantIndex, perSong, index)
			}
		})
	}
}

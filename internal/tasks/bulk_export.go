package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/Guillaumelf26/Harmony-sub000/internal/formatter"
	"github.com/Guillaumelf26/Harmony-sub000/internal/models"
	"github.com/Guillaumelf26/Harmony-sub000/internal/shared"
)

// ManifestName is written at the root of every bulk export.
const ManifestName = "manifest.json"

// BulkExportOpts contains configuration for bulk song exports.
type BulkExportOpts struct {
	Formats    []formatter.Format // Per-song formats; csv adds a single index.csv
	OutputDir  string             // Base output directory (default: harmony_export_{epoch})
	NumWorkers int                // Concurrent workers (default: 4, max 16)
	RateLimit  float64            // Songs per second across workers; 0 disables the limit
	Transpose  int                // Extra semitones on top of each song's saved offset
}

// SongExportResult reports the files written for one song.
type SongExportResult struct {
	SongID  string
	Title   string
	Files   []string
	Success bool
	Error   error
}

// BulkExportResult summarizes a bulk export.
type BulkExportResult struct {
	TotalSongs        int
	SuccessfulExports int
	FailedExports     int
	OutputDirectory   string
	IndexPath         string
	ManifestPath      string
	Results           []SongExportResult
}

type exportJob struct {
	step int
	song *models.Song
}

// BulkExport writes songs to disk concurrently with rate limiting and progress tracking.
//
// A worker pool renders each song in every requested format. Partial failures are
// recorded per song, and a manifest summarizing the run is written to the output directory.
func (e *Engine) BulkExport(ctx context.Context, prog chan<- ProgressUpdate, songs []*models.Song, opts BulkExportOpts) (*BulkExportResult, error) {
	perSong, wantIndex, err := splitFormats(opts.Formats)
	if err != nil {
		return nil, err
	}

	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("harmony_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 16 {
		opts.NumWorkers = 16
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &BulkExportResult{
		TotalSongs:      len(songs),
		OutputDirectory: opts.OutputDir,
		Results:         make([]SongExportResult, 0, len(songs)),
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	}

	jobs := make(chan exportJob, len(songs))
	results := make(chan SongExportResult, len(songs))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, jobs, results, perSong, opts)
	}

	go func() {
		defer close(jobs)
		for i, song := range songs {
			if err := limiter.Wait(ctx); err != nil {
				return
			}
			e.sendProgress(prog, exportingSongUpdate(i+1, len(songs), song.Title()))
			jobs <- exportJob{step: i + 1, song: song}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.SuccessfulExports++
			e.sendProgress(prog, exportCompletedUpdate(completed, len(songs), res.Title, len(res.Files)))
		} else {
			result.FailedExports++
			e.sendProgress(prog, exportFailedUpdate(completed, len(songs), res.Title, res.Error))
		}
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	if wantIndex {
		data, err := formatter.ExportToCSV(songs)
		if err != nil {
			return result, err
		}
		result.IndexPath = filepath.Join(opts.OutputDir, "index.csv")
		if err := os.WriteFile(result.IndexPath, data, 0644); err != nil {
			return result, fmt.Errorf("failed to write index: %w", err)
		}
	}

	manifestPath := filepath.Join(opts.OutputDir, ManifestName)
	if err := formatter.WriteManifest(manifestPath, buildManifest(result, opts)); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath

	e.logger.Info("bulk export finished", "dir", opts.OutputDir, "ok", result.SuccessfulExports, "failed", result.FailedExports)
	return result, nil
}

// exportWorker is a worker goroutine that exports songs from the jobs channel.
func (e *Engine) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan exportJob,
	results chan<- SongExportResult,
	formats []formatter.Format,
	opts BulkExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		if ctx.Err() != nil {
			return
		}
		results <- exportSong(job.song, formats, opts)
	}
}

func exportSong(song *models.Song, formats []formatter.Format, opts BulkExportOpts) SongExportResult {
	res := SongExportResult{SongID: song.ID(), Title: song.Title(), Files: []string{}}

	for _, format := range formats {
		dir := filepath.Join(opts.OutputDir, string(format))
		path, err := formatter.WriteExport(song, format, dir, opts.Transpose)
		if err != nil {
			res.Error = fmt.Errorf("%s export failed: %w", format, err)
			return res
		}
		res.Files = append(res.Files, path)
	}

	res.Success = true
	return res
}

// splitFormats separates per-song formats from the csv index.
func splitFormats(formats []formatter.Format) (perSong []formatter.Format, index bool, err error) {
	if len(formats) == 0 {
		return []formatter.Format{formatter.FormatText}, false, nil
	}

	for _, f := range formats {
		switch f {
		case formatter.FormatCSV:
			index = true
		case formatter.FormatText, formatter.FormatMarkdown, formatter.FormatChordPro:
			perSong = append(perSong, f)
		default:
			return nil, false, fmt.Errorf("%w: %q", shared.ErrUnsupportedFormat, f)
		}
	}
	return perSong, index, nil
}

func buildManifest(result *BulkExportResult, opts BulkExportOpts) formatter.Manifest {
	m := formatter.Manifest{
		GeneratedAt: time.Now().UTC(),
		OutputDir:   opts.OutputDir,
		Formats:     opts.Formats,
		Transpose:   opts.Transpose,
		Total:       result.TotalSongs,
		Succeeded:   result.SuccessfulExports,
		Failed:      result.FailedExports,
		Entries:     make([]formatter.ManifestEntry, 0, len(result.Results)),
	}
	if result.IndexPath != "" {
		m.Index = filepath.Base(result.IndexPath)
	}

	for _, r := range result.Results {
		entry := formatter.ManifestEntry{SongID: r.SongID, Title: r.Title}
		for _, f := range r.Files {
			if rel, err := filepath.Rel(opts.OutputDir, f); err == nil {
				f = rel
			}
			entry.Files = append(entry.Files, f)
		}
		if r.Error != nil {
			entry.Error = r.Error.Error()
		}
		m.Entries = append(m.Entries, entry)
	}
	return m
}

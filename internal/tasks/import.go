package tasks

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/Guillaumelf26/Harmony-sub000/internal/models"
	"github.com/Guillaumelf26/Harmony-sub000/internal/shared"
)

// ChordProGlob matches ChordPro sources below a directory.
const ChordProGlob = "**/*.{cho,chopro,chordpro,crd,pro}"

// ImportOpts configures [Engine.Import].
type ImportOpts struct {
	LibraryID string // Append imported (and duplicate) songs to this set list
	DryRun    bool   // Parse and check duplicates without writing
}

// ImportedSong is a file that became a song.
type ImportedSong struct {
	Path   string
	SongID string
	Title  string
}

// SkippedFile is a file whose content already exists in the song book.
type SkippedFile struct {
	Path       string
	ExistingID string
	Reason     string
}

// FailedFile is a file that could not be read or stored.
type FailedFile struct {
	Path  string
	Error error
}

// ImportResult summarizes an import run.
type ImportResult struct {
	Imported []ImportedSong
	Skipped  []SkippedFile
	Failed   []FailedFile
}

// ExpandImportPatterns resolves files, directories and doublestar globs into a sorted,
// de-duplicated list of files. Directories expand to [ChordProGlob] below them.
func ExpandImportPatterns(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	add := func(path string) {
		clean := filepath.Clean(path)
		if !seen[clean] {
			seen[clean] = true
			files = append(files, clean)
		}
	}

	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}

		if info, err := os.Stat(pattern); err == nil {
			if !info.IsDir() {
				add(pattern)
				continue
			}
			pattern = filepath.Join(pattern, ChordProGlob)
		}

		if !doublestar.ValidatePathPattern(pattern) {
			return nil, fmt.Errorf("%w: bad pattern %q", shared.ErrInvalidArgument, pattern)
		}

		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("failed to expand %q: %w", pattern, err)
		}
		for _, m := range matches {
			add(m)
		}
	}

	sort.Strings(files)
	return files, nil
}

// Import reads each file as ChordPro and stores it as a song.
//
// Files whose normalized content hash matches a live song are skipped.
// Per-file failures are collected in the result; the returned error is
// reserved for cancellation and library lookups.
func (e *Engine) Import(ctx context.Context, prog chan<- ProgressUpdate, paths []string, opts ImportOpts) (*ImportResult, error) {
	result := &ImportResult{}
	total := len(paths)

	if opts.LibraryID != "" {
		if e.libraries == nil {
			return nil, fmt.Errorf("%w: no library store configured", shared.ErrInvalidArgument)
		}
		library, err := e.libraries.Resolve(opts.LibraryID)
		if err != nil {
			return nil, err
		}
		opts.LibraryID = library.ID()
	}

	e.sendProgress(prog, scanFilesUpdate(total))

	seen := make(map[string]string)
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		step := i + 1

		data, err := os.ReadFile(path)
		if err != nil {
			result.Failed = append(result.Failed, FailedFile{Path: path, Error: err})
			e.sendProgress(prog, importFailedUpdate(step, total, path, err))
			continue
		}

		if strings.TrimSpace(string(data)) == "" {
			err := fmt.Errorf("%w: file is empty", shared.ErrInvalidInput)
			result.Failed = append(result.Failed, FailedFile{Path: path, Error: err})
			e.sendProgress(prog, importFailedUpdate(step, total, path, err))
			continue
		}

		song := models.NewSong(0, string(data))
		if song.Title() == models.UntitledSong {
			song.SetContent(fmt.Sprintf("{title: %s}\n%s", titleFromPath(path), song.Content()))
		}

		existingID, dup, err := e.findDuplicate(song, seen)
		if err != nil {
			result.Failed = append(result.Failed, FailedFile{Path: path, Error: err})
			e.sendProgress(prog, importFailedUpdate(step, total, path, err))
			continue
		}
		if dup {
			result.Skipped = append(result.Skipped, SkippedFile{Path: path, ExistingID: existingID, Reason: "duplicate content"})
			e.sendProgress(prog, importSkippedUpdate(step, total, path, "duplicate content"))
			e.addToLibrary(opts, existingID)
			continue
		}

		if !opts.DryRun {
			if err := e.songs.Create(song); err != nil {
				result.Failed = append(result.Failed, FailedFile{Path: path, Error: err})
				e.sendProgress(prog, importFailedUpdate(step, total, path, err))
				continue
			}
			e.addToLibrary(opts, song.ID())
		}

		seen[song.ContentHash()] = song.ID()
		result.Imported = append(result.Imported, ImportedSong{Path: path, SongID: song.ID(), Title: song.Title()})
		e.sendProgress(prog, importedUpdate(step, total, path, song))
		e.logger.Debug("imported song", "path", path, "title", song.Title(), "id", song.ID())
	}

	return result, nil
}

// findDuplicate checks the batch seen so far, then the store.
func (e *Engine) findDuplicate(song *models.Song, seen map[string]string) (string, bool, error) {
	if id, ok := seen[song.ContentHash()]; ok {
		return id, true, nil
	}

	existing, err := e.songs.GetByHash(song.ContentHash())
	switch {
	case err == nil:
		return existing.ID(), true, nil
	case errors.Is(err, shared.ErrSongNotFound):
		return "", false, nil
	default:
		return "", false, err
	}
}

func (e *Engine) addToLibrary(opts ImportOpts, songID string) {
	if opts.LibraryID == "" || opts.DryRun || songID == "" {
		return
	}
	if err := e.libraries.AddSong(opts.LibraryID, songID); err != nil && !errors.Is(err, shared.ErrDuplicateSong) {
		e.logger.Warn("failed to add song to library", "library", opts.LibraryID, "song", songID, "error", err)
	}
}

// titleFromPath turns "songs/amazing_grace.cho" into "amazing grace".
func titleFromPath(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return strings.TrimSpace(strings.NewReplacer("_", " ", "-", " ").Replace(base))
}

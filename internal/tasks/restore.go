package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/Guillaumelf26/Harmony-sub000/internal/formatter"
	"github.com/Guillaumelf26/Harmony-sub000/internal/models"
	"github.com/Guillaumelf26/Harmony-sub000/internal/shared"
)

// RestoreResult summarizes a backup restore.
type RestoreResult struct {
	SongsRestored     int
	SongsSkipped      int
	LibrariesRestored int
	LibrariesSkipped  int
	Errors            []error
}

// Snapshot collects every live song and library into a backup.
func (e *Engine) Snapshot() (*formatter.Backup, error) {
	songs, err := e.songs.List(map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("failed to list songs: %w", err)
	}

	var libraries []*models.Library
	if e.libraries != nil {
		if libraries, err = e.libraries.List(map[string]any{}); err != nil {
			return nil, fmt.Errorf("failed to list libraries: %w", err)
		}
	}

	return formatter.NewBackup(songs, libraries), nil
}

// Restore loads a backup into the song book.
//
// Songs keep their original IDs; a song is skipped when its ID or content is already present.
// Libraries are matched by name and only reference songs that exist after the restore.
func (e *Engine) Restore(ctx context.Context, prog chan<- ProgressUpdate, b *formatter.Backup) (*RestoreResult, error) {
	result := &RestoreResult{}
	total := len(b.Songs) + len(b.Libraries)

	// Backup song ID → ID in this song book.
	ids := make(map[string]string, len(b.Songs))

	for i, entry := range b.Songs {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		id, created, err := e.restoreSong(entry)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("song %q: %w", entry.Title, err))
			e.sendProgress(prog, restoreUpdate(i+1, total, "✗ "+entry.Title))
			continue
		}

		ids[entry.ID] = id
		if created {
			result.SongsRestored++
			e.sendProgress(prog, restoreUpdate(i+1, total, "✓ "+entry.Title))
		} else {
			result.SongsSkipped++
			e.sendProgress(prog, restoreUpdate(i+1, total, "- "+entry.Title+" (exists)"))
		}
	}

	if e.libraries == nil {
		return result, nil
	}

	for i, entry := range b.Libraries {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		step := len(b.Songs) + i + 1

		library, err := e.libraries.Resolve(entry.Name)
		switch {
		case err == nil:
			result.LibrariesSkipped++
		case errors.Is(err, shared.ErrLibraryNotFound):
			library = models.NewLibrary(0, entry.Name, entry.Description)
			if err := e.libraries.Create(library); err != nil {
				result.Errors = append(result.Errors, fmt.Errorf("library %q: %w", entry.Name, err))
				continue
			}
			result.LibrariesRestored++
		default:
			result.Errors = append(result.Errors, fmt.Errorf("library %q: %w", entry.Name, err))
			continue
		}

		for _, songID := range entry.SongIDs {
			id, ok := ids[songID]
			if !ok {
				continue
			}
			if err := e.libraries.AddSong(library.ID(), id); err != nil && !errors.Is(err, shared.ErrDuplicateSong) {
				result.Errors = append(result.Errors, fmt.Errorf("library %q: %w", entry.Name, err))
			}
		}
		e.sendProgress(prog, restoreUpdate(step, total, "✓ library "+entry.Name))
	}

	return result, nil
}

// restoreSong returns the ID the entry maps to and whether a new song was created.
func (e *Engine) restoreSong(entry formatter.BackupSong) (string, bool, error) {
	if entry.ID != "" {
		if existing, err := e.songs.Get(entry.ID); err == nil {
			return existing.ID(), false, nil
		} else if !errors.Is(err, shared.ErrSongNotFound) {
			return "", false, err
		}
	}

	song := entry.ToSong()
	if existing, err := e.songs.GetByHash(song.ContentHash()); err == nil {
		return existing.ID(), false, nil
	} else if !errors.Is(err, shared.ErrSongNotFound) {
		return "", false, err
	}

	if err := e.songs.Create(song); err != nil {
		if song.ID() == "" {
			return "", false, err
		}
		// The ID may belong to a soft-deleted row.
		song.SetID("")
		if err := e.songs.Create(song); err != nil {
			return "", false, err
		}
	}
	return song.ID(), true, nil
}

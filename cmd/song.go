package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/Guillaumelf26/Harmony-sub000/internal/formatter"
	"github.com/Guillaumelf26/Harmony-sub000/internal/models"
	"github.com/Guillaumelf26/Harmony-sub000/internal/shared"
	"github.com/Guillaumelf26/Harmony-sub000/internal/tasks"
)

// songRow is the JSON shape of a listed song.
type songRow struct {
	ID        string `json:"id"`
	Sequence  int    `json:"sequence"`
	Title     string `json:"title"`
	Artist    string `json:"artist,omitempty"`
	Key       string `json:"key,omitempty"`
	Transpose int    `json:"transpose,omitempty"`
}

func newSongRow(s *models.Song) songRow {
	return songRow{
		ID:        s.ID(),
		Sequence:  s.Sequence(),
		Title:     s.Title(),
		Artist:    s.Artist(),
		Key:       s.Key(),
		Transpose: s.Transpose(),
	}
}

// SongAdd stores a ChordPro file as a new song.
func (r *Runner) SongAdd(ctx context.Context, cmd *cli.Command) error {
	content, err := r.readSource(cmd.StringArg("file"))
	if err != nil {
		return err
	}
	if err := r.open(); err != nil {
		return err
	}

	song := models.NewSong(0, content)
	if existing, err := r.songs.GetByHash(song.ContentHash()); err == nil {
		return fmt.Errorf("%w: #%d %s", shared.ErrDuplicateSong, existing.Sequence(), existing.Title())
	}

	if err := r.songs.Create(song); err != nil {
		return fmt.Errorf("failed to add song: %w", err)
	}
	r.logger.Info("song added", "id", song.ID(), "title", song.Title())

	if ref := cmd.String("library"); ref != "" {
		library, err := r.libraries.Resolve(ref)
		if err != nil {
			return err
		}
		if err := r.libraries.AddSong(library.ID(), song.ID()); err != nil {
			return fmt.Errorf("failed to add song to library: %w", err)
		}
		return r.writePlain("✓ Added #%d %s to %s\n", song.Sequence(), song, library.Name())
	}
	return r.writePlain("✓ Added #%d %s\n", song.Sequence(), song)
}

// SongList prints the songs matching the filters.
func (r *Runner) SongList(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(); err != nil {
		return err
	}

	criteria := map[string]any{
		"query":  cmd.String("query"),
		"artist": cmd.String("artist"),
		"limit":  cmd.Int("limit"),
	}
	if ref := cmd.String("library"); ref != "" {
		library, err := r.libraries.Resolve(ref)
		if err != nil {
			return err
		}
		criteria["library_id"] = library.ID()
	}

	songs, err := r.songs.List(criteria)
	if err != nil {
		return fmt.Errorf("failed to list songs: %w", err)
	}

	if cmd.Bool("json") {
		rows := make([]songRow, 0, len(songs))
		for _, s := range songs {
			rows = append(rows, newSongRow(s))
		}
		return r.writeJSON(rows, true)
	}

	if len(songs) == 0 {
		return r.writePlain("No songs found\n")
	}

	r.writePlainHeader(fmt.Sprintf("Songs (%d)", len(songs)))
	for _, s := range songs {
		key := s.Key()
		if s.Transpose() != 0 {
			key = fmt.Sprintf("%s %+d", key, s.Transpose())
		}
		r.writePlain("#%-4d %-32s %-24s %s\n", s.Sequence(), s.Title(), s.Artist(), strings.TrimSpace(key))
	}
	return nil
}

// SongShow prints a song in the requested format, moved by its saved offset plus --transpose.
func (r *Runner) SongShow(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(); err != nil {
		return err
	}

	song, err := r.songs.Resolve(cmd.StringArg("song"))
	if err != nil {
		return err
	}

	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	data, err := formatter.Export(song, format, cmd.Int("transpose"))
	if err != nil {
		return err
	}
	return r.writePlain("%s", data)
}

// SongEdit replaces a song's source.
func (r *Runner) SongEdit(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(); err != nil {
		return err
	}

	song, err := r.songs.Resolve(cmd.StringArg("song"))
	if err != nil {
		return err
	}

	content, err := r.readSource(cmd.StringArg("file"))
	if err != nil {
		return err
	}

	before := song.ContentHash()
	song.SetContent(content)
	if song.ContentHash() == before {
		return r.writePlain("No changes to #%d %s\n", song.Sequence(), song)
	}

	if err := r.songs.Update(song); err != nil {
		return fmt.Errorf("failed to update song: %w", err)
	}
	r.logger.Info("song updated", "id", song.ID(), "title", song.Title())
	return r.writePlain("✓ Updated #%d %s\n", song.Sequence(), song)
}

// SongDelete soft-deletes a song.
func (r *Runner) SongDelete(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(); err != nil {
		return err
	}

	song, err := r.songs.Resolve(cmd.StringArg("song"))
	if err != nil {
		return err
	}
	if err := r.songs.Delete(song.ID()); err != nil {
		return fmt.Errorf("failed to delete song: %w", err)
	}
	r.logger.Info("song deleted", "id", song.ID())
	return r.writePlain("✓ Deleted #%d %s\n", song.Sequence(), song)
}

// SongTranspose saves a display offset for each song, or rewrites their source with --apply.
func (r *Runner) SongTranspose(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(); err != nil {
		return err
	}

	refs := cmd.StringArgs("songs")
	semitones := cmd.Int("semitones")

	if cmd.Bool("apply") {
		progress := make(chan tasks.ProgressUpdate, 10)
		done := r.drainProgress(progress)
		results, err := r.engine.BulkTranspose(ctx, progress, refs, semitones)
		close(progress)
		<-done
		if err != nil {
			return err
		}

		failed := 0
		for _, res := range results {
			if res.Error != nil {
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("failed to transpose %d of %d songs", failed, len(results))
		}
		return nil
	}

	for _, ref := range refs {
		song, err := r.songs.Resolve(ref)
		if err != nil {
			return err
		}
		song.SetTranspose(song.Transpose() + semitones)
		if err := r.songs.Update(song); err != nil {
			return fmt.Errorf("failed to save transpose for %s: %w", song, err)
		}
		r.writePlain("✓ #%d %s now shown %+d semitones\n", song.Sequence(), song, song.Transpose())
	}
	return nil
}

package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/Guillaumelf26/Harmony-sub000/internal/models"
	"github.com/Guillaumelf26/Harmony-sub000/internal/shared"
)

type libraryRow struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	SongIDs     []string `json:"song_ids"`
}

// LibraryCreate creates an empty set list.
func (r *Runner) LibraryCreate(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: library name", shared.ErrMissingArgument)
	}
	if err := r.open(); err != nil {
		return err
	}

	library := models.NewLibrary(0, name, cmd.String("description"))
	if err := r.libraries.Create(library); err != nil {
		return fmt.Errorf("failed to create library: %w", err)
	}
	r.logger.Info("library created", "id", library.ID(), "name", name)
	return r.writePlain("✓ Created library %s (%s)\n", library.Name(), library.ID())
}

// LibraryList prints every library with its song count.
func (r *Runner) LibraryList(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(); err != nil {
		return err
	}

	libraries, err := r.libraries.List(map[string]any{})
	if err != nil {
		return fmt.Errorf("failed to list libraries: %w", err)
	}

	if cmd.Bool("json") {
		rows := make([]libraryRow, 0, len(libraries))
		for _, l := range libraries {
			ids := l.SongIDs()
			if ids == nil {
				ids = []string{}
			}
			rows = append(rows, libraryRow{ID: l.ID(), Name: l.Name(), Description: l.Description(), SongIDs: ids})
		}
		return r.writeJSON(rows, true)
	}

	if len(libraries) == 0 {
		return r.writePlain("No libraries found\n")
	}

	r.writePlainHeader(fmt.Sprintf("Libraries (%d)", len(libraries)))
	for _, l := range libraries {
		r.writePlain("%-24s %3d songs  %s\n", l.Name(), len(l.SongIDs()), l.Description())
	}
	return nil
}

// LibraryShow prints a library's songs in set-list order.
func (r *Runner) LibraryShow(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(); err != nil {
		return err
	}

	library, err := r.libraries.Resolve(cmd.StringArg("library"))
	if err != nil {
		return err
	}

	songs, err := r.songs.List(map[string]any{"library_id": library.ID()})
	if err != nil {
		return fmt.Errorf("failed to list songs: %w", err)
	}

	r.writePlainHeader(library.Name())
	if library.Description() != "" {
		r.writePlain("%s\n\n", library.Description())
	}
	if len(songs) == 0 {
		return r.writePlain("(empty)\n")
	}
	for i, s := range songs {
		r.writePlain("%2d. #%-4d %s\n", i+1, s.Sequence(), s)
	}
	return nil
}

// LibraryAdd appends songs to a library.
func (r *Runner) LibraryAdd(ctx context.Context, cmd *cli.Command) error {
	return r.editLibrary(cmd, "Added", func(libraryID, songID string) error {
		return r.libraries.AddSong(libraryID, songID)
	})
}

// LibraryRemove takes songs out of a library.
func (r *Runner) LibraryRemove(ctx context.Context, cmd *cli.Command) error {
	return r.editLibrary(cmd, "Removed", func(libraryID, songID string) error {
		return r.libraries.RemoveSong(libraryID, songID)
	})
}

func (r *Runner) editLibrary(cmd *cli.Command, verb string, fn func(libraryID, songID string) error) error {
	if err := r.open(); err != nil {
		return err
	}

	library, err := r.libraries.Resolve(cmd.StringArg("library"))
	if err != nil {
		return err
	}

	for _, ref := range cmd.StringArgs("songs") {
		song, err := r.songs.Resolve(ref)
		if err != nil {
			return err
		}
		if err := fn(library.ID(), song.ID()); err != nil {
			return err
		}
		r.writePlain("✓ %s #%d %s (%s)\n", verb, song.Sequence(), song, library.Name())
	}
	return nil
}

// LibraryDelete removes a library; its songs stay in the song book.
func (r *Runner) LibraryDelete(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(); err != nil {
		return err
	}

	library, err := r.libraries.Resolve(cmd.StringArg("library"))
	if err != nil {
		return err
	}
	if err := r.libraries.Delete(library.ID()); err != nil {
		return err
	}
	r.logger.Info("library deleted", "id", library.ID())
	return r.writePlain("✓ Deleted library %s\n", library.Name())
}

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/Guillaumelf26/Harmony-sub000/internal/formatter"
	"github.com/Guillaumelf26/Harmony-sub000/internal/shared"
	"github.com/Guillaumelf26/Harmony-sub000/internal/tasks"
)

// Export writes every song (or one library) to disk through the bulk export worker pool.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	formats := []formatter.Format{}
	for _, name := range cmd.StringSlice("format") {
		format, err := formatter.ParseFormat(name)
		if err != nil {
			return err
		}
		formats = append(formats, format)
	}

	if err := r.open(); err != nil {
		return err
	}

	criteria := map[string]any{}
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
	if len(songs) == 0 {
		return fmt.Errorf("%w: no songs to export", shared.ErrSongNotFound)
	}

	opts := tasks.BulkExportOpts{
		Formats:    formats,
		OutputDir:  r.config.Export.OutputDir,
		NumWorkers: r.config.Export.Workers,
		RateLimit:  r.config.Export.RateLimit,
		Transpose:  cmd.Int("transpose"),
	}
	if out := cmd.String("output"); out != "" {
		opts.OutputDir = out
	}
	if n := cmd.Int("workers"); n > 0 {
		opts.NumWorkers = n
	}

	r.writePlainHeader(fmt.Sprintf("Exporting %d songs", len(songs)))

	progress := make(chan tasks.ProgressUpdate, len(songs)*2)
	done := r.drainProgress(progress)
	result, err := r.engine.BulkExport(ctx, progress, songs, opts)
	close(progress)
	<-done
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	r.writePlainln("✓ Exported %d/%d songs to %s", result.SuccessfulExports, result.TotalSongs, result.OutputDirectory)
	if result.IndexPath != "" {
		r.writePlain("Index:    %s\n", result.IndexPath)
	}
	r.writePlain("Manifest: %s\n", result.ManifestPath)

	if result.FailedExports > 0 {
		var errs []error
		for _, res := range result.Results {
			if res.Error != nil {
				errs = append(errs, fmt.Errorf("%s: %w", res.Title, res.Error))
			}
		}
		return fmt.Errorf("failed to export %d songs: %w", result.FailedExports, errors.Join(errs...))
	}
	return nil
}

// BackupExport writes every song and library to a backup file.
func (r *Runner) BackupExport(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: backup path", shared.ErrMissingArgument)
	}
	if err := r.open(); err != nil {
		return err
	}

	backup, err := r.engine.Snapshot()
	if err != nil {
		return err
	}
	if err := formatter.WriteBackup(path, backup); err != nil {
		return err
	}

	r.logger.Info("backup written", "path", path, "compressed", formatter.Compressed(path))
	return r.writePlain("✓ Backed up %d songs and %d libraries to %s\n", len(backup.Songs), len(backup.Libraries), path)
}

// BackupImport restores a backup file.
func (r *Runner) BackupImport(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: backup path", shared.ErrMissingArgument)
	}

	backup, err := formatter.ReadBackup(path)
	if err != nil {
		return err
	}
	if err := r.open(); err != nil {
		return err
	}

	progress := make(chan tasks.ProgressUpdate, len(backup.Songs)+len(backup.Libraries)+1)
	done := r.drainProgress(progress)
	result, err := r.engine.Restore(ctx, progress, backup)
	close(progress)
	<-done
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	r.writePlainln("✓ Restored %d songs (%d skipped) and %d libraries (%d skipped)",
		result.SongsRestored, result.SongsSkipped, result.LibrariesRestored, result.LibrariesSkipped)

	if len(result.Errors) > 0 {
		return fmt.Errorf("restore finished with %d errors: %w", len(result.Errors), errors.Join(result.Errors...))
	}
	return nil
}

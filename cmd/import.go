package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/Guillaumelf26/Harmony-sub000/internal/tasks"
)

// Import bulk-imports ChordPro files, skipping content already in the song book.
func (r *Runner) Import(ctx context.Context, cmd *cli.Command) error {
	paths, err := tasks.ExpandImportPatterns(cmd.StringArgs("paths"))
	if err != nil {
		return err
	}
	if err := r.open(); err != nil {
		return err
	}

	opts := tasks.ImportOpts{DryRun: cmd.Bool("dry-run")}
	if ref := cmd.String("library"); ref != "" {
		library, err := r.libraries.Resolve(ref)
		if err != nil {
			return err
		}
		opts.LibraryID = library.ID()
	}

	if opts.DryRun {
		r.writePlainHeader(fmt.Sprintf("Dry run: %d files", len(paths)))
	} else {
		r.writePlainHeader(fmt.Sprintf("Importing %d files", len(paths)))
	}

	progress := make(chan tasks.ProgressUpdate, len(paths)+1)
	done := r.drainProgress(progress)
	result, err := r.engine.Import(ctx, progress, paths, opts)
	close(progress)
	<-done
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	r.writePlainln("✓ Imported %d, skipped %d, failed %d", len(result.Imported), len(result.Skipped), len(result.Failed))
	for _, f := range result.Failed {
		r.writePlain("  ✗ %s: %v\n", f.Path, f.Error)
	}
	if len(result.Failed) > 0 {
		return fmt.Errorf("failed to import %d of %d files", len(result.Failed), len(paths))
	}
	return nil
}

package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/Guillaumelf26/Harmony-sub000/internal/chordpro"
	"github.com/Guillaumelf26/Harmony-sub000/internal/tasks"
)

// Watch renders a file and re-renders it every time it is saved, until interrupted.
func (r *Runner) Watch(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("file")
	semitones := cmd.Int("transpose")

	debounce := cmd.Duration("debounce")
	if debounce <= 0 {
		debounce = time.Duration(r.config.Editor.DebounceMS) * time.Millisecond
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	progress := make(chan tasks.ProgressUpdate, 4)
	go func() {
		for update := range progress {
			r.logger.Info(update.Message)
		}
	}()
	defer close(progress)

	// Watching touches no stored songs, so no database is opened.
	engine := tasks.NewEngine(nil, nil, r.logger)
	return engine.Watch(ctx, progress, path, debounce, func(content string) {
		if semitones != 0 {
			content = chordpro.TransposeText(content, semitones)
		}
		r.writePlain("\n%s", chordpro.RenderSheet(chordpro.Parse(content)).String())
		r.writePlain("───── %s ─────\n", time.Now().Format(time.TimeOnly))
	})
}

package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/Guillaumelf26/Harmony-sub000/internal/shared"
	"github.com/Guillaumelf26/Harmony-sub000/internal/ui"
)

// TUI launches the interactive song book.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
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

	logPath := r.config.Log.File
	if logPath == "" {
		logPath = "harmony.log"
	}

	// Logs would tear the alt screen apart.
	fileLogger, logFile, err := shared.NewFileLogger(logPath)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	if err := shared.ApplyLogLevel(fileLogger, r.config.Log.Level); err != nil {
		logFile.Close()
		return err
	}
	r.logFile = logFile
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, r.songs, r.config, criteria)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

package main

import (
	"context"
	"errors"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/Guillaumelf26/Harmony-sub000/internal/shared"
)

const version = "0.3.0"

func main() {
	logger := shared.NewLogger(nil)
	runner := NewRunner(RunnerOpts{Logger: logger})
	defer runner.Close()

	if err := newApp(runner).Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		}
		runner.Close()
		logger.Fatalf("application error: %v", err)
	}
}

// newApp builds the root command. Global flags load the config and set the log level before any action runs.
func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "harmony",
		Usage:   "A ChordPro song book: render, transpose, edit and export chord sheets",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Override the configured log level (debug, info, warn, error)",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if err := r.loadConfig(cmd.String("config")); err != nil {
				return ctx, err
			}

			level := r.config.Log.Level
			if cmd.IsSet("log-level") {
				level = cmd.String("log-level")
			}
			return ctx, shared.ApplyLogLevel(r.logger, level)
		},
		Commands: r.register(),
	}
}

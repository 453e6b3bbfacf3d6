// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand handles database setup and migration status.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Create the config file if missing, initialize the database and run migrations",
				Action: r.SetupDatabase,
			},
			{
				Name:   "status",
				Usage:  "Show the database path and schema version",
				Action: r.SetupStatus,
			},
			{
				Name:   "rollback",
				Usage:  "Roll back the most recent migration",
				Action: r.SetupRollback,
			},
		},
	}
}

// songCommand handles stored songs.
func songCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "song",
		Usage: "Manage songs in the song book",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Add a song from a ChordPro file (- for stdin)",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "file"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "library",
						Aliases: []string{"l"},
						Usage:   "Also add the song to this library (ID or name)",
					},
				},
				Action: r.SongAdd,
			},
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List songs",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "query",
						Aliases: []string{"q"},
						Usage:   "Match title or artist",
					},
					&cli.StringFlag{
						Name:  "artist",
						Usage: "Only songs by this artist",
					},
					&cli.StringFlag{
						Name:    "library",
						Aliases: []string{"l"},
						Usage:   "Only songs in this library, in set-list order",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of songs to list",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.SongList,
			},
			{
				Name:  "show",
				Usage: "Render a song as a chord sheet",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "song"},
				},
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "transpose",
						Aliases: []string{"t"},
						Usage:   "Extra semitones on top of the saved offset",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format: txt, md or cho",
						Value:   "txt",
					},
				},
				Action: r.SongShow,
			},
			{
				Name:  "edit",
				Usage: "Replace a song's source with the contents of a file (- for stdin)",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "song"},
					&cli.StringArg{Name: "file"},
				},
				Action: r.SongEdit,
			},
			{
				Name:    "delete",
				Aliases: []string{"rm"},
				Usage:   "Delete a song",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "song"},
				},
				Action: r.SongDelete,
			},
			{
				Name:  "transpose",
				Usage: "Save a display offset for songs, or rewrite their source with --apply",
				Arguments: []cli.Argument{
					&cli.StringArgs{Name: "songs", Min: 1, Max: -1},
				},
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:     "semitones",
						Aliases:  []string{"s"},
						Usage:    "Semitones to shift by (negative for down)",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "apply",
						Usage: "Rewrite the stored ChordPro source instead of saving an offset",
					},
				},
				Action: r.SongTranspose,
			},
		},
	}
}

// libraryCommand handles set lists.
func libraryCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "library",
		Aliases: []string{"lib"},
		Usage:   "Manage libraries (ordered set lists of songs)",
		Commands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Create a library",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "description",
						Usage: "Library description",
					},
				},
				Action: r.LibraryCreate,
			},
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List libraries",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.LibraryList,
			},
			{
				Name:  "show",
				Usage: "Show a library's songs in order",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "library"},
				},
				Action: r.LibraryShow,
			},
			{
				Name:  "add",
				Usage: "Append songs to a library",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "library"},
					&cli.StringArgs{Name: "songs", Min: 1, Max: -1},
				},
				Action: r.LibraryAdd,
			},
			{
				Name:  "remove",
				Usage: "Remove songs from a library",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "library"},
					&cli.StringArgs{Name: "songs", Min: 1, Max: -1},
				},
				Action: r.LibraryRemove,
			},
			{
				Name:    "delete",
				Aliases: []string{"rm"},
				Usage:   "Delete a library (its songs are kept)",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "library"},
				},
				Action: r.LibraryDelete,
			},
		},
	}
}

// renderCommand renders a ChordPro file without storing it.
func renderCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "Render a ChordPro file (- for stdin) as an aligned chord sheet",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "file"},
		},
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "transpose",
				Aliases: []string{"t"},
				Usage:   "Semitones to shift by before rendering",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output the rendered lines as JSON",
			},
		},
		Action: r.Render,
	}
}

// transposeCommand rewrites the chords of a ChordPro file.
func transposeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "transpose",
		Usage: "Transpose every chord and key directive of a ChordPro file (- for stdin)",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "file"},
		},
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:     "semitones",
				Aliases:  []string{"s"},
				Usage:    "Semitones to shift by (negative for down)",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write to this file instead of stdout",
			},
		},
		Action: r.Transpose,
	}
}

// chordCommand exposes the editor's chord tools.
func chordCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "chord",
		Usage: "Chord tools",
		Commands: []*cli.Command{
			{
				Name:  "at",
				Usage: "Find the bracketed chord at a character offset of a file (- for stdin)",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "file"},
				},
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:     "offset",
						Usage:    "Character offset into the file",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.ChordAt,
			},
			{
				Name:  "toggle",
				Usage: "Toggle a 7, 9 or 11 extension on a chord",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "chord"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "ext",
						Aliases: []string{"e"},
						Usage:   "Extension: 7, 9 or 11",
						Value:   "7",
					},
				},
				Action: r.ChordToggle,
			},
			{
				Name:  "transpose",
				Usage: "Transpose a single chord symbol",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "chord"},
				},
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:     "semitones",
						Aliases:  []string{"s"},
						Usage:    "Semitones to shift by",
						Required: true,
					},
				},
				Action: r.ChordTranspose,
			},
		},
	}
}

// exportCommand writes songs to disk.
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export songs as text, Markdown, ChordPro and/or a CSV index",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Formats: txt, md, cho, csv (repeatable)",
				Value:   []string{"txt"},
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output directory (default: [export] output_dir)",
			},
			&cli.StringFlag{
				Name:    "library",
				Aliases: []string{"l"},
				Usage:   "Only export this library",
			},
			&cli.IntFlag{
				Name:    "transpose",
				Aliases: []string{"t"},
				Usage:   "Extra semitones on top of each song's saved offset",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent workers (default: [export] workers)",
			},
		},
		Action: r.Export,
	}
}

// backupCommand handles full song book backups.
func backupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "backup",
		Usage: "Back up or restore the whole song book (.json, or .json.xz compressed)",
		Commands: []*cli.Command{
			{
				Name:  "export",
				Usage: "Write every song and library to a backup file",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Action: r.BackupExport,
			},
			{
				Name:  "import",
				Usage: "Restore a backup file, skipping songs that already exist",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Action: r.BackupImport,
			},
		},
	}
}

// importCommand bulk-imports ChordPro files.
func importCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Import ChordPro files, directories or globs (songs/**/*.cho)",
		Arguments: []cli.Argument{
			&cli.StringArgs{Name: "paths", Min: 1, Max: -1},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "library",
				Aliases: []string{"l"},
				Usage:   "Add imported songs to this library",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Report what would be imported without writing",
			},
		},
		Action: r.Import,
	}
}

// watchCommand re-renders a file whenever it changes.
func watchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Render a ChordPro file and re-render it on every save",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "file"},
		},
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "transpose",
				Aliases: []string{"t"},
				Usage:   "Semitones to shift by before rendering",
			},
			&cli.DurationFlag{
				Name:  "debounce",
				Usage: "Quiet period before re-rendering (default: [editor] debounce_ms)",
			},
		},
		Action: r.Watch,
	}
}

// serveCommand runs the JSON API.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the chord tools and song book over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Listen host (default: [server] host)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Listen port (default: [server] port)",
			},
		},
		Action: r.Serve,
	}
}

// tuiCommand returns the top-level TUI command for the interactive song book.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive song book (list, sheet view, live editor)",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "library",
				Aliases: []string{"l"},
				Usage:   "Only show this library",
			},
		},
		Action: r.TUI,
	}
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/Guillaumelf26/Harmony-sub000/internal/chordpro"
	"github.com/Guillaumelf26/Harmony-sub000/internal/shared"
)

// Render prints a ChordPro file as an aligned chord sheet.
func (r *Runner) Render(ctx context.Context, cmd *cli.Command) error {
	content, err := r.readSource(cmd.StringArg("file"))
	if err != nil {
		return err
	}

	if n := cmd.Int("transpose"); n != 0 {
		content = chordpro.TransposeText(content, n)
	}
	sheet := chordpro.RenderSheet(chordpro.Parse(content))

	if cmd.Bool("json") {
		return r.writeJSON(sheet, true)
	}
	return r.writePlain("%s", sheet.String())
}

// Transpose rewrites every chord and key directive of a ChordPro file.
func (r *Runner) Transpose(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("file")
	content, err := r.readSource(path)
	if err != nil {
		return err
	}

	result := chordpro.TransposeText(content, cmd.Int("semitones"))

	if out := cmd.String("output"); out != "" {
		if err := os.WriteFile(out, []byte(result), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", out, err)
		}
		r.logger.Info("transposed file written", "from", path, "to", out, "semitones", cmd.Int("semitones"))
		return nil
	}
	return r.writePlain("%s", result)
}

// locateOutput is the JSON shape of `chord at`.
type locateOutput struct {
	Found bool `json:"found"`
	chordpro.ChordLocation
	Extension string `json:"extension,omitempty"`
}

// ChordAt reports the bracketed chord enclosing a character offset.
func (r *Runner) ChordAt(ctx context.Context, cmd *cli.Command) error {
	content, err := r.readSource(cmd.StringArg("file"))
	if err != nil {
		return err
	}

	loc, found := chordpro.LocateChordAt(cmd.Int("offset"), content)
	out := locateOutput{Found: found, ChordLocation: loc}
	if ext, ok := chordpro.ChordExtension(loc.Chord); found && ok {
		out.Extension = string(ext)
	}

	if cmd.Bool("json") {
		return r.writeJSON(out, false)
	}
	if !found {
		return r.writePlain("No chord at offset %d\n", cmd.Int("offset"))
	}
	return r.writePlain("%s [%d, %d)\n", loc.Chord, loc.Start, loc.End)
}

// ChordToggle adds or removes an extension on a chord symbol.
func (r *Runner) ChordToggle(ctx context.Context, cmd *cli.Command) error {
	chord := cmd.StringArg("chord")
	if chord == "" {
		return fmt.Errorf("%w: chord", shared.ErrMissingArgument)
	}

	ext, ok := chordpro.ParseExtension(cmd.String("ext"))
	if !ok {
		return fmt.Errorf("%w: extension %q (use 7, 9 or 11)", shared.ErrInvalidFlag, cmd.String("ext"))
	}
	return r.writePlain("%s\n", chordpro.ToggleExtension(chord, ext))
}

// ChordTranspose shifts a single chord symbol.
func (r *Runner) ChordTranspose(ctx context.Context, cmd *cli.Command) error {
	chord := cmd.StringArg("chord")
	if chord == "" {
		return fmt.Errorf("%w: chord", shared.ErrMissingArgument)
	}
	return r.writePlain("%s\n", chordpro.TransposeChord(chord, cmd.Int("semitones")))
}

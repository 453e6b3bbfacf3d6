package tasks

import (
	"context"
	"fmt"

	"github.com/Guillaumelf26/Harmony-sub000/internal/shared"
)

// TransposeResult reports one song of a bulk transpose.
type TransposeResult struct {
	Ref    string
	SongID string
	Title  string
	Key    string
	Error  error
}

// BulkTranspose rewrites the stored source of every referenced song by semitones.
//
// Each song's display offset is reset, since the shift is now part of its text.
// References are resolved like the CLI does (sequence number or ID).
func (e *Engine) BulkTranspose(ctx context.Context, prog chan<- ProgressUpdate, refs []string, semitones int) ([]TransposeResult, error) {
	if semitones%12 == 0 {
		return nil, fmt.Errorf("%w: %d semitones leaves every chord unchanged", shared.ErrInvalidArgument, semitones)
	}

	results := make([]TransposeResult, 0, len(refs))
	for i, ref := range refs {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		res := TransposeResult{Ref: ref}
		song, err := e.songs.Resolve(ref)
		if err != nil {
			res.Error = err
			results = append(results, res)
			e.sendProgress(prog, transposeFailedUpdate(i+1, len(refs), ref, err))
			continue
		}

		song.ApplyTranspose(semitones)
		if err := e.songs.Update(song); err != nil {
			res.Error = err
			results = append(results, res)
			e.sendProgress(prog, transposeFailedUpdate(i+1, len(refs), ref, err))
			continue
		}

		res.SongID, res.Title, res.Key = song.ID(), song.Title(), song.Key()
		results = append(results, res)
		e.sendProgress(prog, transposedUpdate(i+1, len(refs), song, semitones))
	}

	return results, nil
}

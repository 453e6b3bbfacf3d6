package tasks

import (
	"fmt"

	"github.com/Guillaumelf26/Harmony-sub000/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	ScanFiles Phase = iota
	ImportSongs
	ExportSongs
	TransposeSongs
	RestoreBackup
	WatchFile
)

func (p Phase) String() string {
	switch p {
	case ScanFiles:
		return "scan_files"
	case ImportSongs:
		return "import_songs"
	case ExportSongs:
		return "export_songs"
	case TransposeSongs:
		return "transpose_songs"
	case RestoreBackup:
		return "restore_backup"
	case WatchFile:
		return "watch_file"
	default:
		return ""
	}
}

func scanFilesUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ScanFiles,
		Step:    total,
		Total:   total,
		Message: fmt.Sprintf("Found %d ChordPro files", total),
	}
}

func importedUpdate(step, total int, path string, song *models.Song) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ImportSongs,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%s)", step, total, song.Title(), path),
		Data:    song,
	}
}

func importSkippedUpdate(step, total int, path, reason string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ImportSongs,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] - %s: %s", step, total, path, reason),
	}
}

func importFailedUpdate(step, total int, path string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ImportSongs,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, path, err),
	}
}

func exportingSongUpdate(step, total int, title string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportSongs,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Exporting: %s...", step, total, title),
	}
}

func exportCompletedUpdate(step, total int, title string, filesCount int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportSongs,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d files)", step, total, title, filesCount),
	}
}

func exportFailedUpdate(step, total int, title string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportSongs,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, title, err),
	}
}

func transposedUpdate(step, total int, song *models.Song, semitones int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   TransposeSongs,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s %+d → %s", step, total, song.Title(), semitones, keyLabel(song.Key())),
		Data:    song,
	}
}

func transposeFailedUpdate(step, total int, ref string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   TransposeSongs,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, ref, err),
	}
}

func restoreUpdate(step, total int, message string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   RestoreBackup,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s", step, total, message),
	}
}

func keyLabel(key string) string {
	if key == "" {
		return "no key"
	}
	return "key " + key
}

func watchUpdate(changes int, path string) ProgressUpdate {
	msg := fmt.Sprintf("Watching %s", path)
	if changes > 0 {
		msg = fmt.Sprintf("Re-rendered %s (%d changes)", path, changes)
	}
	return ProgressUpdate{
		Phase:   WatchFile,
		Step:    changes,
		Message: msg,
	}
}

// package tasks implements long-running song book jobs: import, bulk export, bulk transpose,
// backup restore and file watching.
//
// Operations emit progress updates via channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"github.com/charmbracelet/log"

	"github.com/Guillaumelf26/Harmony-sub000/internal/models"
	"github.com/Guillaumelf26/Harmony-sub000/internal/shared"
)

// SongStore is the song persistence the engine needs.
type SongStore interface {
	models.Repository[*models.Song]
	GetByHash(hash string) (*models.Song, error)
	Resolve(ref string) (*models.Song, error)
}

// LibraryStore is the set-list persistence the engine needs.
type LibraryStore interface {
	models.Repository[*models.Library]
	Resolve(ref string) (*models.Library, error)
	AddSong(libraryID, songID string) error
}

// Engine runs batch operations over the song book.
type Engine struct {
	songs     SongStore
	libraries LibraryStore
	logger    *log.Logger
}

// NewEngine creates an Engine. libraries may be nil when no set-list features are used.
func NewEngine(songs SongStore, libraries LibraryStore, logger *log.Logger) *Engine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Engine{songs: songs, libraries: libraries, logger: logger}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *Engine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

package models

import (
	"fmt"
	"strings"

	"github.com/Guillaumelf26/Harmony-sub000/internal/shared"
)

// Library is a named, ordered set list of songs.
type Library struct {
	base
	name        string
	description string
	songIDs     []string
}

// NewLibrary creates a library with no songs.
func NewLibrary(sequence int, name, description string) *Library {
	return &Library{base: newBase(sequence), name: name, description: description}
}

func (l *Library) Name() string { return l.name }
func (l *Library) SetName(name string) { l.name = name }
func (l *Library) Description() string { return l.description }
func (l *Library) SetDescription(desc string) { l.description = desc }

// SongIDs returns the song IDs in set-list order.
func (l *Library) SongIDs() []string { return l.songIDs }

// SetSongIDs replaces the song order.
func (l *Library) SetSongIDs(ids []string) { l.songIDs = ids }

// Validate checks that the library has a name.
func (l *Library) Validate() error {
	if strings.TrimSpace(l.name) == "" {
		return fmt.Errorf("%w: library name is empty", shared.ErrInvalidInput)
	}
	return nil
}

package models

import (
	"fmt"
	"strings"

	"github.com/Guillaumelf26/Harmony-sub000/internal/chordpro"
	"github.com/Guillaumelf26/Harmony-sub000/internal/shared"
)

// UntitledSong is used when the source has no usable title directive.
const UntitledSong = "Untitled"

// Song is a ChordPro source stored in the song book.
//
// Title, artist and key are derived from the source's header directives
// whenever the content changes, so they always agree with the text.
type Song struct {
	base
	title       string
	artist      string
	key         string
	content     string
	contentHash string
	transpose   int
}

// NewSong creates a song from ChordPro content, deriving its header fields.
func NewSong(sequence int, content string) *Song {
	s := &Song{base: newBase(sequence)}
	s.SetContent(content)
	return s
}

// SetContent replaces the ChordPro source and re-derives title, artist, key and hash.
func (s *Song) SetContent(content string) {
	doc := chordpro.Parse(content)

	s.content = content
	s.contentHash = shared.ContentHash(content)
	s.title = strings.TrimSpace(doc.TitleOr(""))
	if s.title == "" {
		s.title = UntitledSong
	}
	s.artist = strings.TrimSpace(doc.ArtistOr(""))
	s.key = strings.TrimSpace(doc.KeyOr(""))
}

func (s *Song) Title() string { return s.title }
func (s *Song) Artist() string { return s.artist }
func (s *Song) Key() string { return s.key }
func (s *Song) Content() string { return s.content }
func (s *Song) ContentHash() string { return s.contentHash }

// Transpose is the saved display offset in semitones.
func (s *Song) Transpose() int { return s.transpose }

// SetTranspose stores a display offset normalized into (-12, 12).
func (s *Song) SetTranspose(semitones int) { s.transpose = semitones % 12 }

// Document parses the stored source.
func (s *Song) Document() chordpro.Document {
	return chordpro.Parse(s.content)
}

// Transposed returns the source moved by the saved offset plus extra semitones.
func (s *Song) Transposed(extra int) string {
	return chordpro.TransposeText(s.content, s.transpose+extra)
}

// ApplyTranspose rewrites the stored source by semitones and clears the display offset.
func (s *Song) ApplyTranspose(semitones int) {
	s.SetContent(chordpro.TransposeText(s.content, semitones))
	s.transpose = 0
}

// Validate checks that the song has content and a title.
func (s *Song) Validate() error {
	if strings.TrimSpace(s.content) == "" {
		return fmt.Errorf("%w: song content is empty", shared.ErrInvalidInput)
	}
	if s.title == "" {
		return fmt.Errorf("%w: song title is empty", shared.ErrInvalidInput)
	}
	return nil
}

func (s *Song) String() string {
	if s.artist == "" {
		return s.title
	}
	return s.title + " - " + s.artist
}

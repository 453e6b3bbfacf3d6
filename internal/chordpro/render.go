package chordpro

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// LinePair is one rendered line: a chord line laid out above its lyric line.
//
// For lines derived from lyric text both strings have the same rune length.
type LinePair struct {
	Chords string `json:"chords"`
	Lyrics string `json:"lyrics"`
}

// IsBlank reports whether the pair carries no visible text.
func (p LinePair) IsBlank() bool {
	return strings.TrimSpace(p.Chords) == "" && strings.TrimSpace(p.Lyrics) == ""
}

// HasChords reports whether the chord line carries any symbol.
func (p LinePair) HasChords() bool {
	return strings.TrimSpace(p.Chords) != ""
}

// RenderLines lays out every renderable line of doc as a chord/lyric pair.
//
// Title, artist and key directives are dropped (they belong in a header, see [RenderSheet]).
// Unknown directives become an informational lyric-only line "name: value" and empty lines an
// empty pair.
func RenderLines(doc Document) []LinePair {
	pairs := make([]LinePair, 0, len(doc.Lines))
	for _, line := range doc.Lines {
		switch line.Kind {
		case LineEmpty:
			pairs = append(pairs, LinePair{})
		case LineDirective:
			if line.Directive == nil || line.Directive.Kind != DirectiveUnknown {
				continue
			}
			pairs = append(pairs, LinePair{
				Lyrics: fmt.Sprintf("%s: %s", line.Directive.Name, line.Directive.Value),
			})
		case LineText:
			pairs = append(pairs, alignSegments(line.Segments))
		}
	}
	return pairs
}

// RenderLine lays out a single lyric line.
func RenderLine(line Line) LinePair {
	return alignSegments(line.Segments)
}

// columns is a string builder that tracks its length in runes.
type columns struct {
	b strings.Builder
	n int
}

func (c *columns) write(s string) {
	c.b.WriteString(s)
	c.n += utf8.RuneCountInString(s)
}

func (c *columns) padTo(width int) {
	if width > c.n {
		c.b.WriteString(strings.Repeat(" ", width-c.n))
		c.n = width
	}
}

// alignSegments folds the segments of a lyric line into two equal-width strings, placing each chord
// symbol above the lyric character where it was inserted.
func alignSegments(segments []Segment) LinePair {
	var chords, lyrics columns

	for _, seg := range segments {
		switch seg.Kind {
		case SegmentLyric:
			chords.padTo(chords.n + utf8.RuneCountInString(seg.Text))
			lyrics.write(seg.Text)
		case SegmentChord:
			chords.padTo(lyrics.n)
			chords.write(seg.Chord)
			lyrics.write(seg.Text)
			chords.padTo(lyrics.n)
		}
	}

	chords.padTo(lyrics.n)
	lyrics.padTo(chords.n)

	return LinePair{Chords: chords.b.String(), Lyrics: lyrics.b.String()}
}

// Sheet is the presentational view of a document: header fields plus rendered lines.
type Sheet struct {
	Title  string     `json:"title"`
	Artist string     `json:"artist,omitempty"`
	Key    string     `json:"key,omitempty"`
	Lines  []LinePair `json:"lines"`
}

// RenderSheet renders doc into a [Sheet].
func RenderSheet(doc Document) Sheet {
	return Sheet{
		Title:  doc.TitleOr(""),
		Artist: doc.ArtistOr(""),
		Key:    doc.KeyOr(""),
		Lines:  RenderLines(doc),
	}
}

// String renders the sheet as plain monospace text. Chord lines that carry no symbol are omitted
// so lyric-only lines are not preceded by a blank row.
func (s Sheet) String() string {
	var b strings.Builder

	if s.Title != "" {
		b.WriteString(s.Title)
		b.WriteString("\n")
	}
	if s.Artist != "" {
		b.WriteString(s.Artist)
		b.WriteString("\n")
	}
	if s.Key != "" {
		fmt.Fprintf(&b, "Key: %s\n", s.Key)
	}
	if b.Len() > 0 {
		b.WriteString("\n")
	}

	for _, pair := range s.Lines {
		if pair.HasChords() {
			b.WriteString(strings.TrimRight(pair.Chords, " "))
			b.WriteString("\n")
		}
		b.WriteString(strings.TrimRight(pair.Lyrics, " "))
		b.WriteString("\n")
	}

	return b.String()
}

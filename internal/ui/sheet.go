package ui

import (
	"fmt"
	"strings"

	"github.com/Guillaumelf26/Harmony-sub000/internal/chordpro"
)

// PaintDocument renders doc as a coloured chord sheet: a header, then each chord line above its
// lyric line. Directives the renderer does not know are shown in the directive style.
func (p *Palette) PaintDocument(doc chordpro.Document) string {
	var b strings.Builder

	if title := doc.TitleOr(""); title != "" {
		b.WriteString(p.title.Render(title))
		b.WriteString("\n")
	}
	var meta []string
	if artist := doc.ArtistOr(""); artist != "" {
		meta = append(meta, artist)
	}
	if key := doc.KeyOr(""); key != "" {
		meta = append(meta, "Key: "+key)
	}
	if len(meta) > 0 {
		b.WriteString(p.directive.Render(strings.Join(meta, " • ")))
		b.WriteString("\n\n")
	}

	for _, line := range doc.Lines {
		switch line.Kind {
		case chordpro.LineEmpty:
			b.WriteString("\n")
		case chordpro.LineDirective:
			if line.Directive == nil || line.Directive.Kind != chordpro.DirectiveUnknown {
				continue
			}
			b.WriteString(p.directive.Render(fmt.Sprintf("%s: %s", line.Directive.Name, line.Directive.Value)))
			b.WriteString("\n")
		case chordpro.LineText:
			pair := chordpro.RenderLine(line)
			if pair.HasChords() {
				b.WriteString(p.chord.Render(strings.TrimRight(pair.Chords, " ")))
				b.WriteString("\n")
			}
			b.WriteString(p.lyric.Render(strings.TrimRight(pair.Lyrics, " ")))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// expandTabs replaces tabs with spaces up to the next multiple of width so chord columns line up.
func expandTabs(s string, width int) string {
	if width <= 0 || !strings.Contains(s, "\t") {
		return s
	}

	var b strings.Builder
	col := 0
	for _, r := range s {
		switch r {
		case '\t':
			n := width - col%width
			b.WriteString(strings.Repeat(" ", n))
			col += n
		case '\n':
			b.WriteRune(r)
			col = 0
		default:
			b.WriteRune(r)
			col++
		}
	}
	return b.String()
}

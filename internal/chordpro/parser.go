package chordpro

import (
	"regexp"
	"strings"
)

// directivePattern matches a whole trimmed line of the form {name: value}.
var directivePattern = regexp.MustCompile(`^\{([^:}]*):(.*)\}$`)

// Parse turns raw ChordPro text into a [Document].
//
// Parsing is line based: each physical line becomes exactly one [Line], in source order. A line is
// empty when it is blank after trimming, a directive when the whole trimmed line matches {name: value},
// and a lyric line otherwise. Parse never fails.
func Parse(input string) Document {
	input = strings.ReplaceAll(input, "\r\n", "\n")
	rawLines := strings.Split(input, "\n")

	doc := Document{Lines: make([]Line, 0, len(rawLines))}
	for _, raw := range rawLines {
		doc.Lines = append(doc.Lines, parseLine(&doc, raw))
	}
	return doc
}

func parseLine(doc *Document, raw string) Line {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Line{Kind: LineEmpty}
	}

	if directive, ok := parseDirective(trimmed); ok {
		switch directive.Kind {
		case DirectiveTitle:
			doc.Title = &directive.Value
		case DirectiveArtist:
			doc.Artist = &directive.Value
		case DirectiveKey:
			doc.Key = &directive.Value
		}
		return Line{Kind: LineDirective, Directive: &directive}
	}

	return Line{Kind: LineText, Raw: raw, Segments: parseSegments(raw)}
}

// parseDirective matches a trimmed line against the directive pattern.
func parseDirective(trimmed string) (Directive, bool) {
	m := directivePattern.FindStringSubmatch(trimmed)
	if m == nil {
		return Directive{}, false
	}

	name := strings.TrimSpace(m[1])
	value := strings.TrimSpace(m[2])

	d := Directive{Kind: DirectiveUnknown, Name: name, Value: value}
	switch strings.ToLower(name) {
	case "title":
		d.Kind = DirectiveTitle
	case "artist":
		d.Kind = DirectiveArtist
	case "key":
		d.Kind = DirectiveKey
	}
	return d, true
}

// parseSegments scans a lyric line left to right, pairing each bracketed chord with the lyric run
// that follows it. A '[' without a closing ']' later on the line is kept as literal lyric text.
func parseSegments(line string) []Segment {
	var (
		segments []Segment
		lyric    strings.Builder
	)

	i := 0
	for i < len(line) {
		if line[i] != '[' {
			lyric.WriteByte(line[i])
			i++
			continue
		}

		closeIdx := strings.IndexByte(line[i+1:], ']')
		if closeIdx < 0 {
			lyric.WriteByte(line[i])
			i++
			continue
		}
		closeIdx += i + 1

		if lyric.Len() > 0 {
			segments = append(segments, LyricSegment(lyric.String()))
			lyric.Reset()
		}

		chord := line[i+1 : closeIdx]
		after := closeIdx + 1
		next := strings.IndexByte(line[after:], '[')
		if next < 0 {
			next = len(line)
		} else {
			next += after
		}

		segments = append(segments, ChordSegment(chord, line[after:next]))
		i = next
	}

	if lyric.Len() > 0 {
		segments = append(segments, LyricSegment(lyric.String()))
	}
	return segments
}

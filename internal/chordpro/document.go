package chordpro

// LineKind enumerates the variants of [Line].
type LineKind int

const (
	LineEmpty LineKind = iota
	LineDirective
	LineText
)

func (k LineKind) String() string {
	switch k {
	case LineEmpty:
		return "empty"
	case LineDirective:
		return "directive"
	case LineText:
		return "text"
	default:
		return ""
	}
}

// DirectiveKind enumerates the variants of [Directive].
type DirectiveKind int

const (
	DirectiveTitle DirectiveKind = iota
	DirectiveArtist
	DirectiveKey
	DirectiveUnknown
)

func (k DirectiveKind) String() string {
	switch k {
	case DirectiveTitle:
		return "title"
	case DirectiveArtist:
		return "artist"
	case DirectiveKey:
		return "key"
	case DirectiveUnknown:
		return "unknown"
	default:
		return ""
	}
}

// SegmentKind enumerates the variants of [Segment].
type SegmentKind int

const (
	SegmentLyric SegmentKind = iota
	SegmentChord
)

// Directive is the payload of a `{name: value}` control line.
//
// Name keeps the casing found in the source; dispatch on Kind instead.
type Directive struct {
	Kind  DirectiveKind
	Name  string
	Value string
}

// Segment is a run of a lyric line.
//
// For [SegmentLyric], Text is plain lyric text. For [SegmentChord], Chord is the raw token between
// the brackets and Text is the lyric that follows it up to the next chord or the end of the line.
type Segment struct {
	Kind  SegmentKind
	Chord string
	Text  string
}

// LyricSegment builds a [SegmentLyric].
func LyricSegment(text string) Segment {
	return Segment{Kind: SegmentLyric, Text: text}
}

// ChordSegment builds a [SegmentChord].
func ChordSegment(chord, lyricAfter string) Segment {
	return Segment{Kind: SegmentChord, Chord: chord, Text: lyricAfter}
}

// Line is one physical line of a song.
//
// Directive is only set for [LineDirective]; Raw and Segments only for [LineText].
type Line struct {
	Kind      LineKind
	Directive *Directive
	Raw       string
	Segments  []Segment
}

// Lyrics returns the lyric content of a text line with every chord token removed.
func (l Line) Lyrics() string {
	var out []byte
	for _, seg := range l.Segments {
		out = append(out, seg.Text...)
	}
	return string(out)
}

// Document is the parsed form of one song.
//
// Title, Artist and Key are nil when the directive never appeared and point to the value of the
// last occurrence otherwise (an empty value is an explicit override to "").
type Document struct {
	Title  *string
	Artist *string
	Key    *string
	Lines  []Line
}

// Chords returns the distinct chord tokens of the document in first-seen order.
func (d Document) Chords() []string {
	seen := make(map[string]bool)
	var chords []string
	for _, line := range d.Lines {
		for _, seg := range line.Segments {
			if seg.Kind != SegmentChord || seg.Chord == "" || seen[seg.Chord] {
				continue
			}
			seen[seg.Chord] = true
			chords = append(chords, seg.Chord)
		}
	}
	return chords
}

// TitleOr returns the title or fallback when no title directive was seen.
func (d Document) TitleOr(fallback string) string {
	return valueOr(d.Title, fallback)
}

// ArtistOr returns the artist or fallback when no artist directive was seen.
func (d Document) ArtistOr(fallback string) string {
	return valueOr(d.Artist, fallback)
}

// KeyOr returns the key or fallback when no key directive was seen.
func (d Document) KeyOr(fallback string) string {
	return valueOr(d.Key, fallback)
}

func valueOr(p *string, fallback string) string {
	if p == nil {
		return fallback
	}
	return *p
}

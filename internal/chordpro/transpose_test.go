package chordpro

import "testing"

func TestTransposeChord(t *testing.T) {
	tc := []struct {
		name      string
		symbol    string
		semitones int
		want      string
	}{
		{name: "major up", symbol: "C", semitones: 2, want: "D"},
		{name: "minor down", symbol: "Am", semitones: -2, want: "Gm"},
		{name: "slash chord spelled with flats", symbol: "C/E", semitones: 2, want: "D/Gb"},
		{name: "sharp keeps sharps", symbol: "F#m7", semitones: 1, want: "Gm7"},
		{name: "sharp result", symbol: "C#", semitones: 2, want: "D#"},
		{name: "flat result", symbol: "Bb", semitones: 1, want: "B"},
		{name: "wraps upward", symbol: "Bb", semitones: 2, want: "C"},
		{name: "wraps downward", symbol: "C", semitones: -1, want: "B"},
		{name: "large offset", symbol: "D", semitones: 26, want: "E"},
		{name: "large negative offset", symbol: "D", semitones: -25, want: "Db"},
		{name: "suffix untouched", symbol: "Ebmaj7sus4", semitones: 2, want: "Fmaj7sus4"},
		{name: "slash chord with sharps", symbol: "Am/G#", semitones: 2, want: "Bm/A#"},
		{name: "sharp bass only", symbol: "D/F#", semitones: 2, want: "E/G#"},
		{name: "sharp root spells the bass", symbol: "F#/A", semitones: 1, want: "G/A#"},
		{name: "flat slash chord", symbol: "Bb/D", semitones: 1, want: "B/Eb"},
		{name: "Cb resolves to B", symbol: "Cb", semitones: 1, want: "C"},
		{name: "Fb resolves to E", symbol: "Fb", semitones: 2, want: "Gb"},
		{name: "E# resolves to F", symbol: "E#", semitones: 1, want: "F#"},
		{name: "B# resolves to C", symbol: "B#", semitones: -1, want: "B"},
		{name: "no chord", symbol: "N.C.", semitones: 3, want: "N.C."},
		{name: "empty", symbol: "", semitones: 3, want: ""},
		{name: "lowercase root", symbol: "am", semitones: 3, want: "am"},
		{name: "unparseable bass", symbol: "C/x", semitones: 2, want: "D/x"},
		{name: "double sharp", symbol: "C##", semitones: 2, want: "C##"},
		{name: "double flat", symbol: "Dbb", semitones: 2, want: "Dbb"},
		{name: "octave", symbol: "Cb", semitones: 12, want: "Cb"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := TransposeChord(tt.symbol, tt.semitones); got != tt.want {
				t.Errorf("TransposeChord(%q, %d) = %q, want %q", tt.symbol, tt.semitones, got, tt.want)
			}
		})
	}
}

func TestTransposeChordProperties(t *testing.T) {
	chords := []string{"C", "C#m", "Db7", "Eb", "F#sus4", "Gb/Bb", "Am7/G", "B", "Bbmaj7", "E#", "Cb"}

	t.Run("periodic over an octave", func(t *testing.T) {
		for _, chord := range chords {
			for _, n := range []int{0, 12, -12, 24} {
				if got := TransposeChord(chord, n); got != chord {
					t.Errorf("TransposeChord(%q, %d) = %q, want unchanged", chord, n, got)
				}
			}
		}
	})

	t.Run("inverse preserves pitch class", func(t *testing.T) {
		for _, chord := range chords {
			for n := -13; n <= 13; n++ {
				back := TransposeChord(TransposeChord(chord, n), -n)
				if rootClass(t, back) != rootClass(t, chord) {
					t.Errorf("TransposeChord(TransposeChord(%q, %d), %d) = %q changes the root", chord, n, -n, back)
				}
			}
		}
	})
}

func rootClass(t *testing.T, symbol string) int {
	t.Helper()
	m := rootPattern.FindStringSubmatch(symbol)
	if m == nil {
		t.Fatalf("no root in %q", symbol)
	}
	pc, ok := pitchClass(m[1] + m[2])
	if !ok {
		t.Fatalf("unknown root in %q", symbol)
	}
	return pc
}

func TestTransposeText(t *testing.T) {
	tc := []struct {
		name      string
		text      string
		semitones int
		want      string
	}{
		{
			name:      "key directive and chords",
			text:      "{key: C}\n[C]Hello",
			semitones: 2,
			want:      "{key: D}\n[D]Hello",
		},
		{
			name:      "other directives untouched",
			text:      "{title: C song}\n{capo: 2}\n[G]la",
			semitones: 2,
			want:      "{title: C song}\n{capo: 2}\n[A]la",
		},
		{
			name:      "key directive formatting preserved",
			text:      "  { KEY :  Am }  \n",
			semitones: 2,
			want:      "  { KEY :  Bm }  \n",
		},
		{
			name:      "CRLF text",
			text:      "{key: G}\r\n[G]la [D/F#]li\r\n",
			semitones: 2,
			want:      "{key: A}\r\n[A]la [E/G#]li\r\n",
		},
		{
			name:      "unmatched bracket",
			text:      "[C]la [Am hello",
			semitones: 1,
			want:      "[Db]la [Am hello",
		},
		{
			name:      "non-chord tokens",
			text:      "[N.C.] [x] [Em]",
			semitones: -2,
			want:      "[N.C.] [x] [Dm]",
		},
		{
			name:      "key inside lyric is not a directive",
			text:      "sing {key: C} loud",
			semitones: 2,
			want:      "sing {key: C} loud",
		},
		{
			name:      "zero offset",
			text:      "{key: C}\n[C]Hello",
			semitones: 0,
			want:      "{key: C}\n[C]Hello",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := TransposeText(tt.text, tt.semitones); got != tt.want {
				t.Errorf("TransposeText(%q, %d) = %q, want %q", tt.text, tt.semitones, got, tt.want)
			}
		})
	}
}

func TestTransposeTextReparses(t *testing.T) {
	doc := Parse(TransposeText("{title: T}\n{key: Em}\n[Em]one [C]two", 3))
	if doc.KeyOr("") != "Gm" {
		t.Errorf("expected key Gm, got %q", doc.KeyOr(""))
	}
	pair := RenderLines(doc)[0]
	if pair.Lyrics != "one two" {
		t.Errorf("unexpected lyrics %q", pair.Lyrics)
	}
}

package chordpro

import "testing"

func TestLocateChordAt(t *testing.T) {
	tc := []struct {
		name   string
		text   string
		cursor int
		want   ChordLocation
		found  bool
	}{
		{name: "inside chord", text: "Line [Am]text", cursor: 6, want: ChordLocation{Chord: "Am", Start: 5, End: 9}, found: true},
		{name: "on opening bracket", text: "Line [Am]text", cursor: 5, want: ChordLocation{Chord: "Am", Start: 5, End: 9}, found: true},
		{name: "on closing bracket", text: "Line [Am]text", cursor: 8, want: ChordLocation{Chord: "Am", Start: 5, End: 9}, found: true},
		{name: "after closing bracket", text: "Line [Am]text", cursor: 9},
		{name: "end of text", text: "Line [Am]text", cursor: 13},
		{name: "before any bracket", text: "Line [Am]text", cursor: 0},
		{name: "between two chords", text: "[Am] x [G]", cursor: 5},
		{name: "second chord", text: "[Am] x [G]", cursor: 8, want: ChordLocation{Chord: "G", Start: 7, End: 10}, found: true},
		{name: "half-typed chord", text: "[Am la [G]", cursor: 2},
		{name: "across a line break", text: "[Am\nla]", cursor: 1},
		{name: "empty chord", text: "x[]y", cursor: 2, want: ChordLocation{Chord: "", Start: 1, End: 3}, found: true},
		{name: "rune offsets", text: "Ça [Am]", cursor: 4, want: ChordLocation{Chord: "Am", Start: 3, End: 7}, found: true},
		{name: "negative cursor", text: "[Am]", cursor: -1},
		{name: "cursor past the end", text: "[Am]", cursor: 5},
		{name: "empty text", text: "", cursor: 0},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got, found := LocateChordAt(tt.cursor, tt.text)
			if found != tt.found {
				t.Fatalf("expected found=%v, got %v (%+v)", tt.found, found, got)
			}
			if found && got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestReplaceChord(t *testing.T) {
	t.Run("replaces located token", func(t *testing.T) {
		text := "Line [Am]text"
		loc, ok := LocateChordAt(6, text)
		if !ok {
			t.Fatal("expected a chord")
		}
		if got := ReplaceChord(text, loc, "Am7"); got != "Line [Am7]text" {
			t.Errorf("unexpected text %q", got)
		}
	})

	t.Run("rune offsets", func(t *testing.T) {
		text := "Ça [Am] là"
		loc, _ := LocateChordAt(4, text)
		if got := ReplaceChord(text, loc, "E"); got != "Ça [E] là" {
			t.Errorf("unexpected text %q", got)
		}
	})

	t.Run("stale location is ignored", func(t *testing.T) {
		text := "Line [Am]text"
		for _, loc := range []ChordLocation{{Start: 0, End: 4}, {Start: 5, End: 40}, {Start: -1, End: 2}} {
			if got := ReplaceChord(text, loc, "G"); got != text {
				t.Errorf("expected text unchanged for %+v, got %q", loc, got)
			}
		}
	})
}

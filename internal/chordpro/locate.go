package chordpro

// ChordLocation is a bracketed chord token found in raw text.
//
// Start is the rune offset of '[' and End is one past ']', so the token spans [Start, End).
type ChordLocation struct {
	Chord string `json:"chord"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// LocateChordAt finds the bracketed chord token enclosing the rune offset cursor in text.
//
// It works on raw, possibly half-typed text rather than on a parsed [Document]: the nearest '[' at or
// before the cursor and the nearest ']' at or after it must belong to the same token, with no other
// bracket or line break between them. A cursor sitting on either bracket counts as inside.
func LocateChordAt(cursor int, text string) (ChordLocation, bool) {
	runes := []rune(text)
	if cursor < 0 || cursor > len(runes) {
		return ChordLocation{}, false
	}

	open := -1
	for i := min(cursor, len(runes)-1); i >= 0; i-- {
		if runes[i] == '[' {
			open = i
			break
		}
		if runes[i] == ']' && i < cursor {
			// Closed by an earlier token: the cursor is between two chords.
			return ChordLocation{}, false
		}
	}
	if open < 0 {
		return ChordLocation{}, false
	}

	closeIdx := -1
	for i := cursor; i < len(runes); i++ {
		if runes[i] == ']' {
			closeIdx = i
			break
		}
		if runes[i] == '[' && i > open {
			return ChordLocation{}, false
		}
	}
	if closeIdx < open {
		return ChordLocation{}, false
	}

	for _, r := range runes[open+1 : closeIdx] {
		if r == '\n' {
			return ChordLocation{}, false
		}
	}

	loc := ChordLocation{
		Chord: string(runes[open+1 : closeIdx]),
		Start: open,
		End:   closeIdx + 1,
	}
	if cursor < loc.Start || cursor > loc.End {
		return ChordLocation{}, false
	}
	return loc, true
}

// ReplaceChord rewrites the token at loc in text so it holds chord instead.
//
// loc is expected to come from [LocateChordAt] on the same text; an out-of-range location leaves
// text unchanged.
func ReplaceChord(text string, loc ChordLocation, chord string) string {
	runes := []rune(text)
	if loc.Start < 0 || loc.End > len(runes) || loc.End-loc.Start < 2 {
		return text
	}
	if runes[loc.Start] != '[' || runes[loc.End-1] != ']' {
		return text
	}

	out := make([]rune, 0, len(runes)+len(chord))
	out = append(out, runes[:loc.Start+1]...)
	out = append(out, []rune(chord)...)
	out = append(out, runes[loc.End-1:]...)
	return string(out)
}

package chordpro

import (
	"regexp"
	"strings"
)

var (
	sharpNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
	flatNames  = [12]string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}

	// enharmonics resolves spellings that appear in neither table.
	enharmonics = map[string]string{"Cb": "B", "Fb": "E", "E#": "F", "B#": "C"}
)

var (
	rootPattern  = regexp.MustCompile(`^([A-G])([#b]?)(.*)$`)
	chordToken   = regexp.MustCompile(`\[([^\]\n]*)\]`)
	keyDirective = regexp.MustCompile(`(?im)^([ \t]*\{[ \t]*key[ \t]*:[ \t]*)([^}\n]*?)([ \t]*\}[ \t\r]*)$`)
)

// pitchClass maps a root spelling (letter plus optional accidental) to 0-11.
func pitchClass(root string) (int, bool) {
	if alias, ok := enharmonics[root]; ok {
		root = alias
	}
	for i := range sharpNames {
		if sharpNames[i] == root || flatNames[i] == root {
			return i, true
		}
	}
	return 0, false
}

func spell(pc int, sharps bool) string {
	if sharps {
		return sharpNames[pc]
	}
	return flatNames[pc]
}

// transposeRoot shifts the root at the start of symbol and returns the new root plus the untouched
// remainder. ok is false when symbol does not start with a usable root.
func transposeRoot(symbol string, semitones int, sharps bool) (root, rest string, ok bool) {
	m := rootPattern.FindStringSubmatch(symbol)
	if m == nil {
		return "", "", false
	}
	// Double accidentals (C##, Dbb) are left alone.
	if m[2] != "" && m[3] != "" && (m[3][0] == '#' || m[3][0] == 'b') {
		return "", "", false
	}

	pc, found := pitchClass(m[1] + m[2])
	if !found {
		return "", "", false
	}

	shifted := ((pc+semitones)%12 + 12) % 12
	return spell(shifted, sharps), m[3], true
}

// TransposeChord shifts the root (and the bass note of a slash chord) of symbol by semitones.
//
// The quality suffix is carried through untouched. The new root and bass are spelled with sharps
// when the symbol contains '#' anywhere, with flats otherwise. Symbols that do not start with a root letter A-G are returned unchanged, and so is every
// symbol when semitones is a multiple of 12.
func TransposeChord(symbol string, semitones int) string {
	if semitones%12 == 0 {
		return symbol
	}

	sharps := strings.Contains(symbol, "#")
	root, rest, ok := transposeRoot(symbol, semitones, sharps)
	if !ok {
		return symbol
	}

	suffix, bass, slash := strings.Cut(rest, "/")
	if !slash {
		return root + suffix
	}
	if note, tail, ok := transposeRoot(bass, semitones, sharps); ok {
		bass = note + tail
	}
	return root + suffix + "/" + bass
}

// TransposeText rewrites every bracketed chord token and every {key: ...} directive of a raw
// ChordPro text by semitones. Everything else, including whitespace and other directives, is kept
// byte for byte.
func TransposeText(text string, semitones int) string {
	if semitones%12 == 0 {
		return text
	}

	out := chordToken.ReplaceAllStringFunc(text, func(token string) string {
		return "[" + TransposeChord(token[1:len(token)-1], semitones) + "]"
	})

	return keyDirective.ReplaceAllStringFunc(out, func(line string) string {
		m := keyDirective.FindStringSubmatch(line)
		return m[1] + TransposeChord(m[2], semitones) + m[3]
	})
}

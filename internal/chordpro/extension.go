package chordpro

import "strings"

// Extension is a chord extension the editor can toggle on a chord.
type Extension string

const (
	Seventh  Extension = "7"
	Ninth    Extension = "9"
	Eleventh Extension = "11"
)

// extensions is ordered longest first so "11" is never read as a trailing "1".
var extensions = []Extension{Eleventh, Ninth, Seventh}

// ParseExtension returns the [Extension] named by s.
func ParseExtension(s string) (Extension, bool) {
	for _, ext := range extensions {
		if string(ext) == s {
			return ext, true
		}
	}
	return "", false
}

// splitBass separates a slash chord into its upper part and the "/bass" tail (empty when absent).
func splitBass(chord string) (string, string) {
	if i := strings.IndexByte(chord, '/'); i >= 0 {
		return chord[:i], chord[i:]
	}
	return chord, ""
}

// ChordExtension reports the recognised extension the chord ends with, ignoring any bass note.
func ChordExtension(chord string) (Extension, bool) {
	upper, _ := splitBass(chord)
	for _, ext := range extensions {
		if strings.HasSuffix(upper, string(ext)) {
			return ext, true
		}
	}
	return "", false
}

// StripExtension removes a recognised trailing extension, keeping any bass note.
func StripExtension(chord string) string {
	upper, bass := splitBass(chord)
	if ext, ok := ChordExtension(chord); ok {
		upper = strings.TrimSuffix(upper, string(ext))
	}
	return upper + bass
}

// ToggleExtension applies ext to chord, replacing any other recognised extension. Applying the
// extension the chord already carries removes it instead.
func ToggleExtension(chord string, ext Extension) string {
	current, has := ChordExtension(chord)
	base := StripExtension(chord)
	if has && current == ext {
		return base
	}

	upper, bass := splitBass(base)
	return upper + string(ext) + bass
}

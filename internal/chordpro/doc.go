// Package chordpro implements the text-processing pipeline for songs written in the ChordPro convention.
//
// Songs are plain text with inline chord annotations in brackets ("[Am]Shine on") and whole-line
// metadata directives ("{title: Shine On}"). The package is made of four independent pieces:
//
//   - [Parse] : raw text → [Document] (directives plus lyric lines split into [Segment] values)
//   - [RenderLines] : [Document] → aligned chord/lyric [LinePair] values for monospace display
//   - [LocateChordAt] : cursor offset + raw text → the bracketed chord token enclosing the cursor
//   - [TransposeChord] / [TransposeText] : semitone shifting of chord roots and {key: ...} directives
//
// Every function is pure and total: malformed input produces a best-effort value rather than an error,
// and nothing here performs I/O or holds shared mutable state, so all of it is safe for concurrent use.
//
// Character positions (cursor offsets, rendered column widths) are counted in runes.
package chordpro

package ui

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Guillaumelf26/Harmony-sub000/internal/chordpro"
	"github.com/Guillaumelf26/Harmony-sub000/internal/models"
)

// newSongTemplate seeds the editor for a song that does not exist yet.
const newSongTemplate = "{title: }\n{artist: }\n{key: }\n\n"

// editor is the live-preview ChordPro editor: source on the left, rendered sheet on the right.
//
// Every edit bumps seq and schedules a preview tick carrying it; only the tick whose seq is
// still current re-parses, so a burst of keystrokes costs one render.
type editor struct {
	input    textarea.Model
	preview  viewport.Model
	song     *models.Song
	seq      int
	rendered int
	dirty    bool
	discard  bool // esc pressed once with unsaved changes
	chord    chordpro.ChordLocation
	onChord  bool
	tabWidth int
}

func newEditor(tabWidth int) editor {
	input := textarea.New()
	input.ShowLineNumbers = true
	input.CharLimit = 0
	input.MaxHeight = 0
	input.Placeholder = "[C]Type a lyric line with chords in brackets"

	return editor{
		input:    input,
		preview:  viewport.New(0, 0),
		tabWidth: tabWidth,
	}
}

// load replaces the buffer with song's source (or a template for a new song) and renders it.
func (e *editor) load(song *models.Song, p *Palette) tea.Cmd {
	content := newSongTemplate
	if song != nil {
		content = song.Content()
	}
	content = expandTabs(strings.ReplaceAll(content, "\r\n", "\n"), e.tabWidth)

	e.song = song
	e.seq, e.rendered = 0, 0
	e.dirty, e.discard = false, false
	e.input.SetValue(content)
	setCursorOffset(&e.input, 0)
	e.render(p)
	e.locate()
	return e.input.Focus()
}

func (e *editor) setSize(width, height int) {
	left := width / 2
	e.input.SetWidth(left)
	e.input.SetHeight(height)
	e.preview.Width = width - left - 2
	e.preview.Height = height
}

// changed records an edit and schedules the debounced preview for it.
func (e *editor) changed(debounce time.Duration) tea.Cmd {
	e.seq++
	e.dirty = true
	e.discard = false
	seq := e.seq
	return tea.Tick(debounce, func(time.Time) tea.Msg { return previewTickMsg(seq) })
}

// tick renders the preview if seq is the latest edit. It reports whether a render happened.
func (e *editor) tick(seq int, p *Palette) bool {
	if seq != e.seq || seq == e.rendered {
		return false
	}
	e.render(p)
	return true
}

func (e *editor) render(p *Palette) {
	e.rendered = e.seq
	e.preview.SetContent(p.PaintDocument(chordpro.Parse(e.input.Value())))
}

// locate refreshes the chord under the cursor.
func (e *editor) locate() {
	e.chord, e.onChord = chordpro.LocateChordAt(cursorOffset(&e.input), e.input.Value())
}

// toggle adds or removes ext on the chord under the cursor.
func (e *editor) toggle(ext chordpro.Extension) bool {
	text, offset, ok := toggleAt(e.input.Value(), cursorOffset(&e.input), ext)
	if !ok {
		return false
	}
	e.input.SetValue(text)
	setCursorOffset(&e.input, offset)
	e.locate()
	return true
}

// status describes the chord under the cursor for the status line.
func (e *editor) status() string {
	if !e.onChord || e.chord.Chord == "" {
		return "no chord under cursor"
	}
	msg := fmt.Sprintf("chord %s", e.chord.Chord)
	if ext, ok := chordpro.ChordExtension(e.chord.Chord); ok {
		msg = fmt.Sprintf("%s (%s on %s)", msg, ext, chordpro.StripExtension(e.chord.Chord))
	}
	return msg
}

// apply writes the buffer into the song being edited, creating it if needed.
func (e *editor) apply() *models.Song {
	if e.song == nil {
		e.song = models.NewSong(0, e.input.Value())
		return e.song
	}
	e.song.SetContent(e.input.Value())
	return e.song
}

func (e *editor) view(p *Palette) string {
	title := "New song"
	if e.song != nil {
		title = e.song.Title()
	}
	if e.dirty {
		title += " *"
	}

	status := e.status()
	if e.discard {
		status = p.warn.Render("unsaved changes, esc again to discard")
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, e.input.View(), "  ", e.preview.View())
	return fmt.Sprintf("%s\n%s\n%s", p.title.Render(title), body, p.help.Render(status))
}

// toggleAt toggles ext on the chord token enclosing offset in text.
// It returns the new text and a cursor offset that stays inside the rewritten token.
func toggleAt(text string, offset int, ext chordpro.Extension) (string, int, bool) {
	loc, ok := chordpro.LocateChordAt(offset, text)
	if !ok || loc.Chord == "" {
		return text, offset, false
	}

	chord := chordpro.ToggleExtension(loc.Chord, ext)
	if chord == loc.Chord {
		return text, offset, false
	}

	// Keep the cursor inside the token; it can only shrink towards the closing bracket.
	closing := loc.Start + 1 + utf8.RuneCountInString(chord)
	return chordpro.ReplaceChord(text, loc, chord), min(offset, closing), true
}

// cursorOffset converts the textarea's row/column cursor into a rune offset within its value.
func cursorOffset(ta *textarea.Model) int {
	lines := strings.Split(ta.Value(), "\n")
	offset := 0
	for i := 0; i < ta.Line() && i < len(lines); i++ {
		offset += utf8.RuneCountInString(lines[i]) + 1
	}
	li := ta.LineInfo()
	return offset + li.StartColumn + li.ColumnOffset
}

// setCursorOffset moves the textarea cursor to a rune offset within its value.
func setCursorOffset(ta *textarea.Model, offset int) {
	lines := strings.Split(ta.Value(), "\n")
	row, col := 0, max(offset, 0)
	for row < len(lines)-1 {
		n := utf8.RuneCountInString(lines[row])
		if col <= n {
			break
		}
		col -= n + 1
		row++
	}

	// SetValue leaves the cursor on the last row; walk up to the target.
	for guard := ta.LineCount() * 64; ta.Line() > row && guard > 0; guard-- {
		ta.CursorUp()
	}
	for guard := ta.LineCount() * 64; ta.Line() < row && guard > 0; guard-- {
		ta.CursorDown()
	}
	ta.SetCursor(col)
}

package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Guillaumelf26/Harmony-sub000/internal/chordpro"
	"github.com/Guillaumelf26/Harmony-sub000/internal/models"
	"github.com/Guillaumelf26/Harmony-sub000/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	SongListView ViewState = iota
	SheetView
	EditorView
)

// Model represents the TUI application state.
type Model struct {
	ctx      context.Context
	view     ViewState
	songs    models.Repository[*models.Song]
	criteria map[string]any
	palette  *Palette
	debounce time.Duration
	width    int
	height   int
	songList list.Model
	song     *models.Song
	offset   int // sheet transposition, starts at the song's saved offset
	sheet    viewport.Model
	editor   editor
	returnTo ViewState
	status   string
	err      error
	help     help.Model
	keys     keyMap
}

// NewModel creates a new TUI model over the song store.
//
// criteria is passed to the store's List (e.g. {"library_id": id} for a single set list).
func NewModel(ctx context.Context, songs models.Repository[*models.Song], cfg *shared.Config, criteria map[string]any) *Model {
	if cfg == nil {
		cfg = shared.DefaultConfig()
	}
	if criteria == nil {
		criteria = map[string]any{}
	}

	songList := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	songList.Title = "Songs"

	return &Model{
		ctx:      ctx,
		view:     SongListView,
		songs:    songs,
		criteria: criteria,
		palette:  styles.WithSheet(cfg.Render),
		debounce: time.Duration(cfg.Editor.DebounceMS) * time.Millisecond,
		songList: songList,
		sheet:    viewport.New(0, 0),
		editor:   newEditor(cfg.Editor.TabWidth),
		help:     help.New(),
		keys:     newKeyMap(),
	}
}

// Init loads the song list.
func (m *Model) Init() tea.Cmd {
	return m.loadSongs()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.songList.SetSize(msg.Width-4, msg.Height-4)
		m.sheet.Width = msg.Width - 4
		m.sheet.Height = msg.Height - 6
		m.editor.setSize(msg.Width-4, msg.Height-6)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case SongListView:
			return m.handleSongListKeys(msg)
		case SheetView:
			return m.handleSheetKeys(msg)
		case EditorView:
			return m.handleEditorKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	return m.updateViews(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgSongsLoaded:
		data := msg.data.(songsLoaded)
		if data.err != nil {
			m.err = data.err
			return m, nil
		}
		m.err = nil
		cmd := m.songList.SetItems(songItems(data.songs))
		return m, cmd

	case MsgSongSaved:
		data := msg.data.(songSaved)
		if data.err != nil {
			m.status = m.palette.err.Render(fmt.Sprintf("save failed: %v", data.err))
			return m, nil
		}
		m.song = data.song
		m.editor.song = data.song
		m.editor.dirty = false
		m.status = m.palette.ok.Render(fmt.Sprintf("saved %s", data.song))
		if m.view == SheetView {
			m.renderSheet()
		}
		return m, m.loadSongs()

	case MsgPreviewTick:
		if seq, ok := msg.data.(int); ok && m.view == EditorView {
			m.editor.tick(seq, m.palette)
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) handleSongListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.songList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.songList, cmd = m.songList.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.enter):
		if item, ok := m.songList.SelectedItem().(songItem); ok {
			m.openSheet(item.song)
		}
		return m, nil
	case key.Matches(msg, m.keys.edit):
		if item, ok := m.songList.SelectedItem().(songItem); ok {
			return m, m.openEditor(item.song, SongListView)
		}
		return m, nil
	case key.Matches(msg, m.keys.create):
		return m, m.openEditor(nil, SongListView)
	}

	var cmd tea.Cmd
	m.songList, cmd = m.songList.Update(msg)
	return m, cmd
}

func (m *Model) handleSheetKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = SongListView
		m.status = ""
		return m, nil
	case key.Matches(msg, m.keys.sharp):
		m.shift(1)
		return m, nil
	case key.Matches(msg, m.keys.flat):
		m.shift(-1)
		return m, nil
	case key.Matches(msg, m.keys.reset):
		m.offset = 0
		m.renderSheet()
		return m, nil
	case key.Matches(msg, m.keys.save):
		song := m.song
		song.SetTranspose(m.offset)
		return m, m.saveSong(song)
	case key.Matches(msg, m.keys.edit):
		return m, m.openEditor(m.song, SheetView)
	}

	var cmd tea.Cmd
	m.sheet, cmd = m.sheet.Update(msg)
	return m, cmd
}

func (m *Model) handleEditorKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	e := &m.editor

	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		if e.dirty && !e.discard {
			e.discard = true
			return m, nil
		}
		e.input.Blur()
		if m.returnTo == SheetView && m.song != nil {
			m.openSheet(m.song)
		} else {
			m.view = SongListView
		}
		return m, nil
	case key.Matches(msg, m.keys.write):
		return m, m.saveSong(e.apply())
	case key.Matches(msg, m.keys.seventh):
		return m, m.toggleExtension(chordpro.Seventh)
	case key.Matches(msg, m.keys.ninth):
		return m, m.toggleExtension(chordpro.Ninth)
	case key.Matches(msg, m.keys.eleventh):
		return m, m.toggleExtension(chordpro.Eleventh)
	}

	before := e.input.Value()
	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	e.locate()
	if e.input.Value() != before {
		return m, tea.Batch(cmd, e.changed(m.debounce))
	}
	return m, cmd
}

func (m *Model) toggleExtension(ext chordpro.Extension) tea.Cmd {
	if !m.editor.toggle(ext) {
		return nil
	}
	return m.editor.changed(m.debounce)
}

func (m *Model) updateViews(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case SongListView:
		m.songList, cmd = m.songList.Update(msg)
	case SheetView:
		m.sheet, cmd = m.sheet.Update(msg)
	case EditorView:
		m.editor.input, cmd = m.editor.input.Update(msg)
	}
	return m, cmd
}

func (m *Model) openSheet(song *models.Song) {
	m.song = song
	m.offset = song.Transpose()
	m.status = ""
	m.view = SheetView
	m.renderSheet()
	m.sheet.GotoTop()
}

func (m *Model) openEditor(song *models.Song, from ViewState) tea.Cmd {
	m.returnTo = from
	m.view = EditorView
	m.status = ""
	return m.editor.load(song, m.palette)
}

// shift moves the sheet by n semitones, wrapping within an octave.
func (m *Model) shift(n int) {
	m.offset = (m.offset + n) % 12
	m.renderSheet()
}

func (m *Model) renderSheet() {
	if m.song == nil {
		return
	}
	doc := chordpro.Parse(chordpro.TransposeText(m.song.Content(), m.offset))
	m.sheet.SetContent(m.palette.PaintDocument(doc))
}

func (m *Model) loadSongs() tea.Cmd {
	return func() tea.Msg {
		songs, err := m.songs.List(m.criteria)
		return songsLoadedMsg(songs, err)
	}
}

func (m *Model) saveSong(song *models.Song) tea.Cmd {
	return func() tea.Msg {
		var err error
		if song.ID() == "" {
			err = m.songs.Create(song)
		} else {
			err = m.songs.Update(song)
		}
		return songSavedMsg(song, err)
	}
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case SongListView:
		return m.renderSongList()
	case SheetView:
		return m.renderSheetView()
	case EditorView:
		return m.renderEditor()
	default:
		return ""
	}
}

func (m *Model) renderSongList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.edit, m.keys.create, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n%s\n%s", m.songList.View(), m.status, helpView)
}

func (m *Model) renderSheetView() string {
	header := fmt.Sprintf("Transpose %+d", m.offset)
	if m.song != nil && m.offset != m.song.Transpose() {
		header += m.palette.warn.Render(fmt.Sprintf("  (saved %+d, s to keep)", m.song.Transpose()))
	}

	helpKeys := []key.Binding{m.keys.sharp, m.keys.flat, m.keys.reset, m.keys.save, m.keys.edit, m.keys.back}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n%s\n%s\n%s", header, m.sheet.View(), m.status, helpView)
}

func (m *Model) renderEditor() string {
	helpKeys := []key.Binding{m.keys.write, m.keys.seventh, m.keys.ninth, m.keys.eleventh, m.keys.back}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n%s\n%s", m.editor.view(m.palette), m.status, helpView)
}

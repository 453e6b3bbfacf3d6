package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Guillaumelf26/Harmony-sub000/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgSongsLoaded MsgKind = iota
	MsgSongSaved
	MsgPreviewTick
)

type songsLoaded struct {
	songs []*models.Song
	err   error
}

type songSaved struct {
	song *models.Song
	err  error
}

// songsLoadedMsg is the constructor for [MsgSongsLoaded]
func songsLoadedMsg(songs []*models.Song, err error) Msg {
	return Msg{kind: MsgSongsLoaded, data: songsLoaded{songs, err}}
}

// songSavedMsg is the constructor for [MsgSongSaved]
func songSavedMsg(song *models.Song, err error) Msg {
	return Msg{kind: MsgSongSaved, data: songSaved{song, err}}
}

// previewTickMsg is the constructor for [MsgPreviewTick]; seq identifies the edit that scheduled it.
func previewTickMsg(seq int) Msg {
	return Msg{kind: MsgPreviewTick, data: seq}
}

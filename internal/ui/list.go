package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/Guillaumelf26/Harmony-sub000/internal/models"
)

var _ list.Item = songItem{}

// songItem wraps [models.Song] to implement [list.Item].
type songItem struct {
	song *models.Song
}

func (i songItem) FilterValue() string { return i.song.Title() + " " + i.song.Artist() }
func (i songItem) Title() string       { return fmt.Sprintf("#%d %s", i.song.Sequence(), i.song.Title()) }
func (i songItem) Description() string {
	desc := i.song.Artist()
	if desc == "" {
		desc = "Unknown artist"
	}
	if key := i.song.Key(); key != "" {
		desc = fmt.Sprintf("%s • %s", desc, key)
	}
	if t := i.song.Transpose(); t != 0 {
		desc = fmt.Sprintf("%s • %+d", desc, t)
	}
	return desc
}

func songItems(songs []*models.Song) []list.Item {
	items := make([]list.Item, len(songs))
	for i, s := range songs {
		items[i] = songItem{song: s}
	}
	return items
}

package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Guillaumelf26/Harmony-sub000/internal/shared"
)

var styles = NewPalette("#7D56F4", "#04B575", "#FF0000", "#FFA500", "#626262")

// interface Painter defines coloring text with [lipgloss] styles
type Painter interface {
	On(string, lipgloss.Color) string // Sets background color
	As(string, lipgloss.Color) string // Sets foreground color
}

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style

	// chord sheet
	chord     lipgloss.Style
	lyric     lipgloss.Style
	directive lipgloss.Style
	cursor    lipgloss.Style
}

var _ Painter = (*Palette)(nil)

func NewPalette(t, s, e, w, h string) *Palette {
	return &Palette{
		title:     NewBold(t).MarginBottom(1),
		ok:        NewBold(s),
		err:       NewBold(e),
		warn:      NewStyle(w),
		help:      NewEm(h),
		chord:     NewBold(t),
		lyric:     lipgloss.NewStyle(),
		directive: NewEm(h),
		cursor:    NewBold(s).Underline(true),
	}
}

// WithSheet returns a copy of p that paints chord sheets with the configured colours.
// Empty colours keep the current style.
func (p *Palette) WithSheet(cfg shared.RenderConfig) *Palette {
	c := *p
	if cfg.ChordColor != "" {
		c.chord = NewBold(cfg.ChordColor)
		c.title = NewBold(cfg.ChordColor).MarginBottom(1)
	}
	if cfg.LyricColor != "" {
		c.lyric = NewStyle(cfg.LyricColor)
	}
	if cfg.DirectiveColor != "" {
		c.directive = NewEm(cfg.DirectiveColor)
	}
	return &c
}

func (p *Palette) On(s string, c lipgloss.Color) string {
	return lipgloss.NewStyle().Background(c).Render(s)
}

func (p *Palette) As(s string, c lipgloss.Color) string {
	return lipgloss.NewStyle().Foreground(c).Render(s)
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}

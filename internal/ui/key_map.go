package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up       key.Binding
	down     key.Binding
	enter    key.Binding
	back     key.Binding
	edit     key.Binding
	create   key.Binding
	sharp    key.Binding
	flat     key.Binding
	reset    key.Binding
	save     key.Binding
	write    key.Binding
	seventh  key.Binding
	ninth    key.Binding
	eleventh key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		create:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new song")),
		sharp:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "up a semitone")),
		flat:     key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "down a semitone")),
		reset:    key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "original key")),
		save:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save key")),
		write:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		seventh:  key.NewBinding(key.WithKeys("alt+7"), key.WithHelp("alt+7", "toggle 7")),
		ninth:    key.NewBinding(key.WithKeys("alt+9"), key.WithHelp("alt+9", "toggle 9")),
		eleventh: key.NewBinding(key.WithKeys("alt+1"), key.WithHelp("alt+1", "toggle 11")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter, k.back},
		{k.edit, k.create, k.sharp, k.flat, k.reset, k.save},
		{k.write, k.seventh, k.ninth, k.eleventh},
		{k.quit},
	}
}

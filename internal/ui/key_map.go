package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	add      key.Binding
	playlist key.Binding
	filter   key.Binding
	sort     key.Binding
	refresh  key.Binding
	quit     key.Binding

	up       key.Binding
	down     key.Binding
	enter    key.Binding
	back     key.Binding
	revert   key.Binding
	confirm  key.Binding
	undo     key.Binding
	redo     key.Binding
	maskNext key.Binding
	maskPrev key.Binding
	applyAll key.Binding
	applyOne key.Binding
	clear    key.Binding
	remove   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		playlist: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "playlist length")),
		filter:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "status filter")),
		sort:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		up:       key.NewBinding(key.WithKeys("up", "shift+tab"), key.WithHelp("↑", "up")),
		down:     key.NewBinding(key.WithKeys("down", "tab"), key.WithHelp("↓", "down")),
		enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next/new field")),
		back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		revert:   key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "revert edit")),
		confirm:  key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "confirm")),
		undo:     key.NewBinding(key.WithKeys("ctrl+z"), key.WithHelp("ctrl+z", "undo")),
		redo:     key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "redo")),
		maskNext: key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n/p", "mask")),
		maskPrev: key.NewBinding(key.WithKeys("ctrl+p")),
		applyAll: key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "apply all")),
		applyOne: key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "apply one")),
		clear:    key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear")),
		remove:   key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "remove field")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.add, k.playlist, k.filter, k.sort, k.refresh, k.quit},
		{k.enter, k.up, k.down, k.confirm, k.back},
		{k.maskNext, k.applyAll, k.applyOne, k.clear, k.remove, k.revert, k.undo, k.redo},
	}
}

func (k keyMap) catalogHelp() []key.Binding {
	return []key.Binding{k.add, k.playlist, k.filter, k.sort, k.refresh, k.quit}
}

func (k keyMap) formHelp() []key.Binding {
	return []key.Binding{k.confirm, k.back, k.maskNext, k.applyAll, k.applyOne, k.clear, k.revert, k.undo, k.redo}
}

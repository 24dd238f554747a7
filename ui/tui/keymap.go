// Copyright (c) 2026 Keymaster Team
// srvinv - server inventory tracking
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap lists the browser's key bindings.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextStatus key.Binding
	PrevStatus key.Binding
	Search     key.Binding
	Details    key.Binding
	Reload     key.Binding
	Quit       key.Binding
}

func (km KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.Up, km.Down, km.NextStatus, km.Search, km.Details, km.Quit}
}

func (km KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{km.Up, km.Down, km.Details},
		{km.NextStatus, km.PrevStatus, km.Search},
		{km.Reload, km.Quit},
	}
}

var _ help.KeyMap = KeyMap{}

// DefaultKeyMap is the browser's key layout.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("↓/j", "down"),
	),
	NextStatus: key.NewBinding(
		key.WithKeys("s", "tab"),
		key.WithHelp("s", "next status"),
	),
	PrevStatus: key.NewBinding(
		key.WithKeys("S", "shift+tab"),
		key.WithHelp("S", "previous status"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Details: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "details"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

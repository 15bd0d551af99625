package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap lists every binding the search screen reacts to. Printable keys
// go to the search input, so bindings stay off letters.
type keyMap struct {
	ViewAll        key.Binding
	BrowseCategory key.Binding
	NextCategory   key.Binding
	PrevCategory   key.Binding
	CycleSort      key.Binding
	HistoryUp      key.Binding
	HistoryDown    key.Binding
	Help           key.Binding
	Quit           key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		ViewAll: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "view all results"),
		),
		BrowseCategory: key.NewBinding(
			key.WithKeys("ctrl+b"),
			key.WithHelp("ctrl+b", "browse category"),
		),
		NextCategory: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next category"),
		),
		PrevCategory: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous category"),
		),
		CycleSort: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "change sort"),
		),
		HistoryUp: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑/ctrl+p", "older search"),
		),
		HistoryDown: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓/ctrl+n", "newer search"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ViewAll, k.NextCategory, k.HistoryUp, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ViewAll, k.BrowseCategory, k.CycleSort},
		{k.NextCategory, k.PrevCategory},
		{k.HistoryUp, k.HistoryDown},
		{k.Help, k.Quit},
	}
}

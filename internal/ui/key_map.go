package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up        key.Binding
	down      key.Binding
	enter     key.Binding
	back      key.Binding
	search    key.Binding
	nextPage  key.Binding
	prevPage  key.Binding
	favorite  key.Binding
	favorites key.Binding
	sort      key.Binding
	filter    key.Binding
	clear     key.Binding
	account   key.Binding
	register  key.Binding
	quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		nextPage:  key.NewBinding(key.WithKeys("n", "right"), key.WithHelp("n", "next page")),
		prevPage:  key.NewBinding(key.WithKeys("p", "left"), key.WithHelp("p", "prev page")),
		favorite:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "toggle favorite")),
		favorites: key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "favorites")),
		sort:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "cycle sort")),
		filter:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "year filter")),
		clear:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear filters")),
		account:   key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "login/logout")),
		register:  key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "register")),
		quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.search, k.favorite, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter, k.back},
		{k.search, k.nextPage, k.prevPage},
		{k.sort, k.filter, k.clear},
		{k.favorite, k.favorites, k.account, k.register},
		{k.quit},
	}
}

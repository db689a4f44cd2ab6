package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the built-in Normal mode bindings.
type keyMap struct {
	Quit      key.Binding
	Up        key.Binding
	Down      key.Binding
	Home      key.Binding
	End       key.Binding
	Sort      key.Binding
	Show      key.Binding
	Filter    key.Binding
	Search    key.Binding
	AddTag    key.Binding
	RemoveTag key.Binding
	Actions   key.Binding
	Copy      key.Binding
	LogUp     key.Binding
	LogDown   key.Binding
	ClearLog  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Up:        key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:      key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		Home:      key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		End:       key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		Sort:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		Show:      key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "show")),
		Filter:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
		Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		AddTag:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "tag")),
		RemoveTag: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "untag")),
		Actions:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "actions")),
		Copy:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy name")),
		LogUp:     key.NewBinding(key.WithKeys("K", "pgup"), key.WithHelp("K", "log up")),
		LogDown:   key.NewBinding(key.WithKeys("J", "pgdown"), key.WithHelp("J", "log down")),
		ClearLog:  key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear log")),
	}
}

// ShortHelp lists the bindings shown in the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Down, k.Up, k.Sort, k.Show, k.Filter, k.Search, k.AddTag, k.RemoveTag, k.Actions, k.Copy}
}

package ui

import (
	uistate "github.com/atomicstack/pkgsorter/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

// searchModal live-edits the session search text.
type searchModal struct {
	input uistate.TextInput
}

func (m *Model) enterSearching() {
	if m.searchModal == nil {
		return
	}
	text := m.session.Search
	m.searchModal.input.Set(text, len([]rune(text)))
	m.setMode(ModeSearching)
}

func (s *searchModal) handleKey(m *Model, msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		s.input.Set("", 0)
		m.session.Search = ""
		m.exitToNormal()
		return nil
	case "enter":
		m.exitToNormal()
		return nil
	}
	if editText("search", &s.input, msg).changed {
		m.session.Search = s.input.Value
		m.recompute()
	}
	return nil
}

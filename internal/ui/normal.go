package ui

import (
	"fmt"

	"github.com/atomicstack/pkgsorter/internal/actions"
	"github.com/atomicstack/pkgsorter/internal/logging/events"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const logScrollStep = 1

func (m *Model) handleNormalKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Quit) {
		return tea.Quit
	}
	if r, ok := hotkeyRune(msg); ok {
		if action, found := actions.FindHotkey(m.actions, r); found {
			return m.runAction(action)
		}
	}
	n := len(m.store.Visible())
	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveList(m.list.Up(n))
	case key.Matches(msg, m.keys.Down):
		m.moveList(m.list.Down(n))
	case key.Matches(msg, m.keys.Home):
		m.moveList(m.list.Home(n))
	case key.Matches(msg, m.keys.End):
		m.moveList(m.list.End(n))
	case key.Matches(msg, m.keys.LogUp):
		m.session.Log.ScrollUp(logScrollStep)
	case key.Matches(msg, m.keys.LogDown):
		m.session.Log.ScrollDown(logScrollStep)
	case key.Matches(msg, m.keys.ClearLog):
		m.session.Log.Clear()
	case key.Matches(msg, m.keys.Sort):
		m.enterSorting()
	case key.Matches(msg, m.keys.Show):
		m.enterShowing()
	case key.Matches(msg, m.keys.Filter):
		m.enterFiltering()
	case key.Matches(msg, m.keys.Search):
		m.enterSearching()
	case key.Matches(msg, m.keys.AddTag):
		m.enterTagging(false)
	case key.Matches(msg, m.keys.RemoveTag):
		m.enterTagging(true)
	case key.Matches(msg, m.keys.Actions):
		m.enterAction()
	case key.Matches(msg, m.keys.Copy):
		m.copySelected()
	}
	return nil
}

// hotkeyRune returns the single printable rune of a plain key press.
func hotkeyRune(msg tea.KeyMsg) (rune, bool) {
	if msg.Type != tea.KeyRunes || msg.Alt || len(msg.Runes) != 1 {
		return 0, false
	}
	return msg.Runes[0], true
}

func (m *Model) moveList(changed bool) {
	if !changed {
		return
	}
	m.syncLayout()
	events.UI.Cursor("packages", m.list.Index)
}

func (m *Model) copySelected() {
	pkg, ok := m.Selected()
	if !ok {
		m.logError("No package selected")
		return
	}
	if err := m.clipboard(pkg.Name); err != nil {
		m.logError(fmt.Sprintf("Clipboard: %v", err))
		return
	}
	m.logInfo(fmt.Sprintf("Copied '%s' to clipboard", pkg.Name))
}

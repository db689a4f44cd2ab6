package ui

import (
	"github.com/atomicstack/pkgsorter/internal/logging/events"
	"github.com/atomicstack/pkgsorter/internal/pipeline"
	uistate "github.com/atomicstack/pkgsorter/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

// handleKeyMsg routes a key to the handler of the active mode. Modal state
// is detached from the Model while its handler runs so the handler can
// freely switch modes without aliasing itself.
func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch m.mode {
	case ModeTagging, ModeUntagging:
		return detach(&m.tagModal, func(t *tagModal) tea.Cmd { return t.handleKey(m, keyMsg) })
	case ModeSorting:
		return detach(&m.sortModal, func(c *choiceModal) tea.Cmd { return c.handleKey(m, keyMsg) })
	case ModeShowing:
		return detach(&m.showModal, func(c *choiceModal) tea.Cmd { return c.handleKey(m, keyMsg) })
	case ModeFiltering:
		return detach(&m.filterModal, func(f *filterModal) tea.Cmd { return f.handleKey(m, keyMsg) })
	case ModeSearching:
		return detach(&m.searchModal, func(s *searchModal) tea.Cmd { return s.handleKey(m, keyMsg) })
	case ModeAction:
		return detach(&m.actionModal, func(a *actionModal) tea.Cmd { return a.handleKey(m, keyMsg) })
	default:
		return m.handleNormalKey(keyMsg)
	}
}

func detach[T any](slot **T, fn func(*T) tea.Cmd) tea.Cmd {
	modal := *slot
	if modal == nil {
		return nil
	}
	*slot = nil
	cmd := fn(modal)
	*slot = modal
	return cmd
}

func (m *Model) setMode(mode Mode) {
	if m.mode == mode {
		return
	}
	events.UI.Mode(m.mode.String(), mode.String())
	m.mode = mode
}

// exitToNormal returns to Normal, re-running the pipeline when the mode
// being left may have changed its inputs.
func (m *Model) exitToNormal() {
	from := m.mode
	m.setMode(ModeNormal)
	if from != ModeAction && from != ModeNormal {
		m.recompute()
	}
}

// recompute derives the visible list from the catalog and the session.
// The selection moves to the first row.
func (m *Model) recompute() {
	visible := pipeline.Compute(pipeline.Input{
		Installed:   m.store.Installed(),
		Available:   m.store.Available(),
		TagFilters:  m.session.TagFilters,
		RepoFilters: m.session.RepoFilters,
		ShowMode:    m.session.ShowMode,
		Orphans:     m.store.Orphans(),
		Search:      m.session.Search,
		SortKey:     m.session.SortKey,
	})
	m.store.SetVisible(visible)
	m.list.Reset(len(visible))
	m.syncLayout()
	events.UI.Recompute(len(visible), m.session.ShowMode.String(), m.session.SortKey.String(), m.session.Search)
}

func traceMessage(sev uistate.Severity, text string) {
	events.UI.Message(sev.String(), text)
}

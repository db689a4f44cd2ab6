package ui

import (
	"fmt"
	"time"

	"github.com/atomicstack/pkgsorter/internal/catalog"
	"github.com/atomicstack/pkgsorter/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

const loadPollInterval = 100 * time.Millisecond

type loadTickMsg struct{}

func loadTick() tea.Cmd {
	return tea.Tick(loadPollInterval, func(time.Time) tea.Msg {
		return loadTickMsg{}
	})
}

// handleLoadTickMsg polls the background load without blocking and keeps
// ticking until the bundle has been applied.
func (m *Model) handleLoadTickMsg(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(loadTickMsg); !ok || !m.Loading() {
		return nil
	}
	bundle, ok := m.load.Poll()
	if !ok {
		return loadTick()
	}
	m.applyBundle(bundle)
	return nil
}

// applyBundle replaces the catalog data, refreshes open modals and reruns
// the pipeline.
func (m *Model) applyBundle(b catalog.Bundle) {
	res := m.dispatcher.Handle(b)
	for _, err := range res.Errs {
		if err != nil {
			m.logError(err.Error())
		}
	}
	if m.mode == ModeFiltering && m.filterModal != nil {
		m.filterModal.reseed(m.store.Tags(), m.store.Repos())
	}
	m.recompute()
	events.Load.Applied(len(m.store.Visible()))
	m.logInfo(fmt.Sprintf("Loaded %d installed and %d available packages", len(b.Installed), len(b.Available)))
}

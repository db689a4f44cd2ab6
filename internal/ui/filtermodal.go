package ui

import (
	"github.com/atomicstack/pkgsorter/internal/logging/events"
	"github.com/atomicstack/pkgsorter/internal/pipeline"
	uistate "github.com/atomicstack/pkgsorter/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

type filterSection int

const (
	sectionSearch filterSection = iota
	sectionTags
	sectionRepos
)

func (s filterSection) String() string {
	switch s {
	case sectionTags:
		return "tags"
	case sectionRepos:
		return "repos"
	default:
		return "search"
	}
}

// filterModal edits the tag and repository filter maps. One search box
// narrows both lists.
type filterModal struct {
	input   uistate.TextInput
	tags    *uistate.Picker
	repos   *uistate.Picker
	section filterSection
}

func newFilterModal() *filterModal {
	return &filterModal{
		tags:  uistate.NewPicker("filter-tags"),
		repos: uistate.NewPicker("filter-repos"),
	}
}

func (f *filterModal) open(tags, repos []string) {
	f.input.Set("", 0)
	f.tags.Reset(stringOptions(tags))
	f.repos.Reset(stringOptions(repos))
	f.section = sectionSearch
}

// reseed replaces the option lists while keeping the search text.
func (f *filterModal) reseed(tags, repos []string) {
	f.tags.Reset(stringOptions(tags))
	f.repos.Reset(stringOptions(repos))
	f.tags.SetQuery(f.input.Value)
	f.repos.SetQuery(f.input.Value)
}

func (m *Model) enterFiltering() {
	if m.filterModal == nil {
		return
	}
	m.filterModal.open(m.store.Tags(), m.store.Repos())
	m.setMode(ModeFiltering)
}

func (f *filterModal) handleKey(m *Model, msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		f.input.Set("", 0)
		m.exitToNormal()
		return nil
	case "tab":
		f.section = (f.section + 1) % 3
		return nil
	case "ctrl+r":
		m.session.TagFilters.Reset()
		m.session.RepoFilters.Reset()
		events.Filter.Reset()
		m.logInfo("Filters reset")
		m.recompute()
		return nil
	}
	if f.section == sectionSearch {
		if msg.String() == "enter" {
			f.section = sectionTags
			return nil
		}
		if editText("filter", &f.input, msg).changed {
			f.tags.SetQuery(f.input.Value)
			f.repos.SetQuery(f.input.Value)
		}
		return nil
	}
	list, filters := f.tags, m.session.TagFilters
	if f.section == sectionRepos {
		list, filters = f.repos, m.session.RepoFilters
	}
	switch msg.String() {
	case "up", "k":
		list.MoveUp()
	case "down", "j":
		list.MoveDown()
	case "enter", "right", "l":
		f.toggle(m, list, filters, true)
	case "left", "h":
		f.toggle(m, list, filters, false)
	case "q":
		f.input.Set("", 0)
		m.exitToNormal()
	}
	return nil
}

func (f *filterModal) toggle(m *Model, list *uistate.Picker, filters pipeline.Filters, forward bool) {
	opt, ok := list.Selected()
	if !ok {
		return
	}
	state := filters.Cycle(opt.ID, forward)
	events.Filter.Toggle(f.section.String(), opt.ID, state.String())
	m.recompute()
}

package ui

import (
	"fmt"

	"github.com/atomicstack/pkgsorter/internal/actions"
	"github.com/atomicstack/pkgsorter/internal/catalog"
	"github.com/atomicstack/pkgsorter/internal/logging/events"
	"github.com/atomicstack/pkgsorter/internal/pipeline"
	"github.com/atomicstack/pkgsorter/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
)

// tagResultMsg carries the outcome of a tag store mutation back to the
// event loop.
type tagResultMsg struct {
	pkg     string
	tag     string
	remove  bool
	message string
	err     error
	tags    []string
	listErr error
}

func (m *Model) mutateTag(pkg, tag string, remove bool) tea.Cmd {
	store := m.tagStore
	if store == nil {
		m.logError("Tag store unavailable")
		return nil
	}
	id := "tag.add"
	if remove {
		id = "tag.remove"
	}
	return m.bus.Execute(command.Request{
		ID:    id,
		Label: fmt.Sprintf("%s:%s", pkg, tag),
		Handler: func() tea.Msg {
			res := tagResultMsg{pkg: pkg, tag: tag, remove: remove}
			if remove {
				res.message, res.err = store.Remove(pkg, tag)
			} else {
				res.message, res.err = store.Add(pkg, tag)
			}
			if res.err != nil {
				return res
			}
			res.tags, res.listErr = store.All()
			return res
		},
	})
}

func (m *Model) handleTagResultMsg(msg tea.Msg) tea.Cmd {
	res, ok := msg.(tagResultMsg)
	if !ok {
		return nil
	}
	if res.err != nil {
		events.Tags.Failed(res.pkg, res.tag, res.err)
		m.logError(res.err.Error())
		return nil
	}
	m.store.UpdatePackage(res.pkg, func(p *catalog.Package) {
		if res.remove {
			p.RemoveTag(res.tag)
			return
		}
		p.AddTag(res.tag)
	})
	if res.listErr != nil {
		events.Tags.Failed(res.pkg, res.tag, res.listErr)
		m.logWarn(fmt.Sprintf("Could not refresh tag list: %v", res.listErr))
	} else {
		m.store.SetTags(append(res.tags, pipeline.DistinctTags(m.store.Installed())...))
	}
	m.logInfo(res.message)
	m.recompute()
	return nil
}

// runAction invokes an action. Local actions open the tag modal; command
// actions that pass their rules end the program with the command pending.
func (m *Model) runAction(a actions.Action) tea.Cmd {
	if a.Kind == actions.KindLocal {
		events.Action.Local(a.Name)
		switch a.Name {
		case actions.AddTag:
			m.enterTagging(false)
		case actions.RemoveTag:
			m.enterTagging(true)
		}
		return nil
	}
	ctx := actions.Context{ShowMode: m.session.ShowMode}
	if pkg, ok := m.Selected(); ok {
		ctx.Package = pkg.Name
	}
	out := actions.Dispatch(a, ctx)
	if out.Status == actions.Rejected {
		events.Action.Rejected(a.Name, out.Message)
		switch out.Severity {
		case actions.SeverityError:
			m.logError(out.Message)
		default:
			m.logWarn(out.Message)
		}
		return nil
	}
	events.Action.Resolved(a.Name, out.Command)
	m.logInfo(out.Message)
	m.pending = out.Command
	return tea.Quit
}

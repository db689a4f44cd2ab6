package ui

import (
	"strings"
	"testing"

	"github.com/atomicstack/pkgsorter/internal/actions"
	"github.com/atomicstack/pkgsorter/internal/backend"
	"github.com/atomicstack/pkgsorter/internal/catalog"
	"github.com/atomicstack/pkgsorter/internal/testutil"
	uistate "github.com/atomicstack/pkgsorter/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

// newLoadedHarness builds a model over the fixture catalog and applies the
// load. Unset options get fixture defaults.
func newLoadedHarness(t *testing.T, opts Options) *Harness {
	t.Helper()
	if opts.Load == nil {
		opts.Load = backend.Completed(testutil.Bundle())
	}
	if opts.Tags == nil {
		opts.Tags = testutil.TagStore(t)
	}
	if opts.Actions == nil {
		opts.Actions = actions.WithLocal(actions.Defaults())
	}
	if opts.Clipboard == nil {
		opts.Clipboard = func(string) error { return nil }
	}
	h := NewHarness(NewModel(opts))
	h.Send(loadTickMsg{})
	if h.Model().Loading() {
		t.Fatalf("expected load to be applied")
	}
	return h
}

func emptyLoad() *backend.Load {
	return backend.Completed(catalog.Bundle{})
}

func visibleNames(m *Model) string {
	names := make([]string, 0, len(m.Visible()))
	for _, p := range m.Visible() {
		names = append(names, p.Name)
	}
	return strings.Join(names, ",")
}

func messagesOf(m *Model, sev uistate.Severity) []string {
	var out []string
	for _, msg := range m.Session().Log.Messages() {
		if msg.Severity == sev {
			out = append(out, msg.Text)
		}
	}
	return out
}

func lastMessage(t *testing.T, m *Model) uistate.Message {
	t.Helper()
	msg, ok := m.Session().Log.Last()
	if !ok {
		t.Fatalf("expected a log message")
	}
	return msg
}

func selectedName(m *Model) string {
	pkg, ok := m.Selected()
	if !ok {
		return ""
	}
	return pkg.Name
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

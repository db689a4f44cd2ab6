package ui

import (
	"reflect"
	"strings"
	"testing"

	"github.com/atomicstack/pkgsorter/internal/catalog"
	"github.com/atomicstack/pkgsorter/internal/pipeline"
	"github.com/atomicstack/pkgsorter/internal/testutil"
	uistate "github.com/atomicstack/pkgsorter/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

func TestSortModalStartsOnActiveValue(t *testing.T) {
	session := NewSession()
	session.SortKey = catalog.SortPopularity
	h := newLoadedHarness(t, Options{Session: session})
	h.Send(keyRune('s'))
	opt, ok := h.Model().sortModal.picker.Selected()
	if !ok || opt.ID != "Popularity" {
		t.Fatalf("expected cursor on active sort key, got %+v", opt)
	}
}

func TestSortModalCommit(t *testing.T) {
	h := newLoadedHarness(t, Options{})
	m := h.Model()
	h.Send(keyRune('s'))
	h.Type("size")
	h.Key(tea.KeyEnter)

	if m.Mode() != ModeNormal {
		t.Fatalf("expected Normal after commit, got %s", m.Mode())
	}
	if m.Session().SortKey != catalog.SortSize {
		t.Fatalf("expected size sort, got %s", m.Session().SortKey)
	}
	if selectedName(m) != "glibc" {
		t.Fatalf("expected largest package first, got %q", selectedName(m))
	}
}

func TestShowModalDependencies(t *testing.T) {
	h := newLoadedHarness(t, Options{})
	m := h.Model()
	h.Send(keyRune('v'))
	if m.Mode() != ModeShowing {
		t.Fatalf("expected Showing, got %s", m.Mode())
	}
	h.Type("dep")
	h.Key(tea.KeyEnter)
	if m.Session().ShowMode != catalog.ShowDependencies {
		t.Fatalf("expected Dependencies, got %s", m.Session().ShowMode)
	}
	if got := visibleNames(m); got != "acl,glibc,lib32-glibc,python-six" {
		t.Fatalf("unexpected dependencies %s", got)
	}
}

func TestModalEscapeKeepsState(t *testing.T) {
	h := newLoadedHarness(t, Options{})
	m := h.Model()
	h.Send(keyRune('v'))
	h.Type("orph")
	h.Key(tea.KeyEsc)
	if m.Mode() != ModeNormal {
		t.Fatalf("expected Normal after esc, got %s", m.Mode())
	}
	if m.Session().ShowMode != catalog.ShowAllInstalled {
		t.Fatalf("esc must not change the show mode")
	}
	if m.showModal.picker.Input.Value != "" || len(m.showModal.picker.Filtered) != 5 {
		t.Fatalf("esc must clear the input and restore the list")
	}
}

func TestPickerListFocusQuits(t *testing.T) {
	h := newLoadedHarness(t, Options{})
	h.Send(keyRune('s'))
	h.Key(tea.KeyTab)
	if h.Model().sortModal.picker.Focus != uistate.FocusList {
		t.Fatalf("expected list focus after tab")
	}
	h.Send(keyRune('j'))
	h.Send(keyRune('q'))
	if h.Model().Mode() != ModeNormal || h.Quit() {
		t.Fatalf("q in list focus should close the modal only")
	}
}

func TestFilterModalCyclesAndResets(t *testing.T) {
	h := newLoadedHarness(t, Options{})
	m := h.Model()
	h.Send(keyRune('f'))
	if m.Mode() != ModeFiltering {
		t.Fatalf("expected Filtering, got %s", m.Mode())
	}
	h.Type("edit")
	tags := m.filterModal.tags.Filtered
	if len(tags) != 1 || tags[0].ID != "editor" {
		t.Fatalf("expected search to narrow tags to editor, got %+v", tags)
	}
	h.Key(tea.KeyTab)
	h.Key(tea.KeyEnter)
	if m.Session().TagFilters.Get("editor") != pipeline.Include {
		t.Fatalf("expected editor included")
	}
	if got := visibleNames(m); got != "neovim,vim" {
		t.Fatalf("expected editors only, got %s", got)
	}
	h.Key(tea.KeyRight)
	if m.Session().TagFilters.Get("editor") != pipeline.Exclude {
		t.Fatalf("expected editor excluded")
	}
	if got := visibleNames(m); got != "acl,glibc,lib32-glibc,python-six,yay" {
		t.Fatalf("expected editors hidden, got %s", got)
	}
	h.Key(tea.KeyLeft)
	if m.Session().TagFilters.Get("editor") != pipeline.Include {
		t.Fatalf("expected left to step back to include")
	}
	h.Key(tea.KeyCtrlR)
	if len(m.Session().TagFilters) != 0 {
		t.Fatalf("expected ctrl+r to reset filters")
	}
	if len(m.Visible()) != 7 {
		t.Fatalf("expected full list after reset, got %d", len(m.Visible()))
	}
	h.Key(tea.KeyEsc)
	if m.Mode() != ModeNormal {
		t.Fatalf("expected Normal after esc")
	}
}

func TestFilterModalRepositories(t *testing.T) {
	h := newLoadedHarness(t, Options{})
	m := h.Model()
	h.Send(keyRune('f'))
	h.Key(tea.KeyTab)
	h.Key(tea.KeyTab)
	h.Send(keyRune('j'))
	h.Key(tea.KeyEnter)
	if m.Session().RepoFilters.Get("Core") != pipeline.Include {
		t.Fatalf("expected Core included, got %v", m.Session().RepoFilters)
	}
	if got := visibleNames(m); got != "acl,glibc" {
		t.Fatalf("expected core packages, got %s", got)
	}
	h.Key(tea.KeyTab)
	if m.filterModal.section != sectionSearch {
		t.Fatalf("expected tab to wrap to the search box")
	}
}

func TestSearchLiveFilters(t *testing.T) {
	h := newLoadedHarness(t, Options{})
	m := h.Model()
	h.Send(keyRune('/'))
	h.Type("vim")
	if m.Mode() != ModeSearching {
		t.Fatalf("expected Searching, got %s", m.Mode())
	}
	if got := visibleNames(m); got != "neovim,vim" {
		t.Fatalf("expected live results, got %s", got)
	}
	h.Key(tea.KeyBackspace)
	if m.Session().Search != "vi" {
		t.Fatalf("expected backspace to edit the search, got %q", m.Session().Search)
	}
	h.Key(tea.KeyEsc)
	if m.Session().Search != "" || len(m.Visible()) != 7 {
		t.Fatalf("expected esc to clear the search")
	}
}

func TestTagModalAddsTag(t *testing.T) {
	h := newLoadedHarness(t, Options{})
	m := h.Model()
	h.Send(keyRune('a'))
	if m.Mode() != ModeTagging {
		t.Fatalf("expected Tagging, got %s", m.Mode())
	}
	h.Type(" base ")
	h.Key(tea.KeyEnter)

	if m.Mode() != ModeNormal {
		t.Fatalf("expected Normal after commit, got %s", m.Mode())
	}
	pkg, _ := m.store.FindInstalled("acl")
	if !reflect.DeepEqual(pkg.Tags, []string{"base"}) {
		t.Fatalf("expected acl tagged base, got %v", pkg.Tags)
	}
	if msg := lastMessage(t, m); msg.Text != "Added tag 'base' to 'acl'" {
		t.Fatalf("unexpected message %q", msg.Text)
	}
	found := false
	for _, tag := range m.store.Tags() {
		if tag == "base" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected global tags to include base, got %v", m.store.Tags())
	}
}

func TestUntagFromListSelection(t *testing.T) {
	h := newLoadedHarness(t, Options{})
	m := h.Model()
	h.Send(keyRune('G'))
	h.Send(keyRune('k'))
	if selectedName(m) != "vim" {
		t.Fatalf("expected vim selected, got %q", selectedName(m))
	}
	h.Send(keyRune('d'))
	if m.Mode() != ModeUntagging {
		t.Fatalf("expected Untagging, got %s", m.Mode())
	}
	h.Key(tea.KeyTab)
	h.Send(keyRune('j'))
	if m.tagModal.picker.Input.Value != "editor" {
		t.Fatalf("expected list move to copy option, got %q", m.tagModal.picker.Input.Value)
	}
	h.Key(tea.KeyEnter)
	pkg, _ := m.store.FindInstalled("vim")
	if !reflect.DeepEqual(pkg.Tags, []string{"cli"}) {
		t.Fatalf("expected editor removed, got %v", pkg.Tags)
	}
}

func TestUntagWithoutTagsWarns(t *testing.T) {
	h := newLoadedHarness(t, Options{})
	m := h.Model()
	h.Send(keyRune('d'))
	if m.Mode() != ModeNormal {
		t.Fatalf("expected to stay in Normal, got %s", m.Mode())
	}
	msg := lastMessage(t, m)
	if msg.Severity != uistate.Warning || msg.Text != "'acl' has no tags" {
		t.Fatalf("unexpected message %s %q", msg.Severity, msg.Text)
	}
}

func TestTaggingWithoutSelectionLogsError(t *testing.T) {
	h := newLoadedHarness(t, Options{Load: emptyLoad()})
	m := h.Model()
	h.Send(keyRune('a'))
	if m.Mode() != ModeNormal {
		t.Fatalf("expected to stay in Normal, got %s", m.Mode())
	}
	if errs := messagesOf(m, uistate.Error); len(errs) != 1 || errs[0] != "No package selected" {
		t.Fatalf("unexpected errors %v", errs)
	}
}

func TestEmptyTagWarnsAndReturnsToNormal(t *testing.T) {
	h := newLoadedHarness(t, Options{})
	m := h.Model()
	h.Send(keyRune('a'))
	h.Type("   ")
	h.Key(tea.KeyEnter)
	if m.Mode() != ModeNormal {
		t.Fatalf("expected Normal after empty tag, got %s", m.Mode())
	}
	msg := lastMessage(t, m)
	if msg.Severity != uistate.Warning || msg.Text != "Tag name is empty" {
		t.Fatalf("expected empty tag warning, got %s %q", msg.Severity, msg.Text)
	}
	if m.tagModal.picker.Input.Value != "" {
		t.Fatalf("expected tag input cleared, got %q", m.tagModal.picker.Input.Value)
	}
	if pkg, _ := m.store.FindInstalled("acl"); len(pkg.Tags) != 0 {
		t.Fatalf("expected acl untouched, got %v", pkg.Tags)
	}
}

func TestTagStoreFailureKeepsState(t *testing.T) {
	h := newLoadedHarness(t, Options{Tags: testutil.FailingTagStore{}})
	m := h.Model()
	h.Send(keyRune('a'))
	h.Type("base")
	h.Key(tea.KeyEnter)
	msg := lastMessage(t, m)
	if msg.Severity != uistate.Error || msg.Text != testutil.ErrStoreDown.Error() {
		t.Fatalf("unexpected message %s %q", msg.Severity, msg.Text)
	}
	pkg, _ := m.store.FindInstalled("acl")
	if len(pkg.Tags) != 0 {
		t.Fatalf("failed mutation must not change tags, got %v", pkg.Tags)
	}
}

func TestActionModalSingleMatchInvokes(t *testing.T) {
	h := newLoadedHarness(t, Options{})
	h.Send(keyRune('?'))
	if h.Model().Mode() != ModeAction {
		t.Fatalf("expected Action mode, got %s", h.Model().Mode())
	}
	h.Type("orphan")
	h.Key(tea.KeyEnter)
	argv, ok := h.Model().PendingCommand()
	if !ok || !strings.Contains(strings.Join(argv, " "), "pacman -Qdtq") {
		t.Fatalf("expected orphan removal pending, got %v", argv)
	}
	if !h.Quit() {
		t.Fatalf("expected program to quit")
	}
}

func TestActionModalLocalOpensTagModal(t *testing.T) {
	h := newLoadedHarness(t, Options{})
	h.Send(keyRune('?'))
	h.Type("add tag")
	h.Key(tea.KeyEnter)
	m := h.Model()
	if m.Mode() != ModeTagging {
		t.Fatalf("expected Tagging, got %s", m.Mode())
	}
	if m.actionModal == nil || m.tagModal == nil {
		t.Fatalf("modals must be reattached after their handlers")
	}
	if m.tagModal.pkg != "acl" {
		t.Fatalf("expected tag modal for acl, got %q", m.tagModal.pkg)
	}
}

func TestActionModalEnterWithManyMatchesFocusesList(t *testing.T) {
	h := newLoadedHarness(t, Options{})
	h.Send(keyRune('?'))
	h.Key(tea.KeyEnter)
	m := h.Model()
	if m.Mode() != ModeAction || m.actionModal.picker.Focus != uistate.FocusList {
		t.Fatalf("expected list focus in the action modal")
	}
	h.Key(tea.KeyEnter)
	argv, ok := m.PendingCommand()
	if !ok || argv[len(argv)-1] != "-Syu" {
		t.Fatalf("expected first action to run, got %v", argv)
	}
}

func TestActionModalDoesNotMatchHiddenIndices(t *testing.T) {
	h := newLoadedHarness(t, Options{})
	m := h.Model()
	h.Send(keyRune('?'))
	h.Type("3")
	if n := len(m.actionModal.picker.Filtered); n != 0 {
		t.Fatalf("expected no actions to match %q, got %d", "3", n)
	}
	h.Key(tea.KeyEnter)
	if argv, ok := m.PendingCommand(); ok {
		t.Fatalf("expected no pending command, got %v", argv)
	}
	if h.Quit() {
		t.Fatalf("expected program to keep running")
	}
	if m.Mode() != ModeNormal {
		t.Fatalf("expected Normal after an empty pick, got %s", m.Mode())
	}
	msg := lastMessage(t, m)
	if msg.Severity != uistate.Warning || msg.Text != `No option matches "3"` {
		t.Fatalf("expected no-match warning, got %s %q", msg.Severity, msg.Text)
	}
}

func TestSortModalWithoutMatchReturnsToNormal(t *testing.T) {
	h := newLoadedHarness(t, Options{})
	m := h.Model()
	before := m.Session().Log.Len()
	h.Send(keyRune('s'))
	h.Type("zzz")
	h.Key(tea.KeyEnter)
	if m.Mode() != ModeNormal {
		t.Fatalf("expected Normal, got %s", m.Mode())
	}
	if m.Session().SortKey != catalog.SortName {
		t.Fatalf("expected sort key unchanged, got %s", m.Session().SortKey)
	}
	if got := m.Session().Log.Len() - before; got != 1 {
		t.Fatalf("expected one log message, got %d", got)
	}
	if msg := lastMessage(t, m); msg.Severity != uistate.Warning || msg.Text != `No option matches "zzz"` {
		t.Fatalf("expected no-match warning, got %s %q", msg.Severity, msg.Text)
	}
}

func TestShowModalWithoutMatchReturnsToNormal(t *testing.T) {
	h := newLoadedHarness(t, Options{})
	m := h.Model()
	h.Send(keyRune('v'))
	h.Type("zzz")
	h.Key(tea.KeyEnter)
	if m.Mode() != ModeNormal || m.Session().ShowMode != catalog.ShowAllInstalled {
		t.Fatalf("expected Normal with show mode unchanged, got %s %s", m.Mode(), m.Session().ShowMode)
	}
	if msg := lastMessage(t, m); msg.Severity != uistate.Warning {
		t.Fatalf("expected warning, got %s %q", msg.Severity, msg.Text)
	}
}

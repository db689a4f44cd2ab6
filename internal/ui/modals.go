package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atomicstack/pkgsorter/internal/catalog"
	uistate "github.com/atomicstack/pkgsorter/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

type pickerIntent int

const (
	intentNone pickerIntent = iota
	intentHandled
	intentMoved
	intentCancel
	intentCommit
)

// pickerKey applies the keys shared by every list modal and reports what
// the modal still has to act on.
func pickerKey(p *uistate.Picker, msg tea.KeyMsg) pickerIntent {
	switch msg.String() {
	case "esc":
		return intentCancel
	case "enter":
		return intentCommit
	case "tab":
		p.ToggleFocus()
		return intentHandled
	}
	if p.Focus == uistate.FocusList {
		switch msg.String() {
		case "up", "k":
			if p.MoveUp() {
				return intentMoved
			}
			return intentHandled
		case "down", "j":
			if p.MoveDown() {
				return intentMoved
			}
			return intentHandled
		case "q":
			return intentCancel
		}
		return intentNone
	}
	handled := p.Edit(func(in *uistate.TextInput) bool {
		return editText(p.ID, in, msg).handled
	})
	if handled {
		return intentHandled
	}
	return intentNone
}

func cancelPicker(m *Model, p *uistate.Picker) {
	p.Reset(p.Options)
	m.exitToNormal()
}

// rejectEmptyPick handles Enter with nothing to pick.
func rejectEmptyPick(m *Model, p *uistate.Picker) {
	if p.Input.Value != "" {
		m.logWarn(fmt.Sprintf("No option matches %q", p.Input.Value))
	} else {
		m.logWarn("No option selected")
	}
	cancelPicker(m, p)
}

func stringOptions(values []string) []uistate.Option {
	opts := make([]uistate.Option, len(values))
	for i, v := range values {
		opts[i] = uistate.Option{ID: v, Label: v}
	}
	return opts
}

// tagModal edits the tag set of one package.
type tagModal struct {
	picker *uistate.Picker
	pkg    string
	remove bool
}

func newTagModal() *tagModal {
	return &tagModal{picker: uistate.NewPicker("tags")}
}

func (m *Model) enterTagging(remove bool) {
	if m.tagModal == nil {
		return
	}
	pkg, ok := m.Selected()
	if !ok {
		m.logError("No package selected")
		return
	}
	source := m.store.Tags()
	mode := ModeTagging
	if remove {
		if len(pkg.Tags) == 0 {
			m.logWarn(fmt.Sprintf("'%s' has no tags", pkg.Name))
			return
		}
		source = pkg.Tags
		mode = ModeUntagging
	}
	m.tagModal.pkg = pkg.Name
	m.tagModal.remove = remove
	m.tagModal.picker.Reset(stringOptions(source))
	m.setMode(mode)
}

func (t *tagModal) handleKey(m *Model, msg tea.KeyMsg) tea.Cmd {
	switch pickerKey(t.picker, msg) {
	case intentCancel:
		cancelPicker(m, t.picker)
	case intentMoved:
		if opt, ok := t.picker.Selected(); ok {
			t.picker.Input.Set(opt.Label, len([]rune(opt.Label)))
		}
	case intentCommit:
		return t.commit(m)
	}
	return nil
}

func (t *tagModal) commit(m *Model) tea.Cmd {
	tag := strings.TrimSpace(t.picker.Input.Value)
	if tag == "" && t.picker.Focus == uistate.FocusList {
		if opt, ok := t.picker.Selected(); ok {
			tag = opt.ID
		}
	}
	if tag == "" {
		m.logWarn("Tag name is empty")
		cancelPicker(m, t.picker)
		return nil
	}
	m.exitToNormal()
	return m.mutateTag(t.pkg, tag, t.remove)
}

// choiceModal picks one value of a fixed enumeration.
type choiceModal struct {
	picker *uistate.Picker
	apply  func(m *Model, id string)
}

func newChoiceModal(id string) *choiceModal {
	c := &choiceModal{picker: uistate.NewPicker(id)}
	switch id {
	case "sort":
		c.apply = applySort
	case "show":
		c.apply = applyShow
	}
	return c
}

func (c *choiceModal) open(options []uistate.Option, active string) {
	c.picker.Reset(options)
	c.picker.Select(active)
}

func (m *Model) enterSorting() {
	if m.sortModal == nil {
		return
	}
	keys := catalog.SortKeys()
	opts := make([]uistate.Option, len(keys))
	for i, k := range keys {
		opts[i] = uistate.Option{ID: k.String(), Label: k.String()}
	}
	m.sortModal.open(opts, m.session.SortKey.String())
	m.setMode(ModeSorting)
}

func (m *Model) enterShowing() {
	if m.showModal == nil {
		return
	}
	modes := catalog.ShowModes()
	opts := make([]uistate.Option, len(modes))
	for i, s := range modes {
		opts[i] = uistate.Option{ID: s.String(), Label: s.String()}
	}
	m.showModal.open(opts, m.session.ShowMode.String())
	m.setMode(ModeShowing)
}

func (c *choiceModal) handleKey(m *Model, msg tea.KeyMsg) tea.Cmd {
	switch pickerKey(c.picker, msg) {
	case intentCancel:
		cancelPicker(m, c.picker)
	case intentCommit:
		opt, ok := c.picker.Selected()
		if !ok {
			rejectEmptyPick(m, c.picker)
			return nil
		}
		if c.apply != nil {
			c.apply(m, opt.ID)
		}
		m.exitToNormal()
	}
	return nil
}

func applySort(m *Model, id string) {
	for _, k := range catalog.SortKeys() {
		if k.String() == id {
			m.session.SortKey = k
			m.logInfo(fmt.Sprintf("Sorting by %s", k))
			return
		}
	}
}

func applyShow(m *Model, id string) {
	if mode, ok := catalog.ParseShowMode(id); ok {
		m.session.ShowMode = mode
		m.logInfo(fmt.Sprintf("Showing %s", mode))
	}
}

// actionModal lists every action, local ones included.
type actionModal struct {
	picker *uistate.Picker
}

func newActionModal() *actionModal {
	return &actionModal{picker: uistate.NewPicker("actions")}
}

func (m *Model) enterAction() {
	if m.actionModal == nil {
		return
	}
	opts := make([]uistate.Option, len(m.actions))
	for i, a := range m.actions {
		opts[i] = uistate.Option{ID: strconv.Itoa(i), Label: a.Name, Detail: a.Key.String()}
	}
	m.actionModal.picker.Reset(opts)
	m.setMode(ModeAction)
}

func (a *actionModal) handleKey(m *Model, msg tea.KeyMsg) tea.Cmd {
	switch pickerKey(a.picker, msg) {
	case intentCancel:
		cancelPicker(m, a.picker)
	case intentCommit:
		if a.picker.Focus == uistate.FocusInput {
			switch len(a.picker.Filtered) {
			case 0:
				rejectEmptyPick(m, a.picker)
				return nil
			case 1:
				return a.invoke(m, a.picker.Filtered[0])
			default:
				a.picker.ToggleFocus()
				return nil
			}
		}
		if opt, ok := a.picker.Selected(); ok {
			return a.invoke(m, opt)
		}
		rejectEmptyPick(m, a.picker)
	}
	return nil
}

func (a *actionModal) invoke(m *Model, opt uistate.Option) tea.Cmd {
	idx, err := strconv.Atoi(opt.ID)
	if err != nil || idx < 0 || idx >= len(m.actions) {
		return nil
	}
	m.exitToNormal()
	return m.runAction(m.actions[idx])
}

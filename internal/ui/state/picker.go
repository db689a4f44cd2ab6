package state

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Focus says which half of a picker receives keys.
type Focus int

const (
	FocusInput Focus = iota
	FocusList
)

func (f Focus) String() string {
	if f == FocusList {
		return "list"
	}
	return "input"
}

// Option is one selectable row. Detail is shown next to the label but is
// not matched against.
type Option struct {
	ID     string
	Label  string
	Detail string
}

// Picker is the shared state of every modal: a text input that fuzzy
// filters a list of options, a cursor over the filtered list and a focus
// flag.
type Picker struct {
	ID       string
	Input    TextInput
	Options  []Option
	Filtered []Option
	Cursor   Cursor
	Focus    Focus
}

// NewPicker returns an empty picker.
func NewPicker(id string) *Picker {
	return &Picker{ID: id, Cursor: NewCursor()}
}

// Reset reseeds the options, clears the input and focuses it.
func (p *Picker) Reset(options []Option) {
	p.Options = cloneOptions(options)
	p.Input.Set("", 0)
	p.Focus = FocusInput
	p.refilter()
}

// Edit applies fn to the input and refilters when the text changed.
func (p *Picker) Edit(fn func(*TextInput) bool) bool {
	before := p.Input.Value
	if !fn(&p.Input) {
		return false
	}
	if p.Input.Value != before {
		p.refilter()
	}
	return true
}

// SetQuery replaces the input text, leaving the cursor at its end.
func (p *Picker) SetQuery(query string) {
	p.Edit(func(t *TextInput) bool {
		t.Set(query, len([]rune(query)))
		return true
	})
}

// Selected returns the highlighted option.
func (p *Picker) Selected() (Option, bool) {
	if !p.Cursor.Valid(len(p.Filtered)) {
		return Option{}, false
	}
	return p.Filtered[p.Cursor.Index], true
}

// Select highlights the option with the given ID.
func (p *Picker) Select(id string) bool {
	for i, opt := range p.Filtered {
		if opt.ID == id {
			p.Cursor.Index = i
			return true
		}
	}
	return false
}

// ToggleFocus flips between input and list.
func (p *Picker) ToggleFocus() {
	if p.Focus == FocusInput {
		p.Focus = FocusList
		if !p.Cursor.Valid(len(p.Filtered)) {
			p.Cursor.Reset(len(p.Filtered))
		}
		return
	}
	p.Focus = FocusInput
}

// MoveUp and MoveDown wrap around the filtered list.
func (p *Picker) MoveUp() bool {
	return p.Cursor.Up(len(p.Filtered))
}

func (p *Picker) MoveDown() bool {
	return p.Cursor.Down(len(p.Filtered))
}

func (p *Picker) refilter() {
	p.Filtered = FilterOptions(p.Options, p.Input.Value)
	p.Cursor.Reset(len(p.Filtered))
}

// FilterOptions returns options whose label fuzzy-matches query. IDs are
// never matched. Input order is preserved.
func FilterOptions(options []Option, query string) []Option {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return cloneOptions(options)
	}
	labels := make([]string, len(options))
	for i, opt := range options {
		labels[i] = opt.Label
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	matches := make(map[int]struct{}, len(ranks))
	for _, rank := range ranks {
		matches[rank.OriginalIndex] = struct{}{}
	}
	filtered := make([]Option, 0, len(matches))
	for idx, opt := range options {
		if _, ok := matches[idx]; ok {
			filtered = append(filtered, opt)
		}
	}
	return filtered
}

func cloneOptions(options []Option) []Option {
	dup := make([]Option, len(options))
	copy(dup, options)
	return dup
}

package ui

import (
	"unicode"

	"github.com/atomicstack/pkgsorter/internal/logging/events"
	uistate "github.com/atomicstack/pkgsorter/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

// editResult reports what a key did to a text input.
type editResult struct {
	handled bool
	changed bool
}

// editText applies the line-editing keys shared by every modal input.
// changed is set only when the text itself changed.
func editText(id string, in *uistate.TextInput, msg tea.KeyMsg) editResult {
	before := in.Value
	done := func(ok bool) editResult {
		return editResult{handled: ok, changed: ok && in.Value != before}
	}
	switch msg.String() {
	case "ctrl+u":
		if !in.Clear() {
			return editResult{}
		}
		events.Filter.Cleared(id)
		return done(true)
	case "ctrl+w":
		if !in.DeleteWordBackward() {
			return editResult{}
		}
		events.Filter.WordBackspace(id, in.Value)
		return done(true)
	case "ctrl+a", "home":
		ok := in.MoveStart()
		if ok {
			events.Filter.Cursor(id, in.Pos)
		}
		return done(ok)
	case "ctrl+e", "end":
		ok := in.MoveEnd()
		if ok {
			events.Filter.Cursor(id, in.Pos)
		}
		return done(ok)
	case "alt+b":
		ok := in.MoveWordBackward()
		if ok {
			events.Filter.Cursor(id, in.Pos)
		}
		return done(ok)
	case "alt+f":
		ok := in.MoveWordForward()
		if ok {
			events.Filter.Cursor(id, in.Pos)
		}
		return done(ok)
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		if !in.DeleteRuneBackward() {
			return editResult{}
		}
		events.Filter.Backspace(id, in.Value)
		return done(true)
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return editResult{}
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return editResult{}
			}
		}
		in.Insert(string(msg.Runes))
		events.Filter.Append(id, in.Value)
		return done(true)
	case tea.KeySpace:
		in.Insert(" ")
		events.Filter.Append(id, in.Value)
		return done(true)
	case tea.KeyLeft:
		ok := in.MoveRuneBackward()
		if ok {
			events.Filter.Cursor(id, in.Pos)
		}
		return done(ok)
	case tea.KeyRight:
		ok := in.MoveRuneForward()
		if ok {
			events.Filter.Cursor(id, in.Pos)
		}
		return done(ok)
	}
	return editResult{}
}

// inputPrompt renders a text input with its caret. focused=false renders
// the text without a caret.
func (m *Model) inputPrompt(prompt, placeholder string, in uistate.TextInput, focused bool) string {
	if styles.FilterPrompt != nil {
		prompt = styles.FilterPrompt.Render(prompt)
	}
	if in.Value == "" {
		if !focused {
			return prompt + renderStyled(styles.FilterPlaceholder, placeholder)
		}
		runes := []rune(placeholder)
		caretRune, rest := " ", ""
		if len(runes) > 0 {
			caretRune = string(runes[0])
			rest = string(runes[1:])
		}
		return prompt + m.renderCursor(caretRune) + renderStyled(styles.FilterPlaceholder, rest)
	}
	if !focused {
		return prompt + renderStyled(styles.Filter, in.Value)
	}
	runes := []rune(in.Value)
	pos := in.CursorPos()
	before := renderStyled(styles.Filter, string(runes[:pos]))
	caretRune, after := " ", ""
	if pos < len(runes) {
		caretRune = string(runes[pos])
		after = renderStyled(styles.Filter, string(runes[pos+1:]))
	}
	return prompt + before + m.renderCursor(caretRune) + after
}

func (m *Model) renderCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.inputCursor.SetChar(char)
	return m.inputCursor.View()
}

package state

import "unicode"

// TextInput is a single-line edit buffer with a rune-indexed cursor.
type TextInput struct {
	Value string
	Pos   int
}

// CursorPos returns the cursor clamped to the buffer.
func (t *TextInput) CursorPos() int {
	n := len([]rune(t.Value))
	if t.Pos < 0 {
		return 0
	}
	if t.Pos > n {
		return n
	}
	return t.Pos
}

// Set replaces the buffer and places the cursor at pos.
func (t *TextInput) Set(value string, pos int) {
	t.Value = value
	n := len([]rune(value))
	if pos < 0 {
		pos = 0
	}
	if pos > n {
		pos = n
	}
	t.Pos = pos
}

// Clear empties the buffer.
func (t *TextInput) Clear() bool {
	if t.Value == "" && t.Pos == 0 {
		return false
	}
	t.Set("", 0)
	return true
}

// Insert adds text at the cursor.
func (t *TextInput) Insert(text string) bool {
	insert := []rune(text)
	if len(insert) == 0 {
		return false
	}
	runes := []rune(t.Value)
	pos := t.CursorPos()
	updated := make([]rune, 0, len(runes)+len(insert))
	updated = append(updated, runes[:pos]...)
	updated = append(updated, insert...)
	updated = append(updated, runes[pos:]...)
	t.Set(string(updated), pos+len(insert))
	return true
}

// DeleteRuneBackward deletes the rune before the cursor.
func (t *TextInput) DeleteRuneBackward() bool {
	runes := []rune(t.Value)
	pos := t.CursorPos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	updated := append(runes[:pos-1], runes[pos:]...)
	t.Set(string(updated), pos-1)
	return true
}

// DeleteWordBackward deletes the word preceding the cursor along with any
// whitespace between it and the cursor.
func (t *TextInput) DeleteWordBackward() bool {
	runes := []rune(t.Value)
	pos := t.CursorPos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	i := wordStart(runes, pos)
	updated := append(runes[:i], runes[pos:]...)
	t.Set(string(updated), i)
	return true
}

func (t *TextInput) MoveStart() bool {
	if t.CursorPos() == 0 {
		return false
	}
	t.Pos = 0
	return true
}

func (t *TextInput) MoveEnd() bool {
	end := len([]rune(t.Value))
	if t.CursorPos() == end {
		return false
	}
	t.Pos = end
	return true
}

func (t *TextInput) MoveWordBackward() bool {
	pos := t.CursorPos()
	i := wordStart([]rune(t.Value), pos)
	if i == pos {
		return false
	}
	t.Pos = i
	return true
}

func (t *TextInput) MoveWordForward() bool {
	runes := []rune(t.Value)
	pos := t.CursorPos()
	i := pos
	for i < len(runes) && !unicode.IsSpace(runes[i]) {
		i++
	}
	for i < len(runes) && unicode.IsSpace(runes[i]) {
		i++
	}
	if i == pos {
		return false
	}
	t.Pos = i
	return true
}

func (t *TextInput) MoveRuneBackward() bool {
	pos := t.CursorPos()
	if pos == 0 {
		return false
	}
	t.Pos = pos - 1
	return true
}

func (t *TextInput) MoveRuneForward() bool {
	pos := t.CursorPos()
	if pos >= len([]rune(t.Value)) {
		return false
	}
	t.Pos = pos + 1
	return true
}

func wordStart(runes []rune, pos int) int {
	i := pos
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	return i
}

package state

import "testing"

func TestCursorWrapsUpAndDown(t *testing.T) {
	c := NewCursor()
	if !c.Down(3) || c.Index != 0 {
		t.Fatalf("expected first down to select 0, got %d", c.Index)
	}
	if !c.Up(3) || c.Index != 2 {
		t.Fatalf("expected up from top to wrap to 2, got %d", c.Index)
	}
	if !c.Down(3) || c.Index != 0 {
		t.Fatalf("expected down from bottom to wrap to 0, got %d", c.Index)
	}
	if c.Down(1) {
		t.Fatalf("single row list cannot move")
	}
	if c.Up(0) || c.Index != -1 {
		t.Fatalf("empty list must deselect, got %d", c.Index)
	}
}

func TestCursorHomeEndAndPaging(t *testing.T) {
	c := Cursor{Index: 1}
	if !c.End(5) || c.Index != 4 {
		t.Fatalf("expected end at 4, got %d", c.Index)
	}
	if c.End(5) {
		t.Fatalf("second end must be a no-op")
	}
	if !c.PageUp(5, 2) || c.Index != 2 {
		t.Fatalf("expected page up to 2, got %d", c.Index)
	}
	if !c.PageUp(5, 2) || c.Index != 0 {
		t.Fatalf("expected page up to 0, got %d", c.Index)
	}
	if c.PageUp(5, 2) {
		t.Fatalf("page up at top must be a no-op")
	}
	if !c.PageDown(5, 10) || c.Index != 4 {
		t.Fatalf("oversized page should clamp to 4, got %d", c.Index)
	}
	if !c.Home(5) || c.Index != 0 {
		t.Fatalf("expected home at 0, got %d", c.Index)
	}
}

func TestCursorResetAndValid(t *testing.T) {
	c := Cursor{Index: 7, Offset: 3}
	c.Reset(4)
	if c.Index != 0 || c.Offset != 0 {
		t.Fatalf("expected reset to 0/0, got %+v", c)
	}
	c.Reset(0)
	if c.Index != -1 || c.Valid(0) {
		t.Fatalf("expected unselected cursor, got %+v", c)
	}
	if c.Set(5, 3) {
		t.Fatalf("out of range set must fail")
	}
	if !c.Set(2, 3) || !c.Valid(3) {
		t.Fatalf("expected valid selection after set")
	}
}

func TestEnsureVisibleAdjustsOffset(t *testing.T) {
	c := Cursor{Index: 4}
	c.EnsureVisible(5, 2)
	if c.Offset != 3 {
		t.Fatalf("expected offset 3, got %d", c.Offset)
	}
	c.Index = 0
	c.EnsureVisible(5, 2)
	if c.Offset != 0 {
		t.Fatalf("expected offset 0, got %d", c.Offset)
	}
	c = Cursor{Index: 1, Offset: 9}
	c.EnsureVisible(3, 5)
	if c.Offset != 0 {
		t.Fatalf("expected offset clamped to 0, got %d", c.Offset)
	}
	c = Cursor{Index: 8}
	c.EnsureVisible(3, 2)
	if c.Index != 2 || c.Offset != 1 {
		t.Fatalf("expected index clamped to 2 offset 1, got %+v", c)
	}
}

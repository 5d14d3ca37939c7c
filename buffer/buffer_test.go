package buffer

import "testing"

func TestSetContentNormalizesLineEndings(t *testing.T) {
	b := New(2)
	b.SetContent("a\r\nb\n")
	if len(b.Lines) != 3 || b.Lines[1] != "b" {
		t.Fatalf("unexpected lines %q", b.Lines)
	}
	if b.Dirty {
		t.Fatalf("fresh content should not be dirty")
	}
	if got := b.Content(); got != "a\nb\n" {
		t.Fatalf("content round trip: %q", got)
	}
}

func TestInsertNewlineKeepsIndent(t *testing.T) {
	b := New(2)
	b.SetContent("  if (x) {")
	b.MoveEnd()
	b.InsertNewline()
	if got := b.Content(); got != "  if (x) {\n    " {
		t.Fatalf("unexpected content %q", got)
	}
	if b.Cursor != (Cursor{Line: 1, Col: 4}) {
		t.Fatalf("unexpected cursor %+v", b.Cursor)
	}
}

func TestAutoCloseAndStepOver(t *testing.T) {
	b := New(4)
	b.Language = "javascript"
	b.InsertChar('(')
	if got := b.Content(); got != "()" {
		t.Fatalf("expected auto-closed pair, got %q", got)
	}
	b.InsertChar(')')
	if got := b.Content(); got != "()" || b.Cursor.Col != 2 {
		t.Fatalf("expected step over closer, got %q at %d", got, b.Cursor.Col)
	}
}

func TestBackspaceRemovesEmptyPair(t *testing.T) {
	b := New(4)
	b.Language = "javascript"
	b.InsertChar('[')
	b.Backspace()
	if got := b.Content(); got != "" {
		t.Fatalf("expected empty buffer, got %q", got)
	}
}

func TestPlainTextDoesNotAutoClose(t *testing.T) {
	b := New(4)
	b.Language = "plaintext"
	b.InsertChar('{')
	if got := b.Content(); got != "{" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestBackspaceJoinsLines(t *testing.T) {
	b := New(4)
	b.SetContent("ab\ncd")
	b.SetCursor(1, 0)
	b.Backspace()
	if got := b.Content(); got != "abcd" {
		t.Fatalf("unexpected %q", got)
	}
	if b.Cursor != (Cursor{Line: 0, Col: 2}) {
		t.Fatalf("unexpected cursor %+v", b.Cursor)
	}
}

func TestDeleteHandlesMultibyteRunes(t *testing.T) {
	b := New(4)
	b.SetContent("héllo")
	b.SetCursor(0, 1)
	b.Delete()
	if got := b.Content(); got != "hllo" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestSelectionAndInsertText(t *testing.T) {
	b := New(4)
	b.SetContent("hello world")
	b.SetCursor(0, 6)
	b.Select((*Buffer).MoveEnd)
	if got := b.SelectedText(); got != "world" {
		t.Fatalf("unexpected selection %q", got)
	}
	b.InsertText("there\nfriend")
	if got := b.Content(); got != "hello there\nfriend" {
		t.Fatalf("unexpected %q", got)
	}
	if b.Cursor != (Cursor{Line: 1, Col: 6}) {
		t.Fatalf("unexpected cursor %+v", b.Cursor)
	}
}

func TestMultiLineSelectionText(t *testing.T) {
	b := New(4)
	b.SetContent("one\ntwo\nthree")
	b.SetCursor(0, 1)
	b.Select((*Buffer).MoveDown)
	b.Select((*Buffer).MoveDown)
	if got := b.SelectedText(); got != "ne\ntwo\nt" {
		t.Fatalf("unexpected selection %q", got)
	}
	b.Backspace()
	if got := b.Content(); got != "ohree" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestWordMotions(t *testing.T) {
	b := New(4)
	b.SetContent("foo.bar  baz")
	b.MoveWordRight()
	if b.Cursor.Col != 3 {
		t.Fatalf("expected col 3, got %d", b.Cursor.Col)
	}
	b.MoveEnd()
	b.MoveWordLeft()
	if b.Cursor.Col != 9 {
		t.Fatalf("expected col 9, got %d", b.Cursor.Col)
	}
}

func TestMoveHomeToggles(t *testing.T) {
	b := New(4)
	b.SetContent("    x")
	b.MoveEnd()
	b.MoveHome()
	if b.Cursor.Col != 4 {
		t.Fatalf("expected indentation, got %d", b.Cursor.Col)
	}
	b.MoveHome()
	if b.Cursor.Col != 0 {
		t.Fatalf("expected column 0, got %d", b.Cursor.Col)
	}
}

func TestEnsureVisible(t *testing.T) {
	b := New(4)
	b.SetContent("1\n2\n3\n4\n5\n6")
	b.SetCursor(5, 0)
	b.EnsureVisible(3, 80)
	if b.ScrollY != 3 {
		t.Fatalf("expected scroll 3, got %d", b.ScrollY)
	}
	b.SetCursor(0, 0)
	b.EnsureVisible(3, 80)
	if b.ScrollY != 0 {
		t.Fatalf("expected scroll 0, got %d", b.ScrollY)
	}
}

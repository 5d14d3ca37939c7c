package buffer

import "unicode/utf8"

// Motions move the cursor and clear the selection. The Select variants
// extend the selection from its anchor instead.

func (b *Buffer) MoveLeft() {
	b.move(func() {
		if b.Cursor.Col > 0 {
			_, size := utf8.DecodeLastRuneInString(b.Lines[b.Cursor.Line][:b.Cursor.Col])
			b.Cursor.Col -= size
		} else if b.Cursor.Line > 0 {
			b.Cursor.Line--
			b.Cursor.Col = len(b.Lines[b.Cursor.Line])
		}
	})
}

func (b *Buffer) MoveRight() {
	b.move(func() {
		line := b.Lines[b.Cursor.Line]
		if b.Cursor.Col < len(line) {
			_, size := utf8.DecodeRuneInString(line[b.Cursor.Col:])
			b.Cursor.Col += size
		} else if b.Cursor.Line < len(b.Lines)-1 {
			b.Cursor.Line++
			b.Cursor.Col = 0
		}
	})
}

func (b *Buffer) MoveUp()   { b.move(func() { b.verticalBy(-1) }) }
func (b *Buffer) MoveDown() { b.move(func() { b.verticalBy(1) }) }

func (b *Buffer) PageUp(rows int)   { b.move(func() { b.verticalBy(-max(rows, 1)) }) }
func (b *Buffer) PageDown(rows int) { b.move(func() { b.verticalBy(max(rows, 1)) }) }

func (b *Buffer) MoveHome() {
	b.move(func() {
		line := b.Lines[b.Cursor.Line]
		indent := 0
		for indent < len(line) && (line[indent] == ' ' || line[indent] == '\t') {
			indent++
		}
		// first press goes to the indentation, the second to column 0
		if b.Cursor.Col == indent {
			b.Cursor.Col = 0
		} else {
			b.Cursor.Col = indent
		}
	})
}

func (b *Buffer) MoveEnd() {
	b.move(func() { b.Cursor.Col = len(b.Lines[b.Cursor.Line]) })
}

func (b *Buffer) MoveWordLeft() {
	b.move(func() {
		if b.Cursor.Col == 0 {
			if b.Cursor.Line > 0 {
				b.Cursor.Line--
				b.Cursor.Col = len(b.Lines[b.Cursor.Line])
			}
			return
		}
		line := b.Lines[b.Cursor.Line]
		col := b.Cursor.Col
		for col > 0 && isSpace(line[col-1]) {
			col--
		}
		if col > 0 {
			word := isWordByte(line[col-1])
			for col > 0 && !isSpace(line[col-1]) && isWordByte(line[col-1]) == word {
				col--
			}
		}
		b.Cursor.Col = col
	})
}

func (b *Buffer) MoveWordRight() {
	b.move(func() {
		line := b.Lines[b.Cursor.Line]
		if b.Cursor.Col >= len(line) {
			if b.Cursor.Line < len(b.Lines)-1 {
				b.Cursor.Line++
				b.Cursor.Col = 0
			}
			return
		}
		col := b.Cursor.Col
		if !isSpace(line[col]) {
			word := isWordByte(line[col])
			for col < len(line) && !isSpace(line[col]) && isWordByte(line[col]) == word {
				col++
			}
		}
		for col < len(line) && isSpace(line[col]) {
			col++
		}
		b.Cursor.Col = col
	})
}

// SetCursor places the cursor, clamped to the text, e.g. for a mouse click.
func (b *Buffer) SetCursor(line, col int) {
	b.move(func() { b.Cursor = Cursor{Line: line, Col: col} })
}

// Select extends the selection with a motion such as (*Buffer).MoveRight.
func (b *Buffer) Select(motion func(*Buffer)) {
	b.clampCursor()
	anchor := b.Cursor
	if b.Selection != nil {
		if b.Cursor == b.Selection.Start {
			anchor = b.Selection.End
		} else {
			anchor = b.Selection.Start
		}
	}
	motion(b)
	sel := NewSelection(anchor, b.Cursor)
	if sel.Empty() {
		b.Selection = nil
		return
	}
	b.Selection = &sel
}

func (b *Buffer) move(fn func()) {
	b.clampCursor()
	fn()
	b.clampCursor()
	b.Selection = nil
	b.pendingClose = 0
}

func (b *Buffer) verticalBy(n int) {
	b.Cursor.Line = max(0, min(b.Cursor.Line+n, len(b.Lines)-1))
	line := b.Lines[b.Cursor.Line]
	b.Cursor.Col = min(b.Cursor.Col, len(line))
	for b.Cursor.Col > 0 && b.Cursor.Col < len(line) && !isRuneStart(line[b.Cursor.Col]) {
		b.Cursor.Col--
	}
}

// EnsureVisible scrolls so the cursor sits inside a viewport of the given
// size.
func (b *Buffer) EnsureVisible(rows, cols int) {
	if rows > 0 {
		if b.Cursor.Line < b.ScrollY {
			b.ScrollY = b.Cursor.Line
		} else if b.Cursor.Line >= b.ScrollY+rows {
			b.ScrollY = b.Cursor.Line - rows + 1
		}
	}
	if cols > 0 {
		if b.Cursor.Col < b.ScrollX {
			b.ScrollX = b.Cursor.Col
		} else if b.Cursor.Col >= b.ScrollX+cols {
			b.ScrollX = b.Cursor.Col - cols + 1
		}
	}
}

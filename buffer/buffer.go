// Package buffer is the editable text behind the active file: lines, a
// cursor, an optional selection and an undo history.
package buffer

import (
	"strings"
	"unicode"
)

type Buffer struct {
	Lines     []string
	Cursor    Cursor
	Selection *Selection
	Undo      *UndoStack
	Language  string
	TabSize   int
	UseTabs   bool
	AutoClose bool
	Dirty     bool // changed since the last SetContent
	ScrollY   int
	ScrollX   int

	// closer typed automatically at pendingPos; typing it again steps over
	pendingClose rune
	pendingPos   Cursor
}

func New(tabSize int) *Buffer {
	if tabSize <= 0 {
		tabSize = 4
	}
	return &Buffer{
		Lines:     []string{""},
		Undo:      NewUndoStack(),
		TabSize:   tabSize,
		AutoClose: true,
	}
}

// SetContent replaces the whole text and resets cursor, selection and
// history. CRLF line endings are normalized.
func (b *Buffer) SetContent(text string) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	b.Lines = strings.Split(text, "\n")
	b.Cursor = Cursor{}
	b.Selection = nil
	b.Undo = NewUndoStack()
	b.Dirty = false
	b.ScrollX, b.ScrollY = 0, 0
	b.pendingClose = 0
}

func (b *Buffer) Content() string {
	return strings.Join(b.Lines, "\n")
}

// CurrentLine is the text of the cursor's line up to the cursor.
func (b *Buffer) CurrentLine() string {
	b.clampCursor()
	return b.Lines[b.Cursor.Line][:b.Cursor.Col]
}

func (b *Buffer) clampCursor() {
	if len(b.Lines) == 0 {
		b.Lines = []string{""}
	}
	b.Cursor = b.clamp(b.Cursor)
}

func (b *Buffer) clamp(c Cursor) Cursor {
	c.Line = max(0, min(c.Line, len(b.Lines)-1))
	c.Col = max(0, min(c.Col, len(b.Lines[c.Line])))
	return c
}

func (b *Buffer) indentUnit() string {
	if b.UseTabs {
		return "\t"
	}
	return strings.Repeat(" ", b.TabSize)
}

var closers = map[rune]rune{'(': ')', '[': ']', '{': '}', '"': '"', '\'': '\'', '`': '`'}

func (b *Buffer) InsertChar(ch rune) {
	b.deleteSelectionIfAny()
	b.clampCursor()
	line := b.Lines[b.Cursor.Line]

	if b.pendingClose == ch && b.Cursor == b.pendingPos &&
		b.Cursor.Col < len(line) && rune(line[b.Cursor.Col]) == ch {
		b.Cursor.Col++
		b.pendingClose = 0
		return
	}
	b.pendingClose = 0

	text := string(ch)
	if closeCh, ok := closers[ch]; ok && b.AutoClose && b.Language != "" && b.Language != "plaintext" {
		quote := closeCh == ch
		nextIsWord := b.Cursor.Col < len(line) && isWordByte(line[b.Cursor.Col])
		if !quote || !nextIsWord {
			text += string(closeCh)
			defer func() {
				b.pendingClose = closeCh
				b.pendingPos = b.Cursor
			}()
		}
	}

	before := b.Cursor
	b.insertTextAt(before, text)
	b.Cursor.Col += len(string(ch))
	b.Dirty = true
	b.Undo.Push(Operation{Type: OpInsert, Pos: before, Text: text, Before: before})
}

func (b *Buffer) InsertTab() {
	b.InsertText(b.indentUnit())
}

// InsertNewline splits the line at the cursor and carries the current
// indentation over, adding one level after an opening brace or a colon.
func (b *Buffer) InsertNewline() {
	b.deleteSelectionIfAny()
	b.clampCursor()
	line := b.Lines[b.Cursor.Line]

	indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
	if len(indent) > b.Cursor.Col {
		indent = indent[:b.Cursor.Col]
	}
	head := strings.TrimRightFunc(line[:b.Cursor.Col], unicode.IsSpace)
	if strings.HasSuffix(head, "{") || strings.HasSuffix(head, ":") || strings.HasSuffix(head, "(") {
		indent += b.indentUnit()
	}
	b.InsertText("\n" + indent)
}

func (b *Buffer) Backspace() {
	if b.deleteSelectionIfAny() {
		return
	}
	b.clampCursor()
	before := b.Cursor
	switch {
	case b.Cursor.Col > 0:
		line := b.Lines[b.Cursor.Line]
		start := b.Cursor.Col - 1
		for start > 0 && !isRuneStart(line[start]) {
			start--
		}
		// an empty auto-closed pair goes away together
		end := b.Cursor.Col
		if b.pendingClose != 0 && b.Cursor == b.pendingPos && end < len(line) &&
			rune(line[end]) == b.pendingClose && closers[rune(line[start])] == b.pendingClose {
			end++
		}
		b.pendingClose = 0
		pos := Cursor{Line: b.Cursor.Line, Col: start}
		b.remove(pos, line[start:end], before)
	case b.Cursor.Line > 0:
		pos := Cursor{Line: b.Cursor.Line - 1, Col: len(b.Lines[b.Cursor.Line-1])}
		b.remove(pos, "\n", before)
	}
}

func (b *Buffer) Delete() {
	if b.deleteSelectionIfAny() {
		return
	}
	b.clampCursor()
	line := b.Lines[b.Cursor.Line]
	switch {
	case b.Cursor.Col < len(line):
		end := b.Cursor.Col + 1
		for end < len(line) && !isRuneStart(line[end]) {
			end++
		}
		b.remove(b.Cursor, line[b.Cursor.Col:end], b.Cursor)
	case b.Cursor.Line < len(b.Lines)-1:
		b.remove(b.Cursor, "\n", b.Cursor)
	}
}

func (b *Buffer) remove(pos Cursor, text string, before Cursor) {
	b.removeText(pos, text)
	b.Cursor = pos
	b.Dirty = true
	b.Undo.Push(Operation{Type: OpDelete, Pos: pos, Text: text, Before: before})
}

// InsertText inserts text at the cursor, replacing the selection if there
// is one, and leaves the cursor after it.
func (b *Buffer) InsertText(text string) {
	group := 0
	if b.Selection != nil && !b.Selection.Empty() {
		group = b.Undo.NewGroup()
		b.deleteSelection(group)
	}
	b.Selection = nil
	b.pendingClose = 0
	b.clampCursor()
	if text == "" {
		return
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")

	before := b.Cursor
	b.insertTextAt(before, text)
	b.Cursor = posAfterInsert(before, text)
	b.Dirty = true
	op := Operation{Type: OpInsert, Pos: before, Text: text, Before: before}
	if group != 0 {
		b.Undo.PushGrouped(op, group)
	} else {
		b.Undo.Push(op)
	}
}

// ReplaceSelection swaps the selected text for text. With no selection the
// whole buffer is replaced. Either way it undoes in one step.
func (b *Buffer) ReplaceSelection(text string) {
	if b.Selection == nil || b.Selection.Empty() {
		b.SelectAll()
	}
	b.InsertText(text)
}

func (b *Buffer) deleteSelectionIfAny() bool {
	if b.Selection == nil || b.Selection.Empty() {
		b.Selection = nil
		return false
	}
	b.deleteSelection(0)
	return true
}

func (b *Buffer) deleteSelection(group int) {
	sel := NewSelection(b.clamp(b.Selection.Start), b.clamp(b.Selection.End))
	text := b.textIn(sel)
	before := b.Cursor
	b.removeText(sel.Start, text)
	b.Cursor = sel.Start
	b.Selection = nil
	b.pendingClose = 0
	b.Dirty = true
	op := Operation{Type: OpDelete, Pos: sel.Start, Text: text, Before: before}
	if group != 0 {
		b.Undo.PushGrouped(op, group)
	} else {
		b.Undo.Push(op)
	}
}

func (b *Buffer) SelectedText() string {
	if b.Selection == nil {
		return ""
	}
	return b.textIn(NewSelection(b.clamp(b.Selection.Start), b.clamp(b.Selection.End)))
}

func (b *Buffer) textIn(sel Selection) string {
	if sel.Start.Line == sel.End.Line {
		return b.Lines[sel.Start.Line][sel.Start.Col:sel.End.Col]
	}
	var sb strings.Builder
	sb.WriteString(b.Lines[sel.Start.Line][sel.Start.Col:])
	for i := sel.Start.Line + 1; i < sel.End.Line; i++ {
		sb.WriteByte('\n')
		sb.WriteString(b.Lines[i])
	}
	sb.WriteByte('\n')
	sb.WriteString(b.Lines[sel.End.Line][:sel.End.Col])
	return sb.String()
}

func (b *Buffer) SelectAll() {
	last := len(b.Lines) - 1
	sel := NewSelection(Cursor{}, Cursor{Line: last, Col: len(b.Lines[last])})
	b.Selection = &sel
	b.Cursor = sel.End
}

func (b *Buffer) ApplyUndo() {
	ops := b.Undo.popUndo()
	if len(ops) == 0 {
		return
	}
	for _, op := range ops {
		switch op.Type {
		case OpInsert:
			b.removeText(op.Pos, op.Text)
		case OpDelete:
			b.insertTextAt(op.Pos, op.Text)
		}
	}
	b.Cursor = b.clamp(ops[len(ops)-1].Before)
	b.Selection = nil
	b.pendingClose = 0
	b.Dirty = true
}

func (b *Buffer) ApplyRedo() {
	ops := b.Undo.popRedo()
	if len(ops) == 0 {
		return
	}
	for _, op := range ops {
		switch op.Type {
		case OpInsert:
			b.insertTextAt(op.Pos, op.Text)
			b.Cursor = posAfterInsert(op.Pos, op.Text)
		case OpDelete:
			b.removeText(op.Pos, op.Text)
			b.Cursor = op.Pos
		}
	}
	b.Cursor = b.clamp(b.Cursor)
	b.Selection = nil
	b.pendingClose = 0
	b.Dirty = true
}

func (b *Buffer) insertTextAt(pos Cursor, text string) {
	pos = b.clamp(pos)
	line := b.Lines[pos.Line]
	parts := strings.Split(text, "\n")
	if len(parts) == 1 {
		b.Lines[pos.Line] = line[:pos.Col] + text + line[pos.Col:]
		return
	}
	rest := line[pos.Col:]
	parts[0] = line[:pos.Col] + parts[0]
	parts[len(parts)-1] += rest

	lines := make([]string, 0, len(b.Lines)+len(parts)-1)
	lines = append(lines, b.Lines[:pos.Line]...)
	lines = append(lines, parts...)
	lines = append(lines, b.Lines[pos.Line+1:]...)
	b.Lines = lines
}

func (b *Buffer) removeText(pos Cursor, text string) {
	pos = b.clamp(pos)
	parts := strings.Split(text, "\n")
	lastIdx := min(pos.Line+len(parts)-1, len(b.Lines)-1)
	last := b.Lines[lastIdx]

	endCol := len(parts[len(parts)-1])
	if len(parts) == 1 {
		endCol += pos.Col
	}
	endCol = min(endCol, len(last))

	b.Lines[pos.Line] = b.Lines[pos.Line][:pos.Col] + last[endCol:]
	b.Lines = append(b.Lines[:pos.Line+1], b.Lines[lastIdx+1:]...)
}

func posAfterInsert(pos Cursor, text string) Cursor {
	parts := strings.Split(text, "\n")
	if len(parts) == 1 {
		return Cursor{Line: pos.Line, Col: pos.Col + len(text)}
	}
	return Cursor{Line: pos.Line + len(parts) - 1, Col: len(parts[len(parts)-1])}
}

func isWordByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= 0x80
}

func isRuneStart(c byte) bool { return c&0xC0 != 0x80 }

package editor

import (
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"void/buffer"
	"void/ui"
)

// displayWidth is the number of cells text takes, with tabs expanded to the
// next multiple of tabSize.
func displayWidth(text string, tabSize int) int {
	w := 0
	for _, r := range text {
		if r == '\t' {
			w += tabSize - w%tabSize
		} else {
			w += runewidth.RuneWidth(r)
		}
	}
	return w
}

// byteColAt converts a display column to a byte offset into line. A column
// inside a wide rune or a tab resolves to the start of that rune.
func byteColAt(line string, target, tabSize int) int {
	if target <= 0 {
		return 0
	}
	w := 0
	for i, r := range line {
		if r == '\t' {
			w += tabSize - w%tabSize
		} else {
			w += runewidth.RuneWidth(r)
		}
		if w > target {
			return i
		}
		if w == target {
			return i + len(string(r))
		}
	}
	return len(line)
}

func (e *Editor) gutterWidth(buf *buffer.Buffer) int {
	if buf == nil {
		return 0
	}
	return len(strconv.Itoa(len(buf.Lines))) + 2
}

func (e *Editor) render() {
	theme := e.cfg.GetTheme()
	e.screen.SetStyle(tcell.StyleDefault.Background(theme.Background).Foreground(theme.Foreground))
	e.screen.Clear()

	screenW, screenH := e.screen.Size()
	e.updateStatus()

	if e.treeOpen {
		e.fileTree.Render(e.screen, 0, 0, e.treeLeft(), screenH-1)
	}
	left := e.treeLeft()
	e.tabBar.Render(e.screen, left, 0, screenW-left, 1)

	ex, ey, ew, eh := e.editorLayout()
	e.renderEditor(ex, ey, ew, eh)

	if p := e.currentPanel(); p != nil {
		px, py, pw, ph := e.panelLayout()
		p.Render(e.screen, px, py, pw, ph)
	}

	e.statusBar.Render(e.screen, 0, screenH-1, screenW, 1)

	if e.dialog != nil {
		switch e.dialog.Type {
		case ui.DialogHelp:
			e.dialog.Render(e.screen, 0, 0, screenW, screenH)
		case ui.DialogConfirm:
			e.dialog.Render(e.screen, 0, screenH-2, screenW, 1)
		default:
			e.dialog.Render(e.screen, ex, ey, ew, 1)
		}
	}
	if e.picker != nil {
		e.picker.Render(e.screen, 0, 0, screenW, screenH)
	}

	e.placeCursor(ex, ey, ew, eh)
	e.screen.Show()
}

func (e *Editor) renderEditor(x, y, w, h int) {
	theme := e.cfg.GetTheme()
	bg := tcell.StyleDefault.Background(theme.Background).Foreground(theme.Foreground)
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			e.screen.SetContent(col, row, ' ', nil, bg)
		}
	}

	ent, ok := e.ws.Active()
	buf := e.activeBuffer()
	if !ok || buf == nil {
		e.renderWelcome(x, y, w, h)
		return
	}

	gutterW := e.gutterWidth(buf)
	textW := w - gutterW
	if textW <= 0 || h <= 0 {
		return
	}
	if !e.mouseScrolling {
		e.ensureCursorVisible(buf, textW, h)
	}

	lines := e.highlight.Lines(string(ent.ID), buf.Content(), ent.Language, buf.ScrollY, buf.ScrollY+h)
	numStyle := bg.Foreground(theme.LineNumber)
	selStyle := tcell.StyleDefault.Background(theme.Selection).Foreground(theme.Foreground)

	for row := 0; row < h; row++ {
		lineIdx := buf.ScrollY + row
		if lineIdx >= len(buf.Lines) {
			break
		}
		num := strconv.Itoa(lineIdx + 1)
		style := numStyle
		if lineIdx == buf.Cursor.Line {
			style = style.Foreground(theme.Foreground)
		}
		numX := x + gutterW - 1 - len(num)
		for i, r := range num {
			e.screen.SetContent(numX+i, y+row, r, nil, style)
		}

		// walk the highlighted tokens byte by byte so selection can be
		// matched against buffer columns
		var tokens []highlightToken
		if row < len(lines) {
			for _, t := range lines[row].Tokens {
				tokens = append(tokens, highlightToken{text: t.Text, style: t.Style.Background(theme.Background)})
			}
		} else {
			tokens = []highlightToken{{text: buf.Lines[lineIdx], style: bg}}
		}

		dispCol := 0
		byteCol := 0
		for _, tok := range tokens {
			for _, r := range tok.text {
				cellW := runewidth.RuneWidth(r)
				if r == '\t' {
					cellW = buf.TabSize - dispCol%buf.TabSize
				}
				style := tok.style
				if e.isSelected(buf, lineIdx, byteCol) {
					style = selStyle
				}
				screenCol := dispCol - buf.ScrollX
				if screenCol >= 0 && screenCol+cellW <= textW {
					if r == '\t' {
						for i := 0; i < cellW; i++ {
							e.screen.SetContent(x+gutterW+screenCol+i, y+row, ' ', nil, style)
						}
					} else {
						e.screen.SetContent(x+gutterW+screenCol, y+row, r, nil, style)
					}
				}
				dispCol += cellW
				byteCol += len(string(r))
			}
		}
		// a selection running past the end of the line covers the newline
		if buf.Selection != nil && lineIdx < buf.Selection.End.Line && e.isSelected(buf, lineIdx, byteCol) {
			if screenCol := dispCol - buf.ScrollX; screenCol >= 0 && screenCol < textW {
				e.screen.SetContent(x+gutterW+screenCol, y+row, ' ', nil, selStyle)
			}
		}
	}

	if e.suggestion.Visible {
		line := buf.Lines[buf.Cursor.Line]
		cx := x + gutterW + displayWidth(line[:min(buf.Cursor.Col, len(line))], buf.TabSize) - buf.ScrollX
		e.suggestion.X, e.suggestion.Y = cx, y+buf.Cursor.Line-buf.ScrollY
		e.suggestion.Render(e.screen, x+gutterW, y, textW, h)
	}
}

type highlightToken struct {
	text  string
	style tcell.Style
}

func (e *Editor) renderWelcome(x, y, w, h int) {
	theme := e.cfg.GetTheme()
	style := tcell.StyleDefault.Background(theme.Background).Foreground(theme.Muted)
	hints := []string{
		"No file open",
		"",
		"Ctrl+E  explorer",
		"Ctrl+O  go to file",
		"Ctrl+K  ask the assistant",
		"F1      all shortcuts",
	}
	top := y + max(0, (h-len(hints))/2)
	for i, text := range hints {
		if top+i >= y+h {
			break
		}
		col := x + max(0, (w-runewidth.StringWidth(text))/2)
		for _, r := range text {
			e.screen.SetContent(col, top+i, r, nil, style)
			col += runewidth.RuneWidth(r)
		}
	}
}

// ensureCursorVisible scrolls the buffer so the cursor stays on screen.
// ScrollX is kept in display columns.
func (e *Editor) ensureCursorVisible(buf *buffer.Buffer, textW, textH int) {
	buf.EnsureVisible(textH, 0)
	line := buf.Lines[min(buf.Cursor.Line, len(buf.Lines)-1)]
	col := displayWidth(line[:min(buf.Cursor.Col, len(line))], buf.TabSize)
	if col < buf.ScrollX {
		buf.ScrollX = col
	}
	rightLimit := max(1, min(textW*7/10, textW-1))
	if col > buf.ScrollX+rightLimit {
		buf.ScrollX = col - rightLimit
	}
}

func (e *Editor) isSelected(buf *buffer.Buffer, line, col int) bool {
	if buf.Selection == nil {
		return false
	}
	pos := buffer.Cursor{Line: line, Col: col}
	return buf.Selection.Contains(pos) && pos != buf.Selection.End
}

func (e *Editor) placeCursor(ex, ey, ew, eh int) {
	buf := e.activeBuffer()
	if e.focusTarget != focusEditor || e.dialog != nil || e.picker != nil || buf == nil {
		e.screen.HideCursor()
		return
	}
	line := buf.Lines[min(buf.Cursor.Line, len(buf.Lines)-1)]
	gutterW := e.gutterWidth(buf)
	cx := ex + gutterW + displayWidth(line[:min(buf.Cursor.Col, len(line))], buf.TabSize) - buf.ScrollX
	cy := ey + buf.Cursor.Line - buf.ScrollY
	if cx < ex+gutterW || cx >= ex+ew || cy < ey || cy >= ey+eh {
		e.screen.HideCursor()
		return
	}
	e.screen.ShowCursor(cx, cy)
}

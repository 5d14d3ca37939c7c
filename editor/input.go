package editor

import (
	"github.com/gdamore/tcell/v2"

	"void/buffer"
)

func (e *Editor) handleKey(ev *tcell.EventKey) {
	defer e.updateStatus()

	// Ctrl+Shift+P opens the command palette
	if ev.Key() == tcell.KeyRune && (ev.Rune() == 'P' || ev.Rune() == 'p') &&
		ev.Modifiers()&tcell.ModCtrl != 0 && ev.Modifiers()&tcell.ModShift != 0 {
		e.openPalette()
		return
	}

	if m := e.modal(); m != nil {
		m.HandleKey(ev)
		return
	}

	if e.handleGlobalKey(ev) {
		return
	}

	switch e.focusTarget {
	case focusTree:
		if e.fileTree.HandleKey(ev) {
			return
		}
		if ev.Key() == tcell.KeyEscape {
			e.focusTarget = focusEditor
			e.updateFocus()
		}
		return
	case focusPanel:
		if p := e.currentPanel(); p != nil && p.HandleKey(ev) {
			return
		}
		if ev.Key() == tcell.KeyEscape {
			e.focusTarget = focusEditor
			e.updateFocus()
		}
		return
	}

	if e.suggestion.Visible && e.suggestion.HandleKey(ev) {
		return
	}
	e.handleEditorKey(ev)
}

// handleGlobalKey runs the shortcuts that work regardless of focus.
func (e *Editor) handleGlobalKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlQ:
		e.requestQuit()
	case tcell.KeyCtrlS:
		e.save()
	case tcell.KeyCtrlW:
		e.closeActive()
	case tcell.KeyCtrlO:
		e.openQuickOpen()
	case tcell.KeyCtrlB:
		e.compileActive()
	case tcell.KeyCtrlP:
		e.togglePreview()
	case tcell.KeyCtrlK:
		e.promptAssistant()
	case tcell.KeyCtrlL:
		e.copyCode()
	case tcell.KeyCtrlG:
		e.codeAction(false)
	case tcell.KeyCtrlR:
		e.codeAction(true)
	case tcell.KeyCtrlJ:
		e.cyclePanel()
	case tcell.KeyCtrlE:
		e.toggleTreeFocus()
	case tcell.KeyCtrlT:
		e.toggleTheme()
	case tcell.KeyF1:
		e.showHelp()
	case tcell.KeyF2:
		e.openPalette()
	case tcell.KeyEscape:
		// Esc first stops whatever is running
		if e.stopAssistant() {
			e.setTemporaryMessage("Response stopped")
			return true
		}
		return e.cancelCompile()
	default:
		return false
	}
	return true
}

func (e *Editor) handleEditorKey(ev *tcell.EventKey) {
	buf := e.activeBuffer()
	if buf == nil {
		return
	}
	e.mouseScrolling = false

	shift := ev.Modifiers()&tcell.ModShift != 0
	word := ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) != 0
	move := func(motion func(*buffer.Buffer)) {
		if shift {
			buf.Select(motion)
		} else {
			motion(buf)
		}
		e.suggestion.Hide()
	}
	_, _, _, rows := e.editorLayout()

	switch ev.Key() {
	case tcell.KeyUp:
		move((*buffer.Buffer).MoveUp)
	case tcell.KeyDown:
		move((*buffer.Buffer).MoveDown)
	case tcell.KeyLeft:
		if word {
			move((*buffer.Buffer).MoveWordLeft)
		} else {
			move((*buffer.Buffer).MoveLeft)
		}
	case tcell.KeyRight:
		if word {
			move((*buffer.Buffer).MoveWordRight)
		} else {
			move((*buffer.Buffer).MoveRight)
		}
	case tcell.KeyHome:
		move((*buffer.Buffer).MoveHome)
	case tcell.KeyEnd:
		move((*buffer.Buffer).MoveEnd)
	case tcell.KeyPgUp:
		move(func(b *buffer.Buffer) { b.PageUp(rows) })
	case tcell.KeyPgDn:
		move(func(b *buffer.Buffer) { b.PageDown(rows) })

	case tcell.KeyCtrlA:
		buf.SelectAll()
	case tcell.KeyCtrlZ:
		buf.ApplyUndo()
		e.syncActive()
	case tcell.KeyCtrlY:
		buf.ApplyRedo()
		e.syncActive()
	case tcell.KeyCtrlC:
		if text := buf.SelectedText(); text != "" {
			e.copyText(text, "Copied selection")
		}
	case tcell.KeyCtrlX:
		if text := buf.SelectedText(); text != "" {
			e.copyText(text, "Cut selection")
			buf.ReplaceSelection("")
			e.syncActive()
		}
	case tcell.KeyCtrlV:
		if text := e.clip.Read(); text != "" {
			buf.ReplaceSelection(text)
			e.syncActive()
		}

	case tcell.KeyEnter:
		buf.InsertNewline()
		e.syncActive()
	case tcell.KeyTab:
		buf.InsertTab()
		e.syncActive()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		buf.Backspace()
		e.syncActive()
	case tcell.KeyDelete:
		buf.Delete()
		e.syncActive()
	case tcell.KeyRune:
		buf.InsertChar(ev.Rune())
		e.syncActive()
		e.suggest()
	}
}

func (e *Editor) handleMouse(ev *tcell.EventMouse) {
	defer e.updateStatus()

	if m := e.modal(); m != nil {
		m.HandleMouse(ev)
		return
	}
	mx, my := ev.Position()
	btn := ev.Buttons()
	_, screenH := e.screen.Size()

	if my == screenH-1 {
		return
	}

	if e.treeOpen && mx < e.treeLeft() {
		if e.fileTree.HandleMouse(ev) && btn == tcell.Button1 {
			e.focusTarget = focusTree
			e.updateFocus()
		}
		return
	}

	if my == 0 {
		e.tabBar.HandleMouse(ev)
		return
	}

	if p := e.currentPanel(); p != nil {
		_, py, _, ph := e.panelLayout()
		if my >= py && my < py+ph {
			if btn == tcell.Button1 {
				e.focusTarget = focusPanel
				e.updateFocus()
			}
			p.HandleMouse(ev)
			return
		}
	}

	if btn != tcell.ButtonNone {
		e.focusTarget = focusEditor
		e.updateFocus()
	}
	e.handleEditorMouse(ev)
}

func (e *Editor) handleEditorMouse(ev *tcell.EventMouse) {
	buf := e.activeBuffer()
	if buf == nil {
		return
	}
	mx, my := ev.Position()
	ex, ey, _, eh := e.editorLayout()

	switch btn := ev.Buttons(); {
	case btn == tcell.WheelUp:
		buf.ScrollY = max(0, buf.ScrollY-3)
		e.mouseScrolling = true
	case btn == tcell.WheelDown:
		buf.ScrollY = max(0, min(buf.ScrollY+3, len(buf.Lines)-eh+1))
		e.mouseScrolling = true
	case btn == tcell.Button1:
		line := min(buf.ScrollY+my-ey, len(buf.Lines)-1)
		col := byteColAt(buf.Lines[line], mx-ex-e.gutterWidth(buf)+buf.ScrollX, buf.TabSize)
		pos := buffer.Cursor{Line: line, Col: col}

		switch {
		case ev.Modifiers()&tcell.ModShift != 0:
			buf.Select(func(b *buffer.Buffer) { b.Cursor = pos })
		case e.mouseDown:
			// dragging extends from where the button went down
			if pos != e.mouseAnchor {
				sel := buffer.NewSelection(e.mouseAnchor, pos)
				buf.Selection = &sel
				buf.Cursor = pos
			}
		default:
			buf.SetCursor(pos.Line, pos.Col)
			e.mouseDown = true
			e.mouseAnchor = buf.Cursor
		}
		e.mouseScrolling = false
		e.suggestion.Hide()
	case btn == tcell.ButtonNone:
		e.mouseDown = false
	}
}

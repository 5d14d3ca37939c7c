package editor

import (
	"fmt"
	"path"
	"strings"

	"go.uber.org/zap"

	"void/buffer"
	"void/config"
	"void/ui"
	"void/workspace"
)

const editorConfigName = ".editorconfig"

func (e *Editor) activeBuffer() *buffer.Buffer {
	ent, ok := e.ws.Active()
	if !ok {
		return nil
	}
	return e.bufferFor(ent)
}

// bufferFor returns the editing buffer for an open file, creating it from
// the stored content the first time.
func (e *Editor) bufferFor(ent workspace.Entity) *buffer.Buffer {
	if buf, ok := e.buffers[ent.ID]; ok {
		return buf
	}
	buf := buffer.New(e.cfg.TabSize)
	buf.SetContent(ent.Content)
	buf.Language = ent.Language
	e.applyIndent(buf, ent)
	e.buffers[ent.ID] = buf
	return buf
}

// applyIndent sets indentation from the settings file, overridden by a
// .editorconfig at the workspace root when one exists.
func (e *Editor) applyIndent(buf *buffer.Buffer, ent workspace.Entity) {
	buf.TabSize = e.cfg.LanguageTabSize(ent.Language)
	buf.UseTabs = e.cfg.LanguageUseTabs(ent.Language)
	buf.AutoClose = e.cfg.AutoClose

	for _, root := range e.ws.Snapshot().All() {
		if root.ParentID != "" || root.IsFolder() || root.Name != editorConfigName {
			continue
		}
		ind, ok := config.ParseIndent(root.Content, ent.Name)
		if !ok {
			return
		}
		buf.UseTabs = ind.UseTabs
		if ind.Size > 0 {
			buf.TabSize = ind.Size
		}
		return
	}
}

// syncActive pushes the active buffer into the store when it differs.
func (e *Editor) syncActive() {
	ent, ok := e.ws.Active()
	if !ok {
		return
	}
	buf, ok := e.buffers[ent.ID]
	if !ok {
		return
	}
	if !sameText(ent.Content, buf) {
		e.ws.Edit(ent.ID, buf.Content())
	}
	e.suggestion.Hide()
}

// sameText reports whether buf holds content. Buffers keep LF line
// endings, so CRLF content matches its normalized form.
func sameText(content string, buf *buffer.Buffer) bool {
	return strings.ReplaceAll(content, "\r\n", "\n") == buf.Content()
}

func (e *Editor) openFile(id workspace.ID) {
	ent, ok := e.ws.Get(id)
	if !ok || ent.IsFolder() {
		return
	}
	e.bufferFor(ent)
	e.ws.Select(id)
	e.fileTree.SelectID(id)
	e.suggestion.Hide()
	e.log.Debug("file opened", zap.String("path", ent.Path))
}

// closeFile closes a tab, asking first when the file has unsaved edits.
func (e *Editor) closeFile(id workspace.ID) {
	ent, ok := e.ws.Get(id)
	if !ok {
		return
	}
	if !ent.Modified {
		e.ws.Close(id)
		return
	}
	e.confirm(fmt.Sprintf("Save changes to %s before closing?", ent.Name), func(yes bool) {
		if yes {
			e.ws.Save(id)
		}
		e.ws.Close(id)
	})
}

func (e *Editor) closeActive() {
	if ent, ok := e.ws.Active(); ok {
		e.closeFile(ent.ID)
	}
}

func (e *Editor) save() {
	ent, ok := e.ws.Active()
	if !ok {
		e.setTemporaryMessage("No file to save")
		return
	}
	e.syncActive()
	e.ws.Save(ent.ID)
	e.setTemporaryMessage("Saved " + ent.Path)
}

func (e *Editor) saveAll() {
	e.syncActive()
	n := e.ws.SaveAll()
	e.setTemporaryMessage(fmt.Sprintf("Saved %d file(s)", n))
}

// explorer

func (e *Editor) promptCreate(kind workspace.Kind, parent workspace.ID) {
	label := "New file: "
	if kind == workspace.Folder {
		label = "New folder: "
	}
	if p, ok := e.ws.Get(parent); ok {
		label = fmt.Sprintf("New %s in %s/: ", kind, p.Path)
	}
	e.prompt(label, "", func(name string) {
		var id workspace.ID
		if kind == workspace.Folder {
			id = e.ws.CreateFolder(name, parent)
		} else {
			id = e.ws.CreateFile(name, parent)
		}
		if id == "" {
			e.setTemporaryMessage(fmt.Sprintf("Cannot create %q", name))
			return
		}
		e.fileTree.SelectID(id)
		if kind == workspace.File {
			e.openFile(id)
			e.focusTarget = focusEditor
			e.updateFocus()
		}
	})
}

func (e *Editor) promptRename(id workspace.ID) {
	ent, ok := e.ws.Get(id)
	if !ok {
		return
	}
	e.prompt("Rename to: ", ent.Name, func(name string) {
		if name == ent.Name {
			return
		}
		if !e.ws.Rename(id, name) {
			e.setTemporaryMessage(fmt.Sprintf("Cannot rename to %q", name))
			return
		}
		e.setTemporaryMessage("Renamed to " + path.Join(path.Dir(ent.Path), name))
	})
}

func (e *Editor) promptDelete(id workspace.ID) {
	ent, ok := e.ws.Get(id)
	if !ok {
		return
	}
	question := fmt.Sprintf("Delete %s?", ent.Path)
	if ent.IsFolder() && len(ent.ChildIDs) > 0 {
		question = fmt.Sprintf("Delete %s and everything in it?", ent.Path)
	}
	e.confirm(question, func(yes bool) {
		if yes && e.ws.Delete(id) {
			e.setTemporaryMessage("Deleted " + ent.Path)
		}
	})
}

// dialogs

func (e *Editor) prompt(label, initial string, submit func(string)) {
	d := ui.NewInputDialog(label, initial)
	d.Theme = e.cfg.GetTheme()
	d.OnSubmit = func(v string) {
		e.dialog = nil
		submit(v)
	}
	d.OnCancel = func() { e.dialog = nil }
	e.dialog = d
}

func (e *Editor) confirm(question string, answer func(bool)) {
	d := ui.NewConfirmDialog(question)
	d.Theme = e.cfg.GetTheme()
	d.OnConfirm = func(yes bool) {
		e.dialog = nil
		answer(yes)
	}
	d.OnCancel = func() { e.dialog = nil }
	e.dialog = d
}

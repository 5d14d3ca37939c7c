package editor

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"void/assistant"
	"void/compile"
	"void/config"
	"void/task"
	"void/ui"
	"void/workspace"
)

// compile

func (e *Editor) compileActive() {
	ent, ok := e.ws.Active()
	if !ok {
		e.setTemporaryMessage("No active file to compile")
		return
	}
	e.syncActive()
	ent, _ = e.ws.Get(ent.ID)

	src := compile.Source{Name: ent.Name, Language: ent.Language, Content: ent.Content}
	running := e.runner.Start(src, func(res compile.Result, h task.Handle) {
		e.post(&compileEvent{when: time.Now(), result: res, handle: h})
	})
	e.showResult(running)
	e.showPanel(panelOutput)
	e.setTemporaryMessage(assistant.RunCommand("compile"))
}

func (e *Editor) applyCompileResult(ev *compileEvent) {
	if !ev.handle.Current() {
		e.log.Debug("stale compile result dropped")
		return
	}
	e.showResult(ev.result)
	switch ev.result.Status {
	case compile.Error:
		e.setTemporaryMessage("Compilation failed")
	default:
		e.setTemporaryMessage("Compilation finished")
	}
}

func (e *Editor) showResult(res compile.Result) {
	e.output.SetLines(ui.OutputLines(res))
	e.output.Badge, e.output.Badged = ui.StatusBadge(res.Status)
}

func (e *Editor) cancelCompile() bool {
	if !e.runner.Cancel() {
		return false
	}
	e.output.SetLines(append(e.output.Lines(), ui.Line{Text: "Compilation cancelled.", Kind: ui.LineMuted}))
	e.output.Badge, e.output.Badged = "", ui.LinePlain
	e.setTemporaryMessage("Compilation cancelled")
	return true
}

// preview

func (e *Editor) togglePreview() {
	if e.panel == panelPreview {
		e.showPanel(panelNone)
		return
	}
	e.syncActive()
	e.showPanel(panelPreview)
	e.refreshPreview(e.ws.Snapshot())
}

func (e *Editor) refreshPreview(s *workspace.Store) {
	doc, ok := e.resolver.Resolve(s)
	if !ok {
		e.lastPreview = ""
		e.previewOut.SetLines(nil)
		e.previewOut.Badge = ""
		return
	}
	if doc == e.lastPreview {
		return
	}
	e.lastPreview = doc
	e.previewOut.SetLines([]ui.Line{{Text: doc, Kind: ui.LineCode}})
	e.previewOut.Badge, e.previewOut.Badged = e.resolver.Entry, ui.LineAccent
}

// exportPreview writes the merged document to a temp file a browser can
// open.
func (e *Editor) exportPreview() {
	doc, ok := e.resolver.Resolve(e.ws.Snapshot())
	if !ok {
		e.setTemporaryMessage("No " + e.resolver.Entry + " in the workspace")
		return
	}
	f, err := os.CreateTemp("", "void-preview-*.html")
	if err != nil {
		e.log.Warn("preview export failed", zap.Error(err))
		e.setTemporaryMessage("Preview export failed: " + err.Error())
		return
	}
	defer f.Close()
	if _, err := f.WriteString(doc); err != nil {
		e.log.Warn("preview export failed", zap.Error(err))
		e.setTemporaryMessage("Preview export failed: " + err.Error())
		return
	}
	e.setTemporaryMessage("Preview written to " + f.Name())
}

// assistant

func (e *Editor) promptAssistant() {
	e.prompt("Ask AI: ", "", e.ask)
}

// ask sends text to the assistant with the active file and selection as
// context.
func (e *Editor) ask(text string) {
	req := assistant.Request{Text: text}
	if ent, ok := e.ws.Active(); ok {
		e.syncActive()
		ent, _ = e.ws.Get(ent.ID)
		req.File = &assistant.FileContext{Name: ent.Name, Language: ent.Language, Content: ent.Content}
		if buf := e.activeBuffer(); buf != nil {
			req.Selection = buf.SelectedText()
		}
	}
	if !e.chat.Send(req, func(m assistant.Message) {
		e.post(&replyEvent{when: time.Now(), msg: m})
	}) {
		return
	}
	e.showPanel(panelChat)
	e.refreshChat()
}

func (e *Editor) applyReply(ev *replyEvent) {
	e.refreshChat()
	if ev.msg.Code != "" {
		e.setTemporaryMessage("Code ready: Ctrl+G insert, Ctrl+R replace, Ctrl+L copy")
	}
}

func (e *Editor) stopAssistant() bool {
	if !e.chat.Stop() {
		return false
	}
	e.refreshChat()
	return true
}

func (e *Editor) refreshChat() {
	e.chatPanel.SetLines(ui.TranscriptLines(e.chat.Messages(), e.chat.Busy()))
}

// codeAction applies the last assistant code block to the active buffer.
func (e *Editor) codeAction(replace bool) {
	code, ok := e.chat.LastCode()
	if !ok {
		e.setTemporaryMessage("No code from the assistant yet")
		return
	}
	buf := e.activeBuffer()
	if buf == nil {
		e.setTemporaryMessage("Open a file to insert code")
		return
	}
	if replace {
		buf.ReplaceSelection(code)
		e.setTemporaryMessage("Replaced selection with code")
	} else {
		buf.InsertText(code)
		e.setTemporaryMessage("Inserted code")
	}
	e.syncActive()
}

func (e *Editor) copyCode() {
	code, ok := e.chat.LastCode()
	if !ok {
		e.setTemporaryMessage("No code from the assistant yet")
		return
	}
	e.copyText(code, "Code copied to clipboard")
}

func (e *Editor) copyText(text, done string) {
	if err := e.clip.Write(text); err != nil {
		e.setTemporaryMessage("Copied (internal clipboard only)")
		return
	}
	e.setTemporaryMessage(done)
}

// paletteCommand runs one of the assistant palette entries: the canned
// status goes to the status line, and the analysis ones also ask the
// assistant about the active file.
func (e *Editor) paletteCommand(name string) {
	e.setTemporaryMessage(assistant.RunCommand(name))
	switch name {
	case "explain", "optimize", "debug":
		if _, ok := e.ws.Active(); ok {
			e.ask(strings.ToUpper(name[:1]) + name[1:] + " this code")
		}
	}
}

// suggest offers an inline completion for the text before the cursor.
func (e *Editor) suggest() {
	if !e.cfg.InlineCompletion {
		return
	}
	buf := e.activeBuffer()
	if buf == nil || buf.Selection != nil {
		return
	}
	text, ok := assistant.Complete(buf.CurrentLine())
	if !ok {
		e.suggestion.Hide()
		return
	}
	// the cell position is filled in when the editor renders
	e.suggestion.Show(text, -1, -1)
}

// palette and pickers

func (e *Editor) commands() []ui.Command {
	return []ui.Command{
		{Name: "Save", Shortcut: "Ctrl+S", Action: e.save},
		{Name: "Save All", Action: e.saveAll},
		{Name: "Close Tab", Shortcut: "Ctrl+W", Action: e.closeActive},
		{Name: "Go to File", Shortcut: "Ctrl+O", Action: e.openQuickOpen},
		{Name: "New File", Shortcut: "n", Action: func() { e.promptCreate(workspace.File, e.newEntryParent()) }},
		{Name: "New Folder", Shortcut: "N", Action: func() { e.promptCreate(workspace.Folder, e.newEntryParent()) }},
		{Name: "Compile", Shortcut: "Ctrl+B", Action: e.compileActive},
		{Name: "Cancel Compilation", Action: func() { e.cancelCompile() }},
		{Name: "Toggle Preview", Shortcut: "Ctrl+P", Action: e.togglePreview},
		{Name: "Export Preview to File", Action: e.exportPreview},
		{Name: "AI: Ask", Shortcut: "Ctrl+K", Action: e.promptAssistant},
		{Name: "AI: Explain Code", Action: func() { e.paletteCommand("explain") }},
		{Name: "AI: Optimize Code", Action: func() { e.paletteCommand("optimize") }},
		{Name: "AI: Debug Code", Action: func() { e.paletteCommand("debug") }},
		{Name: "AI: Refactor Code", Action: func() { e.paletteCommand("refactor") }},
		{Name: "AI: Generate Code", Action: func() { e.paletteCommand("generate") }},
		{Name: "AI: Document Code", Action: func() { e.paletteCommand("document") }},
		{Name: "AI: Insert Code", Shortcut: "Ctrl+G", Action: func() { e.codeAction(false) }},
		{Name: "AI: Replace Selection with Code", Shortcut: "Ctrl+R", Action: func() { e.codeAction(true) }},
		{Name: "AI: Copy Code", Shortcut: "Ctrl+L", Action: e.copyCode},
		{Name: "AI: Stop Response", Shortcut: "Esc", Action: func() { e.stopAssistant() }},
		{Name: "Show Output", Action: func() { e.showPanel(panelOutput) }},
		{Name: "Show Assistant", Action: func() { e.showPanel(panelChat) }},
		{Name: "Toggle Panel", Shortcut: "Ctrl+J", Action: e.cyclePanel},
		{Name: "Toggle Explorer", Action: e.toggleTree},
		{Name: "Focus Explorer", Shortcut: "Ctrl+E", Action: e.toggleTreeFocus},
		{Name: "Toggle Theme", Shortcut: "Ctrl+T", Action: e.toggleTheme},
		{Name: "Help", Shortcut: "F1", Action: e.showHelp},
		{Name: "Quit", Shortcut: "Ctrl+Q", Action: e.requestQuit},
	}
}

func (e *Editor) openPalette() {
	e.openPicker(ui.NewCommandPalette(e.commands(), e.cfg.GetTheme()))
}

func (e *Editor) openQuickOpen() {
	e.openPicker(ui.NewQuickOpen(e.ws.Snapshot(), func(id workspace.ID) {
		e.openFile(id)
		e.focusTarget = focusEditor
		e.updateFocus()
	}, e.cfg.GetTheme()))
}

func (e *Editor) openPicker(p *ui.Picker) {
	p.OnClose = func() { e.picker = nil }
	e.picker = p
}

func (e *Editor) showHelp() {
	d := ui.NewHelpDialog()
	d.Theme = e.cfg.GetTheme()
	d.OnCancel = func() { e.dialog = nil }
	e.dialog = d
}

// newEntryParent is the folder new entries go in when not created from the
// explorer: the active file's folder, or the root.
func (e *Editor) newEntryParent() workspace.ID {
	if ent, ok := e.ws.Active(); ok {
		return ent.ParentID
	}
	return ""
}

func (e *Editor) toggleTree() {
	e.treeOpen = !e.treeOpen
	if !e.treeOpen && e.focusTarget == focusTree {
		e.focusTarget = focusEditor
	}
	e.updateFocus()
}

func (e *Editor) toggleTreeFocus() {
	if e.focusTarget == focusTree {
		e.focusTarget = focusEditor
	} else {
		e.treeOpen = true
		e.focusTarget = focusTree
	}
	e.updateFocus()
}

func (e *Editor) requestQuit() {
	var unsaved []string
	for _, ent := range e.ws.Snapshot().All() {
		if ent.Modified {
			unsaved = append(unsaved, ent.Name)
		}
	}
	if len(unsaved) == 0 {
		e.quit = true
		return
	}
	e.confirm(fmt.Sprintf("%d unsaved file(s) will be lost. Quit anyway?", len(unsaved)), func(yes bool) {
		e.quit = yes
	})
}

// settings

func (e *Editor) toggleTheme() {
	e.cfg.Theme = e.cfg.NextTheme()
	e.applyTheme()
	e.setTemporaryMessage("Theme: " + e.cfg.Theme)
}

func (e *Editor) applyTheme() {
	theme := e.cfg.GetTheme()
	e.fileTree.Theme = theme
	e.tabBar.Theme = theme
	e.statusBar.Theme = theme
	e.output.Theme = theme
	e.chatPanel.Theme = theme
	e.previewOut.Theme = theme
	e.suggestion.Theme = theme
	if e.dialog != nil {
		e.dialog.Theme = theme
	}
	if e.picker != nil {
		e.picker.Theme = theme
	}
}

// applyConfig takes over settings reloaded from disk. Timer delays are
// fixed when the runner and session are built and apply from the next
// start.
func (e *Editor) applyConfig(cfg *config.Config) {
	e.cfg = cfg
	e.log.SetLevel(cfg.LogLevel)
	e.resolver.Entry = cfg.EntryFile
	e.applyTheme()
	for id, buf := range e.buffers {
		if ent, ok := e.ws.Get(id); ok {
			e.applyIndent(buf, ent)
		}
	}
	if e.panel == panelPreview {
		e.lastPreview = ""
		e.refreshPreview(e.ws.Snapshot())
	}
	e.log.Info("settings reloaded", zap.String("theme", cfg.Theme))
	e.setTemporaryMessage("Settings reloaded")
}

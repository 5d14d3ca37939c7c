// Package editor is the terminal shell around the workspace: it owns the
// screen, routes input to the widgets and applies the results of the
// compile and assistant timers on the UI goroutine.
package editor

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"void/assistant"
	"void/buffer"
	"void/clipboardx"
	"void/compile"
	"void/config"
	"void/highlight"
	"void/logging"
	"void/preview"
	"void/task"
	"void/ui"
	"void/workspace"
)

type Component interface {
	Render(screen tcell.Screen, x, y, width, height int)
	HandleKey(ev *tcell.EventKey) bool
	HandleMouse(ev *tcell.EventMouse) bool
	IsFocused() bool
	SetFocused(bool)
}

const (
	focusEditor = "editor"
	focusTree   = "tree"
	focusPanel  = "panel"
)

// panelKind is what the bottom panel shows.
type panelKind int

const (
	panelNone panelKind = iota
	panelOutput
	panelChat
	panelPreview
)

const messageTTL = 5 * time.Second

type Options struct {
	Config     *config.Config
	ConfigPath string // watched for changes; empty disables live reload
	Workspace  *workspace.Workspace
	Log        *logging.Logger
	Clipboard  *clipboardx.Clipboard
	AfterFunc  task.AfterFunc // timer source for compile and assistant; nil means real timers
}

type Editor struct {
	screen  tcell.Screen
	cfg     *config.Config
	cfgPath string
	log     *logging.Logger

	ws        *workspace.Workspace
	buffers   map[workspace.ID]*buffer.Buffer
	highlight *highlight.Highlighter
	resolver  *preview.Resolver
	runner    *compile.Runner
	chat      *assistant.Session
	clip      *clipboardx.Clipboard

	fileTree   *ui.FileTree
	tabBar     *ui.TabBar
	statusBar  *ui.StatusBar
	output     *ui.Panel
	chatPanel  *ui.Panel
	previewOut *ui.Panel
	dialog     *ui.Dialog
	picker     *ui.Picker
	suggestion *ui.Autocomplete

	panel       panelKind
	treeOpen    bool
	focusTarget string
	quit        bool

	lastPreview string

	statusMessageTime time.Time

	mouseDown      bool
	mouseAnchor    buffer.Cursor
	mouseScrolling bool // wheel moved the view; don't snap back to the cursor

	// post delivers an event to the loop from any goroutine
	post func(tcell.Event)
}

func New(opts Options) *Editor {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	log := opts.Log
	if log == nil {
		log = logging.Nop()
	}
	ws := opts.Workspace
	if ws == nil {
		ws = workspace.New(workspace.WithLogger(log.Logger))
	}
	clip := opts.Clipboard
	if clip == nil {
		clip = clipboardx.New(log.Logger)
	}

	lo, hi := cfg.AssistantDelay()
	sessionOpts := []assistant.Option{assistant.WithDelay(lo, hi), assistant.WithLogger(log.Named("assistant"))}
	runnerOpts := []compile.RunnerOption{compile.WithLogger(log.Named("compile"))}
	if opts.AfterFunc != nil {
		sessionOpts = append(sessionOpts, assistant.WithAfterFunc(opts.AfterFunc))
		runnerOpts = append(runnerOpts, compile.WithAfterFunc(opts.AfterFunc))
	}

	theme := cfg.GetTheme()
	e := &Editor{
		cfg:         cfg,
		cfgPath:     opts.ConfigPath,
		log:         log,
		ws:          ws,
		buffers:     make(map[workspace.ID]*buffer.Buffer),
		highlight:   highlight.New(),
		resolver:    preview.New(cfg.EntryFile, log.Named("preview")),
		runner:      compile.NewRunner(cfg.CompileDelay(), runnerOpts...),
		chat:        assistant.NewSession(sessionOpts...),
		clip:        clip,
		fileTree:    ui.NewFileTree(theme),
		tabBar:      ui.NewTabBar(theme),
		statusBar:   ui.NewStatusBar(theme),
		output:      ui.NewPanel("Output", theme),
		chatPanel:   ui.NewPanel("Assistant", theme),
		previewOut:  ui.NewPanel("Preview", theme),
		suggestion:  ui.NewAutocomplete(theme),
		treeOpen:    true,
		focusTarget: focusEditor,
	}
	e.output.Hint = "Press Ctrl+B to compile the active file."
	e.chatPanel.Hint = "Press Ctrl+K to ask the assistant."
	e.previewOut.Hint = "No " + e.resolver.Entry + " in the workspace."
	e.post = func(ev tcell.Event) {
		if e.screen != nil {
			_ = e.screen.PostEvent(ev)
		}
	}
	e.wireComponents()
	ws.Subscribe(e.onSnapshot)
	e.onSnapshot(ws.Snapshot())
	e.refreshChat()
	return e
}

func (e *Editor) wireComponents() {
	e.tabBar.OnSwitch = func(id workspace.ID) { e.openFile(id) }
	e.tabBar.OnClose = func(id workspace.ID) { e.closeFile(id) }

	e.fileTree.OnOpen = func(id workspace.ID) {
		e.openFile(id)
		e.focusTarget = focusEditor
		e.updateFocus()
	}
	e.fileTree.OnToggle = func(id workspace.ID) { e.ws.ToggleFolder(id) }
	e.fileTree.OnNewFile = func(parent workspace.ID) { e.promptCreate(workspace.File, parent) }
	e.fileTree.OnNewFolder = func(parent workspace.ID) { e.promptCreate(workspace.Folder, parent) }
	e.fileTree.OnRename = e.promptRename
	e.fileTree.OnDelete = e.promptDelete

	e.suggestion.OnAccept = func(text string) {
		if buf := e.activeBuffer(); buf != nil {
			buf.InsertText(text)
			e.syncActive()
		}
	}
}

// Init attaches the editor to a screen that is already initialised.
func (e *Editor) Init(screen tcell.Screen) {
	e.screen = screen
	screen.EnableMouse()
	screen.EnablePaste()
	screen.SetStyle(tcell.StyleDefault)
	screen.Clear()

	if _, ok := e.ws.Active(); !ok {
		e.focusTarget = focusTree
	}
	e.updateFocus()
	e.updateStatus()
}

// Run takes over the terminal until the user quits or ctx ends.
func (e *Editor) Run(ctx context.Context) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	e.Init(screen)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if e.cfgPath != "" {
		err := config.Watch(ctx, e.cfgPath, e.log.Named("config"), func(cfg *config.Config) {
			e.post(&configEvent{cfg: cfg, when: time.Now()})
		})
		if err != nil {
			e.log.Warn("settings live reload disabled", zap.Error(err))
		}
	}
	go func() {
		<-ctx.Done()
		e.post(&quitEvent{when: time.Now()})
	}()

	e.log.Info("editor started", zap.Int("entities", e.ws.Snapshot().Len()))
	for !e.quit {
		e.clearExpiredMessages()
		e.render()
		e.handleEvent(screen.PollEvent())
	}
	e.runner.Cancel()
	e.chat.Stop()
	e.log.Info("editor stopped")
	screen.Clear()
	return nil
}

func (e *Editor) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case nil:
		e.quit = true
	case *tcell.EventResize:
		e.screen.Sync()
	case *tcell.EventKey:
		e.handleKey(ev)
	case *tcell.EventMouse:
		e.handleMouse(ev)
	case *tcell.EventPaste:
		// bracketed paste arrives as ordinary key events in between
	case *compileEvent:
		e.applyCompileResult(ev)
	case *replyEvent:
		e.applyReply(ev)
	case *configEvent:
		e.applyConfig(ev.cfg)
	case *quitEvent:
		e.quit = true
	}
}

// onSnapshot keeps every view of the workspace in step with the store.
// It runs after each mutation on the goroutine that made it.
func (e *Editor) onSnapshot(s *workspace.Store) {
	e.fileTree.Update(s)
	e.tabBar.SetTabs(e.ws.OpenFiles())

	open := make(map[workspace.ID]bool)
	for _, id := range s.Tabs() {
		open[id] = true
	}
	for id, buf := range e.buffers {
		ent, ok := s.Get(id)
		if !ok || !open[id] {
			delete(e.buffers, id)
			e.highlight.Invalidate(string(id))
			continue
		}
		if buf.Language != ent.Language {
			buf.Language = ent.Language
			e.applyIndent(buf, ent)
		}
		// edits are pushed to the store as they happen, so a mismatch means
		// the content was replaced from outside the buffer
		if !sameText(ent.Content, buf) {
			buf.SetContent(ent.Content)
		}
	}
	if e.panel == panelPreview {
		e.refreshPreview(s)
	}
}

// modal is the dialog or picker that currently takes all input.
func (e *Editor) modal() Component {
	switch {
	case e.dialog != nil:
		return e.dialog
	case e.picker != nil:
		return e.picker
	}
	return nil
}

func (e *Editor) updateFocus() {
	e.fileTree.SetFocused(e.focusTarget == focusTree)
	if p := e.currentPanel(); p != nil {
		p.SetFocused(e.focusTarget == focusPanel)
	}
}

func (e *Editor) currentPanel() *ui.Panel {
	switch e.panel {
	case panelOutput:
		return e.output
	case panelChat:
		return e.chatPanel
	case panelPreview:
		return e.previewOut
	}
	return nil
}

func (e *Editor) showPanel(kind panelKind) {
	if p := e.currentPanel(); p != nil {
		p.SetFocused(false)
	}
	e.panel = kind
	if kind == panelNone && e.focusTarget == focusPanel {
		e.focusTarget = focusEditor
	}
	e.updateFocus()
}

func (e *Editor) cyclePanel() {
	e.showPanel((e.panel + 1) % (panelPreview + 1))
	if e.panel == panelPreview {
		e.refreshPreview(e.ws.Snapshot())
	}
}

func (e *Editor) updateStatus() {
	sb := e.statusBar
	switch e.focusTarget {
	case focusTree:
		sb.Mode = "TREE"
	case focusPanel:
		sb.Mode = "PANEL"
	default:
		sb.Mode = "EDIT"
	}
	switch {
	case e.runner.Busy():
		sb.State = ui.Compiling
	case e.chat.Busy():
		sb.State = ui.Thinking
	default:
		sb.State = ui.Idle
	}

	ent, ok := e.ws.Active()
	buf := e.activeBuffer()
	if !ok || buf == nil {
		sb.Filename, sb.Language, sb.Modified, sb.SelChars = "", "", false, 0
		return
	}
	sb.Filename = ent.Path
	sb.Modified = ent.Modified
	sb.Language = highlight.DisplayName(ent.Language)
	sb.Line, sb.Col = buf.Cursor.Line, buf.Cursor.Col
	sb.SelChars = len([]rune(buf.SelectedText()))
	if buf.UseTabs {
		sb.TabInfo = "Tabs"
	} else {
		sb.TabInfo = fmt.Sprintf("Spaces: %d", buf.TabSize)
	}
}

// setTemporaryMessage shows msg in the status line for a few seconds.
func (e *Editor) setTemporaryMessage(msg string) {
	e.statusBar.Message = msg
	e.statusMessageTime = time.Now()
}

func (e *Editor) clearExpiredMessages() {
	if !e.statusMessageTime.IsZero() && time.Since(e.statusMessageTime) > messageTTL {
		e.statusBar.Message = ""
		e.statusMessageTime = time.Time{}
	}
}

// layout

func (e *Editor) treeLeft() int {
	if e.treeOpen {
		return e.cfg.TreeWidth
	}
	return 0
}

func (e *Editor) panelLayout() (x, y, w, h int) {
	screenW, screenH := e.screen.Size()
	if e.panel == panelNone {
		return 0, screenH - 1, 0, 0
	}
	x = e.treeLeft()
	w = screenW - x
	h = max(int(float64(screenH-2)*e.cfg.PanelRatio), 3)
	y = screenH - 1 - h
	return
}

func (e *Editor) editorLayout() (x, y, w, h int) {
	screenW, _ := e.screen.Size()
	x = e.treeLeft()
	y = 1
	w = screenW - x
	_, py, _, _ := e.panelLayout()
	h = py - y
	return
}

package editor

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"void/assistant"
	"void/clipboardx"
	"void/config"
	"void/highlight"
	"void/task"
	"void/ui"
	"void/workspace"
)

type manualTimer struct {
	fn      func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

type manualTimers struct {
	timers []*manualTimer
}

func (m *manualTimers) after(_ time.Duration, f func()) task.Timer {
	t := &manualTimer{fn: f}
	m.timers = append(m.timers, t)
	return t
}

// fire runs every timer that has not been stopped.
func (m *manualTimers) fire() {
	pending := m.timers
	m.timers = nil
	for _, t := range pending {
		if !t.stopped {
			t.stopped = true
			t.fn()
		}
	}
}

type memBackend struct{ text string }

func (b *memBackend) Name() string            { return "memory" }
func (b *memBackend) Write(text string) error { b.text = text; return nil }
func (b *memBackend) Read() (string, error)   { return b.text, nil }

type harness struct {
	*Editor
	timers *manualTimers
	posted []tcell.Event
	screen tcell.SimulationScreen
	clip   *memBackend
}

func newHarness(t *testing.T, cfg *config.Config, entries ...workspace.SeedEntry) *harness {
	t.Helper()
	n := 0
	ws := workspace.New(workspace.WithIDGenerator(func() workspace.ID {
		n++
		return workspace.ID(fmt.Sprintf("e%d", n))
	}))
	ws.Seed(entries)
	if cfg == nil {
		cfg = config.Default()
	}

	h := &harness{timers: &manualTimers{}, clip: &memBackend{}}
	h.Editor = New(Options{
		Config:    cfg,
		Workspace: ws,
		Clipboard: clipboardx.New(nil, h.clip),
		AfterFunc: h.timers.after,
	})

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	screen.SetSize(100, 30)
	t.Cleanup(screen.Fini)
	h.screen = screen
	h.Init(screen)
	h.post = func(ev tcell.Event) { h.posted = append(h.posted, ev) }
	return h
}

func (h *harness) key(k tcell.Key) {
	h.handleEvent(tcell.NewEventKey(k, 0, tcell.ModNone))
}

func (h *harness) typeText(s string) {
	for _, r := range s {
		h.handleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

// deliver feeds posted timer events back into the loop.
func (h *harness) deliver() {
	events := h.posted
	h.posted = nil
	for _, ev := range events {
		h.handleEvent(ev)
	}
}

func (h *harness) entity(t *testing.T, path string) workspace.Entity {
	t.Helper()
	for _, e := range h.ws.Snapshot().All() {
		if e.Path == path {
			return e
		}
	}
	t.Fatalf("no entity at %s", path)
	return workspace.Entity{}
}

func TestTypingEditsActiveFile(t *testing.T) {
	h := newHarness(t, nil, workspace.SeedEntry{Path: "a.js", Content: "x", Active: true})

	h.typeText("y")
	a := h.entity(t, "a.js")
	if a.Content != "yx" || !a.Modified {
		t.Fatalf("unexpected entity %q modified=%v", a.Content, a.Modified)
	}

	h.key(tcell.KeyCtrlS)
	if h.entity(t, "a.js").Modified {
		t.Fatalf("save should clear the modified flag")
	}
	if !strings.Contains(h.statusBar.Message, "Saved a.js") {
		t.Fatalf("unexpected status %q", h.statusBar.Message)
	}
}

func TestUndoSyncsWorkspace(t *testing.T) {
	h := newHarness(t, nil, workspace.SeedEntry{Path: "a.js", Content: "", Active: true})

	h.typeText("abc")
	h.key(tcell.KeyCtrlZ)
	if got := h.entity(t, "a.js").Content; got != "" {
		t.Fatalf("undo should restore empty content, got %q", got)
	}
	h.key(tcell.KeyCtrlY)
	if got := h.entity(t, "a.js").Content; got != "abc" {
		t.Fatalf("redo should restore typing, got %q", got)
	}
}

func TestCRLFFileStaysInSync(t *testing.T) {
	h := newHarness(t, nil,
		workspace.SeedEntry{Path: "src", Folder: true},
		workspace.SeedEntry{Path: "a.js", Content: "one\r\ntwo\r\n", Active: true},
	)

	h.key(tcell.KeyDown)
	h.key(tcell.KeyRight)
	h.ws.ToggleFolder(h.entity(t, "src").ID)
	if c := h.activeBuffer().Cursor; c.Line != 1 || c.Col != 1 {
		t.Fatalf("unrelated mutation reset the cursor to %+v", c)
	}

	h.key(tcell.KeyCtrlB)
	a := h.entity(t, "a.js")
	if a.Modified || a.Content != "one\r\ntwo\r\n" {
		t.Fatalf("compile rewrote an untouched file: %q modified=%v", a.Content, a.Modified)
	}

	h.typeText("x")
	if got := h.entity(t, "a.js").Content; got != "one\ntxwo\n" {
		t.Fatalf("edit should store the buffer text, got %q", got)
	}
}

func TestCompileResultArrivesThroughEvent(t *testing.T) {
	h := newHarness(t, nil, workspace.SeedEntry{Path: "a.js", Content: "console.log('hi')", Active: true})

	h.key(tcell.KeyCtrlB)
	if h.panel != panelOutput {
		t.Fatalf("compile should show the output panel")
	}
	if !strings.Contains(h.output.Text(), "Starting compilation for a.js") {
		t.Fatalf("expected running output, got %q", h.output.Text())
	}
	if h.statusBar.State != ui.Compiling {
		t.Fatalf("status bar should show compiling, got %v", h.statusBar.State)
	}

	h.timers.fire()
	if len(h.posted) != 1 {
		t.Fatalf("expected one posted result, got %d", len(h.posted))
	}
	h.deliver()

	out := h.output.Text()
	if !strings.Contains(out, "> hi") || !strings.Contains(out, "Process finished.") {
		t.Fatalf("unexpected output %q", out)
	}
	if h.output.Badge != "✓ success" {
		t.Fatalf("unexpected badge %q", h.output.Badge)
	}
}

func TestStaleCompileResultIsDropped(t *testing.T) {
	h := newHarness(t, nil, workspace.SeedEntry{Path: "a.js", Content: "let a = {", Active: true})

	h.key(tcell.KeyCtrlB)
	h.timers.fire()
	stale := h.posted
	h.posted = nil

	// a second run supersedes the first before its result is applied
	h.key(tcell.KeyCtrlB)
	for _, ev := range stale {
		h.handleEvent(ev)
	}
	if h.output.Badge != "● running" {
		t.Fatalf("stale result should be ignored, badge %q", h.output.Badge)
	}

	h.timers.fire()
	h.deliver()
	if !strings.Contains(h.output.Text(), "Unmatched curly braces") {
		t.Fatalf("unexpected output %q", h.output.Text())
	}
}

func TestEscCancelsCompile(t *testing.T) {
	h := newHarness(t, nil, workspace.SeedEntry{Path: "a.py", Content: "print(1)", Active: true})

	h.key(tcell.KeyCtrlB)
	h.key(tcell.KeyEscape)
	if h.runner.Busy() {
		t.Fatalf("escape should cancel the run")
	}
	h.timers.fire()
	if len(h.posted) != 0 {
		t.Fatalf("cancelled run should not post, got %d", len(h.posted))
	}
}

func TestAssistantReplyAndInsertCode(t *testing.T) {
	h := newHarness(t, nil, workspace.SeedEntry{Path: "App.tsx", Content: "", Active: true})

	h.ask("make a react counter")
	if h.panel != panelChat || !h.chat.Busy() {
		t.Fatalf("expected the chat panel with a pending reply")
	}
	if !strings.Contains(h.chatPanel.Text(), "AI is thinking") {
		t.Fatalf("transcript should show the thinking line")
	}

	h.timers.fire()
	h.deliver()
	if !strings.Contains(h.chatPanel.Text(), "React counter component") {
		t.Fatalf("reply missing from transcript:\n%s", h.chatPanel.Text())
	}

	h.key(tcell.KeyCtrlG)
	if got := h.entity(t, "App.tsx").Content; !strings.Contains(got, "useState") {
		t.Fatalf("code should be inserted, got %q", got)
	}

	h.key(tcell.KeyCtrlL)
	if !strings.Contains(h.clip.text, "useState") {
		t.Fatalf("code should be on the clipboard, got %q", h.clip.text)
	}
}

func TestEscStopsAssistant(t *testing.T) {
	h := newHarness(t, nil, workspace.SeedEntry{Path: "a.js", Active: true})

	h.ask("hello")
	h.key(tcell.KeyEscape)

	msgs := h.chat.Messages()
	if last := msgs[len(msgs)-1]; last.Role != assistant.Assistant || last.Content != "Response stopped." {
		t.Fatalf("unexpected last message %+v", last)
	}
	h.timers.fire()
	if len(h.posted) != 0 {
		t.Fatalf("stopped reply should not arrive")
	}
}

func TestReplaceSelectionWithoutCode(t *testing.T) {
	h := newHarness(t, nil, workspace.SeedEntry{Path: "a.js", Content: "x", Active: true})

	h.key(tcell.KeyCtrlR)
	if h.entity(t, "a.js").Content != "x" {
		t.Fatalf("nothing should change without a code block")
	}
	if h.statusBar.Message != "No code from the assistant yet" {
		t.Fatalf("unexpected status %q", h.statusBar.Message)
	}
}

func TestClosingModifiedFileAsksToSave(t *testing.T) {
	h := newHarness(t, nil,
		workspace.SeedEntry{Path: "a.js", Open: true},
		workspace.SeedEntry{Path: "b.js", Active: true},
	)

	h.typeText("z")
	h.key(tcell.KeyCtrlW)
	if h.dialog == nil {
		t.Fatalf("expected a confirm dialog")
	}
	h.typeText("y")
	if h.dialog != nil {
		t.Fatalf("dialog should close after answering")
	}

	b := h.entity(t, "b.js")
	if b.Open || b.Modified {
		t.Fatalf("b.js should be saved and closed: open=%v modified=%v", b.Open, b.Modified)
	}
	if active, ok := h.ws.Active(); !ok || active.Name != "a.js" {
		t.Fatalf("a.js should become active")
	}
}

func TestExplorerCreatesFile(t *testing.T) {
	h := newHarness(t, nil, workspace.SeedEntry{Path: "a.js", Active: true})

	h.key(tcell.KeyCtrlE)
	if h.focusTarget != focusTree {
		t.Fatalf("expected tree focus, got %s", h.focusTarget)
	}
	h.typeText("n")
	if h.dialog == nil {
		t.Fatalf("expected a name prompt")
	}
	h.typeText("b.css")
	h.key(tcell.KeyEnter)

	b := h.entity(t, "b.css")
	if !b.Active || b.Content != highlight.Template("b.css") {
		t.Fatalf("new file should be active with its template, got %+v", b)
	}
	if h.focusTarget != focusEditor {
		t.Fatalf("focus should move to the editor")
	}
}

func TestExplorerRejectsBadName(t *testing.T) {
	h := newHarness(t, nil, workspace.SeedEntry{Path: "a.js", Active: true})

	h.promptCreate(workspace.File, "")
	h.typeText("x/y")
	h.key(tcell.KeyEnter)
	if !strings.Contains(h.statusBar.Message, "Cannot create") {
		t.Fatalf("unexpected status %q", h.statusBar.Message)
	}
	if h.ws.Snapshot().Len() != 1 {
		t.Fatalf("nothing should be created")
	}
}

func TestPreviewFollowsEdits(t *testing.T) {
	h := newHarness(t, nil,
		workspace.SeedEntry{Path: "index.html", Content: `<link rel="stylesheet" href="style.css">`, Active: true},
		workspace.SeedEntry{Path: "style.css", Content: "body{color:red}"},
	)

	h.key(tcell.KeyCtrlP)
	if h.panel != panelPreview {
		t.Fatalf("expected the preview panel")
	}
	if got := h.previewOut.Text(); got != "<style>body{color:red}</style>" {
		t.Fatalf("unexpected preview %q", got)
	}

	h.ws.Edit(h.entity(t, "style.css").ID, "p{}")
	if got := h.previewOut.Text(); got != "<style>p{}</style>" {
		t.Fatalf("preview should follow edits, got %q", got)
	}

	h.key(tcell.KeyCtrlP)
	if h.panel != panelNone {
		t.Fatalf("second toggle should hide the preview")
	}
}

func TestInlineSuggestionAcceptedWithTab(t *testing.T) {
	cfg := config.Default()
	cfg.AutoClose = false
	h := newHarness(t, cfg, workspace.SeedEntry{Path: "a.js", Active: true})

	h.typeText("console.log(")
	if !h.suggestion.Visible {
		t.Fatalf("expected a suggestion")
	}
	h.key(tcell.KeyTab)
	if got := h.entity(t, "a.js").Content; got != "console.log('Hello, World!');" {
		t.Fatalf("unexpected content %q", got)
	}
	if h.suggestion.Visible {
		t.Fatalf("suggestion should be gone")
	}
}

func TestEditorConfigSetsIndent(t *testing.T) {
	h := newHarness(t, nil,
		workspace.SeedEntry{Path: ".editorconfig", Content: "[*.js]\nindent_style = tab\n"},
		workspace.SeedEntry{Path: "a.js", Active: true},
	)

	buf := h.activeBuffer()
	if buf == nil || !buf.UseTabs {
		t.Fatalf("expected tab indentation from .editorconfig")
	}
}

func TestConfigReloadAppliesTheme(t *testing.T) {
	h := newHarness(t, nil, workspace.SeedEntry{Path: "a.js", Active: true})

	cfg := config.Default()
	cfg.Theme = "light"
	h.handleEvent(&configEvent{cfg: cfg, when: time.Now()})
	if h.tabBar.Theme != config.Themes["light"] {
		t.Fatalf("theme should be applied to widgets")
	}
}

func TestRenderShowsActiveFile(t *testing.T) {
	h := newHarness(t, nil, workspace.SeedEntry{Path: "a.js", Content: "let x", Active: true})
	h.render()

	// tree is 28 wide, the gutter for a one-line file is 3
	if r, _, _, _ := h.screen.GetContent(29, 1); r != '1' {
		t.Fatalf("expected line number, got %q", r)
	}
	if r, _, _, _ := h.screen.GetContent(31, 1); r != 'l' {
		t.Fatalf("expected file text, got %q", r)
	}
	x, y, visible := h.screen.GetCursor()
	if !visible || x != 31 || y != 1 {
		t.Fatalf("cursor at %d,%d visible=%v", x, y, visible)
	}
}

func TestMouseClickPlacesCursor(t *testing.T) {
	h := newHarness(t, nil, workspace.SeedEntry{Path: "a.js", Content: "abc\n\tdef", Active: true})
	h.render()

	// the tab on line 2 spans four cells
	h.handleEvent(tcell.NewEventMouse(31+5, 2, tcell.Button1, tcell.ModNone))
	h.handleEvent(tcell.NewEventMouse(31+5, 2, tcell.ButtonNone, tcell.ModNone))
	buf := h.activeBuffer()
	if buf.Cursor.Line != 1 || buf.Cursor.Col != 2 {
		t.Fatalf("unexpected cursor %+v", buf.Cursor)
	}
}

func TestQuitAsksWhenFilesAreModified(t *testing.T) {
	h := newHarness(t, nil, workspace.SeedEntry{Path: "a.js", Active: true})

	h.typeText("x")
	h.key(tcell.KeyCtrlQ)
	if h.quit || h.dialog == nil {
		t.Fatalf("quit should ask first")
	}
	h.typeText("n")
	if h.quit {
		t.Fatalf("answering no should keep running")
	}

	h.key(tcell.KeyCtrlS)
	h.key(tcell.KeyCtrlQ)
	if !h.quit {
		t.Fatalf("quit should be immediate with nothing unsaved")
	}
}

func TestByteColAt(t *testing.T) {
	cases := []struct {
		line   string
		target int
		want   int
	}{
		{"abc", 0, 0},
		{"abc", 2, 2},
		{"abc", 9, 3},
		{"\tx", 2, 0},
		{"\tx", 4, 1},
		{"日本", 1, 0},
		{"日本", 2, 3},
	}
	for _, c := range cases {
		if got := byteColAt(c.line, c.target, 4); got != c.want {
			t.Errorf("byteColAt(%q, %d) = %d, want %d", c.line, c.target, got, c.want)
		}
	}
	if w := displayWidth("\tab日", 4); w != 8 {
		t.Errorf("displayWidth = %d, want 8", w)
	}
}

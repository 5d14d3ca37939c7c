package ui

import (
	"strings"
	"testing"
	"time"

	"void/assistant"
	"void/compile"
	"void/workspace"

	"github.com/gdamore/tcell/v2"
)

func typeString(h interface{ HandleKey(*tcell.EventKey) bool }, s string) {
	for _, r := range s {
		h.HandleKey(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func TestInputDialogEditsAndSubmits(t *testing.T) {
	d := NewInputDialog("Rename: ", "old.js")
	var got string
	d.OnSubmit = func(v string) { got = v }

	for i := 0; i < 6; i++ {
		d.HandleKey(tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone))
	}
	typeString(d, "new.js")
	d.HandleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	if got != "new.js" {
		t.Fatalf("expected new.js, got %q", got)
	}
}

func TestInputDialogCursorInsert(t *testing.T) {
	d := NewInputDialog("> ", "ac")
	d.HandleKey(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	typeString(d, "b")
	if d.Input != "abc" || d.Cursor != 2 {
		t.Fatalf("unexpected input %q cursor %d", d.Input, d.Cursor)
	}
}

func TestConfirmDialog(t *testing.T) {
	d := NewConfirmDialog("Delete src?")
	answers := []bool{}
	d.OnConfirm = func(yes bool) { answers = append(answers, yes) }
	cancelled := false
	d.OnCancel = func() { cancelled = true }

	typeString(d, "xyn")
	d.HandleKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	if len(answers) != 2 || !answers[0] || answers[1] {
		t.Fatalf("unexpected answers %v", answers)
	}
	if !cancelled {
		t.Fatalf("escape should cancel")
	}
}

func TestPickerFiltersAndRuns(t *testing.T) {
	ran := ""
	p := NewCommandPalette([]Command{
		{Name: "Compile", Action: func() { ran = "compile" }},
		{Name: "AI: Explain Code", Action: func() { ran = "explain" }},
		{Name: "Toggle Theme", Action: func() { ran = "theme" }},
	}, nil)
	closed := false
	p.OnClose = func() { closed = true }

	if len(p.Filtered) != 3 {
		t.Fatalf("empty query should list everything, got %d", len(p.Filtered))
	}
	typeString(p, "expl")
	if len(p.Filtered) != 1 || p.Filtered[0].Label != "AI: Explain Code" {
		t.Fatalf("unexpected filter result %+v", p.Filtered)
	}
	p.HandleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	if ran != "explain" || !closed {
		t.Fatalf("expected explain to run and the picker to close, ran=%q closed=%v", ran, closed)
	}
}

func TestFuzzyScorePrefersFileName(t *testing.T) {
	inName, _ := fuzzyScore("src/app.js", "app")
	inDir, _ := fuzzyScore("app/main.js", "app")
	if inName <= inDir {
		t.Fatalf("expected file name match to win: %d vs %d", inName, inDir)
	}
	if s, _ := fuzzyScore("index.html", "zzz"); s != 0 {
		t.Fatalf("expected no match, got %d", s)
	}
}

func TestQuickOpenListsFilesByPath(t *testing.T) {
	w, ids := sampleWorkspace()
	var opened string
	p := NewQuickOpen(w.Snapshot(), func(id workspace.ID) { opened = string(id) }, nil)
	var labels []string
	for _, it := range p.Filtered {
		labels = append(labels, it.Label)
	}
	if strings.Join(labels, ",") != "README.md,src/a.js" {
		t.Fatalf("unexpected items %v", labels)
	}
	typeString(p, "a.js")
	p.HandleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	if opened != string(ids["a.js"]) {
		t.Fatalf("expected a.js, got %q", opened)
	}
}

func TestPanelWrapsAndScrolls(t *testing.T) {
	p := NewPanel("Output", nil)
	p.SetLines([]Line{{Text: "one two three four five six"}, {Text: "a\nb"}})
	if got := p.Text(); got != "one two three four five six\na\nb" {
		t.Fatalf("unexpected text %q", got)
	}

	screen := newScreen(t)
	p.Render(screen, 0, 0, 12, 3)
	// ten columns of text: "one two", "three four", "five six", a, b
	if len(p.wrapped) != 5 {
		t.Fatalf("expected 5 wrapped rows, got %d", len(p.wrapped))
	}
	if p.scrollOff != 3 {
		t.Fatalf("panel should follow the tail, scrollOff=%d", p.scrollOff)
	}

	p.SetFocused(true)
	p.HandleKey(tcell.NewEventKey(tcell.KeyHome, 0, tcell.ModNone))
	p.Render(screen, 0, 0, 12, 3)
	if p.scrollOff != 0 {
		t.Fatalf("expected top, got %d", p.scrollOff)
	}
}

func TestWrapBreaksOnSpaces(t *testing.T) {
	got := wrap("hello brave new world", 11)
	if strings.Join(got, "|") != "hello brave|new world" {
		t.Fatalf("unexpected rows %q", got)
	}
	if got := wrap("abcdef", 4); strings.Join(got, "|") != "abcd|ef" {
		t.Fatalf("unexpected hard wrap %q", got)
	}
}

func TestOutputLinesColorByStatus(t *testing.T) {
	lines := OutputLines(compile.Result{Status: compile.Error, Output: []string{
		"[10:00:00] Starting compilation for a.js...",
		"Compilation failed with 1 error.",
	}})
	if lines[0].Kind != LineMuted || lines[1].Kind != LineError {
		t.Fatalf("unexpected kinds %+v", lines)
	}
	if badge, kind := StatusBadge(compile.Success); badge == "" || kind != LineSuccess {
		t.Fatalf("unexpected badge %q", badge)
	}
}

func TestTranscriptLines(t *testing.T) {
	at := time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)
	lines := TranscriptLines([]assistant.Message{
		{Role: assistant.User, Content: "sort in python", Time: at},
		{Role: assistant.Assistant, Content: "Here you go", Code: "def f(): pass", Suggestions: []string{"More"}, Time: at},
	}, true)

	var texts []string
	for _, l := range lines {
		texts = append(texts, l.Text)
	}
	joined := strings.Join(texts, "\n")
	for _, want := range []string{"You  09:30", "AI  09:30", "def f(): pass", "› More", "AI is thinking"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("transcript missing %q:\n%s", want, joined)
		}
	}
}

func TestAutocompleteAcceptsWithTab(t *testing.T) {
	a := NewAutocomplete(nil)
	a.Show("{\n}", 4, 1)
	var accepted string
	a.OnAccept = func(s string) { accepted = s }

	if !a.HandleKey(tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone)) {
		t.Fatalf("tab should be consumed")
	}
	if accepted != "{\n}" || a.Visible {
		t.Fatalf("unexpected state accepted=%q visible=%v", accepted, a.Visible)
	}

	a.Show("x", 0, 0)
	if a.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Fatalf("typing should fall through")
	}
	if a.Visible {
		t.Fatalf("typing should hide the suggestion")
	}
}

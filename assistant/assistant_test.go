package assistant

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"void/task"
)

func TestRespondKeywords(t *testing.T) {
	tests := []struct {
		prompt   string
		wantCode string
		contains string
	}{
		{prompt: "Write a React counter please", wantCode: reactCounter, contains: "React counter"},
		{prompt: "Generate a LOGIN FORM", wantCode: loginForm, contains: "login form"},
		{prompt: "can you make this code nicer", contains: "What would you like me to generate?"},
		{prompt: "A Python function to sort a list", wantCode: pythonSort, contains: "Python function"},
		{prompt: "hello there", contains: `asking about: "hello there..."`},
	}

	for _, tt := range tests {
		t.Run(tt.prompt, func(t *testing.T) {
			r := Respond(Request{Text: tt.prompt})
			assert.Equal(t, tt.wantCode, r.Code)
			assert.Contains(t, r.Content, tt.contains)
		})
	}
}

func TestRespondTruncatesEcho(t *testing.T) {
	long := strings.Repeat("x", 80)
	r := Respond(Request{Text: long})
	assert.Contains(t, r.Content, `"`+strings.Repeat("x", 50)+`..."`)
	assert.NotContains(t, r.Content, strings.Repeat("x", 51))
	assert.Len(t, r.Suggestions, 3)
}

func TestRespondExplainUsesActiveFile(t *testing.T) {
	file := &FileContext{Name: "app.js", Language: "javascript", Content: "function a() {}\nfunction b() {}\n"}

	r := Respond(Request{Text: "Explain the active file", File: file})
	assert.Contains(t, r.Content, "App.js is 2 line(s) of javascript")
	assert.Contains(t, r.Content, "about 2 functions")

	r = Respond(Request{Text: "explain", File: file, Selection: "x := 1"})
	assert.Contains(t, r.Content, "The selected code in app.js is 1 line(s)")

	r = Respond(Request{Text: "explain"})
	assert.Contains(t, r.Content, "Open a file first")
}

func TestRespondAdvice(t *testing.T) {
	file := &FileContext{Name: "main.py"}
	assert.Contains(t, Respond(Request{Text: "Suggest optimizations", File: file}).Content, "optimizations for main.py")
	assert.Contains(t, Respond(Request{Text: "Help me debug this"}).Content, "debugging for your code")
}

func TestComplete(t *testing.T) {
	tests := []struct {
		line string
		want string
		ok   bool
	}{
		{line: "function greet", want: " greet() {\n  // your code here\n}", ok: true},
		{line: "  console.log(", want: "'Hello, World!');", ok: true},
		{line: "return (", want: "\n    <div>\n      \n    </div>\n  );", ok: true},
		{line: "<section>", want: "</section>", ok: true},
		{line: "display:", want: " flex;", ok: true},
		{line: "background-color:", want: " #", ok: true},
		{line: "margin:", ok: false},
		{line: "let x = 1", ok: false},
	}
	for _, tt := range tests {
		got, ok := Complete(tt.line)
		assert.Equal(t, tt.ok, ok, tt.line)
		assert.Equal(t, tt.want, got, tt.line)
	}
}

func TestRunCommand(t *testing.T) {
	assert.Equal(t, "Consider these optimizations...", RunCommand("optimize"))
	assert.Equal(t, "Command executed", RunCommand("unknown"))
}

type fakeTimer struct{ fn func() }

func (*fakeTimer) Stop() bool { return true }

func newTestSession(timers *[]*fakeTimer) *Session {
	after := func(d time.Duration, f func()) task.Timer {
		tm := &fakeTimer{fn: f}
		*timers = append(*timers, tm)
		return tm
	}
	return NewSession(WithAfterFunc(after))
}

func TestSessionReply(t *testing.T) {
	var timers []*fakeTimer
	s := newTestSession(&timers)
	require.Len(t, s.Messages(), 1, "greeting")

	var got Message
	require.True(t, s.Send(Request{Text: "react counter"}, func(m Message) { got = m }))
	assert.True(t, s.Busy())
	assert.Len(t, s.Messages(), 2)

	timers[0].fn()
	assert.False(t, s.Busy())
	assert.Equal(t, Assistant, got.Role)
	assert.Len(t, s.Messages(), 3)

	code, ok := s.LastCode()
	require.True(t, ok)
	assert.Equal(t, reactCounter, code)
}

func TestSessionSendSupersedesPending(t *testing.T) {
	var timers []*fakeTimer
	s := newTestSession(&timers)

	var replies []string
	done := func(m Message) { replies = append(replies, m.Content) }
	s.Send(Request{Text: "login form"}, done)
	s.Send(Request{Text: "react counter"}, done)

	timers[0].fn()
	timers[1].fn()
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0], "React counter")

	msgs := s.Messages()
	assert.Len(t, msgs, 4)
	assert.Equal(t, User, msgs[1].Role)
	assert.Equal(t, User, msgs[2].Role)
}

func TestSessionStop(t *testing.T) {
	var timers []*fakeTimer
	s := newTestSession(&timers)

	called := false
	s.Send(Request{Text: "react counter"}, func(Message) { called = true })
	require.True(t, s.Stop())
	assert.False(t, s.Stop())

	timers[0].fn()
	assert.False(t, called)

	msgs := s.Messages()
	assert.Equal(t, stoppedMessage, msgs[len(msgs)-1].Content)
	_, ok := s.LastCode()
	assert.False(t, ok)
}

func TestSessionIgnoresBlankPrompt(t *testing.T) {
	var timers []*fakeTimer
	s := newTestSession(&timers)
	assert.False(t, s.Send(Request{Text: "   "}, nil))
	assert.Empty(t, timers)
}

func TestSessionDelayRange(t *testing.T) {
	s := NewSession(WithDelay(time.Second, 1500*time.Millisecond))
	s.jitter = func(n int64) int64 { return n - 1 }
	assert.Equal(t, 1500*time.Millisecond, s.delay())
	s.jitter = func(int64) int64 { return 0 }
	assert.Equal(t, time.Second, s.delay())
}

package ui

import (
	"fmt"

	"void/config"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// RunState is what the status line shows about background work.
type RunState int

const (
	Idle RunState = iota
	Compiling
	Thinking
)

type StatusBar struct {
	Mode     string // focused area: "EDIT", "TREE", "AI"
	Filename string
	Modified bool
	Line     int
	Col      int
	Language string
	TabInfo  string // "Tabs" or "Spaces: 2"
	Message  string // temporary status message
	State    RunState
	SelChars int
	Theme    *config.ColorScheme
}

func NewStatusBar(theme *config.ColorScheme) *StatusBar {
	return &StatusBar{Mode: "EDIT", Theme: theme}
}

func (s *StatusBar) Render(screen tcell.Screen, x, y, width, height int) {
	theme := s.Theme
	if theme == nil {
		theme = config.Themes[config.DefaultTheme]
	}

	style := tcell.StyleDefault.Background(theme.StatusBarBg).Foreground(theme.StatusBarFg)
	modeStyle := tcell.StyleDefault.Background(theme.StatusBarModeBg).Foreground(tcell.ColorWhite).Bold(true)

	fill(screen, x, y, width, 1, style)
	limit := x + width
	col := drawText(screen, x, y, limit, " "+s.Mode+" ", modeStyle)
	col++

	switch s.State {
	case Compiling:
		col = drawText(screen, col, y, limit, "⟳ compiling ", style.Foreground(theme.Info))
	case Thinking:
		col = drawText(screen, col, y, limit, "● AI thinking ", style.Foreground(theme.Accent))
	}

	if s.Message != "" {
		drawText(screen, col, y, limit, s.Message, style)
		return
	}

	fname := s.Filename
	if fname == "" {
		fname = "no file"
	}
	if s.Modified {
		fname += " ●"
	}
	col = drawText(screen, col, y, limit, fname, style)

	right := s.rightInfo()
	if start := limit - runewidth.StringWidth(right); start > col+2 {
		drawText(screen, start, y, limit, right, style)
	}
}

func (s *StatusBar) rightInfo() string {
	if s.Filename == "" {
		return ""
	}
	tabInfo := s.TabInfo
	if tabInfo == "" {
		tabInfo = "Spaces: 2"
	}
	pos := fmt.Sprintf("Ln %d, Col %d", s.Line+1, s.Col+1)
	if s.SelChars > 0 {
		pos = fmt.Sprintf("Sel: %d chars │ %s", s.SelChars, pos)
	}
	return fmt.Sprintf("%s │ %s │ %s │ UTF-8 ", pos, s.Language, tabInfo)
}

func (s *StatusBar) HandleKey(ev *tcell.EventKey) bool   { return false }
func (s *StatusBar) HandleMouse(ev *tcell.EventMouse) bool { return false }
func (s *StatusBar) IsFocused() bool                      { return false }
func (s *StatusBar) SetFocused(f bool)                    {}

package ui

import (
	"strings"

	"void/config"

	"github.com/gdamore/tcell/v2"
)

// LineKind picks the color of a panel line.
type LineKind int

const (
	LinePlain LineKind = iota
	LineMuted
	LineSuccess
	LineError
	LineInfo
	LineAccent
	LineCode
)

type Line struct {
	Text string
	Kind LineKind
}

// Panel is a titled, scrollable list of lines below the editor. It backs
// the compile output, the assistant transcript and the preview source.
type Panel struct {
	Title  string
	Badge  string // short status shown after the title
	Badged LineKind
	Hint   string // shown when there are no lines

	lines      []Line
	scrollOff  int
	follow     bool // stick to the bottom as lines arrive
	focused    bool
	x, y, w, h int
	wrapped    []Line

	Theme *config.ColorScheme
}

func NewPanel(title string, theme *config.ColorScheme) *Panel {
	return &Panel{Title: title, Theme: theme, follow: true}
}

// SetLines replaces the content. Multi-line texts are split.
func (p *Panel) SetLines(lines []Line) {
	p.lines = p.lines[:0]
	for _, l := range lines {
		for _, part := range strings.Split(l.Text, "\n") {
			p.lines = append(p.lines, Line{Text: part, Kind: l.Kind})
		}
	}
	if p.follow {
		p.scrollOff = 1 << 30
	}
}

func (p *Panel) Lines() []Line { return p.lines }

// Text joins the raw lines, mostly for tests.
func (p *Panel) Text() string {
	parts := make([]string, len(p.lines))
	for i, l := range p.lines {
		parts[i] = l.Text
	}
	return strings.Join(parts, "\n")
}

func (p *Panel) ScrollToTop() {
	p.scrollOff = 0
	p.follow = false
}

func (p *Panel) style(theme *config.ColorScheme, kind LineKind) tcell.Style {
	base := tcell.StyleDefault.Background(theme.PanelBg).Foreground(theme.Foreground)
	switch kind {
	case LineMuted:
		return base.Foreground(theme.Muted)
	case LineSuccess:
		return base.Foreground(theme.Success)
	case LineError:
		return base.Foreground(theme.Error)
	case LineInfo:
		return base.Foreground(theme.Info)
	case LineAccent:
		return base.Foreground(theme.Accent).Bold(true)
	case LineCode:
		return base.Background(theme.Background).Foreground(theme.Foreground)
	}
	return base
}

func (p *Panel) Render(screen tcell.Screen, x, y, width, height int) {
	p.x, p.y, p.w, p.h = x, y, width, height
	theme := p.Theme
	if theme == nil {
		theme = config.Themes[config.DefaultTheme]
	}
	base := p.style(theme, LinePlain)
	header := tcell.StyleDefault.Background(theme.TabBarBg).Foreground(theme.TreeHeaderFg).Bold(true)
	if p.focused {
		header = header.Foreground(theme.Accent)
	}

	fill(screen, x, y, width, height, base)
	fill(screen, x, y, width, 1, header)
	col := drawText(screen, x+1, y, x+width, strings.ToUpper(p.Title), header)
	if p.Badge != "" {
		drawText(screen, col+2, y, x+width, p.Badge, p.style(theme, p.Badged).Background(theme.TabBarBg))
	}

	body := height - 1
	if body <= 0 {
		return
	}
	if len(p.lines) == 0 {
		drawText(screen, x+1, y+1, x+width, p.Hint, p.style(theme, LineMuted).Italic(true))
		return
	}

	p.wrapped = p.wrapped[:0]
	for _, l := range p.lines {
		for _, row := range wrap(l.Text, width-2) {
			p.wrapped = append(p.wrapped, Line{Text: row, Kind: l.Kind})
		}
	}
	p.clampScroll()

	for i := 0; i < body && p.scrollOff+i < len(p.wrapped); i++ {
		l := p.wrapped[p.scrollOff+i]
		st := p.style(theme, l.Kind)
		if l.Kind == LineCode {
			fill(screen, x+1, y+1+i, width-2, 1, st)
		}
		drawText(screen, x+1, y+1+i, x+width-1, l.Text, st)
	}
}

func (p *Panel) clampScroll() {
	maxOff := max(0, len(p.wrapped)-(p.h-1))
	p.scrollOff = max(0, min(p.scrollOff, maxOff))
	if p.scrollOff == maxOff {
		p.follow = true
	}
}

func (p *Panel) scrollBy(delta int) {
	p.scrollOff += delta
	p.follow = false
	p.clampScroll()
}

func (p *Panel) HandleKey(ev *tcell.EventKey) bool {
	if !p.focused {
		return false
	}
	page := max(1, p.h-2)
	switch ev.Key() {
	case tcell.KeyUp:
		p.scrollBy(-1)
	case tcell.KeyDown:
		p.scrollBy(1)
	case tcell.KeyPgUp:
		p.scrollBy(-page)
	case tcell.KeyPgDn:
		p.scrollBy(page)
	case tcell.KeyHome:
		p.ScrollToTop()
	case tcell.KeyEnd:
		p.scrollBy(1 << 30)
	default:
		return false
	}
	return true
}

func (p *Panel) HandleMouse(ev *tcell.EventMouse) bool {
	mx, my := ev.Position()
	if mx < p.x || mx >= p.x+p.w || my < p.y || my >= p.y+p.h {
		return false
	}
	switch ev.Buttons() {
	case tcell.WheelUp:
		p.scrollBy(-3)
	case tcell.WheelDown:
		p.scrollBy(3)
	case tcell.Button1:
		p.focused = true
	}
	return true
}

func (p *Panel) IsFocused() bool   { return p.focused }
func (p *Panel) SetFocused(f bool) { p.focused = f }

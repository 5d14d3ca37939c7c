package ui

import (
	"void/config"
	"void/workspace"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

type Tab struct {
	ID       workspace.ID
	Title    string
	Modified bool
}

// TabBar shows the open files in tab order. The tab list itself lives in
// the workspace; SetTabs mirrors it here.
type TabBar struct {
	Tabs           []Tab
	Active         int // -1 when no file is active
	scrollOff      int
	focused        bool
	x, y, w        int
	mouseX, mouseY int

	mousePressX, mousePressY int
	mousePressed             bool

	Theme *config.ColorScheme

	OnSwitch func(id workspace.ID)
	OnClose  func(id workspace.ID)
}

func NewTabBar(theme *config.ColorScheme) *TabBar {
	return &TabBar{Theme: theme, Active: -1, mouseX: -1, mouseY: -1}
}

// SetTabs replaces the tabs with the open files, as returned by
// Workspace.OpenFiles.
func (tb *TabBar) SetTabs(open []workspace.Entity) {
	tb.Tabs = tb.Tabs[:0]
	tb.Active = -1
	for i, e := range open {
		tb.Tabs = append(tb.Tabs, Tab{ID: e.ID, Title: e.Name, Modified: e.Modified})
		if e.Active {
			tb.Active = i
		}
	}
	tb.ensureActiveVisible(tb.w)
}

func (tb *TabBar) tabTitle(tab Tab) string {
	if tab.Modified {
		return "*" + tab.Title
	}
	return tab.Title
}

func (tb *TabBar) tabWidthAt(index int) int {
	if index < 0 || index >= len(tb.Tabs) {
		return 0
	}
	// space + title + space + x + space
	w := 1 + runewidth.StringWidth(tb.tabTitle(tb.Tabs[index])) + 3
	if index < len(tb.Tabs)-1 {
		w++ // separator
	}
	return w
}

func (tb *TabBar) clampScroll() {
	tb.scrollOff = max(0, min(tb.scrollOff, len(tb.Tabs)-1))
}

func (tb *TabBar) visibleLast(width int) int {
	remaining := width
	last := tb.scrollOff - 1
	for i := tb.scrollOff; i < len(tb.Tabs); i++ {
		w := tb.tabWidthAt(i)
		if w > remaining {
			break
		}
		remaining -= w
		last = i
	}
	return last
}

func (tb *TabBar) ensureActiveVisible(width int) {
	tb.clampScroll()
	if tb.Active < 0 || tb.Active >= len(tb.Tabs) || width <= 0 {
		return
	}
	if tb.Active < tb.scrollOff {
		tb.scrollOff = tb.Active
	}
	for tb.scrollOff < tb.Active && tb.Active > tb.visibleLast(width) {
		tb.scrollOff++
	}
}

func (tb *TabBar) scrollBy(delta int) {
	tb.scrollOff += delta
	tb.clampScroll()
}

func (tb *TabBar) Render(screen tcell.Screen, x, y, width, height int) {
	tb.x, tb.y, tb.w = x, y, width
	tb.ensureActiveVisible(width)

	theme := tb.Theme
	if theme == nil {
		theme = config.Themes[config.DefaultTheme]
	}

	barStyle := tcell.StyleDefault.Background(theme.TabBarBg).Foreground(theme.TabBarFg)
	activeStyle := tcell.StyleDefault.Background(theme.TabBarActiveBg).Foreground(theme.TabBarActiveFg).Bold(true)

	fill(screen, x, y, width, 1, barStyle)
	if len(tb.Tabs) == 0 {
		drawText(screen, x+1, y, x+width, "No open files", barStyle.Italic(true))
		return
	}

	col := x
	limit := x + width
	for i := tb.scrollOff; i < len(tb.Tabs) && col < limit; i++ {
		tab := tb.Tabs[i]
		style := barStyle
		if i == tb.Active {
			style = activeStyle
		} else if tb.mouseY == y && tb.mouseX >= col && tb.mouseX < col+tb.tabWidthAt(i) {
			style = style.Background(theme.Selection)
		}

		col = drawText(screen, col, y, limit, " ", style)
		if tab.Modified {
			col = drawText(screen, col, y, limit, "*", style.Foreground(theme.Modified))
		}
		col = drawText(screen, col, y, limit, tab.Title+" ", style)

		closeStyle := style
		if tb.mouseY == y && tb.mouseX == col {
			closeStyle = style.Foreground(theme.Error).Bold(true)
		}
		col = drawText(screen, col, y, limit, "x", closeStyle)
		col = drawText(screen, col, y, limit, " ", style)
		if i < len(tb.Tabs)-1 {
			col = drawText(screen, col, y, limit, "│", barStyle)
		}
	}
}

func (tb *TabBar) HandleKey(ev *tcell.EventKey) bool {
	return false
}

func (tb *TabBar) HandleMouse(ev *tcell.EventMouse) bool {
	mx, my := ev.Position()
	btn := ev.Buttons()

	if my != tb.y || mx < tb.x || mx >= tb.x+tb.w {
		tb.mouseX, tb.mouseY = -1, -1
		tb.mousePressed = false
		return false
	}
	tb.mouseX, tb.mouseY = mx, my

	switch btn {
	case tcell.WheelUp, tcell.WheelLeft:
		tb.scrollBy(-1)
		return true
	case tcell.WheelDown, tcell.WheelRight:
		tb.scrollBy(1)
		return true
	case tcell.Button1:
		if !tb.mousePressed {
			tb.mousePressX, tb.mousePressY = mx, my
			tb.mousePressed = true
		}
		return true
	}

	if btn != tcell.ButtonNone || !tb.mousePressed {
		return true
	}
	tb.mousePressed = false
	if mx != tb.mousePressX || my != tb.mousePressY {
		return true
	}

	col := tb.x
	for i := tb.scrollOff; i < len(tb.Tabs) && col < tb.x+tb.w; i++ {
		tabWidth := tb.tabWidthAt(i)
		if mx >= col && mx < col+tabWidth {
			closeX := col + 1 + runewidth.StringWidth(tb.tabTitle(tb.Tabs[i])) + 1
			if mx == closeX {
				if tb.OnClose != nil {
					tb.OnClose(tb.Tabs[i].ID)
				}
			} else if tb.OnSwitch != nil {
				tb.OnSwitch(tb.Tabs[i].ID)
			}
			return true
		}
		col += tabWidth
	}
	return true
}

func (tb *TabBar) IsFocused() bool   { return tb.focused }
func (tb *TabBar) SetFocused(f bool) { tb.focused = f }

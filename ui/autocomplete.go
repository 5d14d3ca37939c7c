package ui

import (
	"strconv"
	"strings"

	"void/config"

	"github.com/gdamore/tcell/v2"
)

// Autocomplete shows an inline suggestion as ghost text after the cursor.
// Tab accepts it, Esc dismisses it, anything else falls through to the
// editor.
type Autocomplete struct {
	Text     string
	Visible  bool
	X, Y     int // screen cell right after the cursor
	OnAccept func(text string)
	OnClose  func()
	Theme    *config.ColorScheme
}

func NewAutocomplete(theme *config.ColorScheme) *Autocomplete {
	return &Autocomplete{Theme: theme}
}

// Show offers text at the given cell. An empty text hides the suggestion.
func (a *Autocomplete) Show(text string, x, y int) {
	a.Text = text
	a.X, a.Y = x, y
	a.Visible = text != ""
}

func (a *Autocomplete) Hide() {
	a.Visible = false
	a.Text = ""
}

// Render draws the first line of the suggestion, and a hint for the rest.
func (a *Autocomplete) Render(screen tcell.Screen, x, y, width, height int) {
	if !a.Visible || a.Y < y || a.Y >= y+height {
		return
	}
	theme := a.Theme
	if theme == nil {
		theme = config.Themes[config.DefaultTheme]
	}
	style := tcell.StyleDefault.Background(theme.Background).Foreground(theme.Muted).Italic(true)

	first, rest, multi := strings.Cut(a.Text, "\n")
	col := drawText(screen, a.X, a.Y, x+width, first, style)
	if multi {
		extra := strings.Count(rest, "\n") + 1
		hint := " ⇥ +" + strconv.Itoa(extra) + " lines"
		drawText(screen, col, a.Y, x+width, hint, style.Foreground(theme.LineNumber))
	}
}

func (a *Autocomplete) HandleKey(ev *tcell.EventKey) bool {
	if !a.Visible {
		return false
	}
	switch ev.Key() {
	case tcell.KeyTab:
		text := a.Text
		a.Hide()
		if a.OnAccept != nil {
			a.OnAccept(text)
		}
		return true
	case tcell.KeyEscape:
		a.Hide()
		if a.OnClose != nil {
			a.OnClose()
		}
		return true
	}
	// typing on invalidates the suggestion; the editor recomputes it
	a.Hide()
	return false
}

func (a *Autocomplete) HandleMouse(ev *tcell.EventMouse) bool { return false }
func (a *Autocomplete) IsFocused() bool                      { return a.Visible }
func (a *Autocomplete) SetFocused(f bool)                    { a.Visible = f }

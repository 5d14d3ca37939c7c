// Package ui holds the terminal widgets: explorer, tabs, status line,
// output and assistant panels, and the modal pickers.
package ui

import (
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// fill paints a rectangle with spaces in style.
func fill(screen tcell.Screen, x, y, width, height int, style tcell.Style) {
	for cy := y; cy < y+height; cy++ {
		for cx := x; cx < x+width; cx++ {
			screen.SetContent(cx, cy, ' ', nil, style)
		}
	}
}

// drawText writes s from (x, y) and stops at limit (exclusive). Wide runes
// take two cells. It returns the column after the last cell written.
func drawText(screen tcell.Screen, x, y, limit int, s string, style tcell.Style) int {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			w = 1
		}
		if x+w > limit {
			break
		}
		screen.SetContent(x, y, r, nil, style)
		x += w
	}
	return x
}

// truncate shortens s to at most width cells, ending it with an ellipsis
// when something was cut.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// wrap breaks s into rows of at most width cells, splitting on spaces
// where possible.
func wrap(s string, width int) []string {
	if width <= 0 {
		return nil
	}
	if s == "" {
		return []string{""}
	}
	var rows []string
	for runewidth.StringWidth(s) > width {
		cut := 0
		lastSpace := -1
		cells := 0
		for i, r := range s {
			if r == ' ' {
				lastSpace = i
			}
			w := runewidth.RuneWidth(r)
			if cells+w > width {
				cut = i
				break
			}
			cells += w
		}
		if lastSpace > 0 {
			cut = lastSpace
		}
		if cut == 0 {
			// a single rune wider than the row
			_, cut = utf8.DecodeRuneInString(s)
		}
		rows = append(rows, s[:cut])
		s = s[cut:]
		if len(s) > 0 && s[0] == ' ' {
			s = s[1:]
		}
	}
	return append(rows, s)
}

package ui

import (
	"slices"
	"strings"
	"unicode"

	"void/config"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// PickerItem is one selectable row. Label is what the query matches.
type PickerItem struct {
	Label  string
	Detail string // right-aligned, e.g. a shortcut
	Action func()
}

type scoredItem struct {
	PickerItem
	Score     int
	MatchIdxs []int
}

// Picker is a modal fuzzy-filtered list: the command palette and go-to-file
// are both pickers over different items.
type Picker struct {
	Title     string
	Input     string
	CursorPos int
	Items     []PickerItem
	Filtered  []scoredItem
	Selected  int
	OnClose   func()
	focused   bool
	Theme     *config.ColorScheme
	scrollOff int
}

func NewPicker(title string, items []PickerItem, theme *config.ColorScheme) *Picker {
	p := &Picker{Title: title, Items: items, Theme: theme, focused: true}
	p.updateFilter()
	return p
}

func (p *Picker) updateFilter() {
	p.Filtered = p.Filtered[:0]
	query := strings.ToLower(strings.TrimSpace(p.Input))
	for _, it := range p.Items {
		if query == "" {
			p.Filtered = append(p.Filtered, scoredItem{PickerItem: it})
			continue
		}
		if score, idxs := fuzzyScore(it.Label, query); score > 0 {
			p.Filtered = append(p.Filtered, scoredItem{PickerItem: it, Score: score, MatchIdxs: idxs})
		}
	}
	slices.SortStableFunc(p.Filtered, func(a, b scoredItem) int { return b.Score - a.Score })
	p.Selected = 0
	p.scrollOff = 0
}

// fuzzyScore matches query (lower case) as a subsequence of text. It
// returns 0 when there is no match; higher is better. Matches at word
// boundaries, in the last path segment and in runs score more.
func fuzzyScore(text, query string) (int, []int) {
	orig := []rune(text)
	lower := []rune(strings.ToLower(text))
	q := []rune(query)
	if len(q) == 0 || len(q) > len(lower) {
		return 0, nil
	}

	base := 0
	for i := len(orig) - 1; i >= 0; i-- {
		if orig[i] == '/' {
			base = i + 1
			break
		}
	}

	idxs := make([]int, 0, len(q))
	pi := 0
	for _, qr := range q {
		for pi < len(lower) && lower[pi] != qr {
			pi++
		}
		if pi == len(lower) {
			return 0, nil
		}
		idxs = append(idxs, pi)
		pi++
	}

	score := 10
	for i, idx := range idxs {
		if i > 0 && idx == idxs[i-1]+1 {
			score += 5
		}
		switch {
		case idx == 0 || idx == base:
			score += 10
		case strings.ContainsRune("/_-. ", orig[idx-1]):
			score += 8
		case unicode.IsLower(orig[idx-1]) && unicode.IsUpper(orig[idx]):
			score += 6
		}
		if idx >= base {
			score += 3
		}
	}
	score -= strings.Count(text, "/")
	if strings.HasPrefix(string(lower[base:]), query) {
		score += 20
	}
	return score, idxs
}

func (p *Picker) Render(screen tcell.Screen, x, y, width, height int) {
	theme := p.Theme
	if theme == nil {
		theme = config.Themes[config.DefaultTheme]
	}

	maxVisible := max(3, min(15, height-6))
	dialogW := min(max(width*60/100, 40), width-4)
	listCount := min(len(p.Filtered), maxVisible)
	dialogH := max(listCount+4, 5)
	dialogX := x + (width-dialogW)/2
	dialogY := y + 2

	bgStyle := tcell.StyleDefault.Background(theme.DialogBg).Foreground(theme.DialogFg)
	borderStyle := bgStyle.Foreground(theme.Border)
	titleStyle := bgStyle.Foreground(theme.Accent).Bold(true)
	inputStyle := tcell.StyleDefault.Background(theme.DialogInputBg).Foreground(theme.Foreground)
	selectedStyle := tcell.StyleDefault.Background(theme.Selection).Foreground(theme.Foreground)
	detailStyle := bgStyle.Foreground(theme.Muted)

	fill(screen, dialogX, dialogY, dialogW, dialogH, bgStyle)
	for dx := 0; dx < dialogW; dx++ {
		screen.SetContent(dialogX+dx, dialogY, '─', nil, borderStyle)
		screen.SetContent(dialogX+dx, dialogY+dialogH-1, '─', nil, borderStyle)
	}
	for dy := 0; dy < dialogH; dy++ {
		screen.SetContent(dialogX, dialogY+dy, '│', nil, borderStyle)
		screen.SetContent(dialogX+dialogW-1, dialogY+dy, '│', nil, borderStyle)
	}
	screen.SetContent(dialogX, dialogY, '┌', nil, borderStyle)
	screen.SetContent(dialogX+dialogW-1, dialogY, '┐', nil, borderStyle)
	screen.SetContent(dialogX, dialogY+dialogH-1, '└', nil, borderStyle)
	screen.SetContent(dialogX+dialogW-1, dialogY+dialogH-1, '┘', nil, borderStyle)
	drawText(screen, dialogX+2, dialogY, dialogX+dialogW-2, " "+p.Title+" ", titleStyle)

	// input row
	inner := dialogX + 1
	innerEnd := dialogX + dialogW - 1
	fill(screen, inner, dialogY+1, innerEnd-inner, 1, inputStyle)
	col := drawText(screen, inner+1, dialogY+1, innerEnd, "> ", inputStyle.Foreground(theme.Accent))
	runes := []rune(p.Input)
	for i := 0; i <= len(runes) && col < innerEnd; i++ {
		ch := ' '
		if i < len(runes) {
			ch = runes[i]
		}
		st := inputStyle
		if i == p.CursorPos {
			st = st.Reverse(true)
		}
		col = drawText(screen, col, dialogY+1, innerEnd, string(ch), st)
	}

	if len(p.Filtered) == 0 {
		drawText(screen, inner+1, dialogY+2, innerEnd, "No matches", detailStyle.Italic(true))
		return
	}

	if p.Selected < p.scrollOff {
		p.scrollOff = p.Selected
	}
	if p.Selected >= p.scrollOff+maxVisible {
		p.scrollOff = p.Selected - maxVisible + 1
	}

	for i := 0; i < listCount; i++ {
		idx := p.scrollOff + i
		if idx >= len(p.Filtered) {
			break
		}
		it := p.Filtered[idx]
		row := dialogY + 2 + i
		st, ds := bgStyle, detailStyle
		if idx == p.Selected {
			st, ds = selectedStyle, selectedStyle.Foreground(theme.Muted)
			fill(screen, inner, row, innerEnd-inner, 1, st)
		}

		detailX := innerEnd - 1 - runewidth.StringWidth(it.Detail)
		labelEnd := innerEnd - 1
		if it.Detail != "" {
			labelEnd = detailX - 1
		}
		c := inner + 1
		for ri, ch := range []rune(it.Label) {
			cs := st
			if slices.Contains(it.MatchIdxs, ri) {
				cs = st.Foreground(theme.Info).Bold(true)
			}
			c = drawText(screen, c, row, labelEnd, string(ch), cs)
		}
		if it.Detail != "" && detailX > c {
			drawText(screen, detailX, row, innerEnd, it.Detail, ds)
		}
	}
}

func (p *Picker) close() {
	if p.OnClose != nil {
		p.OnClose()
	}
}

func (p *Picker) HandleKey(ev *tcell.EventKey) bool {
	runes := []rune(p.Input)
	switch ev.Key() {
	case tcell.KeyEscape:
		p.close()
	case tcell.KeyEnter:
		if p.Selected >= 0 && p.Selected < len(p.Filtered) {
			action := p.Filtered[p.Selected].Action
			p.close()
			if action != nil {
				action()
			}
		}
	case tcell.KeyUp:
		if p.Selected > 0 {
			p.Selected--
		}
	case tcell.KeyDown:
		if p.Selected < len(p.Filtered)-1 {
			p.Selected++
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if p.CursorPos > 0 {
			p.Input = string(runes[:p.CursorPos-1]) + string(runes[p.CursorPos:])
			p.CursorPos--
			p.updateFilter()
		}
	case tcell.KeyDelete:
		if p.CursorPos < len(runes) {
			p.Input = string(runes[:p.CursorPos]) + string(runes[p.CursorPos+1:])
			p.updateFilter()
		}
	case tcell.KeyLeft:
		if p.CursorPos > 0 {
			p.CursorPos--
		}
	case tcell.KeyRight:
		if p.CursorPos < len(runes) {
			p.CursorPos++
		}
	case tcell.KeyHome:
		p.CursorPos = 0
	case tcell.KeyEnd:
		p.CursorPos = len(runes)
	case tcell.KeyRune:
		p.Input = string(runes[:p.CursorPos]) + string(ev.Rune()) + string(runes[p.CursorPos:])
		p.CursorPos++
		p.updateFilter()
	}
	return true // absorb all keys while open
}

func (p *Picker) HandleMouse(ev *tcell.EventMouse) bool {
	return true
}

func (p *Picker) IsFocused() bool   { return p.focused }
func (p *Picker) SetFocused(f bool) { p.focused = f }

package ui

import (
	"void/config"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

type DialogType int

const (
	DialogNone DialogType = iota
	DialogInput
	DialogConfirm
	DialogHelp
)

// Dialog is a one-line prompt drawn over the bottom of the screen, or the
// help overlay.
type Dialog struct {
	Type    DialogType
	Prompt  string
	Input   string
	Cursor  int // rune index into Input
	focused bool

	Theme *config.ColorScheme

	OnSubmit  func(value string)
	OnConfirm func(yes bool)
	OnCancel  func()
}

// NewInputDialog asks for a line of text, starting from initial (e.g. the
// current name when renaming).
func NewInputDialog(prompt, initial string) *Dialog {
	return &Dialog{
		Type:    DialogInput,
		Prompt:  prompt,
		Input:   initial,
		Cursor:  len([]rune(initial)),
		focused: true,
	}
}

// NewConfirmDialog asks a yes/no question.
func NewConfirmDialog(question string) *Dialog {
	return &Dialog{Type: DialogConfirm, Prompt: question, focused: true}
}

func NewHelpDialog() *Dialog {
	return &Dialog{Type: DialogHelp, focused: true}
}

func (d *Dialog) theme() *config.ColorScheme {
	if d.Theme != nil {
		return d.Theme
	}
	return config.Themes[config.DefaultTheme]
}

func (d *Dialog) Render(screen tcell.Screen, x, y, width, height int) {
	switch d.Type {
	case DialogInput:
		d.renderInputBar(screen, x, y, width)
	case DialogConfirm:
		d.renderConfirm(screen, x, y, width)
	case DialogHelp:
		d.renderHelp(screen, x, y, width, height)
	}
}

func (d *Dialog) renderInputBar(screen tcell.Screen, x, y, width int) {
	theme := d.theme()
	style := tcell.StyleDefault.Background(theme.DialogInputBg).Foreground(theme.DialogFg)
	promptStyle := style.Foreground(theme.Accent).Bold(true)

	fill(screen, x, y, width, 1, style)
	limit := x + width
	col := drawText(screen, x, y, limit, d.Prompt, promptStyle)

	// keep the cursor in view on long input
	runes := []rune(d.Input)
	start := 0
	for start < d.Cursor && runewidth.StringWidth(string(runes[start:d.Cursor])) >= limit-col-1 {
		start++
	}
	for i := start; i < len(runes) && col < limit; i++ {
		st := style
		if i == d.Cursor {
			st = style.Reverse(true)
		}
		col = drawText(screen, col, y, limit, string(runes[i]), st)
	}
	if d.Cursor >= len(runes) && col < limit {
		screen.SetContent(col, y, ' ', nil, style.Reverse(true))
	}
}

func (d *Dialog) renderConfirm(screen tcell.Screen, x, y, width int) {
	theme := d.theme()
	style := tcell.StyleDefault.Background(theme.Error).Foreground(tcell.ColorWhite).Bold(true)
	fill(screen, x, y, width, 1, style)
	drawText(screen, x, y, x+width, " "+d.Prompt+" [Y]es [N]o ", style)
}

var helpBindings = []struct {
	key  string
	desc string
}{
	{"Ctrl+S", "Save file"},
	{"Ctrl+W", "Close tab"},
	{"Ctrl+O", "Go to file"},
	{"Ctrl+Z / Ctrl+Y", "Undo / Redo"},
	{"Ctrl+A", "Select all"},
	{"Ctrl+C / X / V", "Copy / cut / paste"},
	{"Ctrl+B", "Compile active file"},
	{"Ctrl+P", "Toggle live preview"},
	{"Ctrl+K", "Ask the assistant"},
	{"Ctrl+L", "Copy last code block"},
	{"Ctrl+G", "Insert last code block"},
	{"Ctrl+R", "Replace selection with last code block"},
	{"Ctrl+J", "Cycle bottom panel"},
	{"Ctrl+Shift+P / F2", "Command palette"},
	{"Tab", "Accept inline suggestion"},
	{"Esc", "Stop assistant or compile"},
	{"Ctrl+E", "Toggle explorer focus"},
	{"Ctrl+T", "Toggle theme"},
	{"n / N", "New file / folder (explorer)"},
	{"r / d", "Rename / delete (explorer)"},
	{"Ctrl+Q", "Quit"},
	{"F1", "Toggle help"},
}

func (d *Dialog) renderHelp(screen tcell.Screen, x, y, width, height int) {
	theme := d.theme()
	bg := tcell.StyleDefault.Background(theme.DialogBg).Foreground(theme.DialogFg)
	titleStyle := tcell.StyleDefault.Background(theme.Accent).Foreground(tcell.ColorWhite).Bold(true)
	keyStyle := bg.Foreground(theme.Info)
	borderStyle := bg.Foreground(theme.Border)

	dialogW := min(60, width-4)
	dialogH := min(len(helpBindings)+4, height-2)
	if dialogW < 20 || dialogH < 5 {
		return
	}
	dx := x + (width-dialogW)/2
	dy := y + (height-dialogH)/2

	fill(screen, dx, dy, dialogW, dialogH, bg)
	for cx := dx; cx < dx+dialogW; cx++ {
		screen.SetContent(cx, dy+dialogH-1, '─', nil, borderStyle)
	}
	fill(screen, dx, dy, dialogW, 1, titleStyle)
	drawText(screen, dx+2, dy, dx+dialogW, "Keyboard shortcuts", titleStyle)

	row := dy + 2
	for _, b := range helpBindings {
		if row >= dy+dialogH-1 {
			break
		}
		drawText(screen, dx+2, row, dx+24, b.key, keyStyle)
		drawText(screen, dx+24, row, dx+dialogW-1, b.desc, bg)
		row++
	}
}

func (d *Dialog) HandleKey(ev *tcell.EventKey) bool {
	switch d.Type {
	case DialogConfirm:
		return d.handleConfirmKey(ev)
	case DialogHelp:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyF1 {
			d.cancel()
		}
		return true
	}
	return d.handleInputKey(ev)
}

func (d *Dialog) cancel() {
	if d.OnCancel != nil {
		d.OnCancel()
	}
}

func (d *Dialog) handleConfirmKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyEscape {
		d.cancel()
		return true
	}
	switch ev.Rune() {
	case 'y', 'Y':
		if d.OnConfirm != nil {
			d.OnConfirm(true)
		}
	case 'n', 'N':
		if d.OnConfirm != nil {
			d.OnConfirm(false)
		}
	}
	return true
}

func (d *Dialog) handleInputKey(ev *tcell.EventKey) bool {
	runes := []rune(d.Input)
	switch ev.Key() {
	case tcell.KeyEscape:
		d.cancel()
	case tcell.KeyEnter:
		if d.OnSubmit != nil {
			d.OnSubmit(d.Input)
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if d.Cursor > 0 {
			d.Input = string(runes[:d.Cursor-1]) + string(runes[d.Cursor:])
			d.Cursor--
		}
	case tcell.KeyDelete:
		if d.Cursor < len(runes) {
			d.Input = string(runes[:d.Cursor]) + string(runes[d.Cursor+1:])
		}
	case tcell.KeyLeft:
		if d.Cursor > 0 {
			d.Cursor--
		}
	case tcell.KeyRight:
		if d.Cursor < len(runes) {
			d.Cursor++
		}
	case tcell.KeyHome, tcell.KeyCtrlA:
		d.Cursor = 0
	case tcell.KeyEnd, tcell.KeyCtrlE:
		d.Cursor = len(runes)
	case tcell.KeyCtrlU:
		d.Input = string(runes[d.Cursor:])
		d.Cursor = 0
	case tcell.KeyRune:
		d.Input = string(runes[:d.Cursor]) + string(ev.Rune()) + string(runes[d.Cursor:])
		d.Cursor++
	default:
		return false
	}
	return true
}

func (d *Dialog) HandleMouse(ev *tcell.EventMouse) bool { return false }
func (d *Dialog) IsFocused() bool                       { return d.focused }
func (d *Dialog) SetFocused(f bool)                     { d.focused = f }

package ui

import (
	"void/config"
	"void/workspace"

	"github.com/gdamore/tcell/v2"
)

// FileTree renders the workspace hierarchy as an explorer. It owns only
// presentation state (selection, scroll, hover); every change to the tree
// goes out through the callbacks.
type FileTree struct {
	rows       []*workspace.Node
	selected   int
	scrollOff  int
	focused    bool
	x, y, w, h int
	Theme      *config.ColorScheme

	mousePressX, mousePressY int
	mousePressed             bool
	mouseX, mouseY           int

	OnOpen      func(id workspace.ID)
	OnToggle    func(id workspace.ID)
	OnNewFile   func(parentID workspace.ID) // "" means the top level
	OnNewFolder func(parentID workspace.ID)
	OnDelete    func(id workspace.ID)
	OnRename    func(id workspace.ID)
}

func NewFileTree(theme *config.ColorScheme) *FileTree {
	return &FileTree{Theme: theme, mouseX: -1, mouseY: -1}
}

// Update rebuilds the rows from a snapshot. The selection follows the
// selected entity when it still exists.
func (ft *FileTree) Update(s *workspace.Store) {
	prev := ft.SelectedID()
	ft.rows = workspace.Flatten(workspace.BuildTree(s))
	if prev != "" {
		for i, n := range ft.rows {
			if n.ID == prev {
				ft.selected = i
				return
			}
		}
	}
	ft.selected = max(0, min(ft.selected, len(ft.rows)-1))
}

func (ft *FileTree) Rows() []*workspace.Node { return ft.rows }

// SelectedID is the entity under the cursor, or "" for an empty tree.
func (ft *FileTree) SelectedID() workspace.ID {
	if ft.selected >= 0 && ft.selected < len(ft.rows) {
		return ft.rows[ft.selected].ID
	}
	return ""
}

// SelectID moves the selection to id if it is visible.
func (ft *FileTree) SelectID(id workspace.ID) bool {
	for i, n := range ft.rows {
		if n.ID == id {
			ft.selected = i
			ft.ensureVisible()
			return true
		}
	}
	return false
}

// targetFolder is where new entries go: the selected folder, or the
// parent of the selected file.
func (ft *FileTree) targetFolder() workspace.ID {
	if ft.selected < 0 || ft.selected >= len(ft.rows) {
		return ""
	}
	n := ft.rows[ft.selected]
	if n.IsFolder() {
		return n.ID
	}
	return n.ParentID
}

func (ft *FileTree) ensureVisible() {
	visible := ft.h - 1
	if visible <= 0 {
		return
	}
	if ft.selected < ft.scrollOff {
		ft.scrollOff = ft.selected
	} else if ft.selected >= ft.scrollOff+visible {
		ft.scrollOff = ft.selected - visible + 1
	}
}

func (ft *FileTree) Render(screen tcell.Screen, x, y, width, height int) {
	ft.x, ft.y, ft.w, ft.h = x, y, width, height

	theme := ft.Theme
	if theme == nil {
		theme = config.Themes[config.DefaultTheme]
	}

	bgStyle := tcell.StyleDefault.Background(theme.Background).Foreground(theme.TreeFileFg)
	selStyle := tcell.StyleDefault.Background(theme.TreeSelectionBg).Foreground(theme.TreeFileFg)
	dirStyle := bgStyle.Foreground(theme.TreeDirFg).Bold(true)
	headerStyle := bgStyle.Foreground(theme.TreeHeaderFg).Bold(true)
	modStyle := bgStyle.Foreground(theme.Modified)

	fill(screen, x, y, width, height, bgStyle)
	drawText(screen, x+1, y, x+width-1, "EXPLORER", headerStyle)

	ft.ensureVisible()

	row := y + 1
	for i := ft.scrollOff; i < len(ft.rows) && row < y+height; i++ {
		n := ft.rows[i]
		style := bgStyle
		if n.IsFolder() {
			style = dirStyle
		}
		switch {
		case i == ft.selected && ft.focused:
			style = style.Background(theme.TreeSelectionBg)
		case i == ft.selected:
			style = selStyle.Background(theme.Selection).Dim(true)
		case ft.mouseY == row && ft.mouseX >= x && ft.mouseX < x+width:
			style = style.Background(theme.Selection)
		}
		if n.Active {
			style = style.Underline(true)
		}
		fill(screen, x, row, width-1, 1, style)

		col := x + 1 + n.Level*2
		if n.IsFolder() {
			icon := '▶'
			if n.Expanded {
				icon = '▼'
			}
			screen.SetContent(col, row, icon, nil, style)
		}
		col += 2
		col = drawText(screen, col, row, x+width-3, n.Name, style)
		if n.Modified && col < x+width-2 {
			_, bg, _ := style.Decompose()
			screen.SetContent(x+width-3, row, '●', nil, modStyle.Background(bg))
		}
		row++
	}

	borderStyle := tcell.StyleDefault.Foreground(theme.Border).Background(theme.Background)
	for cy := y; cy < y+height; cy++ {
		screen.SetContent(x+width-1, cy, '│', nil, borderStyle)
	}
}

func (ft *FileTree) current() *workspace.Node {
	if ft.selected >= 0 && ft.selected < len(ft.rows) {
		return ft.rows[ft.selected]
	}
	return nil
}

// activate opens a file or toggles a folder.
func (ft *FileTree) activate(n *workspace.Node) {
	if n.IsFolder() {
		if ft.OnToggle != nil {
			ft.OnToggle(n.ID)
		}
		return
	}
	if ft.OnOpen != nil {
		ft.OnOpen(n.ID)
	}
}

func (ft *FileTree) HandleKey(ev *tcell.EventKey) bool {
	if !ft.focused {
		return false
	}
	n := ft.current()
	switch ev.Key() {
	case tcell.KeyUp:
		if ft.selected > 0 {
			ft.selected--
		}
		return true
	case tcell.KeyDown:
		if ft.selected < len(ft.rows)-1 {
			ft.selected++
		}
		return true
	case tcell.KeyEnter:
		if n != nil {
			ft.activate(n)
		}
		return true
	case tcell.KeyRight:
		if n != nil && n.IsFolder() && !n.Expanded && ft.OnToggle != nil {
			ft.OnToggle(n.ID)
		}
		return true
	case tcell.KeyLeft:
		if n != nil && n.IsFolder() && n.Expanded && ft.OnToggle != nil {
			ft.OnToggle(n.ID)
		}
		return true
	case tcell.KeyDelete:
		if n != nil && ft.OnDelete != nil {
			ft.OnDelete(n.ID)
		}
		return true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'n':
			if ft.OnNewFile != nil {
				ft.OnNewFile(ft.targetFolder())
			}
			return true
		case 'N':
			if ft.OnNewFolder != nil {
				ft.OnNewFolder(ft.targetFolder())
			}
			return true
		case 'd':
			if n != nil && ft.OnDelete != nil {
				ft.OnDelete(n.ID)
			}
			return true
		case 'r':
			if n != nil && ft.OnRename != nil {
				ft.OnRename(n.ID)
			}
			return true
		}
	}
	return false
}

func (ft *FileTree) HandleMouse(ev *tcell.EventMouse) bool {
	mx, my := ev.Position()
	ft.mouseX, ft.mouseY = mx, my
	if mx < ft.x || mx >= ft.x+ft.w || my < ft.y || my >= ft.y+ft.h {
		return false
	}

	switch btn := ev.Buttons(); {
	case btn == tcell.WheelUp:
		if ft.scrollOff > 0 {
			ft.scrollOff--
		}
		return true
	case btn == tcell.WheelDown:
		if ft.scrollOff < len(ft.rows)-1 {
			ft.scrollOff++
		}
		return true
	case btn == tcell.Button1:
		if !ft.mousePressed {
			ft.mousePressX, ft.mousePressY = mx, my
			ft.mousePressed = true
		}
		return true
	case btn == tcell.ButtonNone && ft.mousePressed:
		// a click is a press and release on the same cell
		ft.mousePressed = false
		if mx != ft.mousePressX || my != ft.mousePressY {
			return true
		}
		idx := my - ft.y - 1 + ft.scrollOff
		if idx >= 0 && idx < len(ft.rows) {
			ft.selected = idx
			ft.focused = true
			ft.activate(ft.rows[idx])
		}
		return true
	}
	return false
}

func (ft *FileTree) IsFocused() bool   { return ft.focused }
func (ft *FileTree) SetFocused(f bool) { ft.focused = f }

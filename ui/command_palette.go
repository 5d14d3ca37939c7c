package ui

import "void/config"

type Command struct {
	Name     string
	Shortcut string
	Action   func()
}

// NewCommandPalette lists the editor and assistant commands.
func NewCommandPalette(commands []Command, theme *config.ColorScheme) *Picker {
	items := make([]PickerItem, len(commands))
	for i, c := range commands {
		items[i] = PickerItem{Label: c.Name, Detail: c.Shortcut, Action: c.Action}
	}
	return NewPicker("Commands", items, theme)
}

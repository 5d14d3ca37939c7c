package ui

import (
	"slices"
	"strings"

	"void/config"
	"void/workspace"
)

// NewQuickOpen lists every file of the snapshot by path. Choosing one calls
// open with its id.
func NewQuickOpen(s *workspace.Store, open func(workspace.ID), theme *config.ColorScheme) *Picker {
	var items []PickerItem
	for _, e := range s.All() {
		if e.IsFolder() {
			continue
		}
		id := e.ID
		detail := e.Language
		if e.Open {
			detail = "open · " + detail
		}
		items = append(items, PickerItem{
			Label:  e.Path,
			Detail: detail,
			Action: func() { open(id) },
		})
	}
	slices.SortFunc(items, func(a, b PickerItem) int { return strings.Compare(a.Label, b.Label) })
	return NewPicker("Go to File", items, theme)
}

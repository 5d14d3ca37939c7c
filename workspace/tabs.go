package workspace

import "slices"

// Select opens id in a tab if needed and makes it the only active file.
// Folders are ignored.
func (w *Workspace) Select(id ID) bool {
	return w.apply(func(s *Store) *Store {
		r, ok := s.records[id]
		if !ok || r.Kind != File {
			w.ignored("select", id, "not a file")
			return s
		}
		if s.active == id && slices.Contains(s.tabs, id) {
			return s
		}
		tabs := s.tabs
		if !slices.Contains(tabs, id) {
			tabs = append(slices.Clip(tabs), id)
		}
		return s.WithTabs(tabs, id)
	})
}

// Close removes the tab for id. Closing the active tab activates its left
// neighbour, or the new leftmost tab, or nothing when no tabs remain.
func (w *Workspace) Close(id ID) bool {
	return w.apply(func(s *Store) *Store {
		if !slices.Contains(s.tabs, id) {
			w.ignored("close", id, "not open")
			return s
		}
		tabs, active := closeTab(s.tabs, s.active, id)
		return s.WithTabs(tabs, active)
	})
}

func closeTab(tabs []ID, active, id ID) ([]ID, ID) {
	idx := slices.Index(tabs, id)
	if idx < 0 {
		return tabs, active
	}
	tabs = slices.Delete(slices.Clone(tabs), idx, idx+1)
	if active != id {
		return tabs, active
	}
	switch {
	case len(tabs) == 0:
		return tabs, ""
	case idx > 0:
		return tabs, tabs[idx-1]
	default:
		return tabs, tabs[0]
	}
}

// Edit replaces the content of a file and marks it modified.
func (w *Workspace) Edit(id ID, content string) bool {
	return w.apply(func(s *Store) *Store {
		r, ok := s.records[id]
		if !ok || r.Kind != File {
			w.ignored("edit", id, "not a file")
			return s
		}
		if r.Content == content && r.Modified {
			return s
		}
		return s.Update(id, func(r *Record) {
			r.Content = content
			r.Modified = true
		})
	})
}

// Save clears the modified flag. There is no backing storage to write to.
func (w *Workspace) Save(id ID) bool {
	return w.apply(func(s *Store) *Store {
		r, ok := s.records[id]
		if !ok || r.Kind != File || !r.Modified {
			return s
		}
		return s.Update(id, func(r *Record) { r.Modified = false })
	})
}

// SaveAll clears the modified flag on every file and reports how many were
// modified.
func (w *Workspace) SaveAll() int {
	var n int
	w.apply(func(s *Store) *Store {
		next := s
		for _, id := range s.order {
			if r := s.records[id]; r.Kind == File && r.Modified {
				next = next.Update(id, func(r *Record) { r.Modified = false })
				n++
			}
		}
		return next
	})
	return n
}

// Active returns the file shown in the editor, if any.
func (w *Workspace) Active() (Entity, bool) {
	s := w.Snapshot()
	if s.active == "" {
		return Entity{}, false
	}
	return s.Get(s.active)
}

// OpenFiles lists open files in tab order.
func (w *Workspace) OpenFiles() []Entity {
	s := w.Snapshot()
	out := make([]Entity, 0, len(s.tabs))
	for _, id := range s.tabs {
		if e, ok := s.Get(id); ok {
			out = append(out, e)
		}
	}
	return out
}

package workspace

import (
	"slices"
	"strings"

	"go.uber.org/zap"

	"void/highlight"
)

// validName rejects names that would make the derived path ambiguous.
func validName(name string) bool {
	return strings.TrimSpace(name) != "" && !strings.Contains(name, "/")
}

// CreateFile adds a file under parentID (or at the root when parentID is
// empty), opens it in a new tab and makes it the active file. It returns ""
// when the name is invalid or parentID is not an existing folder.
func (w *Workspace) CreateFile(name string, parentID ID) ID {
	return w.create(File, name, parentID)
}

// CreateFolder adds an expanded, empty folder.
func (w *Workspace) CreateFolder(name string, parentID ID) ID {
	return w.create(Folder, name, parentID)
}

func (w *Workspace) create(kind Kind, name string, parentID ID) ID {
	if !validName(name) {
		w.ignored("create", parentID, "invalid name")
		return ""
	}

	var created ID
	w.apply(func(s *Store) *Store {
		if parentID != "" {
			p, ok := s.records[parentID]
			if !ok || p.Kind != Folder {
				w.ignored("create", parentID, "parent is not a folder")
				return s
			}
		}
		id := w.uniqueID(s)
		if id == "" {
			w.ignored("create", parentID, "id generator exhausted")
			return s
		}

		rec := Record{ID: id, Name: name, Kind: kind, ParentID: parentID}
		if kind == File {
			rec.Content = highlight.Template(name)
		} else {
			rec.Expanded = true
		}

		next := s.Insert(rec)
		if parentID != "" {
			next = next.Update(parentID, func(p *Record) {
				p.ChildIDs = append(p.ChildIDs, id)
			})
		}
		if kind == File {
			next = next.WithTabs(append(next.Tabs(), id), id)
		}
		created = id
		return next
	})

	if created != "" {
		w.log.Debug("entity created",
			zap.String("id", string(created)), zap.String("name", name), zap.Stringer("kind", kind))
	}
	return created
}

func (w *Workspace) uniqueID(s *Store) ID {
	for range 8 {
		id := w.newID()
		if id != "" && !s.Contains(id) {
			return id
		}
	}
	return ""
}

// Rename changes the name of id. Path, level and language of the entity
// and of everything below it are derived from names, so nothing else needs
// rewriting.
func (w *Workspace) Rename(id ID, newName string) bool {
	if !validName(newName) {
		w.ignored("rename", id, "invalid name")
		return false
	}
	return w.apply(func(s *Store) *Store {
		r, ok := s.records[id]
		if !ok {
			w.ignored("rename", id, "not found")
			return s
		}
		if r.Name == newName {
			return s
		}
		return s.Update(id, func(r *Record) { r.Name = newName })
	})
}

// Delete removes id and, for folders, its whole descendant closure. Files
// in the closure leave the tab list; if the active file goes, the tab to
// its left (else the leftmost) becomes active.
func (w *Workspace) Delete(id ID) bool {
	var removed int
	ok := w.apply(func(s *Store) *Store {
		r, ok := s.records[id]
		if !ok {
			w.ignored("delete", id, "not found")
			return s
		}

		closure := s.descendants(id)
		next := s.RemoveMany(closure...)
		if r.ParentID != "" && next.Contains(r.ParentID) {
			next = next.Update(r.ParentID, func(p *Record) {
				p.ChildIDs = slices.DeleteFunc(p.ChildIDs, func(c ID) bool { return c == id })
			})
		}

		tabs, active := s.tabs, s.active
		for _, gone := range closure {
			tabs, active = closeTab(tabs, active, gone)
		}
		removed = len(closure)
		return next.WithTabs(tabs, active)
	})
	if ok {
		w.log.Debug("entity deleted", zap.String("id", string(id)), zap.Int("removed", removed))
	}
	return ok
}

// ToggleFolder flips the expanded state of a folder.
func (w *Workspace) ToggleFolder(id ID) bool {
	return w.apply(func(s *Store) *Store {
		r, ok := s.records[id]
		if !ok || r.Kind != Folder {
			w.ignored("toggle", id, "not a folder")
			return s
		}
		return s.Update(id, func(r *Record) { r.Expanded = !r.Expanded })
	})
}

// Move reparents id under newParentID, or to the root when newParentID is
// empty. Moving a folder into itself or into one of its descendants is
// refused.
func (w *Workspace) Move(id, newParentID ID) bool {
	return w.apply(func(s *Store) *Store {
		r, ok := s.records[id]
		if !ok {
			w.ignored("move", id, "not found")
			return s
		}
		if r.ParentID == newParentID {
			return s
		}
		if newParentID != "" {
			target, ok := s.records[newParentID]
			if !ok || target.Kind != Folder {
				w.ignored("move", id, "target is not a folder")
				return s
			}
			if slices.Contains(s.descendants(id), newParentID) {
				w.ignored("move", id, "target inside moved subtree")
				return s
			}
		}

		next := s
		if r.ParentID != "" && s.Contains(r.ParentID) {
			next = next.Update(r.ParentID, func(p *Record) {
				p.ChildIDs = slices.DeleteFunc(p.ChildIDs, func(c ID) bool { return c == id })
			})
		}
		next = next.Update(id, func(r *Record) { r.ParentID = newParentID })
		if newParentID != "" {
			next = next.Update(newParentID, func(p *Record) {
				p.ChildIDs = append(p.ChildIDs, id)
			})
		}
		return next
	})
}

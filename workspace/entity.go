// Package workspace is the in-memory virtual file tree behind the editor:
// a flat collection of file and folder records, the operations that keep
// it consistent, and the tab state layered on top of it.
package workspace

import "void/highlight"

// ID identifies an entity for the lifetime of a workspace.
type ID string

type Kind int

const (
	File Kind = iota
	Folder
)

func (k Kind) String() string {
	if k == Folder {
		return "folder"
	}
	return "file"
}

// Record holds the authoritative fields of an entity. Everything else an
// Entity exposes is derived from records when it is read.
type Record struct {
	ID       ID
	Name     string
	Kind     Kind
	Content  string
	ParentID ID
	ChildIDs []ID
	Expanded bool
	Modified bool
}

// Entity is a read-only view of a record with its derived fields filled in.
type Entity struct {
	ID       ID
	Name     string
	Path     string
	Kind     Kind
	Content  string
	Language string
	ParentID ID
	ChildIDs []ID
	Level    int
	Expanded bool
	Open     bool
	Active   bool
	Modified bool
}

func (e Entity) IsFolder() bool { return e.Kind == Folder }

func languageOf(r *Record) string {
	if r.Kind == Folder {
		return ""
	}
	return highlight.LanguageFor(r.Name)
}

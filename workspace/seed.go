package workspace

import (
	"fmt"
	"io"
	"path"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// SeedEntry describes one item of an initial workspace. Intermediate folders
// named by Path are created on demand.
type SeedEntry struct {
	Path      string `yaml:"path"`
	Content   string `yaml:"content,omitempty"`
	Folder    bool   `yaml:"folder,omitempty"`
	Collapsed bool   `yaml:"collapsed,omitempty"`
	Open      bool   `yaml:"open,omitempty"`
	Active    bool   `yaml:"active,omitempty"`
}

type seedDocument struct {
	Files []SeedEntry `yaml:"files"`
}

const welcome = `# Welcome to Void

A modern, sleek code editor for the terminal.

## Features
- Syntax highlighting for multiple languages
- Dark theme optimized for long coding sessions
- File management system
- Live HTML preview with inlined styles and scripts
- A built-in (simulated) AI assistant

Start coding by creating a new file or editing this one!
`

// DefaultSeed is the workspace shown when nothing else is loaded.
var DefaultSeed = []SeedEntry{
	{Path: "welcome.md", Content: welcome, Open: true, Active: true},
}

// LoadSeed parses a YAML seed document of the form
//
//	files:
//	  - path: src/app.js
//	    content: |
//	      console.log("hi")
//	    open: true
func LoadSeed(r io.Reader) ([]SeedEntry, error) {
	var doc seedDocument
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	return doc.Files, nil
}

// Seed bulk-loads entries into the workspace and reports how many entities
// were created. Files keep their given content and start unmodified; only
// entries marked Open or Active get a tab.
func (w *Workspace) Seed(entries []SeedEntry) int {
	var created int
	w.apply(func(s *Store) *Store {
		next := s
		tabs, active := s.Tabs(), s.active

		folders := make(map[string]ID)
		for _, e := range s.All() {
			if _, seen := folders[e.Path]; e.IsFolder() && !seen {
				folders[e.Path] = e.ID
			}
		}

		insert := func(rec Record) bool {
			id := w.uniqueID(next)
			if id == "" {
				return false
			}
			rec.ID = id
			next = next.Insert(rec)
			if rec.ParentID != "" {
				next = next.Update(rec.ParentID, func(p *Record) {
					p.ChildIDs = append(p.ChildIDs, id)
				})
			}
			created++
			return true
		}

		var ensureFolder func(p string) ID
		ensureFolder = func(p string) ID {
			if p == "" {
				return ""
			}
			if id, ok := folders[p]; ok {
				return id
			}
			dir, name := splitSeedPath(p)
			parent := ensureFolder(dir)
			if !insert(Record{Name: name, Kind: Folder, ParentID: parent, Expanded: true}) {
				return ""
			}
			id := next.order[len(next.order)-1]
			folders[p] = id
			return id
		}

		for _, e := range entries {
			p := cleanSeedPath(e.Path)
			if p == "" {
				continue
			}
			if e.Folder {
				if id := ensureFolder(p); id != "" && e.Collapsed {
					next = next.Update(id, func(r *Record) { r.Expanded = false })
				}
				continue
			}

			dir, name := splitSeedPath(p)
			if !insert(Record{Name: name, Kind: File, Content: e.Content, ParentID: ensureFolder(dir)}) {
				continue
			}
			id := next.order[len(next.order)-1]
			if e.Open || e.Active {
				tabs = append(tabs, id)
			}
			if e.Active {
				active = id
			}
		}

		if created == 0 {
			return s
		}
		return next.WithTabs(tabs, active)
	})

	w.log.Debug("workspace seeded", zap.Int("entries", len(entries)), zap.Int("created", created))
	return created
}

func cleanSeedPath(p string) string {
	p = strings.Trim(strings.ReplaceAll(p, "\\", "/"), "/")
	if p == "" {
		return ""
	}
	p = path.Clean(p)
	if p == "." || strings.HasPrefix(p, "../") || p == ".." {
		return ""
	}
	return p
}

func splitSeedPath(p string) (dir, name string) {
	dir, name = path.Split(p)
	return strings.TrimSuffix(dir, "/"), name
}

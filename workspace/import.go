package workspace

import (
	"bytes"
	"fmt"
	"io/fs"
)

const maxImportSize = 1 << 20

// skipped mirrors the noise the explorer hides on disk.
var skipped = map[string]bool{
	".git":         true,
	"node_modules": true,
	"__pycache__":  true,
	"target":       true,
	".DS_Store":    true,
}

// ImportDir reads a directory tree into seed entries. Nothing is written
// back: the workspace keeps its own copy of every file. Binary and
// oversized files are left out.
func ImportDir(fsys fs.FS) ([]SeedEntry, error) {
	var entries []SeedEntry
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == "." {
			return nil
		}
		if skipped[d.Name()] {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			entries = append(entries, SeedEntry{Path: p, Folder: true, Collapsed: true})
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		if info.Size() > maxImportSize {
			return nil
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("read %s: %w", p, err)
		}
		if bytes.IndexByte(data, 0) >= 0 {
			return nil
		}
		entries = append(entries, SeedEntry{Path: p, Content: string(data)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("import: %w", err)
	}
	return entries, nil
}

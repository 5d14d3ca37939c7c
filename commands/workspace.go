package commands

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"void/workspace"
)

// loadWorkspace builds the starting workspace: the seed document when one
// is given, otherwise the directory, otherwise the welcome file.
func loadWorkspace(opts *globalOptions, dir string, log *zap.Logger) (*workspace.Workspace, error) {
	var (
		entries []workspace.SeedEntry
		err     error
	)
	switch {
	case opts.seed != "":
		entries, err = readSeed(opts.seed)
	case dir != "":
		entries, err = importDir(dir)
	default:
		entries = workspace.DefaultSeed
	}
	if err != nil {
		return nil, err
	}

	ws := workspace.New(workspace.WithLogger(log))
	n := ws.Seed(entries)
	log.Info("workspace loaded", zap.Int("entities", n), zap.String("dir", dir), zap.String("seed", opts.seed))
	return ws, nil
}

func readSeed(path string) ([]workspace.SeedEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed: %w", err)
	}
	defer f.Close()
	entries, err := workspace.LoadSeed(f)
	if err != nil {
		return nil, fmt.Errorf("load seed %s: %w", path, err)
	}
	return entries, nil
}

func importDir(dir string) ([]workspace.SeedEntry, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("open directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}
	return workspace.ImportDir(os.DirFS(dir))
}

// findFile resolves a slash separated workspace path to a file.
func findFile(ws *workspace.Workspace, p string) (workspace.Entity, bool) {
	p = strings.Trim(strings.ReplaceAll(p, "\\", "/"), "/")
	p = strings.TrimPrefix(p, "./")
	for _, e := range ws.Snapshot().All() {
		if !e.IsFolder() && e.Path == p {
			return e, true
		}
	}
	return workspace.Entity{}, false
}

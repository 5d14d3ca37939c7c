package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(nodes []*Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Name)
	}
	return out
}

func TestBuildTreeOrdersFoldersFirst(t *testing.T) {
	w := newTestWorkspace()
	w.CreateFile("zeta.txt", "")
	w.CreateFile("Alpha.txt", "")
	src := w.CreateFolder("src", "")
	w.CreateFolder("docs", "")
	w.CreateFile("main.go", src)
	w.CreateFolder("internal", src)

	roots := BuildTree(w.Snapshot())
	assert.Equal(t, []string{"docs", "src", "Alpha.txt", "zeta.txt"}, names(roots))

	srcNode := Find(roots, src)
	require.NotNil(t, srcNode)
	assert.Equal(t, []string{"internal", "main.go"}, names(srcNode.Children))
}

func TestBuildTreeIsDeterministic(t *testing.T) {
	w := newTestWorkspace()
	dir := w.CreateFolder("dir", "")
	for _, n := range []string{"c.js", "a.js", "b.js"} {
		w.CreateFile(n, dir)
	}
	first := names(Flatten(BuildTree(w.Snapshot())))
	for range 5 {
		assert.Equal(t, first, names(Flatten(BuildTree(w.Snapshot()))))
	}
	assert.Equal(t, []string{"dir", "a.js", "b.js", "c.js"}, first)
}

func TestBuildTreeTreatsOrphansAsRoots(t *testing.T) {
	s := NewStore().
		Insert(Record{ID: "a", Name: "a.txt", ParentID: "gone"}).
		Insert(Record{ID: "b", Name: "b.txt"})

	roots := BuildTree(s)
	assert.Equal(t, []string{"a.txt", "b.txt"}, names(roots))
	assert.Equal(t, "a.txt", s.Path("a"))
	assert.Equal(t, 0, s.Level("a"))
}

func TestFlattenSkipsCollapsedFolders(t *testing.T) {
	w := newTestWorkspace()
	open := w.CreateFolder("open", "")
	closed := w.CreateFolder("closed", "")
	w.CreateFile("visible.txt", open)
	w.CreateFile("hidden.txt", closed)
	w.ToggleFolder(closed)

	rows := Flatten(BuildTree(w.Snapshot()))
	assert.Equal(t, []string{"closed", "open", "visible.txt"}, names(rows))
	assert.Equal(t, 1, rows[2].Level)
}

func TestFindMissing(t *testing.T) {
	assert.Nil(t, Find(BuildTree(NewStore()), "nope"))
}

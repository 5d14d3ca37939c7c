package workspace

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloseActiveReactivatesPrevious(t *testing.T) {
	w := newTestWorkspace()
	a := w.CreateFile("A.txt", "")
	b := w.CreateFile("B.txt", "")

	require.True(t, w.Close(b))
	active, ok := w.Active()
	require.True(t, ok)
	assert.Equal(t, a, active.ID)
	assert.False(t, mustGet(t, w, b).Open)
	assert.True(t, w.Snapshot().Contains(b), "closing never deletes")
}

func TestCloseLeftmostActivatesNewLeftmost(t *testing.T) {
	w := newTestWorkspace()
	a := w.CreateFile("a.txt", "")
	b := w.CreateFile("b.txt", "")
	c := w.CreateFile("c.txt", "")
	w.Select(a)

	require.True(t, w.Close(a))
	assert.Equal(t, b, w.Snapshot().ActiveID())
	assert.Equal(t, []ID{b, c}, w.Snapshot().Tabs())
}

func TestCloseInactiveKeepsActive(t *testing.T) {
	w := newTestWorkspace()
	a := w.CreateFile("a.txt", "")
	b := w.CreateFile("b.txt", "")

	require.True(t, w.Close(a))
	assert.Equal(t, b, w.Snapshot().ActiveID())
}

func TestCloseOnlyFileLeavesNothingActive(t *testing.T) {
	w := newTestWorkspace()
	a := w.CreateFile("only.txt", "")

	require.True(t, w.Close(a))
	_, ok := w.Active()
	assert.False(t, ok)
	assert.Empty(t, w.OpenFiles())
	assert.False(t, w.Close(a), "second close is a no-op")
}

func TestSelectReopensAndIgnoresFolders(t *testing.T) {
	w := newTestWorkspace()
	dir := w.CreateFolder("dir", "")
	a := w.CreateFile("a.txt", dir)
	b := w.CreateFile("b.txt", dir)
	w.Close(a)

	require.True(t, w.Select(a))
	assert.Equal(t, []ID{b, a}, w.Snapshot().Tabs())
	assert.Equal(t, a, w.Snapshot().ActiveID())

	assert.False(t, w.Select(dir))
	assert.False(t, w.Select(a), "already active")
	assert.False(t, w.Select("missing"))
	checkInvariants(t, w.Snapshot())
}

func TestEditAndSave(t *testing.T) {
	w := newTestWorkspace()
	dir := w.CreateFolder("dir", "")
	a := w.CreateFile("a.txt", "")
	b := w.CreateFile("b.txt", "")

	require.True(t, w.Edit(a, "hello"))
	e := mustGet(t, w, a)
	assert.Equal(t, "hello", e.Content)
	assert.True(t, e.Modified)
	assert.False(t, w.Edit(dir, "x"))

	require.True(t, w.Save(a))
	assert.False(t, mustGet(t, w, a).Modified)
	assert.Equal(t, "hello", mustGet(t, w, a).Content)
	assert.False(t, w.Save(a))

	w.Edit(a, "one")
	w.Edit(b, "two")
	assert.Equal(t, 2, w.SaveAll())
	assert.Equal(t, 0, w.SaveAll())
}

func TestOpenFilesInTabOrder(t *testing.T) {
	w := newTestWorkspace()
	a := w.CreateFile("a.txt", "")
	b := w.CreateFile("b.txt", "")
	w.Select(a)

	files := w.OpenFiles()
	require.Len(t, files, 2)
	assert.Equal(t, a, files[0].ID)
	assert.Equal(t, b, files[1].ID)
	assert.True(t, files[0].Active)
	assert.False(t, files[1].Active)
}

// checkTabs asserts the tab list and the active id agree with the entities.
func checkTabs(t *testing.T, s *Store) {
	t.Helper()
	checkInvariants(t, s)
	tabs := s.Tabs()
	if active := s.ActiveID(); active != "" {
		assert.Contains(t, tabs, active)
	}
	for _, id := range tabs {
		e, ok := s.Get(id)
		if assert.True(t, ok, "tab %s has no entity", id) {
			assert.False(t, e.IsFolder(), "folder %s is open in a tab", id)
			assert.True(t, e.Open)
			assert.Equal(t, s.ActiveID() == id, e.Active)
		}
	}
	for _, e := range s.All() {
		assert.Equal(t, slices.Contains(tabs, e.ID), e.Open, "open flag of %s", e.ID)
	}
}

func TestRandomSelectCloseDeleteKeepsOneActive(t *testing.T) {
	w := newTestWorkspace()
	rng := rand.New(rand.NewPCG(7, 11))

	d1 := w.CreateFolder("d1", "")
	d2 := w.CreateFolder("d2", d1)
	pool := []ID{d1, d2}
	for i, parent := range []ID{"", "", d1, d1, d2, d2} {
		pool = append(pool, w.CreateFile(fmt.Sprintf("f%d.js", i), parent))
	}
	checkTabs(t, w.Snapshot())

	for step := 0; step < 300; step++ {
		id := pool[rng.IntN(len(pool))]
		switch op := rng.IntN(10); {
		case op < 5:
			w.Select(id)
		case op < 8:
			w.Close(id)
		case op < 9:
			w.Delete(id)
		default:
			if nid := w.CreateFile(fmt.Sprintf("n%d.py", step), id); nid != "" {
				pool = append(pool, nid)
			}
		}
		checkTabs(t, w.Snapshot())
		if t.Failed() {
			t.Fatalf("invariants broken at step %d", step)
		}
	}
}

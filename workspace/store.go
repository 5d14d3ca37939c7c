package workspace

import (
	"maps"
	"slices"
	"strings"
)

// Store is an immutable snapshot of the entity collection. Every write
// returns a new Store and leaves the receiver untouched, so a reader holding
// a snapshot never observes a half-applied mutation.
//
// The store keeps no invariants of its own. Callers that insert, update or
// remove records are responsible for parent/child symmetry and tab
// coherence.
type Store struct {
	records map[ID]*Record // never mutated once placed in a store
	order   []ID           // insertion order, used for enumeration
	tabs    []ID
	active  ID
}

func NewStore() *Store {
	return &Store{records: make(map[ID]*Record)}
}

func (s *Store) clone() *Store {
	return &Store{
		records: maps.Clone(s.records),
		order:   s.order,
		tabs:    s.tabs,
		active:  s.active,
	}
}

func (s *Store) Len() int { return len(s.order) }

func (s *Store) Contains(id ID) bool {
	_, ok := s.records[id]
	return ok
}

// Record returns a copy of the authoritative record for id.
func (s *Store) Record(id ID) (Record, bool) {
	r, ok := s.records[id]
	if !ok {
		return Record{}, false
	}
	cp := *r
	cp.ChildIDs = slices.Clone(r.ChildIDs)
	return cp, true
}

func (s *Store) Get(id ID) (Entity, bool) {
	r, ok := s.records[id]
	if !ok {
		return Entity{}, false
	}
	return s.materialize(r), true
}

// All enumerates every entity in insertion order.
func (s *Store) All() []Entity {
	out := make([]Entity, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.materialize(s.records[id]))
	}
	return out
}

// Insert adds r, or replaces the record with the same id in place.
func (s *Store) Insert(r Record) *Store {
	next := s.clone()
	r.ChildIDs = slices.Clone(r.ChildIDs)
	if _, exists := s.records[r.ID]; !exists {
		next.order = append(slices.Clip(s.order), r.ID)
	}
	next.records[r.ID] = &r
	return next
}

// Update applies patch to a copy of the record for id. ID and Kind are
// restored after the patch runs since neither may change.
func (s *Store) Update(id ID, patch func(*Record)) *Store {
	r, ok := s.records[id]
	if !ok {
		return s
	}
	cp := *r
	cp.ChildIDs = slices.Clone(r.ChildIDs)
	patch(&cp)
	cp.ID, cp.Kind = r.ID, r.Kind

	next := s.clone()
	next.records[id] = &cp
	return next
}

func (s *Store) RemoveMany(ids ...ID) *Store {
	drop := make(map[ID]bool, len(ids))
	for _, id := range ids {
		if _, ok := s.records[id]; ok {
			drop[id] = true
		}
	}
	if len(drop) == 0 {
		return s
	}

	next := s.clone()
	next.order = make([]ID, 0, len(s.order)-len(drop))
	for _, id := range s.order {
		if drop[id] {
			delete(next.records, id)
			continue
		}
		next.order = append(next.order, id)
	}
	return next
}

// Tabs returns the ids of open files in tab order.
func (s *Store) Tabs() []ID { return slices.Clone(s.tabs) }

// ActiveID returns the active file, or "" when nothing is active.
func (s *Store) ActiveID() ID { return s.active }

func (s *Store) WithTabs(tabs []ID, active ID) *Store {
	next := s.clone()
	next.tabs = slices.Clone(tabs)
	next.active = active
	return next
}

// Path joins the names from the root down to id. An ancestor missing from
// the store ends the walk, which makes orphans behave like roots.
func (s *Store) Path(id ID) string {
	p, _ := s.lineage(id)
	return p
}

func (s *Store) Level(id ID) int {
	_, l := s.lineage(id)
	return l
}

func (s *Store) lineage(id ID) (string, int) {
	r, ok := s.records[id]
	if !ok {
		return "", 0
	}
	names := []string{r.Name}
	for p := r.ParentID; p != "" && len(names) <= len(s.records); {
		parent, ok := s.records[p]
		if !ok {
			break
		}
		names = append(names, parent.Name)
		p = parent.ParentID
	}
	slices.Reverse(names)
	return strings.Join(names, "/"), len(names) - 1
}

func (s *Store) materialize(r *Record) Entity {
	path, level := s.lineage(r.ID)
	e := Entity{
		ID:       r.ID,
		Name:     r.Name,
		Path:     path,
		Kind:     r.Kind,
		Content:  r.Content,
		Language: languageOf(r),
		ParentID: r.ParentID,
		ChildIDs: slices.Clone(r.ChildIDs),
		Level:    level,
	}
	if r.Kind == Folder {
		e.Expanded = r.Expanded
		return e
	}
	e.Open = slices.Contains(s.tabs, r.ID)
	e.Active = r.ID == s.active
	e.Modified = r.Modified
	return e
}

// descendants returns id followed by every entity reachable through
// ChildIDs, depth first.
func (s *Store) descendants(id ID) []ID {
	var out []ID
	seen := make(map[ID]bool)
	var walk func(ID)
	walk = func(cur ID) {
		if seen[cur] {
			return
		}
		seen[cur] = true
		out = append(out, cur)
		r, ok := s.records[cur]
		if !ok || r.Kind != Folder {
			return
		}
		for _, c := range r.ChildIDs {
			walk(c)
		}
	}
	walk(id)
	return out
}

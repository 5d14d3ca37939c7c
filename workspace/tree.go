package workspace

import (
	"slices"
	"strings"
)

// Node is one entry of the explorer hierarchy.
type Node struct {
	Entity
	Children []*Node
}

// BuildTree derives the parent/child hierarchy from the flat store.
// Entities without a parent, or whose parent is missing, become roots.
// Every sibling group is ordered folders first, then by name.
func BuildTree(s *Store) []*Node {
	var roots []*Node
	byParent := make(map[ID][]*Node)

	for _, e := range s.All() {
		n := &Node{Entity: e}
		if e.ParentID == "" || !s.Contains(e.ParentID) {
			roots = append(roots, n)
			continue
		}
		byParent[e.ParentID] = append(byParent[e.ParentID], n)
	}

	// Children are sorted before their own sibling group; the order only
	// depends on (kind, name) so the direction does not matter.
	var attach func(nodes []*Node)
	attach = func(nodes []*Node) {
		for _, n := range nodes {
			n.Children = byParent[n.ID]
			attach(n.Children)
		}
		sortSiblings(nodes)
	}
	attach(roots)
	return roots
}

func sortSiblings(nodes []*Node) {
	slices.SortStableFunc(nodes, func(a, b *Node) int {
		if a.Kind != b.Kind {
			if a.Kind == Folder {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Name, b.Name)
	})
}

// Flatten lists the visible rows of a forest: every root, and the children
// of expanded folders, in display order.
func Flatten(nodes []*Node) []*Node {
	var out []*Node
	var walk func([]*Node)
	walk = func(level []*Node) {
		for _, n := range level {
			out = append(out, n)
			if n.Kind == Folder && n.Expanded {
				walk(n.Children)
			}
		}
	}
	walk(nodes)
	return out
}

// Find returns the node for id anywhere in the forest.
func Find(nodes []*Node, id ID) *Node {
	for _, n := range nodes {
		if n.ID == id {
			return n
		}
		if found := Find(n.Children, id); found != nil {
			return found
		}
	}
	return nil
}

package editor

import (
	models "docstudio/internal/domain/models/docgen"
)

// Node is one document version in a Tree
type Node struct {
	DocID     string
	LatestID  string
	Name      string
	CreatedBy string
	CreatedAt string
	Version   string
	Status    string
	RuleID    string
	// ParentID is empty for the root
	ParentID string
	Children []int
}

// IsLatest reports whether the node is the newest version of its graph
func (n Node) IsLatest() bool { return n.DocID == n.LatestID }

// Tree is a document graph stored as an arena. Nodes refer to each other by
// slice index (children) or id (parent).
type Tree struct {
	nodes []Node
	index map[string]int
}

// NewTree flattens a nested DocNode. Repeated ids keep their first occurrence.
func NewTree(root *models.DocNode) *Tree {
	t := &Tree{index: make(map[string]int)}
	if root != nil {
		t.add(*root, "")
	}
	return t
}

func (t *Tree) add(n models.DocNode, parentID string) (int, bool) {
	if _, seen := t.index[n.DocID]; seen {
		return 0, false
	}

	idx := len(t.nodes)
	t.nodes = append(t.nodes, Node{
		DocID:     n.DocID,
		LatestID:  n.LatestID,
		Name:      n.Name,
		CreatedBy: n.CreatedBy,
		CreatedAt: n.CreatedAt,
		Version:   n.Version,
		Status:    n.Status,
		RuleID:    n.RuleID,
		ParentID:  parentID,
	})
	t.index[n.DocID] = idx

	for _, child := range n.ChildrenList {
		if childIdx, ok := t.add(child, n.DocID); ok {
			t.nodes[idx].Children = append(t.nodes[idx].Children, childIdx)
		}
	}
	return idx, true
}

// Len returns the number of nodes
func (t *Tree) Len() int { return len(t.nodes) }

// Root returns the top node
func (t *Tree) Root() (Node, bool) {
	if len(t.nodes) == 0 {
		return Node{}, false
	}
	return t.nodes[0], true
}

// Get looks a node up by document id
func (t *Tree) Get(docID string) (Node, bool) {
	idx, ok := t.index[docID]
	if !ok {
		return Node{}, false
	}
	return t.nodes[idx], true
}

// Children returns the direct children of docID in order
func (t *Tree) Children(docID string) []Node {
	idx, ok := t.index[docID]
	if !ok {
		return nil
	}
	out := make([]Node, 0, len(t.nodes[idx].Children))
	for _, c := range t.nodes[idx].Children {
		out = append(out, t.nodes[c])
	}
	return out
}

// Parent returns the parent of docID; false for the root or unknown ids
func (t *Tree) Parent(docID string) (Node, bool) {
	n, ok := t.Get(docID)
	if !ok || n.ParentID == "" {
		return Node{}, false
	}
	return t.Get(n.ParentID)
}

// Path returns the ids from the root down to docID
func (t *Tree) Path(docID string) []string {
	var path []string
	for id := docID; id != ""; {
		n, ok := t.Get(id)
		if !ok {
			return nil
		}
		path = append([]string{id}, path...)
		id = n.ParentID
	}
	return path
}

// Walk visits nodes depth-first in child order. fn returning false prunes
// the subtree below that node.
func (t *Tree) Walk(fn func(n Node, depth int) bool) {
	if len(t.nodes) == 0 {
		return
	}
	var visit func(idx, depth int)
	visit = func(idx, depth int) {
		if !fn(t.nodes[idx], depth) {
			return
		}
		for _, c := range t.nodes[idx].Children {
			visit(c, depth+1)
		}
	}
	visit(0, 0)
}

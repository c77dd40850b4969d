// Package tree builds the visible folder hierarchy from the flat folder list
// returned by the document backend.
package tree

import (
	"docshare/internal/access"
	"docshare/internal/domain/models"
)

// Node is a folder as placed in the rendered hierarchy
type Node struct {
	ID       string                `json:"id"`
	Name     string                `json:"name"`
	ParentID *string               `json:"parentId"`
	Level    int                   `json:"level"`
	Access   access.Classification `json:"access"`
	// Expanded is only ever true for fully accessible folders
	Expanded bool    `json:"expanded"`
	Children []*Node `json:"children"`
}

// ExpansionSet is the set of folder ids the user has opened
type ExpansionSet map[string]struct{}

// NewExpansionSet builds a set from ids
func NewExpansionSet(ids ...string) ExpansionSet {
	s := make(ExpansionSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Contains reports whether id is expanded
func (s ExpansionSet) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// Compose returns the visible children of parentID (nil for the root) at
// level, descending into expanded folders. Children keep backend order.
func Compose(folders []models.Folder, parentID *string, level int, expanded ExpansionSet) []*Node {
	c := &composer{
		byParent: indexByParent(folders),
		expanded: expanded,
		visited:  make(map[string]bool),
	}
	key := ""
	if parentID != nil {
		key = *parentID
	}
	return c.compose(key, level)
}

type composer struct {
	byParent map[string][]*models.Folder
	expanded ExpansionSet
	visited  map[string]bool
}

func (c *composer) compose(parentID string, level int) []*Node {
	nodes := make([]*Node, 0)

	for _, f := range c.byParent[parentID] {
		class := access.Classify(f)
		if class == access.Hidden {
			continue
		}
		// parent references are expected to be acyclic; guard anyway
		if c.visited[f.ID] {
			continue
		}
		c.visited[f.ID] = true

		node := &Node{
			ID:       f.ID,
			Name:     f.Name,
			ParentID: f.ParentID,
			Level:    level,
			Access:   class,
			Children: []*Node{},
		}

		if class == access.Full && c.expanded.Contains(f.ID) {
			node.Expanded = true
			node.Children = c.compose(f.ID, level+1)
		}

		nodes = append(nodes, node)
	}

	return nodes
}

func indexByParent(folders []models.Folder) map[string][]*models.Folder {
	byParent := make(map[string][]*models.Folder)
	for i := range folders {
		f := &folders[i]
		parent := f.Parent()
		byParent[parent] = append(byParent[parent], f)
	}
	return byParent
}

// Flatten lists nodes depth-first in display order
func Flatten(nodes []*Node) []*Node {
	var out []*Node
	for _, n := range nodes {
		out = append(out, n)
		out = append(out, Flatten(n.Children)...)
	}
	return out
}

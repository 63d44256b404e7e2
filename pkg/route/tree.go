package route

import (
	"path"
	"sort"
)

type TreeNode struct {
	Entry    Entry
	Children []*TreeNode
}

// Tree nests the routes by URL hierarchy: the parent of a route is the closest ancestor path that
// is itself a route. The home route is never used as a parent. Roots and children are sorted by path.
func (t *Table) Tree() []*TreeNode {
	nodes := make(map[string]*TreeNode, len(t.entries))
	for _, e := range t.entries {
		nodes[e.Path] = &TreeNode{Entry: e}
	}

	paths := t.Paths()
	sort.Strings(paths)

	roots := make([]*TreeNode, 0)
	for _, p := range paths {
		node := nodes[p]
		parent := closestParent(p, nodes)
		if parent == nil {
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	return roots
}

func closestParent(p string, nodes map[string]*TreeNode) *TreeNode {
	for candidate := path.Dir(p); candidate != "/" && candidate != "."; candidate = path.Dir(candidate) {
		if node, ok := nodes[candidate]; ok {
			return node
		}
	}

	return nil
}

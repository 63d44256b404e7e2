package sidebar

import (
	"encoding/json"
	"fmt"
)

// Node is a sidebar tree element: either a *Category or a *DocRef. The unexported marker method
// keeps the set of variants closed, so type switches over Node are exhaustive.
type Node interface {
	isNode()
}

type Category struct {
	Label string
	Items []Node
}

type DocRef struct {
	ID    string
	Label string
}

func (*Category) isNode() {}
func (*DocRef) isNode()   {}

func (c *Category) MarshalJSON() ([]byte, error) {
	items := c.Items
	if items == nil {
		items = []Node{}
	}

	return json.Marshal(struct {
		Type  string `json:"type"`
		Label string `json:"label"`
		Items []Node `json:"items"`
	}{"category", c.Label, items})
}

func (d *DocRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string `json:"type"`
		ID    string `json:"id"`
		Label string `json:"label"`
	}{"doc", d.ID, d.Label})
}

// Sidebar is one named navigation tree.
type Sidebar struct {
	ID    string `json:"id"`
	Items []Node `json:"items"`
}

// Sidebars are ordered by id.
type Sidebars []*Sidebar

func (s Sidebars) Get(id string) *Sidebar {
	for _, sb := range s {
		if sb.ID == id {
			return sb
		}
	}

	return nil
}

// Walk visits every node depth-first in declared order. Returning an error stops the walk.
func Walk(nodes []Node, fn func(node Node, depth int) error) error {
	return walk(nodes, 0, fn)
}

func walk(nodes []Node, depth int, fn func(node Node, depth int) error) error {
	for _, node := range nodes {
		if err := fn(node, depth); err != nil {
			return err
		}

		switch n := node.(type) {
		case *Category:
			if err := walk(n.Items, depth+1, fn); err != nil {
				return err
			}
		case *DocRef:
		default:
			panic(fmt.Sprintf("unknown sidebar node type %T", node))
		}
	}

	return nil
}

// DocRefs maps each referenced document id to the ids of the sidebars that reference it, in
// sidebar order. A sidebar appears once per reference.
func (s Sidebars) DocRefs() map[string][]string {
	refs := make(map[string][]string)
	for _, sb := range s {
		_ = Walk(sb.Items, func(node Node, _ int) error {
			if ref, ok := node.(*DocRef); ok {
				refs[ref.ID] = append(refs[ref.ID], sb.ID)
			}
			return nil
		})
	}

	return refs
}

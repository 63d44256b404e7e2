package sidebar

import (
	"fmt"
)

// LabelPolicy decides what the label override does with a DocRef whose document is missing.
type LabelPolicy int

const (
	// LabelPolicyStrict fails with a *ConfigurationError, the same way the builder does.
	LabelPolicyStrict LabelPolicy = iota
	// LabelPolicyLenient leaves the node untouched.
	LabelPolicyLenient
)

// Relabel returns a copy of the sidebars in which every DocRef is labelled with its source file
// name minus the content extension. The front-matter title is never used. Order and nesting are
// preserved exactly.
func Relabel(sidebars Sidebars, docs DocumentGetter, policy LabelPolicy) (Sidebars, error) {
	problems := make([]Problem, 0)
	out := make(Sidebars, 0, len(sidebars))
	for _, sb := range sidebars {
		out = append(out, &Sidebar{
			ID:    sb.ID,
			Items: relabelNodes(sb.ID, "", sb.Items, docs, policy, &problems),
		})
	}

	if len(problems) > 0 {
		return nil, &ConfigurationError{Problems: problems}
	}

	return out, nil
}

func relabelNodes(sidebarID, location string, nodes []Node, docs DocumentGetter, policy LabelPolicy, problems *[]Problem) []Node {
	out := make([]Node, 0, len(nodes))
	for idx, node := range nodes {
		loc := fmt.Sprintf("%s[%d]", location, idx)

		switch n := node.(type) {
		case *Category:
			out = append(out, &Category{
				Label: n.Label,
				Items: relabelNodes(sidebarID, loc+".items", n.Items, docs, policy, problems),
			})

		case *DocRef:
			doc, ok := docs.Get(n.ID)
			if !ok {
				if policy == LabelPolicyStrict {
					*problems = append(*problems, Problem{
						Kind:      ProblemUnresolvedDoc,
						SidebarID: sidebarID,
						Location:  loc,
						DocID:     n.ID,
						Message:   fmt.Sprintf("cannot label document '%s', it does not exist", n.ID),
					})
				}

				out = append(out, &DocRef{ID: n.ID, Label: n.Label})
				continue
			}

			out = append(out, &DocRef{ID: n.ID, Label: doc.BaseName()})

		default:
			panic(fmt.Sprintf("unknown sidebar node type %T", node))
		}
	}

	return out
}

package sidebar

import (
	"fmt"
	"strings"
)

type ProblemKind int

const (
	// ProblemUnresolvedDoc is a reference to a document id that has no content file.
	ProblemUnresolvedDoc ProblemKind = iota
	// ProblemInvalidItem is a structurally invalid sidebar item.
	ProblemInvalidItem
)

type Problem struct {
	Kind      ProblemKind
	SidebarID string
	// Location points at the item inside the sidebar, e.g. "[1].items[0]".
	Location string
	DocID    string
	Message  string
}

func (p Problem) String() string {
	return fmt.Sprintf("sidebar '%s' %s: %s", p.SidebarID, p.Location, p.Message)
}

// ConfigurationError is fatal for a build. It carries every problem found, not only the first.
type ConfigurationError struct {
	Problems []Problem
}

func (e *ConfigurationError) Error() string {
	lines := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		lines = append(lines, p.String())
	}

	noun := "problem"
	if len(e.Problems) > 1 {
		noun += "s"
	}

	return fmt.Sprintf("invalid sidebar configuration, found %d %s: %s", len(e.Problems), noun, strings.Join(lines, "; "))
}

// UnresolvedIDs returns the referenced document ids that have no content file.
func (e *ConfigurationError) UnresolvedIDs() []string {
	ids := make([]string, 0)
	for _, p := range e.Problems {
		if p.Kind == ProblemUnresolvedDoc {
			ids = append(ids, p.DocID)
		}
	}

	return ids
}

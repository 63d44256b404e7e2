package content

import (
	"fmt"
	"sort"
	"strings"
)

type DuplicateDocumentError struct {
	ID      string
	Sources []string
}

func (e *DuplicateDocumentError) Error() string {
	return fmt.Sprintf("multiple files resolve to the document id '%s': %s", e.ID, strings.Join(e.Sources, ", "))
}

// Set is an immutable, id-ordered collection of documents.
type Set struct {
	docs []*Document
	byID map[string]*Document
}

// NewSet orders the documents by id and rejects two files resolving to the same id.
func NewSet(docs []*Document) (*Set, error) {
	sorted := make([]*Document, len(docs))
	copy(sorted, docs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].ID == sorted[j].ID {
			return sorted[i].Source < sorted[j].Source
		}
		return sorted[i].ID < sorted[j].ID
	})

	byID := make(map[string]*Document, len(sorted))
	for _, doc := range sorted {
		if existing, ok := byID[doc.ID]; ok {
			return nil, &DuplicateDocumentError{ID: doc.ID, Sources: []string{existing.Source, doc.Source}}
		}
		byID[doc.ID] = doc
	}

	return &Set{docs: sorted, byID: byID}, nil
}

func (s *Set) Get(id string) (*Document, bool) {
	doc, ok := s.byID[id]
	return doc, ok
}

// All returns the documents in id order. The slice is a copy.
func (s *Set) All() []*Document {
	out := make([]*Document, len(s.docs))
	copy(out, s.docs)
	return out
}

func (s *Set) Len() int {
	return len(s.docs)
}

// InDir returns the documents under the given directory, recursively, in id order. An empty dir
// or "." selects every document.
func (s *Set) InDir(dir string) []*Document {
	dir = strings.Trim(dir, "/")
	if dir == "" || dir == "." {
		return s.All()
	}

	prefix := dir + "/"
	out := make([]*Document, 0)
	for _, doc := range s.docs {
		if strings.HasPrefix(doc.ID, prefix) {
			out = append(out, doc)
		}
	}

	return out
}

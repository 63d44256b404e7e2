package route

import (
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/bruin-data/docsite/pkg/content"
	"github.com/bruin-data/docsite/pkg/sidebar"
)

// Component is an opaque reference to whatever renders a route.
type Component string

const (
	ComponentDocItem Component = "@theme/DocItem"
)

type Entry struct {
	Path      string    `json:"path"`
	Component Component `json:"component"`
	SidebarID string    `json:"sidebarId,omitempty"`
	DocID     string    `json:"docId,omitempty"`
	Exact     bool      `json:"exact"`
}

// IsContent reports whether the route was derived from a content document.
func (e Entry) IsContent() bool {
	return e.DocID != ""
}

// Table is the ordered, path-unique list of routes produced by a build.
type Table struct {
	entries []Entry
	byPath  map[string]int
}

func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

func (t *Table) Len() int {
	return len(t.entries)
}

func (t *Table) Lookup(p string) (Entry, bool) {
	idx, ok := t.byPath[p]
	if !ok {
		return Entry{}, false
	}

	return t.entries[idx], true
}

func (t *Table) Paths() []string {
	paths := make([]string, 0, len(t.entries))
	for _, e := range t.entries {
		paths = append(paths, e.Path)
	}

	return paths
}

func (t *Table) MarshalJSON() ([]byte, error) {
	entries := t.entries
	if entries == nil {
		entries = []Entry{}
	}

	return json.Marshal(entries)
}

type Duplicate struct {
	Path   string
	Owners []string
}

// DuplicateRouteError is fatal for a build.
type DuplicateRouteError struct {
	Duplicates []Duplicate
}

func (e *DuplicateRouteError) Error() string {
	parts := make([]string, 0, len(e.Duplicates))
	for _, d := range e.Duplicates {
		parts = append(parts, fmt.Sprintf("'%s' is produced by %s", d.Path, strings.Join(d.Owners, " and ")))
	}

	return "duplicate route paths: " + strings.Join(parts, "; ")
}

type Builder struct {
	docsBasePath string
	fixed        []Entry
}

// NewBuilder creates a builder that mounts documents under docsBasePath and appends the given
// fixed routes after the content routes.
func NewBuilder(docsBasePath string, fixed []Entry) *Builder {
	return &Builder{
		docsBasePath: normalize(docsBasePath),
		fixed:        fixed,
	}
}

// Build emits one route per document, in the given order, followed by the fixed routes. Sidebar
// nesting never implies route nesting; only the document path does.
func (b *Builder) Build(docs []*content.Document, sidebars sidebar.Sidebars) (*Table, error) {
	owners := make(map[string][]string)
	order := make([]string, 0, len(docs)+len(b.fixed))
	entries := make(map[string]Entry, len(docs)+len(b.fixed))

	add := func(e Entry, owner string) {
		if _, seen := owners[e.Path]; !seen {
			order = append(order, e.Path)
			entries[e.Path] = e
		}
		owners[e.Path] = append(owners[e.Path], owner)
	}

	refs := sidebars.DocRefs()
	for _, doc := range docs {
		e := Entry{
			Path:      b.DocPath(doc),
			Component: ComponentDocItem,
			DocID:     doc.ID,
			Exact:     true,
		}
		if ids, ok := refs[doc.ID]; ok {
			e.SidebarID = ids[0]
		}

		add(e, fmt.Sprintf("document '%s'", doc.Source))
	}

	for _, f := range b.fixed {
		f.Path = normalize(f.Path)
		f.Exact = true
		add(f, fmt.Sprintf("fixed route '%s'", f.Component))
	}

	duplicates := make([]Duplicate, 0)
	for _, p := range order {
		if len(owners[p]) > 1 {
			duplicates = append(duplicates, Duplicate{Path: p, Owners: owners[p]})
		}
	}
	if len(duplicates) > 0 {
		return nil, &DuplicateRouteError{Duplicates: duplicates}
	}

	table := &Table{
		entries: make([]Entry, 0, len(order)),
		byPath:  make(map[string]int, len(order)),
	}
	for i, p := range order {
		table.entries = append(table.entries, entries[p])
		table.byPath[p] = i
	}

	return table, nil
}

// DocPath is the URL path a document is served under. It always stays under the docs base path,
// slugs climbing out of it with ".." are clamped at the base.
func (b *Builder) DocPath(doc *content.Document) string {
	if slug := strings.TrimSpace(doc.FrontMatter.Slug); slug != "" {
		if !strings.HasPrefix(slug, "/") {
			slug = path.Join(slugifyPath(doc.Dir()), slug)
		}

		return normalize(path.Join(b.docsBasePath, normalize(slug)))
	}

	dir := slugifyPath(doc.Dir())
	base := doc.BaseName()
	if strings.EqualFold(base, "index") || strings.EqualFold(base, "readme") {
		return normalize(path.Join(b.docsBasePath, dir))
	}

	return normalize(path.Join(b.docsBasePath, dir, Slugify(base)))
}

func normalize(p string) string {
	p = path.Clean("/" + strings.TrimSpace(p))
	return p
}

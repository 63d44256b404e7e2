package sidebar

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bruin-data/docsite/pkg/content"
)

type DocumentGetter interface {
	Get(id string) (*content.Document, bool)
}

type Documents interface {
	DocumentGetter
	InDir(dir string) []*content.Document
}

type Builder struct {
	docs Documents
}

func NewBuilder(docs Documents) *Builder {
	return &Builder{docs: docs}
}

// Build turns the configuration into sidebar trees, preserving declared order and nesting.
// Every problem across all sidebars is collected; when there is any, the partially built trees are
// returned together with a *ConfigurationError, which callers must treat as fatal.
func (b *Builder) Build(cfg Config) (Sidebars, error) {
	problems := make([]Problem, 0)
	sidebars := make(Sidebars, 0, len(cfg))
	for _, id := range cfg.IDs() {
		sidebars = append(sidebars, &Sidebar{
			ID:    id,
			Items: b.buildItems(id, "", cfg[id], &problems),
		})
	}

	if len(problems) > 0 {
		return sidebars, &ConfigurationError{Problems: problems}
	}

	return sidebars, nil
}

func (b *Builder) buildItems(sidebarID, location string, items Items, problems *[]Problem) []Node {
	nodes := make([]Node, 0, len(items))
	for idx, item := range items {
		loc := fmt.Sprintf("%s[%d]", location, idx)
		invalid := func(msg string) {
			*problems = append(*problems, Problem{
				Kind:      ProblemInvalidItem,
				SidebarID: sidebarID,
				Location:  loc,
				Message:   fmt.Sprintf("%s (line %d)", msg, item.Line),
			})
		}

		switch item.Type {
		case ItemTypeDoc:
			if strings.TrimSpace(item.ID) == "" {
				invalid("a doc item must have an id")
				continue
			}

			id := content.IDFromSource(item.ID)
			doc, ok := b.docs.Get(id)
			if !ok {
				*problems = append(*problems, Problem{
					Kind:      ProblemUnresolvedDoc,
					SidebarID: sidebarID,
					Location:  loc,
					DocID:     id,
					Message:   fmt.Sprintf("document '%s' does not exist", id),
				})
				continue
			}

			label := item.Label
			if label == "" {
				label = doc.DefaultLabel()
			}
			nodes = append(nodes, &DocRef{ID: doc.ID, Label: label})

		case ItemTypeCategory:
			if item.Label == "" {
				invalid("a category must have a label")
				continue
			}

			nodes = append(nodes, &Category{
				Label: item.Label,
				Items: b.buildItems(sidebarID, loc+".items", item.Items, problems),
			})

		case ItemTypeAutogenerated:
			if strings.TrimSpace(item.Dir) == "" {
				invalid("an autogenerated item must have a dir")
				continue
			}

			generated := b.autogenerate(item.Dir)
			if len(generated) == 0 {
				invalid(fmt.Sprintf("the autogenerated dir '%s' contains no documents", item.Dir))
				continue
			}
			nodes = append(nodes, generated...)

		default:
			invalid(fmt.Sprintf("unknown item type '%s'", item.Type))
		}
	}

	return nodes
}

type autoDir struct {
	name string
	docs []*content.Document
	dirs []*autoDir
}

func (d *autoDir) child(name string) *autoDir {
	for _, dir := range d.dirs {
		if dir.name == name {
			return dir
		}
	}

	dir := &autoDir{name: name}
	d.dirs = append(d.dirs, dir)
	return dir
}

// nodes lists the documents of the directory first, ordered by sidebar_position (documents without
// one go last) and then by id, followed by one category per sub-directory ordered by name.
func (d *autoDir) nodes() []Node {
	sort.SliceStable(d.docs, func(i, j int) bool {
		pi, pj := d.docs[i].FrontMatter.SidebarPosition, d.docs[j].FrontMatter.SidebarPosition
		switch {
		case pi != nil && pj != nil && *pi != *pj:
			return *pi < *pj
		case pi != nil && pj == nil:
			return true
		case pi == nil && pj != nil:
			return false
		}
		return d.docs[i].ID < d.docs[j].ID
	})
	sort.SliceStable(d.dirs, func(i, j int) bool {
		return d.dirs[i].name < d.dirs[j].name
	})

	nodes := make([]Node, 0, len(d.docs)+len(d.dirs))
	for _, doc := range d.docs {
		nodes = append(nodes, &DocRef{ID: doc.ID, Label: doc.DefaultLabel()})
	}
	for _, dir := range d.dirs {
		nodes = append(nodes, &Category{Label: dir.name, Items: dir.nodes()})
	}

	return nodes
}

func (b *Builder) autogenerate(dir string) []Node {
	dir = strings.Trim(dir, "/")
	if dir == "." {
		dir = ""
	}

	root := &autoDir{}
	for _, doc := range b.docs.InDir(dir) {
		rel := doc.ID
		if dir != "" {
			rel = strings.TrimPrefix(doc.ID, dir+"/")
		}

		segments := strings.Split(rel, "/")
		current := root
		for _, segment := range segments[:len(segments)-1] {
			current = current.child(segment)
		}
		current.docs = append(current.docs, doc)
	}

	return root.nodes()
}

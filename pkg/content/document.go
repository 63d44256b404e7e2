package content

import (
	"path"
	"slices"
	"strings"

	"github.com/bruin-data/docsite/pkg/frontmatter"
)

// KnownExtensions are the content file extensions stripped from document ids and labels.
var KnownExtensions = []string{".md", ".mdx", ".markdown"}

// Document is a single content file discovered at build time. It is never mutated after discovery.
type Document struct {
	// ID is the source path relative to the content root, slash-separated, without extension.
	ID string `json:"id"`
	// Source is the path relative to the content root, slash-separated.
	Source      string                  `json:"source"`
	FrontMatter frontmatter.FrontMatter `json:"front_matter"`
	Body        []byte                  `json:"-"`

	// FrontMatterErr is set when the front-matter block could not be decoded and the document
	// fell back to default metadata.
	FrontMatterErr error `json:"-"`
}

// StripKnownExtension removes a trailing content extension from the name, if it has one.
func StripKnownExtension(name string) string {
	ext := path.Ext(name)
	if slices.Contains(KnownExtensions, strings.ToLower(ext)) {
		return strings.TrimSuffix(name, ext)
	}

	return name
}

// IDFromSource derives the stable document id from its content-relative source path.
func IDFromSource(source string) string {
	return StripKnownExtension(path.Clean(strings.TrimPrefix(source, "/")))
}

// BaseName is the file name of the source without its content extension, e.g. "8. Error Handling".
func (d *Document) BaseName() string {
	return StripKnownExtension(path.Base(d.Source))
}

// Dir is the slash-separated directory of the document relative to the content root, "" for the root.
func (d *Document) Dir() string {
	dir := path.Dir(d.ID)
	if dir == "." {
		return ""
	}

	return dir
}

func (d *Document) IsMDX() bool {
	return strings.EqualFold(path.Ext(d.Source), ".mdx")
}

// Title returns the front-matter title, or the base name when there is none.
func (d *Document) Title() string {
	if d.FrontMatter.Title != "" {
		return d.FrontMatter.Title
	}

	return d.BaseName()
}

// DefaultLabel is the label a sidebar shows for the document before any override.
func (d *Document) DefaultLabel() string {
	if d.FrontMatter.SidebarLabel != "" {
		return d.FrontMatter.SidebarLabel
	}

	return d.Title()
}

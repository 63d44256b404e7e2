package route

import (
	"encoding/json"
	"testing"

	"github.com/bruin-data/docsite/pkg/content"
	"github.com/bruin-data/docsite/pkg/frontmatter"
	"github.com/bruin-data/docsite/pkg/sidebar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doc(source string, fm frontmatter.FrontMatter) *content.Document {
	return &content.Document{ID: content.IDFromSource(source), Source: source, FrontMatter: fm}
}

var fixedRoutes = []Entry{
	{Path: "/", Component: "@site/src/pages/index"},
	{Path: "/about", Component: "@site/src/pages/about"},
	{Path: "/search/", Component: "@theme/SearchPage"},
	{Path: "/blog", Component: "@theme/BlogListPage"},
	{Path: "/blog/archive", Component: "@theme/BlogArchivePage"},
}

func TestSlugify(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"8. Error Handling":    "8-error-handling",
		"Blogs":                "blogs",
		"  OAuth2 -- JWT!  ":   "oauth2-jwt",
		"Überblick & Größe":    "überblick-größe",
		"!!!":                  "",
		"already-slugged_name": "already-slugged-name",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestBuilder_DocPath(t *testing.T) {
	t.Parallel()

	b := NewBuilder("docs/", nil)
	tests := []struct {
		name string
		doc  *content.Document
		want string
	}{
		{"nested document", doc("Blogs/8. Error Handling.md", frontmatter.FrontMatter{}), "/docs/blogs/8-error-handling"},
		{"root document", doc("Intro.mdx", frontmatter.FrontMatter{}), "/docs/intro"},
		{"index maps to its directory", doc("Blogs/index.md", frontmatter.FrontMatter{}), "/docs/blogs"},
		{"readme maps to the base path", doc("README.md", frontmatter.FrontMatter{}), "/docs"},
		{"absolute slug", doc("Blogs/8. Error Handling.md", frontmatter.FrontMatter{Slug: "/errors"}), "/docs/errors"},
		{"relative slug", doc("Blogs/8. Error Handling.md", frontmatter.FrontMatter{Slug: "handling/"}), "/docs/blogs/handling"},
		{"relative slug to a sibling", doc("Blogs/8. Error Handling.md", frontmatter.FrontMatter{Slug: "../errors"}), "/docs/errors"},
		{"relative slug cannot leave the base path", doc("Blogs/8. Error Handling.md", frontmatter.FrontMatter{Slug: "../../elsewhere"}), "/docs/elsewhere"},
		{"absolute slug cannot leave the base path", doc("Intro.md", frontmatter.FrontMatter{Slug: "/../../etc"}), "/docs/etc"},
		{"root slug is the base path", doc("Intro.md", frontmatter.FrontMatter{Slug: "/"}), "/docs"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, b.DocPath(tt.doc))
		})
	}
}

func TestBuilder_Build(t *testing.T) {
	t.Parallel()

	docs := []*content.Document{
		doc("Blogs/1. Introduction.md", frontmatter.FrontMatter{}),
		doc("Blogs/8. Error Handling.md", frontmatter.FrontMatter{}),
		doc("Orphan.md", frontmatter.FrontMatter{}),
	}
	sidebars := sidebar.Sidebars{
		{ID: "advancedSidebar", Items: []sidebar.Node{&sidebar.DocRef{ID: "Blogs/8. Error Handling"}}},
		{ID: "tutorialSidebar", Items: []sidebar.Node{
			&sidebar.Category{Label: "All", Items: []sidebar.Node{
				&sidebar.DocRef{ID: "Blogs/1. Introduction"},
				&sidebar.DocRef{ID: "Blogs/8. Error Handling"},
			}},
		}},
	}

	table, err := NewBuilder("/docs", fixedRoutes).Build(docs, sidebars)
	require.NoError(t, err)

	assert.Equal(t, []Entry{
		{Path: "/docs/blogs/1-introduction", Component: ComponentDocItem, SidebarID: "tutorialSidebar", DocID: "Blogs/1. Introduction", Exact: true},
		{Path: "/docs/blogs/8-error-handling", Component: ComponentDocItem, SidebarID: "advancedSidebar", DocID: "Blogs/8. Error Handling", Exact: true},
		{Path: "/docs/orphan", Component: ComponentDocItem, DocID: "Orphan", Exact: true},
		{Path: "/", Component: "@site/src/pages/index", Exact: true},
		{Path: "/about", Component: "@site/src/pages/about", Exact: true},
		{Path: "/search", Component: "@theme/SearchPage", Exact: true},
		{Path: "/blog", Component: "@theme/BlogListPage", Exact: true},
		{Path: "/blog/archive", Component: "@theme/BlogArchivePage", Exact: true},
	}, table.Entries())

	seen := map[string]bool{}
	for _, p := range table.Paths() {
		assert.False(t, seen[p], "path %s must be unique", p)
		seen[p] = true
	}

	e, ok := table.Lookup("/docs/orphan")
	require.True(t, ok)
	assert.True(t, e.IsContent())

	e, ok = table.Lookup("/about")
	require.True(t, ok)
	assert.False(t, e.IsContent())

	_, ok = table.Lookup("/missing")
	assert.False(t, ok)

	js, err := json.Marshal(table)
	require.NoError(t, err)
	assert.Contains(t, string(js), `{"path":"/docs/orphan","component":"@theme/DocItem","docId":"Orphan","exact":true}`)
}

func TestBuilder_Build_DuplicatePaths(t *testing.T) {
	t.Parallel()

	docs := []*content.Document{
		doc("Blogs/8. Error Handling.md", frontmatter.FrontMatter{}),
		doc("Blogs/8-error-handling.mdx", frontmatter.FrontMatter{}),
		doc("About Us.md", frontmatter.FrontMatter{Slug: "/../../about"}),
	}

	_, err := NewBuilder("/docs", fixedRoutes).Build(docs, nil)
	var dupErr *DuplicateRouteError
	require.ErrorAs(t, err, &dupErr)
	require.Len(t, dupErr.Duplicates, 2)
	assert.Equal(t, "/docs/blogs/8-error-handling", dupErr.Duplicates[0].Path)
	assert.Equal(t, []string{"document 'Blogs/8. Error Handling.md'", "document 'Blogs/8-error-handling.mdx'"}, dupErr.Duplicates[0].Owners)
	assert.Equal(t, "/about", dupErr.Duplicates[1].Path)
}

func TestTable_Tree(t *testing.T) {
	t.Parallel()

	docs := []*content.Document{
		doc("Blogs/index.md", frontmatter.FrontMatter{}),
		doc("Blogs/1. Introduction.md", frontmatter.FrontMatter{}),
		doc("Blogs/Deep/Nested.md", frontmatter.FrontMatter{}),
	}
	table, err := NewBuilder("/docs", fixedRoutes).Build(docs, nil)
	require.NoError(t, err)

	roots := table.Tree()
	paths := make([]string, 0)
	for _, r := range roots {
		paths = append(paths, r.Entry.Path)
	}
	assert.Equal(t, []string{"/", "/about", "/blog", "/docs/blogs", "/search"}, paths)

	var blog, docsRoot *TreeNode
	for _, r := range roots {
		switch r.Entry.Path {
		case "/blog":
			blog = r
		case "/docs/blogs":
			docsRoot = r
		}
	}
	require.Len(t, blog.Children, 1)
	assert.Equal(t, "/blog/archive", blog.Children[0].Entry.Path)

	require.Len(t, docsRoot.Children, 2)
	assert.Equal(t, "/docs/blogs/1-introduction", docsRoot.Children[0].Entry.Path)
	assert.Equal(t, "/docs/blogs/deep/nested", docsRoot.Children[1].Entry.Path)
}

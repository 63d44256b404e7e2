package sidebar

import (
	"testing"

	"github.com/bruin-data/docsite/pkg/content"
	"github.com/bruin-data/docsite/pkg/frontmatter"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int {
	return &i
}

func doc(source string, fm frontmatter.FrontMatter) *content.Document {
	return &content.Document{
		ID:          content.IDFromSource(source),
		Source:      source,
		FrontMatter: fm,
	}
}

func newSet(t *testing.T, docs ...*content.Document) *content.Set {
	t.Helper()

	set, err := content.NewSet(docs)
	require.NoError(t, err)
	return set
}

func tutorialSet(t *testing.T) *content.Set {
	t.Helper()

	return newSet(t,
		doc("Blogs/1. Introduction.md", frontmatter.FrontMatter{Title: "Introduction", SidebarPosition: intPtr(1)}),
		doc("Blogs/5. Dependencies.md", frontmatter.FrontMatter{Title: "Dependencies", SidebarPosition: intPtr(5)}),
		doc("Blogs/8. Error Handling.md", frontmatter.FrontMatter{Title: "Error Handling", SidebarPosition: intPtr(8)}),
		doc("Blogs/12. Bigger Applications.mdx", frontmatter.FrontMatter{Title: "Bigger Applications"}),
		doc("Blogs/14. Deployment.md", frontmatter.FrontMatter{}),
	)
}

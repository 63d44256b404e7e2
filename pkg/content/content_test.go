package content

import (
	"context"
	"testing"

	"github.com/bruin-data/docsite/pkg/frontmatter"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeFiles(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	for name, body := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(body), 0o644))
	}

	return fs
}

func TestDocument_Names(t *testing.T) {
	t.Parallel()

	doc := &Document{
		ID:          IDFromSource("Blogs/8. Error Handling.md"),
		Source:      "Blogs/8. Error Handling.md",
		FrontMatter: frontmatter.FrontMatter{Title: "Error Handling"},
	}

	assert.Equal(t, "Blogs/8. Error Handling", doc.ID)
	assert.Equal(t, "8. Error Handling", doc.BaseName())
	assert.Equal(t, "Blogs", doc.Dir())
	assert.Equal(t, "Error Handling", doc.Title())
	assert.Equal(t, "Error Handling", doc.DefaultLabel())
	assert.False(t, doc.IsMDX())

	doc.FrontMatter.SidebarLabel = "Errors"
	assert.Equal(t, "Errors", doc.DefaultLabel())

	untitled := &Document{ID: "index", Source: "index.mdx"}
	assert.Equal(t, "index", untitled.Title())
	assert.Equal(t, "", untitled.Dir())
	assert.True(t, untitled.IsMDX())
}

func TestStripKnownExtension(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"8. Error Handling.md": "8. Error Handling",
		"intro.MDX":            "intro",
		"notes.markdown":       "notes",
		"v1.2 release":         "v1.2 release",
		"diagram.png":          "diagram.png",
	}
	for in, want := range tests {
		assert.Equal(t, want, StripKnownExtension(in), in)
	}
}

func TestNewSet(t *testing.T) {
	t.Parallel()

	set, err := NewSet([]*Document{
		{ID: "b/two", Source: "b/two.md"},
		{ID: "a", Source: "a.md"},
		{ID: "b/one", Source: "b/one.md"},
		{ID: "bb", Source: "bb.md"},
	})
	require.NoError(t, err)

	ids := make([]string, 0)
	for _, d := range set.All() {
		ids = append(ids, d.ID)
	}
	assert.Equal(t, []string{"a", "b/one", "b/two", "bb"}, ids)
	assert.Equal(t, 4, set.Len())

	inDir := make([]string, 0)
	for _, d := range set.InDir("/b/") {
		inDir = append(inDir, d.ID)
	}
	assert.Equal(t, []string{"b/one", "b/two"}, inDir)
	assert.Len(t, set.InDir("."), 4)

	doc, ok := set.Get("b/one")
	require.True(t, ok)
	assert.Equal(t, "b/one.md", doc.Source)

	_, ok = set.Get("missing")
	assert.False(t, ok)

	_, err = NewSet([]*Document{
		{ID: "a", Source: "a.md"},
		{ID: "a", Source: "a.mdx"},
	})
	var dupErr *DuplicateDocumentError
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, []string{"a.md", "a.mdx"}, dupErr.Sources)
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	fs := writeFiles(t, map[string]string{
		"site/docs/Blogs/8. Error Handling.md": "---\ntitle: \"Error Handling\"\nsidebar_position: 8\n---\n# Errors\n",
		"site/docs/Blogs/1. Routing.mdx":       "# Routing",
		"site/docs/broken.md":                  "---\ntitle: [oops\n---\ncontent",
		"site/docs/static/logo.svg":            "<svg/>",
	})

	set, err := NewLoader(fs, zap.NewNop().Sugar(), 2).Load(context.Background(), "site/docs")
	require.NoError(t, err)
	require.Equal(t, 3, set.Len())

	doc, ok := set.Get("Blogs/8. Error Handling")
	require.True(t, ok)
	assert.Equal(t, "Blogs/8. Error Handling.md", doc.Source)
	assert.Equal(t, "Error Handling", doc.FrontMatter.Title)
	require.NotNil(t, doc.FrontMatter.SidebarPosition)
	assert.Equal(t, 8, *doc.FrontMatter.SidebarPosition)
	assert.Equal(t, "# Errors\n", string(doc.Body))
	require.NoError(t, doc.FrontMatterErr)

	broken, ok := set.Get("broken")
	require.True(t, ok)
	require.Error(t, broken.FrontMatterErr)
	assert.Equal(t, frontmatter.FrontMatter{}, broken.FrontMatter)
	assert.Equal(t, "content", string(broken.Body))
}

func TestLoader_LoadErrors(t *testing.T) {
	t.Parallel()

	_, err := NewLoader(afero.NewMemMapFs(), zap.NewNop().Sugar(), 0).Load(context.Background(), "docs")
	require.Error(t, err)

	fs := writeFiles(t, map[string]string{
		"docs/intro.md":  "a",
		"docs/intro.mdx": "b",
	})
	_, err = NewLoader(fs, zap.NewNop().Sugar(), 0).Load(context.Background(), "docs")
	var dupErr *DuplicateDocumentError
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, "intro", dupErr.ID)
}

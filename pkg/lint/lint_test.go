package lint

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/bruin-data/docsite/pkg/build"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const siteConfig = `title: Tutorial
url: https://example.com
base_url: /
`

func loadContext(t *testing.T, sidebars string, docs map[string]string) *build.Context {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "site/docsite.yml", []byte(siteConfig), 0o644))
	require.NoError(t, afero.WriteFile(fs, "site/sidebars.yml", []byte(sidebars), 0o644))
	for name, body := range docs {
		require.NoError(t, afero.WriteFile(fs, filepath.Join("site", "docs", name), []byte(body), 0o644))
	}

	bc, err := build.Load(context.Background(), fs, "site", build.Options{}, zap.NewNop().Sugar())
	require.NoError(t, err)
	return bc
}

func issuesByRule(t *testing.T, result *AnalysisResult) map[string][]*Issue {
	t.Helper()

	out := make(map[string][]*Issue)
	for rule, issues := range result.Issues {
		out[rule.Name()] = issues
	}
	return out
}

func TestLinter_Lint_CleanSite(t *testing.T) {
	t.Parallel()

	bc := loadContext(t, "main:\n  - type: category\n    label: Start\n    items: [intro]\n", map[string]string{
		"intro.md": "---\ntitle: Intro\n---\nhello",
	})

	result, err := NewLinter(GetRules(false), zap.NewNop().Sugar()).Lint(context.Background(), bc)
	require.NoError(t, err)
	assert.Empty(t, result.Issues)
	assert.Equal(t, 0, result.ErrorCount())
	assert.Equal(t, 0, result.WarningCount())
}

func TestLinter_Lint_ReportsEveryRule(t *testing.T) {
	t.Parallel()

	sidebars := `main:
  - intro
  - missing
  - type: category
    label: Empty
    items: []
  - type: category
    items: [intro]
other:
  - intro
`
	bc := loadContext(t, sidebars, map[string]string{
		"intro.md":  "hello",
		"orphan.md": "---\ntitle: [broken\n---\nbody",
		"a.md":      "---\nslug: /same\n---\na",
		"b.md":      "---\nslug: same\n---\nb",
	})

	result, err := NewLinter(GetRules(false), zap.NewNop().Sugar()).Lint(context.Background(), bc)
	require.NoError(t, err)

	byRule := issuesByRule(t, result)

	require.Len(t, byRule["sidebar-doc-exists"], 1)
	assert.Equal(t, "main", byRule["sidebar-doc-exists"][0].Subject)
	assert.Equal(t, []string{"[1]: document 'missing' does not exist"}, byRule["sidebar-doc-exists"][0].Context)

	require.Len(t, byRule["sidebar-config-valid"], 1)
	assert.Equal(t, "main", byRule["sidebar-config-valid"][0].Subject)

	require.Len(t, byRule["route-path-unique"], 1)
	assert.Equal(t, "More than one source produces the route '/docs/same'", byRule["route-path-unique"][0].Description)
	assert.Equal(t, []string{"document 'a.md'", "document 'b.md'"}, byRule["route-path-unique"][0].Context)

	notInSidebar := make([]string, 0)
	for _, issue := range byRule["doc-in-sidebar"] {
		notInSidebar = append(notInSidebar, issue.Subject)
	}
	assert.Equal(t, []string{"a", "b", "orphan"}, notInSidebar)

	require.Len(t, byRule["doc-referenced-once"], 1)
	assert.Equal(t, "intro", byRule["doc-referenced-once"][0].Subject)
	assert.Equal(t, []string{"sidebar: main", "sidebar: other"}, byRule["doc-referenced-once"][0].Context)

	require.Len(t, byRule["category-not-empty"], 1)
	assert.Equal(t, []string{"Empty"}, byRule["category-not-empty"][0].Context)

	require.Len(t, byRule["front-matter-valid"], 1)
	assert.Equal(t, "orphan", byRule["front-matter-valid"][0].Subject)

	assert.Equal(t, 3, result.ErrorCount())
	assert.Equal(t, 6, result.WarningCount())
}

func TestGetRules_ExcludeWarnings(t *testing.T) {
	t.Parallel()

	names := make([]string, 0)
	for _, r := range GetRules(true) {
		assert.Equal(t, ValidatorSeverityCritical, r.GetSeverity())
		names = append(names, r.Name())
	}
	assert.Equal(t, []string{"sidebar-doc-exists", "sidebar-config-valid", "route-path-unique"}, names)
	assert.Len(t, GetRules(false), 7)
}

func TestLinter_Lint_RuleErrorStops(t *testing.T) {
	t.Parallel()

	bc := loadContext(t, "main: [intro]\n", map[string]string{"intro.md": "hello"})
	failing := &SimpleRule{
		Identifier: "failing",
		Validator: func(ctx context.Context, bc *build.Context) ([]*Issue, error) {
			return nil, errors.New("rule failed")
		},
	}

	_, err := NewLinter([]Rule{failing}, zap.NewNop().Sugar()).Lint(context.Background(), bc)
	require.EqualError(t, err, "rule failed")
}

func TestAnalysisResult_JSONAndPrint(t *testing.T) {
	t.Parallel()

	critical := &SimpleRule{Identifier: "b-critical", Severity: ValidatorSeverityCritical}
	warning := &SimpleRule{Identifier: "a-warning", Severity: ValidatorSeverityWarning}
	result := &AnalysisResult{
		Site: "Tutorial",
		Root: "site",
		Issues: map[Rule][]*Issue{
			warning:  {{Subject: "intro", Description: "warned"}},
			critical: {{Description: "broken", Context: []string{"first", "second"}}},
		},
	}

	buf, err := json.Marshal(result)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"site": "Tutorial",
		"issues": [
			{"subject": "", "rule": "b-critical", "description": "broken", "context": ["first", "second"], "severity": "critical"},
			{"subject": "intro", "rule": "a-warning", "description": "warned", "context": [], "severity": "warning"}
		]
	}`, string(buf))

	var out bytes.Buffer
	(&Printer{Out: &out}).PrintIssues(result)
	printed := out.String()
	assert.Contains(t, printed, "Site: Tutorial")
	assert.Contains(t, printed, "└── broken")
	assert.Contains(t, printed, "└─ second")
	assert.Contains(t, printed, "  intro\n")
	assert.Contains(t, printed, "└── warned")
}

package build

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

const tutorialSiteConfig = `title: Tutorial
url: https://example.com
base_url: /
`

const tutorialSidebars = `tutorialSidebar:
  - type: category
    label: Getting Started
    items:
      - Blogs/1. Introduction
  - type: category
    label: Advanced Topics
    items:
      - Blogs/5. Dependencies
      - Blogs/8. Error Handling
  - type: category
    label: Project Structure
    items:
      - Blogs/12. Bigger Applications
  - type: category
    label: Production
    items:
      - Blogs/14. Deployment
`

var tutorialDocs = map[string]string{
	"Blogs/1. Introduction.md": `---
title: Introduction
sidebar_position: 1
---
# Introduction

Build **APIs** quickly.
`,
	"Blogs/5. Dependencies.md": `---
title: Dependencies
description: Sharing logic between endpoints
---
Dependencies are injected per request.
`,
	"Blogs/8. Error Handling.md": `---
title: Error Handling
---
Raise an ` + "`HTTPException`" + ` with a status code.
`,
	"Blogs/12. Bigger Applications.mdx": `import Tabs from '@theme/Tabs';

Split routers across modules.
`,
	"Blogs/14. Deployment.md": `---
title: [broken
---
Ship the container.
`,
}

func writeProject(t *testing.T, fs afero.Fs, root, sidebars string, docs map[string]string) {
	t.Helper()

	require.NoError(t, afero.WriteFile(fs, filepath.Join(root, "docsite.yml"), []byte(tutorialSiteConfig), 0o644))
	require.NoError(t, afero.WriteFile(fs, filepath.Join(root, "sidebars.yml"), []byte(sidebars), 0o644))
	for name, body := range docs {
		require.NoError(t, afero.WriteFile(fs, filepath.Join(root, "docs", filepath.FromSlash(name)), []byte(body), 0o644))
	}
}

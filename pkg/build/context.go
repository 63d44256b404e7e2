package build

import (
	"context"
	"path/filepath"

	"github.com/bruin-data/docsite/pkg/content"
	"github.com/bruin-data/docsite/pkg/logger"
	"github.com/bruin-data/docsite/pkg/sidebar"
	"github.com/bruin-data/docsite/pkg/site"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

type Options struct {
	LabelPolicy sidebar.LabelPolicy
	Concurrency int
}

// Context holds every input of a build. It is assembled once and only read afterwards.
type Context struct {
	Root          string
	Site          *site.Config
	Content       *content.Set
	SidebarConfig sidebar.Config
	Options       Options
}

// Load reads the site config, the content directory and the sidebar config of the project at root.
func Load(ctx context.Context, fs afero.Fs, root string, opts Options, logger logger.Logger) (*Context, error) {
	siteConfig, err := site.LoadFromRoot(fs, root)
	if err != nil {
		return nil, err
	}

	contentDir := filepath.Join(root, siteConfig.ContentDir)
	outputDir := filepath.Join(root, siteConfig.OutputDir)
	set, err := content.NewLoader(fs, logger, opts.Concurrency).Load(ctx, contentDir, outputDir)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load the content")
	}
	logger.Debugf("loaded %d documents from '%s'", set.Len(), contentDir)

	sidebarConfig, err := sidebar.LoadConfig(fs, filepath.Join(root, siteConfig.SidebarFile))
	if err != nil {
		return nil, err
	}
	logger.Debugf("loaded %d sidebars from '%s'", len(sidebarConfig), siteConfig.SidebarFile)

	return &Context{
		Root:          root,
		Site:          siteConfig,
		Content:       set,
		SidebarConfig: sidebarConfig,
		Options:       opts,
	}, nil
}

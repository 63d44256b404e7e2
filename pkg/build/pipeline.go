package build

import (
	"context"
	"time"

	"github.com/bruin-data/docsite/pkg/logger"
	"github.com/bruin-data/docsite/pkg/markdown"
	"github.com/bruin-data/docsite/pkg/route"
	"github.com/bruin-data/docsite/pkg/search"
	"github.com/bruin-data/docsite/pkg/sidebar"
	"github.com/pkg/errors"
)

const defaultRenderConcurrency = 8

// Structure is the navigation of a site: relabelled sidebars and the route table.
type Structure struct {
	Sidebars sidebar.Sidebars
	Routes   *route.Table
}

type Result struct {
	Structure
	Index *search.Index
}

type Pipeline struct {
	logger   logger.Logger
	renderer *markdown.Renderer
	indexer  *search.Indexer
}

func NewPipeline(logger logger.Logger) *Pipeline {
	return &Pipeline{
		logger:   logger,
		renderer: markdown.NewRenderer(),
		indexer:  search.NewIndexer(),
	}
}

// Structure builds the sidebars, applies the label override and derives the route table. Any
// failure stops the build before routes are produced.
func (p *Pipeline) Structure(bc *Context) (*Structure, error) {
	built, err := sidebar.NewBuilder(bc.Content).Build(bc.SidebarConfig)
	if err != nil {
		return nil, err
	}
	p.logger.Debugf("built %d sidebars", len(built))

	sidebars, err := sidebar.Relabel(built, bc.Content, bc.Options.LabelPolicy)
	if err != nil {
		return nil, err
	}

	table, err := route.NewBuilder(bc.Site.DocsBasePath, bc.Site.FixedRoutes()).Build(bc.Content.All(), sidebars)
	if err != nil {
		return nil, err
	}
	p.logger.Debugf("generated %d routes", table.Len())

	return &Structure{Sidebars: sidebars, Routes: table}, nil
}

// Run executes every stage in order: sidebars, labels, routes, then the search index.
func (p *Pipeline) Run(ctx context.Context, bc *Context) (*Result, error) {
	start := time.Now()

	structure, err := p.Structure(bc)
	if err != nil {
		return nil, err
	}

	concurrency := bc.Options.Concurrency
	if concurrency <= 0 {
		concurrency = defaultRenderConcurrency
	}

	pages, err := search.Pages(ctx, bc.Content, structure.Routes, p.renderer, concurrency)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render the pages for the search index")
	}

	index, err := p.indexer.Index(pages)
	if err != nil {
		return nil, err
	}

	p.logger.Debugw("build finished", "documents", bc.Content.Len(), "routes", structure.Routes.Len(),
		"terms", len(index.Terms), "duration", time.Since(start).String())

	return &Result{Structure: *structure, Index: index}, nil
}

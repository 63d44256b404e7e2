package search

import (
	"context"

	"github.com/bruin-data/docsite/pkg/content"
	"github.com/bruin-data/docsite/pkg/markdown"
	"github.com/bruin-data/docsite/pkg/route"
	"github.com/pkg/errors"
	"github.com/sourcegraph/conc/pool"
)

// Page is one entry of the enumeration handed to the indexer: a routed document and its rendered text.
type Page struct {
	Path        string
	Title       string
	Description string
	Text        string
}

type TextRenderer interface {
	Text(src []byte) (string, error)
}

// Pages renders every content route of the table exactly once, in table order.
func Pages(ctx context.Context, docs *content.Set, table *route.Table, renderer TextRenderer, concurrency int) ([]Page, error) {
	if concurrency <= 0 {
		concurrency = 1
	}

	entries := make([]route.Entry, 0, table.Len())
	for _, e := range table.Entries() {
		if e.IsContent() {
			entries = append(entries, e)
		}
	}

	pages := make([]Page, len(entries))
	p := pool.New().WithMaxGoroutines(concurrency).WithContext(ctx).WithCancelOnError().WithFirstError()
	for i, entry := range entries {
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}

			doc, ok := docs.Get(entry.DocID)
			if !ok {
				return errors.Errorf("route '%s' points to the unknown document '%s'", entry.Path, entry.DocID)
			}

			body := doc.Body
			if doc.IsMDX() {
				body = markdown.StripMDXStatements(body)
			}

			text, err := renderer.Text(body)
			if err != nil {
				return errors.Wrapf(err, "failed to render '%s'", doc.Source)
			}

			pages[i] = Page{
				Path:        entry.Path,
				Title:       doc.Title(),
				Description: doc.FrontMatter.Description,
				Text:        text,
			}
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return nil, err
	}

	return pages, nil
}

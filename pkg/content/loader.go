package content

import (
	"context"
	"path/filepath"

	"github.com/bruin-data/docsite/pkg/frontmatter"
	"github.com/bruin-data/docsite/pkg/logger"
	path2 "github.com/bruin-data/docsite/pkg/path"
	"github.com/pkg/errors"
	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/afero"
)

const defaultConcurrency = 16

type Loader struct {
	fs          afero.Fs
	logger      logger.Logger
	concurrency int
}

func NewLoader(fs afero.Fs, logger logger.Logger, concurrency int) *Loader {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	return &Loader{
		fs:          fs,
		logger:      logger,
		concurrency: concurrency,
	}
}

// Load discovers every content file under root and returns them as a Set. Files below any of the
// exclude directories are not loaded.
func (l *Loader) Load(ctx context.Context, root string, exclude ...string) (*Set, error) {
	if !path2.DirExists(l.fs, root) {
		return nil, errors.Errorf("the content directory '%s' does not exist", root)
	}

	sources, err := path2.GetAllFilesRecursive(l.fs, root, KnownExtensions, exclude...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list content files in '%s'", root)
	}

	l.logger.Debugf("found %d content files in '%s'", len(sources), root)

	docs := make([]*Document, len(sources))
	p := pool.New().WithMaxGoroutines(l.concurrency).WithContext(ctx).WithCancelOnError().WithFirstError()
	for i, source := range sources {
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}

			doc, err := l.readDocument(root, source)
			if err != nil {
				return err
			}

			docs[i] = doc
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return nil, err
	}

	return NewSet(docs)
}

func (l *Loader) readDocument(root, source string) (*Document, error) {
	buf, err := afero.ReadFile(l.fs, filepath.Join(root, filepath.FromSlash(source)))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read content file '%s'", source)
	}

	fm, body, err := frontmatter.Parse(buf)
	doc := &Document{
		ID:          IDFromSource(source),
		Source:      source,
		FrontMatter: fm,
		Body:        body,
	}

	if err != nil {
		l.logger.Warnf("front-matter of '%s' could not be decoded, using defaults: %v", source, err)
		doc.FrontMatterErr = err
	}

	return doc, nil
}

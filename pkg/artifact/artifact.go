package artifact

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"io"
	"os"
	"path/filepath"

	"github.com/bruin-data/docsite/pkg/build"
	"github.com/bruin-data/docsite/pkg/logger"
	"github.com/bruin-data/docsite/pkg/site"
	"github.com/natefinch/atomic"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

const (
	RoutesFile      = "routes.json"
	SidebarsFile    = "sidebars.json"
	SearchIndexFile = "search-index.json"
	SitemapFile     = "sitemap.xml"
	ManifestFile    = "manifest.json"

	sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"
	filePerms        = 0o644
	dirPerms         = 0o755
)

type Manifest struct {
	Title            string      `json:"title"`
	Tagline          string      `json:"tagline,omitempty"`
	URL              string      `json:"url"`
	BaseURL          string      `json:"base_url"`
	OrganizationName string      `json:"organization_name,omitempty"`
	ProjectName      string      `json:"project_name,omitempty"`
	Navbar           []site.Link `json:"navbar"`
	Footer           []site.Link `json:"footer"`
	Documents        int         `json:"documents"`
	Routes           int         `json:"routes"`
	Artifacts        []string    `json:"artifacts"`
}

type sitemapURL struct {
	Loc string `xml:"loc"`
}

type sitemap struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type file struct {
	name    string
	content []byte
}

type Publisher struct {
	logger    logger.Logger
	writeFile func(path string, r io.Reader) error
}

func NewPublisher(logger logger.Logger) *Publisher {
	return &Publisher{
		logger:    logger,
		writeFile: atomic.WriteFile,
	}
}

// Publish writes the artifacts of a successful build into outDir and returns their paths. The
// artifacts are staged in a sibling directory that replaces outDir only once every file is written,
// so a failed build leaves the previous output untouched.
func (p *Publisher) Publish(outDir string, bc *build.Context, res *build.Result) ([]string, error) {
	if res == nil {
		return nil, errors.New("cannot publish an empty build result")
	}

	files, err := p.encode(bc, res)
	if err != nil {
		return nil, err
	}

	outDir, err = filepath.Abs(outDir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve the output directory '%s'", outDir)
	}

	parent := filepath.Dir(outDir)
	if err := os.MkdirAll(parent, dirPerms); err != nil {
		return nil, errors.Wrapf(err, "failed to create the directory '%s'", parent)
	}

	staging, err := os.MkdirTemp(parent, ".docsite-staging-*")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create a staging directory in '%s'", parent)
	}
	defer os.RemoveAll(staging)

	next := filepath.Join(staging, "next")
	if err := os.Mkdir(next, dirPerms); err != nil {
		return nil, errors.Wrapf(err, "failed to create the staging directory '%s'", next)
	}

	written := make([]string, 0, len(files))
	for _, f := range files {
		target := filepath.Join(next, f.name)
		if err := p.writeFile(target, bytes.NewReader(f.content)); err != nil {
			return nil, errors.Wrapf(err, "failed to write '%s'", f.name)
		}
		if err := os.Chmod(target, filePerms); err != nil {
			return nil, errors.Wrapf(err, "failed to set permissions on '%s'", f.name)
		}

		p.logger.Debugf("staged %s (%d bytes)", f.name, len(f.content))
		written = append(written, filepath.Join(outDir, f.name))
	}

	if err := swapDir(next, outDir, filepath.Join(staging, "previous")); err != nil {
		return nil, err
	}
	p.logger.Debugf("published %d artifacts to %s", len(written), outDir)

	return written, nil
}

// swapDir moves next into place at target. An existing target is moved to previous first and is
// restored when next cannot be moved in.
func swapDir(next, target, previous string) error {
	_, err := os.Stat(target)
	hadTarget := err == nil
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "failed to inspect the output directory '%s'", target)
	}

	if hadTarget {
		if err := os.Rename(target, previous); err != nil {
			return errors.Wrapf(err, "failed to move the previous output out of '%s'", target)
		}
	}

	if err := os.Rename(next, target); err != nil {
		if hadTarget {
			if restoreErr := os.Rename(previous, target); restoreErr != nil {
				return errors.Wrapf(restoreErr, "failed to restore the previous output in '%s' after: %v", target, err)
			}
		}
		return errors.Wrapf(err, "failed to move the new output into '%s'", target)
	}

	return nil
}

func (p *Publisher) encode(bc *build.Context, res *build.Result) ([]file, error) {
	routes, err := marshalJSON(res.Routes)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode the routes")
	}

	sidebars, err := marshalJSON(res.Sidebars)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode the sidebars")
	}

	index, err := marshalJSON(res.Index)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode the search index")
	}

	sm, err := Sitemap(bc.Site, res.Routes.Paths())
	if err != nil {
		return nil, err
	}

	manifest, err := marshalJSON(Manifest{
		Title:            bc.Site.Title,
		Tagline:          bc.Site.Tagline,
		URL:              bc.Site.URL,
		BaseURL:          bc.Site.BaseURL,
		OrganizationName: bc.Site.OrganizationName,
		ProjectName:      bc.Site.ProjectName,
		Navbar:           lo.Ternary(bc.Site.Navbar == nil, []site.Link{}, bc.Site.Navbar),
		Footer:           lo.Ternary(bc.Site.Footer == nil, []site.Link{}, bc.Site.Footer),
		Documents:        bc.Content.Len(),
		Routes:           res.Routes.Len(),
		Artifacts:        []string{RoutesFile, SidebarsFile, SearchIndexFile, SitemapFile},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode the manifest")
	}

	return []file{
		{name: RoutesFile, content: routes},
		{name: SidebarsFile, content: sidebars},
		{name: SearchIndexFile, content: index},
		{name: SitemapFile, content: sm},
		{name: ManifestFile, content: manifest},
	}, nil
}

// Sitemap lists every route except the debug ones, as absolute URLs.
func Sitemap(config *site.Config, paths []string) ([]byte, error) {
	base := config.SiteURL()
	doc := sitemap{
		Xmlns: sitemapNamespace,
		URLs: lo.FilterMap(paths, func(p string, _ int) (sitemapURL, bool) {
			return sitemapURL{Loc: base + p}, !site.IsDebugRoute(p)
		}),
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode the sitemap")
	}

	return append([]byte(xml.Header), append(out, '\n')...), nil
}

func marshalJSON(v any) ([]byte, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}

	return append(out, '\n'), nil
}

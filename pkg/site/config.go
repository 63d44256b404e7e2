package site

import (
	"path/filepath"
	"strings"

	path2 "github.com/bruin-data/docsite/pkg/path"
	"github.com/bruin-data/docsite/pkg/route"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

const (
	DefaultConfigFileName = "docsite.yml"

	defaultContentDir   = "docs"
	defaultSidebarFile  = "sidebars.yml"
	defaultOutputDir    = "build"
	defaultDocsBasePath = "/docs"

	// DebugRoutePrefix marks routes that only exist for development and never go into the sitemap.
	DebugRoutePrefix = "/__docusaurus"
)

type Link struct {
	Label string `yaml:"label" json:"label" validate:"required"`
	Href  string `yaml:"href" json:"href" validate:"required"`
}

type FixedRoute struct {
	Path      string `yaml:"path" json:"path" validate:"required,startswith=/"`
	Component string `yaml:"component" json:"component" validate:"required"`
}

type Config struct {
	Title            string `yaml:"title" json:"title" validate:"required" jsonschema:"required"`
	Tagline          string `yaml:"tagline,omitempty" json:"tagline,omitempty"`
	URL              string `yaml:"url" json:"url" validate:"required,url" jsonschema:"required,format=uri"`
	BaseURL          string `yaml:"base_url" json:"base_url" validate:"required,startswith=/" jsonschema:"required,pattern=^/"`
	OrganizationName string `yaml:"organization_name,omitempty" json:"organization_name,omitempty"`
	ProjectName      string `yaml:"project_name,omitempty" json:"project_name,omitempty"`

	ContentDir   string `yaml:"content_dir,omitempty" json:"content_dir,omitempty" jsonschema:"default=docs"`
	SidebarFile  string `yaml:"sidebar_file,omitempty" json:"sidebar_file,omitempty" jsonschema:"default=sidebars.yml"`
	OutputDir    string `yaml:"output_dir,omitempty" json:"output_dir,omitempty" jsonschema:"default=build"`
	DocsBasePath string `yaml:"docs_base_path,omitempty" json:"docs_base_path,omitempty" validate:"omitempty,startswith=/" jsonschema:"default=/docs"`

	Routes []FixedRoute `yaml:"routes,omitempty" json:"routes,omitempty" validate:"dive"`
	Navbar []Link       `yaml:"navbar,omitempty" json:"navbar,omitempty" validate:"dive"`
	Footer []Link       `yaml:"footer,omitempty" json:"footer,omitempty" validate:"dive"`
}

// DefaultRoutes are the fixed, non-content routes every site gets unless it lists its own.
func DefaultRoutes() []FixedRoute {
	return []FixedRoute{
		{Path: "/", Component: "@site/src/pages/index"},
		{Path: "/about", Component: "@site/src/pages/about"},
		{Path: "/search", Component: "@theme/SearchPage"},
		{Path: "/blog", Component: "@theme/BlogListPage"},
		{Path: "/blog/archive", Component: "@theme/BlogArchivePage"},
		{Path: "/blog/authors", Component: "@theme/Blog/Pages/BlogAuthorsListPage"},
		{Path: "/blog/tags", Component: "@theme/BlogTagsListPage"},
		{Path: DebugRoutePrefix + "/debug", Component: "@theme/DebugConfig"},
	}
}

func (c *Config) ApplyDefaults() {
	if c.ContentDir == "" {
		c.ContentDir = defaultContentDir
	}
	if c.SidebarFile == "" {
		c.SidebarFile = defaultSidebarFile
	}
	if c.OutputDir == "" {
		c.OutputDir = defaultOutputDir
	}
	if c.DocsBasePath == "" {
		c.DocsBasePath = defaultDocsBasePath
	}
	if len(c.Routes) == 0 {
		c.Routes = DefaultRoutes()
	}
}

// FixedRoutes converts the configured routes into route table entries.
func (c *Config) FixedRoutes() []route.Entry {
	entries := make([]route.Entry, 0, len(c.Routes))
	for _, r := range c.Routes {
		entries = append(entries, route.Entry{Path: r.Path, Component: route.Component(r.Component)})
	}

	return entries
}

// SiteURL joins the site url and base url, without a trailing slash.
func (c *Config) SiteURL() string {
	return strings.TrimSuffix(c.URL, "/") + strings.TrimSuffix(c.BaseURL, "/")
}

func IsDebugRoute(p string) bool {
	return p == DebugRoutePrefix || strings.HasPrefix(p, DebugRoutePrefix+"/")
}

// LoadFromFile reads and validates the site config at the given path, then fills in defaults.
func LoadFromFile(fs afero.Fs, path string) (*Config, error) {
	var config Config
	if err := path2.ReadYaml(fs, path, &config); err != nil {
		return nil, errors.Wrapf(err, "failed to load the site config from '%s'", path)
	}

	config.ApplyDefaults()
	return &config, nil
}

// LoadFromRoot loads the default config file from a project root.
func LoadFromRoot(fs afero.Fs, root string) (*Config, error) {
	return LoadFromFile(fs, filepath.Join(root, DefaultConfigFileName))
}

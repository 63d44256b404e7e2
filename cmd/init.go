package cmd

import (
	"fmt"
	fs2 "io/fs"
	"path/filepath"
	"strings"

	"github.com/bruin-data/docsite/pkg/path"
	"github.com/bruin-data/docsite/pkg/site"
	"github.com/bruin-data/docsite/templates"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"
)

const (
	DefaultTemplate   = "default"
	DefaultFolderName = "docsite"
)

func Init() *cli.Command {
	return &cli.Command{
		Name:      "init",
		Usage:     "init a documentation site from a template",
		ArgsUsage: "[name of the folder where the site will be created]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "template",
				Value: DefaultTemplate,
				Usage: "the template to use, possible values are: " + strings.Join(templates.TemplateNames(), ", "),
			},
			&cli.StringFlag{
				Name:  "title",
				Usage: "the title of the site, replaces the one in the template",
			},
			&cli.StringFlag{
				Name:  "url",
				Usage: "the url the site is served from, replaces the one in the template",
			},
			outputFlag(),
		},
		Action: func(c *cli.Context) error {
			defer RecoverFromPanic()

			inputPath := c.Args().Get(0)
			if inputPath == "" {
				inputPath = DefaultFolderName
			}

			output := c.String("output")
			silenceForJSON(output)

			overrides := siteOverrides{Title: c.String("title"), URL: c.String("url")}
			if err := initProject(fs, c.String("template"), inputPath, overrides); err != nil {
				printError(err, output, "Failed to create the site")
				return cli.Exit("", 1)
			}

			printSuccessForOutput(output, fmt.Sprintf("Created the site in '%s', run 'docsite build %s' to build it.", inputPath, inputPath))
			return nil
		},
	}
}

type siteOverrides struct {
	Title string
	URL   string
}

func (o siteOverrides) empty() bool {
	return o.Title == "" && o.URL == ""
}

// initProject copies the embedded template into a new folder and applies the overrides to its site config.
func initProject(fs afero.Fs, templateName, inputPath string, overrides siteOverrides) error {
	if _, err := templates.Templates.ReadDir(templateName); err != nil {
		return errors.Errorf("template '%s' not found", templateName)
	}

	dir, _ := filepath.Split(inputPath)
	if dir != "" {
		return errors.New("traversing up or down in the folder structure is not allowed, provide base folder name only")
	}

	exists, err := afero.Exists(fs, inputPath)
	if err != nil {
		return errors.Wrapf(err, "failed to check the folder %s", inputPath)
	}
	if exists {
		return errors.Errorf("the folder %s already exists, please choose a different name", inputPath)
	}

	if err := fs.MkdirAll(inputPath, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create the folder %s", inputPath)
	}

	err = fs2.WalkDir(templates.Templates, templateName, func(path string, d fs2.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Walk returns the root as if it was its own content
		if d.IsDir() {
			return nil
		}

		fileContents, err := templates.Templates.ReadFile(path)
		if err != nil {
			return err
		}

		relativePath := strings.TrimPrefix(path, templateName+"/")
		target := filepath.Join(inputPath, filepath.FromSlash(relativePath))
		if err := fs.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return errors.Wrapf(err, "could not create the %s folder", filepath.Dir(target))
		}

		if err := afero.WriteFile(fs, target, fileContents, 0o644); err != nil {
			return errors.Wrapf(err, "could not write the %s file", target)
		}

		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "could not copy the template %s", templateName)
	}

	if overrides.empty() {
		return nil
	}

	return applySiteOverrides(fs, filepath.Join(inputPath, site.DefaultConfigFileName), overrides)
}

func applySiteOverrides(fs afero.Fs, configPath string, overrides siteOverrides) error {
	var config site.Config
	if err := path.ReadYaml(fs, configPath, &config); err != nil {
		return errors.Wrapf(err, "failed to read the template site config")
	}

	if overrides.Title != "" {
		config.Title = overrides.Title
	}
	if overrides.URL != "" {
		config.URL = overrides.URL
	}

	if err := path.WriteYaml(fs, configPath, &config); err != nil {
		return errors.Wrapf(err, "invalid site config")
	}

	return nil
}

package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/bruin-data/docsite/pkg/artifact"
	"github.com/bruin-data/docsite/pkg/build"
	"github.com/bruin-data/docsite/pkg/sidebar"
	"github.com/urfave/cli/v2"
)

type BuildSummary struct {
	Root      string   `json:"root"`
	OutDir    string   `json:"out_dir"`
	Documents int      `json:"documents"`
	Sidebars  int      `json:"sidebars"`
	Routes    int      `json:"routes"`
	Artifacts []string `json:"artifacts"`
}

func outputFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "the output type, possible values are: plain, json",
	}
}

func concurrencyFlag() *cli.IntFlag {
	return &cli.IntFlag{
		Name:  "concurrency",
		Value: 8,
		Usage: "the number of files read and rendered in parallel",
	}
}

func Build(isDebug *bool) *cli.Command {
	return &cli.Command{
		Name:      "build",
		Usage:     "build the sidebars, the route table and the search index of a documentation site",
		ArgsUsage: "[path to the project root]",
		Flags: []cli.Flag{
			outputFlag(),
			concurrencyFlag(),
			&cli.StringFlag{
				Name:  "out-dir",
				Usage: "the directory the artifacts are written to, defaults to the output_dir in docsite.yml",
			},
			&cli.BoolFlag{
				Name:  "lenient-labels",
				Usage: "keep sidebar entries whose document is missing when applying the file name labels, instead of failing",
			},
		},
		Action: func(c *cli.Context) error {
			defer RecoverFromPanic()

			output := c.String("output")
			silenceForJSON(output)

			start := time.Now()
			logger := makeLogger(*isDebug)

			opts := build.Options{
				LabelPolicy: sidebar.LabelPolicyStrict,
				Concurrency: c.Int("concurrency"),
			}
			if c.Bool("lenient-labels") {
				opts.LabelPolicy = sidebar.LabelPolicyLenient
			}

			bc, err := loadBuildContext(c.Context, c.Args().Get(0), opts, logger)
			if err != nil {
				printError(err, output, "Failed to load the project")
				return cli.Exit("", 1)
			}

			infoPrinter.Printf("Building '%s' from %d documents...\n", bc.Site.Title, bc.Content.Len())
			if opts.LabelPolicy == sidebar.LabelPolicyLenient {
				warningPrinter.Println("Sidebar entries pointing to missing documents keep their configured labels.")
			}

			res, err := build.NewPipeline(logger).Run(c.Context, bc)
			if err != nil {
				printBuildError(err, output)
				return cli.Exit("", 1)
			}

			outDir := c.String("out-dir")
			if outDir == "" {
				outDir = filepath.Join(bc.Root, bc.Site.OutputDir)
			}

			written, err := artifact.NewPublisher(logger).Publish(outDir, bc, res)
			if err != nil {
				printError(err, output, "Failed to write the build artifacts")
				return cli.Exit("", 1)
			}

			if isJSONOutput(output) {
				return printJSON(BuildSummary{
					Root:      bc.Root,
					OutDir:    outDir,
					Documents: bc.Content.Len(),
					Sidebars:  len(res.Sidebars),
					Routes:    res.Routes.Len(),
					Artifacts: written,
				})
			}

			for _, w := range written {
				fmt.Printf("  %s %s\n", faint("wrote"), w)
			}
			successPrinter.Printf("\n✓ Built %d routes and %d sidebars into '%s' in %s.\n",
				res.Routes.Len(), len(res.Sidebars), outDir, time.Since(start).Round(time.Millisecond))

			return nil
		},
	}
}

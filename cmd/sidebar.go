package cmd

import (
	"fmt"
	"strings"

	"github.com/bruin-data/docsite/pkg/build"
	"github.com/bruin-data/docsite/pkg/sidebar"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"github.com/xlab/treeprint"
)

func Sidebar(isDebug *bool) *cli.Command {
	return &cli.Command{
		Name:      "sidebar",
		Usage:     "print the sidebars of a documentation site, labelled the way they are published",
		ArgsUsage: "[path to the project root]",
		Flags: []cli.Flag{
			outputFlag(),
			&cli.StringFlag{
				Name:  "id",
				Usage: "only print the sidebar with the given id",
			},
			&cli.BoolFlag{
				Name:  "lenient-labels",
				Usage: "keep sidebar entries whose document is missing instead of failing",
			},
		},
		Action: func(c *cli.Context) error {
			defer RecoverFromPanic()

			output := c.String("output")
			silenceForJSON(output)
			logger := makeLogger(*isDebug)

			opts := build.Options{}
			if c.Bool("lenient-labels") {
				opts.LabelPolicy = sidebar.LabelPolicyLenient
			}

			bc, err := loadBuildContext(c.Context, c.Args().Get(0), opts, logger)
			if err != nil {
				printError(err, output, "Failed to load the project")
				return cli.Exit("", 1)
			}

			structure, err := build.NewPipeline(logger).Structure(bc)
			if err != nil {
				printBuildError(err, output)
				return cli.Exit("", 1)
			}

			sidebars := structure.Sidebars
			if id := c.String("id"); id != "" {
				sb := sidebars.Get(id)
				if sb == nil {
					printError(errors.Errorf("there is no sidebar with the id '%s'", id), output, "Failed to find the sidebar")
					return cli.Exit("", 1)
				}
				sidebars = sidebar.Sidebars{sb}
			}

			if isJSONOutput(output) {
				return printJSON(sidebars)
			}

			for _, sb := range sidebars {
				fmt.Println()
				fmt.Println(sidebarTree(sb))
			}

			return nil
		},
	}
}

func sidebarTree(sb *sidebar.Sidebar) string {
	tree := treeprint.NewWithRoot(color.New(color.FgBlue, color.Bold).Sprint(sb.ID))

	var add func(branch treeprint.Tree, nodes []sidebar.Node)
	add = func(branch treeprint.Tree, nodes []sidebar.Node) {
		for _, node := range nodes {
			switch n := node.(type) {
			case *sidebar.Category:
				add(branch.AddBranch(color.New(color.FgYellow).Sprint(n.Label)), n.Items)
			case *sidebar.DocRef:
				branch.AddNode(fmt.Sprintf("%s %s", n.Label, faint(fmt.Sprintf("(%s)", n.ID))))
			default:
				panic(fmt.Sprintf("unknown sidebar node type %T", node))
			}
		}
	}
	add(tree, sb.Items)

	return strings.TrimRight(tree.String(), "\n")
}

package cmd

import (
	"os"
	"strings"

	"github.com/bruin-data/docsite/pkg/build"
	"github.com/bruin-data/docsite/pkg/route"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"
	"github.com/xlab/treeprint"
)

func Routes(isDebug *bool) *cli.Command {
	return &cli.Command{
		Name:      "routes",
		Usage:     "print the route table of a documentation site",
		ArgsUsage: "[path to the project root]",
		Flags: []cli.Flag{
			outputFlag(),
			&cli.BoolFlag{
				Name:  "tree",
				Usage: "print the routes as a tree grouped by path prefix",
			},
		},
		Action: func(c *cli.Context) error {
			defer RecoverFromPanic()

			output := c.String("output")
			silenceForJSON(output)
			logger := makeLogger(*isDebug)

			bc, err := loadBuildContext(c.Context, c.Args().Get(0), build.Options{}, logger)
			if err != nil {
				printError(err, output, "Failed to load the project")
				return cli.Exit("", 1)
			}

			structure, err := build.NewPipeline(logger).Structure(bc)
			if err != nil {
				printBuildError(err, output)
				return cli.Exit("", 1)
			}

			if isJSONOutput(output) {
				return printJSON(structure.Routes)
			}

			if c.Bool("tree") {
				infoPrinter.Println(routeTree(structure.Routes))
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{"Path", "Component", "Sidebar", "Document"})
			for _, e := range structure.Routes.Entries() {
				t.AppendRow(table.Row{e.Path, e.Component, e.SidebarID, e.DocID})
			}
			t.AppendFooter(table.Row{"", "", "Total", structure.Routes.Len()})
			t.Render()

			return nil
		},
	}
}

func routeTree(t *route.Table) string {
	tree := treeprint.NewWithRoot(faint("routes"))

	var add func(branch treeprint.Tree, nodes []*route.TreeNode)
	add = func(branch treeprint.Tree, nodes []*route.TreeNode) {
		for _, n := range nodes {
			label := n.Entry.Path + " " + faint(string(n.Entry.Component))
			if len(n.Children) == 0 {
				branch.AddNode(label)
				continue
			}
			add(branch.AddBranch(label), n.Children)
		}
	}
	add(tree, t.Tree())

	return strings.TrimRight(tree.String(), "\n")
}

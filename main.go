package main

import (
	"os"
	"time"

	"github.com/bruin-data/docsite/cmd"
	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
)

var (
	version = "dev"
	commit  = ""
)

func main() {
	isDebug := false
	color.NoColor = false

	versionCommand := cmd.VersionCmd(commit)

	cli.VersionPrinter = func(cCtx *cli.Context) {
		err := versionCommand.Action(cCtx)
		if err != nil {
			panic(err)
		}
	}

	app := &cli.App{
		Name:     "docsite",
		Version:  version,
		Usage:    "The CLI used for building documentation site navigation: sidebars, routes and search",
		Compiled: time.Now(),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "debug",
				Value:       false,
				Usage:       "show debug information",
				Destination: &isDebug,
			},
		},
		Commands: []*cli.Command{
			cmd.Build(&isDebug),
			cmd.Routes(&isDebug),
			cmd.Sidebar(&isDebug),
			cmd.Validate(&isDebug),
			cmd.Schema(),
			cmd.Init(),
			versionCommand,
		},
	}

	_ = app.Run(os.Args)
}

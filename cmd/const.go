package cmd

import (
	"github.com/bruin-data/docsite/pkg/site"
	"github.com/fatih/color"
	"github.com/spf13/afero"
)

var SiteDefinitionFiles = []string{site.DefaultConfigFileName}

var (
	fs = afero.NewCacheOnReadFs(afero.NewOsFs(), afero.NewMemMapFs(), 0)

	faint          = color.New(color.Faint).SprintFunc()
	infoPrinter    = color.New(color.Bold)
	errorPrinter   = color.New(color.FgRed, color.Bold)
	warningPrinter = color.New(color.FgYellow, color.Bold)
	successPrinter = color.New(color.FgGreen, color.Bold)
)

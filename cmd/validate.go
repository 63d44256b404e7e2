package cmd

import (
	"fmt"

	"github.com/bruin-data/docsite/pkg/build"
	"github.com/bruin-data/docsite/pkg/lint"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func Validate(isDebug *bool) *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "validate the content, the sidebar config and the routes of a documentation site",
		ArgsUsage: "[path to the project root]",
		Flags: []cli.Flag{
			outputFlag(),
			&cli.BoolFlag{
				Name:  "exclude-warnings",
				Usage: "exclude warning validations from the output",
			},
		},
		Action: func(c *cli.Context) error {
			defer RecoverFromPanic()

			output := c.String("output")
			if isJSONOutput(output) {
				silenceForJSON(output)
			} else {
				fmt.Println()
			}

			logger := makeLogger(*isDebug)

			bc, err := loadBuildContext(c.Context, c.Args().Get(0), build.Options{}, logger)
			if err != nil {
				printError(err, output, "Failed to load the project")
				return cli.Exit("", 1)
			}

			rules := lint.GetRules(c.Bool("exclude-warnings"))
			logger.Debugf("running %d rules", len(rules))
			infoPrinter.Printf("Validating the site in '%s'...\n", bc.Root)

			result, err := lint.NewLinter(rules, logger).Lint(c.Context, bc)
			if err != nil {
				printError(err, output, "An error occurred")
				return cli.Exit("", 1)
			}

			printer := lint.Printer{}
			if isJSONOutput(output) {
				if err := printer.PrintJSON(result); err != nil {
					printError(err, output, "An error occurred")
					return cli.Exit("", 1)
				}
				if result.ErrorCount() > 0 {
					return cli.Exit("", 1)
				}
				return nil
			}

			if err := reportLintErrors(result, printer, bc.Content.Len()); err != nil {
				return cli.Exit("", 1)
			}
			return nil
		},
	}
}

func reportLintErrors(result *lint.AnalysisResult, printer lint.Printer, documentCount int) error {
	printer.PrintIssues(result)

	errorCount := result.ErrorCount()
	warningCount := result.WarningCount()
	documentStr := "document"
	if documentCount != 1 {
		documentStr += "s"
	}

	if errorCount > 0 || warningCount > 0 {
		issueStr := "issue"
		if errorCount > 1 {
			issueStr += "s"
		}

		warningStr := "warning"
		if warningCount > 1 {
			warningStr += "s"
		}

		foundMessage := "found"
		if errorCount > 0 {
			errorColoredMessage := color.New(color.FgRed).SprintFunc()
			foundMessage += errorColoredMessage(fmt.Sprintf(" %d %s", errorCount, issueStr))
		}

		if warningCount > 0 {
			if errorCount > 0 {
				foundMessage += " and"
			}
			warningColoredMessage := color.New(color.FgYellow).SprintFunc()
			foundMessage += warningColoredMessage(fmt.Sprintf(" %d %s", warningCount, warningStr))
		}

		infoPrinter.Printf("\n✘ Checked %d %s and %s, please check above.\n", documentCount, documentStr, foundMessage)

		if errorCount > 0 {
			return errors.New("validation failed")
		}

		// warnings should not return failure
		return nil
	}

	successPrinter.Printf("\n✓ Successfully validated %d %s, all good.\n", documentCount, documentStr)
	return nil
}

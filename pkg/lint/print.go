package lint

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"
)

type Printer struct {
	Out io.Writer
}

type ruleIssue struct {
	rule  Rule
	issue *Issue
}

var (
	faint          = color.New(color.Faint).SprintFunc()
	successPrinter = color.New(color.FgGreen)
	sitePrinter    = color.New(color.FgBlue, color.Bold)
	subjectPrinter = color.New(color.FgWhite, color.Bold)
	issuePrinter   = color.New(color.FgRed)
	warningPrinter = color.New(color.FgYellow)
)

func (l *Printer) out() io.Writer {
	if l.Out == nil {
		return color.Output
	}
	return l.Out
}

func (l *Printer) PrintJSON(analysis *AnalysisResult) error {
	jsonRes, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to convert lint result to JSON")
	}

	fmt.Fprintln(l.out(), string(jsonRes))
	return nil
}

func (l *Printer) PrintIssues(analysis *AnalysisResult) {
	w := l.out()
	successPrinter.Fprintln(w)
	sitePrinter.Fprintf(w, "Site: %s %s\n", analysis.Site, faint(fmt.Sprintf("(%s)", analysis.Root)))

	if len(analysis.Issues) == 0 {
		successPrinter.Fprintln(w, "  No issues found")
		return
	}

	genericIssues := make([]*ruleIssue, 0)
	subjects := make([]string, 0)
	subjectIssues := make(map[string][]*ruleIssue)
	for _, rule := range analysis.SortedRules() {
		for _, issue := range analysis.Issues[rule] {
			if issue.Subject == "" {
				genericIssues = append(genericIssues, &ruleIssue{rule, issue})
				continue
			}

			if _, ok := subjectIssues[issue.Subject]; !ok {
				subjects = append(subjects, issue.Subject)
			}
			subjectIssues[issue.Subject] = append(subjectIssues[issue.Subject], &ruleIssue{rule, issue})
		}
	}

	printIssues(w, genericIssues)
	if len(genericIssues) > 0 && len(subjects) > 0 {
		issuePrinter.Fprintln(w)
	}

	for _, subject := range subjects {
		subjectPrinter.Fprintf(w, "  %s\n", subject)
		printIssues(w, subjectIssues[subject])

		issuePrinter.Fprintln(w)
	}
}

func printIssues(w io.Writer, issues []*ruleIssue) {
	issueCount := len(issues)
	for index, ri := range issues {
		pp := issuePrinter
		if ri.rule.GetSeverity() == ValidatorSeverityWarning {
			pp = warningPrinter
		}

		connector := "├──"
		if index == issueCount-1 {
			connector = "└──"
		}

		pp.Fprintf(w, "    %s %s %s\n", connector, ri.issue.Description, faint(fmt.Sprintf("(%s)", ri.rule.Name())))
		printIssueContext(w, pp, ri.issue.Context, index == issueCount-1)
	}
}

func printIssueContext(w io.Writer, printer *color.Color, context []string, lastIssue bool) {
	issueCount := len(context)
	beginning := "│"
	if lastIssue {
		beginning = " "
	}

	for index, row := range context {
		connector := "├─"
		if index == issueCount-1 {
			connector = "└─"
		}

		printer.Fprintf(w, "    %s   %s %s\n", beginning, connector, padLinesIfMultiline(row, 11))
	}
}

func padLinesIfMultiline(str string, padding int) string {
	lines := strings.Split(str, "\n")
	if len(lines) == 1 {
		return str
	}

	paddedLines := make([]string, 0, len(lines))
	for i, line := range lines {
		if i == 0 {
			paddedLines = append(paddedLines, line)
			continue
		}

		paddedLines = append(paddedLines, fmt.Sprintf("%s%s", strings.Repeat(" ", padding), line))
	}

	return strings.Join(paddedLines, "\n")
}

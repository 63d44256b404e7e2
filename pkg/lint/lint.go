package lint

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/bruin-data/docsite/pkg/build"
	"github.com/bruin-data/docsite/pkg/logger"
)

type ValidatorSeverity int

const (
	ValidatorSeverityWarning ValidatorSeverity = iota
	ValidatorSeverityCritical
)

var severityNames = map[ValidatorSeverity]string{
	ValidatorSeverityCritical: "critical",
	ValidatorSeverityWarning:  "warning",
}

type Validator func(ctx context.Context, bc *build.Context) ([]*Issue, error)

// Issue is a single finding. Subject names what the issue is about, e.g. a document id or a
// sidebar id; an empty subject means the issue concerns the whole site.
type Issue struct {
	Subject     string
	Description string
	Context     []string
}

type Rule interface {
	Name() string
	Validate(ctx context.Context, bc *build.Context) ([]*Issue, error)
	GetSeverity() ValidatorSeverity
}

type SimpleRule struct {
	Identifier string
	Validator  Validator
	Severity   ValidatorSeverity
}

func (g *SimpleRule) Validate(ctx context.Context, bc *build.Context) ([]*Issue, error) {
	return g.Validator(ctx, bc)
}

func (g *SimpleRule) Name() string {
	return g.Identifier
}

func (g *SimpleRule) GetSeverity() ValidatorSeverity {
	return g.Severity
}

type Linter struct {
	rules  []Rule
	logger logger.Logger
}

func NewLinter(rules []Rule, logger logger.Logger) *Linter {
	return &Linter{
		rules:  rules,
		logger: logger,
	}
}

// Lint runs every rule against the build context. Rule failures are returned as errors, findings
// as issues.
func (l *Linter) Lint(ctx context.Context, bc *build.Context) (*AnalysisResult, error) {
	result := &AnalysisResult{
		Site:   bc.Site.Title,
		Root:   bc.Root,
		Issues: make(map[Rule][]*Issue),
	}

	for _, rule := range l.rules {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		issues, err := rule.Validate(ctx, bc)
		if err != nil {
			return nil, err
		}

		l.logger.Debugf("rule '%s' found %d issues", rule.Name(), len(issues))
		if len(issues) > 0 {
			result.Issues[rule] = append(result.Issues[rule], issues...)
		}
	}

	return result, nil
}

type AnalysisResult struct {
	Site   string
	Root   string
	Issues map[Rule][]*Issue
}

// ErrorCount returns the number of critical issues.
func (r *AnalysisResult) ErrorCount() int {
	return r.countBySeverity(ValidatorSeverityCritical)
}

// WarningCount returns the number of non-critical issues.
func (r *AnalysisResult) WarningCount() int {
	return r.countBySeverity(ValidatorSeverityWarning)
}

func (r *AnalysisResult) countBySeverity(severity ValidatorSeverity) int {
	count := 0
	for rule, issues := range r.Issues {
		if rule.GetSeverity() == severity {
			count += len(issues)
		}
	}

	return count
}

// SortedRules returns the rules that reported issues, critical ones first, then by name.
func (r *AnalysisResult) SortedRules() []Rule {
	rules := make([]Rule, 0, len(r.Issues))
	for rule := range r.Issues {
		rules = append(rules, rule)
	}

	sort.Slice(rules, func(i, j int) bool {
		if rules[i].GetSeverity() != rules[j].GetSeverity() {
			return rules[i].GetSeverity() > rules[j].GetSeverity()
		}
		return rules[i].Name() < rules[j].Name()
	})

	return rules
}

func (r *AnalysisResult) MarshalJSON() ([]byte, error) {
	type IssueSummary struct {
		Subject     string   `json:"subject"`
		Rule        string   `json:"rule"`
		Description string   `json:"description"`
		Context     []string `json:"context"`
		Severity    string   `json:"severity"`
	}

	summaries := make([]*IssueSummary, 0)
	for _, rule := range r.SortedRules() {
		for _, issue := range r.Issues[rule] {
			ctx := make([]string, 0, len(issue.Context))
			if issue.Context != nil {
				ctx = issue.Context
			}

			summaries = append(summaries, &IssueSummary{
				Subject:     issue.Subject,
				Rule:        rule.Name(),
				Description: issue.Description,
				Context:     ctx,
				Severity:    severityNames[rule.GetSeverity()],
			})
		}
	}

	return json.Marshal(struct {
		Site   string          `json:"site"`
		Issues []*IssueSummary `json:"issues"`
	}{
		Site:   r.Site,
		Issues: summaries,
	})
}

package lint

import (
	"context"
	"fmt"

	"github.com/bruin-data/docsite/pkg/build"
	"github.com/bruin-data/docsite/pkg/route"
	"github.com/bruin-data/docsite/pkg/sidebar"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

const (
	sidebarDocMustExist        = "The sidebar references a document that does not exist"
	sidebarItemMustBeValid     = "The sidebar item is invalid"
	routePathMustBeUnique      = "More than one source produces the route '%s'"
	docShouldBeInSidebar       = "The document is not referenced by any sidebar"
	docShouldBeReferencedOnce  = "The document is referenced %d times across the sidebars"
	categoryShouldNotBeEmpty   = "The category '%s' has no items"
	frontMatterShouldBeDecoded = "The front-matter could not be decoded, default metadata is used instead"
)

// GetRules returns the rules the validate command runs.
func GetRules(excludeWarnings bool) []Rule {
	rules := []Rule{
		&SimpleRule{
			Identifier: "sidebar-doc-exists",
			Validator:  EnsureSidebarDocsExist,
			Severity:   ValidatorSeverityCritical,
		},
		&SimpleRule{
			Identifier: "sidebar-config-valid",
			Validator:  EnsureSidebarConfigIsValid,
			Severity:   ValidatorSeverityCritical,
		},
		&SimpleRule{
			Identifier: "route-path-unique",
			Validator:  EnsureRoutePathsAreUnique,
			Severity:   ValidatorSeverityCritical,
		},
		&SimpleRule{
			Identifier: "doc-in-sidebar",
			Validator:  EnsureDocsAreInSidebar,
			Severity:   ValidatorSeverityWarning,
		},
		&SimpleRule{
			Identifier: "doc-referenced-once",
			Validator:  EnsureDocsAreReferencedOnce,
			Severity:   ValidatorSeverityWarning,
		},
		&SimpleRule{
			Identifier: "category-not-empty",
			Validator:  EnsureCategoriesAreNotEmpty,
			Severity:   ValidatorSeverityWarning,
		},
		&SimpleRule{
			Identifier: "front-matter-valid",
			Validator:  EnsureFrontMatterIsValid,
			Severity:   ValidatorSeverityWarning,
		},
	}

	if excludeWarnings {
		return lo.Filter(rules, func(r Rule, _ int) bool {
			return r.GetSeverity() == ValidatorSeverityCritical
		})
	}

	return rules
}

// buildSidebars returns whatever could be built together with the configuration problems, so
// rules can inspect a broken config instead of stopping at the first error.
func buildSidebars(bc *build.Context) (sidebar.Sidebars, []sidebar.Problem, error) {
	sidebars, err := sidebar.NewBuilder(bc.Content).Build(bc.SidebarConfig)
	if err == nil {
		return sidebars, nil, nil
	}

	var cfgErr *sidebar.ConfigurationError
	if errors.As(err, &cfgErr) {
		return sidebars, cfgErr.Problems, nil
	}

	return nil, nil, err
}

func problemIssues(bc *build.Context, kind sidebar.ProblemKind, description string) ([]*Issue, error) {
	_, problems, err := buildSidebars(bc)
	if err != nil {
		return nil, err
	}

	issues := make([]*Issue, 0)
	for _, p := range problems {
		if p.Kind != kind {
			continue
		}

		issues = append(issues, &Issue{
			Subject:     p.SidebarID,
			Description: description,
			Context:     []string{fmt.Sprintf("%s: %s", p.Location, p.Message)},
		})
	}

	return issues, nil
}

func EnsureSidebarDocsExist(_ context.Context, bc *build.Context) ([]*Issue, error) {
	return problemIssues(bc, sidebar.ProblemUnresolvedDoc, sidebarDocMustExist)
}

func EnsureSidebarConfigIsValid(_ context.Context, bc *build.Context) ([]*Issue, error) {
	return problemIssues(bc, sidebar.ProblemInvalidItem, sidebarItemMustBeValid)
}

func EnsureRoutePathsAreUnique(_ context.Context, bc *build.Context) ([]*Issue, error) {
	sidebars, _, err := buildSidebars(bc)
	if err != nil {
		return nil, err
	}

	_, err = route.NewBuilder(bc.Site.DocsBasePath, bc.Site.FixedRoutes()).Build(bc.Content.All(), sidebars)
	if err == nil {
		return []*Issue{}, nil
	}

	var dupErr *route.DuplicateRouteError
	if !errors.As(err, &dupErr) {
		return nil, err
	}

	issues := make([]*Issue, 0, len(dupErr.Duplicates))
	for _, d := range dupErr.Duplicates {
		issues = append(issues, &Issue{
			Description: fmt.Sprintf(routePathMustBeUnique, d.Path),
			Context:     d.Owners,
		})
	}

	return issues, nil
}

func EnsureDocsAreInSidebar(_ context.Context, bc *build.Context) ([]*Issue, error) {
	sidebars, _, err := buildSidebars(bc)
	if err != nil {
		return nil, err
	}

	refs := sidebars.DocRefs()
	issues := make([]*Issue, 0)
	for _, doc := range bc.Content.All() {
		if _, ok := refs[doc.ID]; ok {
			continue
		}

		issues = append(issues, &Issue{
			Subject:     doc.ID,
			Description: docShouldBeInSidebar,
			Context:     []string{doc.Source},
		})
	}

	return issues, nil
}

func EnsureDocsAreReferencedOnce(_ context.Context, bc *build.Context) ([]*Issue, error) {
	sidebars, _, err := buildSidebars(bc)
	if err != nil {
		return nil, err
	}

	refs := sidebars.DocRefs()
	issues := make([]*Issue, 0)
	for _, doc := range bc.Content.All() {
		ids := refs[doc.ID]
		if len(ids) < 2 {
			continue
		}

		issues = append(issues, &Issue{
			Subject:     doc.ID,
			Description: fmt.Sprintf(docShouldBeReferencedOnce, len(ids)),
			Context:     lo.Map(ids, func(id string, _ int) string { return "sidebar: " + id }),
		})
	}

	return issues, nil
}

func EnsureCategoriesAreNotEmpty(_ context.Context, bc *build.Context) ([]*Issue, error) {
	sidebars, _, err := buildSidebars(bc)
	if err != nil {
		return nil, err
	}

	issues := make([]*Issue, 0)
	for _, sb := range sidebars {
		var visit func(nodes []sidebar.Node, trail []string)
		visit = func(nodes []sidebar.Node, trail []string) {
			for _, node := range nodes {
				category, ok := node.(*sidebar.Category)
				if !ok {
					continue
				}

				path := append(append([]string{}, trail...), category.Label)
				if len(category.Items) == 0 {
					issues = append(issues, &Issue{
						Subject:     sb.ID,
						Description: fmt.Sprintf(categoryShouldNotBeEmpty, category.Label),
						Context:     path,
					})
				}
				visit(category.Items, path)
			}
		}
		visit(sb.Items, nil)
	}

	return issues, nil
}

func EnsureFrontMatterIsValid(_ context.Context, bc *build.Context) ([]*Issue, error) {
	issues := make([]*Issue, 0)
	for _, doc := range bc.Content.All() {
		if doc.FrontMatterErr == nil {
			continue
		}

		issues = append(issues, &Issue{
			Subject:     doc.ID,
			Description: frontMatterShouldBeDecoded,
			Context:     []string{doc.FrontMatterErr.Error()},
		})
	}

	return issues, nil
}

// Package aggregator folds per-ecosystem parse results into project reports
// and project reports into a scan-wide summary.
//
// Every function here is a pure reduction: inputs are never modified and
// folding the same inputs twice yields equal output.
package aggregator

import "github.com/Art-Jashari/DevHealth/internal/models"

// Project builds the report for one project directory. Reports are keyed by
// ecosystem tag; a later report for the same tag replaces an earlier one.
func Project(path string, reports ...models.EcosystemReport) models.ProjectReport {
	p := models.ProjectReport{
		Path:       path,
		Ecosystems: make(map[models.Ecosystem]models.EcosystemReport, len(reports)),
	}
	for _, r := range reports {
		if r.Dependencies == nil {
			r.Dependencies = []models.Dependency{}
		}
		p.Ecosystems[r.Ecosystem] = r
	}
	return p
}

// Ecosystem merges the dependencies parsed from one or more manifests of the
// same ecosystem. Later manifests overwrite earlier declarations of the same
// name; key normalizes names for that comparison (nil compares verbatim).
func Ecosystem(eco models.Ecosystem, key func(string) string, manifests []string, parsed ...[]models.Dependency) models.EcosystemReport {
	set := models.NewDependencySet(key)
	for _, deps := range parsed {
		set.PutAll(deps)
	}
	return models.EcosystemReport{
		Ecosystem:    eco,
		Manifests:    append([]string(nil), manifests...),
		Dependencies: set.List(),
	}
}

// Summarize folds projects and recorded errors into a ScanSummary.
// Projects without any ecosystem are dropped: they carry no dependency
// information and their failures are already present in errs.
func Summarize(root string, projects []models.ProjectReport, errs []models.ScanError) *models.ScanSummary {
	s := &models.ScanSummary{
		Root:     root,
		Projects: make([]models.ProjectReport, 0, len(projects)),
		Errors:   append([]models.ScanError{}, errs...),
	}
	for _, p := range projects {
		if len(p.Ecosystems) == 0 {
			continue
		}
		s.Projects = append(s.Projects, p)
	}
	s.Totals = Totals(s)
	return s
}

// Totals computes the derived counts of s.
func Totals(s *models.ScanSummary) models.Totals {
	return models.Totals{
		Projects:     s.ProjectCount(),
		Ecosystems:   s.EcosystemCount(),
		Dependencies: s.TotalDependencies(),
		Errors:       len(s.Errors),
		ByRole:       s.RoleCounts(),
	}
}

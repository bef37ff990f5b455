package reporter

import (
	"encoding/json"

	"github.com/Art-Jashari/DevHealth/internal/models"
)

// JSONReporter outputs the scan summary in JSON format
type JSONReporter struct{}

// jsonOutput represents the JSON output structure
type jsonOutput struct {
	Root     string        `json:"root"`
	Summary  jsonSummary   `json:"summary"`
	Projects []jsonProject `json:"projects"`
	Errors   []jsonError   `json:"errors"`
}

type jsonSummary struct {
	Projects     int                 `json:"projects"`
	Ecosystems   int                 `json:"ecosystems"`
	Dependencies int                 `json:"dependencies"`
	Errors       int                 `json:"errors"`
	ByRole       map[models.Role]int `json:"by_role"`
}

type jsonProject struct {
	Path         string          `json:"path"`
	Dependencies int             `json:"total_dependencies"`
	Ecosystems   []jsonEcosystem `json:"ecosystems"`
}

type jsonEcosystem struct {
	Ecosystem    models.Ecosystem    `json:"ecosystem"`
	Manifests    []string            `json:"manifests"`
	Dependencies []models.Dependency `json:"dependencies"`
}

type jsonError struct {
	Path    string           `json:"path"`
	Kind    models.ErrorKind `json:"kind"`
	Message string           `json:"message"`
}

// Report generates JSON output for the given summary. Ecosystems are listed
// in canonical order so output is stable across runs.
func (r *JSONReporter) Report(summary *models.ScanSummary) ([]byte, error) {
	output := jsonOutput{
		Root: summary.Root,
		Summary: jsonSummary{
			Projects:     summary.Totals.Projects,
			Ecosystems:   summary.Totals.Ecosystems,
			Dependencies: summary.Totals.Dependencies,
			Errors:       summary.Totals.Errors,
			ByRole:       summary.Totals.ByRole,
		},
		Projects: make([]jsonProject, 0, len(summary.Projects)),
		Errors:   make([]jsonError, 0, len(summary.Errors)),
	}
	if output.Summary.ByRole == nil {
		output.Summary.ByRole = map[models.Role]int{}
	}

	for _, p := range summary.Projects {
		jp := jsonProject{
			Path:         p.Path,
			Dependencies: p.TotalDependencies(),
			Ecosystems:   make([]jsonEcosystem, 0, len(p.Ecosystems)),
		}
		for _, tag := range p.EcosystemTags() {
			eco := p.Ecosystems[tag]
			je := jsonEcosystem{
				Ecosystem:    tag,
				Manifests:    eco.Manifests,
				Dependencies: eco.Dependencies,
			}
			if je.Manifests == nil {
				je.Manifests = []string{}
			}
			if je.Dependencies == nil {
				je.Dependencies = []models.Dependency{}
			}
			jp.Ecosystems = append(jp.Ecosystems, je)
		}
		output.Projects = append(output.Projects, jp)
	}

	for _, e := range summary.Errors {
		output.Errors = append(output.Errors, jsonError(e))
	}

	return json.MarshalIndent(output, "", "  ")
}

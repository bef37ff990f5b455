package aggregator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Art-Jashari/DevHealth/internal/models"
)

func deps(role models.Role, names ...string) []models.Dependency {
	out := make([]models.Dependency, len(names))
	for i, n := range names {
		out[i] = models.Dependency{Name: n, VersionSpec: "*", Role: role}
	}
	return out
}

func TestProjectKeysByEcosystem(t *testing.T) {
	p := Project("app",
		models.EcosystemReport{Ecosystem: models.EcosystemGo, Dependencies: deps(models.RoleProduction, "a")},
		models.EcosystemReport{Ecosystem: models.EcosystemNode},
		models.EcosystemReport{Ecosystem: models.EcosystemGo, Dependencies: deps(models.RoleProduction, "b", "c")},
	)

	require.Len(t, p.Ecosystems, 2)
	assert.Equal(t, 2, p.TotalDependencies())
	assert.NotNil(t, p.Ecosystems[models.EcosystemNode].Dependencies, "detected ecosystem with no deps stays distinguishable")
	assert.Empty(t, p.Ecosystems[models.EcosystemNode].Dependencies)
}

func TestEcosystemMergesManifests(t *testing.T) {
	req := []models.Dependency{
		{Name: "requests", VersionSpec: ">=2", SourceManifest: "requirements.txt"},
		{Name: "flask", VersionSpec: "*", SourceManifest: "requirements.txt"},
	}
	pipfile := []models.Dependency{
		{Name: "Requests", VersionSpec: "==2.31", SourceManifest: "Pipfile"},
	}
	manifests := []string{"requirements.txt", "Pipfile"}

	r := Ecosystem(models.EcosystemPython, strings.ToLower, manifests, req, pipfile)
	manifests[0] = "mutated"

	assert.Equal(t, []string{"requirements.txt", "Pipfile"}, r.Manifests)
	require.Len(t, r.Dependencies, 2)
	assert.Equal(t, "Requests", r.Dependencies[0].Name)
	assert.Equal(t, "Pipfile", r.Dependencies[0].SourceManifest)
	assert.Equal(t, "flask", r.Dependencies[1].Name)
}

func TestSummarizeScenario(t *testing.T) {
	cargo := Project("rust-project", models.EcosystemReport{
		Ecosystem:    models.EcosystemCargo,
		Dependencies: append(deps(models.RoleProduction, "serde", "clap"), deps(models.RoleDevelopment, "tempfile")...),
	})
	node := Project("node-project", models.EcosystemReport{
		Ecosystem:    models.EcosystemNode,
		Dependencies: append(deps(models.RoleProduction, "express", "lodash", "react"), deps(models.RoleDevelopment, "jest", "typescript")...),
	})

	s := Summarize("/src", []models.ProjectReport{cargo, node}, nil)

	assert.Equal(t, "/src", s.Root)
	assert.Len(t, s.Projects, 2)
	assert.Equal(t, 8, s.Totals.Dependencies)
	assert.Equal(t, 2, s.Totals.Ecosystems)
	assert.Equal(t, 2, s.Totals.Projects)
	assert.Equal(t, 0, s.Totals.Errors)
	assert.Empty(t, s.Errors)
	assert.NotNil(t, s.Errors)
	assert.Equal(t, map[models.Role]int{models.RoleProduction: 5, models.RoleDevelopment: 3}, s.Totals.ByRole)
}

func TestSummarizeDropsEmptyProjects(t *testing.T) {
	errs := []models.ScanError{{Path: "broken/package.json", Kind: models.ErrorKindParse, Message: "invalid"}}
	s := Summarize(".", []models.ProjectReport{
		Project("broken"),
		Project("ok", models.EcosystemReport{Ecosystem: models.EcosystemGo}),
	}, errs)

	require.Len(t, s.Projects, 1)
	assert.Equal(t, "ok", s.Projects[0].Path)
	assert.Equal(t, 1, s.Totals.Errors)
}

func TestSummarizeIdempotent(t *testing.T) {
	projects := []models.ProjectReport{
		Project("a", models.EcosystemReport{Ecosystem: models.EcosystemGo, Dependencies: deps(models.RoleIndirect, "x", "y")}),
		Project("b", models.EcosystemReport{Ecosystem: models.EcosystemPython, Dependencies: deps(models.RoleOptional, "z")}),
	}
	errs := []models.ScanError{{Path: "c/go.mod", Kind: models.ErrorKindParse}}

	first := Summarize(".", projects, errs)
	second := Summarize(".", first.Projects, first.Errors)

	assert.Equal(t, first, second)
	assert.Equal(t, first.Totals, Totals(second))
}

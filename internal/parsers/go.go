package parsers

import (
	"golang.org/x/mod/modfile"

	"github.com/Art-Jashari/DevHealth/internal/classifier"
	"github.com/Art-Jashari/DevHealth/internal/models"
)

// GoModParser parses go.mod files
type GoModParser struct{}

// Ecosystem returns models.EcosystemGo
func (p *GoModParser) Ecosystem() models.Ecosystem { return models.EcosystemGo }

// CanParse returns true for go.mod files
func (p *GoModParser) CanParse(filename string) bool {
	return filename == "go.mod"
}

// Parse extracts require directives from go.mod content. Single-line and
// block directives produce identical records, so no line numbers are kept.
func (p *GoModParser) Parse(filepath string, content []byte) ([]models.Dependency, error) {
	mod, err := modfile.Parse(filepath, stripBOM(content), nil)
	if err != nil {
		return nil, parseError(filepath, err, "invalid go.mod")
	}

	deps := models.NewDependencySet(nil)
	for _, req := range mod.Require {
		deps.Put(models.Dependency{
			Name:           req.Mod.Path,
			VersionSpec:    req.Mod.Version,
			Role:           classifier.GoRole(req.Indirect),
			SourceManifest: filepath,
			Section:        "require",
		})
	}

	return deps.List(), nil
}

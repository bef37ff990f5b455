package parsers

import (
	"github.com/Art-Jashari/DevHealth/internal/classifier"
	"github.com/Art-Jashari/DevHealth/internal/models"
)

// CargoParser parses Cargo.toml files
type CargoParser struct{}

// Ecosystem returns models.EcosystemCargo
func (p *CargoParser) Ecosystem() models.Ecosystem { return models.EcosystemCargo }

// CanParse returns true for Cargo.toml files
func (p *CargoParser) CanParse(filename string) bool {
	return filename == "Cargo.toml"
}

// Parse extracts [dependencies], [dev-dependencies] and [build-dependencies],
// including their [target.<cfg>.*] variants. An entry marked optional is
// classified Optional whichever table declares it.
func (p *CargoParser) Parse(filepath string, content []byte) ([]models.Dependency, error) {
	doc, md, err := decodeTOML(content)
	if err != nil {
		return nil, parseError(filepath, err, "invalid Cargo.toml")
	}

	entries := tomlEntries(doc, md, func(section []string) bool {
		_, _, ok := classifier.CargoSection(section)
		return ok
	})

	deps := models.NewDependencySet(nil)
	for _, e := range entries {
		section, role, _ := classifier.CargoSection(e.section)
		version, optional, err := entryVersion(e.value)
		if err != nil {
			return nil, parseError(filepath, err, "[%s] %s", section, e.name)
		}
		deps.Put(models.Dependency{
			Name:           e.name,
			VersionSpec:    version,
			Role:           classifier.Classify(role, classifier.Flags{Optional: optional}),
			SourceManifest: filepath,
			Section:        section,
		})
	}

	return deps.List(), nil
}

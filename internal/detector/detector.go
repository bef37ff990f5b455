// Package detector decides which ecosystems a directory belongs to by
// looking for their manifest files.
package detector

import (
	"os"
	"path/filepath"

	"github.com/Art-Jashari/DevHealth/internal/models"
)

// Manifest ties a manifest filename to its ecosystem.
type Manifest struct {
	Filename  string
	Ecosystem models.Ecosystem
}

// Manifests lists every recognised manifest in canonical order. Python
// manifests appear in the order their dependencies are merged.
var Manifests = []Manifest{
	{"Cargo.toml", models.EcosystemCargo},
	{"package.json", models.EcosystemNode},
	{"requirements.txt", models.EcosystemPython},
	{"pyproject.toml", models.EcosystemPython},
	{"Pipfile", models.EcosystemPython},
	{"go.mod", models.EcosystemGo},
}

// Detection is one ecosystem found in a directory and the manifests that
// evidence it.
type Detection struct {
	Ecosystem models.Ecosystem
	Manifests []string
}

// Detect returns the ecosystems whose manifests sit directly inside dir,
// in canonical order. Only regular files count; a symlink is judged by its
// target. An empty result means dir is not a project.
func Detect(dir string) []Detection {
	var detections []Detection
	for _, m := range Manifests {
		path := filepath.Join(dir, m.Filename)
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		if n := len(detections); n > 0 && detections[n-1].Ecosystem == m.Ecosystem {
			detections[n-1].Manifests = append(detections[n-1].Manifests, path)
			continue
		}
		detections = append(detections, Detection{Ecosystem: m.Ecosystem, Manifests: []string{path}})
	}
	return detections
}

// Ecosystems returns the ecosystem tags of detections.
func Ecosystems(detections []Detection) []models.Ecosystem {
	tags := make([]models.Ecosystem, len(detections))
	for i, d := range detections {
		tags[i] = d.Ecosystem
	}
	return tags
}

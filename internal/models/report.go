package models

import "sort"

// EcosystemReport holds all dependencies of one ecosystem within one project.
// Dependencies keep manifest declaration order.
type EcosystemReport struct {
	Ecosystem    Ecosystem    `json:"ecosystem"`
	Manifests    []string     `json:"manifests"`
	Dependencies []Dependency `json:"dependencies"`
}

// ProjectReport describes one directory identified as a project root.
type ProjectReport struct {
	Path       string                        `json:"path"`
	Ecosystems map[Ecosystem]EcosystemReport `json:"ecosystems"`
}

// TotalDependencies sums dependency counts across ecosystems.
func (p ProjectReport) TotalDependencies() int {
	n := 0
	for _, eco := range p.Ecosystems {
		n += len(eco.Dependencies)
	}
	return n
}

// EcosystemTags returns the project's ecosystems in canonical order.
func (p ProjectReport) EcosystemTags() []Ecosystem {
	tags := make([]Ecosystem, 0, len(p.Ecosystems))
	for eco := range p.Ecosystems {
		tags = append(tags, eco)
	}
	SortEcosystems(tags)
	return tags
}

// SortEcosystems sorts tags into canonical order in place.
func SortEcosystems(tags []Ecosystem) {
	sort.Slice(tags, func(i, j int) bool {
		ri, rj := tags[i].rank(), tags[j].rank()
		if ri != rj {
			return ri < rj
		}
		return tags[i] < tags[j]
	})
}

// ErrorKind classifies a recorded scan error
type ErrorKind string

const (
	ErrorKindFileSystem ErrorKind = "filesystem"
	ErrorKindParse      ErrorKind = "parse"
)

// ScanError is a non-fatal failure attributed to one file or directory.
type ScanError struct {
	Path    string    `json:"path"`
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// Totals is a snapshot of the summary's derived counts.
type Totals struct {
	Projects     int          `json:"projects"`
	Ecosystems   int          `json:"ecosystems"`
	Dependencies int          `json:"dependencies"`
	Errors       int          `json:"errors"`
	ByRole       map[Role]int `json:"by_role"`
}

// ScanSummary is the whole-scan result handed to reporters.
type ScanSummary struct {
	Root     string          `json:"root"`
	Projects []ProjectReport `json:"projects"`
	Errors   []ScanError     `json:"errors"`
	Totals   Totals          `json:"totals"`
}

// ProjectCount returns the number of detected projects.
func (s *ScanSummary) ProjectCount() int {
	return len(s.Projects)
}

// EcosystemCount returns the number of distinct ecosystems seen across all projects.
func (s *ScanSummary) EcosystemCount() int {
	return len(s.EcosystemTags())
}

// EcosystemTags returns the distinct ecosystems seen, in canonical order.
func (s *ScanSummary) EcosystemTags() []Ecosystem {
	seen := make(map[Ecosystem]struct{})
	var tags []Ecosystem
	for _, p := range s.Projects {
		for eco := range p.Ecosystems {
			if _, ok := seen[eco]; !ok {
				seen[eco] = struct{}{}
				tags = append(tags, eco)
			}
		}
	}
	SortEcosystems(tags)
	return tags
}

// TotalDependencies sums dependencies across every project.
func (s *ScanSummary) TotalDependencies() int {
	n := 0
	for _, p := range s.Projects {
		n += p.TotalDependencies()
	}
	return n
}

// EcosystemDependencies counts dependencies of one ecosystem across every project.
func (s *ScanSummary) EcosystemDependencies(eco Ecosystem) int {
	n := 0
	for _, p := range s.Projects {
		n += len(p.Ecosystems[eco].Dependencies)
	}
	return n
}

// RoleCounts returns the number of dependencies per role.
func (s *ScanSummary) RoleCounts() map[Role]int {
	counts := make(map[Role]int)
	for _, p := range s.Projects {
		for _, eco := range p.Ecosystems {
			for _, dep := range eco.Dependencies {
				counts[dep.Role]++
			}
		}
	}
	return counts
}

package parsers

import (
	"bufio"
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/Art-Jashari/DevHealth/internal/classifier"
	"github.com/Art-Jashari/DevHealth/internal/models"
)

// PythonRequirementsParser parses requirements.txt files
type PythonRequirementsParser struct{}

// Ecosystem returns models.EcosystemPython
func (p *PythonRequirementsParser) Ecosystem() models.Ecosystem { return models.EcosystemPython }

// CanParse returns true for requirements.txt files
func (p *PythonRequirementsParser) CanParse(filename string) bool {
	return filename == "requirements.txt" ||
		strings.HasSuffix(filename, "-requirements.txt") ||
		strings.HasSuffix(filename, "_requirements.txt") ||
		filename == "requirements-dev.txt" ||
		filename == "requirements-test.txt"
}

// requirementPattern splits a PEP 508 requirement into name, extras and the
// remaining version constraint
var requirementPattern = regexp.MustCompile(`^([A-Za-z0-9](?:[A-Za-z0-9._-]*[A-Za-z0-9])?)\s*(\[[^\]]*\])?\s*(.*)$`)

// constraintPattern matches the start of a version constraint or direct reference
var constraintPattern = regexp.MustCompile(`^(===|==|!=|~=|>=|<=|>|<|@)`)

// parenthesizedPattern matches the "(>=1.0,<2)" form of a version constraint
var parenthesizedPattern = regexp.MustCompile(`^\(\s*((?:===|==|!=|~=|>=|<=|>|<)[^()]*?)\s*\)$`)

// urlPattern matches requirement lines that are bare URLs (including VCS URLs like git+https://)
var urlPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*://`)

// separatorPattern matches runs of characters PyPI treats as equivalent
var separatorPattern = regexp.MustCompile(`[-_.]+`)

// NormalizePythonName returns the PEP 503 normalized form of a package name
func NormalizePythonName(name string) string {
	return separatorPattern.ReplaceAllString(strings.ToLower(name), "-")
}

// Parse extracts requirements from requirements.txt content. Every entry is
// a production dependency.
func (p *PythonRequirementsParser) Parse(filepath string, content []byte) ([]models.Dependency, error) {
	deps := models.NewDependencySet(NormalizePythonName)

	scanner := bufio.NewScanner(bytes.NewReader(stripBOM(content)))
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		start := lineNum
		line := scanner.Text()

		// Join backslash continuations
		for strings.HasSuffix(strings.TrimSpace(line), `\`) && scanner.Scan() {
			lineNum++
			line = strings.TrimSuffix(strings.TrimSpace(line), `\`) + " " + scanner.Text()
		}
		line = strings.TrimSpace(line)

		// Skip empty lines, comments, and options
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
			continue
		}
		// Skip URLs and local paths; they carry no registry name
		if urlPattern.MatchString(line) || strings.HasPrefix(line, ".") || strings.HasPrefix(line, "/") {
			continue
		}

		// Remove inline comments and per-requirement options such as --hash
		if idx := strings.Index(line, " #"); idx > 0 {
			line = strings.TrimSpace(line[:idx])
		}
		if idx := strings.Index(line, " --"); idx > 0 {
			line = strings.TrimSpace(line[:idx])
		}

		name, version, err := parseRequirement(line)
		if err != nil {
			return nil, parseError(filepath, err, "line %d", start)
		}
		deps.Put(models.Dependency{
			Name:           name,
			VersionSpec:    version,
			Role:           models.RoleProduction,
			SourceManifest: filepath,
			Line:           start,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, parseError(filepath, err, "read requirements")
	}

	return deps.List(), nil
}

// parseRequirement parses a PEP 508 requirement such as
// "flask[async]>=2.0; python_version >= '3.8'". Extras are dropped from the
// name, environment markers are stripped, and the constraint is kept as
// written ("*" when absent). A parenthesized constraint keeps its parentheses.
func parseRequirement(spec string) (name string, version string, err error) {
	// Remove environment markers
	if idx := strings.Index(spec, ";"); idx >= 0 {
		spec = spec[:idx]
	}
	spec = strings.TrimSpace(spec)

	m := requirementPattern.FindStringSubmatch(spec)
	if m == nil {
		return "", "", fmt.Errorf("invalid requirement %q", spec)
	}
	name, version = m[1], strings.TrimSpace(m[3])
	if version == "" {
		return name, "*", nil
	}
	inner := version
	if m := parenthesizedPattern.FindStringSubmatch(version); m != nil {
		inner = m[1]
	}
	if !constraintPattern.MatchString(inner) {
		return "", "", fmt.Errorf("invalid version constraint %q for %s", version, name)
	}
	return name, version, nil
}

// PythonPyProjectParser parses pyproject.toml files
type PythonPyProjectParser struct{}

// Ecosystem returns models.EcosystemPython
func (p *PythonPyProjectParser) Ecosystem() models.Ecosystem { return models.EcosystemPython }

// CanParse returns true for pyproject.toml files
func (p *PythonPyProjectParser) CanParse(filename string) bool {
	return filename == "pyproject.toml"
}

// Parse extracts PEP 621 [project] dependencies and optional-dependencies
// groups, plus Poetry's [tool.poetry] tables.
func (p *PythonPyProjectParser) Parse(filepath string, content []byte) ([]models.Dependency, error) {
	doc, md, err := decodeTOML(content)
	if err != nil {
		return nil, parseError(filepath, err, "invalid pyproject.toml")
	}

	deps := models.NewDependencySet(NormalizePythonName)

	// Parse PEP 621 dependencies (project.dependencies)
	if raw, ok := lookup(doc, []string{"project", "dependencies"}); ok {
		specs, err := stringList(raw)
		if err != nil {
			return nil, parseError(filepath, err, "project.dependencies")
		}
		role, _ := classifier.PyProject.Lookup("dependencies")
		for _, spec := range specs {
			name, version, err := parseRequirement(spec)
			if err != nil {
				return nil, parseError(filepath, err, "project.dependencies")
			}
			deps.Put(models.Dependency{
				Name:           name,
				VersionSpec:    version,
				Role:           role,
				SourceManifest: filepath,
				Section:        "dependencies",
			})
		}
	}

	// Parse PEP 621 optional dependency groups, one group per key
	groups := tomlEntries(doc, md, func(section []string) bool {
		return len(section) == 2 && section[0] == "project" && section[1] == "optional-dependencies"
	})
	role, _ := classifier.PyProject.Lookup("optional-dependencies")
	for _, group := range groups {
		specs, err := stringList(group.value)
		if err != nil {
			return nil, parseError(filepath, err, "optional-dependencies.%s", group.name)
		}
		for _, spec := range specs {
			name, version, err := parseRequirement(spec)
			if err != nil {
				return nil, parseError(filepath, err, "optional-dependencies.%s", group.name)
			}
			deps.Put(models.Dependency{
				Name:           name,
				VersionSpec:    version,
				Role:           role,
				SourceManifest: filepath,
				Section:        "optional-dependencies." + group.name,
			})
		}
	}

	// Parse Poetry dependencies
	poetry := tomlEntries(doc, md, isPoetrySection)
	for _, e := range poetry {
		if e.name == "python" {
			continue
		}
		section, role := poetrySection(e.section)
		version, optional, err := poetryVersion(e.value)
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

// isPoetrySection accepts tool.poetry.dependencies, tool.poetry.dev-dependencies
// and tool.poetry.group.<name>.dependencies
func isPoetrySection(section []string) bool {
	if len(section) < 3 || section[0] != "tool" || section[1] != "poetry" {
		return false
	}
	switch len(section) {
	case 3:
		_, ok := classifier.Poetry.Lookup(section[2])
		return ok
	case 5:
		return section[2] == "group" && section[4] == "dependencies"
	}
	return false
}

func poetrySection(section []string) (string, models.Role) {
	name := strings.Join(section, ".")
	if len(section) == 5 {
		return name, classifier.PoetryGroup(section[3])
	}
	role, _ := classifier.Poetry.Lookup(section[2])
	return name, role
}

// poetryVersion extends entryVersion with Poetry's multiple-constraint form,
// an array of tables such as [{version = "<2", python = "<3.8"}, ...]. The
// alternatives are joined with " || " and the entry is optional when any
// alternative is.
func poetryVersion(value any) (string, bool, error) {
	var tables []map[string]any
	switch v := value.(type) {
	case []map[string]any:
		tables = v
	case []any:
		for _, item := range v {
			t, ok := item.(map[string]any)
			if !ok {
				return "", false, fmt.Errorf("expected a table of constraints, got %T", item)
			}
			tables = append(tables, t)
		}
	default:
		return entryVersion(value)
	}
	if len(tables) == 0 {
		return "", false, fmt.Errorf("empty constraint list")
	}

	versions := make([]string, 0, len(tables))
	optional := false
	for _, t := range tables {
		version, opt, err := entryVersion(t)
		if err != nil {
			return "", false, err
		}
		versions = append(versions, version)
		optional = optional || opt
	}
	return strings.Join(versions, " || "), optional, nil
}

// stringList converts a decoded TOML array into strings
func stringList(value any) ([]string, error) {
	items, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("expected an array of strings, got %T", value)
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("expected a string, got %T", item)
		}
		out = append(out, s)
	}
	return out, nil
}

// PipfileParser parses Pipfile manifests
type PipfileParser struct{}

// Ecosystem returns models.EcosystemPython
func (p *PipfileParser) Ecosystem() models.Ecosystem { return models.EcosystemPython }

// CanParse returns true for Pipfile
func (p *PipfileParser) CanParse(filename string) bool {
	return filename == "Pipfile"
}

// Parse extracts [packages] and [dev-packages] from Pipfile content.
func (p *PipfileParser) Parse(filepath string, content []byte) ([]models.Dependency, error) {
	doc, md, err := decodeTOML(content)
	if err != nil {
		return nil, parseError(filepath, err, "invalid Pipfile")
	}

	entries := tomlEntries(doc, md, func(section []string) bool {
		if len(section) != 1 {
			return false
		}
		_, ok := classifier.Pipfile.Lookup(section[0])
		return ok
	})

	deps := models.NewDependencySet(NormalizePythonName)
	for _, e := range entries {
		role, _ := classifier.Pipfile.Lookup(e.section[0])
		version, _, err := entryVersion(e.value)
		if err != nil {
			return nil, parseError(filepath, err, "[%s] %s", e.section[0], e.name)
		}
		deps.Put(models.Dependency{
			Name:           e.name,
			VersionSpec:    version,
			Role:           role,
			SourceManifest: filepath,
			Section:        e.section[0],
		})
	}

	return deps.List(), nil
}

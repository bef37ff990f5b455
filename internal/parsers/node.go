package parsers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Art-Jashari/DevHealth/internal/classifier"
	"github.com/Art-Jashari/DevHealth/internal/models"
)

// NodePackageJSONParser parses package.json files (direct dependencies only)
type NodePackageJSONParser struct{}

// Ecosystem returns models.EcosystemNode
func (p *NodePackageJSONParser) Ecosystem() models.Ecosystem { return models.EcosystemNode }

// CanParse returns true for package.json files
func (p *NodePackageJSONParser) CanParse(filename string) bool {
	return filename == "package.json"
}

// Parse extracts dependencies, devDependencies, peerDependencies and
// optionalDependencies from package.json content. Version ranges are kept
// exactly as written.
func (p *NodePackageJSONParser) Parse(filepath string, content []byte) ([]models.Dependency, error) {
	sections, err := objectMembers(stripBOM(content), false)
	if err != nil {
		return nil, parseError(filepath, err, "invalid package.json")
	}

	deps := models.NewDependencySet(nil)
	for _, section := range sections {
		role, ok := classifier.Node.Lookup(section.key)
		if !ok {
			continue
		}
		entries, err := objectMembers(section.value, true)
		if err != nil {
			return nil, parseError(filepath, err, "invalid %q section", section.key)
		}
		for _, e := range entries {
			var version string
			if err := json.Unmarshal(e.value, &version); err != nil {
				return nil, parseError(filepath, err, "%s: version of %q must be a string", section.key, e.key)
			}
			deps.Put(models.Dependency{
				Name:           e.key,
				VersionSpec:    version,
				Role:           role,
				SourceManifest: filepath,
				Section:        section.key,
			})
		}
	}

	return deps.List(), nil
}

// member is one key/value pair of a JSON object, in document order
type member struct {
	key   string
	value json.RawMessage
}

// objectMembers decodes a JSON object without losing key order, which
// map-based decoding would. A JSON null yields no members when allowNull is set.
func objectMembers(data []byte, allowNull bool) ([]member, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if tok == nil && allowNull {
		return nil, nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected JSON object, found %v", tok)
	}

	var members []member
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		members = append(members, member{key: key, value: value})
	}

	// Closing brace, then nothing but whitespace
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = fmt.Errorf("unexpected data after top-level object")
		}
		return nil, err
	}

	return members, nil
}

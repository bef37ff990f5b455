package parsers

import (
	"bytes"
	"path/filepath"

	"github.com/Art-Jashari/DevHealth/internal/errors"
	"github.com/Art-Jashari/DevHealth/internal/models"
)

// Parser is the interface for manifest parsers
type Parser interface {
	// Ecosystem returns the ecosystem whose manifests this parser reads
	Ecosystem() models.Ecosystem

	// CanParse returns true if this parser can handle the given filename
	CanParse(filename string) bool

	// Parse extracts dependencies from the file content, in declaration order
	// with no duplicate names
	Parse(filepath string, content []byte) ([]models.Dependency, error)
}

// GetAllParsers returns all available parsers
func GetAllParsers() []Parser {
	return []Parser{
		&CargoParser{},
		&NodePackageJSONParser{},
		&PythonRequirementsParser{},
		&PythonPyProjectParser{},
		&PipfileParser{},
		&GoModParser{},
	}
}

// ForFile returns the parser for the manifest at path
func ForFile(path string) (Parser, error) {
	name := filepath.Base(path)
	for _, p := range GetAllParsers() {
		if p.CanParse(name) {
			return p, nil
		}
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "no parser for %s", name).At(path)
}

// NameKey returns the function used to compare dependency names of eco.
// Python names are case-insensitive and treat '-', '_' and '.' alike.
func NameKey(eco models.Ecosystem) func(string) string {
	if eco == models.EcosystemPython {
		return NormalizePythonName
	}
	return nil
}

func parseError(path string, cause error, format string, args ...any) error {
	return errors.Wrap(errors.ErrCodeParse, cause, format, args...).At(path)
}

// utf8BOM is the byte-order mark some Windows editors prepend to text files
var utf8BOM = []byte("\xef\xbb\xbf")

// stripBOM drops a leading UTF-8 byte-order mark
func stripBOM(content []byte) []byte {
	return bytes.TrimPrefix(content, utf8BOM)
}

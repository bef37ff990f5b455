// Package classifier maps manifest sections to dependency roles.
//
// Each ecosystem declares roles differently. Cargo and Pipfile use table
// names, package.json uses top-level keys, and go.mod uses an "// indirect"
// marker. The mapping lives here as plain tables so role assignment can be
// tested apart from text parsing.
package classifier

import (
	"strings"

	"github.com/Art-Jashari/DevHealth/internal/models"
)

// Row maps one manifest section to the role its entries receive.
type Row struct {
	Section string
	Role    models.Role
}

// Table is an ordered section → role mapping for one manifest format.
// Parsers visit sections in table order when the format has no inherent order.
type Table []Row

// Lookup returns the role for section.
func (t Table) Lookup(section string) (models.Role, bool) {
	for _, row := range t {
		if row.Section == section {
			return row.Role, true
		}
	}
	return 0, false
}

var (
	// Cargo covers Cargo.toml, including [target.<cfg>.*] variants.
	Cargo = Table{
		{"dependencies", models.RoleProduction},
		{"dev-dependencies", models.RoleDevelopment},
		{"build-dependencies", models.RoleBuild},
	}

	// Node covers package.json. Peer dependencies fold into Development;
	// the raw section name is kept on each Dependency.
	Node = Table{
		{"dependencies", models.RoleProduction},
		{"devDependencies", models.RoleDevelopment},
		{"peerDependencies", models.RoleDevelopment},
		{"optionalDependencies", models.RoleOptional},
	}

	// PyProject covers PEP 621 [project] tables.
	PyProject = Table{
		{"dependencies", models.RoleProduction},
		{"optional-dependencies", models.RoleOptional},
	}

	// Poetry covers [tool.poetry] tables. Group tables are resolved by PoetryGroup.
	Poetry = Table{
		{"dependencies", models.RoleProduction},
		{"dev-dependencies", models.RoleDevelopment},
	}

	// Pipfile covers Pipfile package tables.
	Pipfile = Table{
		{"packages", models.RoleProduction},
		{"dev-packages", models.RoleDevelopment},
	}
)

// Flags carries per-entry markers that can override the section role.
type Flags struct {
	Optional bool // "optional = true" on a Cargo or Poetry entry
	Indirect bool // "// indirect" on a go.mod require line
}

// Classify applies override rules to a section-implied role.
// Optional takes precedence over every section role; Indirect over Production.
func Classify(section models.Role, f Flags) models.Role {
	switch {
	case f.Optional:
		return models.RoleOptional
	case f.Indirect:
		return models.RoleIndirect
	}
	return section
}

// GoRole returns the role of a go.mod require entry. Go has no separate
// development dependencies.
func GoRole(indirect bool) models.Role {
	return Classify(models.RoleProduction, Flags{Indirect: indirect})
}

// PoetryGroup returns the role of a [tool.poetry.group.<name>.dependencies] table.
// Every named group is treated as development-only, which is how Poetry's
// own "dev" and "test" conventions use them.
func PoetryGroup(string) models.Role {
	return models.RoleDevelopment
}

// CargoSection resolves a Cargo table key path such as
// ["dev-dependencies"] or ["target", "cfg(unix)", "dependencies"] to the
// section name recorded on the dependency and its role.
func CargoSection(path []string) (string, models.Role, bool) {
	switch {
	case len(path) == 1:
		role, ok := Cargo.Lookup(path[0])
		return path[0], role, ok
	case len(path) == 3 && path[0] == "target":
		role, ok := Cargo.Lookup(path[2])
		return strings.Join(path, "."), role, ok
	}
	return "", 0, false
}

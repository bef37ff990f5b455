package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Art-Jashari/DevHealth/internal/models"
)

func TestTableLookup(t *testing.T) {
	tests := []struct {
		name    string
		table   Table
		section string
		want    models.Role
		found   bool
	}{
		{"cargo prod", Cargo, "dependencies", models.RoleProduction, true},
		{"cargo dev", Cargo, "dev-dependencies", models.RoleDevelopment, true},
		{"cargo build", Cargo, "build-dependencies", models.RoleBuild, true},
		{"cargo unknown", Cargo, "features", 0, false},
		{"node prod", Node, "dependencies", models.RoleProduction, true},
		{"node dev", Node, "devDependencies", models.RoleDevelopment, true},
		{"node peer folds to dev", Node, "peerDependencies", models.RoleDevelopment, true},
		{"node optional", Node, "optionalDependencies", models.RoleOptional, true},
		{"node is case sensitive", Node, "DevDependencies", 0, false},
		{"pipfile prod", Pipfile, "packages", models.RoleProduction, true},
		{"pipfile dev", Pipfile, "dev-packages", models.RoleDevelopment, true},
		{"pyproject optional", PyProject, "optional-dependencies", models.RoleOptional, true},
		{"poetry dev", Poetry, "dev-dependencies", models.RoleDevelopment, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.table.Lookup(tt.section)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyOptionalPrecedence(t *testing.T) {
	for _, role := range []models.Role{models.RoleProduction, models.RoleDevelopment, models.RoleBuild} {
		t.Run(role.String(), func(t *testing.T) {
			assert.Equal(t, models.RoleOptional, Classify(role, Flags{Optional: true}))
			assert.Equal(t, role, Classify(role, Flags{}))
		})
	}
	assert.Equal(t, models.RoleOptional, Classify(models.RoleProduction, Flags{Optional: true, Indirect: true}))
}

func TestGoRole(t *testing.T) {
	assert.Equal(t, models.RoleIndirect, GoRole(true))
	assert.Equal(t, models.RoleProduction, GoRole(false))
}

func TestPoetryGroup(t *testing.T) {
	assert.Equal(t, models.RoleDevelopment, PoetryGroup("test"))
}

func TestCargoSection(t *testing.T) {
	tests := []struct {
		path    []string
		section string
		role    models.Role
		ok      bool
	}{
		{[]string{"dependencies"}, "dependencies", models.RoleProduction, true},
		{[]string{"build-dependencies"}, "build-dependencies", models.RoleBuild, true},
		{[]string{"target", "cfg(unix)", "dev-dependencies"}, "target.cfg(unix).dev-dependencies", models.RoleDevelopment, true},
		{[]string{"package"}, "package", 0, false},
		{[]string{"target", "cfg(unix)"}, "", 0, false},
		{[]string{"workspace", "dependencies"}, "", 0, false},
	}

	for _, tt := range tests {
		section, role, ok := CargoSection(tt.path)
		assert.Equal(t, tt.ok, ok, "path %v", tt.path)
		if tt.ok {
			assert.Equal(t, tt.section, section)
			assert.Equal(t, tt.role, role)
		}
	}
}

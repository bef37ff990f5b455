package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Art-Jashari/DevHealth/internal/errors"
	"github.com/Art-Jashari/DevHealth/internal/models"
)

func TestGoModParser_CanParse(t *testing.T) {
	parser := &GoModParser{}

	tests := []struct {
		filename string
		want     bool
	}{
		{"go.mod", true},
		{"Go.mod", false},
		{"go.sum", false},
		{"package.json", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, parser.CanParse(tt.filename))
		})
	}
}

func TestGoModParser_Parse(t *testing.T) {
	content := `module github.com/example/myapp

go 1.21

require (
	github.com/gin-gonic/gin v1.9.0
	github.com/spf13/cobra v1.7.0
	golang.org/x/sync v0.3.0 // indirect
)

require github.com/stretchr/testify v1.8.0
`

	deps, err := (&GoModParser{}).Parse("go.mod", []byte(content))
	require.NoError(t, err)

	assert.Equal(t, []models.Dependency{
		{Name: "github.com/gin-gonic/gin", VersionSpec: "v1.9.0", Role: models.RoleProduction, SourceManifest: "go.mod", Section: "require"},
		{Name: "github.com/spf13/cobra", VersionSpec: "v1.7.0", Role: models.RoleProduction, SourceManifest: "go.mod", Section: "require"},
		{Name: "golang.org/x/sync", VersionSpec: "v0.3.0", Role: models.RoleIndirect, SourceManifest: "go.mod", Section: "require"},
		{Name: "github.com/stretchr/testify", VersionSpec: "v1.8.0", Role: models.RoleProduction, SourceManifest: "go.mod", Section: "require"},
	}, deps)
}

func TestGoModParser_BlockAndSingleLineEquivalent(t *testing.T) {
	block := `module example.com/app

go 1.22

require (
	github.com/BurntSushi/toml v1.5.0
	golang.org/x/mod v0.31.0 // indirect
	github.com/spf13/cobra v1.10.2
)
`
	single := `module example.com/app

go 1.22

require github.com/BurntSushi/toml v1.5.0
require golang.org/x/mod v0.31.0 // indirect

require github.com/spf13/cobra v1.10.2
`
	parser := &GoModParser{}

	fromBlock, err := parser.Parse("go.mod", []byte(block))
	require.NoError(t, err)
	fromSingle, err := parser.Parse("go.mod", []byte(single))
	require.NoError(t, err)

	assert.Len(t, fromBlock, 3)
	assert.Equal(t, fromBlock, fromSingle)
}

func TestGoModParser_IndirectScenario(t *testing.T) {
	content := `module example.com/app

go 1.22

require golang.org/x/text v0.14.0 // indirect

require (
	github.com/google/uuid v1.6.0
)
`
	deps, err := (&GoModParser{}).Parse("go.mod", []byte(content))
	require.NoError(t, err)
	require.Len(t, deps, 2)

	assert.Equal(t, "golang.org/x/text", deps[0].Name)
	assert.Equal(t, models.RoleIndirect, deps[0].Role)
	assert.Equal(t, "github.com/google/uuid", deps[1].Name)
	assert.Equal(t, models.RoleProduction, deps[1].Role)
}

func TestGoModParser_DuplicateLastWins(t *testing.T) {
	content := `module example.com/app

require (
	github.com/google/uuid v1.5.0
	github.com/spf13/cobra v1.10.2
)

require github.com/google/uuid v1.6.0 // indirect
`
	deps, err := (&GoModParser{}).Parse("go.mod", []byte(content))
	require.NoError(t, err)
	require.Len(t, deps, 2)

	assert.Equal(t, "github.com/google/uuid", deps[0].Name)
	assert.Equal(t, "v1.6.0", deps[0].VersionSpec)
	assert.Equal(t, models.RoleIndirect, deps[0].Role)
}

func TestGoModParser_NoRequires(t *testing.T) {
	deps, err := (&GoModParser{}).Parse("go.mod", []byte("module example.com/empty\n\ngo 1.22\n"))
	require.NoError(t, err)
	assert.Empty(t, deps)
}

func TestGoModParser_ByteOrderMark(t *testing.T) {
	content := "\xef\xbb\xbfmodule example.com/app\n\nrequire github.com/spf13/cobra v1.8.0\n"
	deps, err := (&GoModParser{}).Parse("go.mod", []byte(content))
	require.NoError(t, err)
	require.Len(t, deps, 1)
	assert.Equal(t, "github.com/spf13/cobra", deps[0].Name)
}

func TestGoModParser_Malformed(t *testing.T) {
	_, err := (&GoModParser{}).Parse("/src/app/go.mod", []byte("module example.com/app\nrequire (\n\tgithub.com/x/y\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeParse))
	assert.Equal(t, "/src/app/go.mod", errors.PathOf(err, ""))
}

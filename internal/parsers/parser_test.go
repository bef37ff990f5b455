package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Art-Jashari/DevHealth/internal/errors"
	"github.com/Art-Jashari/DevHealth/internal/models"
)

func TestGetAllParsers(t *testing.T) {
	parsers := GetAllParsers()
	require.Len(t, parsers, 6)

	seen := make(map[models.Ecosystem]int)
	for _, p := range parsers {
		seen[p.Ecosystem()]++
	}
	assert.Equal(t, map[models.Ecosystem]int{
		models.EcosystemCargo:  1,
		models.EcosystemNode:   1,
		models.EcosystemPython: 3,
		models.EcosystemGo:     1,
	}, seen)
}

func TestForFile(t *testing.T) {
	tests := []struct {
		path string
		want Parser
	}{
		{"/repo/Cargo.toml", &CargoParser{}},
		{"/repo/web/package.json", &NodePackageJSONParser{}},
		{"requirements.txt", &PythonRequirementsParser{}},
		{"/repo/api/pyproject.toml", &PythonPyProjectParser{}},
		{"/repo/api/Pipfile", &PipfileParser{}},
		{"/repo/go.mod", &GoModParser{}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			p, err := ForFile(tt.path)
			require.NoError(t, err)
			assert.IsType(t, tt.want, p)
		})
	}
}

func TestForFile_Unsupported(t *testing.T) {
	_, err := ForFile("/repo/Gemfile")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeUnsupported))
	assert.Equal(t, "/repo/Gemfile", errors.PathOf(err, ""))
}

func TestNameKey(t *testing.T) {
	assert.Nil(t, NameKey(models.EcosystemNode))
	assert.Nil(t, NameKey(models.EcosystemGo))

	key := NameKey(models.EcosystemPython)
	require.NotNil(t, key)
	assert.Equal(t, key("Foo_Bar"), key("foo.bar"))
}

func TestStripBOM(t *testing.T) {
	assert.Equal(t, []byte("x = 1"), stripBOM([]byte("\xef\xbb\xbfx = 1")))
	assert.Equal(t, []byte("x = 1"), stripBOM([]byte("x = 1")))
	assert.Empty(t, stripBOM(nil))
}

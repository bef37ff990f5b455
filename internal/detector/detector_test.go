package detector

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Art-Jashari/DevHealth/internal/models"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte{}, 0o644))
	}
}

func TestDetect_SingleEcosystem(t *testing.T) {
	tests := []struct {
		filename string
		want     models.Ecosystem
	}{
		{"Cargo.toml", models.EcosystemCargo},
		{"package.json", models.EcosystemNode},
		{"requirements.txt", models.EcosystemPython},
		{"pyproject.toml", models.EcosystemPython},
		{"Pipfile", models.EcosystemPython},
		{"go.mod", models.EcosystemGo},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			dir := t.TempDir()
			touch(t, dir, tt.filename)

			got := Detect(dir)
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0].Ecosystem)
			assert.Equal(t, []string{filepath.Join(dir, tt.filename)}, got[0].Manifests)
		})
	}
}

func TestDetect_MultipleEcosystemsCanonicalOrder(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "go.mod", "Pipfile", "package.json", "requirements.txt", "Cargo.toml", "README.md")

	got := Detect(dir)
	assert.Equal(t, []models.Ecosystem{
		models.EcosystemCargo,
		models.EcosystemNode,
		models.EcosystemPython,
		models.EcosystemGo,
	}, Ecosystems(got))

	assert.Equal(t, []string{
		filepath.Join(dir, "requirements.txt"),
		filepath.Join(dir, "Pipfile"),
	}, got[2].Manifests)
}

func TestDetect_NotAProject(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "README.md", "Cargo.lock", "package-lock.json")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	touch(t, filepath.Join(dir, "sub"), "go.mod")

	assert.Empty(t, Detect(dir))
}

func TestDetect_DirectoryNamedLikeManifest(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "package.json"), 0o755))

	assert.Empty(t, Detect(dir))
}

func TestDetect_MissingDirectory(t *testing.T) {
	assert.Empty(t, Detect(filepath.Join(t.TempDir(), "missing")))
}

package core

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProjectConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), ProjectConfigFile)
	writeFile(t, path, `
build = "make release"
sources = ["Source"]
pdb = true
artifact-regex = '^built: (.+)$'
`)

	cfg, err := LoadProjectConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "make release", cfg.Build)
	assert.Equal(t, []string{"Source"}, cfg.Sources)
	require.NotNil(t, cfg.PDB)
	assert.True(t, *cfg.PDB)
	assert.Equal(t, `^built: (.+)$`, cfg.ArtifactRegex)
	// Unset fields stay zero so flag defaults apply
	assert.Nil(t, cfg.Assets)
	assert.Empty(t, cfg.Output)
}

func TestLoadProjectConfigMissingFile(t *testing.T) {
	cfg, err := LoadProjectConfig(filepath.Join(t.TempDir(), ProjectConfigFile))
	require.NoError(t, err)
	assert.Equal(t, ProjectConfig{}, cfg)
}

func TestLoadProjectConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), ProjectConfigFile)
	writeFile(t, path, `build = [unterminated`)

	_, err := LoadProjectConfig(path)
	require.Error(t, err)
}

package core

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// ProjectConfigFile is the per-project configuration file name
const ProjectConfigFile = "packmod.toml"

// ProjectConfig stores per-project packing defaults, usually in packmod.toml.
// Every field is optional; explicit flags take precedence over all of them.
type ProjectConfig struct {
	Assets  []string `toml:"assets"`
	Build   string   `toml:"build"`
	Include []string `toml:"include"`
	Output  string   `toml:"output"`
	PDB     *bool    `toml:"pdb"`
	Sources []string `toml:"sources"`
	// ArtifactRegex overrides the dotnet " -> " artifact detection rule;
	// capture group 1 is the artifact path
	ArtifactRegex string `toml:"artifact-regex"`
}

// LoadProjectConfig loads the project config to a ProjectConfig struct.
// A missing file yields the zero config.
func LoadProjectConfig(path string) (ProjectConfig, error) {
	var cfg ProjectConfig
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return ProjectConfig{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

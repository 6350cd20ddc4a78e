package core

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"github.com/mitchellh/mapstructure"
)

// ModMetaFile is the name of the mod metadata file searched for in the
// collected files when deriving the default output path.
const ModMetaFile = "mod.json"

// Mod stores the mod metadata, usually in mod.json
type Mod struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
}

// LoadMod attempts to load a metadata file into a Mod struct. Decoding goes
// through mapstructure so key casing in the file doesn't matter ("Name" and
// "name" are both accepted).
func LoadMod(path string) (Mod, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Mod{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Mod{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	var mod Mod
	if err := mapstructure.Decode(raw, &mod); err != nil {
		return Mod{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(mod.Name) == 0 || len(mod.Version) == 0 {
		return Mod{}, fmt.Errorf("%s does not specify a name and version", path)
	}
	return mod, nil
}

// SemverValid reports whether the mod version parses as semantic versioning
func (m Mod) SemverValid() bool {
	_, err := semver.NewVersion(m.Version)
	return err == nil
}

// ArchiveName returns the file name of the packed archive for this mod
func (m Mod) ArchiveName() string {
	return m.Name + "-" + m.Version + ".zip"
}

// DefaultArchivePath returns the derived output path for this mod
func (m Mod) DefaultArchivePath() string {
	return DefaultArchivePath(m.ArchiveName())
}

// DefaultArchivePath places an archive of the given name in bin/Mod
func DefaultArchivePath(name string) string {
	return filepath.Join("bin", "Mod", name)
}

// FindMetadata returns the sources of collected entries whose base name
// matches name and which still exist on disk.
func FindMetadata(entries []FileEntry, name string) []string {
	var found []string
	for _, e := range entries {
		if filepath.Base(e.Source) != name {
			continue
		}
		if _, err := os.Stat(e.Source); err == nil {
			found = append(found, e.Source)
		}
	}
	return found
}

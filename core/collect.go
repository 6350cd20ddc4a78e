package core

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// IgnoreFile holds gitignore-style patterns excluded from every package
const IgnoreFile = ".packignore"

// FileEntry is a file to be packed: where it is on disk, and the
// slash-separated path it gets inside the archive.
type FileEntry struct {
	Source string
	Target string
}

// LoadIgnore compiles the ignore patterns at path. A missing file means no
// exclusions and is not an error.
func LoadIgnore(path string) (*ignore.GitIgnore, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	ign, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return ign, nil
}

// Collector gathers the files to pack, keeping archive paths relative to the
// project root and filtering as it goes. Entries keep insertion order; a
// target seen twice is only stored once.
type Collector struct {
	root       string
	includePDB bool
	ignore     *ignore.GitIgnore
	seen       map[string]bool
	entries    []FileEntry
}

// NewCollector returns a collector rooted at the project directory
func NewCollector(root string, includePDB bool, ign *ignore.GitIgnore) *Collector {
	return &Collector{
		root:       root,
		includePDB: includePDB,
		ignore:     ign,
		seen:       make(map[string]bool),
	}
}

// AddTree collects every regular file under path, which is relative to the
// project root and may itself be a file. Missing paths are skipped silently:
// the default source and include lists cover several project layouts at once,
// and most projects only have some of them.
func (c *Collector) AddTree(path string) error {
	full := filepath.Join(c.root, path)
	info, err := os.Lstat(full)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", full, err)
	}

	if !info.IsDir() {
		if info.Mode().IsRegular() {
			c.add(full, path)
		}
		return nil
	}

	return filepath.WalkDir(full, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", p, err)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(c.root, p)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", p, err)
		}
		c.add(p, rel)
		return nil
	})
}

// AddFile collects a single file under an explicit archive path, used for
// build artifacts discovered outside the configured directories.
func (c *Collector) AddFile(source string, target string) {
	c.add(source, target)
}

func (c *Collector) add(source string, target string) {
	if !c.includePDB && strings.EqualFold(filepath.Ext(target), ".pdb") {
		return
	}
	target = filepath.ToSlash(target)
	if c.ignore != nil && c.ignore.MatchesPath(target) {
		return
	}
	if c.seen[target] {
		return
	}
	c.seen[target] = true
	c.entries = append(c.entries, FileEntry{Source: source, Target: target})
}

// Entries returns the collected files in the order they were added
func (c *Collector) Entries() []FileEntry {
	return c.entries
}

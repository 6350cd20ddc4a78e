package core

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/dlclark/regexp2"
	"mvdan.cc/sh/v3/shell"
)

// buildArrow separates the project name from the artifact path in dotnet
// build output, e.g. "MyMod -> /path/to/bin/Debug/MyMod.dll"
const buildArrow = " -> "

// RunBuild executes the build command, streaming its stdout to out, and
// returns the artifacts discovered in the output. Artifact lines are matched
// with artifactRegex (capture group 1 is the path) when given, or the dotnet
// " -> " rule otherwise; matched paths that don't exist on disk are dropped.
// When includePDB is set, each artifact's .pdb sibling is returned too.
// A non-zero exit status is an error and no artifacts are returned.
func RunBuild(command string, artifactRegex string, includePDB bool, out io.Writer) ([]FileEntry, error) {
	fields, err := shell.Fields(command, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid build command %q: %w", command, err)
	}
	if len(fields) == 0 {
		return nil, errors.New("build command is empty")
	}

	matcher := defaultArtifactPath
	if len(artifactRegex) > 0 {
		expr, err := regexp2.Compile(artifactRegex, 0)
		if err != nil {
			return nil, fmt.Errorf("invalid artifact-regex %q: %w", artifactRegex, err)
		}
		matcher = func(line string) string {
			m, _ := expr.FindStringMatch(line)
			if m == nil {
				return ""
			}
			if g := m.GroupByNumber(1); g != nil && len(g.Captures) > 0 {
				return strings.TrimSpace(g.String())
			}
			return strings.TrimSpace(m.String())
		}
	}

	fmt.Fprintf(out, "Compiling with: %s\n\n", command)

	proc := exec.Command(fields[0], fields[1:]...)
	proc.Stderr = os.Stderr
	stdout, err := proc.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := proc.Start(); err != nil {
		return nil, fmt.Errorf("failed to execute build command %q: %w", command, err)
	}

	var artifacts []FileEntry
	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		line := scanner.Text()
		fmt.Fprintln(out, line)

		path := matcher(line)
		if len(path) == 0 {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			artifacts = append(artifacts, FileEntry{Source: path, Target: filepath.Base(path)})
		}
	}
	scanErr := scanner.Err()

	if err := proc.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("build command %q failed with exit code %d", command, exitErr.ExitCode())
		}
		return nil, fmt.Errorf("build command %q failed: %w", command, err)
	}
	if scanErr != nil {
		return nil, fmt.Errorf("failed to read build output: %w", scanErr)
	}

	if includePDB {
		var pdbs []FileEntry
		for _, a := range artifacts {
			pdb := strings.TrimSuffix(a.Source, filepath.Ext(a.Source)) + ".pdb"
			if _, err := os.Stat(pdb); err == nil {
				pdbs = append(pdbs, FileEntry{Source: pdb, Target: filepath.Base(pdb)})
			}
		}
		artifacts = append(artifacts, pdbs...)
	}

	fmt.Fprintln(out)
	return artifacts, nil
}

func defaultArtifactPath(line string) string {
	if !strings.Contains(line, buildArrow) {
		return ""
	}
	parts := strings.Split(line, buildArrow)
	return strings.TrimSpace(parts[len(parts)-1])
}

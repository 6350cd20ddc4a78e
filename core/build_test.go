package core

import (
	"bytes"
	"fmt"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("test build commands use sh")
	}
}

func TestDefaultArtifactPath(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected string
	}{
		{
			name:     "dotnet artifact line",
			line:     "  MyMod -> /home/user/proj/bin/Debug/net6.0/MyMod.dll",
			expected: "/home/user/proj/bin/Debug/net6.0/MyMod.dll",
		},
		{
			name:     "takes the last arrow",
			line:     "a -> b -> /tmp/out.dll",
			expected: "/tmp/out.dll",
		},
		{
			name:     "plain output line",
			line:     "Restored /home/user/proj/MyMod.csproj",
			expected: "",
		},
		{
			name:     "empty line",
			line:     "",
			expected: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, defaultArtifactPath(tt.line))
		})
	}
}

func TestRunBuildStreamsOutput(t *testing.T) {
	requireShell(t)

	var out bytes.Buffer
	artifacts, err := RunBuild(`sh -c 'echo hello; echo world'`, "", false, &out)
	require.NoError(t, err)
	assert.Empty(t, artifacts)
	assert.Contains(t, out.String(), "hello\nworld\n")
}

func TestRunBuildDiscoversArtifacts(t *testing.T) {
	requireShell(t)

	root := t.TempDir()
	dll := filepath.Join(root, "MyMod.dll")
	writeFile(t, dll, "dll")
	writeFile(t, filepath.Join(root, "MyMod.pdb"), "pdb")

	var out bytes.Buffer
	artifacts, err := RunBuild(fmt.Sprintf(`sh -c 'echo "MyMod -> %s"'`, dll), "", false, &out)
	require.NoError(t, err)
	assert.Equal(t, []FileEntry{{Source: dll, Target: "MyMod.dll"}}, artifacts)
}

func TestRunBuildIncludesPDBSiblings(t *testing.T) {
	requireShell(t)

	root := t.TempDir()
	dll := filepath.Join(root, "MyMod.dll")
	pdb := filepath.Join(root, "MyMod.pdb")
	writeFile(t, dll, "dll")
	writeFile(t, pdb, "pdb")

	var out bytes.Buffer
	artifacts, err := RunBuild(fmt.Sprintf(`sh -c 'echo "MyMod -> %s"'`, dll), "", true, &out)
	require.NoError(t, err)
	assert.Equal(t, []FileEntry{
		{Source: dll, Target: "MyMod.dll"},
		{Source: pdb, Target: "MyMod.pdb"},
	}, artifacts)
}

func TestRunBuildIgnoresMissingArtifacts(t *testing.T) {
	requireShell(t)

	var out bytes.Buffer
	artifacts, err := RunBuild(`sh -c 'echo "MyMod -> /nonexistent/MyMod.dll"'`, "", false, &out)
	require.NoError(t, err)
	assert.Empty(t, artifacts)
}

func TestRunBuildArtifactRegex(t *testing.T) {
	requireShell(t)

	root := t.TempDir()
	dll := filepath.Join(root, "MyMod.dll")
	writeFile(t, dll, "dll")

	var out bytes.Buffer
	artifacts, err := RunBuild(fmt.Sprintf(`sh -c 'echo "built: %s"'`, dll), `^built: (.+)$`, false, &out)
	require.NoError(t, err)
	assert.Equal(t, []FileEntry{{Source: dll, Target: "MyMod.dll"}}, artifacts)
}

func TestRunBuildInvalidArtifactRegex(t *testing.T) {
	var out bytes.Buffer
	_, err := RunBuild("true", `(unclosed`, false, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "artifact-regex")
}

func TestRunBuildNonZeroExit(t *testing.T) {
	requireShell(t)

	var out bytes.Buffer
	_, err := RunBuild(`sh -c 'exit 3'`, "", false, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exit code 3")
}

func TestRunBuildEmptyCommand(t *testing.T) {
	var out bytes.Buffer
	_, err := RunBuild("", "", false, &out)
	require.Error(t, err)
}

func TestRunBuildCommandNotFound(t *testing.T) {
	var out bytes.Buffer
	_, err := RunBuild("definitely-not-a-real-command-xyz", "", false, &out)
	require.Error(t, err)
}

func TestRunBuildQuotedFields(t *testing.T) {
	requireShell(t)

	var out bytes.Buffer
	_, err := RunBuild(`echo "two words" end`, "", false, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "two words end")
}

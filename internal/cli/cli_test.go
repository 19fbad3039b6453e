package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := Execute(context.Background(), args, &out, &errOut)
	return out.String(), errOut.String(), err
}

func requireExitCode(t *testing.T, err error, code int) {
	t.Helper()
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr), "expected *ExitError, got %T: %v", err, err)
	assert.Equal(t, code, exitErr.Code)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestExecute_HelpWithoutCommand(t *testing.T) {
	out, _, err := execute(t)
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "complete")
}

func TestExecute_Version(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "jsbridge dev\n", out)
}

func TestExecute_UsageErrors(t *testing.T) {
	testCases := map[string][]string{
		"unknown flag":      {"--this-is-not-a-valid-flag"},
		"unknown command":   {"frobnicate"},
		"missing pattern":   {"complete"},
		"invalid log level": {"complete", "--log-level", "loud", "x"},
		"missing out flag":  {"typings"},
	}
	for name, args := range testCases {
		t.Run(name, func(t *testing.T) {
			_, _, err := execute(t, args...)
			requireExitCode(t, err, 2)
		})
	}
}

func TestExecute_Declare(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "player.hcl", `
script "Player" {
  signal "died" {}
}
`)

	out, _, err := execute(t, "declare", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "script: Player")
	assert.Contains(t, out, "method: signal")
	assert.Contains(t, out, "name: died")
}

func TestExecute_DeclareStrict(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "enemy.hcl", `
script "Enemy" {
  signal "hit" {}
  signal "hit" {}
}
`)

	_, _, err := execute(t, "declare", dir)
	require.NoError(t, err)

	_, _, err = execute(t, "declare", "--strict", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate member declaration")
}

func TestExecute_CompleteWithScopeFile(t *testing.T) {
	scope := writeFile(t, t.TempDir(), "scope.hcl", `
player = {
  position = 1
  pose     = 2
}
`)

	out, _, err := execute(t, "complete", "--scope", scope, "player.pos")
	require.NoError(t, err)
	assert.Equal(t, "player.position\n", out)
}

func TestExecute_ConfigFileAndFlagOverride(t *testing.T) {
	dir := t.TempDir()
	fileScope := writeFile(t, dir, "file_scope.hcl", `from_file = 1`)
	flagScope := writeFile(t, dir, "flag_scope.hcl", `from_flag = 1`)
	config := writeFile(t, dir, "jsbridge.yaml", "log_level: warn\nscope: "+fileScope+"\n")

	out, _, err := execute(t, "complete", "--config", config, "from")
	require.NoError(t, err)
	assert.Equal(t, "from_file\n", out)

	out, _, err = execute(t, "complete", "--config", config, "--scope", flagScope, "from")
	require.NoError(t, err)
	assert.Equal(t, "from_flag\n", out)
}

func TestExecute_BadConfigFile(t *testing.T) {
	dir := t.TempDir()
	ini := writeFile(t, dir, "jsbridge.ini", "a=b")

	_, _, err := execute(t, "complete", "--config", ini, "x")
	requireExitCode(t, err, 2)

	_, _, err = execute(t, "complete", "--config", filepath.Join(dir, "missing.toml"), "x")
	requireExitCode(t, err, 2)
}

func TestExecute_CompleteWithoutScope(t *testing.T) {
	_, _, err := execute(t, "complete", "x")
	require.Error(t, err)
	var exitErr *ExitError
	assert.False(t, errors.As(err, &exitErr), "a missing scope is not a usage error")
}

func TestExecute_Classes(t *testing.T) {
	snap := writeFile(t, t.TempDir(), "api.yaml", `
build:
  version_major: 4
  version_minor: 3
classes:
  - name: Node
singletons:
  - name: Engine
    class_name: Engine
`)

	out, _, err := execute(t, "classes", "--snapshot", snap)
	require.NoError(t, err)
	assert.Equal(t, "version 4.3.0\nclass Node\nsingleton Engine: Engine\n", out)
}

func TestExecute_Typings(t *testing.T) {
	dir := t.TempDir()
	snap := writeFile(t, dir, "api.yaml", "classes:\n  - name: Node\n")
	target := filepath.Join(dir, "godot_gen.go")

	_, _, err := execute(t, "typings", "--snapshot", snap, "--out", target, "--package", "engine")
	require.NoError(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "package engine")
	assert.Contains(t, string(data), `ClassNode = "Node"`)
}

func TestExecute_BridgeNeedsURL(t *testing.T) {
	scope := writeFile(t, t.TempDir(), "scope.hcl", `a = 1`)
	_, _, err := execute(t, "bridge", "--scope", scope)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bridge URL must not be empty")
}

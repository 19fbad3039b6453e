package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/jsbridge/internal/decl"
	"github.com/vk/jsbridge/internal/recorder"
	"gopkg.in/yaml.v3"
)

const playerManifest = `
script "Player" {
  tool = true
  icon = "res://player.svg"

  signal "died" {}

  export "speed" {
    type = "float"
    hint = 1
  }

  onready "sprite" {
    expr = "$Sprite2D"
  }
}
`

const enemyManifest = `
script "Enemy" {
  export "speed" {
    type = "int"
  }
  signal "speed" {}
}
`

const snapshotYAML = `
build:
  version_major: 4
  version_minor: 2
  version_patch: 1
classes:
  - name: Object
  - name: Node
    super: Object
    methods:
      - name: get_name
singletons:
  - name: Input
    class_name: Input
global_constants:
  - name: Side
    values:
      SIDE_LEFT: 0
      SIDE_TOP: 1
docs:
  Node:
    brief_description: Base class for all scene objects.
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDeclare_CommitsAndRegistersModules(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "player.hcl", playerManifest)

	a, _, _ := SetupAppTest(t, Config{ManifestPaths: []string{dir}})
	rec, err := a.Declare(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Player"}, rec.ModuleIDs())
	assert.Equal(t, []string{"Player"}, rec.Scripts())

	module, ok := rec.FindModule("Player")
	require.True(t, ok)
	members := module.(map[string]any)
	assert.Len(t, members, 3)
	assert.Equal(t, decl.KindProperty, members["speed"].(decl.Declaration).Kind)
}

func TestDeclare_DuplicatePolicy(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "enemy.hcl", enemyManifest)

	lenient, _, _ := SetupAppTest(t, Config{ManifestPaths: []string{dir}})
	_, err := lenient.Declare(context.Background())
	require.NoError(t, err)

	strict, _, logs := SetupAppTest(t, Config{ManifestPaths: []string{dir}, StrictDuplicates: true})
	_, err = strict.Declare(context.Background())
	require.ErrorIs(t, err, recorder.ErrDuplicate)
	assert.Contains(t, logs.String(), "Host rejected declaration.")
}

func TestDeclare_NoPaths(t *testing.T) {
	a, _, _ := SetupAppTest(t, Config{})
	_, err := a.Declare(context.Background())
	assert.ErrorContains(t, err, "no manifest paths")
}

func TestPrintDeclarations(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "player.hcl", playerManifest)

	a, out, _ := SetupAppTest(t, Config{})
	require.NoError(t, a.PrintDeclarations(context.Background(), dir))

	var doc []struct {
		Script string `yaml:"script"`
		Tool   bool   `yaml:"tool"`
		Icon   string `yaml:"icon"`
		Calls  []struct {
			Method   string `yaml:"method"`
			Name     string `yaml:"name"`
			Property struct {
				Type string `yaml:"type"`
				Hint int    `yaml:"hint"`
			} `yaml:"property"`
			Ready struct {
				Evaluator struct {
					Expr string `yaml:"expr"`
				} `yaml:"evaluator"`
			} `yaml:"ready"`
		} `yaml:"calls"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out.String()), &doc), out.String())
	require.Len(t, doc, 1)

	player := doc[0]
	assert.Equal(t, "Player", player.Script)
	assert.True(t, player.Tool)
	assert.Equal(t, "res://player.svg", player.Icon)

	var methods []string
	for _, c := range player.Calls {
		methods = append(methods, c.Method+":"+c.Name)
	}
	assert.Equal(t, []string{"tool:", "icon:", "signal:died", "property:speed", "ready:sprite"}, methods)
	assert.Equal(t, "float", player.Calls[3].Property.Type)
	assert.Equal(t, 1, player.Calls[3].Property.Hint)
	assert.Equal(t, "$Sprite2D", player.Calls[4].Ready.Evaluator.Expr)
}

func TestComplete_FromScopeFile(t *testing.T) {
	scope := writeFile(t, t.TempDir(), "scope.hcl", `
player = {
  position = 1
  pose     = 2
  health   = 3
}
level = "one"
`)

	a, out, _ := SetupAppTest(t, Config{ScopePath: scope})
	require.NoError(t, a.PrintCompletions(context.Background(), "player.po"))
	assert.Equal(t, []string{"player.pose", "player.position"}, strings.Fields(out.String()))

	items, err := a.Complete(context.Background(), "ghost.")
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestComplete_FromDeclaredScripts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "player.hcl", playerManifest)

	a, _, _ := SetupAppTest(t, Config{ManifestPaths: []string{dir}})

	items, err := a.Complete(context.Background(), "Pl")
	require.NoError(t, err)
	assert.Equal(t, []string{"Player"}, items)

	items, err = a.Complete(context.Background(), "Player.sp")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Player.speed", "Player.sprite"}, items)

	items, err = a.Complete(context.Background(), "Player.speed.Pro")
	require.NoError(t, err)
	assert.Equal(t, []string{"Player.speed.Property"}, items)
}

func TestComplete_NoScope(t *testing.T) {
	a, _, _ := SetupAppTest(t, Config{})
	_, err := a.Complete(context.Background(), "x")
	assert.ErrorIs(t, err, ErrNoScope)
}

func TestPrintClasses(t *testing.T) {
	snap := writeFile(t, t.TempDir(), "api.yaml", snapshotYAML)

	a, out, _ := SetupAppTest(t, Config{SnapshotPath: snap})
	require.NoError(t, a.PrintClasses(context.Background()))
	assert.Equal(t, "version 4.2.1\nclass Object\nclass Node extends Object\nsingleton Input: Input\n", out.String())
}

func TestPrintClasses_NoSnapshot(t *testing.T) {
	a, _, _ := SetupAppTest(t, Config{})
	assert.Error(t, a.PrintClasses(context.Background()))
}

func TestWriteTypings(t *testing.T) {
	dir := t.TempDir()
	snap := writeFile(t, dir, "api.yaml", snapshotYAML)
	out := filepath.Join(dir, "gen", "godot.go")
	require.NoError(t, os.MkdirAll(filepath.Dir(out), 0o755))

	a, _, _ := SetupAppTest(t, Config{SnapshotPath: snap})
	require.NoError(t, a.WriteTypings(context.Background(), "godot", out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "package godot")
	assert.Contains(t, string(data), "type Side int64")

	assert.Error(t, a.WriteTypings(context.Background(), "", out))
}

func TestRunBridge_NeedsURL(t *testing.T) {
	scope := writeFile(t, t.TempDir(), "scope.hcl", `a = 1`)
	a, _, _ := SetupAppTest(t, Config{ScopePath: scope})
	assert.ErrorContains(t, a.RunBridge(context.Background()), "failed to configure bridge")
}

func TestHealthHandler(t *testing.T) {
	a, _, logs := SetupAppTest(t, Config{})

	rr := httptest.NewRecorder()
	a.healthHandler(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK\n", rr.Body.String())
	assert.Contains(t, logs.String(), "Health check endpoint hit.")
}

func TestHealthCheckServer_DisabledByDefault(t *testing.T) {
	a, _, _ := SetupAppTest(t, Config{})
	a.healthCheckServer()
	assert.Nil(t, a.httpServer)
	assert.NoError(t, a.closeHealthCheckServer())
}

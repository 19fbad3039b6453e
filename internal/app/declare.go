package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/jsbridge/internal/ctxlog"
	"github.com/vk/jsbridge/internal/decl"
	"github.com/vk/jsbridge/internal/host"
	"github.com/vk/jsbridge/internal/manifest"
	"github.com/vk/jsbridge/internal/recorder"
	"gopkg.in/yaml.v3"
)

// scriptCalls is the YAML shape of one declared script.
type scriptCalls struct {
	Script string          `yaml:"script"`
	Tool   bool            `yaml:"tool,omitempty"`
	Icon   string          `yaml:"icon,omitempty"`
	Calls  []recorder.Call `yaml:"calls"`
}

// Declare loads the manifests below paths, or the configured manifest paths
// when none are given, and commits every script to a fresh recorder host.
// Each script is also registered as a module whose members are its
// declarations, keyed by member name.
func (a *App) Declare(ctx context.Context, paths ...string) (*recorder.Recorder, error) {
	ctx = a.withLogger(ctx)
	logger := ctxlog.FromContext(ctx)

	if len(paths) == 0 {
		paths = a.config.ManifestPaths
	}
	if len(paths) == 0 {
		return nil, errors.New("no manifest paths given")
	}

	scripts, err := manifest.NewLoader().Load(ctx, paths...)
	if err != nil {
		return nil, fmt.Errorf("failed to load manifests: %w", err)
	}

	policy := recorder.AllowDuplicates
	if a.config.StrictDuplicates {
		policy = recorder.RejectDuplicates
	}
	rec := recorder.New(policy)

	for _, s := range scripts {
		if err := s.Table.Commit(ctx, rec); err != nil {
			return nil, fmt.Errorf("failed to declare script %q from %s: %w", s.Name, s.File, err)
		}
		if err := rec.AddModule(s.Name, scriptModule(s.Table)); err != nil {
			return nil, fmt.Errorf("failed to register script %q: %w", s.Name, err)
		}
	}

	logger.Info("Scripts declared.", "count", len(scripts))
	return rec, nil
}

// scriptModule exposes the named declarations of a script for completion.
func scriptModule(table *decl.Table) map[string]any {
	members := make(map[string]any)
	for _, d := range table.Declarations() {
		if d.Name != "" {
			members[d.Name] = d
		}
	}
	return members
}

// PrintDeclarations declares the manifests and writes the recorded host
// calls as YAML, one document entry per script in load order.
func (a *App) PrintDeclarations(ctx context.Context, paths ...string) error {
	rec, err := a.Declare(ctx, paths...)
	if err != nil {
		return err
	}

	out := make([]scriptCalls, 0, len(rec.ModuleIDs()))
	for _, name := range rec.ModuleIDs() {
		target := host.ClassRef(name)
		icon, _ := rec.Icon(target)
		out = append(out, scriptCalls{
			Script: name,
			Tool:   rec.IsTool(target),
			Icon:   icon,
			Calls:  rec.Calls(target),
		})
	}

	enc := yaml.NewEncoder(a.outW)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode declarations: %w", err)
	}
	return enc.Close()
}

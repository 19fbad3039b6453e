package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/vk/jsbridge/internal/classdb"
	"github.com/vk/jsbridge/internal/ctxlog"
	"github.com/vk/jsbridge/internal/typings"
)

func (a *App) snapshot() (*classdb.Snapshot, error) {
	if a.config.SnapshotPath == "" {
		return nil, errors.New("no reflection snapshot configured")
	}
	return classdb.LoadSnapshot(a.config.SnapshotPath)
}

// PrintClasses lists the host version, classes and singletons of the
// configured snapshot.
func (a *App) PrintClasses(ctx context.Context) error {
	snap, err := a.snapshot()
	if err != nil {
		return err
	}

	classes, err := snap.GetClasses(ctx)
	if err != nil {
		return err
	}
	singletons, err := snap.GetSingletons(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.outW, "version %s\n", snap.BuildInfo().Version())
	for _, c := range classes {
		if c.Super != "" {
			fmt.Fprintf(a.outW, "class %s extends %s\n", c.Name, c.Super)
		} else {
			fmt.Fprintf(a.outW, "class %s\n", c.Name)
		}
	}
	for _, s := range singletons {
		fmt.Fprintf(a.outW, "singleton %s: %s\n", s.Name, s.ClassName)
	}
	return nil
}

// WriteTypings generates the Go typings of the configured snapshot into
// out, which must lie below the snapshot's directory.
func (a *App) WriteTypings(ctx context.Context, pkg, out string) error {
	ctx = a.withLogger(ctx)
	if pkg == "" {
		return errors.New("package name must not be empty")
	}
	snap, err := a.snapshot()
	if err != nil {
		return err
	}
	abs, err := filepath.Abs(out)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", out, err)
	}
	ctxlog.FromContext(ctx).Debug("Generating typings.", "out", abs, "package", pkg)
	return typings.Write(ctx, snap, pkg, abs)
}

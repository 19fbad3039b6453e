package app

import (
	"context"
	"fmt"

	"github.com/vk/jsbridge/internal/complete"
	"github.com/vk/jsbridge/internal/ctxlog"
)

// Scope returns the value completions resolve against: the configured scope
// file when set, otherwise the scripts declared by the configured manifests.
func (a *App) Scope(ctx context.Context) (any, error) {
	ctx = a.withLogger(ctx)
	logger := ctxlog.FromContext(ctx)

	if a.config.ScopePath != "" {
		scope, err := complete.LoadScopeFile(a.config.ScopePath)
		if err != nil {
			return nil, err
		}
		logger.Debug("Scope loaded from file.", "path", a.config.ScopePath)
		return scope, nil
	}

	if len(a.config.ManifestPaths) > 0 {
		rec, err := a.Declare(ctx)
		if err != nil {
			return nil, err
		}
		logger.Debug("Scope built from declared scripts.", "scripts", len(rec.ModuleIDs()))
		return rec.Modules(), nil
	}

	return nil, ErrNoScope
}

// Complete resolves pattern against the configured scope.
func (a *App) Complete(ctx context.Context, pattern string) ([]string, error) {
	scope, err := a.Scope(ctx)
	if err != nil {
		return nil, err
	}
	return a.resolver().Complete(scope, pattern), nil
}

// PrintCompletions writes one completion per line.
func (a *App) PrintCompletions(ctx context.Context, pattern string) error {
	items, err := a.Complete(ctx, pattern)
	if err != nil {
		return err
	}
	for _, item := range items {
		if _, err := fmt.Fprintln(a.outW, item); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) resolver() *complete.Resolver {
	return complete.NewResolver(complete.WithLogger(a.logger))
}

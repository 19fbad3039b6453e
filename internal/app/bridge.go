package app

import (
	"context"
	"fmt"

	"github.com/vk/jsbridge/internal/bridge"
	"github.com/vk/jsbridge/internal/ctxlog"
)

// RunBridge serves editor completion requests against the configured scope
// until ctx is cancelled. The health check server runs alongside when a
// port is configured.
func (a *App) RunBridge(ctx context.Context) error {
	ctx = a.withLogger(ctx)
	a.ctx = ctx
	logger := ctxlog.FromContext(ctx)

	scope, err := a.Scope(ctx)
	if err != nil {
		return err
	}

	b, err := bridge.New(bridge.Config{
		URL:                a.config.Bridge.URL,
		Namespace:          a.config.Bridge.Namespace,
		InsecureSkipVerify: a.config.Bridge.InsecureSkipVerify,
		ConnectTimeout:     a.config.Bridge.ConnectTimeout,
	}, scope, a.resolver())
	if err != nil {
		return fmt.Errorf("failed to configure bridge: %w", err)
	}

	a.healthCheckServer()
	defer func() {
		if err := a.closeHealthCheckServer(); err != nil {
			logger.Warn("Health check server did not stop cleanly.", "error", err)
		}
	}()

	logger.Info("Bridge starting.", "url", a.config.Bridge.URL)
	return b.Run(ctx)
}

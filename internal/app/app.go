package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/vk/jsbridge/internal/ctxlog"
)

// ErrNoScope is returned by completion use cases that have nothing to
// complete against.
var ErrNoScope = errors.New("no completion scope: set a scope file or manifest paths")

// App encapsulates the application's dependencies and configuration. Results
// are written to outW; logs go to the logger.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config

	ctx        context.Context
	httpServer *http.Server
}

// NewApp builds an App whose isolated logger writes to logW.
func NewApp(outW, logW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		ctx:    ctxlog.WithLogger(context.Background(), logger),
	}
}

// Logger returns the application's logger. This is primarily for testing.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// withLogger attaches the application's logger to ctx.
func (a *App) withLogger(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}

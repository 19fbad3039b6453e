package bridge

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/vk/jsbridge/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

const (
	EventComplete    = "complete"
	EventCompletions = "completions"

	DefaultConnectTimeout = 15 * time.Second
)

// Completer answers completion patterns against a scope.
type Completer interface {
	Complete(scope any, pattern any) []string
}

// Config locates the editor's socket.io endpoint.
type Config struct {
	URL                string
	Namespace          string
	InsecureSkipVerify bool
	ConnectTimeout     time.Duration
}

// Bridge serves completion requests for a single scope.
type Bridge struct {
	cfg       Config
	scope     any
	completer Completer
}

func New(cfg Config, scope any, completer Completer) (*Bridge, error) {
	if cfg.URL == "" {
		return nil, errors.New("bridge URL must not be empty")
	}
	if completer == nil {
		return nil, errors.New("bridge needs a completer")
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "/"
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = DefaultConnectTimeout
	}
	return &Bridge{cfg: cfg, scope: scope, completer: completer}, nil
}

// Handle answers one "complete" event.
func (b *Bridge) Handle(ctx context.Context, data ...any) (Response, error) {
	req, err := ParseRequest(data...)
	if err != nil {
		return Response{}, err
	}
	items := b.completer.Complete(b.scope, req.Pattern)
	ctxlog.FromContext(ctx).Debug("Completion served.", "id", req.ID, "pattern", req.Pattern, "count", len(items))
	return Response{ID: req.ID, Items: items}, nil
}

// Run connects to the editor and serves requests until ctx is cancelled,
// which is a clean shutdown, or the connection fails.
func (b *Bridge) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx).With("url", b.cfg.URL, "namespace", b.cfg.Namespace)

	parsedURL, err := url.Parse(b.cfg.URL)
	if err != nil {
		return fmt.Errorf("failed to parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return fmt.Errorf("bridge URL %q needs a scheme and a host", b.cfg.URL)
	}

	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	if b.cfg.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(b.cfg.Namespace, opts)
	defer func() {
		logger.Debug("Disconnecting socket client")
		io.Disconnect()
	}()

	connected := make(chan struct{}, 1)
	failed := make(chan error, 1)

	io.On(types.EventName("connect"), func(...any) {
		logger.Info("Connected to editor.", "sid", io.Id())
		select {
		case connected <- struct{}{}:
		default:
		}
	})
	io.On(types.EventName("connect_error"), func(errs ...any) {
		err := connectError(errs)
		logger.Debug("Connection error.", "error", err)
		select {
		case failed <- err:
		default:
		}
	})
	io.On(types.EventName("disconnect"), func(reason ...any) {
		logger.Warn("Disconnected from editor.", "reason", reason)
	})
	io.On(types.EventName(EventComplete), func(data ...any) {
		resp, err := b.Handle(ctx, data...)
		if err != nil {
			logger.Warn("Dropping completion request.", "error", err)
			return
		}
		io.Emit(EventCompletions, resp.Payload())
	})

	logger.Debug("Initiating connection...")
	io.Connect()

	select {
	case <-connected:
	case err := <-failed:
		return fmt.Errorf("socket.io connection failed: %w", err)
	case <-ctx.Done():
		return fmt.Errorf("context cancelled while waiting for socket.io connection: %w", ctx.Err())
	case <-time.After(b.cfg.ConnectTimeout):
		return fmt.Errorf("timed out after %s waiting for socket.io connection", b.cfg.ConnectTimeout)
	}

	select {
	case <-ctx.Done():
		logger.Info("Bridge stopped.")
		return nil
	case err := <-failed:
		return fmt.Errorf("socket.io connection lost: %w", err)
	}
}

func connectError(errs []any) error {
	if len(errs) > 0 {
		if err, ok := errs[0].(error); ok {
			return err
		}
		return fmt.Errorf("%v", errs[0])
	}
	return errors.New("unknown connection error")
}

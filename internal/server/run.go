package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/culturemesh/meshkit/pkg/logger"
)

// Server timeouts.
const (
	DefaultAddr            = ":8080"
	DefaultShutdownTimeout = 30 * time.Second

	readTimeout       = 15 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 120 * time.Second
	readHeaderTimeout = 5 * time.Second
	maxHeaderBytes    = 1 << 20
)

// Hook runs at startup or shutdown.
type Hook func(ctx context.Context) error

type runConfig struct {
	addr            string
	listener        net.Listener
	logger          *slog.Logger
	shutdownTimeout time.Duration
	startupHooks    []Hook
	shutdownHooks   []Hook
}

// RunOption configures Run.
type RunOption func(*runConfig)

// WithAddr sets the listen address. Default: ":8080".
func WithAddr(addr string) RunOption {
	return func(c *runConfig) {
		if addr != "" {
			c.addr = addr
		}
	}
}

// WithListener serves on ln instead of listening on the address.
func WithListener(ln net.Listener) RunOption {
	return func(c *runConfig) {
		c.listener = ln
	}
}

// WithLogger sets the lifecycle logger.
func WithLogger(l *slog.Logger) RunOption {
	return func(c *runConfig) {
		c.logger = logger.OrNope(l)
	}
}

// WithShutdownTimeout bounds graceful shutdown, hooks included.
func WithShutdownTimeout(d time.Duration) RunOption {
	return func(c *runConfig) {
		if d > 0 {
			c.shutdownTimeout = d
		}
	}
}

// WithStartupHook runs h before the server accepts connections. A failing
// hook aborts Run.
func WithStartupHook(h Hook) RunOption {
	return func(c *runConfig) {
		c.startupHooks = append(c.startupHooks, h)
	}
}

// WithShutdownHook runs h after the server stopped, in registration order.
func WithShutdownHook(h Hook) RunOption {
	return func(c *runConfig) {
		c.shutdownHooks = append(c.shutdownHooks, h)
	}
}

// Run serves handler until ctx is done, then shuts down gracefully and runs
// the shutdown hooks. Errors from shutdown and hooks are joined.
func Run(ctx context.Context, handler http.Handler, opts ...RunOption) error {
	cfg := &runConfig{
		addr:            DefaultAddr,
		logger:          logger.NewNope(),
		shutdownTimeout: DefaultShutdownTimeout,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	for _, hook := range cfg.startupHooks {
		if err := hook(ctx); err != nil {
			return errors.Join(err, cfg.shutdown(nil))
		}
	}

	ln := cfg.listener
	if ln == nil {
		var err error
		if ln, err = net.Listen("tcp", cfg.addr); err != nil {
			return errors.Join(err, cfg.shutdown(nil))
		}
	}

	srv := &http.Server{
		Handler:           handler,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		MaxHeaderBytes:    maxHeaderBytes,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() {
		cfg.logger.Info("server starting", slog.String("address", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return errors.Join(err, cfg.shutdown(nil))
	case <-ctx.Done():
	}

	cfg.logger.Info("shutting down server")
	return cfg.shutdown(srv)
}

func (c *runConfig) shutdown(srv *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), c.shutdownTimeout)
	defer cancel()

	var errs []error

	if srv != nil {
		if err := srv.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	for _, hook := range c.shutdownHooks {
		if err := hook(ctx); err != nil {
			errs = append(errs, err)
			c.logger.Error("shutdown hook failed", slog.Any("error", err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		c.logger.Error("shutdown completed with errors")
		return err
	}

	c.logger.Info("shutdown completed")
	return nil
}

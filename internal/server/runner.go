// Package server runs the HTTP API and the event bus with a shared
// lifecycle.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/helmarr/helmarr/internal/events"
)

// Config for the server runner.
type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// Runner owns the HTTP listener and closes the event bus on shutdown.
type Runner struct {
	handler http.Handler
	bus     *events.Bus
	config  Config
	logger  *slog.Logger

	mu   sync.Mutex
	addr string
}

// NewRunner creates a new runner. The bus may be nil.
func NewRunner(handler http.Handler, bus *events.Bus, cfg Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 30 * time.Second
	}
	return &Runner{
		handler: handler,
		bus:     bus,
		config:  cfg,
		logger:  logger.With("component", "server"),
	}
}

// Addr returns the bound listen address, or "" before Run has bound it.
func (r *Runner) Addr() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.addr
}

// Run serves HTTP until the context is canceled, then shuts down
// gracefully. Returns nil on a clean shutdown.
func (r *Runner) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", r.config.Addr)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.addr = ln.Addr().String()
	r.mu.Unlock()

	srv := &http.Server{Handler: r.handler}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		r.logger.Info("listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), r.config.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if r.bus != nil {
			return r.bus.Close()
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	r.logger.Info("server stopped")
	return nil
}

// Package app wires configuration into the running service.
package app

import (
	"context"
	"fmt"

	"log/slog"

	"github.com/jekabolt/woo-analytics/config"
	httpapi "github.com/jekabolt/woo-analytics/internal/api/http"
	"github.com/jekabolt/woo-analytics/internal/dashboard"
	"github.com/jekabolt/woo-analytics/internal/woo"
)

// App assembles the store client, the refresh service and the http server.
type App struct {
	c  *config.Config
	hs *httpapi.Server
}

// New creates a new App.
func New(c *config.Config) *App {
	return &App{c: c}
}

// Start builds the collaborators and begins serving. Store connectivity is
// probed once at startup; a failure is logged but does not abort, since
// every dashboard request surfaces its own fetch errors.
func (a *App) Start(ctx context.Context) error {
	store := woo.New(&a.c.Woo)

	if err := store.Ping(ctx); err != nil {
		slog.Default().WarnContext(ctx, "store api connectivity check failed",
			slog.String("err", err.Error()),
		)
	}

	svc := dashboard.New(store, a.c.Dashboard, nil)

	a.hs = httpapi.New(&a.c.HTTP)
	if err := a.hs.Start(ctx, svc, store); err != nil {
		return fmt.Errorf("cannot start http server: %w", err)
	}

	slog.Default().InfoContext(ctx, "woo-analytics started",
		slog.String("addr", a.c.HTTP.Address+":"+a.c.HTTP.Port),
		slog.String("store", a.c.Woo.BaseURL),
	)
	return nil
}

// Stop shuts the http server down.
func (a *App) Stop(ctx context.Context) {
	if a.hs != nil {
		if err := a.hs.Stop(ctx); err != nil {
			slog.Default().ErrorContext(ctx, "http server shutdown",
				slog.String("err", err.Error()),
			)
		}
	}
}

// Done is closed when the http server exits.
func (a *App) Done() <-chan struct{} {
	if a.hs == nil {
		ch := make(chan struct{})
		close(ch)
		return ch
	}
	return a.hs.Done()
}

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/urfave/cli/v2"

	"github.com/pkordes/train-dispatch/api"
	"github.com/pkordes/train-dispatch/internal/config"
	"github.com/pkordes/train-dispatch/internal/handler"
	"github.com/pkordes/train-dispatch/internal/middleware"
)

func serveCommand(cfg config.Config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP JSON API",
		Flags: append(registryFlags(cfg),
			&cli.StringFlag{
				Name:  "port",
				Value: cfg.Port,
				Usage: "TCP port the server listens on",
			},
		),
		Action: func(c *cli.Context) error {
			// --- Logger -------------------------------------------------------
			logger := newLogger(os.Stdout, cfg.LogLevel)
			slog.SetDefault(logger)

			svc, err := newDispatch(c, logger)
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:         ":" + c.String("port"),
				Handler:      newRouter(cfg, logger, handler.NewServer(svc, api.OpenAPI)),
				ReadTimeout:  10 * time.Second,
				WriteTimeout: 10 * time.Second,
				IdleTimeout:  60 * time.Second,
			}
			return listenAndShutdown(c.Context, srv)
		},
	}
}

// newRouter applies middleware in order: RequestID → RealIP → Logger →
// Recoverer → CORS → body limit, then mounts the API routes.
func newRouter(cfg config.Config, logger *slog.Logger, server *handler.Server) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	r.Mount("/", server.Routes())
	return r
}

// listenAndShutdown serves until SIGINT or SIGTERM, then gives in-flight
// requests up to 15 seconds to complete.
func listenAndShutdown(ctx context.Context, srv *http.Server) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	slog.Info("server stopped")
	return nil
}

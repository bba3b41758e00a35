package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/transport-report/internal/config"
	"github.com/sells-group/transport-report/internal/server"
	"github.com/sells-group/transport-report/internal/session"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the upload and report API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if servePort != 0 {
			cfg.Server.Port = servePort
		}
		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		api, store, err := newAPI(cfg)
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:           api.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}
		return runServer(ctx, srv, store, cfg)
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// newAPI wires the session store and ingest reader into the HTTP API.
func newAPI(c *config.Config) (*server.Server, *session.Store, error) {
	reader, err := newReader(c)
	if err != nil {
		return nil, nil, err
	}
	store := session.NewStore(session.Config{
		TTL:         c.Session.TTL(),
		MaxSessions: c.Session.MaxSessions,
	})
	api := server.New(store, reader, server.Options{
		MaxUploadBytes: c.Server.MaxUploadBytes(),
		RatePerSec:     c.Server.RatePerSec,
		Burst:          c.Server.Burst,
		AllowedOrigins: c.Server.AllowedOrigins,
		TopN:           c.Report.TopN,
	})
	return api, store, nil
}

// runServer serves until ctx is cancelled, sweeping expired sessions in the
// background, then shuts down gracefully.
func runServer(ctx context.Context, srv *http.Server, store *session.Store, c *config.Config) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		zap.L().Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return eris.Wrap(err, "server listen")
		}
		return nil
	})

	g.Go(func() error {
		return store.Run(gctx, c.Session.SweepInterval())
	})

	g.Go(func() error {
		<-gctx.Done()
		zap.L().Info("shutting down server")

		timeout := time.Duration(c.Server.ShutdownSecs) * time.Second
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return eris.Wrap(err, "server shutdown")
		}
		return nil
	})

	return g.Wait()
}

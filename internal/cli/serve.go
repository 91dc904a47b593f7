package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/devindex/internal/metrics"
	documentrepo "github.com/kailas-cloud/devindex/internal/repository/document"
	searchrepo "github.com/kailas-cloud/devindex/internal/repository/search"
	chiTransport "github.com/kailas-cloud/devindex/internal/transport/chi"
	healthuc "github.com/kailas-cloud/devindex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/devindex/internal/usecase/search"
	"github.com/kailas-cloud/devindex/internal/version"
)

func newServeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the search HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			build := version.Get()
			a.log.Info("Starting devindex API server",
				zap.String("version", build.Version),
				zap.String("commit", build.Commit),
				zap.Int("http_port", a.cfg.HTTP.Port),
				zap.Strings("db_addrs", a.cfg.Database.Addrs),
			)

			store, err := openStore(ctx, a.cfg.Database)
			if err != nil {
				return err
			}
			defer store.Close()
			a.log.Info("Connected to database")

			metrics.RegisterSearchMetrics()

			layout := layoutFromConfig(a.cfg.Index)
			docRepo := documentrepo.New(store, layout)
			searchSvc := searchuc.New(searchrepo.New(store, docRepo, layout))
			healthSvc := healthuc.New(store, store, layout.IndexName).WithCorpus(searchSvc)

			server := chiTransport.NewServer(searchSvc, healthSvc, a.log)
			srv := &http.Server{
				Addr:         fmt.Sprintf(":%d", a.cfg.HTTP.Port),
				Handler:      chiTransport.Router(server, a.cfg.Auth.APIKeys),
				ReadTimeout:  time.Duration(a.cfg.HTTP.ReadTimeoutSec) * time.Second,
				WriteTimeout: time.Duration(a.cfg.HTTP.WriteTimeoutSec) * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				a.log.Info("Starting HTTP server", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("http server: %w", err)
				}
				return nil
			case <-ctx.Done():
				a.log.Info("Received shutdown signal")
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(),
				time.Duration(a.cfg.HTTP.ShutdownSec)*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}

			a.log.Info("Server stopped gracefully")
			return nil
		},
	}
}

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/devindex/internal/analyzer"
	"github.com/kailas-cloud/devindex/internal/config"
	dbRedis "github.com/kailas-cloud/devindex/internal/db/redis"
	"github.com/kailas-cloud/devindex/internal/metrics"
	"github.com/kailas-cloud/devindex/internal/repository/corpus"
	documentrepo "github.com/kailas-cloud/devindex/internal/repository/document"
	"github.com/kailas-cloud/devindex/internal/repository/manifest"
	searchrepo "github.com/kailas-cloud/devindex/internal/repository/search"
	ingestuc "github.com/kailas-cloud/devindex/internal/usecase/ingest"
	searchuc "github.com/kailas-cloud/devindex/internal/usecase/search"
	stemuc "github.com/kailas-cloud/devindex/internal/usecase/stem"
)

func newIngestCommand(a *app) *cobra.Command {
	var (
		corpusPath string
		reindex    bool
	)

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Push the corpus into the search engine",
		Long: `Ingest creates the search index if needed, writes every document whose
content changed since the last ingest, deletes documents that disappeared and
records the new state in the manifest. Afterwards the category alias table is
checked against the categories the engine actually holds.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if corpusPath == "" {
				corpusPath = a.cfg.Build.Output
			}

			records, err := corpus.ReadFile(corpusPath)
			if err != nil {
				return err
			}
			// Records from an unstemmed corpus still get their search tokens.
			if _, err := stemuc.New(analyzer.New(), a.cfg.Stem.Workers).StemRecords(ctx, records); err != nil {
				return fmt.Errorf("stem records: %w", err)
			}

			store, err := openStore(ctx, a.cfg.Database)
			if err != nil {
				return err
			}
			defer store.Close()

			mf, err := manifest.Open(a.cfg.Build.Manifest)
			if err != nil {
				return err
			}
			defer func() { _ = mf.Close() }()

			layout := layoutFromConfig(a.cfg.Index)
			docRepo := documentrepo.New(store, layout)
			if reindex {
				if err := docRepo.DropIndex(ctx); err != nil {
					return err
				}
				a.log.Info("search index dropped", zap.String("index", layout.IndexName))
			}

			bar := newProgress(cmd.ErrOrStderr(), "Ingesting")
			report, err := ingestuc.New(docRepo, mf, a.cfg.Ingest.BatchSize, a.cfg.Ingest.RatePerSec).
				OnProgress(bar.update).
				Run(ctx, records)
			if err != nil {
				return fmt.Errorf("ingest failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "upserted: %d, deleted: %d, unchanged: %d\n",
				report.Upserted, report.Deleted, report.Unchanged)

			metrics.RegisterSearchMetrics()
			searchSvc := searchuc.New(searchrepo.New(store, docRepo, layout))
			missing, err := ingestuc.CheckAliases(ctx, searchSvc, a.cfg.Search.CategoryAliases)
			if err != nil {
				a.log.Warn("alias check skipped", zap.Error(err))
				return nil
			}
			if len(missing) > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: aliases with no documents: %v\n", missing)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&corpusPath, "corpus", "", "corpus file (default build.output)")
	cmd.Flags().BoolVar(&reindex, "reindex", false, "drop and recreate the index definition before writing")
	return cmd
}

// openStore connects to the engine and waits until it answers.
func openStore(ctx context.Context, cfg config.DatabaseConfig) (*dbRedis.Store, error) {
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Addrs,
		Password: cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create database store: %w", err)
	}
	if err := store.WaitForReady(ctx, time.Duration(cfg.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		return nil, fmt.Errorf("database not ready: %w", err)
	}
	return store, nil
}

func layoutFromConfig(cfg config.IndexConfig) documentrepo.Layout {
	return documentrepo.Layout{IndexName: cfg.Name, KeyPrefix: cfg.KeyPrefix}
}

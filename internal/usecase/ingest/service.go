// Package ingest sends an assembled corpus to the search engine, incrementally.
package ingest

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/kailas-cloud/devindex/internal/domain/category"
	domdoc "github.com/kailas-cloud/devindex/internal/domain/document"
	"github.com/kailas-cloud/devindex/internal/domain/search/request"
	"github.com/kailas-cloud/devindex/internal/domain/search/result"
	"github.com/kailas-cloud/devindex/internal/logger"
	"github.com/kailas-cloud/devindex/internal/metrics"
)

// DefaultBatchSize is the number of documents per pipelined write.
const DefaultBatchSize = 500

// Report summarizes one ingest run.
type Report struct {
	IndexCreated bool
	Upserted     int
	Deleted      int
	Unchanged    int
}

// ProgressFunc receives the number of written documents after each batch.
type ProgressFunc func(done, total int)

// Service diffs a corpus against the manifest and applies the change set in batches.
type Service struct {
	repo      Repository
	manifest  Manifest
	limiter   *rate.Limiter
	batchSize int
	progress  ProgressFunc
}

// New creates an ingest service. batchesPerSec <= 0 disables throttling.
func New(repo Repository, manifest Manifest, batchSize int, batchesPerSec float64) *Service {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	limit := rate.Inf
	if batchesPerSec > 0 {
		limit = rate.Limit(batchesPerSec)
	}
	return &Service{
		repo:      repo,
		manifest:  manifest,
		limiter:   rate.NewLimiter(limit, 1),
		batchSize: batchSize,
	}
}

// OnProgress registers a progress callback.
func (s *Service) OnProgress(fn ProgressFunc) *Service {
	s.progress = fn
	return s
}

// Run ensures the index exists, writes changed documents, deletes vanished ones and
// commits the manifest. A freshly created index gets every record. The manifest is only
// committed when every write succeeded.
func (s *Service) Run(ctx context.Context, records []domdoc.Record) (Report, error) {
	log := logger.FromContext(ctx)

	created, err := s.repo.EnsureIndex(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("ensure index: %w", err)
	}
	if created {
		log.Info("search index created")
	}

	set, err := s.manifest.Diff(records)
	if err != nil {
		return Report{}, fmt.Errorf("diff manifest: %w", err)
	}
	if created {
		set = set.Full(records)
	}
	report := Report{IndexCreated: created, Unchanged: set.Unchanged}
	metrics.IngestDocumentsTotal.WithLabelValues("unchanged").Add(float64(set.Unchanged))

	if set.Empty() {
		log.Info("engine up to date", zap.Int("documents", set.Unchanged))
		return report, nil
	}

	total := len(set.Upserts) + len(set.Deletes)
	done := 0

	for start := 0; start < len(set.Upserts); start += s.batchSize {
		end := min(start+s.batchSize, len(set.Upserts))
		if err := s.limiter.Wait(ctx); err != nil {
			return report, err
		}
		if err := s.repo.Upsert(ctx, set.Upserts[start:end]); err != nil {
			return report, fmt.Errorf("upsert batch at %d: %w", start, err)
		}
		report.Upserted += end - start
		metrics.IngestDocumentsTotal.WithLabelValues("upsert").Add(float64(end - start))
		done += end - start
		s.report(done, total)
	}

	for start := 0; start < len(set.Deletes); start += s.batchSize {
		end := min(start+s.batchSize, len(set.Deletes))
		if err := s.limiter.Wait(ctx); err != nil {
			return report, err
		}
		if err := s.repo.Delete(ctx, set.Deletes[start:end]); err != nil {
			return report, fmt.Errorf("delete batch at %d: %w", start, err)
		}
		report.Deleted += end - start
		metrics.IngestDocumentsTotal.WithLabelValues("delete").Add(float64(end - start))
		done += end - start
		s.report(done, total)
	}

	if err := s.manifest.Commit(set); err != nil {
		return report, fmt.Errorf("commit manifest: %w", err)
	}

	log.Info("ingest finished",
		zap.Int("upserted", report.Upserted),
		zap.Int("deleted", report.Deleted),
		zap.Int("unchanged", report.Unchanged),
	)
	return report, nil
}

func (s *Service) report(done, total int) {
	if s.progress != nil {
		s.progress(done, total)
	}
}

// CheckAliases compares the alias table against the category literals the engine
// actually holds. It returns the labels whose target the engine has never seen, sorted.
func CheckAliases(ctx context.Context, searcher Searcher, aliases map[string]string) ([]string, error) {
	resp, err := searcher.Search(ctx, request.Params{
		Limit:  0,
		Facets: []string{result.CategoryField},
	})
	if err != nil {
		return nil, fmt.Errorf("read category facets: %w", err)
	}
	live := resp.CategoryCounts()

	var missing []string
	for label, target := range aliases {
		if _, ok := live[target]; !ok {
			missing = append(missing, label)
		}
	}
	sort.Strings(missing)

	log := logger.FromContext(ctx)
	for _, label := range missing {
		log.Warn("category alias points at a literal with no documents",
			zap.String("label", label),
			zap.String("literal", aliases[label]),
		)
	}
	for _, c := range category.All() {
		if _, ok := live[string(c)]; !ok {
			log.Warn("category has no documents in the engine", zap.String("category", string(c)))
		}
	}
	return missing, nil
}

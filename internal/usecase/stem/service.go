// Package stem adds stemmed description and keyword fields to an assembled corpus.
package stem

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/devindex/internal/analyzer"
	"github.com/kailas-cloud/devindex/internal/domain/document"
	"github.com/kailas-cloud/devindex/internal/logger"
	"github.com/kailas-cloud/devindex/internal/repository/corpus"
)

// Stats summarizes one stemming pass.
type Stats struct {
	Total   int
	Stemmed int
	Skipped int
}

// ProgressFunc receives the number of processed records after each one.
type ProgressFunc func(done, total int)

// Service stems corpus records on a worker pool.
type Service struct {
	analyzer *analyzer.Analyzer
	workers  int
	progress ProgressFunc
}

// New creates a stemming service.
func New(a *analyzer.Analyzer, workers int) *Service {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Service{analyzer: a, workers: workers}
}

// OnProgress registers a progress callback. Calls may come from any worker goroutine.
func (s *Service) OnProgress(fn ProgressFunc) *Service {
	s.progress = fn
	return s
}

// StemRecords stems records in place. Records whose stems already match their text are skipped.
func (s *Service) StemRecords(ctx context.Context, records []document.Record) (Stats, error) {
	stats := Stats{Total: len(records)}
	if len(records) == 0 {
		return stats, nil
	}

	var stemmed, done atomic.Int64
	var wg sync.WaitGroup

	pool, err := ants.NewPoolWithFunc(s.workers, func(arg any) {
		defer wg.Done()
		i := arg.(int)
		if s.analyzer.Apply(&records[i]) {
			stemmed.Add(1)
		}
		n := done.Add(1)
		if s.progress != nil {
			s.progress(int(n), len(records))
		}
	})
	if err != nil {
		return stats, fmt.Errorf("create stem pool: %w", err)
	}
	defer pool.Release()

	for i := range records {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return stats, err
		}
		wg.Add(1)
		if err := pool.Invoke(i); err != nil {
			wg.Done()
			wg.Wait()
			return stats, fmt.Errorf("submit record %d: %w", i, err)
		}
	}
	wg.Wait()

	stats.Stemmed = int(stemmed.Load())
	stats.Skipped = stats.Total - stats.Stemmed
	return stats, nil
}

// ProcessFile stems the corpus at path and rewrites it only when something changed.
func (s *Service) ProcessFile(ctx context.Context, path string) (Stats, error) {
	log := logger.FromContext(ctx)

	records, err := corpus.ReadFile(path)
	if err != nil {
		return Stats{}, err
	}

	stats, err := s.StemRecords(ctx, records)
	if err != nil {
		return stats, err
	}

	if stats.Stemmed == 0 {
		log.Info("corpus already stemmed", zap.String("path", path), zap.Int("records", stats.Total))
		return stats, nil
	}
	if err := corpus.WriteFile(path, records); err != nil {
		return stats, err
	}

	log.Info("corpus stemmed",
		zap.String("path", path),
		zap.Int("records", stats.Total),
		zap.Int("stemmed", stats.Stemmed),
		zap.Int("skipped", stats.Skipped),
	)
	return stats, nil
}

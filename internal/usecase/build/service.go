package build

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/devindex/internal/domain"
	"github.com/kailas-cloud/devindex/internal/domain/category"
	"github.com/kailas-cloud/devindex/internal/domain/document"
	"github.com/kailas-cloud/devindex/internal/logger"
	"github.com/kailas-cloud/devindex/internal/metrics"
)

// Result is the outcome of a successful build.
type Result struct {
	Documents []document.Document
	Counts    map[category.Category]int
	Duration  time.Duration
}

// Service runs every builder concurrently and assembles their outputs.
type Service struct {
	builders []Builder
	workers  int
}

// New creates a build service. Builders run on a pool of at most NumCPU workers.
func New(builders ...Builder) *Service {
	return &Service{builders: builders, workers: runtime.NumCPU()}
}

// WithWorkers overrides the builder pool size.
func (s *Service) WithWorkers(n int) *Service {
	if n > 0 {
		s.workers = n
	}
	return s
}

type outcome struct {
	docs []document.Document
	err  error
}

// Run fans the builders out, waits for all of them, then assembles.
// Any builder failure aborts the build; every failure is reported.
func (s *Service) Run(ctx context.Context) (Result, error) {
	start := time.Now()
	log := logger.FromContext(ctx)

	if len(s.builders) == 0 {
		return Result{}, errors.New("no builders configured")
	}

	pool, err := ants.NewPool(min(s.workers, len(s.builders)))
	if err != nil {
		return Result{}, fmt.Errorf("create builder pool: %w", err)
	}
	defer pool.Release()

	outcomes := make([]outcome, len(s.builders))
	var wg sync.WaitGroup
	for i, b := range s.builders {
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			docs, err := b.Build(logger.With(ctx, zap.String("category", string(b.Category()))))
			outcomes[i] = outcome{docs: docs, err: err}
		})
		if submitErr != nil {
			wg.Done()
			outcomes[i] = outcome{err: fmt.Errorf("submit %s builder: %w", b.Category(), submitErr)}
		}
	}
	wg.Wait()

	var errs []error
	batches := make([][]document.Document, 0, len(outcomes))
	counts := make(map[category.Category]int, len(outcomes))
	for i, o := range outcomes {
		c := s.builders[i].Category()
		if o.err != nil {
			log.Error("builder failed", zap.String("category", string(c)), zap.Error(o.err))
			errs = append(errs, fmt.Errorf("build %s: %w", c, o.err))
			continue
		}
		counts[c] += len(o.docs)
		batches = append(batches, o.docs)
		log.Info("builder finished", zap.String("category", string(c)), zap.Int("documents", len(o.docs)))
	}
	if len(errs) > 0 {
		metrics.BuildFailuresTotal.WithLabelValues(failureReason(errs)).Inc()
		return Result{}, errors.Join(errs...)
	}

	docs, err := Assemble(batches...)
	if err != nil {
		metrics.BuildFailuresTotal.WithLabelValues("collision").Inc()
		return Result{}, err
	}

	elapsed := time.Since(start)
	metrics.BuildDuration.Observe(elapsed.Seconds())
	for c, n := range counts {
		metrics.BuildDocuments.WithLabelValues(string(c)).Set(float64(n))
	}

	log.Info("index assembled",
		zap.Int("documents", len(docs)),
		zap.Int("categories", len(counts)),
		zap.Duration("elapsed", elapsed),
	)
	for i, d := range docs {
		if i >= 5 {
			break
		}
		c := d.Common()
		log.Debug("sample document", zap.String("id", c.ID), zap.String("name", c.Name), zap.String("path", c.Path))
	}

	return Result{Documents: docs, Counts: counts, Duration: elapsed}, nil
}

func failureReason(errs []error) string {
	for _, err := range errs {
		if errors.Is(err, domain.ErrSourceRead) {
			return "source"
		}
	}
	return "other"
}
